package cli

import (
	"fmt"
	"runtime"

	"github.com/iburimskiy/orbits/internal/pprint"
)

// Build-time variables injected via -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func printVersion() {
	pprint.PrintBanner(Version, BuildDate)

	pprint.KV("Version", Version)
	pprint.KV("Commit", Commit)
	pprint.KV("Built", BuildDate)
	pprint.KV("Go", runtime.Version())
	pprint.KV("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))
}
