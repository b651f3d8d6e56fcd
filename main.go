// orbits: planets circling a sun, drawn with fading trails.
// main only wires build metadata and the renderers into the CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iburimskiy/orbits/internal/cli"
	"github.com/iburimskiy/orbits/internal/config"
	"github.com/iburimskiy/orbits/internal/errs"
	"github.com/iburimskiy/orbits/internal/game"
	"github.com/iburimskiy/orbits/internal/orbit"
	"github.com/iburimskiy/orbits/internal/terminal"
)

// Build-time variables injected via:
//
//	go build -ldflags "-X main.version=v1.0.0 -X main.commit=abc1234 -X main.buildDate=2025-01-01"
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildDate = buildDate

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], cli.Runners{
		Window:   runWindow,
		Terminal: terminal.Run,
	})
	stop()
	os.Exit(code)
}

// runWindow also reports a failed window start in a dialog, since a desktop
// launch may have no terminal attached.
func runWindow(ctx context.Context, cfg *config.Config, sim *orbit.Simulator, log *slog.Logger) error {
	err := game.Run(ctx, cfg, sim, log)
	if errs.IsCode(err, errs.ErrDisplay) {
		game.ShowError(errs.As(err).UserMessage())
	}
	return err
}
