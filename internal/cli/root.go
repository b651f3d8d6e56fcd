// Package cli defines the root cobra command, its flags and exit codes.
package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iburimskiy/orbits/internal/config"
	"github.com/iburimskiy/orbits/internal/errs"
	"github.com/iburimskiy/orbits/internal/logger"
	"github.com/iburimskiy/orbits/internal/orbit"
	"github.com/iburimskiy/orbits/internal/pprint"
)

// RunFunc drives the simulator until the user quits or ctx is cancelled.
type RunFunc func(ctx context.Context, cfg *config.Config, sim *orbit.Simulator, log *slog.Logger) error

// Runners are the renderers the command can hand the simulator to.
type Runners struct {
	Window   RunFunc
	Terminal RunFunc
}

// flags that are not part of the run configuration
type cliFlags struct {
	configFile string
	version    bool
}

// NewRootCmd builds the orbits command. Flags are bound to v so that flag values
// take precedence over ORBITS_* variables and the config file.
func NewRootCmd(v *viper.Viper, runners Runners) *cobra.Command {
	var cf cliFlags

	cmd := &cobra.Command{
		Use:           "orbits",
		Short:         "Planets orbiting a sun, with fading trails",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cf.version {
				printVersion()
				return nil
			}
			return run(cmd.Context(), v, cf, runners)
		},
	}

	f := cmd.Flags()
	f.BoolP("fullscreen", "f", false, "Run in fullscreen mode")
	f.IntP("num_planets", "n", config.Defaults["num_planets"].(int), "Number of orbiting planets")
	f.IntP("trail_length", "l", config.Defaults["trail_length"].(int), "Maximum trail length, in frames")
	f.BoolVarP(&cf.version, "version", "V", false, "Print version information and exit")
	f.StringVarP(&cf.configFile, "config", "c", "", "Path to a config file (YAML, TOML or JSON)")
	f.Bool("terminal", false, "Render in the terminal instead of a window")
	f.Bool("satellites", false, "Spawn satellites that fall through the system and are lost on impact (off by default)")
	f.Float64("spawn-rate", config.Defaults["satellites.spawn_rate"].(float64), "Satellites spawned per second")
	f.Bool("sound", false, "Chime when a satellite is lost")
	f.Float64("speed", config.Defaults["speed"].(float64), "Simulation speed multiplier")
	f.Int("tps", config.DefaultTPS, "Updates per second")
	f.Int64("seed", 0, "Random seed (0 picks one)")
	f.String("log-level", "info", "Log level: debug, info, warn, error")
	f.String("log-format", "text", "Log format: text or json")
	f.String("log-file", "", "Also append logs to this file")

	bind(v, f, map[string]string{
		"fullscreen":   "fullscreen",
		"num_planets":  "num_planets",
		"trail_length": "trail_length",
		"terminal":     "terminal",
		"satellites":   "satellites.enabled",
		"spawn-rate":   "satellites.spawn_rate",
		"sound":        "sound",
		"speed":        "speed",
		"tps":          "tps",
		"seed":         "seed",
		"log-level":    "log.level",
		"log-format":   "log.format",
		"log-file":     "log.file",
	})

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errs.Wrap(err, errs.ErrValidation, "cli.flags").WithAdvice("run orbits --help for usage")
	})

	// Show banner before every help screen
	origHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		pprint.PrintBanner(Version, BuildDate)
		origHelp(c, args)
	})
	return cmd
}

func bind(v *viper.Viper, f *pflag.FlagSet, keys map[string]string) {
	for flag, key := range keys {
		// Lookup cannot fail: every flag above is registered on f
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
}

func run(ctx context.Context, v *viper.Viper, cf cliFlags, runners Runners) error {
	cfg, err := config.Load(v, cf.configFile)
	if err != nil {
		return err
	}

	// tcell owns the terminal, so logs go to the file only
	log, closeLog, err := logger.Init(logger.Options{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		File:     cfg.Log.File,
		NoStderr: cfg.Terminal,
	})
	if err != nil {
		return errs.Wrap(err, errs.ErrConfig, "cli.logger").WithField("log.file")
	}
	defer closeLog()

	sim, err := orbit.New(cfg.Orbit())
	if err != nil {
		return errs.Wrap(err, errs.ErrValidation, "cli.simulator")
	}
	log.Info("simulator ready", "config", cfg.String())

	runner := runners.Window
	if cfg.Terminal {
		runner = runners.Terminal
	}
	if runner == nil {
		return errs.Newf(errs.ErrInternal, "cli.run", "no renderer available")
	}
	return runner(ctx, cfg, sim, log)
}

// Execute runs the command with args and returns the process exit code.
func Execute(ctx context.Context, args []string, runners Runners) int {
	cmd := NewRootCmd(config.NewViper(), runners)
	cmd.SetArgs(args)
	cmd.SetOut(pprint.Out)
	cmd.SetErr(pprint.ErrOut)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if oe := errs.As(err); oe != nil {
			pprint.Error("%s", oe.UserMessage())
		} else {
			pprint.Error("%s", err)
		}
		return 1
	}
	return 0
}
