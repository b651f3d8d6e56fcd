// Package config loads the run configuration by merging defaults, an optional
// config file, ORBITS_* environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/iburimskiy/orbits/internal/errs"
	"github.com/iburimskiy/orbits/internal/orbit"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 800
	DefaultTPS    = 60

	// Rendering parameters
	PlanetDrawRadius  = 6
	CentralDrawRadius = 25
	TrailStrokeWidth  = 1.5
	TrailMinAlpha     = 0.08
	PlanetSaturation  = 0.75
	PlanetValue       = 0.95

	ChimeSampleRate = 44100

	// Upper bounds keep allocations and the tick interval sane
	MaxPlanets     = 10_000
	MaxTrailLength = 100_000
	MaxTPS         = 1000
)

// Defaults contains factory-default values applied before any config file is loaded.
var Defaults = map[string]any{
	"num_planets":           5,
	"trail_length":          100,
	"fullscreen":            false,
	"width":                 DefaultWidth,
	"height":                DefaultHeight,
	"tps":                   DefaultTPS,
	"speed":                 1.0,
	"seed":                  0,
	"terminal":              false,
	"sound":                 false,
	"satellites.enabled":    false,
	"satellites.spawn_rate": 0.6,
	"log.level":             "info",
	"log.format":            "text",
	"log.file":              "",
}

// Config is the fully-decoded run configuration. It is read-only once loaded.
type Config struct {
	NumPlanets  int             `mapstructure:"num_planets"`
	TrailLength int             `mapstructure:"trail_length"`
	Fullscreen  bool            `mapstructure:"fullscreen"`
	Width       int             `mapstructure:"width"`
	Height      int             `mapstructure:"height"`
	TPS         int             `mapstructure:"tps"`
	Speed       float64         `mapstructure:"speed"`
	Seed        int64           `mapstructure:"seed"`
	Terminal    bool            `mapstructure:"terminal"`
	Sound       bool            `mapstructure:"sound"`
	Satellites  SatelliteConfig `mapstructure:"satellites"`
	Log         LogConfig       `mapstructure:"log"`
}

// SatelliteConfig toggles the gravity-driven satellite field.
type SatelliteConfig struct {
	Enabled   bool    `mapstructure:"enabled"`
	SpawnRate float64 `mapstructure:"spawn_rate"` // per second
}

// LogConfig controls logging behaviour.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format"` // json | text
	File   string `mapstructure:"file"`
}

// NewViper returns a viper instance with defaults and ORBITS_* env binding applied.
// Callers bind their flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	for k, val := range Defaults {
		v.SetDefault(k, val)
	}
	// ORBITS_SATELLITES_SPAWN_RATE → satellites.spawn_rate
	v.SetEnvPrefix("ORBITS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file into v, decodes and validates the result.
// An explicit path must exist; the user config file is used only when present.
func Load(v *viper.Viper, explicitPath string) (*Config, error) {
	path := explicitPath
	if path == "" {
		if p, ok := userConfigFile(); ok {
			path = p
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errs.Wrap(err, errs.ErrConfig, "config.read").
				WithField(path).
				WithAdvice("check the file exists and is valid YAML, TOML or JSON")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errs.Wrap(err, errs.ErrConfig, "config.decode")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate performs semantic validation on the loaded config.
func (c *Config) Validate() error {
	invalid := func(field, format string, args ...any) *errs.OrbitsError {
		return errs.Newf(errs.ErrValidation, "config.validate", format, args...).WithField(field)
	}
	switch {
	case c.NumPlanets < 1 || c.NumPlanets > MaxPlanets:
		return invalid("num_planets", "must be between 1 and %d, got %d", MaxPlanets, c.NumPlanets)
	case c.TrailLength < 0:
		return invalid("trail_length", "must not be negative, got %d", c.TrailLength).
			WithAdvice("use 0 to disable trails")
	case c.TrailLength > MaxTrailLength:
		return invalid("trail_length", "must be at most %d, got %d", MaxTrailLength, c.TrailLength)
	case c.Width < 1 || c.Height < 1:
		return invalid("width/height", "must be positive, got %dx%d", c.Width, c.Height)
	case c.TPS < 1 || c.TPS > MaxTPS:
		return invalid("tps", "must be between 1 and %d, got %d", MaxTPS, c.TPS)
	case c.Speed < 0:
		return invalid("speed", "must not be negative, got %g", c.Speed)
	case c.Satellites.SpawnRate < 0:
		return invalid("satellites.spawn_rate", "must not be negative, got %g", c.Satellites.SpawnRate)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("log.format", "must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Orbit converts the run configuration into simulator settings.
func (c *Config) Orbit() orbit.Config {
	oc := orbit.DefaultConfig()
	oc.NumPlanets = c.NumPlanets
	oc.TrailLength = c.TrailLength
	oc.Width = float64(c.Width)
	oc.Height = float64(c.Height)
	oc.CentralRadius = CentralDrawRadius
	oc.PlanetRadius = PlanetDrawRadius
	oc.Seed = c.Seed
	oc.Satellites.Enabled = c.Satellites.Enabled
	oc.Satellites.SpawnRate = c.Satellites.SpawnRate
	return oc
}

// TickSeconds is the simulated time that passes during one update.
func (c *Config) TickSeconds() float64 {
	return c.Speed / float64(c.TPS)
}

// userConfigFile returns <user config dir>/orbits/config.yaml if it exists.
func userConfigFile() (string, bool) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	p := filepath.Join(dir, "orbits", "config.yaml")
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

func (c *Config) String() string {
	return fmt.Sprintf("planets=%d trail=%d fullscreen=%t size=%dx%d tps=%d speed=%g satellites=%t",
		c.NumPlanets, c.TrailLength, c.Fullscreen, c.Width, c.Height, c.TPS, c.Speed, c.Satellites.Enabled)
}
