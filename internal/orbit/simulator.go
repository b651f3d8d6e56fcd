// Package orbit owns the orbiting bodies, their trail history and the optional
// field of gravity-driven satellites. It has no knowledge of how frames are drawn:
// renderers call Advance once per tick and consume RenderState.
package orbit

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNoPlanets     = errors.New("at least one planet is required")
	ErrNegativeTrail = errors.New("trail length must not be negative")
)

// Config holds the values needed to build a Simulator. Zero radii and speeds are
// derived from the world size.
type Config struct {
	NumPlanets  int
	TrailLength int

	// World box, centred on the origin.
	Width  float64
	Height float64

	CentralRadius float64
	PlanetRadius  float64
	InnerRadius   float64 // orbit of the first planet
	OuterRadius   float64 // orbit of the last planet
	BaseSpeed     float64 // rad/s at InnerRadius

	Satellites SatelliteConfig
	Seed       int64 // 0 picks a time based seed
}

// DefaultConfig mirrors the stock window: 800x800 world, five planets.
func DefaultConfig() Config {
	return Config{
		NumPlanets:  5,
		TrailLength: 100,
		Width:       800,
		Height:      800,
		Satellites:  DefaultSatelliteConfig(),
	}
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 800
	}
	short := math.Min(c.Width, c.Height)
	if c.CentralRadius <= 0 {
		c.CentralRadius = 25
	}
	if c.PlanetRadius <= 0 {
		c.PlanetRadius = 6
	}
	if c.InnerRadius <= 0 {
		c.InnerRadius = math.Max(short*0.14, c.CentralRadius+2*c.PlanetRadius)
	}
	if c.OuterRadius <= 0 {
		c.OuterRadius = short * 0.42
	}
	if c.OuterRadius < c.InnerRadius {
		c.OuterRadius = c.InnerRadius
	}
	if c.BaseSpeed <= 0 {
		c.BaseSpeed = 1.2
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// Body is one orbiting planet.
type Body struct {
	Radius          float64 // distance from the central body
	Angle           float64 // radians in [0, 2π)
	AngularVelocity float64 // radians per second
	Pos             Vec2
	Hue             float64 // degrees, used by renderers

	trail *TrailBuffer
}

// Disc is a drawable circle.
type Disc struct {
	Pos    Vec2
	Radius float64
	Hue    float64
}

// BodyState is the drawable state of one planet.
type BodyState struct {
	Disc
	Trail []Vec2 // oldest first
}

// SatelliteState is the drawable state of one satellite.
type SatelliteState struct {
	Disc
	Alive bool
	Trail []Vec2 // oldest first
}

// Frame is everything a renderer needs for one draw call.
type Frame struct {
	Central    Disc
	Bodies     []BodyState
	Satellites []SatelliteState
	Elapsed    float64
	Destroyed  uint64
}

// Simulator advances every body around the central body.
type Simulator struct {
	cfg     Config
	bodies  []Body
	field   *SatelliteField
	sources []source
	elapsed float64
}

// New builds a simulator with cfg.NumPlanets bodies evenly spaced around the
// circle, the first one at the top. Inner orbits turn faster than outer ones.
func New(cfg Config) (*Simulator, error) {
	if cfg.NumPlanets < 1 {
		return nil, fmt.Errorf("orbit: %w (got %d)", ErrNoPlanets, cfg.NumPlanets)
	}
	if cfg.TrailLength < 0 {
		return nil, fmt.Errorf("orbit: %w (got %d)", ErrNegativeTrail, cfg.TrailLength)
	}
	cfg = cfg.withDefaults()

	n := cfg.NumPlanets
	bodies := make([]Body, n)
	for i := range bodies {
		r := (cfg.InnerRadius + cfg.OuterRadius) / 2
		if n > 1 {
			r = cfg.InnerRadius + (cfg.OuterRadius-cfg.InnerRadius)*float64(i)/float64(n-1)
		}
		theta := wrapAngle(2*math.Pi*float64(i)/float64(n) - math.Pi/2)
		bodies[i] = Body{
			Radius:          r,
			Angle:           theta,
			AngularVelocity: cfg.BaseSpeed * math.Pow(cfg.InnerRadius/r, 1.5),
			Pos:             polar(r, theta),
			Hue:             360 * float64(i) / float64(n),
			trail:           NewTrailBuffer(cfg.TrailLength),
		}
	}

	s := &Simulator{
		cfg:     cfg,
		bodies:  bodies,
		sources: make([]source, 0, n+1),
	}
	if cfg.Satellites.Enabled {
		s.field = NewSatelliteField(cfg.Satellites, cfg.TrailLength, cfg.Width, cfg.Height, cfg.Seed)
	}
	return s, nil
}

// Advance moves every body by its angular velocity times dt. Each body records
// its position from before the move, so trails keep rolling even when dt is 0.
// Non-positive dt is treated as no motion. It returns the number of satellites
// lost during the step.
func (s *Simulator) Advance(dt float64) int {
	if !(dt > 0) {
		dt = 0
	}
	for i := range s.bodies {
		b := &s.bodies[i]
		b.trail.Push(b.Pos)
		b.Angle = wrapAngle(b.Angle + b.AngularVelocity*dt)
		b.Pos = polar(b.Radius, b.Angle)
	}
	lost := 0
	if s.field != nil {
		lost = s.field.Step(dt, s.gravitySources())
	}
	s.elapsed += dt
	return lost
}

func (s *Simulator) gravitySources() []source {
	sat := s.cfg.Satellites
	s.sources = append(s.sources[:0], source{Radius: s.cfg.CentralRadius, Mass: sat.CentralMass})
	for _, b := range s.bodies {
		s.sources = append(s.sources, source{Pos: b.Pos, Radius: s.cfg.PlanetRadius, Mass: sat.PlanetMass})
	}
	return s.sources
}

// RenderState returns a copy of the drawable state. It does not modify the simulator.
func (s *Simulator) RenderState() Frame {
	f := Frame{
		Central: Disc{Radius: s.cfg.CentralRadius, Hue: 45},
		Bodies:  make([]BodyState, len(s.bodies)),
		Elapsed: s.elapsed,
	}
	for i, b := range s.bodies {
		f.Bodies[i] = BodyState{
			Disc:  Disc{Pos: b.Pos, Radius: s.cfg.PlanetRadius, Hue: b.Hue},
			Trail: b.trail.Snapshot(),
		}
	}
	if s.field != nil {
		f.Satellites = s.field.States()
		f.Destroyed = s.field.Destroyed()
	}
	return f
}

// Bodies returns a copy of the bodies.
func (s *Simulator) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// TrailLen reports how many points body i currently holds in its trail.
func (s *Simulator) TrailLen(i int) int { return s.bodies[i].trail.Len() }

// Destroyed returns the number of satellites lost so far.
func (s *Simulator) Destroyed() uint64 {
	if s.field == nil {
		return 0
	}
	return s.field.Destroyed()
}

// Config returns the effective configuration, derived values included.
func (s *Simulator) Config() Config { return s.cfg }
