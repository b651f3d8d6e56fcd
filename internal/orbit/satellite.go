package orbit

import (
	"math"
	"math/rand"
)

// SatelliteConfig controls the satellite field. Satellites spawn at random, fall
// under the gravity of the central body and the planets, and die when they leave
// the world or hit something.
type SatelliteConfig struct {
	Enabled     bool
	SpawnRate   float64 // expected spawns per second
	Speed       float64 // initial speed, world units per second
	Radius      float64
	Gravity     float64 // G
	CentralMass float64
	PlanetMass  float64
}

func DefaultSatelliteConfig() SatelliteConfig {
	return SatelliteConfig{
		SpawnRate:   0.6,
		Speed:       200,
		Radius:      4,
		Gravity:     4000,
		CentralMass: 1000,
		PlanetMass:  150,
	}
}

type source struct {
	Pos    Vec2
	Radius float64
	Mass   float64
}

type satellite struct {
	pos   Vec2
	vel   Vec2
	hue   float64
	dead  bool
	trail *TrailBuffer
}

// SatelliteField owns the live and dying satellites.
type SatelliteField struct {
	cfg         SatelliteConfig
	trailLength int
	half        Vec2
	rng         *rand.Rand
	sats        []*satellite
	destroyed   uint64
}

func NewSatelliteField(cfg SatelliteConfig, trailLength int, width, height float64, seed int64) *SatelliteField {
	def := DefaultSatelliteConfig()
	if cfg.Speed <= 0 {
		cfg.Speed = def.Speed
	}
	if cfg.Radius <= 0 {
		cfg.Radius = def.Radius
	}
	if cfg.Gravity <= 0 {
		cfg.Gravity = def.Gravity
	}
	if cfg.CentralMass <= 0 {
		cfg.CentralMass = def.CentralMass
	}
	if cfg.PlanetMass < 0 {
		cfg.PlanetMass = 0
	}
	if cfg.SpawnRate < 0 {
		cfg.SpawnRate = 0
	}
	return &SatelliteField{
		cfg:         cfg,
		trailLength: trailLength,
		half:        Vec2{width / 2, height / 2},
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Spawn adds a satellite at pos moving with vel.
func (f *SatelliteField) Spawn(pos, vel Vec2) {
	f.sats = append(f.sats, &satellite{
		pos:   pos,
		vel:   vel,
		hue:   f.rng.Float64() * 360,
		trail: NewTrailBuffer(f.trailLength),
	})
}

func (f *SatelliteField) spawnRandom() {
	pos := Vec2{
		X: (f.rng.Float64()*2 - 1) * f.half.X,
		Y: (f.rng.Float64()*2 - 1) * f.half.Y,
	}
	heading := f.rng.Float64() * 2 * math.Pi
	f.Spawn(pos, polar(f.cfg.Speed, heading))
}

// Step integrates one tick and returns how many satellites died during it.
func (f *SatelliteField) Step(dt float64, sources []source) int {
	if dt > 0 && f.rng.Float64() < f.cfg.SpawnRate*dt {
		f.spawnRandom()
	}

	died := 0
	for _, s := range f.sats {
		if s.dead {
			s.trail.PopOldest()
			continue
		}
		for _, src := range sources {
			d := s.pos.Sub(src.Pos)
			distSq := d.X*d.X + d.Y*d.Y
			if distSq == 0 {
				continue
			}
			dv := f.cfg.Gravity * src.Mass * dt / distSq
			s.vel = s.vel.Sub(d.Scale(dv / math.Sqrt(distSq)))
		}
		s.pos = s.pos.Add(s.vel.Scale(dt))
		s.trail.Push(s.pos)

		if f.outside(s.pos) || f.collides(s.pos, sources) {
			s.dead = true
			died++
		}
	}

	// drop satellites whose trail has fully drained
	kept := f.sats[:0]
	for _, s := range f.sats {
		if !s.dead || s.trail.Len() > 0 {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(f.sats); i++ {
		f.sats[i] = nil
	}
	f.sats = kept
	f.destroyed += uint64(died)
	return died
}

func (f *SatelliteField) outside(p Vec2) bool {
	r := f.cfg.Radius
	return p.X+r < -f.half.X || p.Y+r < -f.half.Y || p.X-r > f.half.X || p.Y-r > f.half.Y
}

func (f *SatelliteField) collides(p Vec2, sources []source) bool {
	for _, src := range sources {
		if p.Sub(src.Pos).Len() < f.cfg.Radius+src.Radius {
			return true
		}
	}
	return false
}

// Len returns the number of satellites still tracked, dying ones included.
func (f *SatelliteField) Len() int { return len(f.sats) }

// Destroyed returns the total number of satellites that have died.
func (f *SatelliteField) Destroyed() uint64 { return f.destroyed }

// States returns a copy of every tracked satellite.
func (f *SatelliteField) States() []SatelliteState {
	out := make([]SatelliteState, len(f.sats))
	for i, s := range f.sats {
		out[i] = SatelliteState{
			Disc:  Disc{Pos: s.pos, Radius: f.cfg.Radius, Hue: s.hue},
			Alive: !s.dead,
			Trail: s.trail.Snapshot(),
		}
	}
	return out
}
