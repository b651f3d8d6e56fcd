package orbit

import "testing"

func newTestField(trail int) *SatelliteField {
	cfg := DefaultSatelliteConfig()
	cfg.Enabled = true
	cfg.SpawnRate = 0
	return NewSatelliteField(cfg, trail, 800, 800, 7)
}

func TestSatelliteLeavingWorldDies(t *testing.T) {
	f := newTestField(3)
	f.Spawn(Vec2{X: 390, Y: 0}, Vec2{X: 600, Y: 0})

	died := f.Step(1.0/30, nil)
	if died != 1 {
		t.Fatalf("Step returned %d deaths, want 1", died)
	}
	states := f.States()
	if len(states) != 1 || states[0].Alive {
		t.Fatalf("states = %+v, want one dead satellite", states)
	}
	if f.Destroyed() != 1 {
		t.Fatalf("Destroyed = %d, want 1", f.Destroyed())
	}
}

func TestDeadSatelliteDrainsThenDisappears(t *testing.T) {
	const trail = 4
	f := newTestField(trail)
	f.Spawn(Vec2{X: 0, Y: 300}, Vec2{X: 50, Y: 0})
	for i := 0; i < trail; i++ {
		f.Step(1.0/60, nil)
	}
	if got := len(f.States()[0].Trail); got != trail {
		t.Fatalf("trail len %d, want %d", got, trail)
	}

	// push it out of the world
	f.sats[0].pos = Vec2{X: 1000, Y: 1000}
	f.Step(1.0/60, nil)
	if f.Len() != 1 || f.States()[0].Alive {
		t.Fatal("satellite should be dead but still tracked while its trail drains")
	}
	for i := 0; i < trail; i++ {
		f.Step(1.0/60, nil)
	}
	if f.Len() != 0 {
		t.Fatalf("field still tracks %d satellites after the trail drained", f.Len())
	}
}

func TestSatelliteHittingSourceDies(t *testing.T) {
	f := newTestField(2)
	f.Spawn(Vec2{X: 30, Y: 0}, Vec2{X: -100, Y: 0})
	sources := []source{{Radius: 25, Mass: 1000}}
	if died := f.Step(1.0/60, sources); died != 1 {
		t.Fatalf("Step returned %d deaths, want 1", died)
	}
}

func TestGravityPullsTowardSource(t *testing.T) {
	f := newTestField(1)
	f.Spawn(Vec2{X: 200, Y: 0}, Vec2{})
	f.Step(1.0/60, []source{{Radius: 25, Mass: 1000}})
	s := f.sats[0]
	if s.vel.X >= 0 || s.pos.X >= 200 {
		t.Fatalf("satellite at %v with velocity %v, want pulled toward the origin", s.pos, s.vel)
	}
	if s.vel.Y != 0 {
		t.Fatalf("velocity %v picked up a sideways component", s.vel)
	}
}

func TestLiveSatellitesStayInsideWorld(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumPlanets = 3
	cfg.TrailLength = 20
	cfg.Seed = 42
	cfg.Satellites.Enabled = true
	cfg.Satellites.SpawnRate = 30
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	half := Vec2{cfg.Width / 2, cfg.Height / 2}
	r := cfg.Satellites.Radius
	spawned := false
	for i := 0; i < 600; i++ {
		s.Advance(1.0 / 60)
		for _, sat := range s.RenderState().Satellites {
			spawned = true
			if !sat.Alive {
				continue
			}
			p := sat.Pos
			if p.X+r < -half.X || p.X-r > half.X || p.Y+r < -half.Y || p.Y-r > half.Y {
				t.Fatalf("step %d: live satellite at %v outside the world", i, p)
			}
		}
	}
	if !spawned {
		t.Fatal("no satellite spawned in ten simulated seconds")
	}
}

func TestAdvanceReportsLostSatellites(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumPlanets = 1
	cfg.Seed = 5
	cfg.Satellites.Enabled = true
	cfg.Satellites.SpawnRate = 0
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.field.Spawn(Vec2{X: cfg.Width/2 - 10, Y: 0}, Vec2{X: 1200, Y: 0})
	s.field.Spawn(Vec2{X: 0, Y: -cfg.Height/2 + 10}, Vec2{X: 0, Y: -1200})

	if lost := s.Advance(1.0 / 30); lost != 2 {
		t.Fatalf("Advance lost %d satellites, want 2", lost)
	}
	if s.Destroyed() != 2 {
		t.Fatalf("Destroyed = %d, want 2", s.Destroyed())
	}
	if lost := s.Advance(1.0 / 30); lost != 0 {
		t.Fatalf("dead satellites counted again: %d", lost)
	}
}

func TestSatellitesDisabledByDefault(t *testing.T) {
	s, err := New(Config{NumPlanets: 2, TrailLength: 5, Seed: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 120; i++ {
		s.Advance(1.0 / 60)
	}
	if n := len(s.RenderState().Satellites); n != 0 {
		t.Fatalf("got %d satellites with the field disabled", n)
	}
}
