package scene

import (
	"math"
	"testing"

	"github.com/iburimskiy/orbits/internal/orbit"
)

func TestFitKeepsWorldVisible(t *testing.T) {
	cases := []struct {
		name         string
		w, h         int
		aspect       float64
		wantX, wantY float64
	}{
		{"square", 800, 800, 1, 1, 1},
		{"wide", 1600, 800, 1, 1, 1},
		{"tall", 400, 1000, 1, 0.5, 0.5},
		{"terminal", 200, 50, 2, 0.125, 0.0625},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := Fit(tc.w, tc.h, 800, 800, tc.aspect)
			if math.Abs(v.ScaleX-tc.wantX) > 1e-12 || math.Abs(v.ScaleY-tc.wantY) > 1e-12 {
				t.Fatalf("scale = (%v, %v), want (%v, %v)", v.ScaleX, v.ScaleY, tc.wantX, tc.wantY)
			}
			x, y := v.Project(orbit.Vec2{})
			if x != float64(tc.w)/2 || y != float64(tc.h)/2 {
				t.Fatalf("origin projected to (%v, %v), want surface centre", x, y)
			}
			// world corners stay on the surface
			x, y = v.Project(orbit.Vec2{X: 400, Y: 400})
			if x > float64(tc.w)+1e-9 || y > float64(tc.h)+1e-9 {
				t.Fatalf("corner projected to (%v, %v), off a %dx%d surface", x, y, tc.w, tc.h)
			}
		})
	}
}

func TestTrailFade(t *testing.T) {
	if got := TrailFade(0, 5, 0.25); got != 0.25 {
		t.Errorf("oldest alpha = %v, want 0.25", got)
	}
	if got := TrailFade(4, 5, 0.25); got != 1 {
		t.Errorf("newest alpha = %v, want 1", got)
	}
	if got := TrailFade(0, 1, 0.25); got != 1 {
		t.Errorf("single point alpha = %v, want 1", got)
	}
	prev := -1.0
	for i := 0; i < 10; i++ {
		a := TrailFade(i, 10, 0.1)
		if a <= prev {
			t.Fatalf("alpha not increasing at %d: %v <= %v", i, a, prev)
		}
		prev = a
	}
}

func TestTrailSegments(t *testing.T) {
	trail := []orbit.Vec2{{X: 0}, {X: 1}, {X: 2}}
	segs := TrailSegments(trail, nil, 0)
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[0].From.X != 0 || segs[1].To.X != 2 || segs[1].Alpha != 1 {
		t.Fatalf("segments = %+v", segs)
	}

	head := orbit.Vec2{X: 3}
	segs = TrailSegments(trail, &head, 0)
	if len(segs) != 3 || segs[2].To != head {
		t.Fatalf("segments with head = %+v", segs)
	}
	if len(trail) != 3 {
		t.Fatal("TrailSegments modified its input")
	}

	if TrailSegments(nil, &head, 0) != nil {
		t.Fatal("empty trail should produce no segments")
	}
	if TrailSegments(trail[:1], nil, 0) != nil {
		t.Fatal("single point should produce no segments")
	}
}

func TestHueColor(t *testing.T) {
	c := HueColor(0, 1, 1, 1)
	if c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("hue 0 = %+v, want opaque red", c)
	}
	c = HueColor(480, 1, 1, 0.5) // wraps to 120
	if c.G != 255 || c.R != 0 || c.A != 127 {
		t.Errorf("hue 480 = %+v, want half-transparent green", c)
	}
	c = HueColor(-120, 1, 1, 2) // wraps to 240, alpha clamped
	if c.B != 255 || c.A != 255 {
		t.Errorf("hue -120 = %+v, want opaque blue", c)
	}
	if d := Dim(HueColor(0, 1, 1, 1), 0.5); d.R != 127 || d.A != 255 {
		t.Errorf("Dim = %+v", d)
	}
}

func TestFormatElapsed(t *testing.T) {
	if got := FormatElapsed(125.7); got != "02:05" {
		t.Errorf("FormatElapsed = %q, want 02:05", got)
	}
}
