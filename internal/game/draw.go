package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/orbits/internal/config"
	"github.com/iburimskiy/orbits/internal/orbit"
	"github.com/iburimskiy/orbits/internal/scene"
)

var (
	background = color.NRGBA{A: 255}
	orbitGuide = color.NRGBA{R: 40, G: 44, B: 60, A: 255}
)

func (g *game) drawFrame(screen *ebiten.Image, f orbit.Frame) {
	screen.Fill(background)

	view := scene.Fit(g.screenW, g.screenH, float64(g.cfg.Width), float64(g.cfg.Height), 1)

	// Draw orbit guides
	cx, cy := view.Project(f.Central.Pos)
	for _, b := range f.Bodies {
		r := view.Length(b.Pos.Sub(f.Central.Pos).Len())
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r), 1, orbitGuide, true)
	}

	// Draw trails under the bodies
	for _, b := range f.Bodies {
		head := b.Pos
		g.drawTrail(screen, view, b.Trail, &head, b.Hue)
	}
	for _, s := range f.Satellites {
		var head *orbit.Vec2
		if s.Alive {
			p := s.Pos
			head = &p
		}
		g.drawTrail(screen, view, s.Trail, head, s.Hue)
	}

	// Draw central body
	sun := scene.HueColor(f.Central.Hue, 0.8, 1, 1)
	drawDisc(screen, view, f.Central, sun)

	// Draw planets
	for _, b := range f.Bodies {
		drawDisc(screen, view, b.Disc, scene.HueColor(b.Hue, config.PlanetSaturation, config.PlanetValue, 1))
	}

	// Draw satellites
	for _, s := range f.Satellites {
		if s.Alive {
			drawDisc(screen, view, s.Disc, scene.HueColor(s.Hue, 0.6, 1, 1))
		}
	}

	g.drawStatus(screen, f)
}

func (g *game) drawTrail(screen *ebiten.Image, view scene.Viewport, trail []orbit.Vec2, head *orbit.Vec2, hue float64) {
	for _, seg := range scene.TrailSegments(trail, head, config.TrailMinAlpha) {
		x0, y0 := view.Project(seg.From)
		x1, y1 := view.Project(seg.To)
		clr := scene.HueColor(hue, config.PlanetSaturation, config.PlanetValue, seg.Alpha)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), config.TrailStrokeWidth, clr, true)
	}
}

func drawDisc(screen *ebiten.Image, view scene.Viewport, d orbit.Disc, clr color.Color) {
	x, y := view.Project(d.Pos)
	r := view.Length(d.Radius)
	if r < 1 {
		r = 1
	}
	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), clr, true)
}

func (g *game) drawStatus(screen *ebiten.Image, f orbit.Frame) {
	status := scene.FormatElapsed(f.Elapsed)
	if g.cfg.Satellites.Enabled {
		status += fmt.Sprintf("  satellites %d  lost %d", countAlive(f.Satellites), f.Destroyed)
	}
	if g.paused {
		status += "  | paused - Space to resume"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func countAlive(sats []orbit.SatelliteState) int {
	n := 0
	for _, s := range sats {
		if s.Alive {
			n++
		}
	}
	return n
}
