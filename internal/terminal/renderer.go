// Package terminal runs the simulator inside a terminal using tcell.
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/orbits/internal/config"
	"github.com/iburimskiy/orbits/internal/errs"
	"github.com/iburimskiy/orbits/internal/orbit"
	"github.com/iburimskiy/orbits/internal/scene"
)

const (
	// terminal cells are roughly twice as tall as they are wide
	cellAspect = 2.0

	runeCentral   = '@'
	runePlanet    = 'o'
	runeSatellite = '*'
	runeTrail     = '·'
)

// Renderer draws frames into a tcell screen.
type Renderer struct {
	screen tcell.Screen
	cfg    *config.Config
	base   tcell.Style
}

// NewRenderer wraps an initialised screen.
func NewRenderer(screen tcell.Screen, cfg *config.Config) *Renderer {
	return &Renderer{
		screen: screen,
		cfg:    cfg,
		base:   tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
	}
}

// RenderFrame clears the screen and draws f.
func (r *Renderer) RenderFrame(f orbit.Frame, paused bool) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	// keep the bottom row for the status line
	view := scene.Fit(w, h-1, float64(r.cfg.Width), float64(r.cfg.Height), cellAspect)

	for _, b := range f.Bodies {
		head := b.Pos
		r.drawTrail(view, b.Trail, &head, b.Hue)
	}
	for _, s := range f.Satellites {
		r.drawTrail(view, s.Trail, nil, s.Hue)
	}

	r.plot(view, f.Central.Pos, runeCentral, r.style(f.Central.Hue, 1))
	for _, b := range f.Bodies {
		r.plot(view, b.Pos, runePlanet, r.style(b.Hue, 1).Bold(true))
	}
	for _, s := range f.Satellites {
		if s.Alive {
			r.plot(view, s.Pos, runeSatellite, r.style(s.Hue, 1))
		}
	}

	status := fmt.Sprintf(" %s  planets %d", scene.FormatElapsed(f.Elapsed), len(f.Bodies))
	if r.cfg.Satellites.Enabled {
		status += fmt.Sprintf("  satellites %d  lost %d", len(f.Satellites), f.Destroyed)
	}
	if paused {
		status += "  [paused]"
	}
	status += "  space pause · q quit"
	r.text(0, h-1, status, r.base.Foreground(tcell.ColorGray))

	r.screen.Show()
}

func (r *Renderer) drawTrail(view scene.Viewport, trail []orbit.Vec2, head *orbit.Vec2, hue float64) {
	for _, seg := range scene.TrailSegments(trail, head, config.TrailMinAlpha) {
		r.plot(view, seg.From, runeTrail, r.style(hue, seg.Alpha))
	}
}

// style fades the body colour towards black; terminals have no alpha.
func (r *Renderer) style(hue, alpha float64) tcell.Style {
	c := scene.Dim(scene.HueColor(hue, config.PlanetSaturation, config.PlanetValue, 1), alpha)
	return r.base.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func (r *Renderer) plot(view scene.Viewport, p orbit.Vec2, ch rune, style tcell.Style) {
	x, y := view.Project(p)
	cx, cy := int(math.Floor(x)), int(math.Floor(y))
	w, h := r.screen.Size()
	if cx < 0 || cy < 0 || cx >= w || cy >= h-1 {
		return
	}
	r.screen.SetContent(cx, cy, ch, nil, style)
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// Run owns the screen until q, Esc, Ctrl-C or ctx cancellation. The event
// poller only forwards events; the simulator is touched from this goroutine alone.
func Run(ctx context.Context, cfg *config.Config, sim *orbit.Simulator, log *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errs.Wrap(err, errs.ErrDisplay, "terminal.screen")
	}
	if err := screen.Init(); err != nil {
		return errs.Wrap(err, errs.ErrDisplay, "terminal.init")
	}
	defer screen.Fini()
	screen.HideCursor()

	return loop(ctx, screen, cfg, sim, log)
}

func loop(ctx context.Context, screen tcell.Screen, cfg *config.Config, sim *orbit.Simulator, log *slog.Logger) error {
	r := NewRenderer(screen, cfg)

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TPS))
	defer ticker.Stop()

	paused := false
	log.Info("terminal renderer started", "tps", cfg.TPS)
	for {
		select {
		case <-ctx.Done():
			log.Info("terminal renderer stopped", "reason", ctx.Err())
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
					return nil
				case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
					return nil
				case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
					paused = !paused
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			if !paused {
				sim.Advance(cfg.TickSeconds())
			}
			r.RenderFrame(sim.RenderState(), paused)
		}
	}
}
