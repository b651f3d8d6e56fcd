// Package game runs the simulator in a desktop window with ebiten.
package game

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/orbits/internal/chime"
	"github.com/iburimskiy/orbits/internal/config"
	"github.com/iburimskiy/orbits/internal/errs"
	"github.com/iburimskiy/orbits/internal/orbit"
)

const windowTitle = "orbits"

type game struct {
	ctx context.Context
	cfg *config.Config
	sim *orbit.Simulator
	log *slog.Logger

	chime *chime.Chime

	// screenshot: requested in Update, captured in Draw, saved in the next Update
	captureRequested bool
	captured         *image.RGBA

	screenW, screenH int
	shownFPS         int

	paused  bool
	lastErr error
}

func newGame(ctx context.Context, cfg *config.Config, sim *orbit.Simulator, log *slog.Logger) *game {
	return &game{
		ctx:     ctx,
		cfg:     cfg,
		sim:     sim,
		log:     log,
		screenW: cfg.Width,
		screenH: cfg.Height,
	}
}

// Run opens the window and blocks until it is closed, Esc/Q is pressed or ctx
// is cancelled.
func Run(ctx context.Context, cfg *config.Config, sim *orbit.Simulator, log *slog.Logger) error {
	g := newGame(ctx, cfg, sim, log)

	if cfg.Sound {
		c, err := startChime()
		if err != nil {
			log.Warn("sound disabled", "err", err)
		} else {
			g.chime = c
		}
	}

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(cfg.TPS)
	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}

	log.Info("window starting", "fullscreen", cfg.Fullscreen, "tps", cfg.TPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return errs.Wrap(err, errs.ErrDisplay, "game.run").
			WithAdvice("a graphical display is required; try --terminal")
	}
	log.Info("window closed", "elapsed", fmt.Sprintf("%.1fs", sim.RenderState().Elapsed))
	return nil
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.log.Debug("pause toggled", "paused", g.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.captureRequested = true
	}

	if g.captured != nil {
		img := g.captured
		g.captured = nil
		if err := saveScreenshot(img); err != nil {
			g.lastErr = err
			g.log.Error("screenshot failed", "err", err)
		}
	}

	if !g.paused {
		if lost := g.sim.Advance(g.cfg.TickSeconds()); lost > 0 {
			g.log.Debug("satellites lost", "count", lost, "total", g.sim.Destroyed())
			if g.chime != nil {
				g.chime.Ring(lost)
			}
		}
	}

	if fps := int(math.Round(ebiten.ActualFPS())); fps != g.shownFPS {
		g.shownFPS = fps
		ebiten.SetWindowTitle(fmt.Sprintf("%s (%d fps)", windowTitle, fps))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.drawFrame(screen, g.sim.RenderState())

	if g.captureRequested {
		g.captureRequested = false
		g.captured = capture(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.screenW, g.screenH = outsideWidth, outsideHeight
	}
	return g.screenW, g.screenH
}

// capture copies the screen pixels. ebiten and image.RGBA both use
// premultiplied alpha, so the bytes can be used as is.
func capture(screen *ebiten.Image) *image.RGBA {
	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)
	return img
}
