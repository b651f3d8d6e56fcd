package game

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/orbits/internal/chime"
	"github.com/iburimskiy/orbits/internal/config"
	"github.com/iburimskiy/orbits/internal/errs"
)

// startChime opens the audio device and starts the endless chime stream.
func startChime() (*chime.Chime, error) {
	sr := beep.SampleRate(config.ChimeSampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return nil, errs.Wrap(err, errs.ErrAudio, "game.chime")
	}
	c := chime.New(sr)
	speaker.Play(c)
	return c, nil
}

// saveScreenshot asks where to save img and writes it as PNG. Cancelling the
// dialog is not an error.
func saveScreenshot(img image.Image) error {
	name := fmt.Sprintf("orbits-%s.png", time.Now().Format("20060102-150405"))
	path, err := zenity.SelectFileSave(
		zenity.Title("Save Screenshot"),
		zenity.Filename(name),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return errs.Wrap(err, errs.ErrScreenshot, "game.screenshot.dialog")
	}
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		path += ".png"
	}

	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, errs.ErrScreenshot, "game.screenshot.create").WithField(path)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return errs.Wrap(err, errs.ErrScreenshot, "game.screenshot.encode").WithField(path)
	}
	if err := f.Close(); err != nil {
		return errs.Wrap(err, errs.ErrScreenshot, "game.screenshot.close").WithField(path)
	}
	return nil
}

// ShowError pops up a native error dialog; used when the window cannot start
// and there may be no terminal to read stderr from.
func ShowError(msg string) {
	_ = zenity.Error(msg, zenity.Title("orbits"), zenity.ErrorIcon)
}
