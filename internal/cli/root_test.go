package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/iburimskiy/orbits/internal/config"
	"github.com/iburimskiy/orbits/internal/orbit"
	"github.com/iburimskiy/orbits/internal/pprint"
)

type recorder struct {
	calls  int
	cfg    *config.Config
	bodies int
	err    error
}

func (r *recorder) run(_ context.Context, cfg *config.Config, sim *orbit.Simulator, _ *slog.Logger) error {
	r.calls++
	r.cfg = cfg
	r.bodies = len(sim.Bodies())
	return r.err
}

func setup(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr := pprint.Out, pprint.ErrOut
	pprint.Out, pprint.ErrOut = out, errOut
	prevLog := slog.Default()
	t.Cleanup(func() {
		pprint.Out, pprint.ErrOut = prevOut, prevErr
		slog.SetDefault(prevLog)
	})
	return out, errOut
}

func TestExecuteRejectsInvalidArguments(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"non-numeric planets", []string{"--num_planets", "abc"}, "num_planets"},
		{"non-numeric short", []string{"-n", "x1"}, "num_planets"},
		{"zero planets", []string{"-n", "0"}, "num_planets"},
		{"negative trail", []string{"--trail_length", "-4"}, "trail_length"},
		{"non-numeric trail", []string{"-l", "long"}, "trail_length"},
		{"huge trail", []string{"-l", "9000000000000000000"}, "trail_length"},
		{"huge planets", []string{"-n", "9000000000000000000"}, "num_planets"},
		{"huge tps", []string{"--terminal", "--tps", "2000000000"}, "tps"},
		{"positional argument", []string{"extra"}, "extra"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, errOut := setup(t)
			win, term := &recorder{}, &recorder{}
			code := Execute(context.Background(), tc.args, Runners{Window: win.run, Terminal: term.run})
			if code == 0 {
				t.Fatal("exit code 0, want non-zero")
			}
			if win.calls+term.calls != 0 {
				t.Fatal("renderer started despite invalid input")
			}
			if !strings.Contains(errOut.String(), tc.want) {
				t.Errorf("stderr %q does not mention %q", errOut.String(), tc.want)
			}
		})
	}
}

func TestExecuteVersionAndHelp(t *testing.T) {
	for _, args := range [][]string{{"-V"}, {"--version"}, {"-h"}, {"--help"}} {
		out, _ := setup(t)
		win := &recorder{}
		if code := Execute(context.Background(), args, Runners{Window: win.run}); code != 0 {
			t.Fatalf("%v: exit code %d, want 0", args, code)
		}
		if win.calls != 0 {
			t.Fatalf("%v: renderer started", args)
		}
		if !strings.Contains(out.String(), Version) {
			t.Errorf("%v: output missing version %q", args, Version)
		}
	}
}

func TestHelpExplainsSatellites(t *testing.T) {
	out, _ := setup(t)
	if code := Execute(context.Background(), []string{"--help"}, Runners{}); code != 0 {
		t.Fatalf("exit code %d, want 0", code)
	}
	if !strings.Contains(out.String(), "off by default") {
		t.Errorf("help does not say satellites are off by default:\n%s", out.String())
	}
}

func TestExecuteStartsWindowRenderer(t *testing.T) {
	setup(t)
	win, term := &recorder{}, &recorder{}
	code := Execute(context.Background(), []string{"-n", "7", "-l", "3", "-f", "--seed", "9"}, Runners{Window: win.run, Terminal: term.run})
	if code != 0 {
		t.Fatalf("exit code %d, want 0", code)
	}
	if win.calls != 1 || term.calls != 0 {
		t.Fatalf("window calls %d, terminal calls %d", win.calls, term.calls)
	}
	if win.cfg.NumPlanets != 7 || win.cfg.TrailLength != 3 || !win.cfg.Fullscreen || win.cfg.Seed != 9 {
		t.Errorf("config = %s", win.cfg)
	}
	if win.bodies != 7 {
		t.Errorf("simulator has %d bodies, want 7", win.bodies)
	}
}

func TestExecuteFlagBeatsEnv(t *testing.T) {
	setup(t)
	t.Setenv("ORBITS_NUM_PLANETS", "4")
	t.Setenv("ORBITS_TRAIL_LENGTH", "11")
	win := &recorder{}
	if code := Execute(context.Background(), []string{"-n", "2"}, Runners{Window: win.run}); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if win.cfg.NumPlanets != 2 || win.cfg.TrailLength != 11 {
		t.Errorf("config = %s, want planets from flag and trail from env", win.cfg)
	}
}

func TestExecuteTerminalRenderer(t *testing.T) {
	setup(t)
	win, term := &recorder{}, &recorder{}
	code := Execute(context.Background(), []string{"--terminal", "--satellites"}, Runners{Window: win.run, Terminal: term.run})
	if code != 0 {
		t.Fatalf("exit code %d, want 0", code)
	}
	if term.calls != 1 || win.calls != 0 {
		t.Fatalf("window calls %d, terminal calls %d", win.calls, term.calls)
	}
	if !term.cfg.Satellites.Enabled {
		t.Error("satellites flag not applied")
	}
}

func TestExecuteRendererFailure(t *testing.T) {
	_, errOut := setup(t)
	win := &recorder{err: errors.New("no display")}
	if code := Execute(context.Background(), nil, Runners{Window: win.run}); code == 0 {
		t.Fatal("exit code 0 after renderer failure")
	}
	if !strings.Contains(errOut.String(), "no display") {
		t.Errorf("stderr %q missing renderer error", errOut.String())
	}
}
