// Package logger initialises the process-wide slog logger.
// Output goes to stderr and, optionally, to an append-only file. The terminal
// renderer disables the stderr sink while tcell owns the screen.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options selects the level, handler format and sinks.
type Options struct {
	Level    string // debug | info | warn | error
	Format   string // text | json
	File     string
	NoStderr bool
}

// ParseLevel maps a level name to a slog.Level. Unknown names fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init builds the logger, installs it as the slog default and returns it
// together with a close function for the file sink.
func Init(opts Options) (*slog.Logger, func() error, error) {
	var writers []io.Writer
	if !opts.NoStderr {
		writers = append(writers, os.Stderr)
	}

	closeFn := func() error { return nil }
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0750); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
		closeFn = f.Close
	}

	out := io.Discard
	if len(writers) > 0 {
		out = io.MultiWriter(writers...)
	}
	return install(out, opts), closeFn, nil
}

func install(out io.Writer, opts Options) *slog.Logger {
	lvl := ParseLevel(opts.Level)
	hopts := &slog.HandlerOptions{Level: lvl, AddSource: lvl == slog.LevelDebug}

	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(out, hopts)
	} else {
		handler = slog.NewTextHandler(out, hopts)
	}
	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}
