package slogutil

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Silent is above every standard level, so nothing is logged.
const Silent = slog.Level(100)

// NewLogger returns a logger writing the sqm line format to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(w, &slog.HandlerOptions{Level: level}))
}

// LevelFromString parses logging.level values. Unknown names map to info.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "silent", "off":
		return Silent
	default:
		return slog.LevelInfo
	}
}

// LevelFromVerbosity maps -v counts to a console level: warn by default,
// info for -v, debug for -vv. --quiet wins over any count.
func LevelFromVerbosity(verbosity int, quiet bool) slog.Level {
	switch {
	case quiet:
		return Silent
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// Options configures the CLI logger.
type Options struct {
	// Level applies to the console handler
	Level slog.Level

	// File, when set, also appends every record at FileLevel or above to this path
	File      string
	FileLevel slog.Level
}

// Setup builds the CLI logger: console output to w and an optional log file.
// The returned closer releases the file and is never nil. On a file error the
// console logger is still returned.
func Setup(w io.Writer, opts Options) (*slog.Logger, io.Closer, error) {
	console := NewHandler(w, &slog.HandlerOptions{Level: opts.Level})
	if opts.File == "" {
		return slog.New(console), nopCloser{}, nil
	}

	f, err := openLogFile(opts.File)
	if err != nil {
		return slog.New(console), nopCloser{}, err
	}
	file := NewHandler(f, &slog.HandlerOptions{Level: opts.FileLevel})
	return slog.New(fanout{console, file}), f, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// fanout sends each record to every handler enabled for its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f fanout) WithGroup(name string) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f fanout) each(fn func(slog.Handler) slog.Handler) fanout {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = fn(h)
	}
	return out
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
