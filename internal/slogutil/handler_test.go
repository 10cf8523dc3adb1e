package slogutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Info("Analyzed file", "path", "src/app.js", "functions", 3)

	output := buf.String()
	for _, want := range []string{"[info]", "Analyzed file", " | ", "path=src/app.js", "functions=3"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestHandler_WithoutTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}).WithoutTime()
	logger := slog.New(h)

	logger.Warn("Skipping file", "path", "a.js", "ratio", 0.5)

	want := "[warn] Skipping file | path=a.js ratio=0.500\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestHandler_GroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil).WithoutTime()
	logger := slog.New(h).With("run", "abc").WithGroup("cache")

	logger.Info("Lookup", "hit", true, slog.Group("file", "path", "a.js"))

	want := "[info] Lookup | run=abc cache.hit=true cache.file.path=a.js\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestHandler_Levels(t *testing.T) {
	tests := []struct {
		logFunc  func(*slog.Logger)
		expected string
	}{
		{func(l *slog.Logger) { l.Debug("debug") }, "[debug]"},
		{func(l *slog.Logger) { l.Info("info") }, "[info]"},
		{func(l *slog.Logger) { l.Warn("warn") }, "[warn]"},
		{func(l *slog.Logger) { l.Error("error") }, "[error]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, slog.LevelDebug)
			tt.logFunc(logger)

			if !strings.Contains(buf.String(), tt.expected) {
				t.Errorf("expected %s in output, got: %s", tt.expected, buf.String())
			}
		})
	}
}

func TestHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("debug and info should be filtered, got: %s", output)
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Errorf("warn and error should be included, got: %s", output)
	}
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{" error ", slog.LevelError},
		{"silent", Silent},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LevelFromString(tt.input); got != tt.expected {
				t.Errorf("LevelFromString(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		quiet     bool
		expected  slog.Level
	}{
		{0, false, slog.LevelWarn},
		{1, false, slog.LevelInfo},
		{2, false, slog.LevelDebug},
		{3, false, slog.LevelDebug},
		{0, true, Silent},
		{5, true, Silent},
	}

	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity, tt.quiet); got != tt.expected {
			t.Errorf("LevelFromVerbosity(%d, %v) = %v, want %v", tt.verbosity, tt.quiet, got, tt.expected)
		}
	}
}

func TestFanout(t *testing.T) {
	var info, warn bytes.Buffer
	h := fanout{
		NewHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}).WithoutTime(),
		NewHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}).WithoutTime(),
	}

	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled on both handlers")
	}

	logger := slog.New(h).With("run", "r1")
	logger.Info("info message")
	logger.Warn("warn message")

	if info.String() != "[info] info message | run=r1\n[warn] warn message | run=r1\n" {
		t.Errorf("info handler output = %q", info.String())
	}
	if warn.String() != "[warn] warn message | run=r1\n" {
		t.Errorf("warn handler output = %q", warn.String())
	}
}

func TestSetup(t *testing.T) {
	t.Run("console only", func(t *testing.T) {
		var buf bytes.Buffer
		logger, closer, err := Setup(&buf, Options{Level: slog.LevelWarn})
		if err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
		defer closer.Close()

		logger.Info("hidden")
		logger.Warn("shown")
		if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
			t.Errorf("unexpected console output: %s", buf.String())
		}
	})

	t.Run("with file", func(t *testing.T) {
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "logs", "sqm.log")
		logger, closer, err := Setup(&buf, Options{Level: Silent, File: path, FileLevel: slog.LevelDebug})
		if err != nil {
			t.Fatalf("Setup() error = %v", err)
		}

		logger.Debug("Tokenized file", "mode", "regex")
		if err := closer.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}

		if buf.Len() != 0 {
			t.Errorf("console should be silent, got: %s", buf.String())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if !strings.Contains(string(data), "[debug] Tokenized file | mode=regex") {
			t.Errorf("log file = %q", data)
		}
	})
}
