package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DarthSidM/sqm-project/internal/config"
	sqmerrors "github.com/DarthSidM/sqm-project/internal/errors"
	"github.com/DarthSidM/sqm-project/internal/slogutil"
	"github.com/DarthSidM/sqm-project/internal/storage"
)

// getRepoRoot returns the project root directory.
func getRepoRoot() (string, error) {
	return os.Getwd()
}

// loadConfig loads and validates the configuration for root.
func loadConfig(root string) (*config.Config, error) {
	cfg, err := config.LoadConfig(root, configFlag)
	if err != nil {
		return nil, sqmerrors.New(sqmerrors.ConfigInvalid, "failed to load config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, sqmerrors.New(sqmerrors.ConfigInvalid, "invalid config", err)
	}
	return cfg, nil
}

// newLogger builds the stderr logger. -v and --quiet take precedence over
// logging.level; --log-file over logging.file.
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer) {
	level := slogutil.LevelFromString(cfg.Logging.Level)
	if verbosity > 0 || quietFlag {
		level = slogutil.LevelFromVerbosity(verbosity, quietFlag)
	}

	file := cfg.Logging.File
	if logFile != "" {
		file = logFile
	}

	logger, closer, err := slogutil.Setup(os.Stderr, slogutil.Options{
		Level:     level,
		File:      file,
		FileLevel: slogutil.LevelFromString(cfg.Logging.FileLevel),
	})
	if err != nil {
		logger.Warn("Could not open log file", "path", file, "error", err.Error())
	}
	return logger, closer
}

// openDatabase opens the project database named by the config.
func openDatabase(root string, cfg *config.Config, logger *slog.Logger) (*storage.DB, error) {
	db, err := storage.Open(cfg.DatabasePath(root), logger)
	if err != nil {
		return nil, sqmerrors.New(sqmerrors.StorageFailed, "failed to open database", err)
	}
	return db, nil
}

// newContext returns a context cancelled on SIGINT or SIGTERM.
func newContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// openOutput returns stdout or the named file.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
