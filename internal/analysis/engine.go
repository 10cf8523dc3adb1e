// Package analysis runs the per-file metrics pipeline over discovered source
// trees and reduces the results into one project report.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DarthSidM/sqm-project/internal/aggregate"
	"github.com/DarthSidM/sqm-project/internal/callgraph"
	"github.com/DarthSidM/sqm-project/internal/discovery"
	sqmerrors "github.com/DarthSidM/sqm-project/internal/errors"
	"github.com/DarthSidM/sqm-project/internal/extract"
	"github.com/DarthSidM/sqm-project/internal/metrics"
	"github.com/DarthSidM/sqm-project/internal/source"
	"github.com/DarthSidM/sqm-project/internal/tokenizer"
	"github.com/DarthSidM/sqm-project/internal/version"
)

// Source loads the text of one file.
type Source interface {
	Read(ctx context.Context, location string) (string, error)
}

// Cache stores per-file metrics keyed by path and content fingerprint.
// *storage.DB satisfies it.
type Cache interface {
	LookupFile(ctx context.Context, path, fingerprint string) ([]byte, bool, error)
	StoreFile(ctx context.Context, path, fingerprint string, data []byte) error
}

// Options configures an Engine.
type Options struct {
	// Workers bounds concurrent file analysis; <= 0 means runtime.NumCPU()
	Workers int

	Discovery discovery.Options

	// Source defaults to source.NewReader()
	Source Source

	// Cache is optional
	Cache Cache
}

// Engine analyzes files and directory trees.
type Engine struct {
	tok       *tokenizer.Tokenizer
	src       Source
	cache     Cache
	logger    *slog.Logger
	workers   int
	discovery discovery.Options
}

// NewEngine creates an Engine. A nil tokenizer uses tokenizer.NewDefault.
func NewEngine(tok *tokenizer.Tokenizer, logger *slog.Logger, opts Options) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if tok == nil {
		tok = tokenizer.NewDefault(logger)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	src := opts.Source
	if src == nil {
		src = source.NewReader()
	}
	disc := opts.Discovery
	if len(disc.Extensions) == 0 && len(disc.ExcludeDirs) == 0 {
		disc = discovery.DefaultOptions()
	}

	return &Engine{
		tok:       tok,
		src:       src,
		cache:     opts.Cache,
		logger:    logger,
		workers:   workers,
		discovery: disc,
	}
}

// FileResult is the outcome of analyzing one file. Exactly one of Metrics
// and Err is set.
type FileResult struct {
	Path    string
	Metrics *aggregate.FileMetrics
	Err     error

	// Cached is true when Metrics came from the cache
	Cached bool
}

// AnalyzeFile reads and measures one file. Failures are returned in
// FileResult.Err as *errors.SqmError, never as panics.
func (e *Engine) AnalyzeFile(ctx context.Context, path string) FileResult {
	text, err := e.src.Read(ctx, path)
	if err != nil {
		return FileResult{
			Path: path,
			Err:  sqmerrors.New(sqmerrors.FileUnreadable, "could not read "+path, err),
		}
	}

	key := e.cacheKey(path, text)
	if fm, ok := e.lookup(ctx, path, key); ok {
		return FileResult{Path: path, Metrics: fm, Cached: true}
	}

	fm, err := e.Measure(ctx, path, text)
	if err != nil {
		return FileResult{
			Path: path,
			Err:  sqmerrors.New(sqmerrors.AnalysisFailed, "could not analyze "+path, err),
		}
	}

	e.store(ctx, path, key, fm)
	return FileResult{Path: path, Metrics: fm}
}

// Measure computes every per-file metric for text. A panic in any
// calculator is returned as an error.
func (e *Engine) Measure(ctx context.Context, path, text string) (fm *aggregate.FileMetrics, err error) {
	defer func() {
		if r := recover(); r != nil {
			fm = nil
			err = fmt.Errorf("panic while measuring: %v", r)
		}
	}()

	tokens, mode := e.tok.Tokenize(ctx, path, []byte(text))
	operators, operands := tokenizer.Classify(tokens)

	graph := callgraph.Build(extract.Functions(text))

	return &aggregate.FileMetrics{
		Path:          path,
		Mode:          mode,
		Operators:     operators,
		Operands:      operands,
		Functions:     graph.Metrics(),
		Size:          metrics.ComputeSize(text),
		LiveVariables: metrics.ComputeLiveVariables(text),
		OO:            metrics.ComputeOO(extract.Classes(text)),
	}, nil
}

// cacheKey is empty when there is no cache or the text cannot be hashed.
func (e *Engine) cacheKey(path, text string) string {
	if e.cache == nil {
		return ""
	}
	fp, err := source.Fingerprint(text)
	if err != nil {
		e.logger.Debug("Fingerprint failed, bypassing cache", "path", path, "error", err.Error())
		return ""
	}
	return fmt.Sprintf("%d:%s:%s", version.MetricsRevision, e.tok.Preferred(), fp)
}

func (e *Engine) lookup(ctx context.Context, path, key string) (*aggregate.FileMetrics, bool) {
	if key == "" {
		return nil, false
	}
	data, ok, err := e.cache.LookupFile(ctx, path, key)
	if err != nil {
		e.logger.Warn("Cache lookup failed", "path", path, "error", err.Error())
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var fm aggregate.FileMetrics
	if err := json.Unmarshal(data, &fm); err != nil {
		e.logger.Warn("Ignoring undecodable cache entry", "path", path, "error", err.Error())
		return nil, false
	}
	fm.Path = path
	return &fm, true
}

func (e *Engine) store(ctx context.Context, path, key string, fm *aggregate.FileMetrics) {
	if key == "" {
		return
	}
	data, err := json.Marshal(fm)
	if err != nil {
		e.logger.Warn("Could not encode metrics for cache", "path", path, "error", err.Error())
		return
	}
	if err := e.cache.StoreFile(ctx, path, key, data); err != nil {
		e.logger.Warn("Cache store failed", "path", path, "error", err.Error())
	}
}

// Diagnostic describes a file that was attempted but not analyzed.
type Diagnostic struct {
	Path    string              `json:"path"`
	Code    sqmerrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
}

// Result is the outcome of a run.
type Result struct {
	// Report is nil when Run returns an error
	Report *aggregate.Report

	Directories []string
	Paths       []string
	Diagnostics []Diagnostic
	CacheHits   int
	StartedAt   time.Time
	Duration    time.Duration
}

// Run discovers files under dirs, analyzes them on the worker pool and
// reduces the results. Directories that do not exist are ignored. It returns
// an *errors.SqmError with code NoValidDirectories, NoFilesFound or NoMetrics
// when there is nothing to report, alongside the partial Result.
func (e *Engine) Run(ctx context.Context, dirs []string) (*Result, error) {
	res := &Result{StartedAt: time.Now()}
	defer func() { res.Duration = time.Since(res.StartedAt) }()

	res.Directories = discovery.ValidDirs(dirs)
	if len(res.Directories) == 0 {
		return res, sqmerrors.New(sqmerrors.NoValidDirectories,
			"no valid directories found to analyze", nil).WithDetails(map[string]interface{}{
			"directories": dirs,
		})
	}

	for _, dir := range res.Directories {
		files, err := discovery.Walk(ctx, dir, e.discovery)
		if err != nil {
			return res, sqmerrors.New(sqmerrors.InternalError, "could not walk "+dir, err)
		}
		if len(files) == 0 {
			e.logger.Info("No source files found in " + dir)
		}
		res.Paths = append(res.Paths, files...)
	}

	if len(res.Paths) == 0 {
		return res, sqmerrors.New(sqmerrors.NoFilesFound, "no source files found", aggregate.ErrNoFiles)
	}

	e.logger.Info("Analyzing files",
		"files", len(res.Paths),
		"directories", len(res.Directories),
		"workers", e.workers,
	)

	results, err := e.analyzeAll(ctx, res.Paths)
	if err != nil {
		return res, err
	}

	acc := aggregate.NewAccumulator()
	for _, fr := range results {
		if fr.Err != nil {
			e.logger.Warn("Skipping file", "path", fr.Path, "error", fr.Err.Error())
			acc.Skip(fr.Path)
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Path:    fr.Path,
				Code:    sqmerrors.CodeOf(fr.Err),
				Message: fr.Err.Error(),
			})
			continue
		}
		if fr.Cached {
			res.CacheHits++
		}
		acc.Add(fr.Metrics)
	}

	report, err := acc.Report(res.Paths)
	if err != nil {
		return res, sqmerrors.New(sqmerrors.NoMetrics, "analysis finished, but no metrics were calculated", err)
	}
	res.Report = report

	e.logger.Info("Analysis complete",
		"analyzed", report.Analyzed,
		"skipped", len(report.Skipped),
		"cache_hits", res.CacheHits,
	)
	return res, nil
}

// analyzeAll runs AnalyzeFile for every path on a bounded pool. Each result
// lands in the slot matching its path, so the caller merges in discovery order.
func (e *Engine) analyzeAll(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.AnalyzeFile(gctx, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}
	// Reads racing a cancellation fail as unreadable files; report the
	// interruption instead of a partial report.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}
	return results, nil
}
