package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/DarthSidM/sqm-project/internal/analysis"
	"github.com/DarthSidM/sqm-project/internal/config"
	sqmerrors "github.com/DarthSidM/sqm-project/internal/errors"
	"github.com/DarthSidM/sqm-project/internal/output"
	"github.com/DarthSidM/sqm-project/internal/storage"
	"github.com/DarthSidM/sqm-project/internal/tokenizer"
)

var (
	analyzeFormat    string
	analyzeOutput    string
	analyzeCompress  bool
	analyzeWorkers   int
	analyzeNoCache   bool
	analyzeRecord    bool
	analyzeTokenizer string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [dirs...]",
	Short: "Compute project metrics for one or more source directories",
	Long: `Compute Halstead, information flow, live-variable, size, OO and testing
metrics over every .js, .jsx, .ts and .tsx file under the given directories.

Without arguments the directories from discovery.directories are used
(default: ./frontend/src ./backend). Directories that do not exist are ignored.

Exit codes: 0 success, 2 no valid directories, 3 no files or no metrics, 1 other errors.

Examples:
  sqm analyze ./src
  sqm analyze --format=json --output=metrics.json ./frontend/src ./backend
  sqm analyze --format=json --compress --output=metrics.json.zst ./src
  sqm analyze --record --workers=4 ./src`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "Output format: human, json, yaml, toml (default from config)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the report to this file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeCompress, "compress", false, "Compress the report with zstd")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "Concurrent files (0 for one per CPU)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "Do not read or write the per-file cache")
	analyzeCmd.Flags().BoolVar(&analyzeRecord, "record", false, "Record this run in the history database")
	analyzeCmd.Flags().StringVar(&analyzeTokenizer, "tokenizer", "", "Tokenizer: auto or regex (default from config)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	root, err := getRepoRoot()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	applyAnalyzeFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return sqmerrors.New(sqmerrors.ConfigInvalid, "invalid flags", err)
	}

	logger, closer := newLogger(cfg)
	defer closer.Close()

	ctx, stop := newContext(cmd.Context())
	defer stop()

	dirs := args
	if len(dirs) == 0 {
		dirs = cfg.Discovery.Directories
	}

	record := cfg.History.Enabled
	useCache := cfg.Cache.Enabled && !analyzeNoCache

	var db *storage.DB
	if useCache || record {
		db, err = openDatabase(root, cfg, logger)
		if err != nil {
			if record {
				return err
			}
			logger.Warn("Continuing without cache", "error", err.Error())
		} else {
			defer db.Close()
		}
	}

	opts := analysis.Options{
		Workers:   cfg.Analysis.Workers,
		Discovery: cfg.DiscoveryOptions(),
	}
	if useCache && db != nil {
		opts.Cache = db
	}

	engine := analysis.NewEngine(newTokenizer(cfg, logger), logger, opts)

	format := output.Format(cfg.Output.Format)
	toStdout := analyzeOutput == "" || analyzeOutput == "-"
	if format == output.FormatHuman && toStdout && !cfg.Output.Compress {
		fmt.Fprintf(os.Stdout, "🔍 Analyzing project for metrics in: %v\n\n", dirs)
	}

	res, runErr := engine.Run(ctx, dirs)

	// An empty project still prints the no-metrics report.
	if runErr != nil && !isEmptyResult(runErr) {
		return runErr
	}

	w, err := openOutput(analyzeOutput)
	if err != nil {
		return err
	}
	renderErr := output.Render(w, res.Report, output.Options{Format: format, Compress: cfg.Output.Compress})
	if cerr := w.Close(); cerr != nil && renderErr == nil {
		renderErr = cerr
	}
	if renderErr != nil {
		return renderErr
	}

	if record && db != nil && res.Report != nil {
		if err := recordRun(cmd, db, res, logger); err != nil {
			return err
		}
	}

	return runErr
}

func isEmptyResult(err error) bool {
	var se *sqmerrors.SqmError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == sqmerrors.NoFilesFound || se.Code == sqmerrors.NoMetrics
}

// applyAnalyzeFlags overrides config values with flags given on the command line.
func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = analyzeFormat
		if f, err := output.ParseFormat(analyzeFormat); err == nil {
			cfg.Output.Format = string(f)
		}
	}
	if flags.Changed("compress") {
		cfg.Output.Compress = analyzeCompress
	}
	if flags.Changed("workers") {
		cfg.Analysis.Workers = analyzeWorkers
	}
	if flags.Changed("tokenizer") {
		cfg.Analysis.Tokenizer = analyzeTokenizer
	}
	if flags.Changed("record") {
		cfg.History.Enabled = analyzeRecord
	}
}

func newTokenizer(cfg *config.Config, logger *slog.Logger) *tokenizer.Tokenizer {
	if cfg.Analysis.Tokenizer == config.TokenizerRegex {
		return tokenizer.New(nil, logger)
	}
	if !tokenizer.IsAvailable() {
		logger.Debug("tree-sitter unavailable in this build, using regex tokenizer")
	}
	return tokenizer.NewDefault(logger)
}

func recordRun(cmd *cobra.Command, db *storage.DB, res *analysis.Result, logger *slog.Logger) error {
	report, err := output.DeterministicEncode(res.Report)
	if err != nil {
		return err
	}

	id, err := db.RecordRun(cmd.Context(), storage.RunRecord{
		StartedAt:   res.StartedAt,
		Duration:    res.Duration,
		Directories: res.Directories,
		FileCount:   res.Report.FileCount,
		Analyzed:    res.Report.Analyzed,
		Skipped:     len(res.Report.Skipped),
		Report:      report,
	})
	if err != nil {
		return sqmerrors.New(sqmerrors.StorageFailed, "failed to record run", err)
	}

	logger.Info("Run recorded", "id", id)
	return nil
}
