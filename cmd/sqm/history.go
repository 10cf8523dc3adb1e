package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	sqmerrors "github.com/DarthSidM/sqm-project/internal/errors"
	"github.com/DarthSidM/sqm-project/internal/output"
	"github.com/DarthSidM/sqm-project/internal/storage"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded analysis runs",
	Long: `List runs recorded with 'sqm analyze --record' (or history.enabled), newest first.

Examples:
  sqm history
  sqm history --limit=5 --format=json
  sqm history show <run-id>`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the report of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyFormat, "format", "human", "Output format (human, json)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum runs to list (0 for all)")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

// openProjectDB opens the database of the project in the working directory.
func openProjectDB() (*storage.DB, func(), error) {
	root, err := getRepoRoot()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, nil, err
	}
	logger, closer := newLogger(cfg)
	db, err := openDatabase(root, cfg, logger)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return db, func() {
		db.Close()
		closer.Close()
	}, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, done, err := openProjectDB()
	if err != nil {
		return err
	}
	defer done()

	runs, err := db.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return sqmerrors.New(sqmerrors.StorageFailed, "failed to list runs", err)
	}

	if historyFormat == "json" {
		data, err := output.DeterministicEncodeIndented(runs, "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs. Use 'sqm analyze --record' to record one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tDURATION\tFILES\tSKIPPED\tDIRECTORIES")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%ss\t%d\t%d\t%s\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			output.FormatFloat(r.Duration.Seconds()),
			r.FileCount,
			r.Skipped,
			strings.Join(r.Directories, " "),
		)
	}
	return w.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, done, err := openProjectDB()
	if err != nil {
		return err
	}
	defer done()

	run, err := db.GetRun(cmd.Context(), args[0])
	if errors.Is(err, storage.ErrRunNotFound) {
		return fmt.Errorf("no run with id %s", args[0])
	}
	if err != nil {
		return sqmerrors.New(sqmerrors.StorageFailed, "failed to load run", err)
	}

	if historyFormat == "json" {
		data, err := output.DeterministicEncodeIndented(run, "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	report, err := decodeReport(run.Report)
	if err != nil {
		return err
	}
	fmt.Printf("Run %s (%s, %d files)\n\n", run.ID, run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.FileCount)
	fmt.Print(output.Human(report))
	return nil
}
