package main

import (
	"github.com/spf13/cobra"

	"github.com/DarthSidM/sqm-project/internal/version"
)

var (
	verbosity  int
	quietFlag  bool
	configFlag string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "sqm",
	Short: "sqm - software quality metrics for JavaScript and TypeScript",
	Long: `sqm measures JavaScript and TypeScript source trees without a compiler.

It reports Halstead complexity, Henry-Kafura information flow, a live-variable
estimate, size, object-oriented and test-to-source metrics for the whole project.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("sqm version {{.Version}}\n")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default: .sqm/config.json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file")
}
