package main

import (
	"errors"
	"fmt"
	"os"

	sqmerrors "github.com/DarthSidM/sqm-project/internal/errors"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps run outcomes to process exit codes:
// 2 no valid directories, 3 nothing to report, 1 anything else.
func exitCode(err error) int {
	var se *sqmerrors.SqmError
	if !errors.As(err, &se) {
		return 1
	}
	switch se.Code {
	case sqmerrors.NoValidDirectories:
		return 2
	case sqmerrors.NoFilesFound, sqmerrors.NoMetrics:
		return 3
	default:
		return 1
	}
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

	var se *sqmerrors.SqmError
	if !errors.As(err, &se) {
		return
	}
	for _, fix := range se.SuggestedFixes {
		if fix.Command != "" {
			fmt.Fprintf(os.Stderr, "   Hint: %s\n     %s\n", fix.Description, fix.Command)
		} else {
			fmt.Fprintf(os.Stderr, "   Hint: %s\n", fix.Description)
		}
	}
}
