package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DarthSidM/sqm-project/internal/tokenizer"
	"github.com/DarthSidM/sqm-project/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
		if tokenizer.IsAvailable() {
			fmt.Println("Tokenizer: tree-sitter (regex fallback)")
		} else {
			fmt.Println("Tokenizer: regex (built without cgo)")
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
