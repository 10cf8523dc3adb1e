package main

import (
	"fmt"

	"github.com/spf13/cobra"

	sqmerrors "github.com/DarthSidM/sqm-project/internal/errors"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the per-file metrics cache",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached file result",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	db, done, err := openProjectDB()
	if err != nil {
		return err
	}
	defer done()

	stats, err := db.FileCacheStats(cmd.Context())
	if err != nil {
		return sqmerrors.New(sqmerrors.StorageFailed, "failed to read cache", err)
	}
	fmt.Printf("Database: %s\nCached files: %d\nCompressed size: %d bytes\n", db.Path(), stats.Entries, stats.Bytes)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	db, done, err := openProjectDB()
	if err != nil {
		return err
	}
	defer done()

	n, err := db.ClearFileCache(cmd.Context())
	if err != nil {
		return sqmerrors.New(sqmerrors.StorageFailed, "failed to clear cache", err)
	}
	fmt.Printf("Removed %d cached file results\n", n)
	return nil
}
