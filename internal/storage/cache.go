package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DarthSidM/sqm-project/internal/compression"
)

// CacheStats summarizes the file cache
type CacheStats struct {
	Entries int `json:"entries"`
	Bytes   int `json:"bytes"`
}

// LookupFile returns the cached metrics blob for path when the stored
// fingerprint equals fingerprint. A stale or missing entry is a miss.
func (db *DB) LookupFile(ctx context.Context, path, fingerprint string) ([]byte, bool, error) {
	var (
		stored string
		blob   []byte
	)
	err := db.conn.QueryRowContext(ctx,
		"SELECT fingerprint, metrics FROM file_cache WHERE path = ?", path,
	).Scan(&stored, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read file cache: %w", err)
	}
	if stored != fingerprint {
		return nil, false, nil
	}

	data, err := compression.Decompress(blob)
	if err != nil {
		// A corrupt row behaves as a miss and is overwritten on the next store.
		db.logger.Warn("Discarding corrupt cache entry", "path", path, "error", err.Error())
		return nil, false, nil
	}
	return data, true, nil
}

// StoreFile replaces the cache entry for path
func (db *DB) StoreFile(ctx context.Context, path, fingerprint string, data []byte) error {
	blob, err := compression.Compress(data)
	if err != nil {
		return err
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO file_cache (path, fingerprint, metrics, updated_at)
		VALUES (?, ?, ?, ?)
	`, path, fingerprint, blob, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write file cache: %w", err)
	}
	return nil
}

// ClearFileCache removes every cache entry and returns how many were removed
func (db *DB) ClearFileCache(ctx context.Context) (int64, error) {
	res, err := db.conn.ExecContext(ctx, "DELETE FROM file_cache")
	if err != nil {
		return 0, fmt.Errorf("failed to clear file cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	db.logger.Info("File cache cleared", "entries", n)
	return n, nil
}

// FileCacheStats returns the entry count and compressed size of the cache
func (db *DB) FileCacheStats(ctx context.Context) (CacheStats, error) {
	var stats CacheStats
	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(LENGTH(metrics)), 0) FROM file_cache",
	).Scan(&stats.Entries, &stats.Bytes)
	if err != nil {
		return stats, fmt.Errorf("failed to read cache stats: %w", err)
	}
	return stats, nil
}
