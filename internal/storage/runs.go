package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DarthSidM/sqm-project/internal/compression"
)

// ErrRunNotFound is returned when no run matches an id.
var ErrRunNotFound = errors.New("run not found")

// startedLayout is fixed width so started_at sorts lexically.
const startedLayout = "2006-01-02T15:04:05.000000000Z"

// RunRecord is one completed analysis run. Report is the JSON report; it is
// compressed at rest and returned decompressed.
type RunRecord struct {
	ID          string          `json:"id"`
	StartedAt   time.Time       `json:"started_at"`
	Duration    time.Duration   `json:"duration"`
	Directories []string        `json:"directories"`
	FileCount   int             `json:"file_count"`
	Analyzed    int             `json:"analyzed"`
	Skipped     int             `json:"skipped"`
	Report      json.RawMessage `json:"report,omitempty"`
}

// RecordRun stores rec and returns its id. An empty rec.ID gets a new UUID.
func (db *DB) RecordRun(ctx context.Context, rec RunRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	dirs, err := json.Marshal(rec.Directories)
	if err != nil {
		return "", fmt.Errorf("failed to encode directories: %w", err)
	}

	var blob []byte
	if len(rec.Report) > 0 {
		blob, err = compression.Compress(rec.Report)
		if err != nil {
			return "", err
		}
	}

	err = db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO runs (id, started_at, duration_ms, directories, file_count, analyzed_count, skipped_count, report)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, rec.ID, rec.StartedAt.UTC().Format(startedLayout), rec.Duration.Milliseconds(),
			string(dirs), rec.FileCount, rec.Analyzed, rec.Skipped, blob)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}

	db.logger.Debug("Run recorded", "id", rec.ID, "files", rec.FileCount)
	return rec.ID, nil
}

// ListRuns returns up to limit runs, newest first, without their reports.
// A non-positive limit returns every run.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `
		SELECT id, started_at, duration_ms, directories, file_count, analyzed_count, skipped_count
		FROM runs
		ORDER BY started_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows, false)
		if err != nil {
			return nil, err
		}
		runs = append(runs, rec)
	}
	return runs, rows.Err()
}

// GetRun returns the run with id including its decompressed report.
func (db *DB) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, started_at, duration_ms, directories, file_count, analyzed_count, skipped_count, report
		FROM runs
		WHERE id = ?
	`, id)

	rec, err := scanRun(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner, withReport bool) (RunRecord, error) {
	var (
		rec        RunRecord
		startedAt  string
		durationMs int64
		dirs       string
		blob       []byte
	)

	dest := []any{&rec.ID, &startedAt, &durationMs, &dirs, &rec.FileCount, &rec.Analyzed, &rec.Skipped}
	if withReport {
		dest = append(dest, &blob)
	}
	if err := s.Scan(dest...); err != nil {
		return rec, err
	}

	t, err := time.Parse(startedLayout, startedAt)
	if err != nil {
		return rec, fmt.Errorf("invalid started_at for run %s: %w", rec.ID, err)
	}
	rec.StartedAt = t
	rec.Duration = time.Duration(durationMs) * time.Millisecond

	if err := json.Unmarshal([]byte(dirs), &rec.Directories); err != nil {
		return rec, fmt.Errorf("invalid directories for run %s: %w", rec.ID, err)
	}

	if len(blob) > 0 {
		report, err := compression.Decompress(blob)
		if err != nil {
			return rec, fmt.Errorf("invalid report for run %s: %w", rec.ID, err)
		}
		rec.Report = report
	}
	return rec, nil
}
