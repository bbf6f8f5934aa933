// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/datafix/pkg/types"
)

const defaultHistoryLimit = 20

// RecordAttempt stores a settled attempt. Recording the same ID twice
// replaces the earlier row.
func (s *Store) RecordAttempt(ctx context.Context, rec types.AttemptRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("attempt record has no id")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (id, file_name, result_filename, case_id, status, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			file_name=excluded.file_name, result_filename=excluded.result_filename,
			case_id=excluded.case_id, status=excluded.status,
			message=excluded.message, created_at=excluded.created_at`,
		rec.ID, rec.FileName, rec.ResultFilename, rec.CaseID,
		string(rec.Status), rec.Message, rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording attempt %s: %w", rec.ID, err)
	}
	return nil
}

// ListAttempts returns up to limit attempts, newest first. A limit of zero
// or less uses the default of 20.
func (s *Store) ListAttempts(ctx context.Context, limit int) ([]types.AttemptRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file_name, result_filename, case_id, status, message, created_at
		 FROM attempts ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying attempts: %w", err)
	}
	defer rows.Close()

	var out []types.AttemptRecord
	for rows.Next() {
		var (
			rec       types.AttemptRecord
			status    string
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.FileName, &rec.ResultFilename, &rec.CaseID,
			&status, &rec.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning attempt: %w", err)
		}
		rec.Status = types.AttemptStatus(status)
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ExportYAML writes up to limit attempts to w as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, limit int) error {
	recs, err := s.ListAttempts(ctx, limit)
	if err != nil {
		return err
	}
	if recs == nil {
		recs = []types.AttemptRecord{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
