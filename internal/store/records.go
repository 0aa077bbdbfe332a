// ABOUTME: Dispatch record persistence and summary queries
// ABOUTME: Stores per-dispatch observability rows for analytics

package store

import (
	"context"
	"fmt"
	"time"
)

// DispatchRecord is one persisted dispatch outcome.
type DispatchRecord struct {
	ID         string        `json:"id"`
	RequestID  string        `json:"requestId"`
	Capability string        `json:"capability"`
	Outcome    string        `json:"outcome"`
	ErrorKind  string        `json:"errorKind,omitempty"`
	Duration   time.Duration `json:"duration"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Summary aggregates dispatch records for reporting.
type Summary struct {
	Total         int            `json:"total"`
	ByOutcome     map[string]int `json:"byOutcome"`
	ByCapability  map[string]int `json:"byCapability"`
	AvgDurationMs float64        `json:"avgDurationMs"`
}

// SaveRecord stores a dispatch record.
func (s *SQLiteStore) SaveRecord(ctx context.Context, rec *DispatchRecord) error {
	query := `
		INSERT INTO dispatch_records (
			id, request_id, capability, outcome, error_kind, duration_ms, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.RequestID,
		rec.Capability,
		rec.Outcome,
		rec.ErrorKind,
		rec.Duration.Milliseconds(),
		rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting dispatch record: %w", err)
	}

	s.logger.Debug("saved dispatch record",
		"id", rec.ID,
		"capability", rec.Capability,
		"outcome", rec.Outcome,
	)
	return nil
}

// RecentRecords retrieves the most recent dispatch records, newest first.
func (s *SQLiteStore) RecentRecords(ctx context.Context, limit int) ([]*DispatchRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, request_id, capability, outcome, error_kind, duration_ms, created_at
		FROM dispatch_records
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying dispatch records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*DispatchRecord
	for rows.Next() {
		var rec DispatchRecord
		var durationMs int64
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.RequestID, &rec.Capability, &rec.Outcome,
			&rec.ErrorKind, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning dispatch record: %w", err)
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dispatch records: %w", err)
	}
	return records, nil
}

// GetSummary aggregates all dispatch records.
func (s *SQLiteStore) GetSummary(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		ByOutcome:    make(map[string]int),
		ByCapability: make(map[string]int),
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT outcome, COUNT(*) FROM dispatch_records GROUP BY outcome
	`)
	if err != nil {
		return nil, fmt.Errorf("querying outcome counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var outcome string
		var count int
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, fmt.Errorf("scanning outcome count: %w", err)
		}
		summary.ByOutcome[outcome] = count
		summary.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcome counts: %w", err)
	}

	capRows, err := s.db.QueryContext(ctx, `
		SELECT capability, COUNT(*) FROM dispatch_records GROUP BY capability
	`)
	if err != nil {
		return nil, fmt.Errorf("querying capability counts: %w", err)
	}
	defer func() { _ = capRows.Close() }()

	for capRows.Next() {
		var capName string
		var count int
		if err := capRows.Scan(&capName, &count); err != nil {
			return nil, fmt.Errorf("scanning capability count: %w", err)
		}
		summary.ByCapability[capName] = count
	}
	if err := capRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating capability counts: %w", err)
	}

	var avg *float64
	err = s.db.QueryRowContext(ctx, `
		SELECT AVG(duration_ms) FROM dispatch_records
	`).Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("querying average duration: %w", err)
	}
	if avg != nil {
		summary.AvgDurationMs = *avg
	}

	return summary, nil
}
