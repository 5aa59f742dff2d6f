package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Recent returns the newest decision rows, newest first. Ordering is
// deterministic: decided_at DESC, then id DESC (UUIDv7 ids are
// time-sortable, so ties within one second still resolve stably).
//
// Returns an empty slice (not nil) when the table is empty.
func (s *Store) Recent(ctx context.Context, limit int, committedOnly bool) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, decided_at, hour, category, draw, threshold, committed, reason, record_hash
		FROM decisions
	`
	if committedOnly {
		query += " WHERE committed = 1"
	}
	query += " ORDER BY decided_at DESC, id DESC LIMIT ?"

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions: %w", err)
	}

	return records, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		rec       Record
		decidedAt string
		committed int
	)
	if err := rows.Scan(
		&rec.ID,
		&decidedAt,
		&rec.Hour,
		&rec.Category,
		&rec.Draw,
		&rec.Threshold,
		&committed,
		&rec.Reason,
		&rec.RecordHash,
	); err != nil {
		return Record{}, fmt.Errorf("scan decision: %w", err)
	}

	at, err := time.Parse(time.RFC3339, decidedAt)
	if err != nil {
		return Record{}, fmt.Errorf("parse decided_at %q: %w", decidedAt, err)
	}
	rec.DecidedAt = at
	rec.Committed = committed == 1

	return rec, nil
}
