package history

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/dicecommit/internal/engine"
	"github.com/roach88/dicecommit/internal/record"
)

// Record is one persisted decision row.
type Record struct {
	ID         string    `json:"id"`
	DecidedAt  time.Time `json:"decided_at"`
	Hour       int       `json:"hour"`
	Category   string    `json:"category"`
	Draw       float64   `json:"draw"`
	Threshold  float64   `json:"threshold"`
	Committed  bool      `json:"committed"`
	Reason     string    `json:"reason"`
	RecordHash string    `json:"record_hash"`
}

// FromDecision builds the history row for a decision made at the given
// instant. The decision must already carry a RunID. Draw and threshold
// are rounded to the fixed 4-decimal precision before hashing, so the
// stored hash matches what Verify recomputes from the row.
func FromDecision(d engine.Decision, at time.Time) (Record, error) {
	if d.RunID == "" {
		return Record{}, fmt.Errorf("decision has no run id")
	}

	rec := Record{
		ID:        d.RunID,
		DecidedAt: at.UTC(),
		Hour:      d.Details.Hour,
		Category:  string(d.Category),
		Draw:      d.Draw,
		Threshold: d.Threshold,
		Committed: d.Commit,
		Reason:    d.Reason,
	}

	hash, err := rec.hash()
	if err != nil {
		return Record{}, err
	}
	rec.RecordHash = hash
	return rec, nil
}

// hash computes the tamper-evidence hash over the row's canonical form.
func (r Record) hash() (string, error) {
	return record.Hash(map[string]any{
		"id":         r.ID,
		"decided_at": r.DecidedAt.UTC().Format(time.RFC3339),
		"hour":       r.Hour,
		"category":   r.Category,
		"draw":       record.FormatFixed(r.Draw),
		"threshold":  record.FormatFixed(r.Threshold),
		"committed":  r.Committed,
		"reason":     r.Reason,
	})
}

// Verify recomputes the row's hash and reports whether it matches the
// stored one.
func (r Record) Verify() (bool, error) {
	want, err := r.hash()
	if err != nil {
		return false, err
	}
	return want == r.RecordHash, nil
}

// Write inserts a decision row.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - replaying the same
// run id is silently ignored. Other constraint violations still error.
func (s *Store) Write(ctx context.Context, rec Record) error {
	committed := 0
	if rec.Committed {
		committed = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO decisions
		(id, decided_at, hour, category, draw, threshold, committed, reason, record_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.DecidedAt.UTC().Format(time.RFC3339),
		rec.Hour,
		rec.Category,
		rec.Draw,
		rec.Threshold,
		committed,
		rec.Reason,
		rec.RecordHash,
	)
	if err != nil {
		return fmt.Errorf("write decision: %w", err)
	}

	return nil
}
