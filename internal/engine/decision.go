package engine

import (
	"github.com/google/uuid"
)

// Category classifies the hour a decision was made for.
type Category string

const (
	// CategorySpecial covers the override paths: the guarantee flag and
	// hours that are multiples of 3. No draw is consulted.
	CategorySpecial Category = "special"

	// CategoryEven covers even hours that are not multiples of 3.
	CategoryEven Category = "even"

	// CategoryOdd covers odd hours that are not multiples of 3.
	CategoryOdd Category = "odd"
)

// Decision is the outcome of one engine invocation.
//
// A Decision is a single-invocation value: created, consumed by the
// artifact writer and the history store, then discarded. It is never
// shared across invocations.
type Decision struct {
	// RunID identifies the invocation. The engine leaves it empty;
	// callers stamp it with NewRunID before persisting the decision.
	RunID string `json:"run_id,omitempty"`

	// Category names the rule branch that produced the outcome.
	Category Category `json:"category"`

	// Threshold is the probability the draw was compared against.
	// 1 for special decisions, which commit unconditionally.
	Threshold float64 `json:"threshold"`

	// Draw is the pseudo-random value in [0,1) supplied by the caller.
	Draw float64 `json:"draw"`

	// Commit reports whether a commit should be produced.
	Commit bool `json:"commit"`

	// Reason is a human-readable account of the branch taken. It ends up
	// verbatim in the log entry and the commit message.
	Reason string `json:"reason"`

	// Details carries the inputs and modifiers behind the outcome.
	Details Details `json:"details"`
}

// Details records the inputs that shaped a decision. The modifier fields
// are only meaningful for decisions made through DecideAt; Decide leaves
// Quarter at zero and the modifiers at 1.
type Details struct {
	Hour             int     `json:"hour_utc"`
	Quarter          int     `json:"quarter_of_hour,omitempty"` // 1..4, 0 when unknown
	IsWeekend        bool    `json:"is_weekend,omitempty"`
	Base             float64 `json:"base_probability"`
	QuarterModifier  float64 `json:"quarter_modifier"`
	WeekdayModifier  float64 `json:"weekday_modifier"`
	SeasonalModifier float64 `json:"seasonal_modifier"`
	Outcome          string  `json:"outcome"` // "commit" or "skip"
}

// Outcome strings used in Details and the commit message detail block.
const (
	OutcomeCommit = "commit"
	OutcomeSkip   = "skip"
)

// NewRunID returns a time-sortable UUIDv7 for stamping decisions.
//
// UUIDv7 embeds a timestamp in the most significant bits, so history
// rows sort by creation time when sorted by ID.
//
// Panics if UUID generation fails (should never happen in practice).
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}
