package artifact

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/roach88/dicecommit/internal/engine"
)

func TestFormatLogEntry(t *testing.T) {
	d := commitDecision(14)
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	entry := FormatLogEntry(d, now)
	assert.Equal(t,
		"2026-08-28T14:00:00Z - Commit triggered. Reason: even hour 14: roll 0.1234 < threshold 0.2500\n",
		entry)
}

func TestFormatLogEntry_ConvertsToUTC(t *testing.T) {
	d := commitDecision(14)
	est := time.FixedZone("EST", -5*60*60)
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, est)

	entry := FormatLogEntry(d, now)
	assert.Contains(t, entry, "2026-08-28T14:00:00Z")
}

func TestFormatMessage_ContainsDetailFields(t *testing.T) {
	d := engine.Decision{
		Category:  engine.CategoryOdd,
		Threshold: 0.375,
		Draw:      0.0421,
		Commit:    true,
		Reason:    "odd hour 13: roll 0.0421 < threshold 0.3750",
		Details: engine.Details{
			Hour:    13,
			Outcome: engine.OutcomeCommit,
		},
	}
	msg := FormatMessage(d, time.Date(2026, 7, 6, 13, 20, 0, 0, time.UTC))

	// All four detail fields with the exact supplied values.
	assert.Contains(t, msg, "- hour_utc: 13")
	assert.Contains(t, msg, "- roll: 0.0421")
	assert.Contains(t, msg, "- threshold: 0.3750")
	assert.Contains(t, msg, "- outcome: commit")
	// Summary line, blank line, reason line structure.
	assert.Contains(t, msg, "chore(automated): Dice roll log update triggered at 2026-07-06T13:20:00Z UTC.\n\nTrigger Reason:")
}

func TestFormatMessage_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	d := engine.Decision{
		Category:  engine.CategoryEven,
		Threshold: 0.25,
		Draw:      0.1234,
		Commit:    true,
		Reason:    "even hour 14: roll 0.1234 < threshold 0.2500",
		Details: engine.Details{
			Hour:             14,
			Base:             0.25,
			QuarterModifier:  1,
			WeekdayModifier:  1,
			SeasonalModifier: 1,
			Outcome:          engine.OutcomeCommit,
		},
	}
	msg := FormatMessage(d, time.Date(2025, 11, 3, 14, 7, 0, 0, time.UTC))
	g.Assert(t, "commit_message_even", []byte(msg))
}

func TestFormatMessage_ExtendedGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	d := engine.Decision{
		Category:  engine.CategoryOdd,
		Threshold: 0.1875,
		Draw:      0.0421,
		Commit:    true,
		Reason:    "odd hour 13: roll 0.0421 < threshold 0.1875",
		Details: engine.Details{
			Hour:             13,
			Quarter:          2,
			IsWeekend:        true,
			Base:             0.3,
			QuarterModifier:  1,
			WeekdayModifier:  0.5,
			SeasonalModifier: 1.25,
			Outcome:          engine.OutcomeCommit,
		},
	}
	msg := FormatMessage(d, time.Date(2026, 7, 4, 13, 20, 0, 0, time.UTC))
	g.Assert(t, "commit_message_extended", []byte(msg))
}
