package artifact

import (
	"bytes"
	"fmt"
	"time"

	"github.com/roach88/dicecommit/internal/engine"
)

// Commit message templates. The orchestrator consumes the file verbatim
// as `git commit -F`, so the first line is the commit summary.
const (
	commitHeader       = "chore(automated):"
	commitBodyTemplate = "Dice roll log update triggered at %s UTC."
	reasonTemplate     = "Trigger Reason: %s"
)

// FormatLogEntry renders the single appended log line, newline included:
//
//	<RFC3339 UTC> - Commit triggered. Reason: <reason>
func FormatLogEntry(d engine.Decision, now time.Time) string {
	return fmt.Sprintf("%s - Commit triggered. Reason: %s\n", now.UTC().Format(time.RFC3339), d.Reason)
}

// FormatMessage renders the full commit message: summary line, trigger
// reason, and a key/value detail block. Decisions made through the
// layered model (Details.Quarter set) additionally report the modifier
// rows between the hour and the roll.
func FormatMessage(d engine.Decision, now time.Time) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s %s\n", commitHeader, fmt.Sprintf(commitBodyTemplate, now.UTC().Format(time.RFC3339)))
	buf.WriteByte('\n')
	fmt.Fprintf(&buf, reasonTemplate+"\n", d.Reason)
	buf.WriteByte('\n')

	buf.WriteString("### Details\n")
	fmt.Fprintf(&buf, "- hour_utc: %d\n", d.Details.Hour)
	if d.Details.Quarter > 0 {
		fmt.Fprintf(&buf, "- quarter_of_hour: %d\n", d.Details.Quarter)
		fmt.Fprintf(&buf, "- is_weekend: %t\n", d.Details.IsWeekend)
		fmt.Fprintf(&buf, "- base_probability: %.4f\n", d.Details.Base)
		fmt.Fprintf(&buf, "- quarter_modifier: %.4f\n", d.Details.QuarterModifier)
		fmt.Fprintf(&buf, "- weekday_modifier: %.4f\n", d.Details.WeekdayModifier)
		fmt.Fprintf(&buf, "- seasonal_modifier: %.4f\n", d.Details.SeasonalModifier)
	}
	fmt.Fprintf(&buf, "- roll: %.4f\n", d.Draw)
	fmt.Fprintf(&buf, "- threshold: %.4f\n", d.Threshold)
	fmt.Fprintf(&buf, "- outcome: %s\n", d.Details.Outcome)

	return buf.String()
}
