package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dicecommit/internal/config"
	"github.com/roach88/dicecommit/internal/engine"
)

func testWriter(t *testing.T) (*Writer, string, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.LogPath = filepath.Join(dir, "dice_roll_log.txt")
	cfg.MessagePath = filepath.Join(dir, "commit_message.txt")
	return NewWriter(cfg), cfg.LogPath, cfg.MessagePath
}

func commitDecision(hour int) engine.Decision {
	return engine.Decision{
		RunID:     "test-run",
		Category:  engine.CategoryEven,
		Threshold: 0.25,
		Draw:      0.1234,
		Commit:    true,
		Reason:    fmt.Sprintf("even hour %d: roll 0.1234 < threshold 0.2500", hour),
		Details: engine.Details{
			Hour:             hour,
			Base:             0.25,
			QuarterModifier:  1,
			WeekdayModifier:  1,
			SeasonalModifier: 1,
			Outcome:          engine.OutcomeCommit,
		},
	}
}

func skipDecision() engine.Decision {
	d := commitDecision(4)
	d.Commit = false
	d.Reason = "even hour 4: roll 0.9000 >= threshold 0.2500"
	d.Details.Outcome = engine.OutcomeSkip
	return d
}

func TestWrite_SkipTouchesNothing(t *testing.T) {
	w, logPath, msgPath := testWriter(t)

	// Seed the log with prior content to detect any rewrite.
	prior := "2026-01-01T00:00:00Z - Commit triggered. Reason: seed\n"
	require.NoError(t, os.WriteFile(logPath, []byte(prior), 0o644))

	res, err := w.Write(skipDecision(), time.Now())
	require.NoError(t, err)
	assert.False(t, res.Committed)
	assert.Empty(t, res.LogPath)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, prior, string(data), "log must be byte-for-byte unchanged on skip")

	_, err = os.Stat(msgPath)
	assert.True(t, os.IsNotExist(err), "message file must not be created on skip")
}

func TestWrite_CommitAppendsOneEntry(t *testing.T) {
	w, logPath, msgPath := testWriter(t)
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	res, err := w.Write(commitDecision(14), now)
	require.NoError(t, err)
	assert.True(t, res.Committed)
	assert.Equal(t, logPath, res.LogPath)
	assert.Equal(t, msgPath, res.MessagePath)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t,
		"2026-08-28T14:00:00Z - Commit triggered. Reason: even hour 14: roll 0.1234 < threshold 0.2500\n",
		string(data))

	msg, err := os.ReadFile(msgPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(msg), "chore(automated):"))
}

func TestWrite_AppendIsMonotonic(t *testing.T) {
	w, logPath, _ := testWriter(t)

	prior := "2026-01-01T00:00:00Z - Commit triggered. Reason: seed\n"
	require.NoError(t, os.WriteFile(logPath, []byte(prior), 0o644))

	const n = 5
	base := time.Date(2026, 8, 28, 2, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		_, err := w.Write(commitDecision(2), base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), prior), "prior contents must survive")

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, n+1)
	for _, line := range lines {
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z - Commit triggered\. Reason: `, line)
	}
	// Appended in invocation order.
	assert.Contains(t, lines[1], "2026-08-28T02:00:00Z")
	assert.Contains(t, lines[n], fmt.Sprintf("2026-08-28T%02d:00:00Z", 2+n-1))
}

func TestWrite_MessageFileOverwritten(t *testing.T) {
	w, _, msgPath := testWriter(t)

	require.NoError(t, os.WriteFile(msgPath, []byte(strings.Repeat("x", 4096)), 0o644))

	_, err := w.Write(commitDecision(14), time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	msg, err := os.ReadFile(msgPath)
	require.NoError(t, err)
	assert.NotContains(t, string(msg), "xxxx", "message file is a scratch artifact, fully rewritten")
}

func TestWrite_IOErrorPropagates(t *testing.T) {
	cfg := config.Default()
	cfg.LogPath = filepath.Join(t.TempDir(), "no", "such", "dir", "log.txt")
	cfg.MessagePath = filepath.Join(t.TempDir(), "msg.txt")
	w := NewWriter(cfg)

	_, err := w.Write(commitDecision(14), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "append log entry")
}
