package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.GuaranteeCommit)
	assert.InDelta(t, 0.25, cfg.Probabilities[KeyEvenHour], 1e-12)
	assert.InDelta(t, 0.25, cfg.Probabilities[KeyOddHour], 1e-12)
	assert.Equal(t, "dice_roll_log.txt", cfg.LogPath)
	assert.Equal(t, "commit_message.txt", cfg.MessagePath)
}

func TestLoad_YAMLFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dicecommit.yaml")
	content := `
guarantee_commit: true
probabilities:
  even_hour: 0.8
log_path: custom.log
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.GuaranteeCommit)
	assert.InDelta(t, 0.8, cfg.Probabilities[KeyEvenHour], 1e-12)
	// Keys absent from the file keep their defaults.
	assert.InDelta(t, 0.25, cfg.Probabilities[KeyOddHour], 1e-12)
	assert.Equal(t, "custom.log", cfg.LogPath)
	assert.Equal(t, "commit_message.txt", cfg.MessagePath)
}

func TestLoad_UnknownYAMLFieldRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dicecommit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("no_such_field: 1\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DICECOMMIT_GUARANTEE_COMMIT", "true")
	t.Setenv("DICECOMMIT_PROBABILITIES", "even_hour:0.9,odd_hour:0.1")
	t.Setenv("DICECOMMIT_LOG_PATH", "env.log")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.GuaranteeCommit)
	assert.InDelta(t, 0.9, cfg.Probabilities[KeyEvenHour], 1e-12)
	assert.InDelta(t, 0.1, cfg.Probabilities[KeyOddHour], 1e-12)
	assert.Equal(t, "env.log", cfg.LogPath)
}

func TestValidate_ProbabilityOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.Probabilities[KeyEvenHour] = 1.5

	err := cfg.Validate()
	require.Error(t, err)

	var invalid *InvalidConfigError
	require.True(t, errors.As(err, &invalid))
	require.NotEmpty(t, invalid.Errors)
	assert.Contains(t, invalid.Errors[0].Field, "even_hour")
}

func TestValidate_UnknownProbabilityKey(t *testing.T) {
	cfg := Default()
	cfg.Probabilities["weird_hour"] = 0.5

	require.Error(t, cfg.Validate())
}

func TestValidate_NegativeModifier(t *testing.T) {
	cfg := Default()
	cfg.WeekendModifier = -0.5

	require.Error(t, cfg.Validate())
}

func TestValidate_SeasonalMonthOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.SeasonalModifiers[13] = 1.0

	require.Error(t, cfg.Validate())
}

func TestValidate_EmptyLogPath(t *testing.T) {
	cfg := Default()
	cfg.LogPath = ""

	require.Error(t, cfg.Validate())
}

func TestValidate_EmptyHistoryPathAllowed(t *testing.T) {
	// Empty history_path disables recording; it is not an error.
	cfg := Default()
	cfg.HistoryPath = ""

	require.NoError(t, cfg.Validate())
}

func TestValidate_MissingProbabilityCategory(t *testing.T) {
	cfg := Default()
	delete(cfg.Probabilities, KeyOddHour)

	require.Error(t, cfg.Validate())
}
