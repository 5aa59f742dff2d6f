package config

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

// ValidationError describes one schema violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InvalidConfigError aggregates every schema violation found in one
// validation pass. It is an invalid-input condition: raised before any
// file I/O, never retried.
type InvalidConfigError struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("invalid configuration: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	parts := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		parts[i] = fmt.Sprintf("%s: %s", ve.Field, ve.Message)
	}
	return fmt.Sprintf("invalid configuration (%d errors): %s", len(e.Errors), strings.Join(parts, "; "))
}

// Validate checks the resolved configuration against the embedded CUE
// schema. Returns *InvalidConfigError listing every violation, or nil.
func (c Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return fmt.Errorf("compile config schema: #Config definition not found")
	}

	val := ctx.Encode(c.toSchemaMap())
	if err := val.Err(); err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}

	if err := def.Unify(val).Validate(cue.Concrete(true)); err != nil {
		return &InvalidConfigError{Errors: toValidationErrors(err)}
	}
	return nil
}

// toSchemaMap renders the config with the schema's snake_case field
// names. Month keys become strings so the CUE pattern constraint can
// match them.
func (c Config) toSchemaMap() map[string]any {
	seasonal := make(map[string]any, len(c.SeasonalModifiers))
	for month, mod := range c.SeasonalModifiers {
		seasonal[strconv.Itoa(month)] = mod
	}
	probs := make(map[string]any, len(c.Probabilities))
	for key, p := range c.Probabilities {
		probs[key] = p
	}
	return map[string]any{
		"guarantee_commit":   c.GuaranteeCommit,
		"probabilities":      probs,
		"half_hour_dip":      c.HalfHourDip,
		"weekday_modifier":   c.WeekdayModifier,
		"weekend_modifier":   c.WeekendModifier,
		"seasonal_modifiers": seasonal,
		"log_path":           c.LogPath,
		"message_path":       c.MessagePath,
		"history_path":       c.HistoryPath,
	}
}

func toValidationErrors(err error) []ValidationError {
	cueErrs := cueerrors.Errors(err)
	out := make([]ValidationError, 0, len(cueErrs))
	for _, ce := range cueErrs {
		field := strings.Join(ce.Path(), ".")
		if field == "" {
			field = "config"
		}
		format, args := ce.Msg()
		out = append(out, ValidationError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}
	return out
}
