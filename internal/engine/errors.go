package engine

import (
	"errors"
	"fmt"
)

// InputError represents invalid input to the engine.
//
// Input errors are programming or configuration errors, not operational
// ones: an hour outside 0..23, a draw outside [0,1), or a probability
// table missing a required category. They are raised before any side
// effect and must not be retried.
type InputError struct {
	// Field names the offending input ("hour", "draw", "probabilities").
	Field string

	// Value is the rejected value, formatted into the error message.
	Value any

	// Message describes the constraint that was violated.
	Message string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Message)
}

// IsInputError reports whether err is (or wraps) an InputError.
// Uses errors.As to handle wrapped errors.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

func newHourError(hour int) *InputError {
	return &InputError{Field: "hour", Value: hour, Message: "must be in 0..23"}
}

func newDrawError(draw float64) *InputError {
	return &InputError{Field: "draw", Value: draw, Message: "must be in [0,1)"}
}

func newProbabilityError(key string) *InputError {
	return &InputError{Field: "probabilities", Value: key, Message: "missing required category"}
}
