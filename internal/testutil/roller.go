// Package testutil provides deterministic stand-ins for the engine's
// random source, so tests can pin every draw.
package testutil

import "sync"

// FixedRoller returns the same draw on every call.
//
// This enables deterministic test execution: a decision made with a
// FixedRoller depends only on the hour and configuration.
//
// Thread-safety: FixedRoller is stateless and safe for concurrent use.
type FixedRoller struct {
	draw float64
}

// NewFixedRoller creates a roller that always returns draw.
func NewFixedRoller(draw float64) *FixedRoller {
	return &FixedRoller{draw: draw}
}

// Roll returns the fixed draw.
//
// Implements engine.Roller.
func (r *FixedRoller) Roll() float64 {
	return r.draw
}

// SequenceRoller returns predetermined draws in order.
//
// Tests provide a known sequence and verify exact outcomes. Panics when
// the sequence is exhausted - a fail-fast signal that the test consumed
// more draws than it planned for.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceRoller struct {
	mu    sync.Mutex
	draws []float64
	idx   int
}

// NewSequenceRoller creates a roller that returns draws in order.
//
// Example:
//
//	r := testutil.NewSequenceRoller(0.1, 0.9)
//	r.Roll() // 0.1
//	r.Roll() // 0.9
//	r.Roll() // panic: all draws exhausted
func NewSequenceRoller(draws ...float64) *SequenceRoller {
	return &SequenceRoller{draws: draws}
}

// Roll returns the next predetermined draw.
//
// Implements engine.Roller.
func (r *SequenceRoller) Roll() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.idx >= len(r.draws) {
		panic("testutil: all draws exhausted")
	}
	d := r.draws[r.idx]
	r.idx++
	return d
}
