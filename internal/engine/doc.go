// Package engine implements the commit decision logic.
//
// The engine is a pure function over three inputs: the hour of day, a
// pseudo-random draw in [0,1), and an immutable configuration. It never
// touches the filesystem, the process clock, or a global random source.
// Callers that want wall-clock behavior use DecideAt with a concrete
// timestamp; callers that want the bare hour rule use Decide.
//
// Decision priority is fixed:
//
//  1. guarantee_commit forces a commit.
//  2. Hours that are multiples of 3 always commit.
//  3. Even hours commit when the draw beats the even_hour probability.
//  4. Odd hours commit when the draw beats the odd_hour probability.
//
// Hour 0 is both even and a multiple of 3; the multiple-of-3 rule wins by
// rule order, never by a special case.
package engine
