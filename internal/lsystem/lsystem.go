// Package lsystem defines the immutable state of a Lindenmayer system: the
// current symbol sequence, the iteration that produced it, and a shared
// handle to the rule table it evolves under.
package lsystem

import "github.com/hmoreau/lindel/internal/rules"

// System is one generation of an L-system.
//
// INVARIANT: a System is immutable once constructed. Rewriting produces a
// brand-new System; the rule table handle is shared, never copied, across
// every generation derived from the same axiom.
type System[S comparable] struct {
	iteration uint64
	state     []S
	rules     *rules.Table[S]
}

// New creates a generation-0 System from an axiom. The axiom is copied so
// the caller cannot mutate the system's state afterwards.
func New[S comparable](axiom []S, table *rules.Table[S]) *System[S] {
	state := make([]S, len(axiom))
	copy(state, axiom)
	return &System[S]{state: state, rules: table}
}

// NewString creates a generation-0 rune System directly from a string.
func NewString(axiom string, table *rules.Table[rune]) *System[rune] {
	return &System[rune]{state: []rune(axiom), rules: table}
}

// Iteration returns the number of rewrite steps applied to reach this state.
// An axiom is at iteration 0.
func (s *System[S]) Iteration() uint64 {
	return s.iteration
}

// State returns the symbol sequence. The slice is shared with the system;
// callers must treat it as read-only.
func (s *System[S]) State() []S {
	return s.state
}

// Len returns the number of symbols in the current state.
func (s *System[S]) Len() int {
	return len(s.state)
}

// Rules returns the shared rule table handle.
func (s *System[S]) Rules() *rules.Table[S] {
	return s.rules
}

// Next builds the successor generation from an already-rewritten state.
// Ownership of state transfers to the new System: rewriters build the slice
// and must not retain it. The rule table handle is inherited unchanged.
func (s *System[S]) Next(state []S) *System[S] {
	return &System[S]{
		iteration: s.iteration + 1,
		state:     state,
		rules:     s.rules,
	}
}
