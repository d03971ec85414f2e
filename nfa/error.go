// Package nfa builds the non-deterministic match graph for a set of
// variants' resolved patterns: one recursive lowering call per variant,
// sharing a single entry state, producing a graph the dfa package
// determinizes via subset construction.
package nfa

import "errors"

// Invariant violations the builder panics with. All of them indicate caller
// bugs rather than bad user input: the pattern parser rejects empty
// repetition ranges before lowering ever sees one, and a Resolved tree can
// only hold the kinds the builder handles.
var (
	// ErrInvalidState indicates a StateID outside the graph's range.
	ErrInvalidState = errors.New("nfa: invalid state")

	// ErrInvalidPattern indicates a resolved pattern the builder cannot lower.
	ErrInvalidPattern = errors.New("nfa: invalid pattern")

	// ErrEmptyRange indicates a repeat bound describes no counts at all.
	ErrEmptyRange = errors.New("nfa: empty repetition range")
)
