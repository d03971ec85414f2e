// Package dfa determinizes a non-deterministic match graph (see the nfa
// package) via subset construction, producing the automaton the match
// package drives at runtime.
package dfa

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/regenlang/regen/ivmap"
	"github.com/regenlang/regen/nfa"
)

// Branches is a DFA state's outgoing transition table: a half-open interval
// partition of the token alphabet, each interval mapping to at most one
// successor state. Determinism is enforced by construction via the Unique
// store policy, not checked after the fact.
type Branches[T cmp.Ordered] = *ivmap.Map[T, int, ivmap.Optional[int], ivmap.Unique[int]]

// State is one node of the determinized match graph.
type State[T cmp.Ordered] struct {
	Branches Branches[T]

	// Assoc is the sorted list of variant indices accepted by this state.
	// More than one entry is a pattern conflict (see ConflictError).
	Assoc []int

	Collects []nfa.MatchProp
	Props    []nfa.MatchProp
}

// Graph is a deterministic match graph: state 0 is the entry, and every
// state has at most one successor per token.
type Graph[T cmp.Ordered] struct {
	States []State[T]
}

// State returns the state with the given id.
func (g *Graph[T]) State(id int) *State[T] {
	return &g.States[id]
}

// Len returns the number of states in the graph.
func (g *Graph[T]) Len() int {
	return len(g.States)
}

// ConflictError reports a DFA state accepting more than one variant, i.e.
// an ambiguous pattern configuration the caller has not opted out of
// rejecting (see FromNFA's allowConflict parameter).
type ConflictError struct {
	Assoc []int
}

func (e *ConflictError) Error() string {
	parts := make([]string, len(e.Assoc))
	for i, a := range e.Assoc {
		parts[i] = strconv.Itoa(a)
	}
	return "dfa: pattern conflict between variants " + strings.Join(parts, ", ")
}
