package nfa

import (
	"cmp"
	"fmt"

	"github.com/regenlang/regen/ivmap"
)

// StateID uniquely identifies a state within one Graph.
type StateID uint32

// InvalidState is a sentinel for "no such state".
const InvalidState StateID = 0xFFFFFFFF

// MatchProp names one field a collect context appends consumed tokens to,
// tagged with the variant (by its assoc index) that owns it. Two variants
// may declare fields of the same name without colliding, since MatchProp
// compares on (Assoc, Field) as a pair.
type MatchProp struct {
	Assoc int
	Field string
}

// Branches is a state's outgoing transition table: a half-open interval
// partition of the token alphabet, each interval mapping to the set of
// states reachable by consuming a token in it.
type Branches[T cmp.Ordered] = *ivmap.Map[T, StateID, map[StateID]struct{}, ivmap.Set[StateID]]

// State is one node of the non-deterministic match graph.
type State[T cmp.Ordered] struct {
	Branches           Branches[T]
	EpsilonTransitions []StateID

	// Assoc lists the variant indices this state accepts, i.e. the variants
	// whose pattern can end here. Empty for every non-accepting state.
	Assoc []int

	// Collects is the collect context this state was allocated under: every
	// field currently being appended to on any path reaching this state.
	Collects []MatchProp

	// Props is a snapshot, taken when this state was allocated, of every
	// field whose collect had already been lowered for this state's variant,
	// including collects on sibling branches that no path to this state
	// passes through. A field may appear more than once.
	Props []MatchProp
}

// Graph is a non-deterministic match graph: one entry state (index 0) with
// the lowered pattern of every variant branching from it, built by Builder.
type Graph[T cmp.Ordered] struct {
	States []State[T]
}

// State returns the state with the given id, panicking with ErrInvalidState
// for an id no state in this graph carries.
func (g *Graph[T]) State(id StateID) *State[T] {
	if int(id) >= len(g.States) {
		panic(ErrInvalidState)
	}
	return &g.States[id]
}

// Len returns the number of states in the graph.
func (g *Graph[T]) Len() int {
	return len(g.States)
}

func (s State[T]) String() string {
	return fmt.Sprintf("State{branches: %d intervals, eps: %v, assoc: %v}",
		len(s.Branches.Intervals()), s.EpsilonTransitions, s.Assoc)
}
