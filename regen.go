// Package regen compiles a set of pattern-DSL variants into an immutable
// Automaton and drives it with an incremental, one-token-at-a-time matcher.
//
// A typical enum-like pattern set compiles to a single Automaton shared
// safely across goroutines; each goroutine then takes its own
// match.Matcher from NewMatcher, since matcher state (current DFA state,
// in-flight field builders) is single-use and owned exclusively by its
// caller.
//
// Basic usage:
//
//	auto, err := regen.CompileBytes(nil, []regen.VariantPattern[byte, Greeting]{
//	    {
//	        Source: `collect(name <- ['a'..='z'; 1..])`,
//	        Build:  func(f map[string]any) Greeting { return Greeting{Name: f["name"].(string)} },
//	    },
//	}, newBuilder, regen.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m := auto.NewMatcher()
//	m.Advance('a')
package regen

import (
	"cmp"

	"github.com/google/uuid"

	"github.com/regenlang/regen/dfa"
	"github.com/regenlang/regen/literal"
	"github.com/regenlang/regen/match"
)

// Config controls a single compilation. The alphabet isn't a Config field:
// it's selected at the Go type level by Compile's T type parameter rather
// than a runtime enum, so there is no way to ask for an alphabet Compile
// wasn't instantiated for.
type Config struct {
	// AllowConflict accepts ambiguous accept states (more than one variant
	// reachable on the same input) instead of failing compilation, electing
	// first-declared-wins at runtime.
	AllowConflict bool
}

// DefaultConfig returns the default compilation options: conflicts are
// reported as errors rather than silently resolved.
func DefaultConfig() Config {
	return Config{}
}

// Declaration is one named pattern in a declare(...) list. Order matters: a
// declaration's source may reference any name declared before it in the same
// list (or in an enclosing scope), never one declared after.
type Declaration struct {
	Name   string
	Source string
}

// VariantPattern describes one enum variant's contribution to a compiled
// Automaton: its pattern DSL source, any variant-scoped declare(...) names,
// and the function that assembles the variant's value from its built field
// values.
type VariantPattern[T cmp.Ordered, V any] struct {
	// Source is this variant's `pattern = <pattern>` DSL source.
	Source string
	// Declare adds variant-scoped named patterns in order, shadowing any
	// type-level declaration of the same name for this variant only.
	Declare []Declaration
	// Build assembles the variant's value from its collected fields, keyed
	// by field name.
	Build match.VariantFunc[V]
}

// Automaton is a compiled, immutable pattern set. Compile returns one; it is
// safe to share across goroutines. Match state lives in the
// match.Matcher returned by NewMatcher, never in the Automaton itself.
type Automaton[T cmp.Ordered, V any] struct {
	id         uuid.UUID
	graph      *dfa.Graph[T]
	newBuilder match.NewBuilderFunc[T]
	variants   []match.VariantFunc[V]
	prefix     *literal.PrefixHint
}

// ID returns the UUID this Automaton was tagged with at compile time. It
// has no bearing on matching; it exists so operators can correlate a
// specific compilation (pattern set plus options) across logs or REPL
// sessions.
func (a *Automaton[T, V]) ID() uuid.UUID { return a.id }

// NewMatcher returns a fresh match.Matcher positioned at this Automaton's
// initial state, with a default-constructed builder for every field the
// initial state already carries (see match.New).
func (a *Automaton[T, V]) NewMatcher() *match.Matcher[T, V] {
	return match.New(a.graph, a.newBuilder, a.variants)
}

// PrefixHint returns this Automaton's literal prefilter and whether one was
// built. Only byte-alphabet automatons compiled with CompileBytes ever carry
// one; Compile alone never does (literal prefix extraction is defined for
// bytes only — see the literal package).
func (a *Automaton[T, V]) PrefixHint() (*literal.PrefixHint, bool) {
	return a.prefix, a.prefix != nil
}

// StateCount returns the number of states in the compiled DFA, for
// diagnostics (e.g. reporting compiled automaton size alongside compile
// duration).
func (a *Automaton[T, V]) StateCount() int {
	return a.graph.Len()
}
