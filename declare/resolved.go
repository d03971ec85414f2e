// Package declare implements the lexically scoped declaration environment
// and the resolver that eliminates Class references from a Pattern[T],
// producing a Resolved[T] tree the nfa package can lower directly.
package declare

import "github.com/regenlang/regen/pattern"

// Kind discriminates Resolved[T]'s variants. It is Pattern's Kind with
// KindClass removed: a Resolved tree can, by construction, never contain an
// unresolved reference, which is the point of keeping this a separate type
// from pattern.Pattern rather than reusing it with an "already resolved"
// runtime flag.
type Kind int

const (
	KindAtom Kind = iota
	KindSeq
	KindJoin
	KindOr
	KindRepeat
	KindCollect
)

// Resolved is the pattern tree after every Class reference has been
// substituted with its declared definition. Structurally it mirrors
// Pattern[T] minus the Class variant.
type Resolved[T any] struct {
	Kind Kind

	// KindAtom
	AtomKind pattern.AtomKind
	Value    T
	Lo, Hi   pattern.TokenBound[T]

	// KindSeq
	Seq []Resolved[T]

	// KindJoin, KindOr
	LHS, RHS *Resolved[T]

	// KindRepeat
	Body     *Resolved[T]
	RepeatLo pattern.Bound
	RepeatHi pattern.Bound

	// KindCollect
	Field string
}
