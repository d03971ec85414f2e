package match

import (
	"cmp"

	"github.com/regenlang/regen/dfa"
	"github.com/regenlang/regen/nfa"
)

// Builder is the field builder contract: a default-constructed accumulator
// that absorbs tokens one at a time and, once asked, commits to a value or
// fails. Builder implementations are supplied by the caller; this package
// only invokes them.
type Builder[T any] interface {
	Append(t T)
	Build() (any, error)
}

// NewBuilderFunc constructs a fresh, empty Builder for one collect slot.
type NewBuilderFunc[T any] func(prop nfa.MatchProp) Builder[T]

// VariantFunc assembles variant assoc's output value from its built field
// values, keyed by field name.
type VariantFunc[V any] func(fields map[string]any) V

// deadState marks a matcher that has permanently rejected.
const deadState = -1

// Matcher drives a compiled dfa.Graph one token at a time. The zero value
// is not usable; construct with New.
type Matcher[T cmp.Ordered, V any] struct {
	graph      *dfa.Graph[T]
	newBuilder NewBuilderFunc[T]
	variants   []VariantFunc[V]

	state    int
	builders map[nfa.MatchProp]Builder[T]
}

// New returns a Matcher in the graph's initial state (state 0), with a
// default-constructed builder for every prop the initial state carries.
// variants is indexed by assoc (variant declaration order).
func New[T cmp.Ordered, V any](graph *dfa.Graph[T], newBuilder NewBuilderFunc[T], variants []VariantFunc[V]) *Matcher[T, V] {
	m := &Matcher[T, V]{
		graph:      graph,
		newBuilder: newBuilder,
		variants:   variants,
		state:      0,
		builders:   make(map[nfa.MatchProp]Builder[T]),
	}
	for _, p := range graph.State(0).Props {
		m.builders[p] = newBuilder(p)
	}
	return m
}

// Advance consumes one token. Once it returns AdvanceError the matcher is
// dead: every subsequent Advance and Complete call also errors.
func (m *Matcher[T, V]) Advance(t T) AdvanceResult {
	if m.state == deadState {
		return AdvanceResult{Outcome: AdvanceError}
	}

	src := m.graph.State(m.state)
	dst := src.Branches.Lookup(t)
	if !dst.Present {
		m.state = deadState
		return AdvanceResult{Outcome: AdvanceError}
	}
	dest := m.graph.State(dst.Value)

	srcProps := propSet(src.Props)
	srcCollects := propSet(src.Collects)

	for _, p := range dest.Props {
		if _, ok := srcProps[p]; !ok {
			m.builders[p] = m.newBuilder(p)
		}
	}
	for _, p := range dest.Collects {
		if _, wasProp := srcProps[p]; wasProp {
			if _, wasCollecting := srcCollects[p]; !wasCollecting {
				m.builders[p] = m.newBuilder(p)
			}
		}
	}
	for _, p := range dest.Collects {
		if b, ok := m.builders[p]; ok {
			b.Append(t)
		}
	}

	m.state = dst.Value
	if len(dest.Assoc) > 0 {
		return AdvanceResult{Outcome: Match, Consumed: 1}
	}
	return AdvanceResult{Outcome: Partial, Consumed: 1}
}

// Complete terminates the match: if the current state accepts, returns
// Match; otherwise Error. Either way the matcher is dead afterward.
func (m *Matcher[T, V]) Complete() CompleteResult {
	if m.state == deadState {
		return CompleteResult{Outcome: CompleteError}
	}
	cur := m.graph.State(m.state)
	accepts := len(cur.Assoc) > 0
	m.state = deadState
	if accepts {
		return CompleteResult{Outcome: CompleteMatch, Consumed: 1}
	}
	return CompleteResult{Outcome: CompleteError}
}

// Current inspects the present state without consuming input or killing
// the matcher. If accepting, it builds and returns the first-declared
// (lowest assoc) accepted variant's value.
func (m *Matcher[T, V]) Current() (V, error) {
	var zero V
	if m.state == deadState {
		return zero, &MatchError{Kind: NotMatched}
	}

	cur := m.graph.State(m.state)
	if len(cur.Assoc) == 0 {
		return zero, &MatchError{Kind: NotMatched}
	}
	assoc := cur.Assoc[0]

	fields := make(map[string]any)
	for _, p := range cur.Props {
		if p.Assoc != assoc {
			continue
		}
		b, ok := m.builders[p]
		if !ok {
			continue
		}
		v, err := b.Build()
		if err != nil {
			return zero, &MatchError{Kind: Collect, Err: err}
		}
		fields[p.Field] = v
	}

	return m.variants[assoc](fields), nil
}

func propSet(props []nfa.MatchProp) map[nfa.MatchProp]struct{} {
	s := make(map[nfa.MatchProp]struct{}, len(props))
	for _, p := range props {
		s[p] = struct{}{}
	}
	return s
}
