package nfa

import (
	"cmp"

	"github.com/regenlang/regen/clist"
	"github.com/regenlang/regen/declare"
	"github.com/regenlang/regen/internal/conv"
	"github.com/regenlang/regen/ivmap"
	"github.com/regenlang/regen/pattern"
	"github.com/regenlang/regen/token"
)

// Builder lowers a set of variants' resolved patterns into a single shared
// Graph, one Add call per variant. Every variant's pattern branches from the
// same entry state (id 0); the dfa package's subset construction is what
// actually merges the resulting non-determinism away.
type Builder[T cmp.Ordered] struct {
	alpha token.Alphabet[T]
	graph *Graph[T]
}

// NewBuilder returns a Builder with a fresh entry state, using alpha to
// compute interval edges from inclusive/exclusive range bounds.
func NewBuilder[T cmp.Ordered](alpha token.Alphabet[T]) *Builder[T] {
	b := &Builder[T]{alpha: alpha, graph: &Graph[T]{}}
	b.allocState(clist.Empty[MatchProp](), nil)
	return b
}

// Add lowers pat, branching from the shared entry state, and marks its
// terminal state as accepting for assoc (the variant's index).
func (b *Builder[T]) Add(assoc int, pat declare.Resolved[T]) {
	props := []MatchProp{}
	end := b.insert(assoc, 0, clist.Empty[MatchProp](), &props, pat)
	b.graph.States[end].Assoc = append(b.graph.States[end].Assoc, assoc)
}

// Build returns the graph built so far.
func (b *Builder[T]) Build() *Graph[T] {
	return b.graph
}

// allocState allocates a new state, snapshotting the current collect stack
// and introduced-props set as its Collects/Props.
func (b *Builder[T]) allocState(collects clist.List[MatchProp], props []MatchProp) StateID {
	id := StateID(conv.IntToUint32(len(b.graph.States)))
	b.graph.States = append(b.graph.States, State[T]{
		Branches: ivmap.New[T, StateID, map[StateID]struct{}, ivmap.Set[StateID]](),
		Collects: collects.ToSlice(),
		Props:    append([]MatchProp(nil), props...),
	})
	return id
}

func (b *Builder[T]) addEpsilon(from, to StateID) {
	st := &b.graph.States[from]
	st.EpsilonTransitions = append(st.EpsilonTransitions, to)
}

// insert dispatches lowering by pat's kind, returning the state reached
// after consuming pat.
func (b *Builder[T]) insert(assoc int, state StateID, collects clist.List[MatchProp], props *[]MatchProp, pat declare.Resolved[T]) StateID {
	switch pat.Kind {
	case declare.KindAtom:
		return b.insertAtom(state, collects, props, pat)
	case declare.KindSeq:
		return b.insertSeq(assoc, state, collects, props, pat)
	case declare.KindJoin:
		return b.insertJoin(assoc, state, collects, props, pat)
	case declare.KindOr:
		return b.insertOr(assoc, state, collects, props, pat)
	case declare.KindRepeat:
		return b.insertRepeat(assoc, state, collects, props, pat)
	case declare.KindCollect:
		return b.insertCollect(assoc, state, collects, props, pat)
	default:
		panic(ErrInvalidPattern)
	}
}

// insertAtom allocates the destination state and inserts the (possibly
// singleton) interval pat describes into state's branches.
func (b *Builder[T]) insertAtom(state StateID, collects clist.List[MatchProp], props *[]MatchProp, pat declare.Resolved[T]) StateID {
	dest := b.allocState(collects, *props)

	switch pat.AtomKind {
	case pattern.AtomPrimitive:
		lo := pat.Value
		hi, ok := b.alpha.NextUp(lo)
		if ok {
			b.graph.States[state].Branches.InsertItem(&lo, &hi, dest)
		} else {
			b.graph.States[state].Branches.InsertItem(&lo, nil, dest)
		}

	case pattern.AtomKindRange:
		loPtr, hiPtr, ok := b.rangeEdges(pat.Lo, pat.Hi)
		if ok {
			b.graph.States[state].Branches.InsertItem(loPtr, hiPtr, dest)
		}
		// A degenerate bound (e.g. an exclusive lower bound at the
		// alphabet's maximum value) describes the empty set: dest is
		// allocated but left unreachable.
	}

	return dest
}

// rangeEdges converts an inclusive/exclusive/unbounded TokenBound pair into
// the half-open [lo, hi) edges ivmap.Insert expects. ok is false when the
// bounds describe an empty range.
func (b *Builder[T]) rangeEdges(lo, hi pattern.TokenBound[T]) (loPtr, hiPtr *T, ok bool) {
	switch lo.Kind {
	case pattern.Included:
		v := lo.Value
		loPtr = &v
	case pattern.Excluded:
		v, up := b.alpha.NextUp(lo.Value)
		if !up {
			return nil, nil, false
		}
		loPtr = &v
	}

	switch hi.Kind {
	case pattern.Included:
		v, up := b.alpha.NextUp(hi.Value)
		if up {
			hiPtr = &v
		}
		// else: hi.Value is already the alphabet's maximum, so the
		// exclusive edge is +infinity (nil).
	case pattern.Excluded:
		v := hi.Value
		hiPtr = &v
	}

	return loPtr, hiPtr, true
}

// insertSeq folds left through pat's elements, each one consuming the
// state reached by the one before it, under the same collect context.
func (b *Builder[T]) insertSeq(assoc int, state StateID, collects clist.List[MatchProp], props *[]MatchProp, pat declare.Resolved[T]) StateID {
	cur := state
	for _, elem := range pat.Seq {
		cur = b.insert(assoc, cur, collects, props, elem)
	}
	return cur
}

// insertJoin chains lhs then rhs.
func (b *Builder[T]) insertJoin(assoc int, state StateID, collects clist.List[MatchProp], props *[]MatchProp, pat declare.Resolved[T]) StateID {
	mid := b.insert(assoc, state, collects, props, *pat.LHS)
	return b.insert(assoc, mid, collects, props, *pat.RHS)
}

// insertOr lowers both branches from the same source state, then merges
// them into a fresh state via epsilon transitions.
func (b *Builder[T]) insertOr(assoc int, state StateID, collects clist.List[MatchProp], props *[]MatchProp, pat declare.Resolved[T]) StateID {
	lhsEnd := b.insert(assoc, state, collects, props, *pat.LHS)
	rhsEnd := b.insert(assoc, state, collects, props, *pat.RHS)

	merge := b.allocState(collects, *props)
	b.addEpsilon(lhsEnd, merge)
	b.addEpsilon(rhsEnd, merge)
	return merge
}

// insertRepeat unrolls pat.Body within [pat.RepeatLo, pat.RepeatHi]: first
// the lower bound's mandatory copies (Included(n>0) emits n, Excluded(n)
// emits n+1, anything else emits none and instead epsilons to a fresh skip
// state, since zero repeats is itself a valid accept), then the upper
// bound's further optional copies, each epsiloning to a shared end state
// that a skip state also epsilons to directly
// (Included(k) emits k, Excluded(k) emits k-1, Unbounded lowers the body
// once more and loops its end back to the skip/mandatory-end state).
func (b *Builder[T]) insertRepeat(assoc int, state StateID, collects clist.List[MatchProp], props *[]MatchProp, pat declare.Resolved[T]) StateID {
	if pattern.IsRangeEmpty(pat.RepeatLo, pat.RepeatHi) {
		panic(ErrEmptyRange)
	}
	body := *pat.Body

	var cur StateID
	skipped := false
	switch pat.RepeatLo.Kind {
	case pattern.Included:
		if pat.RepeatLo.Value > 0 {
			cur = state
			for i := 0; i < pat.RepeatLo.Value; i++ {
				cur = b.insert(assoc, cur, collects, props, body)
			}
		} else {
			cur = b.allocState(collects, *props)
			b.addEpsilon(state, cur)
			skipped = true
		}
	case pattern.Excluded:
		cur = state
		for i := 0; i <= pat.RepeatLo.Value; i++ {
			cur = b.insert(assoc, cur, collects, props, body)
		}
	default:
		cur = b.allocState(collects, *props)
		b.addEpsilon(state, cur)
		skipped = true
	}

	switch pat.RepeatHi.Kind {
	case pattern.Included:
		end := b.allocState(collects, *props)
		if skipped {
			b.addEpsilon(cur, end)
		}
		s := cur
		for i := 0; i < pat.RepeatHi.Value; i++ {
			s = b.insert(assoc, s, collects, props, body)
			b.addEpsilon(s, end)
		}
		return end

	case pattern.Excluded:
		end := b.allocState(collects, *props)
		if skipped {
			b.addEpsilon(cur, end)
		}
		s := cur
		for i := 1; i < pat.RepeatHi.Value; i++ {
			s = b.insert(assoc, s, collects, props, body)
			b.addEpsilon(s, end)
		}
		return end

	default:
		s := b.insert(assoc, cur, collects, props, body)
		b.addEpsilon(s, cur)
		return cur
	}
}

// insertCollect pushes a MatchProp for pat.Field onto both the shared props
// accumulator and the collect-context stack, then lowers the body under
// that extended context.
func (b *Builder[T]) insertCollect(assoc int, state StateID, collects clist.List[MatchProp], props *[]MatchProp, pat declare.Resolved[T]) StateID {
	prop := MatchProp{Assoc: assoc, Field: pat.Field}
	*props = append(*props, prop)
	return b.insert(assoc, state, collects.Append(prop), props, *pat.Body)
}
