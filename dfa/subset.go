package dfa

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/regenlang/regen/internal/conv"
	"github.com/regenlang/regen/internal/sparse"
	"github.com/regenlang/regen/ivmap"
	"github.com/regenlang/regen/nfa"
)

// FromNFA determinizes g via subset construction: state 0 of the result is
// the epsilon closure of the NFA's entry state, and every DFA state's
// branches are the epsilon-closed union of its member NFA states'
// branches. allowConflict, when false, turns a DFA state that accepts more
// than one variant into a ConflictError instead of silently keeping the
// first-declared (lowest-index) variant.
func FromNFA[T cmp.Ordered](g *nfa.Graph[T], allowConflict bool) (*Graph[T], error) {
	initial := epsilonClosure(g, []uint32{0})

	seen := map[string]int{closureKey(initial): 0}
	unchecked := [][]uint32{initial}
	states := []State[T]{{}}

	for len(unchecked) > 0 {
		closure := unchecked[len(unchecked)-1]
		unchecked = unchecked[:len(unchecked)-1]
		id := seen[closureKey(closure)]

		branches := mergeBranches(g, closure, seen, &unchecked, &states)
		states[id].Branches = branches

		var assoc []int
		collects := map[nfa.MatchProp]struct{}{}
		props := map[nfa.MatchProp]struct{}{}
		for _, s := range closure {
			st := g.State(nfa.StateID(s))
			assoc = append(assoc, st.Assoc...)
			for _, c := range st.Collects {
				collects[c] = struct{}{}
			}
			for _, p := range st.Props {
				props[p] = struct{}{}
			}
		}
		slices.Sort(assoc)
		states[id].Assoc = assoc
		states[id].Collects = propSetToSlice(collects)
		states[id].Props = propSetToSlice(props)

		if len(assoc) > 1 && !allowConflict {
			return nil, &ConflictError{Assoc: append([]int(nil), assoc...)}
		}
	}

	return &Graph[T]{States: states}, nil
}

// mergeBranches combines the branches of every NFA state in closure into
// one interval map, then resolves each nonempty interval's successor set to
// a (possibly newly interned) DFA state id.
func mergeBranches[T cmp.Ordered](g *nfa.Graph[T], closure []uint32, seen map[string]int, unchecked *[][]uint32, states *[]State[T]) Branches[T] {
	combined := ivmap.New[T, nfa.StateID, map[nfa.StateID]struct{}, ivmap.Set[nfa.StateID]]()
	for _, s := range closure {
		combined.Append(g.State(nfa.StateID(s)).Branches)
	}

	out := ivmap.New[T, int, ivmap.Optional[int], ivmap.Unique[int]]()
	for _, iv := range combined.Intervals() {
		if len(iv.Value) == 0 {
			continue
		}

		seeds := make([]uint32, 0, len(iv.Value))
		for s := range iv.Value {
			seeds = append(seeds, uint32(s))
		}
		closure2 := epsilonClosure(g, seeds)

		key := closureKey(closure2)
		id, ok := seen[key]
		if !ok {
			id = int(conv.IntToUint32(len(*states)))
			seen[key] = id
			*states = append(*states, State[T]{})
			*unchecked = append(*unchecked, closure2)
		}

		out.InsertItem(iv.Lo, iv.Hi, id)
	}

	return out
}

// epsilonClosure computes the set of NFA states reachable from seeds via
// zero or more epsilon transitions, as a sorted slice (the sort makes the
// result usable as a stable interning key).
func epsilonClosure[T cmp.Ordered](g *nfa.Graph[T], seeds []uint32) []uint32 {
	reachable := sparse.New(uint32(g.Len()))
	unchecked := sparse.New(uint32(g.Len()))
	for _, s := range seeds {
		unchecked.Insert(s)
	}

	for {
		s, ok := unchecked.Pop()
		if !ok {
			break
		}
		reachable.Insert(s)

		for _, e := range g.State(nfa.StateID(s)).EpsilonTransitions {
			if !reachable.Contains(uint32(e)) {
				unchecked.Insert(uint32(e))
			}
		}
	}

	vals := append([]uint32(nil), reachable.Values()...)
	slices.Sort(vals)
	return vals
}

// propSetToSlice flattens a MatchProp set into a slice. Order is
// unspecified; callers only rely on set membership.
func propSetToSlice(set map[nfa.MatchProp]struct{}) []nfa.MatchProp {
	out := make([]nfa.MatchProp, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return out
}

// closureKey turns a sorted closure into a canonical map key.
func closureKey(closure []uint32) string {
	parts := make([]string, len(closure))
	for i, v := range closure {
		parts[i] = strconv.FormatUint(uint64(v), 36)
	}
	return strings.Join(parts, ",")
}
