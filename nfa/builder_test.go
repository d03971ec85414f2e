package nfa

import (
	"testing"

	"github.com/regenlang/regen/declare"
	"github.com/regenlang/regen/pattern"
	"github.com/regenlang/regen/token"
)

func atom(v byte) declare.Resolved[byte] {
	return declare.Resolved[byte]{Kind: declare.KindAtom, AtomKind: pattern.AtomPrimitive, Value: v}
}

func atomRange(lo, hi byte) declare.Resolved[byte] {
	return declare.Resolved[byte]{
		Kind:     declare.KindAtom,
		AtomKind: pattern.AtomKindRange,
		Lo:       pattern.TokenBound[byte]{Kind: pattern.Included, Value: lo},
		Hi:       pattern.TokenBound[byte]{Kind: pattern.Included, Value: hi},
	}
}

func TestBuilder_Atom(t *testing.T) {
	b := NewBuilder[byte](token.Byte{})
	b.Add(0, atom('a'))
	g := b.Build()

	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (entry + one atom dest)", g.Len())
	}
	entry := g.State(0)
	ivs := entry.Branches.Intervals()
	found := false
	for _, iv := range ivs {
		for dst := range iv.Value {
			if dst == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("entry state has no branch to state 1; intervals=%v", ivs)
	}
	if len(g.State(1).Assoc) != 1 || g.State(1).Assoc[0] != 0 {
		t.Errorf("dest state Assoc = %v, want [0]", g.State(1).Assoc)
	}
}

func TestBuilder_Seq(t *testing.T) {
	b := NewBuilder[byte](token.Byte{})
	b.Add(0, declare.Resolved[byte]{Kind: declare.KindSeq, Seq: []declare.Resolved[byte]{atom('a'), atom('b')}})
	g := b.Build()

	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (entry + 2 atoms)", g.Len())
	}
	if len(g.State(2).Assoc) != 1 {
		t.Errorf("final state Assoc = %v, want one entry", g.State(2).Assoc)
	}
}

func TestBuilder_Or(t *testing.T) {
	b := NewBuilder[byte](token.Byte{})
	lhs := atom('a')
	rhs := atom('b')
	b.Add(0, declare.Resolved[byte]{Kind: declare.KindOr, LHS: &lhs, RHS: &rhs})
	g := b.Build()

	// entry(0) -> a-dest(1), b-dest(2); merge(3) accepts, reached by epsilon
	// from both 1 and 2.
	if g.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", g.Len())
	}
	merge := StateID(3)
	if len(g.State(1).EpsilonTransitions) != 1 || g.State(1).EpsilonTransitions[0] != merge {
		t.Errorf("state 1 epsilons = %v, want [%d]", g.State(1).EpsilonTransitions, merge)
	}
	if len(g.State(2).EpsilonTransitions) != 1 || g.State(2).EpsilonTransitions[0] != merge {
		t.Errorf("state 2 epsilons = %v, want [%d]", g.State(2).EpsilonTransitions, merge)
	}
	if len(g.State(merge).Assoc) != 1 {
		t.Errorf("merge state Assoc = %v, want one entry", g.State(merge).Assoc)
	}
}

func TestBuilder_RepeatUnbounded(t *testing.T) {
	body := atom('a')
	b := NewBuilder[byte](token.Byte{})
	b.Add(0, declare.Resolved[byte]{
		Kind:     declare.KindRepeat,
		Body:     &body,
		RepeatLo: pattern.Bound{Kind: pattern.Included, Value: 0},
		RepeatHi: pattern.Bound{Kind: pattern.Unbounded},
	})
	g := b.Build()

	// lo=Included(0) allocates a fresh skip state (1) epsilon-reachable
	// from the entry (0); that skip state is the loop entry and is marked
	// accepting (0 repeats is allowed). The body's dest (2) loops back to
	// the skip state.
	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", g.Len())
	}
	skip := StateID(1)
	if len(g.State(0).EpsilonTransitions) != 1 || g.State(0).EpsilonTransitions[0] != skip {
		t.Errorf("entry epsilons = %v, want [%d]", g.State(0).EpsilonTransitions, skip)
	}
	if len(g.State(skip).Assoc) != 1 {
		t.Errorf("skip state Assoc = %v, want one entry (zero repeats accepted)", g.State(skip).Assoc)
	}
	if len(g.State(2).EpsilonTransitions) != 1 || g.State(2).EpsilonTransitions[0] != skip {
		t.Errorf("body dest epsilons = %v, want loop back to skip state %d", g.State(2).EpsilonTransitions, skip)
	}
}

func TestBuilder_RepeatBounded(t *testing.T) {
	body := atom('a')
	b := NewBuilder[byte](token.Byte{})
	b.Add(0, declare.Resolved[byte]{
		Kind:     declare.KindRepeat,
		Body:     &body,
		RepeatLo: pattern.Bound{Kind: pattern.Included, Value: 1},
		RepeatHi: pattern.Bound{Kind: pattern.Included, Value: 2},
	})
	g := b.Build()

	// Mandatory: entry(0) -[a]-> 1. end=2; two further optional copies:
	// 1 -[a]-> 3, epsilon 3->2; 3 -[a]-> 4, epsilon 4->2.
	if g.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", g.Len())
	}
	end := StateID(2)
	if len(g.State(end).Assoc) != 1 {
		t.Errorf("end state Assoc = %v, want one entry", g.State(end).Assoc)
	}
	for _, s := range []StateID{3, 4} {
		found := false
		for _, e := range g.State(s).EpsilonTransitions {
			if e == end {
				found = true
			}
		}
		if !found {
			t.Errorf("state %d epsilons = %v, want a transition to end state %d", s, g.State(s).EpsilonTransitions, end)
		}
	}
}

func TestBuilder_Collect(t *testing.T) {
	body := atom('a')
	b := NewBuilder[byte](token.Byte{})
	b.Add(0, declare.Resolved[byte]{Kind: declare.KindCollect, Field: "x", Body: &body})
	g := b.Build()

	dest := StateID(1)
	if len(g.State(dest).Collects) != 1 || g.State(dest).Collects[0].Field != "x" {
		t.Errorf("dest Collects = %v, want [{Assoc:0 Field:x}]", g.State(dest).Collects)
	}
	if len(g.State(dest).Props) != 1 || g.State(dest).Props[0].Field != "x" {
		t.Errorf("dest Props = %v, want [{Assoc:0 Field:x}]", g.State(dest).Props)
	}
}

func TestBuilder_AtomRange(t *testing.T) {
	b := NewBuilder[byte](token.Byte{})
	b.Add(0, atomRange('0', '9'))
	g := b.Build()

	entry := g.State(0)
	for _, iv := range entry.Branches.Intervals() {
		if len(iv.Value) == 0 {
			continue
		}
		if iv.Lo == nil || *iv.Lo != '0' {
			t.Errorf("interval lo = %v, want '0'", iv.Lo)
		}
		if iv.Hi == nil || *iv.Hi != '9'+1 {
			t.Errorf("interval hi = %v, want '9'+1", iv.Hi)
		}
	}
}

func TestBuilder_MultipleVariantsShareEntry(t *testing.T) {
	b := NewBuilder[byte](token.Byte{})
	b.Add(0, atom('a'))
	b.Add(1, atom('b'))
	g := b.Build()

	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (shared entry + one dest per variant)", g.Len())
	}
}
