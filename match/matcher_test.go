package match

import (
	"testing"

	"github.com/regenlang/regen/declare"
	"github.com/regenlang/regen/dfa"
	"github.com/regenlang/regen/nfa"
	"github.com/regenlang/regen/pattern"
	"github.com/regenlang/regen/token"
)

type stringBuilder struct{ buf []byte }

func (b *stringBuilder) Append(t byte)       { b.buf = append(b.buf, t) }
func (b *stringBuilder) Build() (any, error) { return string(b.buf), nil }

func newStringBuilder(nfa.MatchProp) Builder[byte] { return &stringBuilder{} }

type xValue struct{ X string }

func atom(v byte) declare.Resolved[byte] {
	return declare.Resolved[byte]{Kind: declare.KindAtom, AtomKind: pattern.AtomPrimitive, Value: v}
}

func buildGraph(t *testing.T, pat declare.Resolved[byte]) *dfa.Graph[byte] {
	t.Helper()
	b := nfa.NewBuilder[byte](token.Byte{})
	b.Add(0, pat)
	g, err := dfa.FromNFA(b.Build(), false)
	if err != nil {
		t.Fatalf("FromNFA: %v", err)
	}
	return g
}

// TestLiteral_S1 exercises a literal "ab" collected into field x: feeding
// 'a' is Partial with no current value, feeding 'b' is Match and rebuilds
// x = "ab", and any further byte kills the matcher.
func TestLiteral_S1(t *testing.T) {
	pat := declare.Resolved[byte]{
		Kind:  declare.KindCollect,
		Field: "x",
		Body: &declare.Resolved[byte]{
			Kind: declare.KindSeq,
			Seq:  []declare.Resolved[byte]{atom('a'), atom('b')},
		},
	}
	g := buildGraph(t, pat)
	variants := []VariantFunc[xValue]{
		func(fields map[string]any) xValue { return xValue{X: fields["x"].(string)} },
	}
	m := New[byte, xValue](g, newStringBuilder, variants)

	if r := m.Advance('a'); r.Outcome != Partial {
		t.Fatalf("Advance('a') = %v, want Partial", r.Outcome)
	}
	if _, err := m.Current(); err == nil {
		t.Fatal("Current() after partial match should error")
	} else if me, ok := err.(*MatchError); !ok || me.Kind != NotMatched {
		t.Errorf("got %v, want NotMatched", err)
	}

	if r := m.Advance('b'); r.Outcome != Match {
		t.Fatalf("Advance('b') = %v, want Match", r.Outcome)
	}
	v, err := m.Current()
	if err != nil {
		t.Fatalf("Current(): %v", err)
	}
	if v.X != "ab" {
		t.Errorf("X = %q, want \"ab\"", v.X)
	}

	if r := m.Advance('c'); r.Outcome != AdvanceError {
		t.Fatalf("Advance('c') = %v, want Error", r.Outcome)
	}
}

// TestComplete_EmptyRepeatAcceptsImmediately checks that Repeat{Unbounded,
// Unbounded} over an atom accepts the empty sequence: Complete on a fresh
// matcher, with no Advance calls, reports Match.
func TestComplete_EmptyRepeatAcceptsImmediately(t *testing.T) {
	body := atom('a')
	pat := declare.Resolved[byte]{
		Kind:     declare.KindRepeat,
		Body:     &body,
		RepeatLo: pattern.Bound{Kind: pattern.Unbounded},
		RepeatHi: pattern.Bound{Kind: pattern.Unbounded},
	}
	g := buildGraph(t, pat)
	variants := []VariantFunc[xValue]{
		func(fields map[string]any) xValue { return xValue{} },
	}
	m := New[byte, xValue](g, newStringBuilder, variants)

	r := m.Complete()
	if r.Outcome != CompleteMatch {
		t.Fatalf("Complete() on fresh matcher = %v, want Match", r.Outcome)
	}
}

// TestAdvance_DeadStateAlwaysErrors checks that once a matcher has errored,
// every further Advance and Complete call also errors rather than panicking.
func TestAdvance_DeadStateAlwaysErrors(t *testing.T) {
	g := buildGraph(t, atom('a'))
	variants := []VariantFunc[xValue]{func(map[string]any) xValue { return xValue{} }}
	m := New[byte, xValue](g, newStringBuilder, variants)

	m.Advance('z') // no transition for 'z'
	if r := m.Advance('a'); r.Outcome != AdvanceError {
		t.Errorf("Advance after death = %v, want Error", r.Outcome)
	}
	if r := m.Complete(); r.Outcome != CompleteError {
		t.Errorf("Complete after death = %v, want Error", r.Outcome)
	}
}

// TestCollect_ReEntryResetsBuilder verifies that a collect context entered,
// exited (to a state not in its collects), and re-entered starts its
// builder over rather than appending across the gap.
func TestCollect_ReEntryResetsBuilder(t *testing.T) {
	// collect(x <- "a") + "b" + collect(x <- "c")
	// After 'a','b','c': x should be just "c" (the second collect re-enters
	// x from the uncollected 'b' and starts fresh), not "ac".
	first := declare.Resolved[byte]{Kind: declare.KindCollect, Field: "x", Body: ptr(atom('a'))}
	second := declare.Resolved[byte]{Kind: declare.KindCollect, Field: "x", Body: ptr(atom('c'))}
	lhs := declare.Resolved[byte]{Kind: declare.KindJoin, LHS: &first, RHS: ptr(atom('b'))}
	pat := declare.Resolved[byte]{Kind: declare.KindJoin, LHS: &lhs, RHS: &second}

	g := buildGraph(t, pat)
	variants := []VariantFunc[xValue]{
		func(fields map[string]any) xValue { return xValue{X: fields["x"].(string)} },
	}
	m := New[byte, xValue](g, newStringBuilder, variants)

	m.Advance('a')
	m.Advance('b')
	r := m.Advance('c')
	if r.Outcome != Match {
		t.Fatalf("Advance('c') = %v, want Match", r.Outcome)
	}
	v, err := m.Current()
	if err != nil {
		t.Fatalf("Current(): %v", err)
	}
	if v.X != "c" {
		t.Errorf("X = %q, want \"c\" (collect re-entered at 'c' should not see 'a')", v.X)
	}
}

func ptr[T any](v T) *T { return &v }
