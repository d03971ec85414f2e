package ivmap

import (
	"slices"
	"testing"
)

func k(v byte) *byte { return &v }

func TestMap_SetStore_SplitsOnOverlappingInsert(t *testing.T) {
	m := New[byte, int, map[int]struct{}, Set[int]]()

	m.InsertItem(k(98), k(99), 2)

	got := m.Intervals()
	want := []struct {
		lo, hi *byte
		items  []int
	}{
		{nil, k(98), nil},
		{k(98), k(99), []int{2}},
		{k(99), nil, nil},
	}
	assertIntervals(t, got, want)

	m.InsertItem(k(97), k(98), 1)

	got = m.Intervals()
	want = []struct {
		lo, hi *byte
		items  []int
	}{
		{nil, k(97), nil},
		{k(97), k(98), []int{1}},
		{k(98), k(99), []int{2}},
		{k(99), nil, nil},
	}
	assertIntervals(t, got, want)
}

func assertIntervals(t *testing.T, got []Interval[byte, map[int]struct{}], want []struct {
	lo, hi *byte
	items  []int
}) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(intervals) = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if !ptrEq(got[i].Lo, want[i].lo) || !ptrEq(got[i].Hi, want[i].hi) {
			t.Errorf("interval %d bounds = (%v, %v), want (%v, %v)", i, got[i].Lo, got[i].Hi, want[i].lo, want[i].hi)
		}
		gotItems := (Set[int]{}).Items(got[i].Value)
		slices.Sort(gotItems)
		wantItems := append([]int(nil), want[i].items...)
		slices.Sort(wantItems)
		if !slices.Equal(gotItems, wantItems) {
			t.Errorf("interval %d items = %v, want %v", i, gotItems, wantItems)
		}
	}
}

func ptrEq(a, b *byte) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func TestMap_UniqueStore_OverlappingInsertLastWins(t *testing.T) {
	m := New[byte, int, Optional[int], Unique[int]]()

	m.InsertItem(k(10), k(20), 1)
	m.InsertItem(k(15), k(25), 2)

	if got := m.Lookup(12); got.Value != 1 || !got.Present {
		t.Errorf("Lookup(12) = %+v, want {1 true}", got)
	}
	if got := m.Lookup(17); got.Value != 2 || !got.Present {
		t.Errorf("Lookup(17) = %+v, want {2 true}", got)
	}
	if got := m.Lookup(22); got.Value != 2 || !got.Present {
		t.Errorf("Lookup(22) = %+v, want {2 true}", got)
	}
	if got := m.Lookup(5); got.Present {
		t.Errorf("Lookup(5) = %+v, want not present", got)
	}
}

func TestMap_Append_MergesIntervals(t *testing.T) {
	a := New[byte, int, map[int]struct{}, Set[int]]()
	a.InsertItem(k(0), k(10), 1)

	b := New[byte, int, map[int]struct{}, Set[int]]()
	b.InsertItem(k(5), k(15), 2)

	a.Append(b)

	if items := (Set[int]{}).Items(a.Lookup(7)); !slices.Contains(items, 1) || !slices.Contains(items, 2) {
		t.Errorf("Lookup(7) = %v, want to contain both 1 and 2", items)
	}
}

func TestMap_Lookup_EmptyMap(t *testing.T) {
	m := New[byte, int, Optional[int], Unique[int]]()
	if got := m.Lookup(42); got.Present {
		t.Errorf("Lookup on empty map = %+v, want not present", got)
	}
}
