// Package ivmap implements an ordered map from disjoint half-open intervals
// of an ordered key type to a per-interval value store.
//
// It backs both the NFA's transition table (store policy Set: many reachable
// successor states per interval) and the DFA's (store policy Unique: at most
// one successor per interval, enforcing determinism by construction). The
// division-point representation and insert algorithm are ported directly
// from the pattern compiler this module generalizes: the map is kept as a
// sorted list of division points (interval left edges, "lower" covering
// everything below the first point), and every insert first splits any
// existing interval straddling the new range's edges so each existing
// interval ends up either wholly inside or wholly outside it. Equal-valued
// adjacent intervals are never merged back together — correctness does not
// require it, and leaving divisions "sticky" avoids quadratic re-fracturing
// across many overlapping inserts.
package ivmap

import (
	"cmp"
	"slices"
	"sort"
)

// Store defines how a per-interval cell of type C accumulates inserted items
// of type I. Set (many items per cell) and Unique (last item wins) are the
// two policies regen needs; New must return the empty cell and Items must
// return New()'s items unchanged as an empty slice.
type Store[C any, I any] interface {
	New() C
	Extend(c C, items []I) C
	Items(c C) []I
}

// Map is an interval map over keys K with a per-interval store C holding
// items I, under store policy S.
type Map[K cmp.Ordered, I any, C any, S Store[C, I]] struct {
	lower C
	keys  []K
	cells []C
}

// New returns an empty Map whose single interval (-inf, +inf) holds the
// empty cell.
func New[K cmp.Ordered, I any, C any, S Store[C, I]]() *Map[K, I, C, S] {
	var s S
	return &Map[K, I, C, S]{lower: s.New()}
}

// Interval is one (lo, hi, value) triple of a Map's partition, as yielded by
// Intervals. A nil Lo means -infinity; a nil Hi means +infinity.
type Interval[K any, C any] struct {
	Lo    *K
	Hi    *K
	Value C
}

// Insert extends the cell of every interval within [from, to) by items. A
// nil from means -infinity (extending Map's lower cell too); a nil to means
// +infinity.
func (m *Map[K, I, C, S]) Insert(from, to *K, items []I) {
	var s S
	if len(items) == 0 {
		return
	}
	if from != nil {
		m.ensure(*from)
	}
	if to != nil {
		m.ensure(*to)
	}

	start := 0
	if from != nil {
		start = m.indexOf(*from)
	} else {
		m.lower = s.Extend(m.lower, items)
	}

	end := len(m.keys)
	if to != nil {
		end = m.indexOf(*to)
	}

	for i := start; i < end; i++ {
		m.cells[i] = s.Extend(m.cells[i], items)
	}
}

// InsertItem is Insert for a single item.
func (m *Map[K, I, C, S]) InsertItem(from, to *K, item I) {
	m.Insert(from, to, []I{item})
}

// Append merges every interval of other into m, in place.
func (m *Map[K, I, C, S]) Append(other *Map[K, I, C, S]) {
	var s S
	for _, iv := range other.Intervals() {
		items := s.Items(iv.Value)
		if len(items) == 0 {
			continue
		}
		m.Insert(iv.Lo, iv.Hi, items)
	}
}

// Lookup returns the cell of the interval containing t.
func (m *Map[K, I, C, S]) Lookup(t K) C {
	idx := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] > t })
	if idx == 0 {
		return m.lower
	}
	return m.cells[idx-1]
}

// Intervals returns the Map's full partition in ascending order.
func (m *Map[K, I, C, S]) Intervals() []Interval[K, C] {
	out := make([]Interval[K, C], 0, len(m.keys)+1)
	var lastLo *K
	lastVal := m.lower
	for i := range m.keys {
		k := m.keys[i]
		out = append(out, Interval[K, C]{Lo: lastLo, Hi: &k, Value: lastVal})
		lastLo = &k
		lastVal = m.cells[i]
	}
	out = append(out, Interval[K, C]{Lo: lastLo, Hi: nil, Value: lastVal})
	return out
}

// ensure guarantees a division point exists at k, splitting whichever
// interval currently contains k and cloning its value into the new cell.
func (m *Map[K, I, C, S]) ensure(k K) {
	var s S
	idx := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= k })
	if idx < len(m.keys) && m.keys[idx] == k {
		return
	}

	var prev C
	if idx == 0 {
		prev = m.lower
	} else {
		prev = m.cells[idx-1]
	}
	newCell := s.Extend(s.New(), s.Items(prev))

	m.keys = slices.Insert(m.keys, idx, k)
	m.cells = slices.Insert(m.cells, idx, newCell)
}

// indexOf returns the index of the division point at key k. The caller must
// have already ensured k exists.
func (m *Map[K, I, C, S]) indexOf(k K) int {
	return sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= k })
}

// Set is the multi-valued store policy used by the NFA: each interval holds
// the set of NFA state indices reachable on that interval.
type Set[I comparable] struct{}

// New implements Store.
func (Set[I]) New() map[I]struct{} { return map[I]struct{}{} }

// Extend implements Store.
func (Set[I]) Extend(c map[I]struct{}, items []I) map[I]struct{} {
	for _, it := range items {
		c[it] = struct{}{}
	}
	return c
}

// Items implements Store.
func (Set[I]) Items(c map[I]struct{}) []I {
	out := make([]I, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	return out
}

// Optional is Unique's cell type: at most one item.
type Optional[I any] struct {
	Value   I
	Present bool
}

// Unique is the single-valued store policy used by the DFA: each interval
// holds at most one destination state, enforcing determinism by
// construction. A later Extend call within the same
// insert always overwrites an earlier one (last write wins), matching the
// upstream's Option::extend(...).last() semantics.
type Unique[I any] struct{}

// New implements Store.
func (Unique[I]) New() Optional[I] { return Optional[I]{} }

// Extend implements Store.
func (Unique[I]) Extend(c Optional[I], items []I) Optional[I] {
	if len(items) == 0 {
		return c
	}
	return Optional[I]{Value: items[len(items)-1], Present: true}
}

// Items implements Store.
func (Unique[I]) Items(c Optional[I]) []I {
	if !c.Present {
		return nil
	}
	return []I{c.Value}
}
