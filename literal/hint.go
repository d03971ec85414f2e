package literal

import "github.com/coregx/ahocorasick"

// PrefixHint is a fast pre-filter over a set of variants' mandatory
// prefixes: before driving the incremental matcher, callers can ask whether
// the input could possibly begin a match at all.
type PrefixHint struct {
	auto *ahocorasick.Automaton
}

// NewPrefixHint builds a prefilter from each variant's mandatory prefix. If
// any variant has no mandatory prefix (its pattern can start matching
// without forcing a literal byte), the hint can never safely reject
// anything, so NewPrefixHint reports ok=false and the caller should skip the
// prefilter rather than wire in a vacuous one.
func NewPrefixHint(prefixes [][]byte) (hint *PrefixHint, ok bool) {
	for _, p := range prefixes {
		if len(p) == 0 {
			return nil, false
		}
	}

	builder := ahocorasick.NewBuilder()
	for _, p := range prefixes {
		builder.AddPattern(p)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, false
	}
	return &PrefixHint{auto: auto}, true
}

// MayMatch reports whether buf could begin a match: some variant's
// mandatory prefix starts at position 0. A false result means the caller
// can skip driving the matcher entirely.
func (h *PrefixHint) MayMatch(buf []byte) bool {
	m := h.auto.Find(buf, 0)
	return m != nil && m.Start == 0
}
