// Package literal extracts the mandatory literal prefix of a pattern and
// turns a set of variants' prefixes into a fast Aho-Corasick prefilter, so a
// compiled Automaton can reject obviously-non-matching input before ever
// touching the dfa.
package literal

import (
	"github.com/regenlang/regen/declare"
	"github.com/regenlang/regen/pattern"
)

// MandatoryPrefix walks the left spine of a resolved byte pattern and
// returns the longest run of forced literal bytes every match of p must
// begin with. It stops at the first branch point (Or, Repeat, a non-literal
// Atom range) or collect boundary it cannot see through for free — Collect
// itself is transparent since it doesn't affect which bytes match, only
// which field they're assigned to.
func MandatoryPrefix(p declare.Resolved[byte]) []byte {
	prefix, _ := mandatoryPrefix(p)
	return prefix
}

// mandatoryPrefix returns the literal prefix together with whether p was
// entirely consumed by it (complete). A Seq or Join only keeps extending the
// prefix into its next element while each prior element was complete.
func mandatoryPrefix(p declare.Resolved[byte]) (prefix []byte, complete bool) {
	switch p.Kind {
	case declare.KindAtom:
		if p.AtomKind == pattern.AtomPrimitive {
			return []byte{p.Value}, true
		}
		return nil, false

	case declare.KindSeq:
		var buf []byte
		for _, el := range p.Seq {
			pre, ok := mandatoryPrefix(el)
			buf = append(buf, pre...)
			if !ok {
				return buf, false
			}
		}
		return buf, true

	case declare.KindJoin:
		lhs, ok := mandatoryPrefix(*p.LHS)
		if !ok {
			return lhs, false
		}
		rhs, ok := mandatoryPrefix(*p.RHS)
		return append(lhs, rhs...), ok

	case declare.KindCollect:
		return mandatoryPrefix(*p.Body)

	default: // KindOr, KindRepeat: no single forced byte run
		return nil, false
	}
}
