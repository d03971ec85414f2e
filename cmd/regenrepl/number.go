package main

import (
	"github.com/regenlang/regen"
	"github.com/regenlang/regen/builders"
	"github.com/regenlang/regen/match"
	"github.com/regenlang/regen/nfa"
)

// Number is the value reconstructed from a matched numeric literal: its
// radix (decimal unless a "0b"/"0o"/"0x" marker was seen) and the raw digit
// run in that radix.
type Number struct {
	Radix  builders.Radix
	Digits string
}

// numberPattern is a single variant covering four alternatives: a bare
// decimal digit run, or "0" followed by a radix marker and a digit run
// drawn from that radix's alphabet.
const numberPattern = `
collect(digits <- ['0'..='9'; 1..])
| ("0" + collect(radix <- "b") + collect(digits <- [('0' | '1'); 1..]))
| ("0" + collect(radix <- "o") + collect(digits <- ['0'..='7'; 1..]))
| ("0" + collect(radix <- "x") + collect(digits <- [('0'..='9') | ('A'..='F') | ('a'..='f'); 1..]))
`

func buildNumberValue(fields map[string]any) Number {
	n := Number{Radix: builders.RadixDecimal}
	if r, ok := fields["radix"]; ok {
		n.Radix = r.(builders.Radix)
	}
	if d, ok := fields["digits"]; ok {
		n.Digits = d.(string)
	}
	return n
}

func newNumberBuilder(prop nfa.MatchProp) match.Builder[byte] {
	if prop.Field == "radix" {
		return builders.NewRadixBuilder()
	}
	return builders.NewStringBuilder()
}

// compileNumberAutomaton compiles the numeric-literal pattern set described
// above into a byte-alphabet Automaton.
func compileNumberAutomaton() (*regen.Automaton[byte, Number], error) {
	variants := []regen.VariantPattern[byte, Number]{
		{Source: numberPattern, Build: buildNumberValue},
	}
	return regen.CompileBytes(nil, variants, newNumberBuilder, regen.DefaultConfig())
}
