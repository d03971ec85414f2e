// Package token defines the token-alphabet abstraction that every other
// package in regen is parametrized over: a totally ordered, copyable type
// with a successor operation. Concretely this covers bytes, the fixed-width
// unsigned integers, and Unicode scalar values (runes).
//
// Every pattern, automaton, and matcher in regen carries a type parameter T
// constrained to cmp.Ordered and is handed a concrete Alphabet[T] value
// describing how to compute T's successor. Passing the alphabet as a value
// rather than folding "has a successor" into the type parameter itself keeps
// the constraint on T to the comparisons the rest of the compiler already
// needs (ivmap's ordering, sorted assoc lists) without requiring every
// instantiation to define its own named method set.
package token

import "cmp"

// Alphabet describes the successor operation over an ordered token type T.
// NextUp returns the next representable value after t, or ok=false if t is
// already the maximum representable value (saturation).
type Alphabet[T cmp.Ordered] interface {
	NextUp(t T) (next T, ok bool)
}

// Byte is the Alphabet for the byte token type.
type Byte struct{}

// NextUp implements Alphabet.
func (Byte) NextUp(t byte) (byte, bool) {
	if t == 0xFF {
		return 0, false
	}
	return t + 1, true
}

// Rune is the Alphabet for Unicode scalar values, following Go's rune
// (int32) representation. NextUp skips the surrogate range, which is never
// a valid Unicode scalar value.
type Rune struct{}

// NextUp implements Alphabet.
func (Rune) NextUp(t rune) (rune, bool) {
	if t == 0x10FFFF {
		return 0, false
	}
	n := t + 1
	if n == 0xD800 {
		n = 0xE000
	}
	return n, true
}

// Uint16 is the Alphabet for 16-bit unsigned integers.
type Uint16 struct{}

// NextUp implements Alphabet.
func (Uint16) NextUp(t uint16) (uint16, bool) {
	if t == 0xFFFF {
		return 0, false
	}
	return t + 1, true
}

// Uint32 is the Alphabet for 32-bit unsigned integers.
type Uint32 struct{}

// NextUp implements Alphabet.
func (Uint32) NextUp(t uint32) (uint32, bool) {
	if t == 0xFFFFFFFF {
		return 0, false
	}
	return t + 1, true
}

// Uint64 is the Alphabet for 64-bit unsigned integers.
type Uint64 struct{}

// NextUp implements Alphabet.
func (Uint64) NextUp(t uint64) (uint64, bool) {
	if t == 0xFFFFFFFFFFFFFFFF {
		return 0, false
	}
	return t + 1, true
}
