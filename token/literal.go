package token

import "cmp"

// Literal extends Alphabet with the conversions the pattern parser needs to
// turn a DSL literal (a quoted string's rune, a byte-string's byte, or a bare
// integer) into a concrete token value T. Every alphabet in this package
// implements it; alphabets for which a given literal form makes no sense
// report ok=false rather than erroring, leaving the caller (the parser) to
// produce a contextual error naming the offending literal and the alphabet.
type Literal[T cmp.Ordered] interface {
	Alphabet[T]

	// FromChar converts a rune from a string literal's character sequence.
	FromChar(r rune) (T, bool)
	// FromByte converts a byte from a byte-string literal's byte sequence.
	FromByte(b byte) (T, bool)
	// FromInt converts a bare integer literal.
	FromInt(v int64) (T, bool)
}

// FromChar implements Literal.
func (Byte) FromChar(r rune) (byte, bool) {
	if r < 0 || r > 0xFF {
		return 0, false
	}
	return byte(r), true
}

// FromByte implements Literal.
func (Byte) FromByte(b byte) (byte, bool) { return b, true }

// FromInt implements Literal.
func (Byte) FromInt(v int64) (byte, bool) {
	if v < 0 || v > 0xFF {
		return 0, false
	}
	return byte(v), true
}

// FromChar implements Literal.
func (Rune) FromChar(r rune) (rune, bool) { return r, true }

// FromByte implements Literal.
func (Rune) FromByte(b byte) (rune, bool) { return 0, false }

// FromInt implements Literal.
func (Rune) FromInt(v int64) (rune, bool) {
	if v < 0 || v > 0x10FFFF {
		return 0, false
	}
	return rune(v), true
}

// FromChar implements Literal.
func (Uint16) FromChar(r rune) (uint16, bool) { return 0, false }

// FromByte implements Literal.
func (Uint16) FromByte(b byte) (uint16, bool) { return uint16(b), true }

// FromInt implements Literal.
func (Uint16) FromInt(v int64) (uint16, bool) {
	if v < 0 || v > 0xFFFF {
		return 0, false
	}
	return uint16(v), true
}

// FromChar implements Literal.
func (Uint32) FromChar(r rune) (uint32, bool) { return 0, false }

// FromByte implements Literal.
func (Uint32) FromByte(b byte) (uint32, bool) { return uint32(b), true }

// FromInt implements Literal.
func (Uint32) FromInt(v int64) (uint32, bool) {
	if v < 0 || v > 0xFFFFFFFF {
		return 0, false
	}
	return uint32(v), true
}

// FromChar implements Literal.
func (Uint64) FromChar(r rune) (uint64, bool) { return 0, false }

// FromByte implements Literal.
func (Uint64) FromByte(b byte) (uint64, bool) { return uint64(b), true }

// FromInt implements Literal.
func (Uint64) FromInt(v int64) (uint64, bool) {
	if v < 0 {
		return 0, false
	}
	return uint64(v), true
}
