package pattern

import (
	"cmp"
	"fmt"
)

// Parser parses pattern DSL source into a Pattern[T], given a Literal[T]
// describing how to convert the DSL's literal forms into the token
// alphabet T.
type Parser[T cmp.Ordered] struct {
	lex   *lexer
	tok   token
	alpha literalConv[T]
}

// literalConv is the subset of token.Literal[T] the parser needs, named
// locally to avoid an import cycle back from token to pattern (there is
// none today, but pattern has no reason to depend on token's Alphabet
// surface beyond these three conversions).
type literalConv[T any] interface {
	FromChar(r rune) (T, bool)
	FromByte(b byte) (T, bool)
	FromInt(v int64) (T, bool)
}

// Parse parses src as a pattern over alphabet T.
func Parse[T cmp.Ordered](src string, alpha literalConv[T]) (Pattern[T], error) {
	p := &Parser[T]{lex: newLexer(src), alpha: alpha}
	if err := p.advance(); err != nil {
		return Pattern[T]{}, err
	}
	pat, err := p.parseOr()
	if err != nil {
		return Pattern[T]{}, err
	}
	if p.tok.kind != tokEOF {
		return Pattern[T]{}, newErr(p.tok.pos, "unexpected trailing input")
	}
	return pat, nil
}

func (p *Parser[T]) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *Parser[T]) expect(k tokenKind) error {
	if p.tok.kind != k {
		return newErr(p.tok.pos, "unexpected token")
	}
	return p.advance()
}

// parseOr parses `pattern '|' pattern`, the lowest-precedence pattern form.
func (p *Parser[T]) parseOr() (Pattern[T], error) {
	lhs, err := p.parseJoin()
	if err != nil {
		return Pattern[T]{}, err
	}
	for p.tok.kind == tokPipe {
		if err := p.advance(); err != nil {
			return Pattern[T]{}, err
		}
		rhs, err := p.parseJoin()
		if err != nil {
			return Pattern[T]{}, err
		}
		lhs = OrOf(lhs, rhs)
	}
	return lhs, nil
}

// parseJoin parses `pattern '+' pattern`, binding tighter than `|`.
func (p *Parser[T]) parseJoin() (Pattern[T], error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return Pattern[T]{}, err
	}
	for p.tok.kind == tokPlus {
		if err := p.advance(); err != nil {
			return Pattern[T]{}, err
		}
		rhs, err := p.parsePrimary()
		if err != nil {
			return Pattern[T]{}, err
		}
		lhs = JoinOf(lhs, rhs)
	}
	return lhs, nil
}

func (p *Parser[T]) parsePrimary() (Pattern[T], error) {
	switch p.tok.kind {
	case tokLParen:
		if err := p.advance(); err != nil {
			return Pattern[T]{}, err
		}
		pat, err := p.parseOr()
		if err != nil {
			return Pattern[T]{}, err
		}
		if err := p.expect(tokRParen); err != nil {
			return Pattern[T]{}, err
		}
		return pat, nil

	case tokLBracket:
		return p.parseBracket()

	case tokString:
		return p.parseStringLiteral()

	case tokByteString:
		return p.parseByteStringLiteral()

	case tokChar, tokByte, tokInt:
		return p.parseLiteralOrRange()

	case tokDotDot, tokDotDotEq:
		return p.parseRangeFrom(TokenBound[T]{Kind: Unbounded})

	case tokIdent:
		name := p.tok.text
		pos := p.tok.pos
		if err := p.advance(); err != nil {
			return Pattern[T]{}, err
		}
		switch name {
		case "repeat":
			return p.parseRepeatCall(pos)
		case "collect":
			return p.parseCollectCall(pos)
		default:
			return ClassRef[T](name), nil
		}

	default:
		return Pattern[T]{}, newErr(p.tok.pos, "unexpected token in pattern")
	}
}

// parseLiteralOrRange parses a single char/byte/int literal, then checks
// whether it is actually the low end of a range.
func (p *Parser[T]) parseLiteralOrRange() (Pattern[T], error) {
	v, err := p.literalToken()
	if err != nil {
		return Pattern[T]{}, err
	}
	if p.tok.kind == tokDotDot || p.tok.kind == tokDotDotEq {
		return p.parseRangeFrom(TokenBound[T]{Kind: Included, Value: v})
	}
	return Atom(v), nil
}

// parseRangeFrom parses the remainder of a range expression given its
// already-parsed lower bound (or Unbounded if the range starts with `..`).
func (p *Parser[T]) parseRangeFrom(lo TokenBound[T]) (Pattern[T], error) {
	pos := p.tok.pos
	closed := p.tok.kind == tokDotDotEq
	if err := p.advance(); err != nil {
		return Pattern[T]{}, err
	}

	hi := TokenBound[T]{Kind: Unbounded}
	if p.atRangeEnd() {
		v, err := p.literalToken()
		if err != nil {
			return Pattern[T]{}, err
		}
		if closed {
			hi = TokenBound[T]{Kind: Included, Value: v}
		} else {
			hi = TokenBound[T]{Kind: Excluded, Value: v}
		}
	}

	// The parser only ever produces Included or Unbounded lower bounds, so
	// emptiness reduces to comparing the bound values.
	if lo.Kind == Included {
		if (hi.Kind == Included && hi.Value < lo.Value) ||
			(hi.Kind == Excluded && hi.Value <= lo.Value) {
			return Pattern[T]{}, newErr(pos, "token range must not be empty")
		}
	}

	return AtomRange(lo, hi), nil
}

func (p *Parser[T]) atRangeEnd() bool {
	switch p.tok.kind {
	case tokChar, tokByte, tokInt:
		return true
	default:
		return false
	}
}

// literalToken converts the current char/byte/int token to T and advances.
func (p *Parser[T]) literalToken() (T, error) {
	var zero T
	pos := p.tok.pos
	switch p.tok.kind {
	case tokChar:
		v, ok := p.alpha.FromChar(rune(p.tok.ival))
		if !ok {
			return zero, newErr(pos, "char literal is not representable in this alphabet")
		}
		if err := p.advance(); err != nil {
			return zero, err
		}
		return v, nil
	case tokByte:
		v, ok := p.alpha.FromByte(byte(p.tok.ival))
		if !ok {
			return zero, newErr(pos, "byte literal is not representable in this alphabet")
		}
		if err := p.advance(); err != nil {
			return zero, err
		}
		return v, nil
	case tokInt:
		v, ok := p.alpha.FromInt(p.tok.ival)
		if !ok {
			return zero, newErr(pos, "integer literal is not representable in this alphabet")
		}
		if err := p.advance(); err != nil {
			return zero, err
		}
		return v, nil
	default:
		return zero, newErr(pos, "expected a char, byte, or integer literal")
	}
}

func (p *Parser[T]) parseStringLiteral() (Pattern[T], error) {
	pos := p.tok.pos
	s := p.tok.sval
	if err := p.advance(); err != nil {
		return Pattern[T]{}, err
	}
	if len(s) == 0 {
		return Pattern[T]{}, newErr(pos, "sequence pattern must not be empty")
	}
	atoms := make([]Pattern[T], 0, len(s))
	for _, r := range s {
		v, ok := p.alpha.FromChar(r)
		if !ok {
			return Pattern[T]{}, newErr(pos, "string literal character %q is not representable in this alphabet", r)
		}
		atoms = append(atoms, Atom(v))
	}
	return SeqOf(atoms), nil
}

func (p *Parser[T]) parseByteStringLiteral() (Pattern[T], error) {
	pos := p.tok.pos
	s := p.tok.sval
	if err := p.advance(); err != nil {
		return Pattern[T]{}, err
	}
	if len(s) == 0 {
		return Pattern[T]{}, newErr(pos, "sequence pattern must not be empty")
	}
	atoms := make([]Pattern[T], 0, len(s))
	for i := 0; i < len(s); i++ {
		v, ok := p.alpha.FromByte(s[i])
		if !ok {
			return Pattern[T]{}, newErr(pos, "byte-string literal byte 0x%02x is not representable in this alphabet", s[i])
		}
		atoms = append(atoms, Atom(v))
	}
	return SeqOf(atoms), nil
}

// parseBracket disambiguates `[pattern ; range]` (repetition) from
// `[lit, lit, ...]` (array-of-literals sequence).
func (p *Parser[T]) parseBracket() (Pattern[T], error) {
	openPos := p.tok.pos
	if err := p.advance(); err != nil {
		return Pattern[T]{}, err
	}

	first, err := p.parseOr()
	if err != nil {
		return Pattern[T]{}, err
	}

	switch p.tok.kind {
	case tokSemi:
		if err := p.advance(); err != nil {
			return Pattern[T]{}, err
		}
		lo, hi, err := p.parseCountRange()
		if err != nil {
			return Pattern[T]{}, err
		}
		if err := p.expect(tokRBracket); err != nil {
			return Pattern[T]{}, err
		}
		if IsRangeEmpty(lo, hi) {
			return Pattern[T]{}, newErr(openPos, "repetition range must not be empty")
		}
		return RepeatOf(first, lo, hi), nil

	case tokComma, tokRBracket:
		atoms := []Pattern[T]{first}
		if first.Kind != KindAtom {
			return Pattern[T]{}, newErr(openPos, "array pattern element must be an atom literal")
		}
		for p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return Pattern[T]{}, err
			}
			if p.tok.kind == tokRBracket {
				break
			}
			elem, err := p.parseOr()
			if err != nil {
				return Pattern[T]{}, err
			}
			if elem.Kind != KindAtom {
				return Pattern[T]{}, newErr(openPos, "array pattern element must be an atom literal")
			}
			atoms = append(atoms, elem)
		}
		if err := p.expect(tokRBracket); err != nil {
			return Pattern[T]{}, err
		}
		return SeqOf(atoms), nil

	default:
		return Pattern[T]{}, newErr(p.tok.pos, "expected `;` or `,` in bracketed pattern")
	}
}

// parseCountRange parses the `range` production used for a repetition
// bound: `int-expr? '..' int-expr? | int-expr? '..=' int-expr?`.
func (p *Parser[T]) parseCountRange() (Bound, Bound, error) {
	lo := Bound{Kind: Unbounded}
	if p.tok.kind != tokDotDot && p.tok.kind != tokDotDotEq {
		v, err := p.parseExpr()
		if err != nil {
			return Bound{}, Bound{}, err
		}
		lo = Bound{Kind: Included, Value: int(v)}
	}

	if p.tok.kind != tokDotDot && p.tok.kind != tokDotDotEq {
		return Bound{}, Bound{}, newErr(p.tok.pos, "expected `..` or `..=` in range")
	}
	closed := p.tok.kind == tokDotDotEq
	if err := p.advance(); err != nil {
		return Bound{}, Bound{}, err
	}

	hi := Bound{Kind: Unbounded}
	if p.canStartExpr() {
		v, err := p.parseExpr()
		if err != nil {
			return Bound{}, Bound{}, err
		}
		if closed {
			hi = Bound{Kind: Included, Value: int(v)}
		} else {
			hi = Bound{Kind: Excluded, Value: int(v)}
		}
	}

	return lo, hi, nil
}

func (p *Parser[T]) canStartExpr() bool {
	switch p.tok.kind {
	case tokInt, tokChar, tokByte, tokLParen:
		return true
	default:
		return false
	}
}

// parseRepeatCall parses `repeat(pattern)` or `repeat(pattern, range)`.
func (p *Parser[T]) parseRepeatCall(pos int) (Pattern[T], error) {
	if err := p.expect(tokLParen); err != nil {
		return Pattern[T]{}, err
	}
	body, err := p.parseOr()
	if err != nil {
		return Pattern[T]{}, err
	}

	lo := Bound{Kind: Unbounded}
	hi := Bound{Kind: Unbounded}
	if p.tok.kind == tokComma {
		if err := p.advance(); err != nil {
			return Pattern[T]{}, err
		}
		lo, hi, err = p.parseCountRange()
		if err != nil {
			return Pattern[T]{}, err
		}
	} else if p.tok.kind != tokRParen {
		return Pattern[T]{}, newErr(p.tok.pos, "expected `,` or `)` in repeat(...)")
	}

	if err := p.expect(tokRParen); err != nil {
		return Pattern[T]{}, err
	}
	if IsRangeEmpty(lo, hi) {
		return Pattern[T]{}, newErr(pos, "repetition range must not be empty")
	}
	return RepeatOf(body, lo, hi), nil
}

// parseCollectCall parses `collect(field <- pattern)`.
func (p *Parser[T]) parseCollectCall(pos int) (Pattern[T], error) {
	if err := p.expect(tokLParen); err != nil {
		return Pattern[T]{}, err
	}

	var field string
	switch p.tok.kind {
	case tokIdent:
		field = p.tok.text
	case tokInt:
		field = fmt.Sprintf("%d", p.tok.ival)
	default:
		return Pattern[T]{}, newErr(p.tok.pos, "expected a field name or index in collect(...)")
	}
	if err := p.advance(); err != nil {
		return Pattern[T]{}, err
	}

	if err := p.expect(tokArrow); err != nil {
		return Pattern[T]{}, err
	}

	body, err := p.parseOr()
	if err != nil {
		return Pattern[T]{}, err
	}
	if err := p.expect(tokRParen); err != nil {
		return Pattern[T]{}, err
	}
	return CollectOf(field, body), nil
}
