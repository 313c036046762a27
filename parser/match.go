package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/ovsov/peg/grammar"
	"github.com/ovsov/peg/source"
)

// matchLiteral matches lit at c and returns the consumed text. When escapes
// is set, lit is the raw grammar text: backslash escapes are interpreted, and
// with braceSensitive the match fails before consuming an unescaped curly
// brace. Dynamic literals are matched verbatim, without escape processing.
// Failures point at the first mismatching character.
func (ctx *parseCtx) matchLiteral(c source.Cursor, lit string, caseless, braceSensitive, escapes bool) result {
	cur := c
	i := 0
	for i < len(lit) {
		lr, size := utf8.DecodeRuneInString(lit[i:])
		i += size
		escaped := false
		if escapes && lr == '\\' && i < len(lit) {
			nr, nsize := utf8.DecodeRuneInString(lit[i:])
			i += nsize
			lr = unescapeRune(nr)
			escaped = true
		}

		if braceSensitive && !escaped && (lr == '{' || lr == '}') {
			return ctx.fail(cur.Pos())
		}

		r, next, ok := cur.AdvanceRune()
		if !ok || !runesEqual(r, lr, caseless) {
			return ctx.fail(cur.Pos())
		}
		cur = next
	}
	return result{val: cur.Slice(c), next: cur, ok: true}
}

// matchClass matches a single character against the class ranges.
func (ctx *parseCtx) matchClass(c source.Cursor, ranges []grammar.ClassRange) result {
	r, next, ok := c.AdvanceRune()
	if !ok {
		return ctx.fail(c.Pos())
	}
	for _, rg := range ranges {
		if r >= rg.Lo && r <= rg.Hi {
			return result{val: string(r), next: next, ok: true}
		}
	}
	return ctx.fail(c.Pos())
}

// matchAny matches any single character, failing only at end of input.
func (ctx *parseCtx) matchAny(c source.Cursor) result {
	r, next, ok := c.AdvanceRune()
	if !ok {
		return ctx.fail(c.Pos())
	}
	return result{val: string(r), next: next, ok: true}
}

func runesEqual(got, expected rune, caseless bool) bool {
	if got == expected {
		return true
	}
	return caseless && unicode.ToLower(got) == unicode.ToLower(expected)
}

func unescapeRune(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		return r
	}
}
