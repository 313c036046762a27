package parser

import (
	"github.com/ovsov/peg/lexer"
	"github.com/ovsov/peg/source"
)

// Matcher is a pluggable external combinator: it inspects the input at c and,
// on success, returns a value and the cursor past the consumed text. A matcher
// must not report success with a cursor before c.
type Matcher func(c source.Cursor) (value any, next source.Cursor, ok bool)

// Spacing skips blanks (space, tab, carriage return, line feed). It never
// fails; the value is the skipped text.
func Spacing(c source.Cursor) (any, source.Cursor, bool) {
	start := c
	for {
		r, next, ok := c.AdvanceRune()
		if !ok || (r != ' ' && r != '\t' && r != '\r' && r != '\n') {
			return c.Slice(start), c, true
		}
		c = next
	}
}

// Identifier matches a host-language identifier and returns its text.
func Identifier(c source.Cursor) (any, source.Cursor, bool) {
	ident, next, ok := lexer.MatchIdent(c)
	if !ok {
		return nil, c, false
	}
	return ident, next, true
}

// Position consumes nothing and returns the current position as a map with
// offset, line, and col entries, ready for use in actions.
func Position(c source.Cursor) (any, source.Cursor, bool) {
	pos := c.SourcePos()
	return map[string]any{
		"offset": pos.Pos(),
		"line":   pos.Line(),
		"col":    pos.Col(),
	}, c, true
}

// Builtins maps the external names every grammar may import without supplying
// its own matcher.
var Builtins = map[string]Matcher{
	"spacing":  Spacing,
	"ident":    Identifier,
	"position": Position,
}
