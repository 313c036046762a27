// Package lexer defines a regexp-driven tokenizer over a source cursor.
package lexer

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/ovsov/peg"
	"github.com/ovsov/peg/source"
)

const (
	// ErrorTokenType is the type for fake tokens capturing broken lexemes (e.g. incorrect string literals).
	// The purpose of these tokens is to generate more informative error messages.
	// Lexer will never return a token of this type, an error with message containing token text will be returned instead.
	ErrorTokenType = LowestTokenType - 1

	// ErrorTokenName is the type name for ErrorTokenType.
	ErrorTokenName = "-error-"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current source position.
	WrongCharError = peg.LexicalErrors + iota

	// BadTokenError indicates that lexer has fetched a token of ErrorTokenType.
	BadTokenError
)

// TokenType describes token type for specific capturing group of regular expression.
type TokenType struct {
	// Type contains token type, may be any value. ErrorTokenType is treated specially.
	Type int

	// TypeName contains token type name, may be any value.
	TypeName string
}

// Lexer fetches tokens from a source cursor using regexp.Regexp.
// Lexer itself is immutable and safe for concurrent use.
// Each token type that may be returned by lexer maps to its own regexp capturing group index.
// A match containing no captured groups is treated as insignificant lexeme (e.g. whitespace or comment),
// in this case lexer tries to fetch a token again at new position.
// Every byte of source file must belong to some lexeme.
type Lexer struct {
	types []TokenType
	re    *regexp.Regexp
}

// New creates new Lexer.
// Each n-th element of types describes token type for (n+1)-th regexp capturing group.
// A group that has no description is treated as ErrorTokenType.
func New(re *regexp.Regexp, types []TokenType) *Lexer {
	ts := make([]TokenType, len(types))
	copy(ts, types)
	return &Lexer{types: ts, re: re}
}

func wrongCharError(c source.Cursor) *peg.Error {
	r, _ := c.Rune()
	msg := fmt.Sprintf("wrong char \"%c\" (u+%x)", r, r)
	return peg.FormatErrorPos(c.SourcePos(), WrongCharError, msg)
}

func wrongTokenError(t *Token) *peg.Error {
	return peg.FormatErrorPos(t, BadTokenError, "bad token %q", t.Text())
}

func (l *Lexer) matchToken(c source.Cursor) (*Token, int, error) {
	content := c.Rest()
	match := l.re.FindSubmatchIndex(content)
	if len(match) == 0 || match[0] != 0 || match[1] <= match[0] {
		return nil, 0, wrongCharError(c)
	}

	for i := 2; i < len(match); i += 2 {
		if match[i] < 0 || match[i+1] < 0 {
			continue
		}

		pos := source.NewPos(c.Source(), c.Pos()+match[i])
		tokenType := ErrorTokenType
		typeName := ErrorTokenName
		if len(l.types) >= (i >> 1) {
			tokenType = l.types[(i>>1)-1].Type
			typeName = l.types[(i>>1)-1].TypeName
		}
		token := NewToken(tokenType, typeName, string(content[match[i]:match[i+1]]), pos)
		if tokenType == ErrorTokenType {
			return nil, 0, wrongTokenError(token)
		}

		return token, match[1], nil
	}

	return nil, match[1], nil
}

// Next fetches token starting at cursor position and returns it with the cursor past it.
// Returns nil token and peg.Error and leaves the cursor unchanged on lexical error.
// Returns EoF token when the cursor is at the end of its source.
func (l *Lexer) Next(c source.Cursor) (*Token, source.Cursor, error) {
	for {
		if c.Eof() {
			return EofToken(c.Source()), c, nil
		}

		t, advance, e := l.matchToken(c)
		if e != nil {
			return nil, c, e
		}

		c = c.Advance(advance)
		if t != nil {
			return t, c, nil
		}
	}
}

// MatchIdent matches a host-language identifier (a letter or underscore followed
// by letters, digits, or underscores) at the cursor and returns its text.
func MatchIdent(c source.Cursor) (string, source.Cursor, bool) {
	start := c
	r, next, ok := c.AdvanceRune()
	if !ok || (r != '_' && !isLetter(r)) {
		return "", start, false
	}

	c = next
	for {
		r, next, ok = c.AdvanceRune()
		if !ok || (r != '_' && !isLetter(r) && !isDigit(r)) {
			break
		}
		c = next
	}

	return c.Slice(start), c, true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= utf8.RuneSelf && unicode.IsLetter(r))
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
