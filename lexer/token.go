package lexer

import (
	"github.com/ovsov/peg/source"
)

// Token is a lexeme fetched from a source.
type Token struct {
	tokenType int
	typeName  string
	text      string
	pos       source.Pos
}

// NewToken creates new Token at given position.
func NewToken(tokenType int, typeName, text string, pos source.Pos) *Token {
	return &Token{tokenType, typeName, text, pos}
}

func (t *Token) Type() int {
	return t.tokenType
}

func (t *Token) TypeName() string {
	return t.typeName
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) Pos() source.Pos {
	return t.pos
}

func (t *Token) Source() *source.Source {
	return t.pos.Source()
}

func (t *Token) SourceName() string {
	return t.pos.SourceName()
}

func (t *Token) Line() int {
	return t.pos.Line()
}

func (t *Token) Col() int {
	return t.pos.Col()
}

const (
	EofTokenType    = -2
	LowestTokenType = -2
	EofTokenName    = "-end-of-file-"
)

// EofToken creates a token marking the end of a source.
func EofToken(s *source.Source) *Token {
	pos := source.Pos{}
	if s != nil {
		pos = source.NewPos(s, s.Len())
	}
	return &Token{tokenType: EofTokenType, typeName: EofTokenName, pos: pos}
}

// IsEof reports whether t marks the end of input.
func (t *Token) IsEof() bool {
	return t.tokenType == EofTokenType
}
