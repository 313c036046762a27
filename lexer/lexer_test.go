package lexer

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovsov/peg"
	"github.com/ovsov/peg/source"
)

var testLexer = New(
	regexp.MustCompile(`^(?:\s+|#[^\n]*|([a-z_][a-z_0-9]*)|([0-9]+)|([(){}=;])|(["'].{0,5}))`),
	[]TokenType{
		{1, "name"},
		{2, "number"},
		{3, "op"},
		{ErrorTokenType, ""},
	},
)

func fetchAll(t *testing.T, text string) []*Token {
	c := source.NewCursor(source.New("test", []byte(text)))
	result := make([]*Token, 0)
	for {
		tok, next, e := testLexer.Next(c)
		require.NoError(t, e)
		if tok.IsEof() {
			return result
		}

		result = append(result, tok)
		c = next
	}
}

func TestTokenSequence(t *testing.T) {
	tokens := fetchAll(t, "foo = 42; # comment\nbar")
	require.Len(t, tokens, 5)

	expected := []struct {
		typeName, text string
		line, col      int
	}{
		{"name", "foo", 1, 1},
		{"op", "=", 1, 5},
		{"number", "42", 1, 7},
		{"op", ";", 1, 9},
		{"name", "bar", 2, 1},
	}
	for i, exp := range expected {
		assert.Equal(t, exp.typeName, tokens[i].TypeName(), "token #%d", i)
		assert.Equal(t, exp.text, tokens[i].Text(), "token #%d", i)
		assert.Equal(t, exp.line, tokens[i].Line(), "token #%d", i)
		assert.Equal(t, exp.col, tokens[i].Col(), "token #%d", i)
	}
}

func TestEofToken(t *testing.T) {
	c := source.NewCursor(source.New("test", []byte("  ")))
	tok, _, e := testLexer.Next(c)
	require.NoError(t, e)
	assert.True(t, tok.IsEof())
}

func TestWrongChar(t *testing.T) {
	c := source.NewCursor(source.New("test", []byte("foo @bar")))
	tok, next, e := testLexer.Next(c)
	require.NoError(t, e)
	assert.Equal(t, "foo", tok.Text())

	_, _, e = testLexer.Next(next)
	require.Error(t, e)
	pe, ok := e.(*peg.Error)
	require.True(t, ok)
	assert.Equal(t, WrongCharError, pe.Code)
	assert.Equal(t, 1, pe.Line)
	assert.Equal(t, 5, pe.Col)
}

func TestBadToken(t *testing.T) {
	_, _, e := testLexer.Next(source.NewCursor(source.New("test", []byte(`"broken`))))
	require.Error(t, e)
	pe, ok := e.(*peg.Error)
	require.True(t, ok)
	assert.Equal(t, BadTokenError, pe.Code)
}

func TestMatchIdent(t *testing.T) {
	samples := []struct {
		text, ident string
		ok          bool
	}{
		{"foo bar", "foo", true},
		{"_x1y2", "_x1y2", true},
		{"переменная+1", "переменная", true},
		{"1abc", "", false},
		{"", "", false},
		{"+x", "", false},
	}

	for _, s := range samples {
		ident, next, ok := MatchIdent(source.NewCursor(source.New("", []byte(s.text))))
		assert.Equal(t, s.ok, ok, "sample %q", s.text)
		assert.Equal(t, s.ident, ident, "sample %q", s.text)
		if ok {
			assert.Equal(t, len(s.ident), next.Pos(), "sample %q", s.text)
		}
	}
}
