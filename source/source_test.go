package source

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{7, 4, 2},
			{8, 4, 3},
			{12, 4, 7},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
		},
	}

	for text, results := range samples {
		source := New("", []byte(text))
		for _, res := range results {
			l, c := source.LineCol(res.pos)
			if l != res.line || c != res.col {
				t.Errorf("sample %q: expected %v, got line: %d, col: %d", text, res, l, c)
			}
		}
	}
}

func TestSourcePos(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{0, 1, 2},
			{0, 2, 1},
		},
		"hello\nworld\n": {
			{0, 1, 1},
			{1, 1, 2},
			{6, 2, 1},
			{7, 2, 2},
			{12, 2, 10},
			{12, 3, 1},
			{12, 4, 1},
		},
	}

	for text, results := range samples {
		source := New("", []byte(text))
		for _, res := range results {
			p := source.Pos(res.line, res.col)
			if p != res.pos {
				t.Errorf("sample %q: expected %v, got pos: %d", text, res, p)
			}
		}
	}
}

func TestSourceLineColConcurrent(t *testing.T) {
	source := New("", []byte("0\n2\n4\n6789abcde\ng\ni\n"))
	expected := make([]result, source.Len())
	for pos := range expected {
		expected[pos].pos = pos
		expected[pos].line, expected[pos].col = source.LineCol(pos)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, res := range expected {
				l, c := source.LineCol(res.pos)
				if l != res.line || c != res.col {
					t.Errorf("pos %d: expected line %d col %d, got %d:%d", res.pos, res.line, res.col, l, c)
				}
			}
		}()
	}
	wg.Wait()
}

func TestCursorAdvance(t *testing.T) {
	c := NewCursor(New("", []byte("abc")))
	assert.Equal(t, 0, c.Pos())
	assert.False(t, c.Eof())

	r, next, ok := c.AdvanceRune()
	assert.True(t, ok)
	assert.Equal(t, 'a', r)
	assert.Equal(t, 1, next.Pos())
	// original cursor untouched
	assert.Equal(t, 0, c.Pos())

	next = next.Advance(5)
	assert.Equal(t, 3, next.Pos())
	assert.True(t, next.Eof())

	_, _, ok = next.AdvanceRune()
	assert.False(t, ok)
}

func TestCursorRuneMultibyte(t *testing.T) {
	c := NewCursor(New("", []byte("δx")))
	r, size := c.Rune()
	assert.Equal(t, 'δ', r)
	assert.Equal(t, 2, size)

	r, next, ok := c.AdvanceRune()
	assert.True(t, ok)
	assert.Equal(t, 'δ', r)
	assert.Equal(t, 2, next.Pos())

	r, _, _ = next.AdvanceRune()
	assert.Equal(t, 'x', r)
}

func TestCursorSlice(t *testing.T) {
	start := NewCursor(New("", []byte("hello")))
	end := start.Advance(4)
	assert.Equal(t, "hell", end.Slice(start))
	assert.Equal(t, "", start.Slice(end))
	assert.Equal(t, "", start.Slice(start))
}

func TestCursorSourcePos(t *testing.T) {
	c := NewCursor(New("f", []byte("a\nbc")))
	p := c.Advance(3).SourcePos()
	assert.Equal(t, 3, p.Pos())
	assert.Equal(t, 2, p.Line())
	assert.Equal(t, 2, p.Col())
	assert.Equal(t, "f", p.SourceName())
}
