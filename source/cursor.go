package source

import (
	"unicode/utf8"
)

// Cursor is an immutable view into a Source: the buffer plus a byte offset.
// Matchers never mutate a Cursor, they return a new one on success.
type Cursor struct {
	src *Source
	pos int
}

// NewCursor creates Cursor at the beginning of s.
func NewCursor(s *Source) Cursor {
	return Cursor{src: s}
}

func (c Cursor) Source() *Source {
	return c.src
}

// Pos returns the byte offset of the cursor.
func (c Cursor) Pos() int {
	return c.pos
}

// Eof reports whether the cursor is at or past the end of the buffer.
func (c Cursor) Eof() bool {
	return c.src == nil || c.pos >= c.src.Len()
}

// Rest returns the unconsumed tail of the buffer.
func (c Cursor) Rest() []byte {
	if c.Eof() {
		return nil
	}
	return c.src.content[c.pos:]
}

// Rune decodes the rune at the cursor. size is 0 at end of input.
func (c Cursor) Rune() (r rune, size int) {
	if c.Eof() {
		return 0, 0
	}
	return utf8.DecodeRune(c.src.content[c.pos:])
}

// Advance returns a cursor moved n bytes forward, clamped to the buffer end.
func (c Cursor) Advance(n int) Cursor {
	if c.src == nil || n <= 0 {
		return c
	}
	pos := c.pos + n
	if pos > c.src.Len() {
		pos = c.src.Len()
	}
	return Cursor{c.src, pos}
}

// AdvanceRune returns the rune at the cursor and a cursor past it.
// ok is false at end of input, in which case the cursor is returned unchanged.
func (c Cursor) AdvanceRune() (r rune, next Cursor, ok bool) {
	r, size := c.Rune()
	if size == 0 {
		return 0, c, false
	}
	return r, c.Advance(size), true
}

// Slice returns the text between from and c. from must be an earlier cursor
// into the same source.
func (c Cursor) Slice(from Cursor) string {
	if c.src == nil || from.pos >= c.pos {
		return ""
	}
	return string(c.src.content[from.pos:c.pos])
}

// SourcePos resolves the cursor to a position with line and column.
func (c Cursor) SourcePos() Pos {
	return NewPos(c.src, c.pos)
}
