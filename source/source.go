// Package source defines source buffer, position, and cursor types used by the engine.
package source

import (
	"bytes"
	"unicode/utf8"
)

// Source is a named immutable byte buffer with precomputed line index.
// It holds no mutable state, so one Source may back concurrent parses.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

// New creates new Source. content is not copied and must not be modified afterwards.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// LineCol converts byte offset to 1-based line and column numbers.
// Column counts runes, not bytes.
func (s *Source) LineCol(pos int) (line, col int) {
	var lineIndex int
	if pos < 0 {
		pos = 0
		lineIndex = 0
	} else if pos >= len(s.content) {
		pos = len(s.content)
		lineIndex = len(s.lineStarts) - 1
	} else {
		lineIndex = s.findLineIndex(pos)
	}

	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos converts 1-based line and column numbers to byte offset, clamping to buffer bounds.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1] + col - 1
	if res > l {
		return l
	}
	return res
}

// findLineIndex returns the index of the last line starting at or before pos.
func (s *Source) findLineIndex(pos int) int {
	leftIndex := 0
	rightIndex := len(s.lineStarts) - 1
	for leftIndex < rightIndex {
		index := (leftIndex + rightIndex + 1) >> 1
		if s.lineStarts[index] <= pos {
			leftIndex = index
		} else {
			rightIndex = index - 1
		}
	}
	return leftIndex
}

// Pos is a resolved position in a source: byte offset plus line and column.
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos creates Pos for given byte offset.
func NewPos(src *Source, pos int) Pos {
	p := Pos{src: src, pos: pos}
	if src != nil {
		p.line, p.col = src.LineCol(pos)
	}
	return p
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name()
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
