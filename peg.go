/*
Package peg is a Parsing Expression Grammar engine.

A grammar is described in a small textual DSL (rule definitions combining
sequencing, ordered choice, lookaheads, quantifiers, literals, character
classes, and embedded CEL actions), compiled once into an immutable rule
table, and then run as a recursive-descent, backtracking parser producing
position-decorated values.

Consists of subpackages:
  - cmd/pegen: console utility converting grammar description to a Go source file, JSON, or YAML;
  - grammar: defines structures describing compiled rules (items, sequences, choices);
  - pegdef: converts grammar description to grammar definition;
  - lexer: regexp-driven tokenizer used by pegdef and by built-in external matchers;
  - parser: the parsing engine itself;
  - source: defines source buffer, position, and cursor types;
  - ast: decorated values and default syntax tree nodes.

Typical usage is:

1. Describe grammar in the PEG DSL. Semantic actions are CEL expressions over
names bound inside each sequence, so the same description works for any
consumer of the produced tree.

2. Compile the description with pegdef.ParseString, or ahead of time with the
pegen utility.

3. Create a parser with parser.New, supplying external matchers (spacing,
position, identifier) if the grammar imports any.

4. Feed it sources; each call returns a position-decorated result or an error
pointing at the furthest offset the parse reached.
*/
package peg

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors = 1   // used by pegdef and by parser during grammar validation
	LexicalErrors = 101 // used by lexer
	SyntaxErrors  = 201 // used by parser when input does not match
	ParserErrors  = 301 // used by parser for invocation and hook errors
)

// Error is the error type used by peg subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
