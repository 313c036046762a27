package parser

import (
	"github.com/ovsov/peg"
	"github.com/ovsov/peg/source"
)

// Grammar validation error codes used by New.
// pegdef uses the lower codes of the same class.
const (
	UnknownExternalError = peg.GrammarErrors + 50 + iota
	UnboundRuleError
	ActionCompileError
	EmptyGrammarError
	BadRootError
	BadIndexError
	BindNamesError
)

// Syntax error codes reported when input does not match the grammar:
const (
	SyntaxError = peg.SyntaxErrors + iota
	IncompleteParseError
)

// Invocation and evaluation error codes:
const (
	UnknownRuleError = peg.ParserErrors + iota
	ActionEvalError
	DynamicLiteralTypeError
	CheckPointError
)

func unknownExternalError(name string) *peg.Error {
	return peg.FormatError(UnknownExternalError, "no matcher supplied for external %q", name)
}

func unboundRuleError(ruleName, called string) *peg.Error {
	return peg.FormatError(UnboundRuleError, "rule %q calls undefined rule %q", ruleName, called)
}

func actionCompileError(ruleName, expr string, cause error) *peg.Error {
	return peg.FormatError(ActionCompileError, "cannot compile expression {%s} of rule %q: %s", expr, ruleName, cause.Error())
}

func emptyGrammarError() *peg.Error {
	return peg.FormatError(EmptyGrammarError, "grammar contains no rules")
}

func badRootError(root, total int) *peg.Error {
	return peg.FormatError(BadRootError, "root rule index %d out of range, grammar has %d rules", root, total)
}

func badIndexError(name string, index, total int) *peg.Error {
	return peg.FormatError(BadIndexError, "index entry %q = %d does not match the rule table (%d rules)", name, index, total)
}

func bindNamesError(ruleName, itemName string) *peg.Error {
	return peg.FormatError(BindNamesError, "rule %q binds %q, which is missing from the sequence bind names", ruleName, itemName)
}

func syntaxError(s *source.Source, offset int) *peg.Error {
	return peg.FormatErrorPos(source.NewPos(s, offset), SyntaxError, "syntax error")
}

func incompleteParseError(s *source.Source, offset int) *peg.Error {
	return peg.FormatErrorPos(source.NewPos(s, offset), IncompleteParseError, "unexpected input after offset %d", offset)
}

func unknownRuleError(name string) *peg.Error {
	return peg.FormatError(UnknownRuleError, "unknown start rule %q", name)
}

func actionEvalError(ruleName string, pos source.Pos, cause error) *peg.Error {
	return peg.FormatErrorPos(pos, ActionEvalError, "action of rule %q failed: %s", ruleName, cause.Error())
}

func dynamicLiteralTypeError(ruleName string, pos source.Pos, value any) *peg.Error {
	return peg.FormatErrorPos(pos, DynamicLiteralTypeError, "dynamic literal of rule %q produced %T, expecting string", ruleName, value)
}

func checkPointError(ruleName string, pos source.Pos, cause error) *peg.Error {
	return peg.FormatErrorPos(pos, CheckPointError, "parse interrupted in rule %q: %s", ruleName, cause.Error())
}
