package pegdef

import (
	"strings"

	"github.com/ovsov/peg"
	"github.com/ovsov/peg/lexer"
)

// Error codes used by pegdef:
const (
	UnexpectedEofError = peg.GrammarErrors + iota
	UnexpectedTokenError
	UnknownDirectiveError
	MisplacedDirectiveError
	RuleDefinedError
	UnboundRuleError
	UnusedRuleError
	NoRulesError
	AutobindTargetError
	DuplicateBindingError
	BraceInLiteralError
	EmptyClassError
	ClassRangeError
	UnterminatedCodeError
	ExternNameError
)

func eofError(token *lexer.Token) *peg.Error {
	return peg.FormatErrorPos(token, UnexpectedEofError, "unexpected EoF")
}

func unexpectedTokenError(token *lexer.Token) *peg.Error {
	return peg.FormatErrorPos(token, UnexpectedTokenError, "unexpected %s token %q", token.TypeName(), token.Text())
}

func unknownDirectiveError(token *lexer.Token) *peg.Error {
	return peg.FormatErrorPos(token, UnknownDirectiveError, "unknown directive %s", token.Text())
}

func misplacedDirectiveError(token *lexer.Token) *peg.Error {
	return peg.FormatErrorPos(token, MisplacedDirectiveError, "%s directive must precede rule definitions", token.Text())
}

func defRuleError(token *lexer.Token) *peg.Error {
	return peg.FormatErrorPos(token, RuleDefinedError, "rule %q already defined", token.Text())
}

func unboundRuleError(names []string) *peg.Error {
	return peg.FormatError(UnboundRuleError, "undefined rules: "+strings.Join(names, ", "))
}

func unusedRuleError(names []string) *peg.Error {
	return peg.FormatError(UnusedRuleError, "unused rules: "+strings.Join(names, ", "))
}

func noRulesError() *peg.Error {
	return peg.FormatError(NoRulesError, "grammar contains no rules")
}

func autobindTargetError(token *lexer.Token) *peg.Error {
	return peg.FormatErrorPos(token, AutobindTargetError, "autobind target must be an identifier, got %s token", token.TypeName())
}

func duplicateBindingError(token *lexer.Token, name string) *peg.Error {
	return peg.FormatErrorPos(token, DuplicateBindingError, "name %q already bound in this sequence", name)
}

func braceInLiteralError(token *lexer.Token) *peg.Error {
	return peg.FormatErrorPos(token, BraceInLiteralError, "unescaped curly brace in literal %s, use \\{ or \\}", token.Text())
}

func emptyClassError(token *lexer.Token) *peg.Error {
	return peg.FormatErrorPos(token, EmptyClassError, "empty character class")
}

func classRangeError(token *lexer.Token, lo, hi rune) *peg.Error {
	return peg.FormatErrorPos(token, ClassRangeError, "invalid class range %c-%c", lo, hi)
}

func unterminatedCodeError(pos peg.SourcePos) *peg.Error {
	return peg.FormatErrorPos(pos, UnterminatedCodeError, "unterminated embedded expression")
}

func externNameError(token *lexer.Token) *peg.Error {
	return peg.FormatErrorPos(token, ExternNameError, "name %q is declared %%extern and defined as a rule", token.Text())
}
