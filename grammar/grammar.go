// Package grammar defines the compiled representation of a parsing expression grammar.
// Structures here are pure data: they are produced by pegdef (or generated by pegen),
// validated and interpreted by parser, and can be serialized to JSON or YAML.
package grammar

// Prefix is a lookahead modifier applied to an item.
type Prefix int

const (
	// NoPrefix uses the primary result as is.
	NoPrefix Prefix = iota
	// AndPrefix succeeds without consuming input if the primary matches.
	AndPrefix
	// NotPrefix succeeds without consuming input if the primary does not match.
	NotPrefix
)

// Suffix is a quantifier applied to an item.
type Suffix int

const (
	// NoSuffix runs the primary exactly once.
	NoSuffix Suffix = iota
	// QuestionSuffix runs the primary at most once, never fails.
	QuestionSuffix
	// StarSuffix runs the primary zero or more times, never fails.
	StarSuffix
	// PlusSuffix runs the primary one or more times.
	PlusSuffix
)

// PrimaryKind discriminates the Primary variants.
type PrimaryKind int

const (
	// CallPrimary invokes another rule or an external matcher by name.
	CallPrimary PrimaryKind = iota
	// GroupPrimary matches a parenthesized subexpression.
	GroupPrimary
	// LiteralPrimary matches a fixed string.
	LiteralPrimary
	// DynamicLiteralPrimary matches a string computed by a CEL expression at parse time.
	DynamicLiteralPrimary
	// ClassPrimary matches one character against a set of ranges.
	ClassPrimary
	// AnyPrimary matches any single character.
	AnyPrimary
	// CodePrimary evaluates a CEL expression over current bindings, consuming nothing.
	CodePrimary
)

// ClassRange is one inclusive character range of a class; a single character
// is a range with Lo == Hi.
type ClassRange struct {
	Lo rune `json:"lo"`
	Hi rune `json:"hi,omitempty"`
}

// Primary is one matcher inside an item. Only the fields relevant for Kind are set.
type Primary struct {
	Kind PrimaryKind `json:"kind"`

	// Name is the called rule or external name for CallPrimary.
	Name string `json:"name,omitempty"`

	// Decorated marks a call whose binding keeps the span-decorated wrapper.
	Decorated bool `json:"decorated,omitempty"`

	// Group is the subexpression for GroupPrimary.
	Group Expression `json:"group,omitempty"`

	// Literal is the text for LiteralPrimary.
	Literal string `json:"literal,omitempty"`

	// Caseless makes LiteralPrimary match ignoring case.
	Caseless bool `json:"caseless,omitempty"`

	// BraceSensitive makes literal matching fail on an unescaped curly brace.
	BraceSensitive bool `json:"braceSensitive,omitempty"`

	// Expr is the CEL source for CodePrimary and DynamicLiteralPrimary.
	Expr string `json:"expr,omitempty"`

	// Ranges lists the class members for ClassPrimary.
	Ranges []ClassRange `json:"ranges,omitempty"`
}

// Item is one term of a sequence: an optional binding name, a lookahead
// prefix, a primary, and a quantifier suffix.
type Item struct {
	Name    string  `json:"name,omitempty"`
	Prefix  Prefix  `json:"prefix,omitempty"`
	Primary Primary `json:"primary"`
	Suffix  Suffix  `json:"suffix,omitempty"`
}

// Sequence is an ordered list of items that must all match contiguously,
// with an optional trailing CEL action over the bound names.
type Sequence struct {
	Items []Item `json:"items"`

	// Action is the CEL source of the trailing action, empty for none.
	Action string `json:"action,omitempty"`

	// BindNames lists the names bound by Items, in binding order.
	// It is fixed at grammar compile time.
	BindNames []string `json:"bindNames,omitempty"`
}

// Expression is an ordered choice of sequences; the first matching sequence wins.
type Expression []Sequence

// Rule is a named expression.
type Rule struct {
	Name string     `json:"name"`
	Expr Expression `json:"expr"`
}

// Grammar is an immutable rule table. Rules form an arena; calls are resolved
// by parser to arena indices, so recursive and mutually recursive rules carry
// no ownership cycles.
type Grammar struct {
	// Rules lists all rules; the slice index is the rule id.
	Rules []Rule `json:"rules"`

	// Index maps rule name to its index in Rules.
	Index map[string]int `json:"index"`

	// Externals lists names of external matchers the grammar imports.
	Externals []string `json:"externals,omitempty"`

	// Root is the index of the default start rule.
	Root int `json:"root"`
}

// RuleIndex returns the index of a named rule, or -1 if absent.
func (g *Grammar) RuleIndex(name string) int {
	i, has := g.Index[name]
	if !has {
		return -1
	}
	return i
}

// IsExternal reports whether name is declared as an external matcher.
func (g *Grammar) IsExternal(name string) bool {
	for _, n := range g.Externals {
		if n == name {
			return true
		}
	}
	return false
}
