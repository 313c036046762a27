// Package parser implements the parsing engine: it validates a compiled
// grammar, compiles its embedded expressions, and matches input sources
// against it with backtracking and optional memoization.
package parser

import (
	"github.com/google/cel-go/cel"

	"github.com/ovsov/peg/ast"
	"github.com/ovsov/peg/grammar"
	"github.com/ovsov/peg/source"
)

// Config tunes a Parser. The zero value is valid.
type Config struct {
	// Externals supplies matchers for the external names the grammar imports.
	// Names absent here fall back to Builtins.
	Externals map[string]Matcher

	// Memoize caches rule results per (rule, offset) pair.
	Memoize bool

	// CheckPoint, when set, is polled on every rule invocation; a non-nil
	// result aborts the parse.
	CheckPoint func() error
}

// Parser is a compiled, reusable matcher for one grammar. It is safe for
// concurrent use: all per-parse state lives in the parse context.
type Parser struct {
	grammar *grammar.Grammar
	rules   []compiledRule
	memoize bool
	check   func() error
}

type compiledRule struct {
	name string
	alts []compiledSeq
}

type compiledSeq struct {
	owner     string // enclosing rule name, for diagnostics
	items     []compiledItem
	action    cel.Program
	bindNames []string
}

type compiledItem struct {
	owner     string
	bindIndex int // slot in the sequence bindings, -1 for unbound
	visible   int // bindings available to the embedded expression
	prefix    grammar.Prefix
	suffix    grammar.Suffix

	kind           grammar.PrimaryKind
	rule           int // arena index for rule calls, -1 for externals
	extern         Matcher
	decorated      bool
	group          []compiledSeq
	literal        string
	caseless       bool
	braceSensitive bool
	ranges         []grammar.ClassRange
	prog           cel.Program
}

// New validates g and compiles it into a Parser. Calls are resolved to rule
// indices or matchers, and every embedded expression is compiled; any failure
// is reported with a grammar error code. cfg may be nil.
func New(g *grammar.Grammar, cfg *Config) (*Parser, error) {
	if len(g.Rules) == 0 {
		return nil, emptyGrammarError()
	}
	if g.Root < 0 || g.Root >= len(g.Rules) {
		return nil, badRootError(g.Root, len(g.Rules))
	}
	for name, index := range g.Index {
		if index < 0 || index >= len(g.Rules) || g.Rules[index].Name != name {
			return nil, badIndexError(name, index, len(g.Rules))
		}
	}

	p := &Parser{grammar: g}
	if cfg != nil {
		p.memoize = cfg.Memoize
		p.check = cfg.CheckPoint
	}

	externs := map[string]Matcher{}
	for _, name := range g.Externals {
		m := Builtins[name]
		if cfg != nil && cfg.Externals[name] != nil {
			m = cfg.Externals[name]
		}
		if m == nil {
			return nil, unknownExternalError(name)
		}
		externs[name] = m
	}

	p.rules = make([]compiledRule, len(g.Rules))
	for i := range g.Rules {
		rule := &g.Rules[i]
		c := &compiler{g: g, externs: externs, ruleName: rule.Name}
		alts, e := c.compileExpr(rule.Expr)
		if e != nil {
			return nil, e
		}
		p.rules[i] = compiledRule{name: rule.Name, alts: alts}
	}

	return p, nil
}

// Grammar returns the grammar the parser was compiled from.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.grammar
}

// Parse matches the root rule against s and requires the whole buffer to be
// consumed. On failure it reports the furthest offset reached.
func (p *Parser) Parse(s *source.Source) (*ast.Decorated, error) {
	return p.ParseFrom(p.grammar.Rules[p.grammar.Root].Name, s)
}

// ParseFrom is Parse starting from a named rule.
func (p *Parser) ParseFrom(ruleName string, s *source.Source) (*ast.Decorated, error) {
	d, next, e := p.ParseRule(ruleName, s)
	if e != nil {
		return nil, e
	}
	if !next.Eof() {
		return nil, incompleteParseError(s, next.Pos())
	}
	return d, nil
}

// ParseRule matches a named rule against a prefix of s and returns the result
// with the cursor past the consumed text. Unlike Parse it does not require
// full consumption.
func (p *Parser) ParseRule(ruleName string, s *source.Source) (*ast.Decorated, source.Cursor, error) {
	c := source.NewCursor(s)
	index := p.grammar.RuleIndex(ruleName)
	if index < 0 {
		return nil, c, unknownRuleError(ruleName)
	}

	ctx := newParseCtx(p, s)
	r := ctx.evalRule(index, c)
	if r.err != nil {
		return nil, c, r.err
	}
	if !r.ok {
		return nil, c, syntaxError(s, ctx.maxFail)
	}
	return r.val.(*ast.Decorated), r.next, nil
}

// compiler carries per-rule state through grammar compilation.
type compiler struct {
	g        *grammar.Grammar
	externs  map[string]Matcher
	ruleName string
}

func (c *compiler) compileExpr(expr grammar.Expression) ([]compiledSeq, error) {
	alts := make([]compiledSeq, len(expr))
	for i := range expr {
		seq, e := c.compileSeq(&expr[i])
		if e != nil {
			return nil, e
		}
		alts[i] = seq
	}
	return alts, nil
}

func (c *compiler) compileSeq(seq *grammar.Sequence) (compiledSeq, error) {
	res := compiledSeq{owner: c.ruleName, items: make([]compiledItem, len(seq.Items)), bindNames: seq.BindNames}
	slots := map[string]int{}
	for i, name := range seq.BindNames {
		slots[name] = i
	}

	bound := 0
	for i := range seq.Items {
		item, e := c.compileItem(&seq.Items[i], seq.BindNames[:bound])
		if e != nil {
			return res, e
		}
		item.bindIndex = -1
		if name := seq.Items[i].Name; name != "" {
			slot, has := slots[name]
			if !has {
				return res, bindNamesError(c.ruleName, name)
			}
			item.bindIndex = slot
			bound++
		}
		res.items[i] = item
	}

	if seq.Action != "" {
		prog, e := c.compileProgram(seq.Action, seq.BindNames)
		if e != nil {
			return res, e
		}
		res.action = prog
	}
	return res, nil
}

func (c *compiler) compileItem(item *grammar.Item, visible []string) (compiledItem, error) {
	res := compiledItem{
		owner:   c.ruleName,
		visible: len(visible),
		prefix:  item.Prefix,
		suffix:  item.Suffix,
		kind:    item.Primary.Kind,
		rule:    -1,
	}

	switch item.Primary.Kind {
	case grammar.CallPrimary:
		name := item.Primary.Name
		res.decorated = item.Primary.Decorated
		if c.g.IsExternal(name) {
			res.extern = c.externs[name]
			break
		}
		res.rule = c.g.RuleIndex(name)
		if res.rule < 0 {
			return res, unboundRuleError(c.ruleName, name)
		}

	case grammar.GroupPrimary:
		group, e := c.compileExpr(item.Primary.Group)
		if e != nil {
			return res, e
		}
		res.group = group

	case grammar.LiteralPrimary:
		res.literal = item.Primary.Literal
		res.caseless = item.Primary.Caseless
		res.braceSensitive = item.Primary.BraceSensitive

	case grammar.ClassPrimary:
		res.ranges = item.Primary.Ranges

	case grammar.DynamicLiteralPrimary, grammar.CodePrimary:
		prog, e := c.compileProgram(item.Primary.Expr, visible)
		if e != nil {
			return res, e
		}
		res.prog = prog
	}

	return res, nil
}

func (c *compiler) compileProgram(src string, visible []string) (cel.Program, error) {
	opts := make([]cel.EnvOption, 0, len(visible))
	for _, name := range visible {
		opts = append(opts, cel.Variable(name, cel.DynType))
	}
	env, e := cel.NewEnv(opts...)
	if e != nil {
		return nil, actionCompileError(c.ruleName, src, e)
	}

	compiled, issues := env.Compile(src)
	if issues != nil && issues.Err() != nil {
		return nil, actionCompileError(c.ruleName, src, issues.Err())
	}

	prog, e := env.Program(compiled)
	if e != nil {
		return nil, actionCompileError(c.ruleName, src, e)
	}
	return prog, nil
}
