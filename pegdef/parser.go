package pegdef

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ovsov/peg/grammar"
	"github.com/ovsov/peg/internal/ints"
	"github.com/ovsov/peg/internal/queue"
	"github.com/ovsov/peg/lexer"
	"github.com/ovsov/peg/source"
)

const (
	stringTok = "string"
	dynTok    = "dynamic"
	classTok  = "class"
	dirTok    = "dir"
	nameTok   = "name"
	opTok     = "op"
	wrongTok  = ""
)

const externDir = "%extern"

var pegLexer *lexer.Lexer

func init() {
	tokenTypes := []lexer.TokenType{
		{Type: 1, TypeName: stringTok},
		{Type: 2, TypeName: dynTok},
		{Type: 3, TypeName: classTok},
		{Type: 4, TypeName: dirTok},
		{Type: 5, TypeName: nameTok},
		{Type: 6, TypeName: opTok},
		{Type: lexer.ErrorTokenType, TypeName: wrongTok},
	}

	re := regexp.MustCompile(
		`^(?:\s+|#[^\n]*|` +
			`((?:"(?:[^\\"\n]|\\.)*"|'(?:[^\\'\n]|\\.)*')i?)|` +
			"(`[^`\n]*`)|" +
			`(\[(?:[^\\\]\n]|\\.)+\])|` +
			`(%[a-z]+)|` +
			`([a-zA-Z_][a-zA-Z_0-9]*(?:\.[a-zA-Z_][a-zA-Z_0-9]*)*)|` +
			`(<-|[~@&!?*+/():;.{])|` +
			"(['\"\\[%`].{0,10}))")

	pegLexer = lexer.New(re, tokenTypes)
}

// ParseString parses grammar description and returns a grammar on success.
// Returns nil and peg.Error on error.
func ParseString(name, content string) (*grammar.Grammar, error) {
	return Parse(source.New(name, []byte(content)))
}

// ParseBytes parses grammar description and returns a grammar on success.
// Returns nil and peg.Error on error.
func ParseBytes(name string, content []byte) (*grammar.Grammar, error) {
	return Parse(source.New(name, content))
}

// Parse parses grammar description and returns a grammar on success.
// Returns nil and peg.Error on error.
func Parse(s *source.Source) (*grammar.Grammar, error) {
	c := newParseContext(s)
	g, e := c.parse()
	if e != nil {
		return nil, e
	}

	e = resolveCalls(g)
	e = findUnusedRules(g, e)
	if e != nil {
		return nil, e
	}

	return g, nil
}

type parseContext struct {
	cur        source.Cursor
	savedToken *lexer.Token
	rules      []grammar.Rule
	index      map[string]int
	externals  []string
	externSet  map[string]bool
}

func newParseContext(s *source.Source) *parseContext {
	return &parseContext{
		cur:       source.NewCursor(s),
		rules:     make([]grammar.Rule, 0),
		index:     make(map[string]int),
		externSet: make(map[string]bool),
	}
}

func (c *parseContext) put(t *lexer.Token) {
	if c.savedToken != nil {
		panic("cannot put " + t.TypeName() + " token: already put " + c.savedToken.TypeName())
	}

	c.savedToken = t
}

// next fetches the next token regardless of its type.
func (c *parseContext) next() (*lexer.Token, error) {
	if c.savedToken != nil {
		t := c.savedToken
		c.savedToken = nil
		return t, nil
	}

	t, cur, e := pegLexer.Next(c.cur)
	if e != nil {
		return nil, e
	}

	c.cur = cur
	return t, nil
}

// fetch fetches a token of one of the given types (matched by type name or by
// exact text). In strict mode an unexpected token is an error, otherwise it is
// put back and nil is returned.
func (c *parseContext) fetch(types []string, strict bool, e error) (*lexer.Token, error) {
	if e != nil {
		return nil, e
	}

	token, e := c.next()
	if e != nil {
		return nil, e
	}

	for _, typ := range types {
		if token.TypeName() == typ || token.Text() == typ {
			return token, nil
		}
	}

	if token.IsEof() {
		if strict {
			return nil, eofError(token)
		}
		return token, nil
	}

	if strict {
		return nil, unexpectedTokenError(token)
	}

	c.put(token)
	return nil, nil
}

func (c *parseContext) fetchOne(typ string, strict bool, e error) (*lexer.Token, error) {
	return c.fetch([]string{typ}, strict, e)
}

func (c *parseContext) fetchAll(types []string, e error) ([]*lexer.Token, error) {
	if e != nil {
		return nil, e
	}

	result := make([]*lexer.Token, 0)
	for {
		t, e := c.fetch(types, false, nil)
		if e != nil {
			return nil, e
		}

		if t == nil || t.IsEof() {
			return result, nil
		}

		result = append(result, t)
	}
}

func (c *parseContext) skip(types []string, e error) error {
	if e != nil {
		return e
	}

	t, e := c.fetch(types, true, nil)
	if e == nil && t.IsEof() {
		return eofError(t)
	}
	return e
}

func (c *parseContext) skipOne(typ string, e error) error {
	return c.skip([]string{typ}, e)
}

func (c *parseContext) parse() (*grammar.Grammar, error) {
	for {
		t, e := c.fetch([]string{dirTok, nameTok, lexer.EofTokenName}, true, nil)
		if e != nil {
			return nil, e
		}

		if t.IsEof() {
			break
		}

		if t.TypeName() == dirTok {
			if len(c.rules) > 0 {
				return nil, misplacedDirectiveError(t)
			}
			if t.Text() != externDir {
				return nil, unknownDirectiveError(t)
			}
			e = c.parseExternDir()
		} else {
			e = c.parseRuleDef(t)
		}
		if e != nil {
			return nil, e
		}
	}

	if len(c.rules) == 0 {
		return nil, noRulesError()
	}

	return &grammar.Grammar{
		Rules:     c.rules,
		Index:     c.index,
		Externals: c.externals,
		Root:      0,
	}, nil
}

func (c *parseContext) parseExternDir() error {
	tokens, e := c.fetchAll([]string{nameTok}, nil)
	e = c.skipOne(";", e)
	if e != nil {
		return e
	}

	for _, t := range tokens {
		name := t.Text()
		if !c.externSet[name] {
			c.externSet[name] = true
			c.externals = append(c.externals, name)
		}
	}
	return nil
}

func (c *parseContext) parseRuleDef(t *lexer.Token) error {
	name := t.Text()
	if strings.Contains(name, ".") {
		return unexpectedTokenError(t)
	}
	if c.externSet[name] {
		return externNameError(t)
	}
	if _, has := c.index[name]; has {
		return defRuleError(t)
	}

	e := c.skipOne("<-", nil)
	expr, e := c.parseExpression(e)
	e = c.skipOne(";", e)
	if e != nil {
		return e
	}

	c.index[name] = len(c.rules)
	c.rules = append(c.rules, grammar.Rule{Name: name, Expr: expr})
	return nil
}

func (c *parseContext) parseExpression(e error) (grammar.Expression, error) {
	if e != nil {
		return nil, e
	}

	result := make(grammar.Expression, 0, 1)
	for {
		seq, e := c.parseSequence()
		if e != nil {
			return nil, e
		}

		result = append(result, seq)
		t, e := c.fetchOne("/", false, nil)
		if e != nil {
			return nil, e
		}
		if t == nil || t.IsEof() {
			if t != nil {
				c.put(t)
			}
			return result, nil
		}
	}
}

var itemHeads = []string{nameTok, stringTok, dynTok, classTok, "&", "!", "~", "@", "(", ".", "{"}

func (c *parseContext) parseSequence() (grammar.Sequence, error) {
	seq := grammar.Sequence{Items: make([]grammar.Item, 0)}
	seen := make(map[string]bool)

	for {
		t, e := c.fetch(itemHeads, false, nil)
		if e != nil {
			return seq, e
		}
		if t == nil || t.IsEof() {
			if t != nil {
				c.put(t)
			}
			break
		}

		item, e := c.parseItem(t, seen)
		if e != nil {
			return seq, e
		}

		seq.Items = append(seq.Items, item)
	}

	c.hoistAction(&seq)
	for _, it := range seq.Items {
		if it.Name != "" {
			seq.BindNames = append(seq.BindNames, it.Name)
		}
	}
	return seq, nil
}

// hoistAction turns a trailing bare code item into the sequence action.
func (c *parseContext) hoistAction(seq *grammar.Sequence) {
	n := len(seq.Items)
	if n == 0 {
		return
	}

	last := seq.Items[n-1]
	if last.Primary.Kind == grammar.CodePrimary && last.Name == "" &&
		last.Prefix == grammar.NoPrefix && last.Suffix == grammar.NoSuffix {
		seq.Action = last.Primary.Expr
		seq.Items = seq.Items[:n-1]
	}
}

func (c *parseContext) parseItem(t *lexer.Token, seen map[string]bool) (grammar.Item, error) {
	item := grammar.Item{}

	switch t.Text() {
	case "&":
		item.Prefix = grammar.AndPrefix
	case "!":
		item.Prefix = grammar.NotPrefix
	}
	if item.Prefix != grammar.NoPrefix {
		var e error
		t, e = c.fetch(itemHeads, true, nil)
		if e != nil {
			return item, e
		}
		if t.Text() == "&" || t.Text() == "!" || t.Text() == "~" {
			return item, unexpectedTokenError(t)
		}
	}

	var nameToken *lexer.Token
	switch {
	case t.Text() == "~":
		target, e := c.fetchOne(nameTok, false, nil)
		if e != nil {
			return item, e
		}
		if target == nil || target.IsEof() {
			bad, e := c.next()
			if e != nil {
				return item, e
			}
			return item, autobindTargetError(bad)
		}

		nameToken = target
		item.Name = simpleName(target.Text())
		item.Primary = grammar.Primary{Kind: grammar.CallPrimary, Name: target.Text()}

	case t.TypeName() == nameTok:
		colon, e := c.fetchOne(":", false, nil)
		if e != nil {
			return item, e
		}
		if colon == nil || colon.IsEof() {
			if colon != nil {
				c.put(colon)
			}
			item.Primary = grammar.Primary{Kind: grammar.CallPrimary, Name: t.Text()}
			break
		}

		if strings.Contains(t.Text(), ".") {
			return item, unexpectedTokenError(t)
		}

		nameToken = t
		item.Name = t.Text()
		head, e := c.fetch(itemHeads, true, nil)
		if e != nil {
			return item, e
		}
		item.Primary, e = c.parsePrimary(head)
		if e != nil {
			return item, e
		}

	default:
		var e error
		item.Primary, e = c.parsePrimary(t)
		if e != nil {
			return item, e
		}
	}

	if item.Name != "" {
		if seen[item.Name] {
			return item, duplicateBindingError(nameToken, item.Name)
		}
		seen[item.Name] = true
	}

	sfx, e := c.fetch([]string{"?", "*", "+"}, false, nil)
	if e != nil {
		return item, e
	}
	if sfx != nil && !sfx.IsEof() {
		switch sfx.Text() {
		case "?":
			item.Suffix = grammar.QuestionSuffix
		case "*":
			item.Suffix = grammar.StarSuffix
		case "+":
			item.Suffix = grammar.PlusSuffix
		}
	} else if sfx != nil {
		c.put(sfx)
	}

	return item, nil
}

func (c *parseContext) parsePrimary(t *lexer.Token) (grammar.Primary, error) {
	switch {
	case t.TypeName() == nameTok:
		return grammar.Primary{Kind: grammar.CallPrimary, Name: t.Text()}, nil

	case t.Text() == "@":
		target, e := c.fetchOne(nameTok, true, nil)
		if e != nil {
			return grammar.Primary{}, e
		}
		return grammar.Primary{Kind: grammar.CallPrimary, Name: target.Text(), Decorated: true}, nil

	case t.Text() == "(":
		expr, e := c.parseExpression(nil)
		e = c.skipOne(")", e)
		if e != nil {
			return grammar.Primary{}, e
		}
		return grammar.Primary{Kind: grammar.GroupPrimary, Group: expr}, nil

	case t.TypeName() == stringTok:
		return c.parseLiteral(t)

	case t.TypeName() == dynTok:
		text := t.Text()
		return grammar.Primary{Kind: grammar.DynamicLiteralPrimary, Expr: text[1 : len(text)-1]}, nil

	case t.TypeName() == classTok:
		return c.parseClass(t)

	case t.Text() == ".":
		return grammar.Primary{Kind: grammar.AnyPrimary}, nil

	case t.Text() == "{":
		expr, e := c.scanCode(t)
		if e != nil {
			return grammar.Primary{}, e
		}
		return grammar.Primary{Kind: grammar.CodePrimary, Expr: expr}, nil
	}

	return grammar.Primary{}, unexpectedTokenError(t)
}

// parseLiteral keeps the literal text raw (escapes intact, interpreted by the
// matcher), only validating the brace policy and detecting the caseless flag.
func (c *parseContext) parseLiteral(t *lexer.Token) (grammar.Primary, error) {
	text := t.Text()
	caseless := false
	if text[len(text)-1] == 'i' {
		caseless = true
		text = text[:len(text)-1]
	}
	text = text[1 : len(text)-1]

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '{', '}':
			return grammar.Primary{}, braceInLiteralError(t)
		}
	}

	return grammar.Primary{
		Kind:           grammar.LiteralPrimary,
		Literal:        text,
		Caseless:       caseless,
		BraceSensitive: true,
	}, nil
}

type classElement struct {
	r       rune
	escaped bool
}

func (c *parseContext) parseClass(t *lexer.Token) (grammar.Primary, error) {
	text := t.Text()
	text = text[1 : len(text)-1]

	elements := make([]classElement, 0, len(text))
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' || i+1 >= len(runes) {
			elements = append(elements, classElement{r, false})
			continue
		}

		i++
		elements = append(elements, classElement{unescapeRune(runes[i]), true})
	}

	if len(elements) == 0 {
		return grammar.Primary{}, emptyClassError(t)
	}

	ranges := make([]grammar.ClassRange, 0, len(elements))
	for i := 0; i < len(elements); i++ {
		el := elements[i]
		isRange := i+2 < len(elements) && elements[i+1].r == '-' && !elements[i+1].escaped
		if !isRange {
			ranges = append(ranges, grammar.ClassRange{Lo: el.r, Hi: el.r})
			continue
		}

		hi := elements[i+2]
		if el.r > hi.r {
			return grammar.Primary{}, classRangeError(t, el.r, hi.r)
		}
		ranges = append(ranges, grammar.ClassRange{Lo: el.r, Hi: hi.r})
		i += 2
	}

	return grammar.Primary{Kind: grammar.ClassPrimary, Ranges: ranges}, nil
}

func unescapeRune(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	}
	return r
}

// scanCode consumes raw source up to the curly brace matching an already
// fetched opening one. Nested braces and CEL string literals are honored.
func (c *parseContext) scanCode(open *lexer.Token) (string, error) {
	start := c.cur
	cur := c.cur
	depth := 1
	var inString rune

	for {
		r, next, ok := cur.AdvanceRune()
		if !ok {
			return "", unterminatedCodeError(open)
		}

		if inString != 0 {
			switch r {
			case '\\':
				_, next2, ok2 := next.AdvanceRune()
				if ok2 {
					next = next2
				}
			case inString:
				inString = 0
			}
			cur = next
			continue
		}

		switch r {
		case '"', '\'':
			inString = r
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				expr := cur.Slice(start)
				c.cur = next
				return strings.TrimSpace(expr), nil
			}
		}
		cur = next
	}
}

func simpleName(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// resolveCalls verifies that every called name refers to a defined rule or a
// declared external matcher. Qualified names always refer to externals.
func resolveCalls(g *grammar.Grammar) error {
	missing := make(map[string]bool)

	var walkExpr func(expr grammar.Expression)
	walkExpr = func(expr grammar.Expression) {
		for _, seq := range expr {
			for _, item := range seq.Items {
				p := item.Primary
				switch p.Kind {
				case grammar.CallPrimary:
					if g.IsExternal(p.Name) {
						continue
					}
					if strings.Contains(p.Name, ".") || g.RuleIndex(p.Name) < 0 {
						missing[p.Name] = true
					}
				case grammar.GroupPrimary:
					walkExpr(p.Group)
				}
			}
		}
	}

	for _, rule := range g.Rules {
		walkExpr(rule.Expr)
	}

	if len(missing) == 0 {
		return nil
	}

	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)
	return unboundRuleError(names)
}

// findUnusedRules checks that every rule is reachable from the root.
func findUnusedRules(g *grammar.Grammar, e error) error {
	if e != nil {
		return e
	}

	unreached := ints.NewSet()
	for i := range g.Rules {
		unreached.Add(i)
	}

	searchQueue := queue.New(g.Root)
	for {
		index, fetched := searchQueue.First()
		if !fetched {
			break
		}

		if !unreached.Contains(index) {
			continue
		}

		unreached.Remove(index)
		for _, i := range calledRules(g, g.Rules[index].Expr) {
			searchQueue.Append(i)
		}
	}

	if unreached.IsEmpty() {
		return nil
	}

	indexes := unreached.ToSlice()
	names := make([]string, len(indexes))
	for i, index := range indexes {
		names[i] = g.Rules[index].Name
	}
	return unusedRuleError(names)
}

func calledRules(g *grammar.Grammar, expr grammar.Expression) []int {
	result := make([]int, 0)
	for _, seq := range expr {
		for _, item := range seq.Items {
			switch item.Primary.Kind {
			case grammar.CallPrimary:
				if i := g.RuleIndex(item.Primary.Name); i >= 0 {
					result = append(result, i)
				}
			case grammar.GroupPrimary:
				result = append(result, calledRules(g, item.Primary.Group)...)
			}
		}
	}
	return result
}
