package parser

import (
	"github.com/ovsov/peg/ast"
	"github.com/ovsov/peg/grammar"
	"github.com/ovsov/peg/source"
)

// result is the outcome of one match attempt. Failures are values, not
// errors: err is set only for aborts (action failures, interrupts), which
// stop backtracking entirely.
type result struct {
	val    any
	next   source.Cursor
	ok     bool
	failAt int
	err    error
}

type memoKey struct {
	rule, pos int
}

// parseCtx holds all per-parse state; the Parser itself stays read-only.
type parseCtx struct {
	p         *Parser
	src       *source.Source
	memo      map[memoKey]result
	maxFail   int
	lookDepth int
}

func newParseCtx(p *Parser, src *source.Source) *parseCtx {
	ctx := &parseCtx{p: p, src: src}
	if p.memoize {
		ctx.memo = map[memoKey]result{}
	}
	return ctx
}

// fail records a failure at the given offset for furthest-failure diagnostics.
// Failures inside lookaheads are expected and not recorded.
func (ctx *parseCtx) fail(offset int) result {
	if ctx.lookDepth == 0 && offset > ctx.maxFail {
		ctx.maxFail = offset
	}
	return result{failAt: offset}
}

func (ctx *parseCtx) evalRule(index int, c source.Cursor) result {
	rule := &ctx.p.rules[index]
	if ctx.p.check != nil {
		if e := ctx.p.check(); e != nil {
			return result{err: checkPointError(rule.name, c.SourcePos(), e)}
		}
	}

	key := memoKey{index, c.Pos()}
	if ctx.memo != nil {
		if r, has := ctx.memo[key]; has {
			return r
		}
	}

	r := ctx.evalExpr(rule.alts, c)
	if r.ok {
		d := &ast.Decorated{Value: r.val, Span: ast.Span{Start: c.Pos(), End: r.next.Pos()}}
		if node, isNode := r.val.(*ast.Node); isNode && node.Rule == "" {
			node.Rule = rule.name
		}
		r.val = d
	}

	if ctx.memo != nil && r.err == nil {
		ctx.memo[key] = r
	}
	return r
}

// evalExpr tries alternatives in order; the first match wins. A failed
// expression reports the offset of its earliest-failing alternative.
func (ctx *parseCtx) evalExpr(alts []compiledSeq, c source.Cursor) result {
	failAt := -1
	for i := range alts {
		r := ctx.evalSeq(&alts[i], c)
		if r.ok || r.err != nil {
			return r
		}
		if failAt < 0 || r.failAt < failAt {
			failAt = r.failAt
		}
	}
	if failAt < 0 {
		failAt = c.Pos()
	}
	return result{failAt: failAt}
}

func (ctx *parseCtx) evalSeq(seq *compiledSeq, c source.Cursor) result {
	vals := make([]any, len(seq.bindNames))
	cur := c
	for i := range seq.items {
		item := &seq.items[i]
		start := cur
		r := ctx.evalItem(item, cur, seq, vals)
		if r.err != nil {
			return r
		}
		if !r.ok {
			return result{failAt: start.Pos()}
		}
		if item.bindIndex >= 0 {
			vals[item.bindIndex] = r.val
		}
		cur = r.next
	}

	if seq.action != nil {
		v, e := ctx.evalProgram(seq.action, seq.owner, seq.bindNames, vals, len(seq.bindNames), c)
		if e != nil {
			return result{err: e}
		}
		return result{val: v, next: cur, ok: true}
	}

	if len(seq.bindNames) == 0 {
		return result{val: cur.Slice(c), next: cur, ok: true}
	}

	node := &ast.Node{
		Span:     ast.Span{Start: c.Pos(), End: cur.Pos()},
		Children: vals,
		Bound:    make(map[string]any, len(seq.bindNames)),
	}
	for i, name := range seq.bindNames {
		node.Bound[name] = vals[i]
	}
	return result{val: node, next: cur, ok: true}
}

func (ctx *parseCtx) evalItem(item *compiledItem, c source.Cursor, seq *compiledSeq, vals []any) result {
	if item.prefix == grammar.NoPrefix {
		return ctx.evalSuffixed(item, c, seq, vals)
	}

	// Lookaheads probe the input and always restore the cursor.
	ctx.lookDepth++
	r := ctx.evalSuffixed(item, c, seq, vals)
	ctx.lookDepth--
	if r.err != nil {
		return r
	}

	matched := r.ok
	if item.prefix == grammar.NotPrefix {
		matched = !matched
	}
	if !matched {
		return ctx.fail(c.Pos())
	}
	return result{val: true, next: c, ok: true}
}

func (ctx *parseCtx) evalSuffixed(item *compiledItem, c source.Cursor, seq *compiledSeq, vals []any) result {
	switch item.suffix {
	case grammar.QuestionSuffix:
		r := ctx.evalPrimary(item, c, seq, vals)
		if r.ok || r.err != nil {
			return r
		}
		return result{next: c, ok: true}

	case grammar.StarSuffix:
		return ctx.evalLoop(item, c, seq, vals, nil)

	case grammar.PlusSuffix:
		r := ctx.evalPrimary(item, c, seq, vals)
		if !r.ok || r.err != nil {
			return r
		}
		return ctx.evalLoop(item, r.next, seq, vals, []any{r.val})

	default:
		return ctx.evalPrimary(item, c, seq, vals)
	}
}

// evalLoop collects matches of a starred or plussed primary. An iteration
// that consumes nothing ends the loop to keep it finite.
func (ctx *parseCtx) evalLoop(item *compiledItem, c source.Cursor, seq *compiledSeq, vals, collected []any) result {
	if collected == nil {
		collected = []any{}
	}
	for {
		r := ctx.evalPrimary(item, c, seq, vals)
		if r.err != nil {
			return r
		}
		if !r.ok {
			return result{val: collected, next: c, ok: true}
		}

		collected = append(collected, r.val)
		if r.next.Pos() == c.Pos() {
			return result{val: collected, next: c, ok: true}
		}
		c = r.next
	}
}

func (ctx *parseCtx) evalPrimary(item *compiledItem, c source.Cursor, seq *compiledSeq, vals []any) result {
	switch item.kind {
	case grammar.CallPrimary:
		if item.extern != nil {
			v, next, ok := item.extern(c)
			if !ok {
				return ctx.fail(c.Pos())
			}
			return result{val: v, next: next, ok: true}
		}

		r := ctx.evalRule(item.rule, c)
		if r.ok && !item.decorated {
			r.val = r.val.(*ast.Decorated).Value
		}
		return r

	case grammar.GroupPrimary:
		return ctx.evalExpr(item.group, c)

	case grammar.LiteralPrimary:
		return ctx.matchLiteral(c, item.literal, item.caseless, item.braceSensitive, true)

	case grammar.DynamicLiteralPrimary:
		v, e := ctx.evalProgram(item.prog, item.owner, seq.bindNames, vals, item.visible, c)
		if e != nil {
			return result{err: e}
		}
		text, isString := v.(string)
		if !isString {
			return result{err: dynamicLiteralTypeError(item.owner, c.SourcePos(), v)}
		}
		return ctx.matchLiteral(c, text, false, false, false)

	case grammar.ClassPrimary:
		return ctx.matchClass(c, item.ranges)

	case grammar.AnyPrimary:
		return ctx.matchAny(c)

	default: // grammar.CodePrimary
		v, e := ctx.evalProgram(item.prog, item.owner, seq.bindNames, vals, item.visible, c)
		if e != nil {
			return result{err: e}
		}
		return result{val: v, next: c, ok: true}
	}
}
