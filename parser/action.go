package parser

import (
	"github.com/google/cel-go/cel"

	"github.com/ovsov/peg/ast"
	"github.com/ovsov/peg/source"
)

// evalProgram runs a compiled expression over the first visible bindings of
// the current sequence. Evaluation errors abort the parse.
func (ctx *parseCtx) evalProgram(prog cel.Program, owner string, bindNames []string, vals []any, visible int, at source.Cursor) (any, error) {
	activation := make(map[string]any, visible)
	for i := 0; i < visible; i++ {
		activation[bindNames[i]] = activationValue(vals[i])
	}

	out, _, e := prog.Eval(activation)
	if e != nil {
		return nil, actionEvalError(owner, at.SourcePos(), e)
	}
	return out.Value(), nil
}

// activationValue converts an engine value into something the expression
// runtime understands: decorated values and aggregate nodes become maps,
// slices are converted element-wise.
func activationValue(v any) any {
	switch val := v.(type) {
	case *ast.Decorated:
		if val == nil {
			return nil
		}
		return map[string]any{
			"value": activationValue(val.Value),
			"start": val.Span.Start,
			"end":   val.Span.End,
		}
	case *ast.Node:
		if val == nil {
			return nil
		}
		bound := make(map[string]any, len(val.Bound))
		for name, child := range val.Bound {
			bound[name] = activationValue(child)
		}
		return map[string]any{
			"rule":  val.Rule,
			"start": val.Span.Start,
			"end":   val.Span.End,
			"bound": bound,
		}
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = activationValue(item)
		}
		return items
	default:
		return v
	}
}
