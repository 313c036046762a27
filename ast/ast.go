// Package ast defines the values produced by the parsing engine: source spans,
// span-decorated results, and the default aggregate nodes built for sequences
// that carry no action.
package ast

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) in the parsed source.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// Decorated wraps a parsed value with its source span.
// Every rule invocation result is decorated; bindings unwrap the value unless
// the call is marked with @ in the grammar.
type Decorated struct {
	Value any  `json:"value"`
	Span  Span `json:"span"`
}

// Node is the default result of an action-less sequence that binds names:
// the bound values in binding order plus a by-name view of them.
// Rule holds the name of the enclosing rule.
type Node struct {
	Rule     string         `json:"rule,omitempty"`
	Span     Span           `json:"span"`
	Children []any          `json:"children,omitempty"`
	Bound    map[string]any `json:"bound,omitempty"`
}

// Child returns the value bound to name, or nil.
func (n *Node) Child(name string) any {
	return n.Bound[name]
}

// NthChild returns the i-th bound value; negative i counts from the end.
func (n *Node) NthChild(i int) any {
	if i < 0 {
		i += len(n.Children)
	}
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Walk calls visit for value and, recursively, for every value reachable from
// it through Decorated wrappers, Nodes, and slices. Traversal is depth-first,
// parents before children. visit returning false prunes the subtree.
func Walk(value any, visit func(v any) bool) {
	if !visit(value) {
		return
	}

	switch v := value.(type) {
	case *Decorated:
		if v != nil {
			Walk(v.Value, visit)
		}
	case Decorated:
		Walk(v.Value, visit)
	case *Node:
		if v != nil {
			for _, child := range v.Children {
				Walk(child, visit)
			}
		}
	case []any:
		for _, item := range v {
			Walk(item, visit)
		}
	}
}

// Unwrap strips Decorated wrappers from value.
func Unwrap(value any) any {
	for {
		switch v := value.(type) {
		case *Decorated:
			if v == nil {
				return nil
			}
			value = v.Value
		case Decorated:
			value = v.Value
		default:
			return value
		}
	}
}

// Text concatenates all string values reachable from value in traversal order.
func Text(value any) string {
	result := ""
	Walk(value, func(v any) bool {
		if s, ok := v.(string); ok {
			result += s
		}
		return true
	})
	return result
}
