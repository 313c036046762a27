package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleTree() *Decorated {
	return &Decorated{
		Span: Span{Start: 0, End: 5},
		Value: &Node{
			Rule: "Pair",
			Span: Span{Start: 0, End: 5},
			Children: []any{
				"ab",
				&Decorated{Value: "cde", Span: Span{Start: 2, End: 5}},
			},
			Bound: map[string]any{"left": "ab"},
		},
	}
}

func TestSpan(t *testing.T) {
	s := Span{Start: 2, End: 5}
	require.Equal(t, 3, s.Len())
	require.Equal(t, "2..5", s.String())
}

func TestNodeChildren(t *testing.T) {
	node := sampleTree().Value.(*Node)
	require.Equal(t, "ab", node.Child("left"))
	require.Nil(t, node.Child("right"))
	require.Equal(t, "ab", node.NthChild(0))
	require.Equal(t, node.Children[1], node.NthChild(-1))
	require.Nil(t, node.NthChild(2))
	require.Nil(t, node.NthChild(-3))
}

func TestWalkOrder(t *testing.T) {
	var strings []string
	Walk(sampleTree(), func(v any) bool {
		if s, ok := v.(string); ok {
			strings = append(strings, s)
		}
		return true
	})
	require.Equal(t, []string{"ab", "cde"}, strings)
}

func TestWalkPrune(t *testing.T) {
	visited := 0
	Walk(sampleTree(), func(v any) bool {
		visited++
		_, isNode := v.(*Node)
		return !isNode
	})
	// decorated root and its node, nothing below
	require.Equal(t, 2, visited)
}

func TestUnwrap(t *testing.T) {
	d := &Decorated{Value: &Decorated{Value: "x"}}
	require.Equal(t, "x", Unwrap(d))
	require.Equal(t, "y", Unwrap("y"))
	require.Nil(t, Unwrap((*Decorated)(nil)))
}

func TestText(t *testing.T) {
	require.Equal(t, "abcde", Text(sampleTree()))
	require.Equal(t, "", Text(42))
}
