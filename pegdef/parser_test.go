package pegdef

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ovsov/peg"
	"github.com/ovsov/peg/grammar"
	"github.com/ovsov/peg/lexer"
)

func mustGrammar(t *testing.T, text string) *grammar.Grammar {
	t.Helper()
	g, e := ParseString("grammar", text)
	require.NoError(t, e)
	return g
}

func TestSimpleGrammar(t *testing.T) {
	g := mustGrammar(t, "A <- 'x' B ; B <- 'y' ;")
	require.Len(t, g.Rules, 2)
	require.Equal(t, 0, g.Root)
	require.Equal(t, 0, g.RuleIndex("A"))
	require.Equal(t, 1, g.RuleIndex("B"))
	require.Equal(t, -1, g.RuleIndex("C"))
}

func TestComments(t *testing.T) {
	g := mustGrammar(t, "# header\nA <- 'x' ; # trailing\n")
	require.Len(t, g.Rules, 1)
}

func TestExternDirective(t *testing.T) {
	g := mustGrammar(t, "%extern spacing ident ; A <- spacing ident ;")
	require.Equal(t, []string{"spacing", "ident"}, g.Externals)
	require.True(t, g.IsExternal("ident"))
	require.False(t, g.IsExternal("A"))
}

func TestLiteralFlags(t *testing.T) {
	g := mustGrammar(t, "A <- 'ab'i ;")
	p := g.Rules[0].Expr[0].Items[0].Primary
	require.Equal(t, grammar.LiteralPrimary, p.Kind)
	require.Equal(t, "ab", p.Literal)
	require.True(t, p.Caseless)
	require.True(t, p.BraceSensitive)
}

func TestLiteralKeptRaw(t *testing.T) {
	g := mustGrammar(t, `A <- 'a\nb' ;`)
	require.Equal(t, `a\nb`, g.Rules[0].Expr[0].Items[0].Primary.Literal)
}

func TestClassRanges(t *testing.T) {
	g := mustGrammar(t, `A <- [a-c\]x\-] ;`)
	p := g.Rules[0].Expr[0].Items[0].Primary
	require.Equal(t, grammar.ClassPrimary, p.Kind)
	require.Equal(t, []grammar.ClassRange{
		{Lo: 'a', Hi: 'c'},
		{Lo: ']', Hi: ']'},
		{Lo: 'x', Hi: 'x'},
		{Lo: '-', Hi: '-'},
	}, p.Ranges)
}

func TestGroupsAndSuffixes(t *testing.T) {
	g := mustGrammar(t, "A <- ('a' / 'b')+ 'c'? .* ;")
	items := g.Rules[0].Expr[0].Items
	require.Len(t, items, 3)

	require.Equal(t, grammar.GroupPrimary, items[0].Primary.Kind)
	require.Len(t, items[0].Primary.Group, 2)
	require.Equal(t, grammar.PlusSuffix, items[0].Suffix)

	require.Equal(t, grammar.QuestionSuffix, items[1].Suffix)

	require.Equal(t, grammar.AnyPrimary, items[2].Primary.Kind)
	require.Equal(t, grammar.StarSuffix, items[2].Suffix)
}

func TestLookaheadPrefixes(t *testing.T) {
	g := mustGrammar(t, "A <- &'a' !'b' 'a' ;")
	items := g.Rules[0].Expr[0].Items
	require.Equal(t, grammar.AndPrefix, items[0].Prefix)
	require.Equal(t, grammar.NotPrefix, items[1].Prefix)
	require.Equal(t, grammar.NoPrefix, items[2].Prefix)
}

func TestBindings(t *testing.T) {
	g := mustGrammar(t, "A <- a:'x' B b:@B ; B <- 'y' ;")
	seq := g.Rules[0].Expr[0]
	require.Equal(t, []string{"a", "b"}, seq.BindNames)
	require.Equal(t, "a", seq.Items[0].Name)
	require.Equal(t, "", seq.Items[1].Name)
	require.True(t, seq.Items[2].Primary.Decorated)
}

func TestAutobind(t *testing.T) {
	g := mustGrammar(t, "A <- ~B ; B <- 'y' ;")
	item := g.Rules[0].Expr[0].Items[0]
	require.Equal(t, "B", item.Name)
	require.Equal(t, "B", item.Primary.Name)
}

func TestAutobindStripsQualifier(t *testing.T) {
	g := mustGrammar(t, "%extern m.x ; A <- ~m.x ;")
	item := g.Rules[0].Expr[0].Items[0]
	require.Equal(t, "x", item.Name)
	require.Equal(t, "m.x", item.Primary.Name)
}

func TestTrailingCodeBecomesAction(t *testing.T) {
	g := mustGrammar(t, "A <- a:'x' {a + 'y'} ;")
	seq := g.Rules[0].Expr[0]
	require.Len(t, seq.Items, 1)
	require.Equal(t, "a + 'y'", seq.Action)
	require.Equal(t, []string{"a"}, seq.BindNames)
}

func TestBoundCodeStaysAnItem(t *testing.T) {
	g := mustGrammar(t, "A <- n:{1} 'x' ;")
	seq := g.Rules[0].Expr[0]
	require.Len(t, seq.Items, 2)
	require.Equal(t, "", seq.Action)
	require.Equal(t, grammar.CodePrimary, seq.Items[0].Primary.Kind)
	require.Equal(t, "1", seq.Items[0].Primary.Expr)
}

func TestNestedCodeBraces(t *testing.T) {
	g := mustGrammar(t, `A <- a:'x' {{"k": a}} ;`)
	require.Equal(t, `{"k": a}`, g.Rules[0].Expr[0].Action)
}

func TestDynamicLiteral(t *testing.T) {
	g := mustGrammar(t, "A <- t:. `t + 'x'` ;")
	p := g.Rules[0].Expr[0].Items[1].Primary
	require.Equal(t, grammar.DynamicLiteralPrimary, p.Kind)
	require.Equal(t, "t + 'x'", p.Expr)
}

func TestErrors(t *testing.T) {
	samples := []struct {
		text string
		code int
	}{
		{"", NoRulesError},
		{"A", UnexpectedEofError},
		{"A <- 'x'", UnexpectedEofError},
		{"A <- )", UnexpectedTokenError},
		{"A.B <- 'x' ;", UnexpectedTokenError},
		{"%bogus ; A <- 'x' ;", UnknownDirectiveError},
		{"A <- 'x' ; %extern f ;", MisplacedDirectiveError},
		{"A <- 'x' ; A <- 'y' ;", RuleDefinedError},
		{"A <- B ;", UnboundRuleError},
		{"A <- m.B ;", UnboundRuleError},
		{"A <- 'x' ; B <- 'y' ;", UnusedRuleError},
		{"A <- ~'x' ;", AutobindTargetError},
		{"A <- a:'x' a:'y' ;", DuplicateBindingError},
		{"A <- 'a{b' ;", BraceInLiteralError},
		{"A <- [z-a] ;", ClassRangeError},
		{"A <- {1 + 2 ;", UnterminatedCodeError},
		{"%extern f ; f <- 'x' ;", ExternNameError},
		{"A <- 'x' ; $", lexer.WrongCharError},
		{"A <- 'x ;", lexer.BadTokenError},
	}

	for _, s := range samples {
		_, e := ParseString("grammar", s.text)
		var pe *peg.Error
		require.ErrorAs(t, e, &pe, s.text)
		require.Equal(t, s.code, pe.Code, s.text)
	}
}

func TestUnusedRuleViaGroupIsReachable(t *testing.T) {
	g := mustGrammar(t, "A <- ('x' B)? ; B <- 'y' ;")
	require.Len(t, g.Rules, 2)
}
