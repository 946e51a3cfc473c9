package spec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/mdubinko/earleybird/grammar"
)

func TestParseSimpleGrammar(t *testing.T) {
	g, err := Parse(`doc = "A", "B" | "C", "D".`)
	require.NoError(t, err)

	rules := g.Rules()
	require.Len(t, rules, 1)
	r := rules[0]
	require.Equal(t, "doc", g.RuleName(r.Name))
	require.Equal(t, grammar.MarkNone, r.Mark)
	require.Len(t, r.Alts, 2)
	require.Len(t, r.Alts[0].Factors, 2)
	require.Len(t, r.Alts[1].Factors, 2)

	term, ok := r.Alts[0].Factors[0].(*grammar.Terminal)
	require.True(t, ok)
	require.True(t, term.Matcher.Accept('A'))
	require.False(t, term.Matcher.Accept('B'))
}

func TestParseMarksAndFactors(t *testing.T) {
	src := `
x: @id, -"-", y?. {id becomes an attribute}
@id: ["0"-"9"; #5f]+.
-y: ^name; ~["a"-"z"], 'lit''eral'.
name: [Lu]**"-", +">".
`
	g, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, g.Rules(), 4)

	x := g.Rules()[0]
	nt := x.Alts[0].Factors[0].(*grammar.NonTerm)
	require.Equal(t, grammar.MarkAttribute, nt.Mark)
	hidden := x.Alts[0].Factors[1].(*grammar.Terminal)
	require.Equal(t, grammar.TMarkHidden, hidden.TMark)
	_, isOpt := x.Alts[0].Factors[2].(*grammar.Option)
	require.True(t, isOpt)

	id := g.Rules()[1]
	require.Equal(t, grammar.MarkAttribute, id.Mark)
	_, isRep1 := id.Alts[0].Factors[0].(*grammar.Repeat1)
	require.True(t, isRep1)

	y := g.Rules()[2]
	require.Equal(t, grammar.MarkHidden, y.Mark)
	unhidden := y.Alts[0].Factors[0].(*grammar.NonTerm)
	require.Equal(t, grammar.MarkUnhide, unhidden.Mark)
	excl := y.Alts[1].Factors[0].(*grammar.Terminal)
	require.True(t, excl.Matcher.Exclude)
	// 'lit''eral' is one string with an escaped quote
	require.Len(t, y.Alts[1].Factors, 1+len("lit'eral"))

	name := g.Rules()[3]
	rep0 := name.Alts[0].Factors[0].(*grammar.Repeat0)
	require.NotNil(t, rep0.Sep)
	ins := name.Alts[0].Factors[1].(*grammar.Insertion)
	require.Equal(t, ">", ins.Text)
}

func TestParseProlog(t *testing.T) {
	g, err := Parse(`ixml version "1.0". doc = "a".`)
	require.NoError(t, err)
	require.Equal(t, "1.0", g.Version)
	require.Len(t, g.Rules(), 1)

	// a rule named ixml is not a prolog
	g, err = Parse(`ixml: "a".`)
	require.NoError(t, err)
	require.Equal(t, "", g.Version)
	require.Equal(t, "ixml", g.RuleName(g.Start()))
}

func TestParseHexAndSets(t *testing.T) {
	g, err := Parse(`doc = #41, [#30-#39; "x"; L], ~["{}"].`)
	require.NoError(t, err)
	fs := g.Rules()[0].Alts[0].Factors
	require.Len(t, fs, 3)
	require.True(t, fs[0].(*grammar.Terminal).Matcher.Accept('A'))
	set := fs[1].(*grammar.Terminal).Matcher
	require.True(t, set.Accept('5'))
	require.True(t, set.Accept('x'))
	require.True(t, set.Accept('é'))
	require.False(t, set.Accept('!'))
	require.True(t, fs[2].(*grammar.Terminal).Matcher.Accept('a'))
	require.False(t, fs[2].(*grammar.Terminal).Matcher.Accept('{'))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing terminator", `doc = "a"`},
		{"missing separator", `doc "a".`},
		{"unclosed string", `doc = "a.`},
		{"line break in string", "doc = \"a\nb\"."},
		{"empty string", `doc = "".`},
		{"unclosed set", `doc = ["a".`},
		{"stray factor", `doc = "a", , "b".`},
		{"bad range endpoint", `doc = ["ab"-"z"].`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			var gpe *GrammarParseError
			require.ErrorAs(t, err, &gpe)
			require.NotZero(t, gpe.Row)
			require.NotEmpty(t, gpe.Expected)
		})
	}
}

func TestParseValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *grammar.SemanticError
	}{
		{"duplicate rule", `doc = "a". doc = "b".`, grammar.ErrDuplicateRule},
		{"attribute mark on terminal", `doc = @"a".`, grammar.ErrAttrOnTerminal},
		{"unknown class", `doc = [Qx].`, grammar.ErrUnknownClass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("doc = \"a\".\nnext = ! .")
	var gpe *GrammarParseError
	require.ErrorAs(t, err, &gpe)
	require.Equal(t, 2, gpe.Row)
	require.Equal(t, 8, gpe.Col)
	require.Equal(t, `'!'`, gpe.Found)
}

func TestPrintRoundTrip(t *testing.T) {
	srcs := []string{
		`doc = "A", "B" | "C", "D".`,
		`x: @id, -"-", y?. @id: ["0"-"9"]+. -y: ^name; ~["a"-"z"]. name: [Lu]**"-", +">".`,
		`s: "a", +", ", "b"; .`,
		`greeting = "Hello ", name, "!". name = ["A"-"Z"; "a"-"z"]+.`,
		`list: item++(-",", -" "*). item: [L; Nd]+.`,
	}
	for _, src := range srcs {
		g1, err := Parse(src)
		require.NoError(t, err, src)
		printed := g1.String()
		g2, err := Parse(printed)
		require.NoError(t, err, printed)
		require.True(t, grammar.Equal(g1, g2), "round trip changed the grammar:\n%v", cmp.Diff(printed, g2.String()))
		require.Empty(t, cmp.Diff(printed, g2.String()))
	}
}
