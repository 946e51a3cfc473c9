package driver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mdubinko/earleybird/driver"
	"github.com/mdubinko/earleybird/grammar"
	"github.com/mdubinko/earleybird/spec"
)

func compile(t *testing.T, grammarText string) *grammar.CompiledGrammar {
	t.Helper()
	g, err := spec.Parse(grammarText)
	require.NoError(t, err)
	cg, err := grammar.Compile(g)
	require.NoError(t, err)
	return cg
}

func newParser(t *testing.T, grammarText string) *driver.Parser {
	t.Helper()
	p, err := driver.NewParser(compile(t, grammarText))
	require.NoError(t, err)
	return p
}

func mustParse(t *testing.T, grammarText, input string) string {
	t.Helper()
	out, err := newParser(t, grammarText).Parse(input)
	require.NoError(t, err)
	return out
}

func TestParseScenarios(t *testing.T) {
	tests := []struct {
		name    string
		grammar string
		input   string
		want    string
	}{
		{
			name:    "literal and repeat",
			grammar: `greeting = "Hello ", name, "!". name = ["A"-"Z"; "a"-"z"]+.`,
			input:   "Hello World!",
			want:    `<greeting>Hello <name>World</name>!</greeting>`,
		},
		{
			name:    "alternatives a",
			grammar: `rule: "a" | "b".`,
			input:   "a",
			want:    `<rule>a</rule>`,
		},
		{
			name:    "alternatives b",
			grammar: `rule: "a" | "b".`,
			input:   "b",
			want:    `<rule>b</rule>`,
		},
		{
			name:    "separated repetition",
			grammar: `expr: term, ("+", term)*. term: "a".`,
			input:   "a+a+a",
			want:    `<expr><term>a</term>+<term>a</term>+<term>a</term></expr>`,
		},
		{
			name:    "attribute mark",
			grammar: `x: @id, "-", y. id: ["0"-"9"]+. y: ["a"-"z"]+.`,
			input:   "42-abc",
			want:    `<x id="42">-<y>abc</y></x>`,
		},
		{
			name:    "hidden nonterminal splices its children",
			grammar: `doc: -ws, word, -ws. ws: -" "+. word: ["a"-"z"]+.`,
			input:   " hi ",
			want:    `<doc><word>hi</word></doc>`,
		},
		{
			name:    "hidden element keeps visible text",
			grammar: `doc: -ws, word. ws: " "+. word: ["a"-"z"]+.`,
			input:   " hi",
			want:    `<doc> <word>hi</word></doc>`,
		},
		{
			name:    "insertion",
			grammar: `s: "a", +", ", "b".`,
			input:   "ab",
			want:    `<s>a, b</s>`,
		},
		{
			name:    "hidden terminal",
			grammar: `q: -"a", "b".`,
			input:   "ab",
			want:    `<q>b</q>`,
		},
		{
			name:    "unhide a hidden rule by reference",
			grammar: `d: ^w. -w: "x".`,
			input:   "x",
			want:    `<d><w>x</w></d>`,
		},
		{
			name:    "hex terminal",
			grammar: `t: #41.`,
			input:   "A",
			want:    `<t>A</t>`,
		},
		{
			name:    "unicode classes",
			grammar: `word: [L; Nd]+.`,
			input:   "héllo語7",
			want:    `<word>héllo語7</word>`,
		},
		{
			name:    "exclusion set",
			grammar: `str: ~["x"; #a]+.`,
			input:   "ab c",
			want:    `<str>ab c</str>`,
		},
		{
			name:    "left recursion",
			grammar: `expr: expr, "+", t; t. t: "1".`,
			input:   "1+1+1",
			want:    `<expr><expr><expr><t>1</t></expr>+<t>1</t></expr>+<t>1</t></expr>`,
		},
		{
			name:    "nullable prediction",
			grammar: `a: (b?). b: "x".`,
			input:   "x",
			want:    `<a><b>x</b></a>`,
		},
		{
			name:    "nullable prediction on empty input",
			grammar: `a: (b?). b: "x".`,
			input:   "",
			want:    `<a/>`,
		},
		{
			name:    "insertion inside nullable rule still emits",
			grammar: `a: b?. b: +"hi".`,
			input:   "",
			want:    `<a><b>hi</b></a>`,
		},
		{
			name:    "empty derivation picks the empty alternative",
			grammar: `a: b?. b: opt. opt: +"never", "x"; .`,
			input:   "",
			want:    `<a><b><opt/></b></a>`,
		},
		{
			name:    "cyclic nullable rule terminates",
			grammar: `a: a; .`,
			input:   "",
			want:    `<a><a/></a>`,
		},
		{
			name:    "text escaping",
			grammar: `d: ["&<>"]+.`,
			input:   "&<>",
			want:    `<d>&amp;&lt;&gt;</d>`,
		},
		{
			name:    "empty separated list",
			grammar: `list: item**(-","). item: ["a"-"z"].`,
			input:   "",
			want:    `<list/>`,
		},
		{
			name:    "separated list",
			grammar: `list: item**(-","). item: ["a"-"z"].`,
			input:   "a,b,c",
			want:    `<list><item>a</item><item>b</item><item>c</item></list>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.grammar, tt.input)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseFailureReporting(t *testing.T) {
	p := newParser(t, `rule: "a" | "b".`)
	_, err := p.Parse("c")
	require.Error(t, err)
	pf, ok := err.(*driver.ParseFailure)
	require.True(t, ok, "got %T", err)
	require.Equal(t, 0, pf.FurthestPos)
	require.Equal(t, []string{`"a"`, `"b"`}, pf.Expected)
	require.Equal(t, `'c'`, pf.Actual)
}

func TestParseFailureAtEOF(t *testing.T) {
	p := newParser(t, `pair: "a", "b".`)
	_, err := p.Parse("a")
	pf, ok := err.(*driver.ParseFailure)
	require.True(t, ok, "got %T", err)
	require.Equal(t, 1, pf.FurthestPos)
	require.Equal(t, []string{`"b"`}, pf.Expected)
	require.Equal(t, "<EOF>", pf.Actual)
}

func TestParseFailureFurthestReach(t *testing.T) {
	p := newParser(t, `doc: "a"*, "!".`)
	_, err := p.Parse("aaac")
	pf, ok := err.(*driver.ParseFailure)
	require.True(t, ok, "got %T", err)
	require.Equal(t, 3, pf.FurthestPos)
	require.Equal(t, `'c'`, pf.Actual)
}

func TestTrailingInputRejected(t *testing.T) {
	p := newParser(t, `rule: "a".`)
	_, err := p.Parse("ab")
	var pf *driver.ParseFailure
	require.ErrorAs(t, err, &pf)
}

func TestAmbiguityTieBreakIsDeterministic(t *testing.T) {
	p := newParser(t, `d: a; b. a: "x". b: "x".`)
	out, err := p.Parse("x")
	require.NoError(t, err)
	require.Equal(t, `<d><a>x</a></d>`, out)
	require.True(t, p.Ambiguous())

	for i := 0; i < 10; i++ {
		again, err := p.Parse("x")
		require.NoError(t, err)
		require.Equal(t, out, again)
	}
}

func TestUnambiguousParseReportsNoAmbiguity(t *testing.T) {
	p := newParser(t, `d: "x".`)
	_, err := p.Parse("x")
	require.NoError(t, err)
	require.False(t, p.Ambiguous())
}

func TestTextContentProperty(t *testing.T) {
	// All character data in the output is exactly: codepoints consumed by
	// emitting terminals plus insertion texts, in parse order.
	p := newParser(t, `doc: -"(", inner, -")", +"!". inner: ["a"-"z"]+.`)
	tree, err := p.ParseTree("(abc)")
	require.NoError(t, err)
	require.Equal(t, "abc!", tree.TextContent())
}

func TestDerivationIsStable(t *testing.T) {
	g := `expr: expr, "+", expr; "1".`
	first := ""
	for i := 0; i < 5; i++ {
		out, err := newParser(t, g).Parse("1+1+1")
		require.NoError(t, err)
		if first == "" {
			first = out
		}
		require.Equal(t, first, out)
	}
}
