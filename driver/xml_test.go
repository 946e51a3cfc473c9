package driver_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mdubinko/earleybird/driver"
)

func TestAttributeValueFlattensElements(t *testing.T) {
	out := mustParse(t,
		`d: @v, "z". v: w, "-". w: "x".`,
		"x-z")
	require.Equal(t, `<d v="x-">z</d>`, out)
}

func TestAttributeEscaping(t *testing.T) {
	out := mustParse(t,
		`d: @v, "z". v: ["&<"]*, '"'.`,
		`&<"z`)
	require.Equal(t, `<d v="&amp;&lt;&quot;">z</d>`, out)
}

func TestAttributeThroughHiddenNode(t *testing.T) {
	// The attribute inside a hidden child attaches to the outer element.
	out := mustParse(t,
		`d: -inner, "!". inner: @a. a: "x".`,
		"x!")
	require.Equal(t, `<d a="x">!</d>`, out)
}

func TestAttributeOrderFollowsTraversal(t *testing.T) {
	out := mustParse(t,
		`d: @b, @a. b: "1". a: "2".`,
		"12")
	require.Equal(t, `<d b="1" a="2"/>`, out)
}

func TestDuplicateAttributeIsAnError(t *testing.T) {
	p := newParser(t, `d: e. e: @a, @a. a: "x".`)
	_, err := p.Parse("xx")
	require.Error(t, err)
	se, ok := err.(*driver.SerializationError)
	require.True(t, ok, "got %T", err)
	require.Equal(t, "a", se.Attr)
	require.Equal(t, "/d/e", se.Path)
}

func TestHiddenTerminalInAttributeValue(t *testing.T) {
	out := mustParse(t,
		`d: @v, "z". v: -"(", "x", -")".`,
		"(x)z")
	require.Equal(t, `<d v="x">z</d>`, out)
}

func TestPrintTree(t *testing.T) {
	p := newParser(t, `d: @a, w. a: "1". w: "x".`)
	tree, err := p.ParseTree("1x")
	require.NoError(t, err)

	var b strings.Builder
	driver.PrintTree(&b, tree)
	out := b.String()
	require.Contains(t, out, "d")
	require.Contains(t, out, "@a")
	require.Contains(t, out, `"x"`)
}
