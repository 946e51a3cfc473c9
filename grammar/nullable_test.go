package grammar

import "testing"

func TestNullable(t *testing.T) {
	// doc: a, b. a: "x"; . b: a, a. c: "y". ins: +"text".
	g := NewGrammar()
	g.Define(MarkNone, "doc", g.Seq().NT("a").NT("b").Alt())
	g.Define(MarkNone, "a", g.Seq().Lit("x").Alt(), g.Seq().Alt())
	g.Define(MarkNone, "b", g.Seq().NT("a").NT("a").Alt())
	g.Define(MarkNone, "c", g.Seq().Lit("y").Alt())
	g.Define(MarkNone, "ins", g.Seq().Insert("text").Alt())

	cg, err := Compile(g)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		rule     string
		nullable bool
	}{
		{"doc", true},
		{"a", true},
		{"b", true},
		{"c", false},
		{"ins", true},
	}
	for _, tt := range tests {
		sym, ok := cg.Grammar().Symbols().ToSymbol(tt.rule)
		if !ok {
			t.Fatalf("rule %v not interned", tt.rule)
		}
		if got := cg.Nullable(sym); got != tt.nullable {
			t.Errorf("Nullable(%v) = %v, want %v", tt.rule, got, tt.nullable)
		}
	}
}

func TestNullableCycle(t *testing.T) {
	// a: b; . b: a.
	g := NewGrammar()
	g.Define(MarkNone, "a", g.Seq().NT("b").Alt(), g.Seq().Alt())
	g.Define(MarkNone, "b", g.Seq().NT("a").Alt())
	cg, err := Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a", "b"} {
		sym, _ := cg.Grammar().Symbols().ToSymbol(name)
		if !cg.Nullable(sym) {
			t.Errorf("Nullable(%v) = false, want true", name)
		}
	}
}
