package grammar

import "testing"

func TestLowerLeavesOnlyAtomicFactors(t *testing.T) {
	g := NewGrammar()
	g.Define(MarkNone, "doc", g.Seq().
		Opt(g.Seq().NT("a")).
		Repeat0(g.Seq().NT("a")).
		Repeat1Sep(g.Seq().NT("a"), g.Seq().Lit(",")).
		Group(g.Seq().NT("a"), g.Seq().Lit("x")).Alt())
	g.Define(MarkNone, "a", g.Seq().Lit("a").Alt())

	cg, err := Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range cg.Grammar().Rules() {
		for _, alt := range r.Alts {
			for _, f := range alt.Factors {
				switch f.(type) {
				case *NonTerm, *Terminal, *Insertion:
				default:
					t.Fatalf("rule %v still has a compound factor %T", cg.RuleName(r.Name), f)
				}
			}
		}
	}
}

func TestLowerSynthesizedRulesAreHidden(t *testing.T) {
	g := NewGrammar()
	g.Define(MarkNone, "doc", g.Seq().Opt(g.Seq().Lit("a")).Alt())
	cg, err := Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	sawSynthesized := false
	for _, r := range cg.Grammar().Rules() {
		if !r.Synthesized() {
			continue
		}
		sawSynthesized = true
		if r.Mark != MarkHidden {
			t.Errorf("synthesized rule %v has mark %v, want hidden", cg.RuleName(r.Name), r.Mark)
		}
	}
	if !sawSynthesized {
		t.Fatal("lowering produced no synthesized rules")
	}
}

func TestLowerOptionShape(t *testing.T) {
	g := NewGrammar()
	g.Define(MarkNone, "doc", g.Seq().Opt(g.Seq().NT("a")).Alt())
	g.Define(MarkNone, "a", g.Seq().Lit("a").Alt())
	cg, err := Compile(g)
	if err != nil {
		t.Fatal(err)
	}

	doc := cg.Rule(cg.Start())
	nt, ok := doc.Alts[0].Factors[0].(*NonTerm)
	if !ok {
		t.Fatalf("doc's factor is %T, want a synthesized nonterminal", doc.Alts[0].Factors[0])
	}
	opt := cg.Rule(nt.Name)
	if !opt.Synthesized() {
		t.Fatal("option did not lower to a synthesized rule")
	}
	if len(opt.Alts) != 2 || len(opt.Alts[1].Factors) != 0 {
		t.Fatalf("option rule should have the inner alternative plus an empty one, got %v alts", len(opt.Alts))
	}
	if !cg.Nullable(nt.Name) {
		t.Fatal("an option rule must be nullable")
	}
}
