package grammar

import "fmt"

// lower rewrites compound factors (groups, options, repetitions) into
// references to fresh synthesized rules, all hidden so their wrapping
// never appears in output. Synthesized names start with a double hyphen,
// which no user-written rule name can.
//
// Rewrite shapes:
//
//	f?      ⇒  -R: f | ().
//	f*      ⇒  -R: () | f, R.
//	f**sep  ⇒  -R: () | f, (sep, f)*.
//	f+      ⇒  -R: f, R?.
//	f++sep  ⇒  -R: f, (sep, f)*.
//	(alts)  ⇒  -R: alts.
//
// Rules appended during the walk are themselves walked, so nested
// compounds bottom out.
func lower(g *Grammar) {
	next := 0
	for i := 0; i < len(g.rules); i++ {
		r := g.rules[i]
		for _, alt := range r.Alts {
			for j, f := range alt.Factors {
				alt.Factors[j] = lowerFactor(g, f, &next)
			}
		}
	}
}

func lowerFactor(g *Grammar, f Factor, next *int) Factor {
	switch f := f.(type) {
	case *Option:
		return defineSynthetic(g, next, "option",
			&Alt{Factors: []Factor{f.Inner}},
			&Alt{})
	case *Repeat0:
		if f.Sep == nil {
			sym := mintSynthetic(g, next, "star")
			g.bySym[sym].Alts = []*Alt{
				{},
				{Factors: []Factor{f.Inner, &NonTerm{Name: sym}}},
			}
			return &NonTerm{Name: sym}
		}
		return defineSynthetic(g, next, "star-sep",
			&Alt{},
			&Alt{Factors: []Factor{
				f.Inner,
				&Repeat0{Inner: &Group{Alts: []*Alt{{Factors: []Factor{f.Sep, f.Inner}}}}},
			}})
	case *Repeat1:
		if f.Sep == nil {
			sym := mintSynthetic(g, next, "plus")
			g.bySym[sym].Alts = []*Alt{
				{Factors: []Factor{f.Inner, &Option{Inner: &NonTerm{Name: sym}}}},
			}
			return &NonTerm{Name: sym}
		}
		return defineSynthetic(g, next, "plus-sep",
			&Alt{Factors: []Factor{
				f.Inner,
				&Repeat0{Inner: &Group{Alts: []*Alt{{Factors: []Factor{f.Sep, f.Inner}}}}},
			}})
	case *Group:
		return defineSynthetic(g, next, "group", f.Alts...)
	}
	return f
}

func mintSynthetic(g *Grammar, next *int, hint string) Symbol {
	name := fmt.Sprintf("--%v%v", hint, *next)
	*next++
	sym := g.Intern(name)
	r := &Rule{Name: sym, Mark: MarkHidden, synthesized: true}
	g.bySym[sym] = r
	g.rules = append(g.rules, r)
	return sym
}

func defineSynthetic(g *Grammar, next *int, hint string, alts ...*Alt) Factor {
	sym := mintSynthetic(g, next, hint)
	g.bySym[sym].Alts = alts
	return &NonTerm{Name: sym}
}
