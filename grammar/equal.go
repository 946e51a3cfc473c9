package grammar

// Equal reports whether two grammars define the same language with the
// same marks: same rules in the same order, compared by name text rather
// than symbol number so grammars from independent parses compare cleanly.
func Equal(a, b *Grammar) bool {
	if a.Version != b.Version || len(a.rules) != len(b.rules) {
		return false
	}
	for i, ra := range a.rules {
		rb := b.rules[i]
		if a.RuleName(ra.Name) != b.RuleName(rb.Name) || ra.Mark != rb.Mark {
			return false
		}
		if !equalAlts(a, b, ra.Alts, rb.Alts) {
			return false
		}
	}
	return true
}

func equalAlts(a, b *Grammar, as, bs []*Alt) bool {
	if len(as) != len(bs) {
		return false
	}
	for i, alt := range as {
		if len(alt.Factors) != len(bs[i].Factors) {
			return false
		}
		for j, f := range alt.Factors {
			if !equalFactor(a, b, f, bs[i].Factors[j]) {
				return false
			}
		}
	}
	return true
}

func equalFactor(a, b *Grammar, fa, fb Factor) bool {
	switch fa := fa.(type) {
	case *NonTerm:
		fb, ok := fb.(*NonTerm)
		return ok && fa.Mark == fb.Mark && a.RuleName(fa.Name) == b.RuleName(fb.Name)
	case *Terminal:
		fb, ok := fb.(*Terminal)
		return ok && fa.TMark == fb.TMark && fa.Matcher.Equal(fb.Matcher)
	case *Insertion:
		fb, ok := fb.(*Insertion)
		return ok && fa.Text == fb.Text
	case *Group:
		fb, ok := fb.(*Group)
		return ok && equalAlts(a, b, fa.Alts, fb.Alts)
	case *Option:
		fb, ok := fb.(*Option)
		return ok && equalFactor(a, b, fa.Inner, fb.Inner)
	case *Repeat0:
		fb, ok := fb.(*Repeat0)
		return ok && equalFactor(a, b, fa.Inner, fb.Inner) && equalSep(a, b, fa.Sep, fb.Sep)
	case *Repeat1:
		fb, ok := fb.(*Repeat1)
		return ok && equalFactor(a, b, fa.Inner, fb.Inner) && equalSep(a, b, fa.Sep, fb.Sep)
	}
	return false
}

func equalSep(a, b *Grammar, fa, fb Factor) bool {
	if fa == nil || fb == nil {
		return fa == nil && fb == nil
	}
	return equalFactor(a, b, fa, fb)
}
