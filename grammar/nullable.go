package grammar

// computeNullable finds, by fixpoint closure, every rule that can derive
// the empty string. It runs after lowering, so factors are atomic: a
// terminal always consumes a codepoint, an insertion never does, and a
// nonterminal defers to its rule.
func computeNullable(g *Grammar) []bool {
	nullable := make([]bool, g.syms.Len())
	for {
		changed := false
		for _, r := range g.rules {
			if nullable[r.Name.Int()] {
				continue
			}
			for _, alt := range r.Alts {
				if altNullable(nullable, alt) {
					nullable[r.Name.Int()] = true
					changed = true
					break
				}
			}
		}
		if !changed {
			break
		}
	}
	return nullable
}

func altNullable(nullable []bool, alt *Alt) bool {
	for _, f := range alt.Factors {
		switch f := f.(type) {
		case *Terminal:
			return false
		case *NonTerm:
			if !nullable[f.Name.Int()] {
				return false
			}
		}
	}
	return true
}

// NullableAlt reports whether one lowered alternative can derive the
// empty string.
func (cg *CompiledGrammar) NullableAlt(alt *Alt) bool {
	return altNullable(cg.nullable, alt)
}
