package grammar

import (
	"fmt"
	"strings"
)

// String renders the grammar in canonical ixml notation. Printing a
// not-yet-compiled grammar and re-parsing the result yields an equivalent
// IR; synthesized rules are skipped so a compiled grammar prints as its
// source form with compounds already rewritten.
func (g *Grammar) String() string {
	var b strings.Builder
	if g.Version != "" {
		fmt.Fprintf(&b, "ixml version %v.\n", quoteString(g.Version))
	}
	for _, r := range g.rules {
		if r.synthesized {
			continue
		}
		fmt.Fprintf(&b, "%v%v: %v.\n", r.Mark, g.RuleName(r.Name), g.printAlts(r.Alts))
	}
	return b.String()
}

func (g *Grammar) printAlts(alts []*Alt) string {
	parts := make([]string, len(alts))
	for i, alt := range alts {
		factors := make([]string, len(alt.Factors))
		for j, f := range alt.Factors {
			factors[j] = g.printFactor(f)
		}
		parts[i] = strings.Join(factors, ", ")
	}
	return strings.Join(parts, "; ")
}

func (g *Grammar) printFactor(f Factor) string {
	switch f := f.(type) {
	case *NonTerm:
		return f.Mark.String() + g.RuleName(f.Name)
	case *Terminal:
		return f.TMark.String() + f.Matcher.String()
	case *Insertion:
		return "+" + quoteString(f.Text)
	case *Group:
		return "(" + g.printAlts(f.Alts) + ")"
	case *Option:
		return g.printFactor(f.Inner) + "?"
	case *Repeat0:
		if f.Sep == nil {
			return g.printFactor(f.Inner) + "*"
		}
		return g.printFactor(f.Inner) + "**" + g.printFactor(f.Sep)
	case *Repeat1:
		if f.Sep == nil {
			return g.printFactor(f.Inner) + "+"
		}
		return g.printFactor(f.Inner) + "++" + g.printFactor(f.Sep)
	}
	return ""
}
