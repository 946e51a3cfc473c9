// Package grammar defines the internal representation of ixml grammars:
// rules carrying marks, alternatives of factors, and character matchers,
// interned through a symbol table so cyclic references are plain indices.
package grammar

// Rule is one named rule: a mark and its alternatives in source order.
type Rule struct {
	Name Symbol
	Mark Mark
	Alts []*Alt

	// synthesized rules are minted by lowering and always hidden
	synthesized bool
}

func (r *Rule) Synthesized() bool {
	return r.synthesized
}

// Grammar is an ordered sequence of rules plus the name interner. The
// start symbol is the first defined rule's name.
type Grammar struct {
	syms    *SymbolTable
	rules   []*Rule
	bySym   map[Symbol]*Rule
	start   Symbol
	Version string
}

func NewGrammar() *Grammar {
	return &Grammar{
		syms:  NewSymbolTable(),
		bySym: map[Symbol]*Rule{},
		start: SymbolNil,
	}
}

// Intern registers a rule name and returns its symbol.
func (g *Grammar) Intern(name string) Symbol {
	return g.syms.Intern(name)
}

// Define adds alternatives to the rule called name, creating it on first
// sight. The first defined rule becomes the start rule. Marks given on
// later definitions of the same name are ignored. Define itself never
// rejects a repeated name; redeclaration checking is the grammar parsers'
// job.
func (g *Grammar) Define(mark Mark, name string, alts ...*Alt) *Rule {
	sym := g.Intern(name)
	r, ok := g.bySym[sym]
	if !ok {
		r = &Rule{Name: sym, Mark: mark}
		g.bySym[sym] = r
		g.rules = append(g.rules, r)
		if g.start.IsNil() {
			g.start = sym
		}
	}
	r.Alts = append(r.Alts, alts...)
	return r
}

func (g *Grammar) Rule(sym Symbol) (*Rule, bool) {
	r, ok := g.bySym[sym]
	return r, ok
}

// Rules returns the rules in definition order.
func (g *Grammar) Rules() []*Rule {
	return g.rules
}

func (g *Grammar) Start() Symbol {
	return g.start
}

func (g *Grammar) Symbols() *SymbolTable {
	return g.syms
}

func (g *Grammar) RuleName(sym Symbol) string {
	text, _ := g.syms.ToText(sym)
	return text
}

// CompiledGrammar is a grammar ready for recognition: validated, with all
// compound factors lowered away and nullability precomputed.
type CompiledGrammar struct {
	g        *Grammar
	nullable []bool
}

// Compile validates g, lowers compound factors into fresh hidden rules,
// and precomputes nullability. The original grammar value is extended in
// place by lowering; callers wanting to keep a pristine IR should print
// and re-parse it.
func Compile(g *Grammar) (*CompiledGrammar, error) {
	if err := validate(g); err != nil {
		return nil, err
	}
	lower(g)
	return &CompiledGrammar{
		g:        g,
		nullable: computeNullable(g),
	}, nil
}

func (cg *CompiledGrammar) Grammar() *Grammar {
	return cg.g
}

func (cg *CompiledGrammar) Start() Symbol {
	return cg.g.start
}

func (cg *CompiledGrammar) RuleName(sym Symbol) string {
	return cg.g.RuleName(sym)
}

func (cg *CompiledGrammar) Rule(sym Symbol) *Rule {
	return cg.g.bySym[sym]
}

// Nullable reports whether sym can derive the empty string.
func (cg *CompiledGrammar) Nullable(sym Symbol) bool {
	return cg.nullable[sym.Int()]
}

func validate(g *Grammar) error {
	if len(g.rules) == 0 {
		return semErrNoRule
	}
	start := g.bySym[g.start]
	switch start.Mark {
	case MarkHidden:
		return &ValidationError{Cause: semErrHiddenStart, Name: g.RuleName(g.start)}
	case MarkAttribute:
		return &ValidationError{Cause: semErrAttrStart, Name: g.RuleName(g.start)}
	}
	for _, r := range g.rules {
		for _, alt := range r.Alts {
			if err := validateFactors(g, r, alt.Factors); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateFactors(g *Grammar, r *Rule, factors []Factor) error {
	for _, f := range factors {
		switch f := f.(type) {
		case *NonTerm:
			if _, ok := g.bySym[f.Name]; !ok {
				return &ValidationError{Cause: semErrUndefinedSym, Name: g.RuleName(f.Name)}
			}
		case *Group:
			for _, alt := range f.Alts {
				if err := validateFactors(g, r, alt.Factors); err != nil {
					return err
				}
			}
		case *Option:
			if err := validateFactors(g, r, []Factor{f.Inner}); err != nil {
				return err
			}
		case *Repeat0:
			fs := []Factor{f.Inner}
			if f.Sep != nil {
				fs = append(fs, f.Sep)
			}
			if err := validateFactors(g, r, fs); err != nil {
				return err
			}
		case *Repeat1:
			fs := []Factor{f.Inner}
			if f.Sep != nil {
				fs = append(fs, f.Sep)
			}
			if err := validateFactors(g, r, fs); err != nil {
				return err
			}
		}
	}
	return nil
}
