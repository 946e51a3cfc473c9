package grammar

// RuleBuilder assembles one alternative of factors against a grammar's
// interner. It exists for grammars constructed in code, most importantly
// the bootstrap ixml-of-ixml grammar.
type RuleBuilder struct {
	g       *Grammar
	factors []Factor
}

// Seq starts an empty alternative.
func (g *Grammar) Seq() *RuleBuilder {
	return &RuleBuilder{g: g}
}

// Alt finalizes the sequence.
func (b *RuleBuilder) Alt() *Alt {
	return &Alt{Factors: b.factors}
}

// NT appends an unmarked nonterminal reference.
func (b *RuleBuilder) NT(name string) *RuleBuilder {
	return b.MarkNT(name, MarkNone)
}

func (b *RuleBuilder) MarkNT(name string, mark Mark) *RuleBuilder {
	b.factors = append(b.factors, &NonTerm{Mark: mark, Name: b.g.Intern(name)})
	return b
}

// Lit appends one terminal per codepoint of s.
func (b *RuleBuilder) Lit(s string) *RuleBuilder {
	return b.MarkLit(s, TMarkNone)
}

func (b *RuleBuilder) MarkLit(s string, tmark TMark) *RuleBuilder {
	for _, r := range s {
		b.factors = append(b.factors, &Terminal{TMark: tmark, Matcher: NewExactMatcher(r)})
	}
	return b
}

// ChIn appends a terminal matching any one codepoint of chars.
func (b *RuleBuilder) ChIn(chars string) *RuleBuilder {
	return b.MarkChIn(chars, TMarkNone)
}

func (b *RuleBuilder) MarkChIn(chars string, tmark TMark) *RuleBuilder {
	m := &CharMatcher{Members: []*SetMember{NewOneOfMember(chars)}}
	b.factors = append(b.factors, &Terminal{TMark: tmark, Matcher: m})
	return b
}

// ChRange appends a terminal matching the inclusive codepoint range.
func (b *RuleBuilder) ChRange(lo, hi rune) *RuleBuilder {
	m := &CharMatcher{Members: []*SetMember{NewRangeMember(lo, hi)}}
	b.factors = append(b.factors, &Terminal{TMark: TMarkNone, Matcher: m})
	return b
}

// Matcher appends a terminal with an explicit matcher.
func (b *RuleBuilder) Matcher(m *CharMatcher) *RuleBuilder {
	return b.MarkMatcher(m, TMarkNone)
}

func (b *RuleBuilder) MarkMatcher(m *CharMatcher, tmark TMark) *RuleBuilder {
	b.factors = append(b.factors, &Terminal{TMark: tmark, Matcher: m})
	return b
}

// Class appends a terminal matching a Unicode general category. The code
// must be valid; this is for hand-built grammars only.
func (b *RuleBuilder) Class(code string) *RuleBuilder {
	return b.MarkClass(code, TMarkNone)
}

func (b *RuleBuilder) MarkClass(code string, tmark TMark) *RuleBuilder {
	mem, err := NewClassMember(code)
	if err != nil {
		panic(err)
	}
	m := &CharMatcher{Members: []*SetMember{mem}}
	b.factors = append(b.factors, &Terminal{TMark: tmark, Matcher: m})
	return b
}

// Insert appends an insertion emitting text without consuming input.
func (b *RuleBuilder) Insert(text string) *RuleBuilder {
	b.factors = append(b.factors, &Insertion{Text: text})
	return b
}

// Opt appends sub?.
func (b *RuleBuilder) Opt(sub *RuleBuilder) *RuleBuilder {
	b.factors = append(b.factors, &Option{Inner: sub.factor()})
	return b
}

// Repeat0 appends sub*.
func (b *RuleBuilder) Repeat0(sub *RuleBuilder) *RuleBuilder {
	b.factors = append(b.factors, &Repeat0{Inner: sub.factor()})
	return b
}

// Repeat0Sep appends sub**sep.
func (b *RuleBuilder) Repeat0Sep(sub, sep *RuleBuilder) *RuleBuilder {
	b.factors = append(b.factors, &Repeat0{Inner: sub.factor(), Sep: sep.factor()})
	return b
}

// Repeat1 appends sub+.
func (b *RuleBuilder) Repeat1(sub *RuleBuilder) *RuleBuilder {
	b.factors = append(b.factors, &Repeat1{Inner: sub.factor()})
	return b
}

// Repeat1Sep appends sub++sep.
func (b *RuleBuilder) Repeat1Sep(sub, sep *RuleBuilder) *RuleBuilder {
	b.factors = append(b.factors, &Repeat1{Inner: sub.factor(), Sep: sep.factor()})
	return b
}

// Group appends a parenthesized disjunction of the given alternatives.
func (b *RuleBuilder) Group(alts ...*RuleBuilder) *RuleBuilder {
	g := &Group{}
	for _, a := range alts {
		g.Alts = append(g.Alts, a.Alt())
	}
	b.factors = append(b.factors, g)
	return b
}

// factor wraps the built sequence as a single factor, grouping when the
// sequence is not exactly one factor long.
func (b *RuleBuilder) factor() Factor {
	if len(b.factors) == 1 {
		return b.factors[0]
	}
	return &Group{Alts: []*Alt{b.Alt()}}
}
