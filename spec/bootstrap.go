package spec

import "github.com/mdubinko/earleybird/grammar"

// Bootstrap returns the ixml meta-grammar expressed in the grammar IR.
// Parsing a grammar document with this grammar and converting the
// derivation through GrammarFromDerivation yields the same IR the hand
// parser produces, which is the reflexive property ixml is named for.
func Bootstrap() *grammar.Grammar {
	g := grammar.NewGrammar()

	// ixml: s, prolog?, rule++RS, s.
	g.Define(grammar.MarkNone, "ixml", g.Seq().
		NT("s").
		Opt(g.Seq().NT("prolog")).
		Repeat1Sep(g.Seq().NT("rule"), g.Seq().NT("RS")).
		NT("s").Alt())

	// -s: (whitespace; comment)*. {Optional spacing}
	g.Define(grammar.MarkHidden, "s", g.Seq().
		Repeat0(g.Seq().Group(g.Seq().NT("whitespace"), g.Seq().NT("comment"))).Alt())

	// -RS: (whitespace; comment)+. {Required spacing}
	g.Define(grammar.MarkHidden, "RS", g.Seq().
		Repeat1(g.Seq().Group(g.Seq().NT("whitespace"), g.Seq().NT("comment"))).Alt())

	// -whitespace: -[Zs]; tab; lf; cr.
	g.Define(grammar.MarkHidden, "whitespace",
		g.Seq().MarkClass("Zs", grammar.TMarkHidden).Alt(),
		g.Seq().NT("tab").Alt(),
		g.Seq().NT("lf").Alt(),
		g.Seq().NT("cr").Alt())

	// -tab: -#9. -lf: -#a. -cr: -#d.
	g.Define(grammar.MarkHidden, "tab", g.Seq().MarkLit("\t", grammar.TMarkHidden).Alt())
	g.Define(grammar.MarkHidden, "lf", g.Seq().MarkLit("\n", grammar.TMarkHidden).Alt())
	g.Define(grammar.MarkHidden, "cr", g.Seq().MarkLit("\r", grammar.TMarkHidden).Alt())

	// comment: -"{", (cchar; comment)*, -"}".
	g.Define(grammar.MarkNone, "comment", g.Seq().
		MarkLit("{", grammar.TMarkHidden).
		Repeat0(g.Seq().Group(g.Seq().NT("cchar"), g.Seq().NT("comment"))).
		MarkLit("}", grammar.TMarkHidden).Alt())

	// -cchar: ~["{}"].
	g.Define(grammar.MarkHidden, "cchar", g.Seq().
		Matcher(&grammar.CharMatcher{
			Members: []*grammar.SetMember{grammar.NewOneOfMember("{}")},
			Exclude: true,
		}).Alt())

	// prolog: version, s.
	g.Define(grammar.MarkNone, "prolog", g.Seq().NT("version").NT("s").Alt())

	// version: -"ixml", RS, -"version", RS, string, s, -'.' .
	g.Define(grammar.MarkNone, "version", g.Seq().
		MarkLit("ixml", grammar.TMarkHidden).
		NT("RS").
		MarkLit("version", grammar.TMarkHidden).
		NT("RS").
		NT("string").
		NT("s").
		MarkLit(".", grammar.TMarkHidden).Alt())

	// rule: (mark, s)?, name, s, -["=:"], s, -alts, -".".
	g.Define(grammar.MarkNone, "rule", g.Seq().
		Opt(g.Seq().NT("mark").NT("s")).
		NT("name").
		NT("s").
		MarkChIn("=:", grammar.TMarkHidden).
		NT("s").
		MarkNT("alts", grammar.MarkHidden).
		MarkLit(".", grammar.TMarkHidden).Alt())

	// @mark: ["@^-"].
	g.Define(grammar.MarkAttribute, "mark", g.Seq().ChIn("@^-").Alt())

	// alts: alt++(-[";|"], s).
	g.Define(grammar.MarkNone, "alts", g.Seq().
		Repeat1Sep(g.Seq().NT("alt"),
			g.Seq().MarkChIn(";|", grammar.TMarkHidden).NT("s")).Alt())

	// alt: term**(-",", s).
	g.Define(grammar.MarkNone, "alt", g.Seq().
		Repeat0Sep(g.Seq().NT("term"),
			g.Seq().MarkLit(",", grammar.TMarkHidden).NT("s")).Alt())

	// -term: factor; option; repeat0; repeat1.
	g.Define(grammar.MarkHidden, "term",
		g.Seq().NT("factor").Alt(),
		g.Seq().NT("option").Alt(),
		g.Seq().NT("repeat0").Alt(),
		g.Seq().NT("repeat1").Alt())

	// -factor: terminal; nonterminal; insertion; -"(", s, alts, -")", s.
	g.Define(grammar.MarkHidden, "factor",
		g.Seq().NT("terminal").Alt(),
		g.Seq().NT("nonterminal").Alt(),
		g.Seq().NT("insertion").Alt(),
		g.Seq().
			MarkLit("(", grammar.TMarkHidden).NT("s").
			NT("alts").
			MarkLit(")", grammar.TMarkHidden).NT("s").Alt())

	// repeat0: factor, (-"*", s; -"**", s, sep).
	g.Define(grammar.MarkNone, "repeat0",
		g.Seq().NT("factor").MarkLit("*", grammar.TMarkHidden).NT("s").Alt(),
		g.Seq().NT("factor").MarkLit("**", grammar.TMarkHidden).NT("s").NT("sep").Alt())

	// repeat1: factor, (-"+", s; -"++", s, sep).
	g.Define(grammar.MarkNone, "repeat1",
		g.Seq().NT("factor").MarkLit("+", grammar.TMarkHidden).NT("s").Alt(),
		g.Seq().NT("factor").MarkLit("++", grammar.TMarkHidden).NT("s").NT("sep").Alt())

	// option: factor, -"?", s.
	g.Define(grammar.MarkNone, "option", g.Seq().
		NT("factor").MarkLit("?", grammar.TMarkHidden).NT("s").Alt())

	// sep: factor.
	g.Define(grammar.MarkNone, "sep", g.Seq().NT("factor").Alt())

	// nonterminal: (mark, s)?, name, s.
	g.Define(grammar.MarkNone, "nonterminal", g.Seq().
		Opt(g.Seq().NT("mark").NT("s")).
		NT("name").NT("s").Alt())

	// @name: namestart, namefollower*.
	g.Define(grammar.MarkAttribute, "name", g.Seq().
		NT("namestart").Repeat0(g.Seq().NT("namefollower")).Alt())

	// -namestart: ["_"; L].
	g.Define(grammar.MarkHidden, "namestart", g.Seq().
		Matcher(&grammar.CharMatcher{Members: []*grammar.SetMember{
			grammar.NewExactMember('_'),
			mustClassMember("L"),
		}}).Alt())

	// -namefollower: namestart; ["-.·‿⁀"; Nd; Mn].
	g.Define(grammar.MarkHidden, "namefollower",
		g.Seq().NT("namestart").Alt(),
		g.Seq().Matcher(&grammar.CharMatcher{Members: []*grammar.SetMember{
			grammar.NewOneOfMember("-.·‿⁀"),
			mustClassMember("Nd"),
			mustClassMember("Mn"),
		}}).Alt())

	// -terminal: literal; charset.
	g.Define(grammar.MarkHidden, "terminal",
		g.Seq().NT("literal").Alt(),
		g.Seq().NT("charset").Alt())

	// literal: quoted; encoded.
	g.Define(grammar.MarkNone, "literal",
		g.Seq().NT("quoted").Alt(),
		g.Seq().NT("encoded").Alt())

	// -quoted: (tmark, s)?, string, s.
	g.Define(grammar.MarkHidden, "quoted", g.Seq().
		Opt(g.Seq().NT("tmark").NT("s")).
		NT("string").NT("s").Alt())

	// @tmark: ["^-"].
	g.Define(grammar.MarkAttribute, "tmark", g.Seq().ChIn("^-").Alt())

	// @string: -'"', dchar+, -'"'; -"'", schar+, -"'".
	g.Define(grammar.MarkAttribute, "string",
		g.Seq().
			MarkLit(`"`, grammar.TMarkHidden).
			Repeat1(g.Seq().NT("dchar")).
			MarkLit(`"`, grammar.TMarkHidden).Alt(),
		g.Seq().
			MarkLit("'", grammar.TMarkHidden).
			Repeat1(g.Seq().NT("schar")).
			MarkLit("'", grammar.TMarkHidden).Alt())

	// dchar: ~['"'; #a; #d]; '"', -'"'. {quotes must be doubled}
	g.Define(grammar.MarkNone, "dchar",
		g.Seq().Matcher(&grammar.CharMatcher{
			Members: []*grammar.SetMember{
				grammar.NewExactMember('"'),
				grammar.NewExactMember('\n'),
				grammar.NewExactMember('\r'),
			},
			Exclude: true,
		}).Alt(),
		g.Seq().Lit(`"`).MarkLit(`"`, grammar.TMarkHidden).Alt())

	// schar: ~["'"; #a; #d]; "'", -"'". {quotes must be doubled}
	g.Define(grammar.MarkNone, "schar",
		g.Seq().Matcher(&grammar.CharMatcher{
			Members: []*grammar.SetMember{
				grammar.NewExactMember('\''),
				grammar.NewExactMember('\n'),
				grammar.NewExactMember('\r'),
			},
			Exclude: true,
		}).Alt(),
		g.Seq().Lit("'").MarkLit("'", grammar.TMarkHidden).Alt())

	// -encoded: (tmark, s)?, -"#", hex, s.
	g.Define(grammar.MarkHidden, "encoded", g.Seq().
		Opt(g.Seq().NT("tmark").NT("s")).
		MarkLit("#", grammar.TMarkHidden).
		NT("hex").NT("s").Alt())

	// @hex: ["0"-"9"; "a"-"f"; "A"-"F"]+.
	g.Define(grammar.MarkAttribute, "hex", g.Seq().
		Repeat1(g.Seq().Matcher(&grammar.CharMatcher{Members: []*grammar.SetMember{
			grammar.NewRangeMember('0', '9'),
			grammar.NewRangeMember('a', 'f'),
			grammar.NewRangeMember('A', 'F'),
		}})).Alt())

	// -charset: inclusion; exclusion.
	g.Define(grammar.MarkHidden, "charset",
		g.Seq().NT("inclusion").Alt(),
		g.Seq().NT("exclusion").Alt())

	// inclusion: (tmark, s)?, set.
	g.Define(grammar.MarkNone, "inclusion", g.Seq().
		Opt(g.Seq().NT("tmark").NT("s")).
		NT("set").Alt())

	// exclusion: (tmark, s)?, -"~", s, set.
	g.Define(grammar.MarkNone, "exclusion", g.Seq().
		Opt(g.Seq().NT("tmark").NT("s")).
		MarkLit("~", grammar.TMarkHidden).NT("s").
		NT("set").Alt())

	// -set: -"[", s, (member, s)**(-[";|"], s), -"]", s.
	g.Define(grammar.MarkHidden, "set", g.Seq().
		MarkLit("[", grammar.TMarkHidden).NT("s").
		Repeat0Sep(g.Seq().NT("member").NT("s"),
			g.Seq().MarkChIn(";|", grammar.TMarkHidden).NT("s")).
		MarkLit("]", grammar.TMarkHidden).NT("s").Alt())

	// member: string; -"#", hex; range; class.
	g.Define(grammar.MarkNone, "member",
		g.Seq().NT("string").Alt(),
		g.Seq().MarkLit("#", grammar.TMarkHidden).NT("hex").Alt(),
		g.Seq().NT("range").Alt(),
		g.Seq().NT("class").Alt())

	// -range: from, s, -"-", s, to.
	g.Define(grammar.MarkHidden, "range", g.Seq().
		NT("from").NT("s").
		MarkLit("-", grammar.TMarkHidden).NT("s").
		NT("to").Alt())

	// @from: character. @to: character.
	g.Define(grammar.MarkAttribute, "from", g.Seq().NT("character").Alt())
	g.Define(grammar.MarkAttribute, "to", g.Seq().NT("character").Alt())

	// -character: -'"', dchar, -'"'; -"'", schar, -"'"; "#", hex.
	g.Define(grammar.MarkHidden, "character",
		g.Seq().
			MarkLit(`"`, grammar.TMarkHidden).NT("dchar").MarkLit(`"`, grammar.TMarkHidden).Alt(),
		g.Seq().
			MarkLit("'", grammar.TMarkHidden).NT("schar").MarkLit("'", grammar.TMarkHidden).Alt(),
		g.Seq().Lit("#").NT("hex").Alt())

	// -class: code.
	g.Define(grammar.MarkHidden, "class", g.Seq().NT("code").Alt())

	// @code: capital, letter?.
	g.Define(grammar.MarkAttribute, "code", g.Seq().
		NT("capital").Opt(g.Seq().NT("letter")).Alt())

	// -capital: ["A"-"Z"]. -letter: ["a"-"z"].
	g.Define(grammar.MarkHidden, "capital", g.Seq().ChRange('A', 'Z').Alt())
	g.Define(grammar.MarkHidden, "letter", g.Seq().ChRange('a', 'z').Alt())

	// insertion: -"+", s, (string; -"#", hex), s.
	g.Define(grammar.MarkNone, "insertion", g.Seq().
		MarkLit("+", grammar.TMarkHidden).NT("s").
		Group(
			g.Seq().NT("string"),
			g.Seq().MarkLit("#", grammar.TMarkHidden).NT("hex")).
		NT("s").Alt())

	return g
}

func mustClassMember(code string) *grammar.SetMember {
	m, err := grammar.NewClassMember(code)
	if err != nil {
		panic(err)
	}
	return m
}
