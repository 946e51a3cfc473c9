// Package spec handles the surface syntax of ixml grammars: comment
// stripping, a hand-written recursive-descent parser from grammar text to
// the grammar IR, and the bootstrap grammar that describes ixml in ixml.
//
// The same Earley engine that parses documents could parse grammars under
// the bootstrap grammar, and GrammarFromDerivation closes that loop; the
// hand parser exists so grammar loading does not depend on a prior
// grammar, and so syntax errors carry exact positions.
package spec

import (
	"strconv"
	"strings"

	"github.com/mdubinko/earleybird/grammar"
)

// Parse parses ixml grammar text into a grammar IR.
func Parse(src string) (*grammar.Grammar, error) {
	stripped, err := StripComments(src)
	if err != nil {
		return nil, err
	}
	p := &parser{
		s:    newScanner(stripped),
		g:    grammar.NewGrammar(),
		seen: map[string]struct{}{},
	}
	return p.parse()
}

type parser struct {
	s    *scanner
	g    *grammar.Grammar
	seen map[string]struct{}
}

func (p *parser) parse() (g *grammar.Grammar, retErr error) {
	defer func() {
		if err := recover(); err != nil {
			g = nil
			retErr = err.(error)
		}
	}()
	p.skipS()
	p.parseProlog()
	p.parseRule()
	for !p.s.eof() {
		p.parseRule()
	}
	return p.g, nil
}

func (p *parser) raise(expected string) {
	row, col := p.s.rowCol(p.s.pos)
	panic(&GrammarParseError{
		Pos:      p.s.pos,
		Row:      row,
		Col:      col,
		Expected: expected,
		Found:    p.s.found(),
	})
}

func (p *parser) raiseValidation(cause *grammar.SemanticError, name string) {
	panic(&grammar.ValidationError{Cause: cause, Name: name})
}

// prolog: -"ixml", RS, -"version", RS, string, s, -'.' .
// A leading "ixml" might equally be a rule name, so back out on any
// mismatch and let rule parsing have it.
func (p *parser) parseProlog() {
	save := p.s.pos
	if !p.matchWord("ixml") || !p.skipRS() {
		p.s.pos = save
		return
	}
	if !p.matchWord("version") || !p.skipRS() {
		p.s.pos = save
		return
	}
	if c := p.s.peek(); c != '"' && c != '\'' {
		p.s.pos = save
		return
	}
	v := p.parseString()
	p.skipS()
	if !p.s.accept('.') {
		p.raise("'.' after the version declaration")
	}
	p.skipS()
	p.g.Version = v
}

// rule: (mark, s)?, name, s, -["=:"], s, -alts, -".".
func (p *parser) parseRule() {
	mark := grammar.MarkNone
	if isMarkChar(p.s.peek()) {
		mark = markOf(p.s.next())
		p.skipS()
	}
	name := p.parseName()
	p.skipS()
	if !p.s.accept('=') && !p.s.accept(':') {
		p.raise("a rule separator '=' or ':'")
	}
	p.skipS()
	alts := p.parseAlts()
	if !p.s.accept('.') {
		p.raise("a rule terminator '.'")
	}
	p.skipS()
	if _, ok := p.seen[name]; ok {
		p.raiseValidation(grammar.ErrDuplicateRule, name)
	}
	p.seen[name] = struct{}{}
	p.g.Define(mark, name, alts...)
}

// alts: alt++(-[";|"], s).
func (p *parser) parseAlts() []*grammar.Alt {
	alts := []*grammar.Alt{p.parseAlt()}
	for p.s.accept(';') || p.s.accept('|') {
		p.skipS()
		alts = append(alts, p.parseAlt())
	}
	return alts
}

// alt: term**(-",", s).
func (p *parser) parseAlt() *grammar.Alt {
	alt := &grammar.Alt{}
	if p.atAltEnd() {
		return alt
	}
	alt.Factors = append(alt.Factors, p.parseTerm()...)
	for p.s.accept(',') {
		p.skipS()
		alt.Factors = append(alt.Factors, p.parseTerm()...)
	}
	return alt
}

func (p *parser) atAltEnd() bool {
	switch p.s.peek() {
	case '.', ';', '|', ')', eofRune:
		return true
	}
	return false
}

// term: factor; factor?; factor*; factor**sep; factor+; factor++sep.
// A multi-codepoint literal expands to several factors; a postfix
// operator applies to the literal as one unit.
func (p *parser) parseTerm() []grammar.Factor {
	fs := p.parseFactor()
	switch {
	case p.s.accept('?'):
		p.skipS()
		return []grammar.Factor{&grammar.Option{Inner: unit(fs)}}
	case p.s.accept('*'):
		if p.s.accept('*') {
			p.skipS()
			sep := unit(p.parseFactor())
			return []grammar.Factor{&grammar.Repeat0{Inner: unit(fs), Sep: sep}}
		}
		p.skipS()
		return []grammar.Factor{&grammar.Repeat0{Inner: unit(fs)}}
	case p.s.accept('+'):
		if p.s.accept('+') {
			p.skipS()
			sep := unit(p.parseFactor())
			return []grammar.Factor{&grammar.Repeat1{Inner: unit(fs), Sep: sep}}
		}
		p.skipS()
		return []grammar.Factor{&grammar.Repeat1{Inner: unit(fs)}}
	}
	return fs
}

// factor: terminal; nonterminal; insertion; -"(", s, alts, -")", s.
func (p *parser) parseFactor() []grammar.Factor {
	switch c := p.s.peek(); {
	case c == '(':
		p.s.next()
		p.skipS()
		alts := p.parseAlts()
		if !p.s.accept(')') {
			p.raise("')'")
		}
		p.skipS()
		return []grammar.Factor{&grammar.Group{Alts: alts}}
	case c == '+':
		return p.parseInsertion()
	case isMarkChar(c):
		mark := p.s.next()
		p.skipS()
		if p.atTerminal() {
			if mark == '@' {
				p.raiseValidation(grammar.ErrAttrOnTerminal, "")
			}
			return p.parseTerminal(tmarkOf(mark))
		}
		if !isNameStart(p.s.peek()) {
			p.raise("a nonterminal or terminal after the mark")
		}
		return p.parseNonterminal(markOf(mark))
	case p.atTerminal():
		return p.parseTerminal(grammar.TMarkNone)
	case isNameStart(c):
		return p.parseNonterminal(grammar.MarkNone)
	}
	p.raise("a factor")
	return nil
}

func (p *parser) atTerminal() bool {
	switch p.s.peek() {
	case '"', '\'', '#', '[', '~':
		return true
	}
	return false
}

// nonterminal: (mark, s)?, name, s. The mark was consumed by the caller.
func (p *parser) parseNonterminal(mark grammar.Mark) []grammar.Factor {
	name := p.parseName()
	p.skipS()
	return []grammar.Factor{&grammar.NonTerm{Mark: mark, Name: p.g.Intern(name)}}
}

// terminal: literal; charset. literal: quoted; encoded.
func (p *parser) parseTerminal(tmark grammar.TMark) []grammar.Factor {
	switch p.s.peek() {
	case '"', '\'':
		str := p.parseString()
		p.skipS()
		var fs []grammar.Factor
		for _, r := range str {
			fs = append(fs, &grammar.Terminal{TMark: tmark, Matcher: grammar.NewExactMatcher(r)})
		}
		return fs
	case '#':
		p.s.next()
		r := p.parseHex()
		p.skipS()
		return []grammar.Factor{&grammar.Terminal{TMark: tmark, Matcher: grammar.NewExactMatcher(r)}}
	}
	m := p.parseCharset()
	return []grammar.Factor{&grammar.Terminal{TMark: tmark, Matcher: m}}
}

// charset: inclusion; exclusion.
// set: -"[", s, (member, s)**(-[";|"], s), -"]", s.
func (p *parser) parseCharset() *grammar.CharMatcher {
	exclude := false
	if p.s.accept('~') {
		exclude = true
		p.skipS()
	}
	if !p.s.accept('[') {
		p.raise("'['")
	}
	p.skipS()
	var members []*grammar.SetMember
	if p.s.peek() != ']' {
		members = append(members, p.parseMember())
		for p.s.accept(';') || p.s.accept('|') {
			p.skipS()
			members = append(members, p.parseMember())
		}
	}
	if !p.s.accept(']') {
		p.raise("']'")
	}
	p.skipS()
	return &grammar.CharMatcher{Members: members, Exclude: exclude}
}

// member: string; -"#", hex; range; class.
func (p *parser) parseMember() *grammar.SetMember {
	switch c := p.s.peek(); {
	case c == '"' || c == '\'':
		str := p.parseString()
		p.skipS()
		if p.s.accept('-') {
			p.skipS()
			runes := []rune(str)
			if len(runes) != 1 {
				p.raise("a single-character range endpoint")
			}
			hi := p.parseCharacter()
			p.skipS()
			return grammar.NewRangeMember(runes[0], hi)
		}
		if runes := []rune(str); len(runes) == 1 {
			return grammar.NewExactMember(runes[0])
		}
		return grammar.NewOneOfMember(str)
	case c == '#':
		p.s.next()
		lo := p.parseHex()
		p.skipS()
		if p.s.accept('-') {
			p.skipS()
			hi := p.parseCharacter()
			p.skipS()
			return grammar.NewRangeMember(lo, hi)
		}
		return grammar.NewExactMember(lo)
	case c >= 'A' && c <= 'Z':
		code := string(p.s.next())
		if r := p.s.peek(); r >= 'a' && r <= 'z' {
			code += string(p.s.next())
		}
		p.skipS()
		mem, err := grammar.NewClassMember(code)
		if err != nil {
			p.raiseValidation(grammar.ErrUnknownClass, code)
		}
		return mem
	}
	p.raise("a set member")
	return nil
}

// character: a quoted single character or an encoded #hex codepoint.
func (p *parser) parseCharacter() rune {
	switch p.s.peek() {
	case '"', '\'':
		str := p.parseString()
		runes := []rune(str)
		if len(runes) != 1 {
			p.raise("a single-character range endpoint")
		}
		return runes[0]
	case '#':
		p.s.next()
		return p.parseHex()
	}
	p.raise("a character")
	return 0
}

// insertion: -"+", s, (string; -"#", hex), s.
func (p *parser) parseInsertion() []grammar.Factor {
	p.s.next()
	p.skipS()
	var text string
	switch p.s.peek() {
	case '"', '\'':
		text = p.parseString()
	case '#':
		p.s.next()
		text = string(p.parseHex())
	default:
		p.raise("a string or #hex after '+'")
	}
	p.skipS()
	return []grammar.Factor{&grammar.Insertion{Text: text}}
}

// string: a "…" or '…' literal; the delimiter doubled inside denotes
// itself; line breaks are not allowed.
func (p *parser) parseString() string {
	delim := p.s.next()
	var b strings.Builder
	for {
		if p.s.eof() {
			p.raise(synErrUnclosedString.Error())
		}
		r := p.s.next()
		if r == delim {
			if p.s.peek() == delim {
				p.s.next()
				b.WriteRune(delim)
				continue
			}
			break
		}
		if r == '\n' || r == '\r' {
			p.s.pos--
			p.raise(synErrLineBreakInString.Error())
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		p.raise("a non-empty string")
	}
	return b.String()
}

func (p *parser) parseHex() rune {
	start := p.s.pos
	for isHexDigit(p.s.peek()) {
		p.s.next()
	}
	if p.s.pos == start {
		p.raise(synErrEmptyHex.Error())
	}
	v, err := strconv.ParseInt(string(p.s.src[start:p.s.pos]), 16, 64)
	if err != nil || v > 0x10FFFF {
		p.s.pos = start
		p.raise(synErrHexOutOfRange.Error())
	}
	return rune(v)
}

// name: namestart, namefollower*. A '.' is taken as part of the name only
// when a name character other than '.' follows, so a trailing '.' remains
// the rule terminator.
func (p *parser) parseName() string {
	if !isNameStart(p.s.peek()) {
		p.raise("a name")
	}
	var b strings.Builder
	b.WriteRune(p.s.next())
	for {
		r := p.s.peek()
		if r == '.' {
			if !isNameFollower(p.s.peekAt(1)) || p.s.peekAt(1) == '.' {
				break
			}
			b.WriteRune(p.s.next())
			continue
		}
		if !isNameFollower(r) {
			break
		}
		b.WriteRune(p.s.next())
	}
	return b.String()
}

func (p *parser) matchWord(w string) bool {
	save := p.s.pos
	for _, r := range w {
		if !p.s.accept(r) {
			p.s.pos = save
			return false
		}
	}
	if isNameFollower(p.s.peek()) {
		p.s.pos = save
		return false
	}
	return true
}

func (p *parser) skipS() {
	for isWhitespace(p.s.peek()) {
		p.s.next()
	}
}

func (p *parser) skipRS() bool {
	if !isWhitespace(p.s.peek()) {
		return false
	}
	p.skipS()
	return true
}

func isMarkChar(r rune) bool {
	return r == '@' || r == '^' || r == '-'
}

func markOf(r rune) grammar.Mark {
	switch r {
	case '@':
		return grammar.MarkAttribute
	case '^':
		return grammar.MarkUnhide
	case '-':
		return grammar.MarkHidden
	}
	return grammar.MarkNone
}

func tmarkOf(r rune) grammar.TMark {
	switch r {
	case '^':
		return grammar.TMarkUnhide
	case '-':
		return grammar.TMarkHidden
	}
	return grammar.TMarkNone
}
