package spec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mdubinko/earleybird/driver"
	"github.com/mdubinko/earleybird/grammar"
)

// ParseWithBootstrap parses grammar text the reflexive way: the Earley
// engine recognizes it under the bootstrap ixml-of-ixml grammar, and the
// derivation is converted back into a grammar IR. The hand parser in
// Parse is the primary path; this one exists to close the loop and to
// cross-check it.
func ParseWithBootstrap(src string) (*grammar.Grammar, error) {
	cg, err := grammar.Compile(Bootstrap())
	if err != nil {
		return nil, err
	}
	p, err := driver.NewParser(cg)
	if err != nil {
		return nil, err
	}
	tree, err := p.ParseTree(src)
	if err != nil {
		if pf, ok := err.(*driver.ParseFailure); ok {
			s := newScanner(src)
			row, col := s.rowCol(pf.FurthestPos)
			return nil, &GrammarParseError{
				Pos:      pf.FurthestPos,
				Row:      row,
				Col:      col,
				Expected: strings.Join(pf.Expected, ", "),
				Found:    pf.Actual,
			}
		}
		return nil, err
	}
	return GrammarFromDerivation(tree)
}

// GrammarFromDerivation converts the derivation of a grammar document,
// parsed under the bootstrap grammar, into a grammar IR. Comment elements
// may appear anywhere spacing is allowed and are skipped throughout.
func GrammarFromDerivation(root *driver.Node) (*grammar.Grammar, error) {
	if root.Name != "ixml" {
		return nil, fmt.Errorf("not an ixml derivation: root is %q", root.Name)
	}
	c := &converter{g: grammar.NewGrammar(), seen: map[string]struct{}{}}
	for _, el := range root.Elements() {
		switch el.Name {
		case "comment":
			continue
		case "prolog":
			for _, v := range el.Elements() {
				if v.Name == "version" {
					c.g.Version, _ = attrOf(v, "string")
				}
			}
		case "rule":
			if err := c.convertRule(el); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unexpected element %q in ixml derivation", el.Name)
		}
	}
	if len(c.g.Rules()) == 0 {
		return nil, grammar.ErrNoRule
	}
	return c.g, nil
}

type converter struct {
	g    *grammar.Grammar
	seen map[string]struct{}
}

func (c *converter) convertRule(el *driver.Node) error {
	name, ok := attrOf(el, "name")
	if !ok {
		return fmt.Errorf("a rule element has no name")
	}
	if _, dup := c.seen[name]; dup {
		return &grammar.ValidationError{Cause: grammar.ErrDuplicateRule, Name: name}
	}
	c.seen[name] = struct{}{}

	markText, _ := attrOf(el, "mark")
	mark, err := markFromText(markText)
	if err != nil {
		return err
	}

	var alts []*grammar.Alt
	for _, ch := range el.Elements() {
		switch ch.Name {
		case "comment", "mark", "name":
			continue
		case "alt":
			alt, err := c.convertAlt(ch)
			if err != nil {
				return err
			}
			alts = append(alts, alt)
		default:
			return fmt.Errorf("unexpected element %q in rule %v", ch.Name, name)
		}
	}
	c.g.Define(mark, name, alts...)
	return nil
}

func (c *converter) convertAlt(el *driver.Node) (*grammar.Alt, error) {
	alt := &grammar.Alt{}
	for _, ch := range el.Elements() {
		if ch.Name == "comment" {
			continue
		}
		fs, err := c.convertTerm(ch)
		if err != nil {
			return nil, err
		}
		alt.Factors = append(alt.Factors, fs...)
	}
	return alt, nil
}

func (c *converter) convertTerm(el *driver.Node) ([]grammar.Factor, error) {
	switch el.Name {
	case "nonterminal":
		name, ok := attrOf(el, "name")
		if !ok {
			return nil, fmt.Errorf("a nonterminal element has no name")
		}
		markText, _ := attrOf(el, "mark")
		mark, err := markFromText(markText)
		if err != nil {
			return nil, err
		}
		return []grammar.Factor{&grammar.NonTerm{Mark: mark, Name: c.g.Intern(name)}}, nil

	case "literal":
		tmark, err := tmarkFromText(el)
		if err != nil {
			return nil, err
		}
		if str, ok := attrOf(el, "string"); ok {
			var fs []grammar.Factor
			for _, r := range str {
				fs = append(fs, &grammar.Terminal{TMark: tmark, Matcher: grammar.NewExactMatcher(r)})
			}
			return fs, nil
		}
		if hex, ok := attrOf(el, "hex"); ok {
			r, err := decodeHex(hex)
			if err != nil {
				return nil, err
			}
			return []grammar.Factor{&grammar.Terminal{TMark: tmark, Matcher: grammar.NewExactMatcher(r)}}, nil
		}
		return nil, fmt.Errorf("a literal element has neither string nor hex")

	case "inclusion", "exclusion":
		tmark, err := tmarkFromText(el)
		if err != nil {
			return nil, err
		}
		m := &grammar.CharMatcher{Exclude: el.Name == "exclusion"}
		for _, ch := range el.Elements() {
			switch ch.Name {
			case "comment", "tmark":
				continue
			case "member":
				mem, err := c.convertMember(ch)
				if err != nil {
					return nil, err
				}
				m.Members = append(m.Members, mem)
			default:
				return nil, fmt.Errorf("unexpected element %q in a character set", ch.Name)
			}
		}
		return []grammar.Factor{&grammar.Terminal{TMark: tmark, Matcher: m}}, nil

	case "insertion":
		if str, ok := attrOf(el, "string"); ok {
			return []grammar.Factor{&grammar.Insertion{Text: str}}, nil
		}
		if hex, ok := attrOf(el, "hex"); ok {
			r, err := decodeHex(hex)
			if err != nil {
				return nil, err
			}
			return []grammar.Factor{&grammar.Insertion{Text: string(r)}}, nil
		}
		return nil, fmt.Errorf("an insertion element has neither string nor hex")

	case "alts":
		var alts []*grammar.Alt
		for _, ch := range el.Elements() {
			if ch.Name == "comment" {
				continue
			}
			alt, err := c.convertAlt(ch)
			if err != nil {
				return nil, err
			}
			alts = append(alts, alt)
		}
		return []grammar.Factor{&grammar.Group{Alts: alts}}, nil

	case "option":
		inner, err := c.convertInner(el)
		if err != nil {
			return nil, err
		}
		return []grammar.Factor{&grammar.Option{Inner: inner}}, nil

	case "repeat0", "repeat1":
		inner, err := c.convertInner(el)
		if err != nil {
			return nil, err
		}
		var sep grammar.Factor
		for _, ch := range el.Elements() {
			if ch.Name == "sep" {
				sep, err = c.convertInner(ch)
				if err != nil {
					return nil, err
				}
			}
		}
		if el.Name == "repeat0" {
			return []grammar.Factor{&grammar.Repeat0{Inner: inner, Sep: sep}}, nil
		}
		return []grammar.Factor{&grammar.Repeat1{Inner: inner, Sep: sep}}, nil
	}
	return nil, fmt.Errorf("unexpected element %q in an alternative", el.Name)
}

// convertInner converts the single factor inside an option, a repeat, or
// a sep element, wrapping multi-factor literals as one unit.
func (c *converter) convertInner(el *driver.Node) (grammar.Factor, error) {
	for _, ch := range el.Elements() {
		switch ch.Name {
		case "comment", "sep", "tmark", "mark", "name", "string", "hex":
			continue
		}
		fs, err := c.convertTerm(ch)
		if err != nil {
			return nil, err
		}
		return unit(fs), nil
	}
	return nil, fmt.Errorf("element %q has no inner factor", el.Name)
}

func (c *converter) convertMember(el *driver.Node) (*grammar.SetMember, error) {
	if from, ok := attrOf(el, "from"); ok {
		to, ok := attrOf(el, "to")
		if !ok {
			return nil, fmt.Errorf("a range member has no upper endpoint")
		}
		lo, err := decodeEndpoint(from)
		if err != nil {
			return nil, err
		}
		hi, err := decodeEndpoint(to)
		if err != nil {
			return nil, err
		}
		return grammar.NewRangeMember(lo, hi), nil
	}
	if str, ok := attrOf(el, "string"); ok {
		if runes := []rune(str); len(runes) == 1 {
			return grammar.NewExactMember(runes[0]), nil
		}
		return grammar.NewOneOfMember(str), nil
	}
	if hex, ok := attrOf(el, "hex"); ok {
		r, err := decodeHex(hex)
		if err != nil {
			return nil, err
		}
		return grammar.NewExactMember(r), nil
	}
	if code, ok := attrOf(el, "code"); ok {
		mem, err := grammar.NewClassMember(code)
		if err != nil {
			return nil, &grammar.ValidationError{Cause: grammar.ErrUnknownClass, Name: code}
		}
		return mem, nil
	}
	return nil, fmt.Errorf("a member element has no recognized content")
}

// attrOf finds an attribute-marked child element by name and returns its
// text content.
func attrOf(n *driver.Node, name string) (string, bool) {
	for _, ch := range n.Elements() {
		if ch.Mark == grammar.MarkAttribute && ch.Name == name {
			return ch.TextContent(), true
		}
	}
	return "", false
}

func markFromText(s string) (grammar.Mark, error) {
	switch s {
	case "":
		return grammar.MarkNone, nil
	case "@":
		return grammar.MarkAttribute, nil
	case "^":
		return grammar.MarkUnhide, nil
	case "-":
		return grammar.MarkHidden, nil
	}
	return grammar.MarkNone, fmt.Errorf("invalid mark %q", s)
}

func tmarkFromText(el *driver.Node) (grammar.TMark, error) {
	s, ok := attrOf(el, "tmark")
	if !ok {
		return grammar.TMarkNone, nil
	}
	switch s {
	case "^":
		return grammar.TMarkUnhide, nil
	case "-":
		return grammar.TMarkHidden, nil
	}
	return grammar.TMarkNone, fmt.Errorf("invalid tmark %q", s)
}

func decodeEndpoint(s string) (rune, error) {
	if strings.HasPrefix(s, "#") {
		return decodeHex(s[1:])
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("a range endpoint must be a single character, got %q", s)
	}
	return runes[0], nil
}

func decodeHex(s string) (rune, error) {
	v, err := strconv.ParseInt(s, 16, 64)
	if err != nil || v > 0x10FFFF {
		return 0, fmt.Errorf("invalid encoded codepoint #%v", s)
	}
	return rune(v), nil
}

// unit wraps an expanded factor list as one factor for contexts that
// repeat or optionalize it as a whole.
func unit(fs []grammar.Factor) grammar.Factor {
	if len(fs) == 1 {
		return fs[0]
	}
	return &grammar.Group{Alts: []*grammar.Alt{{Factors: fs}}}
}
