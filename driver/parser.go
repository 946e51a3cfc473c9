// Package driver runs a compiled grammar over input: an Earley
// recognizer over Unicode codepoints, a derivation-tree builder with a
// deterministic ambiguity tie-break, and a mark-directed XML serializer.
package driver

import (
	"github.com/sirupsen/logrus"

	"github.com/mdubinko/earleybird/grammar"
)

type ParserOption func(p *Parser) error

// Trace installs a structured-event sink for recognizer operations.
// Events fire at TraceTrace level.
func Trace(log logrus.FieldLogger, level TraceLevel) ParserOption {
	return func(p *Parser) error {
		p.trace.log = log
		p.trace.level = level
		return nil
	}
}

// TracePosition restricts trace events to a single input position.
func TracePosition(pos int) ParserOption {
	return func(p *Parser) error {
		p.trace.posFilter = pos
		return nil
	}
}

// Parser parses documents against one compiled grammar. A parse is a pure
// function of the grammar and the input; the chart lives only for the
// duration of one call, so a Parser may be reused across inputs.
type Parser struct {
	cg        *grammar.CompiledGrammar
	trace     *tracer
	ambiguous bool
}

func NewParser(cg *grammar.CompiledGrammar, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		cg:    cg,
		trace: &tracer{posFilter: -1},
	}
	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Parse recognizes input and serializes the chosen derivation as XML.
// A *ParseFailure is returned when the input is not in the language.
func (p *Parser) Parse(input string) (string, error) {
	tree, err := p.ParseTree(input)
	if err != nil {
		return "", err
	}
	return serializeXML(tree)
}

// ParseTree recognizes input and returns the chosen derivation.
func (p *Parser) ParseTree(input string) (*Node, error) {
	p.ambiguous = false
	runes := []rune(input)
	c, final, err := p.recognize(runes)
	if err != nil {
		return nil, err
	}
	return p.buildTree(c, final), nil
}

// Ambiguous reports whether the last parse had more than one derivation.
// The fixed tie-break already chose one; this is informational only.
func (p *Parser) Ambiguous() bool {
	return p.ambiguous
}
