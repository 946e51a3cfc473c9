package driver

import (
	"fmt"
	"strings"

	"github.com/mdubinko/earleybird/grammar"
	"github.com/sirupsen/logrus"
)

// ParseFailure reports that the input is not a sentence of the grammar:
// the furthest position the chart reached, the terminals that would have
// allowed progress there, and what the input actually held.
type ParseFailure struct {
	FurthestPos int
	Expected    []string
	Actual      string
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("parse failed at position %v: expected %v, found %v",
		e.FurthestPos, strings.Join(e.Expected, ", "), e.Actual)
}

// recognize builds the Earley chart over input and returns the chart and
// the completed start item covering the whole input. Columns are
// processed in order; within a column items are processed in insertion
// order and may grow the column while it is being worked.
func (p *Parser) recognize(input []rune) (*chart, itemID, error) {
	cg := p.cg
	n := len(input)
	c := newChart(n)

	start := cg.Start()
	for ai := range cg.Rule(start).Alts {
		c.add(0, itemKey{rule: start, alt: ai, origin: 0})
	}

	for k := 0; k <= n; k++ {
		col := &c.cols[k]
		for i := 0; i < len(col.items); i++ {
			id := col.items[i]
			it := c.items[id]
			r := cg.Rule(it.rule)
			alt := r.Alts[it.alt]

			if it.dot == len(alt.Factors) {
				p.complete(c, k, id, it)
				continue
			}

			switch f := alt.Factors[it.dot].(type) {
			case *grammar.NonTerm:
				p.predict(c, k, id, it, f)
			case *grammar.Terminal:
				p.scan(c, k, id, it, f, input)
			case *grammar.Insertion:
				adv, _ := c.add(k, itemKey{rule: it.rule, alt: it.alt, dot: it.dot + 1, origin: it.origin})
				c.link(adv, backlink{kind: backInsert, prev: id, text: f.Text})
			}
		}
	}

	final, ok := p.acceptingItem(c, n)
	if ok {
		return c, final, nil
	}
	return nil, itemNil, p.failure(c, input)
}

func (p *Parser) predict(c *chart, k int, id itemID, it item, f *grammar.NonTerm) {
	cg := p.cg
	p.trace.event(opPredictor, k, logrus.Fields{
		"rule":   cg.RuleName(it.rule),
		"alt":    it.alt,
		"target": cg.RuleName(f.Name),
	})
	for ai := range cg.Rule(f.Name).Alts {
		c.add(k, itemKey{rule: f.Name, alt: ai, origin: k})
	}
	// A nullable prediction also advances the predicting item in place,
	// otherwise empty derivations are lost to same-column completion.
	if cg.Nullable(f.Name) {
		adv, _ := c.add(k, itemKey{rule: it.rule, alt: it.alt, dot: it.dot + 1, origin: it.origin})
		c.link(adv, backlink{kind: backNull, prev: id, sym: f.Name})
	}
}

func (p *Parser) scan(c *chart, k int, id itemID, it item, f *grammar.Terminal, input []rune) {
	cg := p.cg
	p.trace.event(opScanner, k, logrus.Fields{
		"rule":     cg.RuleName(it.rule),
		"alt":      it.alt,
		"expected": f.Matcher.String(),
	})
	if k >= len(input) || !f.Matcher.Accept(input[k]) {
		return
	}
	p.trace.event(opScannerMatch, k, logrus.Fields{
		"rule": cg.RuleName(it.rule),
		"alt":  it.alt,
		"char": string(input[k]),
	})
	adv, _ := c.add(k+1, itemKey{rule: it.rule, alt: it.alt, dot: it.dot + 1, origin: it.origin})
	c.link(adv, backlink{kind: backTerm, prev: id, ch: input[k], tmark: f.TMark})
}

func (p *Parser) complete(c *chart, k int, id itemID, it item) {
	cg := p.cg
	p.trace.event(opCompleter, k, logrus.Fields{
		"rule":   cg.RuleName(it.rule),
		"alt":    it.alt,
		"origin": it.origin,
	})
	parents := &c.cols[it.origin]
	for i := 0; i < len(parents.items); i++ {
		pid := parents.items[i]
		pit := c.items[pid]
		r := cg.Rule(pit.rule)
		alt := r.Alts[pit.alt]
		if pit.dot >= len(alt.Factors) {
			continue
		}
		nt, ok := alt.Factors[pit.dot].(*grammar.NonTerm)
		if !ok || nt.Name != it.rule {
			continue
		}
		adv, _ := c.add(k, itemKey{rule: pit.rule, alt: pit.alt, dot: pit.dot + 1, origin: pit.origin})
		c.link(adv, backlink{kind: backChild, prev: pid, child: id})
	}
}

// acceptingItem finds a completed start item spanning the whole input,
// preferring the earliest alternative.
func (p *Parser) acceptingItem(c *chart, n int) (itemID, bool) {
	cg := p.cg
	best := itemNil
	for _, id := range c.cols[n].items {
		it := c.items[id]
		if it.rule != cg.Start() || it.origin != 0 {
			continue
		}
		if it.dot != len(cg.Rule(it.rule).Alts[it.alt].Factors) {
			continue
		}
		if best == itemNil {
			best = id
			continue
		}
		p.ambiguous = true
		if it.alt < c.items[best].alt {
			best = id
		}
	}
	return best, best != itemNil
}

func (p *Parser) failure(c *chart, input []rune) *ParseFailure {
	cg := p.cg
	k := c.furthest()
	var expected []string
	seen := map[string]struct{}{}
	for _, id := range c.cols[k].items {
		it := c.items[id]
		alt := cg.Rule(it.rule).Alts[it.alt]
		if it.dot >= len(alt.Factors) {
			continue
		}
		t, ok := alt.Factors[it.dot].(*grammar.Terminal)
		if !ok {
			continue
		}
		desc := t.Matcher.String()
		if _, dup := seen[desc]; dup {
			continue
		}
		seen[desc] = struct{}{}
		expected = append(expected, desc)
	}
	actual := "<EOF>"
	if k < len(input) {
		actual = fmt.Sprintf("%q", input[k])
	}
	return &ParseFailure{
		FurthestPos: k,
		Expected:    expected,
		Actual:      actual,
	}
}
