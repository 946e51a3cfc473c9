package driver

import (
	"fmt"
	"io"
	"strings"

	"github.com/mdubinko/earleybird/grammar"
)

type NodeKind int

const (
	KindNode NodeKind = iota
	KindLeaf
	KindInsertion
)

// Node is one piece of a derivation: an element-ish node for a rule
// instance, a leaf holding consumed codepoints, or an insertion holding
// injected text. The tree owns its children and is built fresh per parse.
type Node struct {
	Kind     NodeKind
	Name     string
	Mark     grammar.Mark
	TMark    grammar.TMark
	Text     string
	Children []*Node
}

// treeBuilder extracts one derivation from the chart by following
// backlinks depth-first. Every choice among competing backlinks is made
// by a fixed tie-break, so the chosen derivation is identical across runs
// and platforms.
type treeBuilder struct {
	p          *Parser
	c          *chart
	inProgress map[grammar.Symbol]bool
	building   map[itemID]bool
}

func (p *Parser) buildTree(c *chart, final itemID) *Node {
	tb := &treeBuilder{
		p:          p,
		c:          c,
		inProgress: map[grammar.Symbol]bool{},
		building:   map[itemID]bool{},
	}
	return tb.nodeFor(final, grammar.MarkNone)
}

// nodeFor reconstructs the rule instance completed by item id. refMark is
// the mark on the reference that produced it; the node's effective mark
// combines it with the rule's own mark.
func (tb *treeBuilder) nodeFor(id itemID, refMark grammar.Mark) *Node {
	it := tb.c.items[id]
	r := tb.p.cg.Rule(it.rule)
	tb.building[id] = true
	defer delete(tb.building, id)
	return &Node{
		Kind:     KindNode,
		Name:     tb.p.cg.RuleName(it.rule),
		Mark:     grammar.EffectiveMark(r.Mark, refMark),
		Children: tb.childrenOf(id),
	}
}

// childrenOf walks an item's backlink chain from the dot backwards to the
// alternative's start, emitting one child per advanced-over factor.
func (tb *treeBuilder) childrenOf(id itemID) []*Node {
	var rev []*Node
	cur := id
	for tb.c.items[cur].dot > 0 {
		it := tb.c.items[cur]
		l, ok := tb.chooseLink(it.links)
		if !ok {
			break
		}
		switch l.kind {
		case backTerm:
			rev = append(rev, &Node{Kind: KindLeaf, TMark: l.tmark, Text: string(l.ch)})
		case backInsert:
			rev = append(rev, &Node{Kind: KindInsertion, Text: l.text})
		case backChild:
			rev = append(rev, tb.nodeFor(l.child, tb.refMarkAt(it)))
		case backNull:
			rev = append(rev, tb.deriveEmpty(l.sym, tb.refMarkAt(it)))
		}
		cur = l.prev
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// refMarkAt returns the mark on the nonterminal reference the item just
// advanced over.
func (tb *treeBuilder) refMarkAt(it item) grammar.Mark {
	alt := tb.p.cg.Rule(it.rule).Alts[it.alt]
	if nt, ok := alt.Factors[it.dot-1].(*grammar.NonTerm); ok {
		return nt.Mark
	}
	return grammar.MarkNone
}

// chooseLink applies the tie-break across competing backlinks: prefer the
// child from the earlier alternative of its rule, then the longer child
// match, then non-null over null, and finally creation order. Links whose
// child is already on the reconstruction stack are cyclic zero-width
// derivations and are never chosen.
func (tb *treeBuilder) chooseLink(links []backlink) (backlink, bool) {
	// A null link always has a companion child link for the same empty
	// completion, so only non-null links count as distinct derivations.
	derivations := 0
	for _, l := range links {
		if l.kind != backNull {
			derivations++
		}
	}
	if derivations > 1 {
		tb.p.ambiguous = true
	}
	var best backlink
	found := false
	for _, l := range links {
		if l.kind == backChild && tb.building[l.child] {
			continue
		}
		if !found || tb.betterLink(l, best) {
			best = l
			found = true
		}
	}
	return best, found
}

func (tb *treeBuilder) betterLink(a, b backlink) bool {
	if a.kind != b.kind {
		return a.kind == backChild && b.kind == backNull
	}
	if a.kind != backChild {
		return false
	}
	ca := tb.c.items[a.child]
	cb := tb.c.items[b.child]
	if ca.alt != cb.alt {
		return ca.alt < cb.alt
	}
	// same end column, so the earlier origin is the longer match
	if ca.origin != cb.origin {
		return ca.origin < cb.origin
	}
	return false
}

// deriveEmpty materializes the empty derivation of a nullable rule that
// prediction advanced over eagerly. Insertions inside it still emit. The
// first nullable alternative wins; a nullable cycle bottoms out as an
// empty node.
func (tb *treeBuilder) deriveEmpty(sym grammar.Symbol, refMark grammar.Mark) *Node {
	cg := tb.p.cg
	r := cg.Rule(sym)
	node := &Node{
		Kind: KindNode,
		Name: cg.RuleName(sym),
		Mark: grammar.EffectiveMark(r.Mark, refMark),
	}
	if tb.inProgress[sym] {
		return node
	}
	tb.inProgress[sym] = true
	defer delete(tb.inProgress, sym)
	for _, alt := range r.Alts {
		if !cg.NullableAlt(alt) {
			continue
		}
		for _, f := range alt.Factors {
			switch f := f.(type) {
			case *grammar.Insertion:
				node.Children = append(node.Children, &Node{Kind: KindInsertion, Text: f.Text})
			case *grammar.NonTerm:
				node.Children = append(node.Children, tb.deriveEmpty(f.Name, f.Mark))
			}
		}
		break
	}
	return node
}

// TextContent returns every character the subtree contributes as data,
// in document order: emitting leaves and insertions, through any node
// structure.
func (n *Node) TextContent() string {
	var b strings.Builder
	var walk func(n *Node)
	walk = func(n *Node) {
		switch n.Kind {
		case KindLeaf:
			if n.TMark != grammar.TMarkHidden {
				b.WriteString(n.Text)
			}
		case KindInsertion:
			b.WriteString(n.Text)
		case KindNode:
			for _, ch := range n.Children {
				walk(ch)
			}
		}
	}
	walk(n)
	return b.String()
}

// Elements returns the node children with hidden nodes spliced away, the
// same view the serializer works from. Attribute-marked nodes are
// included; leaves are not.
func (n *Node) Elements() []*Node {
	var out []*Node
	var walk func(children []*Node)
	walk = func(children []*Node) {
		for _, ch := range children {
			if ch.Kind != KindNode {
				continue
			}
			if ch.Mark == grammar.MarkHidden {
				walk(ch.Children)
				continue
			}
			out = append(out, ch)
		}
	}
	walk(n.Children)
	return out
}

// PrintTree writes a derivation in an indented outline, mainly for
// debugging grammars.
func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	switch node.Kind {
	case KindLeaf:
		fmt.Fprintf(w, "%v%v%#v\n", ruledLine, node.TMark, node.Text)
	case KindInsertion:
		fmt.Fprintf(w, "%v+%#v\n", ruledLine, node.Text)
	default:
		fmt.Fprintf(w, "%v%v%v\n", ruledLine, node.Mark, node.Name)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}
