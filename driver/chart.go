package driver

import "github.com/mdubinko/earleybird/grammar"

type itemID int32

const itemNil = itemID(-1)

type backKind int

const (
	backTerm backKind = iota
	backChild
	backInsert
	backNull
)

// backlink records how an item's dot advanced over its last factor: prev
// is the item with the dot one position earlier, and the remaining fields
// describe the cause. Multiple backlinks on one item encode ambiguity.
type backlink struct {
	kind  backKind
	prev  itemID
	child itemID // backChild: the completed child item
	ch    rune   // backTerm: the consumed codepoint
	tmark grammar.TMark
	text  string         // backInsert
	sym   grammar.Symbol // backNull: the nullable nonterminal skipped over
}

type item struct {
	rule   grammar.Symbol
	alt    int
	dot    int
	origin int
	end    int
	links  []backlink
}

type itemKey struct {
	rule   grammar.Symbol
	alt    int
	dot    int
	origin int
}

// column holds the items ending at one input position: an insertion-order
// slice for deterministic traversal and a dedup index. The index map is
// never iterated, so no map ordering leaks into results.
type column struct {
	items []itemID
	index map[itemKey]itemID
}

type chart struct {
	items []item
	cols  []column
}

func newChart(n int) *chart {
	return &chart{
		cols: make([]column, n+1),
	}
}

func (c *chart) get(id itemID) *item {
	return &c.items[id]
}

// add inserts (key, end=col) unless the column already has it. It returns
// the item id and whether the item is new.
func (c *chart) add(col int, key itemKey) (itemID, bool) {
	cc := &c.cols[col]
	if cc.index == nil {
		cc.index = map[itemKey]itemID{}
	}
	if id, ok := cc.index[key]; ok {
		return id, false
	}
	id := itemID(len(c.items))
	c.items = append(c.items, item{
		rule:   key.rule,
		alt:    key.alt,
		dot:    key.dot,
		origin: key.origin,
		end:    col,
	})
	cc.index[key] = id
	cc.items = append(cc.items, id)
	return id, true
}

// link attaches a backlink, skipping exact duplicates so that re-derived
// advances do not inflate the ambiguity record.
func (c *chart) link(id itemID, l backlink) {
	it := c.get(id)
	for _, have := range it.links {
		if have == l {
			return
		}
	}
	it.links = append(it.links, l)
}

// furthest returns the largest column index holding any item.
func (c *chart) furthest() int {
	for k := len(c.cols) - 1; k >= 0; k-- {
		if len(c.cols[k].items) > 0 {
			return k
		}
	}
	return 0
}
