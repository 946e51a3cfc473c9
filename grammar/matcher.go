package grammar

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mdubinko/earleybird/ucd"
)

type memberKind int

const (
	memberExact memberKind = iota
	memberOneOf
	memberRange
	memberClass
)

// SetMember is one entry of a character set. A string member matches any
// one of its codepoints; a range matches by codepoint order; a class
// matches a Unicode general category.
type SetMember struct {
	kind  memberKind
	lo    rune
	hi    rune
	chars string
	class string
	table *unicode.RangeTable
}

func NewExactMember(r rune) *SetMember {
	return &SetMember{kind: memberExact, lo: r}
}

func NewOneOfMember(chars string) *SetMember {
	return &SetMember{kind: memberOneOf, chars: chars}
}

func NewRangeMember(lo, hi rune) *SetMember {
	return &SetMember{kind: memberRange, lo: lo, hi: hi}
}

func NewClassMember(code string) (*SetMember, error) {
	t, ok := ucd.Category(code)
	if !ok {
		return nil, fmt.Errorf("unknown Unicode class code: %v", code)
	}
	return &SetMember{kind: memberClass, class: code, table: t}, nil
}

func (m *SetMember) Accept(r rune) bool {
	switch m.kind {
	case memberExact:
		return r == m.lo
	case memberOneOf:
		return strings.ContainsRune(m.chars, r)
	case memberRange:
		return r >= m.lo && r <= m.hi
	case memberClass:
		return unicode.Is(m.table, r)
	}
	return false
}

func (m *SetMember) String() string {
	switch m.kind {
	case memberExact:
		return quoteChar(m.lo)
	case memberOneOf:
		return quoteString(m.chars)
	case memberRange:
		return fmt.Sprintf("%v-%v", quoteChar(m.lo), quoteChar(m.hi))
	case memberClass:
		return m.class
	}
	return ""
}

func (m *SetMember) equal(o *SetMember) bool {
	return m.kind == o.kind && m.lo == o.lo && m.hi == o.hi &&
		m.chars == o.chars && m.class == o.class
}

// CharMatcher matches exactly one codepoint: the union of its members,
// negated when Exclude is set.
type CharMatcher struct {
	Members []*SetMember
	Exclude bool
}

func NewExactMatcher(r rune) *CharMatcher {
	return &CharMatcher{Members: []*SetMember{NewExactMember(r)}}
}

func (m *CharMatcher) Accept(r rune) bool {
	for _, mem := range m.Members {
		if mem.Accept(r) {
			return !m.Exclude
		}
	}
	return m.Exclude
}

func (m *CharMatcher) Equal(o *CharMatcher) bool {
	if m.Exclude != o.Exclude || len(m.Members) != len(o.Members) {
		return false
	}
	for i, mem := range m.Members {
		if !mem.equal(o.Members[i]) {
			return false
		}
	}
	return true
}

// String renders the matcher in grammar notation. It is used for canonical
// printing and for expected-terminal descriptions in parse failures.
func (m *CharMatcher) String() string {
	if !m.Exclude && len(m.Members) == 1 && m.Members[0].kind == memberExact {
		return quoteChar(m.Members[0].lo)
	}
	var b strings.Builder
	if m.Exclude {
		b.WriteString("~")
	}
	b.WriteString("[")
	for i, mem := range m.Members {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(mem.String())
	}
	b.WriteString("]")
	return b.String()
}

func quoteChar(r rune) string {
	if r == '\t' || r == '\n' || r == '\r' || unicode.Is(unicode.C, r) {
		return fmt.Sprintf("#%x", r)
	}
	return quoteString(string(r))
}

func quoteString(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
