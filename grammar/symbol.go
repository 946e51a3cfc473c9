package grammar

import "fmt"

// Symbol identifies a nonterminal (a rule name). Symbols are stable small
// integers assigned in interning order, so grammars can refer to rules,
// including cyclic references, without owning pointers.
type Symbol int

const SymbolNil = Symbol(-1)

func (s Symbol) Int() int {
	return int(s)
}

func (s Symbol) IsNil() bool {
	return s < 0
}

func (s Symbol) String() string {
	if s.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("n%v", int(s))
}

// SymbolTable interns nonterminal names.
type SymbolTable struct {
	text2Sym map[string]Symbol
	texts    []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		text2Sym: map[string]Symbol{},
	}
}

// Intern returns the symbol for text, registering it on first sight.
func (t *SymbolTable) Intern(text string) Symbol {
	if sym, ok := t.text2Sym[text]; ok {
		return sym
	}
	sym := Symbol(len(t.texts))
	t.text2Sym[text] = sym
	t.texts = append(t.texts, text)
	return sym
}

func (t *SymbolTable) ToSymbol(text string) (Symbol, bool) {
	sym, ok := t.text2Sym[text]
	if !ok {
		return SymbolNil, false
	}
	return sym, true
}

func (t *SymbolTable) ToText(sym Symbol) (string, bool) {
	if sym.IsNil() || sym.Int() >= len(t.texts) {
		return "", false
	}
	return t.texts[sym.Int()], true
}

func (t *SymbolTable) Len() int {
	return len(t.texts)
}
