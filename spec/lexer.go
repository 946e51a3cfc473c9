package spec

import (
	"fmt"

	"github.com/mdubinko/earleybird/ucd"
)

const eofRune = rune(-1)

// scanner walks grammar source as a sequence of codepoints. ixml is
// scannerless, so there is no token layer; the parser reads characters
// directly and this type only tracks position.
type scanner struct {
	src []rune
	pos int
}

func newScanner(src string) *scanner {
	return &scanner{src: []rune(src)}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() rune {
	if s.eof() {
		return eofRune
	}
	return s.src[s.pos]
}

func (s *scanner) peekAt(off int) rune {
	if s.pos+off >= len(s.src) {
		return eofRune
	}
	return s.src[s.pos+off]
}

func (s *scanner) next() rune {
	r := s.peek()
	if r != eofRune {
		s.pos++
	}
	return r
}

func (s *scanner) accept(r rune) bool {
	if s.peek() == r {
		s.pos++
		return true
	}
	return false
}

// rowCol converts a codepoint offset to 1-based row and column.
func (s *scanner) rowCol(pos int) (int, int) {
	row, col := 1, 1
	for i := 0; i < pos && i < len(s.src); i++ {
		if s.src[i] == '\n' {
			row++
			col = 1
		} else {
			col++
		}
	}
	return row, col
}

func (s *scanner) found() string {
	if s.eof() {
		return "<EOF>"
	}
	return fmt.Sprintf("%q", s.peek())
}

func isWhitespace(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' || ucd.Is("Zs", r)
}

func isNameStart(r rune) bool {
	return r == '_' || ucd.Is("L", r)
}

func isNameFollower(r rune) bool {
	switch r {
	case '-', '.', '·', '‿', '⁀':
		return true
	}
	return isNameStart(r) || ucd.Is("Nd", r) || ucd.Is("Mn", r)
}

func isHexDigit(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
}
