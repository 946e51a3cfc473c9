package spec

import "strings"

// StripComments removes balanced, arbitrarily nested {…} comments from
// grammar source. Braces inside "…" or '…' string literals are left
// alone, since a quoted brace is data, not a comment delimiter. Each
// stripped codepoint is replaced with a space, except that line breaks
// inside a comment are kept, so that positions (and rows) in later error
// reports still refer to the original source.
func StripComments(src string) (string, error) {
	runes := []rune(src)
	var b strings.Builder
	depth := 0
	openPos := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case depth == 0 && (r == '"' || r == '\''):
			// copy the literal through, honoring the doubled-delimiter
			// escape; an unclosed string is the parser's error to report
			delim := r
			b.WriteRune(r)
			for i++; i < len(runes); i++ {
				b.WriteRune(runes[i])
				if runes[i] == delim {
					if i+1 < len(runes) && runes[i+1] == delim {
						i++
						b.WriteRune(delim)
						continue
					}
					break
				}
				if runes[i] == '\n' || runes[i] == '\r' {
					break
				}
			}
		case r == '{':
			if depth == 0 {
				openPos = i
			}
			depth++
			b.WriteRune(' ')
		case r == '}' && depth > 0:
			depth--
			b.WriteRune(' ')
		case depth > 0:
			if r == '\n' {
				b.WriteRune('\n')
			} else {
				b.WriteRune(' ')
			}
		default:
			b.WriteRune(r)
		}
	}
	if depth > 0 {
		s := newScanner(src)
		row, col := s.rowCol(openPos)
		return "", &GrammarParseError{
			Pos:      openPos,
			Row:      row,
			Col:      col,
			Expected: "a matching '}'",
			Found:    "<EOF>",
		}
	}
	return b.String(), nil
}
