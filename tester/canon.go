package tester

import (
	"encoding/xml"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Canonicalize puts an XML fragment in a directly comparable form: empty
// elements expanded, attributes sorted by name, entity references
// normalized, comments and processing instructions dropped. Character
// data inside the document is preserved exactly; only whitespace outside
// the root element is ignored. Not namespace-aware beyond dropping xmlns
// pseudo-attributes, which is as much XML as ixml output needs.
func Canonicalize(input string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(input))
	var b strings.Builder
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", errors.Wrap(err, "cannot canonicalize XML")
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			depth++
			b.WriteString("<")
			b.WriteString(tok.Name.Local)
			attrs := append([]xml.Attr{}, tok.Attr...)
			sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name.Local < attrs[j].Name.Local })
			for _, a := range attrs {
				if a.Name.Local == "xmlns" || a.Name.Space == "xmlns" {
					continue
				}
				b.WriteString(" ")
				b.WriteString(a.Name.Local)
				b.WriteString(`="`)
				b.WriteString(escapeAttrValue(a.Value))
				b.WriteString(`"`)
			}
			b.WriteString(">")
		case xml.EndElement:
			depth--
			b.WriteString("</")
			b.WriteString(tok.Name.Local)
			b.WriteString(">")
		case xml.CharData:
			if depth == 0 && strings.TrimSpace(string(tok)) == "" {
				continue
			}
			b.WriteString(escapeTextValue(string(tok)))
		}
	}
	return b.String(), nil
}

func escapeTextValue(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttrValue(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
