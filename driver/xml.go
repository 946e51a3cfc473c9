package driver

import (
	"fmt"
	"strings"

	"github.com/mdubinko/earleybird/grammar"
)

// SerializationError reports a derivation that attaches two attributes of
// the same name to one element.
type SerializationError struct {
	Attr string
	Path string
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("duplicate attribute %q on element %v", e.Attr, e.Path)
}

type xmlAttr struct {
	name  string
	value string
}

// contentItem is one ordered piece of an element's content: a text chunk
// or a child element. Attributes are collected separately.
type contentItem struct {
	text string
	elem *Node
}

// serializeXML renders a derivation as an XML fragment with a single root
// element. Marks drive the shape: hidden nodes splice their children,
// attribute nodes become attributes on the nearest element ancestor,
// hidden terminals vanish, and insertions emit verbatim text.
func serializeXML(root *Node) (string, error) {
	if root.Mark == grammar.MarkAttribute {
		return "", fmt.Errorf("the root %q serializes as an attribute, which has no host element", root.Name)
	}
	var b strings.Builder
	if err := writeElement(&b, root, "/"+root.Name); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeElement(b *strings.Builder, n *Node, path string) error {
	attrs, items, err := collectContent(n, path)
	if err != nil {
		return err
	}

	b.WriteString("<")
	b.WriteString(n.Name)
	for _, a := range attrs {
		b.WriteString(" ")
		b.WriteString(a.name)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.value))
		b.WriteString(`"`)
	}
	if len(items) == 0 {
		b.WriteString("/>")
		return nil
	}
	b.WriteString(">")
	for _, it := range items {
		if it.elem != nil {
			if err := writeElement(b, it.elem, path+"/"+it.elem.Name); err != nil {
				return err
			}
			continue
		}
		b.WriteString(escapeText(it.text))
	}
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteString(">")
	return nil
}

// collectContent flattens a node's children into attributes and ordered
// content. Hidden children are spliced in place, so their own attribute
// grandchildren attach to this element.
func collectContent(n *Node, path string) ([]xmlAttr, []contentItem, error) {
	var attrs []xmlAttr
	var items []contentItem
	seen := map[string]struct{}{}

	var walk func(children []*Node) error
	walk = func(children []*Node) error {
		for _, ch := range children {
			switch ch.Kind {
			case KindLeaf:
				if ch.TMark != grammar.TMarkHidden {
					items = append(items, contentItem{text: ch.Text})
				}
			case KindInsertion:
				items = append(items, contentItem{text: ch.Text})
			case KindNode:
				switch ch.Mark {
				case grammar.MarkHidden:
					if err := walk(ch.Children); err != nil {
						return err
					}
				case grammar.MarkAttribute:
					if _, dup := seen[ch.Name]; dup {
						return &SerializationError{Attr: ch.Name, Path: path}
					}
					seen[ch.Name] = struct{}{}
					attrs = append(attrs, xmlAttr{name: ch.Name, value: ch.TextContent()})
				default:
					items = append(items, contentItem{elem: ch})
				}
			}
		}
		return nil
	}
	if err := walk(n.Children); err != nil {
		return nil, nil, err
	}
	return attrs, items, nil
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
