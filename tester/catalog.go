package tester

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// The invisibleXML test-catalog vocabulary: test-set elements nest and
// name test-case elements; a grammar given at test-set level applies to
// every case under it; inputs and assertions come inline or by href.

type ExpectationKind int

const (
	ExpectXML ExpectationKind = iota
	ExpectNotASentence
	ExpectDynamicError
)

type Expectation struct {
	Kind  ExpectationKind
	XML   string
	Codes []string
}

type TestCase struct {
	Name     string
	Grammar  string
	Input    string
	Expected []Expectation
}

// ReadCatalog parses one test-catalog document. href references are
// resolved relative to the catalog file.
func ReadCatalog(path string) ([]*TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read test catalog %v", path)
	}
	base := filepath.Dir(path)

	dec := xml.NewDecoder(bytes.NewReader(data))
	var cases []*TestCase
	var setNames []string
	var grammarStack []string
	grammar := ""
	var current *TestCase

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			switch tok.Name.Local {
			case "test-set":
				setNames = append(setNames, attr(tok, "name"))
				grammarStack = append(grammarStack, grammar)
			case "ixml-grammar":
				text, err := readText(dec, tok.Name)
				if err != nil {
					return nil, errors.Wrapf(err, "bad inline grammar in %v", path)
				}
				grammar = text
			case "ixml-grammar-ref":
				text, err := readRef(base, attr(tok, "href"))
				if err != nil {
					return nil, err
				}
				grammar = text
				dec.Skip()
			case "test-case":
				name := strings.Join(append(append([]string{}, setNames...), attr(tok, "name")), "/")
				current = &TestCase{Name: name, Grammar: grammar}
			case "test-string":
				text, err := readText(dec, tok.Name)
				if err != nil {
					return nil, errors.Wrapf(err, "bad test-string in %v", path)
				}
				if current != nil {
					current.Input = text
				}
			case "test-string-ref":
				text, err := readRef(base, attr(tok, "href"))
				if err != nil {
					return nil, err
				}
				if current != nil {
					current.Input = text
				}
				dec.Skip()
			case "assert-xml":
				raw, err := captureXML(dec, tok.Name)
				if err != nil {
					return nil, errors.Wrapf(err, "bad assert-xml in %v", path)
				}
				if current != nil {
					current.Expected = append(current.Expected, Expectation{Kind: ExpectXML, XML: raw})
				}
			case "assert-xml-ref":
				text, err := readRef(base, attr(tok, "href"))
				if err != nil {
					return nil, err
				}
				if current != nil {
					current.Expected = append(current.Expected, Expectation{Kind: ExpectXML, XML: text})
				}
				dec.Skip()
			case "assert-not-a-sentence":
				if current != nil {
					current.Expected = append(current.Expected, Expectation{Kind: ExpectNotASentence})
				}
			case "assert-dynamic-error":
				if current != nil {
					current.Expected = append(current.Expected, Expectation{
						Kind:  ExpectDynamicError,
						Codes: strings.Fields(attr(tok, "code")),
					})
				}
			}
		case xml.EndElement:
			switch tok.Name.Local {
			case "test-set":
				setNames = setNames[:len(setNames)-1]
				grammar = grammarStack[len(grammarStack)-1]
				grammarStack = grammarStack[:len(grammarStack)-1]
			case "test-case":
				if current != nil {
					cases = append(cases, current)
					current = nil
				}
			}
		}
	}
	return cases, nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func readRef(base, href string) (string, error) {
	data, err := os.ReadFile(filepath.Join(base, href))
	if err != nil {
		return "", errors.Wrapf(err, "cannot read referenced file %v", href)
	}
	return string(data), nil
}

// readText collects the character data up to the matching end element.
func readText(dec *xml.Decoder, name xml.Name) (string, error) {
	var b strings.Builder
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch tok := tok.(type) {
		case xml.CharData:
			b.Write(tok)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 && tok.Name == name {
				return b.String(), nil
			}
			depth--
		}
	}
}

// captureXML re-renders the element content of an assert-xml element as
// markup, since the expected result is arbitrary XML rather than text.
func captureXML(dec *xml.Decoder, name xml.Name) (string, error) {
	var b strings.Builder
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
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
		case xml.CharData:
			b.WriteString(escapeTextValue(string(tok)))
		case xml.EndElement:
			if depth == 0 && tok.Name == name {
				return b.String(), nil
			}
			depth--
			b.WriteString("</")
			b.WriteString(tok.Name.Local)
			b.WriteString(">")
		}
	}
}
