// Package tester runs conformance test catalogs against the processor:
// each case loads a grammar, parses an input, and checks the XML (or the
// expected failure) the catalog asserts.
package tester

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/mdubinko/earleybird/driver"
	"github.com/mdubinko/earleybird/grammar"
	"github.com/mdubinko/earleybird/spec"
)

type Outcome string

const (
	OutcomePass         Outcome = "pass"
	OutcomeFail         Outcome = "fail"
	OutcomeGrammarError Outcome = "grammar_error"
	OutcomeParseError   Outcome = "parse_error"
)

type TestResult struct {
	Name    string
	Outcome Outcome
	Error   error
	Diff    string
}

func (r *TestResult) String() string {
	if r.Outcome == OutcomePass {
		return fmt.Sprintf("Passed %v", r.Name)
	}
	const indent = "    "
	msg := fmt.Sprintf("Failed %v (%v)", r.Name, r.Outcome)
	if r.Error != nil {
		errLines := strings.Split(r.Error.Error(), "\n")
		msg = fmt.Sprintf("%v:\n%v%v", msg, indent, strings.Join(errLines, "\n"+indent))
	}
	if r.Diff != "" {
		diffLines := strings.Split(r.Diff, "\n")
		msg = fmt.Sprintf("%v\n%vdiff (expected vs actual):\n%v%v",
			msg, indent, indent+indent, strings.Join(diffLines, "\n"+indent+indent))
	}
	return msg
}

type Tester struct {
	Cases []*TestCase
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runCase(c))
	}
	return rs
}

func runCase(c *TestCase) *TestResult {
	g, err := spec.Parse(c.Grammar)
	if err != nil {
		return errorResult(c, OutcomeGrammarError, err)
	}
	cg, err := grammar.Compile(g)
	if err != nil {
		return errorResult(c, OutcomeGrammarError, err)
	}
	p, err := driver.NewParser(cg)
	if err != nil {
		return errorResult(c, OutcomeGrammarError, err)
	}

	out, err := p.Parse(c.Input)
	if err != nil {
		if _, notSentence := err.(*driver.ParseFailure); notSentence {
			if expects(c, ExpectNotASentence) {
				return &TestResult{Name: c.Name, Outcome: OutcomePass}
			}
			return errorResult(c, OutcomeParseError, err)
		}
		if expects(c, ExpectDynamicError) {
			return &TestResult{Name: c.Name, Outcome: OutcomePass}
		}
		return errorResult(c, OutcomeParseError, err)
	}

	actual, err := Canonicalize(out)
	if err != nil {
		return errorResult(c, OutcomeFail, err)
	}
	firstExpected := ""
	for _, e := range c.Expected {
		if e.Kind != ExpectXML {
			continue
		}
		want, err := Canonicalize(e.XML)
		if err != nil {
			return errorResult(c, OutcomeFail, err)
		}
		if want == actual {
			return &TestResult{Name: c.Name, Outcome: OutcomePass}
		}
		if firstExpected == "" {
			firstExpected = want
		}
	}
	if firstExpected == "" {
		return errorResult(c, OutcomeFail,
			fmt.Errorf("the input parsed but the catalog expected a failure"))
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(firstExpected, actual, false)
	return &TestResult{
		Name:    c.Name,
		Outcome: OutcomeFail,
		Error:   fmt.Errorf("output mismatch"),
		Diff:    dmp.DiffPrettyText(diffs),
	}
}

func expects(c *TestCase, kind ExpectationKind) bool {
	for _, e := range c.Expected {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func errorResult(c *TestCase, outcome Outcome, err error) *TestResult {
	// A case expecting a dynamic error passes on any load failure too:
	// the catalogs do not distinguish where a grammar is rejected.
	if outcome == OutcomeGrammarError && expects(c, ExpectDynamicError) {
		return &TestResult{Name: c.Name, Outcome: OutcomePass}
	}
	return &TestResult{
		Name:    c.Name,
		Outcome: outcome,
		Error:   err,
	}
}
