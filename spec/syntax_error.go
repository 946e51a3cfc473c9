package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return e.message
}

// These read as expectations: "expected <message>, found <char>".
var (
	synErrUnclosedString    = newSyntaxError("the closing string delimiter")
	synErrLineBreakInString = newSyntaxError("the closing string delimiter before the line break")
	synErrEmptyHex          = newSyntaxError("hex digits after '#'")
	synErrHexOutOfRange     = newSyntaxError("a codepoint within the Unicode codespace")
)

// GrammarParseError reports where grammar parsing stopped, what would have
// allowed it to continue, and what was found instead.
type GrammarParseError struct {
	Pos      int // codepoint offset
	Row      int
	Col      int
	Expected string
	Found    string
}

func (e *GrammarParseError) Error() string {
	return fmt.Sprintf("syntax error at %v:%v: expected %v, found %v",
		e.Row, e.Col, e.Expected, e.Found)
}
