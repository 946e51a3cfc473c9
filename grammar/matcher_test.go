package grammar

import "testing"

func TestCharMatcherAccept(t *testing.T) {
	digit := &CharMatcher{Members: []*SetMember{NewRangeMember('0', '9')}}
	letterOrDot := &CharMatcher{Members: []*SetMember{
		mustClass(t, "L"),
		NewExactMember('.'),
	}}
	notQuote := &CharMatcher{
		Members: []*SetMember{NewExactMember('"'), NewExactMember('\n')},
		Exclude: true,
	}
	vowels := &CharMatcher{Members: []*SetMember{NewOneOfMember("aeiou")}}

	tests := []struct {
		name  string
		m     *CharMatcher
		r     rune
		match bool
	}{
		{"range low", digit, '0', true},
		{"range high", digit, '9', true},
		{"range miss", digit, 'a', false},
		{"class letter", letterOrDot, '語', true},
		{"class miss", letterOrDot, '7', false},
		{"union second member", letterOrDot, '.', true},
		{"exclusion hit", notQuote, '"', false},
		{"exclusion pass", notQuote, 'x', true},
		{"one-of", vowels, 'e', true},
		{"one-of miss", vowels, 'z', false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Accept(tt.r); got != tt.match {
				t.Fatalf("Accept(%q) = %v, want %v", tt.r, got, tt.match)
			}
		})
	}
}

func TestCharMatcherString(t *testing.T) {
	tests := []struct {
		m    *CharMatcher
		want string
	}{
		{NewExactMatcher('a'), `"a"`},
		{NewExactMatcher('\n'), "#a"},
		{&CharMatcher{Members: []*SetMember{NewRangeMember('0', '9')}}, `["0"-"9"]`},
		{&CharMatcher{Members: []*SetMember{NewExactMember('x')}, Exclude: true}, `~["x"]`},
		{&CharMatcher{Members: []*SetMember{mustClass(t, "Nd"), NewOneOfMember("ab")}}, `[Nd; "ab"]`},
		{NewExactMatcher('"'), `""""`},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %v, want %v", got, tt.want)
		}
	}
}

func TestNewClassMemberUnknown(t *testing.T) {
	if _, err := NewClassMember("Qx"); err == nil {
		t.Fatal("expected an error for an unknown class code")
	}
}

func mustClass(t *testing.T, code string) *SetMember {
	t.Helper()
	m, err := NewClassMember(code)
	if err != nil {
		t.Fatal(err)
	}
	return m
}
