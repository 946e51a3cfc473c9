package grammar

import (
	"errors"
	"testing"
)

func TestCompileValidation(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Grammar
		want  *SemanticError
	}{
		{
			name:  "empty grammar",
			build: NewGrammar,
			want:  ErrNoRule,
		},
		{
			name: "undefined nonterminal",
			build: func() *Grammar {
				g := NewGrammar()
				g.Define(MarkNone, "doc", g.Seq().NT("missing").Alt())
				return g
			},
			want: ErrUndefinedSym,
		},
		{
			name: "undefined nonterminal inside an option",
			build: func() *Grammar {
				g := NewGrammar()
				g.Define(MarkNone, "doc", g.Seq().Opt(g.Seq().NT("missing")).Alt())
				return g
			},
			want: ErrUndefinedSym,
		},
		{
			name: "hidden start",
			build: func() *Grammar {
				g := NewGrammar()
				g.Define(MarkHidden, "doc", g.Seq().Lit("a").Alt())
				return g
			},
			want: ErrHiddenStart,
		},
		{
			name: "attribute start",
			build: func() *Grammar {
				g := NewGrammar()
				g.Define(MarkAttribute, "doc", g.Seq().Lit("a").Alt())
				return g
			},
			want: ErrAttrStart,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.build())
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want cause %v", err, tt.want)
			}
		})
	}
}

func TestEffectiveMark(t *testing.T) {
	tests := []struct {
		def, ref, want Mark
	}{
		{MarkNone, MarkNone, MarkNone},
		{MarkNone, MarkHidden, MarkHidden},
		{MarkHidden, MarkNone, MarkHidden},
		{MarkHidden, MarkUnhide, MarkUnhide},
		{MarkNone, MarkAttribute, MarkAttribute},
		{MarkAttribute, MarkNone, MarkAttribute},
		{MarkAttribute, MarkHidden, MarkAttribute},
		{MarkUnhide, MarkNone, MarkUnhide},
	}
	for _, tt := range tests {
		if got := EffectiveMark(tt.def, tt.ref); got != tt.want {
			t.Errorf("EffectiveMark(%v, %v) = %v, want %v", tt.def, tt.ref, got, tt.want)
		}
	}
}

func TestDefineMergesAlternatives(t *testing.T) {
	g := NewGrammar()
	g.Define(MarkNone, "doc", g.Seq().Lit("a").Alt())
	g.Define(MarkNone, "doc", g.Seq().Lit("b").Alt())
	r, ok := g.Rule(g.Start())
	if !ok {
		t.Fatal("start rule missing")
	}
	if len(r.Alts) != 2 {
		t.Fatalf("got %v alts, want 2", len(r.Alts))
	}
}
