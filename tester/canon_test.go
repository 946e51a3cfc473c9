package tester

import "testing"

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "attributes sorted and quotes normalized",
			in:   `<A><B value='"' name="foo">text&lt;</B></A>`,
			want: `<A><B name="foo" value="&quot;">text&lt;</B></A>`,
		},
		{
			name: "empty element expanded",
			in:   `<a/>`,
			want: `<a></a>`,
		},
		{
			name: "xmlns dropped",
			in:   `<a xmlns="https://example.org"><b/></a>`,
			want: `<a><b></b></a>`,
		},
		{
			name: "inner whitespace preserved",
			in:   "<a>  x \n y</a>",
			want: "<a>  x \n y</a>",
		},
		{
			name: "whitespace outside the root ignored",
			in:   "\n  <a>x</a>\n",
			want: `<a>x</a>`,
		},
		{
			name: "entities normalized",
			in:   `<a>&#65;&amp;</a>`,
			want: `<a>A&amp;</a>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeEquivalence(t *testing.T) {
	a := `<A
><B name="foo" value="&quot;"
>text&lt;</B
></A
>`
	b := `<A><B value='"' name='foo'>text&lt;</B></A>`
	ca, err := Canonicalize(a)
	if err != nil {
		t.Fatal(err)
	}
	cb, err := Canonicalize(b)
	if err != nil {
		t.Fatal(err)
	}
	if ca != cb {
		t.Errorf("canonical forms differ:\n%v\n%v", ca, cb)
	}
}
