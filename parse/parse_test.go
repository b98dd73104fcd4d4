package parse

import (
	"errors"
	"testing"

	"github.com/signadot/docpatch/encode"
	"github.com/signadot/docpatch/format"
	"github.com/signadot/docpatch/ir"

	"github.com/google/go-cmp/cmp"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		in  string
		out any
	}{
		{in: `null`, out: nil},
		{in: `42`, out: int64(42)},
		{in: `-1.5`, out: -1.5},
		{in: `"x"`, out: "x"},
		{in: `[1,"a"]`, out: []any{int64(1), "a"}},
		{in: `{"a":{"b":true}}`, out: map[string]any{"a": map[string]any{"b": true}}},
	}
	for i := range tests {
		test := &tests[i]
		n, err := Parse([]byte(test.in))
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		if d := cmp.Diff(test.out, n.ToAny()); d != "" {
			t.Errorf("test %d: (-want +got)\n%s", i, d)
		}
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []string{
		``,
		`{"a":1}{"b":2}`,
		`{"a":1,"a":2}`,
		`[1,`,
	}
	for i, test := range tests {
		if _, err := Parse([]byte(test)); !errors.Is(err, ir.ErrDecode) {
			t.Errorf("test %d: got %v, want decode error", i, err)
		}
	}
}

func TestParseYAML(t *testing.T) {
	in := `
b: 2
a:
- x
- null
- true
- 1.5
`
	n, err := Parse([]byte(in), ParseFormat(format.YAMLFormat))
	if err != nil {
		t.Fatal(err)
	}
	// field order of the input survives
	d, err := n.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"b":2,"a":["x",null,true,1.5]}`
	if string(d) != want {
		t.Errorf("got %s, want %s", d, want)
	}
}

func TestParseYAMLDuplicateKey(t *testing.T) {
	_, err := Parse([]byte("a: 1\na: 2\n"), ParseFormat(format.YAMLFormat))
	if !errors.Is(err, ir.ErrDecode) {
		t.Errorf("got %v, want decode error", err)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	in := `{"b":[1,2],"a":{"c":"hi","d":null}}`
	n, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	y, err := encode.String(n, encode.EncodeFormat(format.YAMLFormat))
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse([]byte(y), ParseFormat(format.YAMLFormat))
	if err != nil {
		t.Fatalf("re-parsing %q: %v", y, err)
	}
	if !ir.Equal(n, back) {
		t.Errorf("yaml round trip changed the document: %q", y)
	}
}
