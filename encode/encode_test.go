package encode

import (
	"testing"

	"github.com/signadot/docpatch/ir"
)

func node(t *testing.T, doc string) *ir.Node {
	t.Helper()
	var n ir.Node
	if err := n.UnmarshalJSON([]byte(doc)); err != nil {
		t.Fatalf("bad document %q: %v", doc, err)
	}
	return &n
}

func TestEncodeCompact(t *testing.T) {
	tests := []string{
		`null`,
		`[1,2.5,"x"]`,
		`{"b":1,"a":{"c":[]}}`,
		`{}`,
	}
	for i, test := range tests {
		got, err := String(node(t, test))
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		if got != test {
			t.Errorf("test %d: got %s, want %s", i, got, test)
		}
	}
}

func TestEncodeIndent(t *testing.T) {
	got, err := String(node(t, `{"a":[1,2],"b":{}}`), EncodeIndent(2))
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "a": [
    1,
    2
  ],
  "b": {}
}
`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCanonical(t *testing.T) {
	a := node(t, `{"b":1,"a":{"y":2,"x":3}}`)
	b := node(t, `{"a":{"x":3,"y":2},"b":1}`)
	ca, cb := string(Canonical(a)), string(Canonical(b))
	if ca != cb {
		t.Errorf("canonical forms differ: %s vs %s", ca, cb)
	}
	if ca != `{"a":{"x":3,"y":2},"b":1}` {
		t.Errorf("got %s", ca)
	}
	// type tags keep scalars apart
	if string(Canonical(node(t, `1`))) == string(Canonical(node(t, `1.0`))) {
		t.Errorf("1 and 1.0 should not share a canonical form")
	}
	if string(Canonical(node(t, `1`))) == string(Canonical(node(t, `"1"`))) {
		t.Errorf("1 and \"1\" should not share a canonical form")
	}
}
