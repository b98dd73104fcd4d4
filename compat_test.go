package docpatch

import (
	"testing"

	"github.com/signadot/docpatch/encode"

	jsonpatch "github.com/evanphx/json-patch"
)

// TestCompat cross-checks generated patches against an independent
// RFC 6902 implementation.
func TestCompat(t *testing.T) {
	tests := []struct{ A, B string }{
		{A: `{"a":1}`, B: `{"a":2}`},
		{A: `{"a":1}`, B: `{"a":1,"b":2}`},
		{A: `{"a":1,"b":2}`, B: `{"b":2}`},
		{A: `{"a":1,"b":2}`, B: `{"b":2,"c":1}`},
		{A: `{"a":[1,2],"b":3}`, B: `{"a":[2],"c":3}`},
		{A: `[2,3,4]`, B: `[1,2,3,4]`},
		{A: `[1,2,3,4]`, B: `[2,3,4]`},
		{A: `[1,2,3]`, B: `[3,2,1]`},
		{A: `{"items":[{"id":1},{"id":2}],"n":2}`, B: `{"items":[{"id":2},{"id":3}],"n":2}`},
		{A: `[[1,2],[3,4]]`, B: `[[2,1],[3,4],[5]]`},
	}
	for i := range tests {
		test := &tests[i]
		a := mustParse(t, test.A)
		b := mustParse(t, test.B)
		p, err := MakePatch(a, b)
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		wire, err := p.MarshalJSON()
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		jp, err := jsonpatch.DecodePatch(wire)
		if err != nil {
			t.Errorf("test %d: reference decode rejected %s: %v", i, wire, err)
			continue
		}
		doc, err := a.MarshalJSON()
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		out, err := jp.Apply(doc)
		if err != nil {
			t.Errorf("test %d: reference apply of %s failed: %v", i, wire, err)
			continue
		}
		got := mustParse(t, string(out))
		if string(encode.Canonical(got)) != string(encode.Canonical(b)) {
			t.Errorf("test %d: reference apply gave %s, want %s\npatch: %s",
				i, encode.Canonical(got), encode.Canonical(b), wire)
		}
	}
}
