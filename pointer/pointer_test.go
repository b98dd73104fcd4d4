package pointer

import (
	"errors"
	"testing"

	"github.com/signadot/docpatch/parse"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		in   string
		toks []string
		err  bool
	}{
		{in: "", toks: nil},
		{in: "/", toks: []string{""}},
		{in: "/a/b", toks: []string{"a", "b"}},
		{in: "/a~0b", toks: []string{"a~b"}},
		{in: "/a~1b", toks: []string{"a/b"}},
		{in: "/~01", toks: []string{"~1"}},
		{in: "/-", toks: []string{"-"}},
		{in: "a/b", err: true},
		{in: "/a~2", err: true},
		{in: "/a~", err: true},
	}
	for i := range tests {
		test := &tests[i]
		p, err := Parse(test.in)
		if test.err {
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("test %d: expected syntax error, got %v", i, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d: unexpected error %v", i, err)
			continue
		}
		if len(p) != len(test.toks) {
			t.Errorf("test %d: got %d tokens, want %d", i, len(p), len(test.toks))
			continue
		}
		for j, tok := range test.toks {
			if p[j] != tok {
				t.Errorf("test %d: token %d is %q, want %q", i, j, p[j], tok)
			}
		}
		if got := p.String(); got != test.in {
			t.Errorf("test %d: round trip gave %q, want %q", i, got, test.in)
		}
	}
}

func TestResolve(t *testing.T) {
	doc, err := parse.Parse([]byte(`{"a": {"b": [1, 2, 3]}, "": 0, "x/y": "s"}`))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		ptr string
		res string
		err bool
	}{
		{ptr: "", res: ""},
		{ptr: "/a/b/0", res: "1"},
		{ptr: "/a/b/2", res: "3"},
		{ptr: "/", res: "0"},
		{ptr: "/x~1y", res: `"s"`},
		{ptr: "/a/b/3", err: true},
		{ptr: "/a/b/-", err: true},
		{ptr: "/a/b/01", err: true},
		{ptr: "/a/c", err: true},
		{ptr: "/a/b/0/deep", err: true},
	}
	for i := range tests {
		test := &tests[i]
		p, err := Parse(test.ptr)
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		v, err := p.Resolve(doc)
		if test.err {
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("test %d: expected not found, got %v", i, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d: unexpected error %v", i, err)
			continue
		}
		if test.res == "" {
			if v != doc {
				t.Errorf("test %d: root pointer did not yield the document", i)
			}
			continue
		}
		d, err := v.MarshalJSON()
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		if string(d) != test.res {
			t.Errorf("test %d: resolved to %s, want %s", i, d, test.res)
		}
	}
}

func TestPointerOps(t *testing.T) {
	p, _ := Parse("/a/b")
	q := p.Append("c")
	if q.String() != "/a/b/c" {
		t.Errorf("append gave %q", q.String())
	}
	if p.String() != "/a/b" {
		t.Errorf("append modified receiver: %q", p.String())
	}
	if !q.Contains(p) {
		t.Errorf("%s should contain %s", q, p)
	}
	if p.Contains(q) {
		t.Errorf("%s should not contain %s", p, q)
	}
	if !q.Contains(nil) {
		t.Errorf("every pointer contains the root")
	}
	if par := q.Parent(); !par.Equal(p) {
		t.Errorf("parent of %s is %s, want %s", q, par, p)
	}
	if q.Key() != "c" {
		t.Errorf("key of %s is %q", q, q.Key())
	}
}
