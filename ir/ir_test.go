package ir

import (
	"errors"
	"testing"
)

func TestJSONRoundTrip(t *testing.T) {
	tests := []string{
		`null`,
		`true`,
		`false`,
		`0`,
		`-1`,
		`1.5`,
		`1e10`,
		`1.0`,
		`"hello"`,
		`""`,
		`[]`,
		`{}`,
		`[1,2,3]`,
		`{"b":1,"a":2}`,
		`{"a":{"b":[null,true,"x",1.25]}}`,
	}
	for i, test := range tests {
		var n Node
		if err := n.UnmarshalJSON([]byte(test)); err != nil {
			t.Errorf("test %d: decode error %v", i, err)
			continue
		}
		d, err := n.MarshalJSON()
		if err != nil {
			t.Errorf("test %d: encode error %v", i, err)
			continue
		}
		if string(d) != test {
			t.Errorf("test %d: round trip gave %s, want %s", i, d, test)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []string{
		``,
		`{`,
		`[1,2`,
		`{"a":1,"a":2}`,
		`{"a":1} trailing`,
		`nulled`,
	}
	for i, test := range tests {
		var n Node
		err := n.UnmarshalJSON([]byte(test))
		if !errors.Is(err, ErrDecode) {
			t.Errorf("test %d: got %v, want decode error", i, err)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b  string
		equal bool
	}{
		{a: `1`, b: `1`, equal: true},
		{a: `1`, b: `1.0`, equal: true},
		{a: `1`, b: `2`, equal: false},
		{a: `1`, b: `true`, equal: false},
		{a: `1`, b: `"1"`, equal: false},
		{a: `0`, b: `false`, equal: false},
		{a: `null`, b: `null`, equal: true},
		{a: `{"a":1,"b":2}`, b: `{"b":2,"a":1}`, equal: true},
		{a: `{"a":1}`, b: `{"a":1,"b":2}`, equal: false},
		{a: `[1,2]`, b: `[2,1]`, equal: false},
		{a: `[1,[2,{"x":null}]]`, b: `[1,[2,{"x":null}]]`, equal: true},
	}
	for i := range tests {
		test := &tests[i]
		var a, b Node
		if err := a.UnmarshalJSON([]byte(test.a)); err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		if err := b.UnmarshalJSON([]byte(test.b)); err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		if got := Equal(&a, &b); got != test.equal {
			t.Errorf("test %d: Equal(%s, %s) = %v, want %v", i, test.a, test.b, got, test.equal)
		}
	}
}

func TestNumberString(t *testing.T) {
	tests := []struct {
		node *Node
		want string
	}{
		{node: FromInt(0), want: "0"},
		{node: FromInt(-12), want: "-12"},
		{node: FromFloat(1.5), want: "1.5"},
		{node: FromFloat(1), want: "1.0"},
		{node: FromNumber("1.0"), want: "1.0"},
		{node: FromNumber("1e3"), want: "1e3"},
	}
	for i := range tests {
		test := &tests[i]
		if got := test.node.NumberString(); got != test.want {
			t.Errorf("test %d: got %q, want %q", i, got, test.want)
		}
	}
}

func TestFromAny(t *testing.T) {
	v := map[string]any{
		"b": []any{1, "two", 3.5, nil, true},
		"a": map[string]any{"x": int64(7)},
	}
	n, err := FromAny(v)
	if err != nil {
		t.Fatal(err)
	}
	d, err := n.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":{"x":7},"b":[1,"two",3.5,null,true]}`
	if string(d) != want {
		t.Errorf("got %s, want %s", d, want)
	}
	back, err := FromAny(n.ToAny())
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(n, back) {
		t.Errorf("ToAny round trip changed the value")
	}
}

func TestMutators(t *testing.T) {
	obj := FromKeyVals([]KeyVal{
		{Key: "a", Val: FromInt(1)},
		{Key: "b", Val: FromInt(2)},
	})
	obj.SetField("a", FromInt(10))
	if got := Get(obj, "a"); got == nil || *got.Int64 != 10 {
		t.Errorf("SetField overwrite failed")
	}
	obj.SetField("c", FromInt(3))
	if obj.Keys[len(obj.Keys)-1] != "c" {
		t.Errorf("SetField should append new fields at the end")
	}
	if !obj.DeleteField("b") {
		t.Errorf("DeleteField b failed")
	}
	if obj.DeleteField("b") {
		t.Errorf("DeleteField of a missing field should report false")
	}
	arr := FromSlice([]*Node{FromInt(1), FromInt(3)})
	arr.InsertValue(1, FromInt(2))
	arr.RemoveValue(0)
	d, _ := arr.MarshalJSON()
	if string(d) != `[2,3]` {
		t.Errorf("got %s, want [2,3]", d)
	}
}

func TestClone(t *testing.T) {
	var n Node
	if err := n.UnmarshalJSON([]byte(`{"a":[1,{"b":"c"}]}`)); err != nil {
		t.Fatal(err)
	}
	c := n.Clone()
	if !Equal(&n, c) {
		t.Fatal("clone differs")
	}
	c.Values[0].Values[1].SetField("b", FromString("z"))
	if Equal(&n, c) {
		t.Errorf("mutating the clone changed the original")
	}
}
