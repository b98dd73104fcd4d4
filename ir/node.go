package ir

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Node is one value in a document tree. The Type field selects which of
// the remaining fields are meaningful:
//
//   - StringType: String
//   - BoolType: Bool
//   - NumberType: Number (raw literal) and/or Int64/Float64
//   - ObjectType: Keys and Values, parallel slices, Keys unique
//   - ArrayType: Values
//   - NullType: nothing
//
// Numbers keep the literal they were parsed from in Number so that the
// canonical form of a document is stable under decode/encode.
type Node struct {
	Type Type

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64

	Keys   []string
	Values []*Node
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Float64: &f}
}

// FromNumber builds a number node from a raw literal, keeping the
// literal for serialization.
func FromNumber(lit string) *Node {
	res := &Node{Type: NumberType, Number: lit}
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		res.Int64 = &i
		return res
	}
	if f, err := strconv.ParseFloat(lit, 64); err == nil {
		res.Float64 = &f
	}
	return res
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// FromMap builds an object node with fields in sorted key order.
func FromMap(m map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	res.Keys = slices.Sorted(maps.Keys(m))
	res.Values = make([]*Node, len(res.Keys))
	for i, key := range res.Keys {
		res.Values[i] = m[key]
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object node with fields in the given order.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Type:   ObjectType,
		Keys:   make([]string, len(kvs)),
		Values: make([]*Node, len(kvs)),
	}
	for i := range kvs {
		res.Keys[i] = kvs[i].Key
		res.Values[i] = kvs[i].Val
	}
	return res
}

func FromSlice(vs []*Node) *Node {
	return &Node{Type: ArrayType, Values: vs}
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if y.Keys != nil {
		dst.Keys = slices.Clone(y.Keys)
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	return dst
}

// FieldIndex returns the index of key in an object node, or -1.
func (y *Node) FieldIndex(key string) int {
	for i := range y.Keys {
		if y.Keys[i] == key {
			return i
		}
	}
	return -1
}

// Get returns the value of field in an object node, or nil.
func Get(y *Node, field string) *Node {
	if i := y.FieldIndex(field); i >= 0 {
		return y.Values[i]
	}
	return nil
}

// SetField creates or overwrites a field on an object node. New fields
// go at the end, keeping insertion order.
func (y *Node) SetField(key string, v *Node) {
	if i := y.FieldIndex(key); i >= 0 {
		y.Values[i] = v
		return
	}
	y.Keys = append(y.Keys, key)
	y.Values = append(y.Values, v)
}

// DeleteField removes a field from an object node. It reports whether
// the field was present.
func (y *Node) DeleteField(key string) bool {
	i := y.FieldIndex(key)
	if i < 0 {
		return false
	}
	y.Keys = slices.Delete(y.Keys, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	return true
}

// InsertValue inserts v at index i of an array node, shifting later
// elements right. i may equal len(Values) to append.
func (y *Node) InsertValue(i int, v *Node) {
	y.Values = slices.Insert(y.Values, i, v)
}

// RemoveValue removes the element at index i of an array node, shifting
// later elements left.
func (y *Node) RemoveValue(i int) {
	y.Values = slices.Delete(y.Values, i, i+1)
}

// NumberString returns the serialized form of a number node. The raw
// parsed literal wins when present; floats with an integral value get a
// trailing ".0" so they stay distinguishable from integers.
func (y *Node) NumberString() string {
	if y.Number != "" {
		return y.Number
	}
	if y.Int64 != nil {
		return strconv.FormatInt(*y.Int64, 10)
	}
	if y.Float64 != nil {
		s := strconv.FormatFloat(*y.Float64, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	}
	return "0"
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
