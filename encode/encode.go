// Package encode serializes document node trees to JSON or YAML text.
package encode

import (
	"encoding/json"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/signadot/docpatch/format"
	"github.com/signadot/docpatch/ir"
)

// Encode writes node to w in the configured format. The default is
// compact JSON.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	if es.format == format.YAMLFormat {
		return encodeYAML(node, w)
	}
	d := es.appendValue(nil, node, 0)
	if es.indent > 0 {
		d = append(d, '\n')
	}
	_, err := w.Write(d)
	return err
}

// String encodes node and returns the text.
func String(node *ir.Node, opts ...EncodeOption) (string, error) {
	var b strings.Builder
	if err := Encode(node, &b, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Canonical returns the canonical form of a node: compact JSON with
// object keys sorted. Two nodes with equal canonical forms are the same
// document value up to object field order.
func Canonical(node *ir.Node) []byte {
	es := newEncState([]EncodeOption{EncodeCanonical(true)})
	return es.appendValue(nil, node, 0)
}

func (es *encState) appendValue(dst []byte, y *ir.Node, depth int) []byte {
	switch y.Type {
	case ir.NullType:
		return append(dst, es.value(y.Type, "null")...)
	case ir.BoolType:
		if y.Bool {
			return append(dst, es.value(y.Type, "true")...)
		}
		return append(dst, es.value(y.Type, "false")...)
	case ir.NumberType:
		return append(dst, es.value(y.Type, y.NumberString())...)
	case ir.StringType:
		return append(dst, es.value(y.Type, quoteString(y.String))...)
	case ir.ArrayType:
		return es.appendArray(dst, y, depth)
	case ir.ObjectType:
		return es.appendObject(dst, y, depth)
	}
	panic("type")
}

func (es *encState) appendArray(dst []byte, y *ir.Node, depth int) []byte {
	if len(y.Values) == 0 {
		return append(dst, "[]"...)
	}
	dst = append(dst, '[')
	for i, v := range y.Values {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = es.newline(dst, depth+1)
		dst = es.appendValue(dst, v, depth+1)
	}
	dst = es.newline(dst, depth)
	return append(dst, ']')
}

func (es *encState) appendObject(dst []byte, y *ir.Node, depth int) []byte {
	if len(y.Keys) == 0 {
		return append(dst, "{}"...)
	}
	order := make([]int, len(y.Keys))
	for i := range order {
		order[i] = i
	}
	if es.canonical {
		idx := make(map[string]int, len(y.Keys))
		for i, k := range y.Keys {
			idx[k] = i
		}
		order = order[:0]
		for _, k := range slices.Sorted(maps.Keys(idx)) {
			order = append(order, idx[k])
		}
	}
	dst = append(dst, '{')
	for n, i := range order {
		if n > 0 {
			dst = append(dst, ',')
		}
		dst = es.newline(dst, depth+1)
		dst = append(dst, es.field(ir.ObjectType, quoteString(y.Keys[i]))...)
		dst = append(dst, ':')
		if es.indent > 0 {
			dst = append(dst, ' ')
		}
		dst = es.appendValue(dst, y.Values[i], depth+1)
	}
	dst = es.newline(dst, depth)
	return append(dst, '}')
}

func (es *encState) newline(dst []byte, depth int) []byte {
	if es.indent == 0 {
		return dst
	}
	dst = append(dst, '\n')
	for range depth * es.indent {
		dst = append(dst, ' ')
	}
	return dst
}

func quoteString(s string) string {
	d, err := json.Marshal(s)
	if err != nil {
		// marshaling a string cannot fail
		panic(err)
	}
	return string(d)
}
