package encode

import (
	"github.com/signadot/docpatch/format"
	"github.com/signadot/docpatch/ir"
)

type EncodeOption func(*encState)

type encState struct {
	format    format.Format
	indent    int
	canonical bool
	colors    *Colors
}

func newEncState(opts []EncodeOption) *encState {
	es := &encState{}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// EncodeFormat selects the output text format.
func EncodeFormat(f format.Format) EncodeOption {
	return func(es *encState) { es.format = f }
}

// EncodeIndent sets the JSON indent width; 0 means compact output.
func EncodeIndent(n int) EncodeOption {
	return func(es *encState) { es.indent = n }
}

// EncodeCanonical sorts object keys, producing the canonical form.
func EncodeCanonical(v bool) EncodeOption {
	return func(es *encState) { es.canonical = v }
}

// EncodeColors enables colored output using the given palette.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *encState) { es.colors = c }
}

func (es *encState) value(t ir.Type, v string) string {
	if es.colors == nil {
		return v
	}
	return es.colors.apply(t, ValueColor, v)
}

func (es *encState) field(t ir.Type, v string) string {
	if es.colors == nil {
		return v
	}
	return es.colors.apply(t, FieldColor, v)
}
