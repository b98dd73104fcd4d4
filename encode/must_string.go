package encode

import "github.com/signadot/docpatch/ir"

// MustString is like String but panics on error.  It is intended for
// debugging and tests.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	s, err := String(node, opts...)
	if err != nil {
		panic(err)
	}
	return s
}
