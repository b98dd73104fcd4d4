package docpatch

import (
	"fmt"

	"github.com/signadot/docpatch/debug"
	"github.com/signadot/docpatch/encode"
	"github.com/signadot/docpatch/ir"
	"github.com/signadot/docpatch/parse"
)

// Patch is an ordered sequence of operations. Applying a patch applies
// its operations first to last; the first failing operation aborts the
// application.
type Patch []Operation

// DecodePatch parses a JSON patch document.
func DecodePatch(d []byte) (Patch, error) {
	n, err := parse.Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return FromIR(n)
}

// FromIR decodes the wire form of a patch, an array of operation
// objects.
func FromIR(n *ir.Node) (Patch, error) {
	if n.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: document is %s, not an array", ErrInvalidPatch, n.Type)
	}
	res := make(Patch, len(n.Values))
	for i, v := range n.Values {
		op, err := OpFromIR(v)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		res[i] = op
	}
	return res, nil
}

// Apply applies the patch to a copy of doc and returns the result; doc
// is not modified.
func (p Patch) Apply(doc *ir.Node) (*ir.Node, error) {
	return p.ApplyInPlace(doc.Clone())
}

// ApplyInPlace applies the patch to doc itself, returning the new
// document root. The root differs from doc when an operation targets
// the root pointer. On error doc may hold a partially applied state.
func (p Patch) ApplyInPlace(doc *ir.Node) (*ir.Node, error) {
	for i, op := range p {
		if debug.Patch() {
			debug.Logf("apply %d: %s\n", i, encode.MustString(op.Node()))
		}
		next, err := op.apply(doc)
		if err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i, op.Kind(), err)
		}
		doc = next
	}
	return doc, nil
}

// Node returns the wire form of the patch.
func (p Patch) Node() *ir.Node {
	ops := make([]*ir.Node, len(p))
	for i, op := range p {
		ops[i] = op.Node()
	}
	return ir.FromSlice(ops)
}

func (p Patch) MarshalJSON() ([]byte, error) {
	return p.Node().MarshalJSON()
}

func (p Patch) String() string {
	return encode.MustString(p.Node())
}

// Equal reports whether two patches have the same wire form.
func (p Patch) Equal(q Patch) bool {
	return ir.Equal(p.Node(), q.Node())
}

// ApplyPatch parses patchData and applies it to doc, copying first
// unless inPlace is set.
func ApplyPatch(doc *ir.Node, patchData []byte, inPlace bool) (*ir.Node, error) {
	p, err := DecodePatch(patchData)
	if err != nil {
		return nil, err
	}
	if inPlace {
		return p.ApplyInPlace(doc)
	}
	return p.Apply(doc)
}
