package docpatch

import (
	"fmt"

	"github.com/signadot/docpatch/debug"
	"github.com/signadot/docpatch/encode"
	"github.com/signadot/docpatch/ir"
	"github.com/signadot/docpatch/pointer"
)

// Kind names one of the patch operation kinds.
type Kind string

const (
	OpAdd     Kind = "add"
	OpRemove  Kind = "remove"
	OpReplace Kind = "replace"
	OpMove    Kind = "move"
	OpCopy    Kind = "copy"
	OpTest    Kind = "test"
)

// Operation is one step of a patch. Implementations are the exported
// *Op types in this package; the set is closed.
type Operation interface {
	// Kind returns the operation kind.
	Kind() Kind
	// Node returns the wire form of the operation, an object with
	// "op", "path", and kind-dependent members.
	Node() *ir.Node

	apply(doc *ir.Node) (*ir.Node, error)
}

type AddOp struct {
	Path  pointer.Pointer
	Value *ir.Node
}

type RemoveOp struct {
	Path pointer.Pointer
}

type ReplaceOp struct {
	Path  pointer.Pointer
	Value *ir.Node
}

type MoveOp struct {
	From pointer.Pointer
	Path pointer.Pointer
}

type CopyOp struct {
	From pointer.Pointer
	Path pointer.Pointer
}

type TestOp struct {
	Path  pointer.Pointer
	Value *ir.Node
}

func NewAdd(path pointer.Pointer, value *ir.Node) *AddOp {
	return &AddOp{Path: path, Value: value}
}

func NewRemove(path pointer.Pointer) *RemoveOp {
	return &RemoveOp{Path: path}
}

func NewReplace(path pointer.Pointer, value *ir.Node) *ReplaceOp {
	return &ReplaceOp{Path: path, Value: value}
}

func NewMove(from, path pointer.Pointer) *MoveOp {
	return &MoveOp{From: from, Path: path}
}

func NewCopy(from, path pointer.Pointer) *CopyOp {
	return &CopyOp{From: from, Path: path}
}

func NewTest(path pointer.Pointer, value *ir.Node) *TestOp {
	return &TestOp{Path: path, Value: value}
}

func (o *AddOp) Kind() Kind     { return OpAdd }
func (o *RemoveOp) Kind() Kind  { return OpRemove }
func (o *ReplaceOp) Kind() Kind { return OpReplace }
func (o *MoveOp) Kind() Kind    { return OpMove }
func (o *CopyOp) Kind() Kind    { return OpCopy }
func (o *TestOp) Kind() Kind    { return OpTest }

func (o *AddOp) Node() *ir.Node {
	return opNode(OpAdd, o.Path, "value", o.Value)
}

func (o *RemoveOp) Node() *ir.Node {
	return opNode(OpRemove, o.Path, "", nil)
}

func (o *ReplaceOp) Node() *ir.Node {
	return opNode(OpReplace, o.Path, "value", o.Value)
}

func (o *MoveOp) Node() *ir.Node {
	return opNode(OpMove, o.Path, "from", ir.FromString(o.From.String()))
}

func (o *CopyOp) Node() *ir.Node {
	return opNode(OpCopy, o.Path, "from", ir.FromString(o.From.String()))
}

func (o *TestOp) Node() *ir.Node {
	return opNode(OpTest, o.Path, "value", o.Value)
}

func opNode(kind Kind, path pointer.Pointer, member string, v *ir.Node) *ir.Node {
	res := ir.FromKeyVals([]ir.KeyVal{
		{Key: "op", Val: ir.FromString(string(kind))},
		{Key: "path", Val: ir.FromString(path.String())},
	})
	if member != "" {
		res.SetField(member, v)
	}
	return res
}

func (o *AddOp) apply(doc *ir.Node) (*ir.Node, error) {
	return addValue(doc, o.Path, o.Value.Clone())
}

// addValue places v at path in doc, returning the possibly new root.
// The caller owns v; it is linked into doc without copying.
func addValue(doc *ir.Node, path pointer.Pointer, v *ir.Node) (*ir.Node, error) {
	container, key, err := path.ResolveParent(doc)
	if err != nil {
		return nil, err
	}
	if container == nil {
		// the whole document
		return v, nil
	}
	switch container.Type {
	case ir.ArrayType:
		if key == "-" {
			container.InsertValue(len(container.Values), v)
			return doc, nil
		}
		idx, err := pointer.ArrayIndex(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", pointer.ErrNotFound, err)
		}
		if idx > len(container.Values) {
			return nil, fmt.Errorf("%w: can't insert outside of array", ErrConflict)
		}
		container.InsertValue(idx, v)
		return doc, nil
	case ir.ObjectType:
		container.SetField(key, v)
		return doc, nil
	default:
		return nil, fmt.Errorf("%w: %q addresses into a %s value", ErrConflict, path, container.Type)
	}
}

func (o *RemoveOp) apply(doc *ir.Node) (*ir.Node, error) {
	container, key, err := o.Path.ResolveParent(doc)
	if err != nil {
		return nil, err
	}
	if container == nil {
		return nil, fmt.Errorf("%w: can't remove the whole document", ErrConflict)
	}
	switch container.Type {
	case ir.ArrayType:
		idx, err := pointer.ArrayIndex(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", pointer.ErrNotFound, err)
		}
		if idx >= len(container.Values) {
			return nil, fmt.Errorf("%w: can't remove a non-existent element %d", ErrConflict, idx)
		}
		container.RemoveValue(idx)
		return doc, nil
	case ir.ObjectType:
		if !container.DeleteField(key) {
			return nil, fmt.Errorf("%w: can't remove a non-existent field %q", ErrConflict, key)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("%w: %q addresses into a %s value", ErrConflict, o.Path, container.Type)
	}
}

func (o *ReplaceOp) apply(doc *ir.Node) (*ir.Node, error) {
	container, key, err := o.Path.ResolveParent(doc)
	if err != nil {
		return nil, err
	}
	if container == nil {
		return o.Value.Clone(), nil
	}
	v := o.Value.Clone()
	switch container.Type {
	case ir.ArrayType:
		if key == "-" {
			return nil, fmt.Errorf("%w: can't replace the '-' element", ErrConflict)
		}
		idx, err := pointer.ArrayIndex(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", pointer.ErrNotFound, err)
		}
		if idx >= len(container.Values) {
			return nil, fmt.Errorf("%w: can't replace outside of array", ErrConflict)
		}
		container.Values[idx] = v
		return doc, nil
	case ir.ObjectType:
		if container.FieldIndex(key) == -1 {
			return nil, fmt.Errorf("%w: can't replace a non-existent field %q", ErrConflict, key)
		}
		container.SetField(key, v)
		return doc, nil
	default:
		return nil, fmt.Errorf("%w: %q addresses into a %s value", ErrConflict, o.Path, container.Type)
	}
}

func (o *MoveOp) apply(doc *ir.Node) (*ir.Node, error) {
	container, key, err := o.From.ResolveParent(doc)
	if err != nil {
		return nil, err
	}
	value := doc
	if container != nil {
		if value, err = pointer.Walk(container, key); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
	}
	if o.Path.Equal(o.From) {
		return doc, nil
	}
	if container != nil && container.Type == ir.ObjectType && o.Path.Contains(o.From) {
		return nil, fmt.Errorf("%w: can't move a value into its own children", ErrConflict)
	}
	doc, err = (&RemoveOp{Path: o.From}).apply(doc)
	if err != nil {
		return nil, err
	}
	return addValue(doc, o.Path, value)
}

func (o *CopyOp) apply(doc *ir.Node) (*ir.Node, error) {
	value, err := o.From.Resolve(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return addValue(doc, o.Path, value.Clone())
}

func (o *TestOp) apply(doc *ir.Node) (*ir.Node, error) {
	value, err := o.Path.Resolve(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTestFailed, err)
	}
	if !ir.Equal(value, o.Value) {
		return nil, fmt.Errorf("%w: %s is %s, expected %s", ErrTestFailed,
			o.Path, encode.MustString(value), encode.MustString(o.Value))
	}
	return doc, nil
}

// OpFromIR decodes the wire form of a single operation.
func OpFromIR(n *ir.Node) (Operation, error) {
	if debug.Op() {
		debug.Logf("decode op %s\n", encode.MustString(n))
	}
	if n.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: operation is %s, not an object", ErrInvalidPatch, n.Type)
	}
	kind, err := stringMember(n, "op")
	if err != nil {
		return nil, err
	}
	path, err := pointerMember(n, "path")
	if err != nil {
		return nil, err
	}
	switch Kind(kind) {
	case OpAdd:
		v, err := valueMember(n)
		if err != nil {
			return nil, err
		}
		return &AddOp{Path: path, Value: v}, nil
	case OpRemove:
		return &RemoveOp{Path: path}, nil
	case OpReplace:
		v, err := valueMember(n)
		if err != nil {
			return nil, err
		}
		return &ReplaceOp{Path: path, Value: v}, nil
	case OpMove:
		from, err := pointerMember(n, "from")
		if err != nil {
			return nil, err
		}
		return &MoveOp{From: from, Path: path}, nil
	case OpCopy:
		from, err := pointerMember(n, "from")
		if err != nil {
			return nil, err
		}
		return &CopyOp{From: from, Path: path}, nil
	case OpTest:
		v, err := valueMember(n)
		if err != nil {
			return nil, err
		}
		return &TestOp{Path: path, Value: v}, nil
	}
	return nil, fmt.Errorf("%w: unknown operation %q", ErrInvalidPatch, kind)
}

func stringMember(n *ir.Node, member string) (string, error) {
	v := ir.Get(n, member)
	if v == nil {
		return "", fmt.Errorf("%w: operation does not contain an %q member", ErrInvalidPatch, member)
	}
	if v.Type != ir.StringType {
		return "", fmt.Errorf("%w: %q member is %s, not a string", ErrInvalidPatch, member, v.Type)
	}
	return v.String, nil
}

func pointerMember(n *ir.Node, member string) (pointer.Pointer, error) {
	s, err := stringMember(n, member)
	if err != nil {
		return nil, err
	}
	p, err := pointer.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return p, nil
}

func valueMember(n *ir.Node) (*ir.Node, error) {
	v := ir.Get(n, "value")
	if v == nil {
		return nil, fmt.Errorf("%w: operation does not contain a \"value\" member", ErrInvalidPatch)
	}
	return v, nil
}
