package docpatch

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/signadot/docpatch/debug"
	"github.com/signadot/docpatch/encode"
	"github.com/signadot/docpatch/ir"
	"github.com/signadot/docpatch/pointer"
)

// DefaultDiffDepth bounds document nesting during MakePatch.
const DefaultDiffDepth = 10000

type DiffOption func(*diffOpts)

type diffOpts struct {
	maxDepth int
	canon    func(*ir.Node) []byte
}

// DiffMaxDepth overrides the nesting bound; 0 means unbounded.
func DiffMaxDepth(n int) DiffOption {
	return func(o *diffOpts) { o.maxDepth = n }
}

// DiffCanonical overrides the serializer used for value equality and
// move pairing. The default is encode.Canonical.
func DiffCanonical(fn func(*ir.Node) []byte) DiffOption {
	return func(o *diffOpts) { o.canon = fn }
}

// MakePatch computes a patch p with p.Apply(src) equal to dst. Values
// equal to a removed value are turned into moves or copies of it where
// possible, and a removal followed by an insertion at the same location
// collapses into a replacement.
func MakePatch(src, dst *ir.Node, opts ...DiffOption) (Patch, error) {
	o := &diffOpts{maxDepth: DefaultDiffDepth, canon: encode.Canonical}
	for _, opt := range opts {
		opt(o)
	}
	b := newDiffBuilder(o)
	if err := b.compare(nil, rootKey(), src, dst, 0); err != nil {
		return nil, err
	}
	res := b.execute()
	if debug.Diff() {
		debug.Logf("diff: %d pending edits, %d operations\n", len(b.arena)-1, len(res))
	}
	return res, nil
}

// editKey is the final reference token of a pending edit: an object
// field, an array index, or nothing for the document root. Index keys
// are renumbered as earlier edits shift their array.
type editKey struct {
	t keyType
	s string
	i int
}

type keyType uint8

const (
	keyRoot keyType = iota
	keyField
	keyIndex
)

func rootKey() editKey          { return editKey{t: keyRoot} }
func fieldKey(s string) editKey { return editKey{t: keyField, s: s} }
func indexKey(i int) editKey    { return editKey{t: keyIndex, i: i} }

func (k editKey) token() string {
	if k.t == keyIndex {
		return strconv.Itoa(k.i)
	}
	return k.s
}

func joinPath(parent pointer.Pointer, key editKey) pointer.Pointer {
	if key.t == keyRoot {
		return parent
	}
	return parent.Append(key.token())
}

// diffOp is a pending edit. Unlike the exported operation types it is
// mutable: while later edits are discovered, its location may be
// renumbered and a remove may turn into a move in place.
type diffOp struct {
	kind    Kind
	parent  pointer.Pointer
	key     editKey
	from    pointer.Pointer
	fromKey editKey
	value   *ir.Node
}

func (o *diffOp) path() pointer.Pointer { return joinPath(o.parent, o.key) }

func (o *diffOp) sameLocation(q *diffOp) bool {
	return o.parent.Equal(q.parent) && o.key == q.key
}

// onUndoRemove adjusts o for a pending remove at (parent, key) being
// undone, and returns key as seen before o runs.
func (o *diffOp) onUndoRemove(parent pointer.Pointer, key int) int {
	switch o.kind {
	case OpRemove:
		if o.key.t == keyIndex && o.parent.Equal(parent) {
			if o.key.i >= key {
				o.key.i++
			} else {
				key--
			}
		}
	case OpAdd:
		if o.key.t == keyIndex && o.parent.Equal(parent) {
			if o.key.i > key {
				o.key.i++
			} else {
				key++
			}
		}
	case OpMove:
		if o.fromKey.t == keyIndex && o.from.Equal(parent) {
			if o.fromKey.i >= key {
				o.fromKey.i++
			} else {
				key--
			}
		}
		if o.key.t == keyIndex && o.parent.Equal(parent) {
			if o.key.i > key {
				o.key.i++
			} else {
				key++
			}
		}
	}
	return key
}

// onUndoAdd is the dual of onUndoRemove for a pending add being undone.
func (o *diffOp) onUndoAdd(parent pointer.Pointer, key int) int {
	switch o.kind {
	case OpRemove:
		if o.key.t == keyIndex && o.parent.Equal(parent) {
			if o.key.i > key {
				o.key.i--
			} else {
				key--
			}
		}
	case OpAdd:
		if o.key.t == keyIndex && o.parent.Equal(parent) {
			if o.key.i > key {
				o.key.i--
			} else {
				key++
			}
		}
	case OpMove:
		if o.fromKey.t == keyIndex && o.from.Equal(parent) {
			if o.fromKey.i > key {
				o.fromKey.i--
			} else {
				key--
			}
		}
		if o.key.t == keyIndex && o.parent.Equal(parent) {
			if o.key.i > key {
				o.key.i--
			} else {
				key++
			}
		}
	}
	return key
}

const (
	stAdd = iota
	stRemove
)

// valueKey indexes pending edits by the edited value. The canonical
// form keeps the key type-sensitive: 1, 1.0, "1", and true all index
// separately.
type valueKey struct {
	t     ir.Type
	canon string
}

// linkNode is one cell of the pending edit list. The list is a
// doubly linked ring held in an arena and addressed by int handles;
// handle 0 is the sentinel.
type linkNode struct {
	prev, next int
	op         *diffOp
}

type diffBuilder struct {
	arena    []linkNode
	index    [2]map[valueKey][]int
	maxDepth int
	canon    func(*ir.Node) []byte
}

func newDiffBuilder(o *diffOpts) *diffBuilder {
	return &diffBuilder{
		arena:    []linkNode{{}},
		index:    [2]map[valueKey][]int{{}, {}},
		maxDepth: o.maxDepth,
		canon:    o.canon,
	}
}

func (b *diffBuilder) keyOf(v *ir.Node) valueKey {
	return valueKey{t: v.Type, canon: string(b.canon(v))}
}

func (b *diffBuilder) storeIndex(v *ir.Node, h, st int) {
	k := b.keyOf(v)
	b.index[st][k] = append(b.index[st][k], h)
}

// takeIndex pops the most recently stored edit of an equal value.
func (b *diffBuilder) takeIndex(v *ir.Node, st int) (int, bool) {
	k := b.keyOf(v)
	stored := b.index[st][k]
	if len(stored) == 0 {
		return 0, false
	}
	h := stored[len(stored)-1]
	b.index[st][k] = stored[:len(stored)-1]
	return h, true
}

func (b *diffBuilder) insert(op *diffOp) int {
	h := len(b.arena)
	last := b.arena[0].prev
	b.arena = append(b.arena, linkNode{prev: last, next: 0, op: op})
	b.arena[last].next = h
	b.arena[0].prev = h
	return h
}

func (b *diffBuilder) unlink(h int) {
	n := &b.arena[h]
	b.arena[n.prev].next = n.next
	b.arena[n.next].prev = n.prev
	n.op = nil
}

// after returns the pending edits following h, in list order.
func (b *diffBuilder) after(h int) []*diffOp {
	var res []*diffOp
	for cur := b.arena[h].next; cur != 0; cur = b.arena[cur].next {
		res = append(res, b.arena[cur].op)
	}
	return res
}

func (b *diffBuilder) itemAdded(parent pointer.Pointer, key editKey, item *ir.Node) {
	if h, ok := b.takeIndex(item, stRemove); ok {
		op := b.arena[h].op
		if op.key.t == keyIndex && key.t == keyIndex {
			k := op.key.i
			for _, v := range b.after(h) {
				k = v.onUndoRemove(op.parent, k)
			}
			op.key.i = k
		}
		b.unlink(h)
		if !op.parent.Equal(parent) || op.key != key {
			b.insert(&diffOp{
				kind:    OpMove,
				from:    op.parent,
				fromKey: op.key,
				parent:  parent,
				key:     key,
			})
		}
		return
	}
	h := b.insert(&diffOp{kind: OpAdd, parent: parent, key: key, value: item})
	b.storeIndex(item, h, stAdd)
}

func (b *diffBuilder) itemRemoved(parent pointer.Pointer, key editKey, item *ir.Node) {
	removeOp := &diffOp{kind: OpRemove, parent: parent, key: key}
	h, ok := b.takeIndex(item, stAdd)
	newH := b.insert(removeOp)
	if !ok {
		b.storeIndex(item, newH, stRemove)
		return
	}
	op := b.arena[h].op
	// Renumber only when the earlier add targets an array; field keys
	// that look numeric must not shift.
	if op.key.t == keyIndex {
		k := op.key.i
		for _, v := range b.after(h) {
			k = v.onUndoAdd(op.parent, k)
		}
		op.key.i = k
	}
	b.unlink(h)
	if removeOp.sameLocation(op) {
		// removed where it was added: the pair cancels
		b.unlink(newH)
		return
	}
	// keep the remove's list position, turned into a move
	removeOp.kind = OpMove
	removeOp.from = removeOp.parent
	removeOp.fromKey = removeOp.key
	removeOp.parent = op.parent
	removeOp.key = op.key
}

func (b *diffBuilder) itemReplaced(parent pointer.Pointer, key editKey, item *ir.Node) {
	b.insert(&diffOp{kind: OpReplace, parent: parent, key: key, value: item})
}

func (b *diffBuilder) compare(parent pointer.Pointer, key editKey, src, dst *ir.Node, depth int) error {
	switch {
	case src.Type == ir.ObjectType && dst.Type == ir.ObjectType:
		return b.compareObjects(joinPath(parent, key), src, dst, depth)
	case src.Type == ir.ArrayType && dst.Type == ir.ArrayType:
		return b.compareArrays(joinPath(parent, key), src, dst, depth)
	default:
		if b.canonEqual(src, dst) {
			return nil
		}
		b.itemReplaced(parent, key, dst)
		return nil
	}
}

func (b *diffBuilder) compareObjects(path pointer.Pointer, src, dst *ir.Node, depth int) error {
	if b.maxDepth > 0 && depth > b.maxDepth {
		return fmt.Errorf("%w (%d)", ErrTooDeep, b.maxDepth)
	}
	srcIdx := make(map[string]int, len(src.Keys))
	for i, k := range src.Keys {
		srcIdx[k] = i
	}
	dstIdx := make(map[string]int, len(dst.Keys))
	for i, k := range dst.Keys {
		dstIdx[k] = i
	}
	// key sets are visited sorted so output order is deterministic
	for _, k := range slices.Sorted(maps.Keys(srcIdx)) {
		if _, ok := dstIdx[k]; !ok {
			b.itemRemoved(path, fieldKey(k), src.Values[srcIdx[k]])
		}
	}
	for _, k := range slices.Sorted(maps.Keys(dstIdx)) {
		if _, ok := srcIdx[k]; !ok {
			b.itemAdded(path, fieldKey(k), dst.Values[dstIdx[k]])
		}
	}
	for _, k := range slices.Sorted(maps.Keys(srcIdx)) {
		j, ok := dstIdx[k]
		if !ok {
			continue
		}
		err := b.compare(path, fieldKey(k), src.Values[srcIdx[k]], dst.Values[j], depth+1)
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *diffBuilder) compareArrays(path pointer.Pointer, src, dst *ir.Node, depth int) error {
	if b.maxDepth > 0 && depth > b.maxDepth {
		return fmt.Errorf("%w (%d)", ErrTooDeep, b.maxDepth)
	}
	lenSrc, lenDst := len(src.Values), len(dst.Values)
	for key := range max(lenSrc, lenDst) {
		switch {
		case key < min(lenSrc, lenDst):
			old, new := src.Values[key], dst.Values[key]
			switch {
			case b.canonEqual(old, new):
			case old.Type == ir.ObjectType && new.Type == ir.ObjectType:
				if err := b.compareObjects(path.Append(strconv.Itoa(key)), old, new, depth+1); err != nil {
					return err
				}
			case old.Type == ir.ArrayType && new.Type == ir.ArrayType:
				if err := b.compareArrays(path.Append(strconv.Itoa(key)), old, new, depth+1); err != nil {
					return err
				}
			default:
				b.itemRemoved(path, indexKey(key), old)
				b.itemAdded(path, indexKey(key), new)
			}
		case lenSrc > lenDst:
			// the shrinking tail is always removed at the first index
			// past the destination's end
			b.itemRemoved(path, indexKey(lenDst), src.Values[key])
		default:
			b.itemAdded(path, indexKey(key), dst.Values[key])
		}
	}
	return nil
}

// execute walks the pending edits in order, collapsing a remove
// directly followed by an add at the same location into a replace, and
// freezes each edit into an immutable operation.
func (b *diffBuilder) execute() Patch {
	var res Patch
	cur := b.arena[0].next
	for cur != 0 {
		next := b.arena[cur].next
		if next != 0 {
			first, second := b.arena[cur].op, b.arena[next].op
			if first.kind == OpRemove && second.kind == OpAdd &&
				first.sameLocation(second) {
				res = append(res, &ReplaceOp{
					Path:  second.path(),
					Value: second.value.Clone(),
				})
				cur = b.arena[next].next
				continue
			}
		}
		res = append(res, b.freeze(b.arena[cur].op))
		cur = next
	}
	return res
}

func (b *diffBuilder) freeze(op *diffOp) Operation {
	switch op.kind {
	case OpAdd:
		return &AddOp{Path: op.path(), Value: op.value.Clone()}
	case OpRemove:
		return &RemoveOp{Path: op.path()}
	case OpReplace:
		return &ReplaceOp{Path: op.path(), Value: op.value.Clone()}
	case OpMove:
		return &MoveOp{From: joinPath(op.from, op.fromKey), Path: op.path()}
	}
	panic("kind")
}

func (b *diffBuilder) canonEqual(x, y *ir.Node) bool {
	return bytes.Equal(b.canon(x), b.canon(y))
}
