// Package pointer implements RFC 6901 style addressing of locations in
// a document node tree.
//
// A pointer is a sequence of reference tokens. Within the string form,
// tokens are separated by "/" and escape "~" as "~0" and "/" as "~1".
// The empty string addresses the whole document.
package pointer

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/docpatch/ir"
)

var (
	// ErrSyntax reports a malformed pointer string.
	ErrSyntax = errors.New("invalid pointer")
	// ErrNotFound reports a pointer that does not resolve against the
	// document it was applied to.
	ErrNotFound = errors.New("pointer not found")
)

// Pointer is an immutable sequence of decoded reference tokens. The
// zero value addresses the document root. Methods never mutate their
// receiver; derived pointers are fresh copies.
type Pointer []string

// Parse parses the string form of a pointer. A non-empty pointer must
// start with "/".
func Parse(s string) (Pointer, error) {
	if s == "" {
		return nil, nil
	}
	if s[0] != '/' {
		return nil, fmt.Errorf("%w: %q does not start with '/'", ErrSyntax, s)
	}
	parts := strings.Split(s[1:], "/")
	res := make(Pointer, len(parts))
	for i, part := range parts {
		tok, err := Unescape(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrSyntax, s, err)
		}
		res[i] = tok
	}
	return res, nil
}

// Escape encodes a token for use in the string form: "~" becomes "~0"
// and "/" becomes "~1".
func Escape(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}

// Unescape decodes one token, rejecting malformed "~" escapes.
func Unescape(part string) (string, error) {
	if !strings.ContainsRune(part, '~') {
		return part, nil
	}
	var b strings.Builder
	for i := 0; i < len(part); i++ {
		c := part[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(part) {
			return "", errors.New("dangling '~'")
		}
		i++
		switch part[i] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", fmt.Errorf("bad escape ~%c", part[i])
		}
	}
	return b.String(), nil
}

func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range p {
		b.WriteByte('/')
		b.WriteString(Escape(tok))
	}
	return b.String()
}

// Append returns a new pointer with tok added; p is unchanged.
func (p Pointer) Append(tok string) Pointer {
	res := make(Pointer, len(p)+1)
	copy(res, p)
	res[len(p)] = tok
	return res
}

// Parent returns the pointer to the enclosing container, or nil for the
// root pointer.
func (p Pointer) Parent() Pointer {
	if len(p) == 0 {
		return nil
	}
	return slices.Clone(p[:len(p)-1])
}

// Key returns the final reference token. It panics on the root pointer.
func (p Pointer) Key() string {
	return p[len(p)-1]
}

// Equal reports whether two pointers have identical tokens.
func (p Pointer) Equal(q Pointer) bool {
	return slices.Equal(p, q)
}

// Contains reports whether q is a prefix of p, that is, whether p
// addresses a location inside (or at) the value addressed by q.
func (p Pointer) Contains(q Pointer) bool {
	if len(q) > len(p) {
		return false
	}
	return slices.Equal(p[:len(q)], q)
}

// ResolveParent walks all tokens except the last and returns the
// enclosing container together with the final token. For the root
// pointer it returns (nil, "", nil), signaling an operation on the
// document itself. Intermediate tokens that do not resolve, or that
// address a non-container, yield ErrNotFound.
func (p Pointer) ResolveParent(doc *ir.Node) (*ir.Node, string, error) {
	if len(p) == 0 {
		return nil, "", nil
	}
	cur := doc
	for i := 0; i < len(p)-1; i++ {
		next, err := Walk(cur, p[i])
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s at token %d", ErrNotFound, p, i)
		}
		cur = next
	}
	return cur, p[len(p)-1], nil
}

// Resolve walks the full pointer and returns the addressed value.
func (p Pointer) Resolve(doc *ir.Node) (*ir.Node, error) {
	container, key, err := p.ResolveParent(doc)
	if err != nil {
		return nil, err
	}
	if container == nil {
		return doc, nil
	}
	return Walk(container, key)
}

// Walk looks key up in container: an index for arrays, a field name
// for objects. The container's type decides how the token is read, not
// the token's syntax.
func Walk(container *ir.Node, key string) (*ir.Node, error) {
	switch container.Type {
	case ir.ObjectType:
		if v := ir.Get(container, key); v != nil {
			return v, nil
		}
		return nil, fmt.Errorf("%w: no field %q", ErrNotFound, key)
	case ir.ArrayType:
		idx, err := ArrayIndex(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		if idx >= len(container.Values) {
			return nil, fmt.Errorf("%w: index %d out of range (len %d)", ErrNotFound, idx, len(container.Values))
		}
		return container.Values[idx], nil
	default:
		return nil, fmt.Errorf("%w: cannot traverse %s value", ErrNotFound, container.Type)
	}
}

// ArrayIndex parses a token as a non-negative array index. The "-"
// token is not an index; callers that accept it check for it first.
func ArrayIndex(tok string) (int, error) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, fmt.Errorf("invalid array index %q", tok)
	}
	idx, err := strconv.Atoi(tok)
	if err != nil || idx < 0 || tok[0] == '+' {
		return 0, fmt.Errorf("invalid array index %q", tok)
	}
	return idx, nil
}
