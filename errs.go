package docpatch

import "errors"

var (
	// ErrInvalidPatch reports a patch document that is structurally
	// malformed: not an array, an unknown op, or a missing member.
	ErrInvalidPatch = errors.New("invalid patch")
	// ErrConflict reports an operation whose target state does not
	// permit it, such as removing a field that is not there.
	ErrConflict = errors.New("patch conflict")
	// ErrTestFailed reports a test operation whose value did not match.
	ErrTestFailed = errors.New("test failed")
	// ErrTooDeep reports documents nested beyond the diff depth limit.
	ErrTooDeep = errors.New("diff depth limit exceeded")
)
