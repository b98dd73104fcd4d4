// Package docpatch implements patching of structured documents in the
// style of RFC 6902: a patch is a sequence of add, remove, replace,
// move, copy, and test operations addressed by pointers, and a diff
// between two documents produces such a patch, detecting moves and
// coalescing remove/add pairs into replacements.
//
// Documents are represented as [ir.Node] trees, which preserve object
// field order and number literals. Use the parse and encode packages to
// read and write them as JSON or YAML.
package docpatch
