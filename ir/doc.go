// Package ir defines the document value model used by docpatch.
//
// A document is a tree of [Node] values covering the JSON data model:
// null, booleans, numbers, strings, arrays, and objects. Objects keep
// their field insertion order for serialization; equality between
// objects does not depend on it.
//
// # Related Packages
//
//   - github.com/signadot/docpatch/parse - Parses JSON/YAML text into nodes
//   - github.com/signadot/docpatch/encode - Encodes nodes to text
//   - github.com/signadot/docpatch/pointer - Addresses locations in a node tree
package ir
