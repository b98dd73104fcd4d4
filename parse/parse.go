// Package parse reads JSON or YAML text into document node trees.
package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/signadot/docpatch/format"
	"github.com/signadot/docpatch/ir"
)

// Parse decodes d into a node tree. The default input format is JSON;
// use ParseFormat to select YAML. Object field order is preserved and
// duplicate object keys are rejected.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	ps := newParseState(opts)
	if ps.format == format.YAMLFormat {
		return parseYAML(d)
	}
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	node, err := ir.DecodeJSON(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ir.ErrDecode)
	}
	return node, nil
}

// Reader decodes a single document from r.
func Reader(r io.Reader, opts ...ParseOption) (*ir.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(d, opts...)
}
