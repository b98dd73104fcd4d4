package parse

import "github.com/signadot/docpatch/format"

type ParseOption func(*parseState)

type parseState struct {
	format format.Format
}

func newParseState(opts []ParseOption) *parseState {
	ps := &parseState{}
	for _, opt := range opts {
		opt(ps)
	}
	return ps
}

// ParseFormat selects the input text format.
func ParseFormat(f format.Format) ParseOption {
	return func(ps *parseState) { ps.format = f }
}
