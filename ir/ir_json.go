package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// MarshalJSON encodes the node as a plain JSON value, preserving object
// field order and raw number literals.
func (y *Node) MarshalJSON() ([]byte, error) {
	return appendJSON(nil, y)
}

func appendJSON(dst []byte, y *Node) ([]byte, error) {
	switch y.Type {
	case NullType:
		return append(dst, "null"...), nil
	case BoolType:
		if y.Bool {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil
	case NumberType:
		return append(dst, y.NumberString()...), nil
	case StringType:
		d, err := json.Marshal(y.String)
		if err != nil {
			return nil, err
		}
		return append(dst, d...), nil
	case ArrayType:
		dst = append(dst, '[')
		for i, v := range y.Values {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			dst, err = appendJSON(dst, v)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case ObjectType:
		dst = append(dst, '{')
		for i, key := range y.Keys {
			if i > 0 {
				dst = append(dst, ',')
			}
			d, err := json.Marshal(key)
			if err != nil {
				return nil, err
			}
			dst = append(dst, d...)
			dst = append(dst, ':')
			dst, err = appendJSON(dst, y.Values[i])
			if err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	}
	return nil, fmt.Errorf("%w: unknown node type %d", ErrDecode, y.Type)
}

// UnmarshalJSON decodes a JSON value, keeping object field order and
// raw number literals. Duplicate object keys are rejected.
func (y *Node) UnmarshalJSON(d []byte) error {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	n, err := decodeValue(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after value", ErrDecode)
	}
	*y = *n
	return nil
}

// DecodeJSON reads one JSON value from dec into a node tree. The
// decoder must have UseNumber set for number literals to be preserved.
func DecodeJSON(dec *json.Decoder) (*Node, error) {
	return decodeValue(dec)
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: unexpected end of input", ErrDecode)
		}
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("%w: unexpected %q", ErrDecode, t.String())
	case string:
		return FromString(t), nil
	case json.Number:
		return FromNumber(t.String()), nil
	case bool:
		return FromBool(t), nil
	case nil:
		return Null(), nil
	}
	return nil, fmt.Errorf("%w: unexpected token %v", ErrDecode, tok)
}

func decodeObject(dec *json.Decoder) (*Node, error) {
	res := &Node{Type: ObjectType}
	seen := map[string]bool{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return res, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key is not a string", ErrDecode)
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate object key %q", ErrDecode, key)
		}
		seen[key] = true
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		res.Keys = append(res.Keys, key)
		res.Values = append(res.Values, val)
	}
}

func decodeArray(dec *json.Decoder) (*Node, error) {
	res := &Node{Type: ArrayType}
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		res.Values = append(res.Values, val)
	}
	// consume the closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return res, nil
}
