package ir

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// FromAny converts a generic Go value into a node tree. Maps come out
// with sorted keys.
func FromAny(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return t.Clone(), nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case json.Number:
		return FromNumber(t.String()), nil
	case int:
		return FromInt(int64(t)), nil
	case int8:
		return FromInt(int64(t)), nil
	case int16:
		return FromInt(int64(t)), nil
	case int32:
		return FromInt(int64(t)), nil
	case int64:
		return FromInt(t), nil
	case uint:
		return FromInt(int64(t)), nil
	case uint8:
		return FromInt(int64(t)), nil
	case uint16:
		return FromInt(int64(t)), nil
	case uint32:
		return FromInt(int64(t)), nil
	case uint64:
		return FromInt(int64(t)), nil
	case float32:
		return FromFloat(float64(t)), nil
	case float64:
		return FromFloat(t), nil
	case []any:
		vs := make([]*Node, len(t))
		for i, e := range t {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			vs[i] = n
		}
		return FromSlice(vs), nil
	case map[string]any:
		res := &Node{Type: ObjectType}
		for _, key := range slices.Sorted(maps.Keys(t)) {
			n, err := FromAny(t[key])
			if err != nil {
				return nil, err
			}
			res.Keys = append(res.Keys, key)
			res.Values = append(res.Values, n)
		}
		return res, nil
	default:
		return nil, fmt.Errorf("cannot represent %T as a document value", v)
	}
}

// ToAny converts a node tree into generic Go values: nil, bool, string,
// int64, float64, json.Number, []any and map[string]any.
func (y *Node) ToAny() any {
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return json.Number(y.NumberString())
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = v.ToAny()
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Keys))
		for i, key := range y.Keys {
			res[key] = y.Values[i].ToAny()
		}
		return res
	}
	return nil
}
