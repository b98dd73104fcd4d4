package parse

import (
	"fmt"
	"math"

	"github.com/signadot/docpatch/ir"

	"github.com/goccy/go-yaml"
)

func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %s", ir.ErrDecode, err)
	}
	return fromYAML(v)
}

func fromYAML(v any) (*ir.Node, error) {
	switch t := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(t), nil
	case string:
		return ir.FromString(t), nil
	case int:
		return ir.FromInt(int64(t)), nil
	case int64:
		return ir.FromInt(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return ir.FromFloat(float64(t)), nil
		}
		return ir.FromInt(int64(t)), nil
	case float64:
		return ir.FromFloat(t), nil
	case []any:
		res := make([]*ir.Node, len(t))
		for i, elt := range t {
			n, err := fromYAML(elt)
			if err != nil {
				return nil, err
			}
			res[i] = n
		}
		return ir.FromSlice(res), nil
	case yaml.MapSlice:
		res := ir.FromKeyVals(nil)
		for _, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}
			if res.FieldIndex(key) != -1 {
				return nil, fmt.Errorf("%w: duplicate key %q", ir.ErrDecode, key)
			}
			val, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			res.SetField(key, val)
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: unsupported yaml value %T", ir.ErrDecode, v)
}
