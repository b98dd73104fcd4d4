package encode

import (
	"io"

	"github.com/signadot/docpatch/ir"

	"github.com/goccy/go-yaml"
)

func encodeYAML(node *ir.Node, w io.Writer) error {
	d, err := yaml.Marshal(toYAML(node))
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// toYAML maps a node to the goccy value model, using yaml.MapSlice for
// objects so field order survives encoding.
func toYAML(y *ir.Node) any {
	switch y.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return y.Bool
	case ir.StringType:
		return y.String
	case ir.NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return y.NumberString()
	case ir.ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = toYAML(v)
		}
		return res
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(y.Keys))
		for i, k := range y.Keys {
			res[i] = yaml.MapItem{Key: k, Value: toYAML(y.Values[i])}
		}
		return res
	}
	panic("type")
}
