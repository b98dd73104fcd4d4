package ir

// Equal reports structural equality of two nodes. Scalar types never
// compare equal across type tags: the number 1 is not the boolean true
// and not the string "1". Object field order is ignored; array order is
// significant.
//
// Numbers compare by numeric value, so 1 and 1.0 are Equal even when
// their serialized forms differ.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		return equalNumbers(a, b)
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(a.Keys) != len(b.Keys) {
			return false
		}
		for i, key := range a.Keys {
			j := b.FieldIndex(key)
			if j < 0 {
				return false
			}
			if !Equal(a.Values[i], b.Values[j]) {
				return false
			}
		}
		return true
	}
	return false
}

func equalNumbers(a, b *Node) bool {
	if a.Int64 != nil && b.Int64 != nil {
		return *a.Int64 == *b.Int64
	}
	af, aok := a.floatValue()
	bf, bok := b.floatValue()
	if aok && bok {
		return af == bf
	}
	// no parsed value on at least one side, fall back to the literal
	return a.NumberString() == b.NumberString()
}

func (y *Node) floatValue() (float64, bool) {
	if y.Int64 != nil {
		return float64(*y.Int64), true
	}
	if y.Float64 != nil {
		return *y.Float64, true
	}
	return 0, false
}
