package doc

// Equal reports whether a and b are structurally equal.
//
// Maps compare as key sets (order-insensitive), lists element-wise in order.
// Int and Float compare by numeric value; NaN is never equal to anything.
// A nil Value and Null are equal.
func Equal(a, b Value) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}

	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		switch bv := b.(type) {
		case Int:
			return av == bv
		case Float:
			return float64(av) == float64(bv)
		}
		return false
	case Float:
		switch bv := b.(type) {
		case Float:
			return av == bv
		case Int:
			return float64(av) == float64(bv)
		}
		return false
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Time:
		bv, ok := b.(Time)
		return ok && av.Equal(bv.Time)
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv, ok := b.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			other, ok := bv.values[k]
			if !ok || !Equal(av.values[k], other) {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a deep copy of v. Scalars are immutable and returned as is.
func Clone(v Value) Value {
	switch val := v.(type) {
	case List:
		if val == nil {
			return List(nil)
		}
		out := make(List, len(val))
		for i, elem := range val {
			out[i] = Clone(elem)
		}
		return out
	case *Map:
		if val == nil {
			return (*Map)(nil)
		}
		out := &Map{
			keys:   make([]string, len(val.keys)),
			values: make(map[string]Value, len(val.values)),
		}
		copy(out.keys, val.keys)
		for k, elem := range val.values {
			out.values[k] = Clone(elem)
		}
		return out
	default:
		return v
	}
}
