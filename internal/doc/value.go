package doc

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Value is a sealed interface over generic document nodes.
// Only Null, Bool, Int, Float, String, Time, List and *Map implement it.
type Value interface {
	docValue() // Sealed
}

// Null represents an explicit null (YAML `null`, `~` or an empty value).
type Null struct{}

func (Null) docValue() {}

// Bool represents a boolean scalar.
type Bool bool

func (Bool) docValue() {}

// Int represents an integer scalar.
type Int int64

func (Int) docValue() {}

// Float represents a floating-point scalar.
type Float float64

func (Float) docValue() {}

// String represents a text scalar.
type String string

func (String) docValue() {}

// Time represents a timestamp produced by projecting a typed record.
// Text decoding never produces Time; see the package documentation.
type Time struct {
	time.Time
}

func (Time) docValue() {}

// List represents a sequence of values.
type List []Value

func (List) docValue() {}

// From converts a plain Go value into a document Value.
//
// Supported inputs are nil, bool, the integer kinds (unsigned values above
// math.MaxInt64 are rejected), float32/float64, string,
// time.Time, []any, []string, []float64, map[string]any (keys sorted for
// determinism), *Map and Value itself.
func From(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint8:
		return Int(val), nil
	case uint16:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case uint:
		return fromUint(uint64(val))
	case uint64:
		return fromUint(val)
	case float32:
		return Float(val), nil
	case float64:
		return Float(val), nil
	case string:
		return String(val), nil
	case time.Time:
		return Time{val}, nil
	case []string:
		out := make(List, len(val))
		for i, s := range val {
			out[i] = String(s)
		}
		return out, nil
	case []float64:
		out := make(List, len(val))
		for i, f := range val {
			out[i] = Float(f)
		}
		return out, nil
	case []any:
		out := make(List, len(val))
		for i, elem := range val {
			d, err := From(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = d
		}
		return out, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := NewMap()
		for _, k := range keys {
			d, err := From(val[k])
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			out.Set(k, d)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

func fromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return nil, fmt.Errorf("integer %d overflows int64", u)
	}
	return Int(u), nil
}

// MustFrom is From for literals in tests and tables; it panics on error.
func MustFrom(v any) Value {
	d, err := From(v)
	if err != nil {
		panic(err)
	}
	return d
}

// Native converts a document Value back into plain Go values:
// nil, bool, int64, float64, string, []any and map[string]any.
// Time becomes an RFC 3339 string, which is how it appears on disk.
func Native(v Value) any {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case String:
		return string(val)
	case Time:
		return val.Format(time.RFC3339Nano)
	case List:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = Native(elem)
		}
		return out
	case *Map:
		out := make(map[string]any, val.Len())
		for _, k := range val.Keys() {
			elem, _ := val.Get(k)
			out[k] = Native(elem)
		}
		return out
	default:
		return nil
	}
}

// KindName returns a short human-readable name of v's node kind,
// used in type-mismatch messages.
func KindName(v Value) string {
	switch v.(type) {
	case nil, Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Time:
		return "timestamp"
	case List:
		return "sequence"
	case *Map:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// IsNull reports whether v is absent or an explicit null.
func IsNull(v Value) bool {
	switch v.(type) {
	case nil, Null:
		return true
	}
	return false
}
