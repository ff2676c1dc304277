package doc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// UnmarshalJSON decodes JSON text into a Value.
//
// Numbers without a fraction or exponent become Int, all others Float.
// Object keys come back sorted because JSON objects carry no order; typed
// resolution restores declaration order.
func UnmarshalJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return fromJSON(raw)
}

func fromJSON(v any) (Value, error) {
	switch val := v.(type) {
	case json.Number:
		s := string(val)
		if !strings.ContainsAny(s, ".eE") {
			if n, err := val.Int64(); err == nil {
				return Int(n), nil
			}
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %s: %w", s, err)
		}
		return Float(f), nil
	case []any:
		out := make(List, len(val))
		for i, elem := range val {
			d, err := fromJSON(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			out[i] = d
		}
		return out, nil
	case map[string]any:
		m := NewMap()
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			d, err := fromJSON(val[k])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			m.Set(k, d)
		}
		return m, nil
	default:
		return From(v)
	}
}
