package header

import (
	"fmt"
	"time"
)

// Empty builds a skeleton record of the named type: every required field is
// populated and every optional field is absent.
//
// Required scalars take their zero value, enumerations their first literal
// and unions their first alternative. Required nested records are built
// recursively and required lists hold a single empty element. Recursion
// terminates because NewRegistry rejects cyclic schemas.
func (r *Registry) Empty(typeName string) (Record, error) {
	t, ok := r.types[typeName]
	if !ok {
		return nil, fmt.Errorf("empty: unregistered type %q", typeName)
	}

	values := make(Values, len(t.Fields))
	for _, f := range t.Fields {
		if f.Optional {
			continue
		}
		v, err := r.emptyValue(f.Kind)
		if err != nil {
			return nil, fmt.Errorf("empty: %s.%s: %w", t.Name, f.Name, err)
		}
		values[f.Name] = v
	}

	rec, err := t.New(values)
	if err != nil {
		return nil, fmt.Errorf("empty: construct %s: %w", t.Name, err)
	}
	return rec, nil
}

func (r *Registry) emptyValue(k Kind) (any, error) {
	switch k.Class {
	case ClassScalar:
		switch k.Primitive {
		case String:
			return "", nil
		case Float:
			return float64(0), nil
		case Int:
			return int64(0), nil
		case Bool:
			return false, nil
		case Time:
			return time.Time{}, nil
		}
	case ClassEnum:
		return k.Allowed[0], nil
	case ClassNested:
		return r.Empty(k.Record)
	case ClassList:
		elem, err := r.emptyValue(*k.Elem)
		if err != nil {
			return nil, err
		}
		return []any{elem}, nil
	case ClassUnion:
		return r.emptyValue(k.Alts[0])
	}
	return nil, fmt.Errorf("no skeleton for %s", k)
}
