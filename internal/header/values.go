package header

// Values holds resolved field values keyed by declared field name.
//
// The resolver stores string, float64, int64, bool and time.Time for scalar
// kinds, string for enumerations, a Record for nested kinds, []any for lists
// and whichever alternative matched for unions. Absent fields have no key.
type Values map[string]any

// Has reports whether the field is present.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// Get returns the named value as T, or T's zero value when the field is
// absent or holds another type.
func Get[T any](v Values, name string) T {
	out, _ := v[name].(T)
	return out
}

// Ptr returns a pointer to the named value, or nil when the field is absent.
func Ptr[T any](v Values, name string) *T {
	out, ok := v[name].(T)
	if !ok {
		return nil
	}
	return &out
}

// List returns the elements of a list field that are of type T.
// It returns nil when the field is absent.
func List[T any](v Values, name string) []T {
	raw, ok := v[name].([]any)
	if !ok {
		return nil
	}
	out := make([]T, 0, len(raw))
	for _, elem := range raw {
		if t, ok := elem.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
