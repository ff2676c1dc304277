package header

import (
	"fmt"
	"reflect"
	"time"

	"github.com/roach88/orso/internal/doc"
)

// ToDict projects a record to its clean ordered mapping.
//
// Declared fields come first in declaration order, followed by extension
// keys and finally the comment. Absent optional fields are omitted; a
// required field is always emitted (null if the record leaves it unset).
// Zero values that are present, such as a *float64 pointing at 0, are kept.
func ToDict(r Record) *doc.Map {
	out := doc.NewMap()
	if isNil(r) {
		return out
	}

	t := r.Type()
	values := r.Values()
	for _, f := range t.Fields {
		v, ok := project(values[f.Name])
		if !ok {
			if f.Optional {
				continue
			}
			v = doc.Null{}
		}
		out.Set(f.Name, v)
	}

	b := r.base()
	for _, k := range b.Extra.Keys() {
		v, _ := b.Extra.Get(k)
		out.Set(k, doc.Clone(v))
	}
	if b.Comment != nil {
		out.Set(CommentField, doc.String(*b.Comment))
	}
	return out
}

// Equal reports whether two records have equal projections.
// The comment takes part in the comparison.
func Equal(a, b Record) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	return doc.Equal(ToDict(a), ToDict(b))
}

// project converts one field value to a document value. The boolean is
// false when the value is absent.
//
// Values of kinds the document model cannot hold project to their fmt
// representation.
func project(v any) (doc.Value, bool) {
	if isNil(v) {
		return nil, false
	}

	switch val := v.(type) {
	case Record:
		return ToDict(val), true
	case doc.Value:
		return doc.Clone(val), true
	case string:
		return doc.String(val), true
	case float64:
		return doc.Float(val), true
	case int64:
		return doc.Int(val), true
	case int:
		return doc.Int(val), true
	case bool:
		return doc.Bool(val), true
	case time.Time:
		return doc.Time{Time: val}, true
	case []any:
		out := make(doc.List, 0, len(val))
		for _, elem := range val {
			p, ok := project(elem)
			if !ok {
				p = doc.Null{}
			}
			out = append(out, p)
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return project(rv.Elem().Interface())
	}
	if s, ok := v.(fmt.Stringer); ok {
		return doc.String(s.String()), true
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make(doc.List, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			p, ok := project(rv.Index(i).Interface())
			if !ok {
				p = doc.Null{}
			}
			out = append(out, p)
		}
		return out, true
	case reflect.String:
		return doc.String(rv.String()), true
	case reflect.Float32, reflect.Float64:
		return doc.Float(rv.Float()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return doc.Int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return doc.Int(int64(rv.Uint())), true
	case reflect.Bool:
		return doc.Bool(rv.Bool()), true
	}
	return doc.String(fmt.Sprint(v)), true
}

// isNil reports whether v is nil or a typed nil pointer, slice, map or
// interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func:
		return rv.IsNil()
	}
	return false
}
