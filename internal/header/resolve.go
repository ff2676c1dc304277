package header

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/orso/internal/doc"
	"github.com/roach88/orso/internal/errs"
)

// timeLayouts are tried in order when a string is resolved as a timestamp.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ResolveRecord resolves raw into a record of the named type.
func (r *Registry) ResolveRecord(typeName string, raw any) (Record, error) {
	if _, ok := r.types[typeName]; !ok {
		return nil, fmt.Errorf("resolve: unregistered type %q", typeName)
	}
	v, err := r.resolve("", Nested(typeName), raw)
	if err != nil {
		return nil, err
	}
	return v.(Record), nil
}

// Resolve coerces raw into a value of kind k.
//
// raw may be a document Value, a Record or a plain Go value. Values that
// already match k exactly are returned unchanged. Failures are
// TYPE_MISMATCH errors naming the field path and the declared kind.
// Resolution is a pure function of its inputs.
func (r *Registry) Resolve(k Kind, raw any) (any, error) {
	return r.resolve("", k, raw)
}

func (r *Registry) resolve(path string, k Kind, raw any) (any, error) {
	if v, ok := r.exact(k, raw); ok {
		return v, nil
	}

	value, ok := raw.(doc.Value)
	if !ok {
		if rec, isRecord := raw.(Record); isRecord && !isNil(rec) {
			return nil, mismatch(path, k, "record "+rec.Type().Name)
		}
		converted, err := doc.From(raw)
		if err != nil {
			return nil, errs.Wrap(errs.CodeTypeMismatch, path, fmt.Sprintf("cannot resolve %s", k), err)
		}
		value = converted
	}

	switch k.Class {
	case ClassNested:
		t, ok := r.types[k.Record]
		if !ok {
			return nil, errs.Newf(errs.CodeTypeMismatch, path, "unregistered type %q", k.Record)
		}
		return r.resolveRecord(path, t, value)
	case ClassScalar:
		return resolveScalar(path, k, value)
	case ClassList:
		return r.resolveList(path, k, value)
	case ClassUnion:
		return r.resolveUnion(path, k, value)
	case ClassEnum:
		s, ok := value.(doc.String)
		if !ok || !k.allows(string(s)) {
			return nil, mismatch(path, k, describe(value))
		}
		return string(s), nil
	}
	return nil, mismatch(path, k, describe(value))
}

// exact reports whether raw is already a resolved value of kind k.
func (r *Registry) exact(k Kind, raw any) (any, bool) {
	switch k.Class {
	case ClassNested:
		rec, ok := raw.(Record)
		if ok && !isNil(rec) && rec.Type().Name == k.Record {
			return rec, true
		}
	case ClassScalar:
		switch k.Primitive {
		case String:
			if s, ok := raw.(string); ok {
				return s, true
			}
		case Float:
			if f, ok := raw.(float64); ok {
				return f, true
			}
		case Int:
			if i, ok := raw.(int64); ok {
				return i, true
			}
		case Bool:
			if b, ok := raw.(bool); ok {
				return b, true
			}
		case Time:
			if t, ok := raw.(time.Time); ok {
				return t, true
			}
		}
	case ClassEnum:
		if s, ok := raw.(string); ok && k.allows(s) {
			return s, true
		}
	case ClassUnion:
		for _, alt := range k.Alts {
			if v, ok := r.exact(alt, raw); ok {
				return v, true
			}
		}
	}
	return nil, false
}

func (r *Registry) resolveRecord(path string, t *Type, value doc.Value) (Record, error) {
	m, ok := value.(*doc.Map)
	if !ok {
		return nil, mismatch(path, Nested(t.Name), describe(value))
	}

	values := make(Values, len(t.Fields))
	for _, f := range t.Fields {
		fieldPath := join(path, f.Name)
		raw, present := m.Get(f.Name)
		if !present || doc.IsNull(raw) {
			if f.Optional {
				continue
			}
			return nil, errs.Newf(errs.CodeTypeMismatch, fieldPath, "required field of %s is missing", t.Name)
		}
		v, err := r.resolve(fieldPath, f.Kind, raw)
		if err != nil {
			return nil, err
		}
		values[f.Name] = v
	}

	var (
		comment *string
		extra   *doc.Map
	)
	for _, key := range m.Keys() {
		if _, declared := t.Field(key); declared {
			continue
		}
		raw, _ := m.Get(key)
		if key == CommentField {
			if doc.IsNull(raw) {
				continue
			}
			s, err := resolveScalar(join(path, key), Scalar(String), raw)
			if err != nil {
				return nil, err
			}
			c := s.(string)
			comment = &c
			continue
		}
		if !t.Open {
			return nil, errs.Newf(errs.CodeTypeMismatch, join(path, key), "unknown field of %s", t.Name)
		}
		if extra == nil {
			extra = doc.NewMap()
		}
		extra.Set(key, doc.Clone(raw))
	}

	rec, err := t.New(values)
	if err != nil {
		return nil, errs.Wrap(errs.CodeTypeMismatch, path, fmt.Sprintf("cannot construct %s", t.Name), err)
	}
	if c, ok := rec.(Checker); ok {
		if err := c.Check(); err != nil {
			return nil, errs.Wrap(errs.CodeTypeMismatch, path, fmt.Sprintf("invalid %s", t.Name), err)
		}
	}
	b := rec.base()
	b.Comment = comment
	b.Extra = extra
	return rec, nil
}

func (r *Registry) resolveList(path string, k Kind, value doc.Value) ([]any, error) {
	items, ok := value.(doc.List)
	if !ok {
		// A lone scalar or mapping stands for a one-element list.
		items = doc.List{value}
	}
	out := make([]any, 0, len(items))
	for i, item := range items {
		v, err := r.resolve(fmt.Sprintf("%s[%d]", path, i), *k.Elem, item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *Registry) resolveUnion(path string, k Kind, value doc.Value) (any, error) {
	var failures []error
	for _, alt := range k.Alts {
		v, err := r.resolve(path, alt, value)
		if err == nil {
			return v, nil
		}
		failures = append(failures, err)
	}
	return nil, errs.Wrap(errs.CodeTypeMismatch, path,
		fmt.Sprintf("%s matches none of %s", describe(value), k), errors.Join(failures...))
}

func resolveScalar(path string, k Kind, value doc.Value) (any, error) {
	switch k.Primitive {
	case String:
		switch v := value.(type) {
		case doc.String:
			return string(v), nil
		case doc.Int:
			return strconv.FormatInt(int64(v), 10), nil
		case doc.Float:
			return strconv.FormatFloat(float64(v), 'g', -1, 64), nil
		case doc.Time:
			return v.Format(time.RFC3339Nano), nil
		}
	case Float:
		switch v := value.(type) {
		case doc.Float:
			return float64(v), nil
		case doc.Int:
			return float64(v), nil
		case doc.String:
			if f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64); err == nil {
				return f, nil
			}
		}
	case Int:
		switch v := value.(type) {
		case doc.Int:
			return int64(v), nil
		case doc.Float:
			if f := float64(v); f == math.Trunc(f) && math.Abs(f) < 1<<63 {
				return int64(f), nil
			}
		case doc.String:
			if i, err := strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64); err == nil {
				return i, nil
			}
		}
	case Bool:
		if v, ok := value.(doc.Bool); ok {
			return bool(v), nil
		}
	case Time:
		switch v := value.(type) {
		case doc.Time:
			return v.Time, nil
		case doc.String:
			if t, ok := parseTime(string(v)); ok {
				return t, nil
			}
		}
	}
	return nil, mismatch(path, k, describe(value))
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func mismatch(path string, k Kind, got string) *errs.Error {
	return errs.Newf(errs.CodeTypeMismatch, path, "expected %s, got %s", k, got)
}

func describe(v doc.Value) string {
	switch val := v.(type) {
	case doc.String:
		return fmt.Sprintf("string %q", string(val))
	case doc.Int, doc.Float, doc.Bool:
		return fmt.Sprintf("%s %v", doc.KindName(v), doc.Native(v))
	}
	return doc.KindName(v)
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
