package header

import (
	"fmt"
	"reflect"
	"unicode"

	"github.com/roach88/orso/internal/errs"
)

// Validate runs the checks of r and of every record nested in it.
// The first failure is returned with the path of the record that raised it.
func Validate(r Record) error {
	return validate("", r)
}

func validate(path string, r Record) error {
	if isNil(r) {
		return nil
	}
	if c, ok := r.(Checker); ok {
		if err := c.Check(); err != nil {
			return atPath(path, err)
		}
	}
	values := r.Values()
	for _, f := range r.Type().Fields {
		if err := validateValue(join(path, f.Name), values[f.Name]); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(path string, v any) error {
	if isNil(v) {
		return nil
	}
	if rec, ok := v.(Record); ok {
		return validate(path, rec)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil
	}
	for i := 0; i < rv.Len(); i++ {
		if err := validateValue(fmt.Sprintf("%s[%d]", path, i), rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

// atPath fills in the path of a pathless engine error.
func atPath(path string, err error) error {
	if e, ok := err.(*errs.Error); ok && e.Path == "" && path != "" {
		out := *e
		out.Path = path
		return &out
	}
	return err
}

// CheckUnit is the unit predicate: a unit, when present, must be ASCII text.
func CheckUnit(unit *string) error {
	if unit == nil {
		return nil
	}
	for _, r := range *unit {
		if r > unicode.MaxASCII || (unicode.IsControl(r) && r != '\t') {
			return errs.Newf(errs.CodeUnitMismatch, "", "unit %q is not ASCII text", *unit)
		}
	}
	return nil
}
