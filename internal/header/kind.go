package header

import (
	"fmt"
	"strings"
)

// KindClass identifies the shape of a declared field value.
type KindClass int

const (
	ClassScalar KindClass = iota
	ClassNested
	ClassList
	ClassUnion
	ClassEnum
)

// Primitive identifies a scalar type.
type Primitive int

const (
	String Primitive = iota
	Float
	Int
	Bool
	Time
)

// String returns the primitive's schema name.
func (p Primitive) String() string {
	switch p {
	case String:
		return "string"
	case Float:
		return "float"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Time:
		return "datetime"
	default:
		return fmt.Sprintf("primitive(%d)", int(p))
	}
}

// Kind describes the value a field accepts. Kinds are values and never
// mutated; build them with Scalar, Nested, ListOf, UnionOf and Enumeration.
type Kind struct {
	Class     KindClass
	Primitive Primitive // ClassScalar
	Record    string    // ClassNested: name of a registered Type
	Elem      *Kind     // ClassList
	Alts      []Kind    // ClassUnion, in precedence order
	Allowed   []string  // ClassEnum
}

// Scalar returns the kind of a primitive value.
func Scalar(p Primitive) Kind {
	return Kind{Class: ClassScalar, Primitive: p}
}

// Nested returns the kind of a record of the named type.
func Nested(typeName string) Kind {
	return Kind{Class: ClassNested, Record: typeName}
}

// ListOf returns the kind of a sequence whose elements are elem.
func ListOf(elem Kind) Kind {
	return Kind{Class: ClassList, Elem: &elem}
}

// UnionOf returns the kind accepting the first matching alternative.
func UnionOf(alts ...Kind) Kind {
	return Kind{Class: ClassUnion, Alts: alts}
}

// Enumeration returns the kind of a closed set of string literals.
func Enumeration(allowed ...string) Kind {
	return Kind{Class: ClassEnum, Allowed: allowed}
}

// String renders the kind the way error messages name declared types,
// e.g. "list[Column|ErrorColumn]" or "enum(neutron,x-ray)".
func (k Kind) String() string {
	switch k.Class {
	case ClassScalar:
		return k.Primitive.String()
	case ClassNested:
		return k.Record
	case ClassList:
		if k.Elem == nil {
			return "list[?]"
		}
		return "list[" + k.Elem.String() + "]"
	case ClassUnion:
		parts := make([]string, len(k.Alts))
		for i, alt := range k.Alts {
			parts[i] = alt.String()
		}
		return strings.Join(parts, "|")
	case ClassEnum:
		return "enum(" + strings.Join(k.Allowed, ",") + ")"
	default:
		return fmt.Sprintf("kind(%d)", int(k.Class))
	}
}

// references appends the names of every record type k can contain.
func (k Kind) references(out []string) []string {
	switch k.Class {
	case ClassNested:
		out = append(out, k.Record)
	case ClassList:
		if k.Elem != nil {
			out = k.Elem.references(out)
		}
	case ClassUnion:
		for _, alt := range k.Alts {
			out = alt.references(out)
		}
	}
	return out
}

// allows reports whether s is one of the enumeration's literals.
func (k Kind) allows(s string) bool {
	for _, a := range k.Allowed {
		if a == s {
			return true
		}
	}
	return false
}
