package header

import "github.com/roach88/orso/internal/doc"

// Record is a node of the header tree.
//
// Concrete records are pointers to structs that embed Base:
//
//	type Software struct {
//		header.Base
//		Name    string
//		Version *string
//	}
//
//	func (*Software) Type() *header.Type { return SoftwareType }
//	func (s *Software) Values() header.Values {
//		return header.Values{"name": s.Name, "version": s.Version}
//	}
type Record interface {
	// Type returns the record's schema descriptor.
	Type() *Type

	// Values returns the declared fields keyed by field name. Nil pointers,
	// nil slices and nil records are absent.
	Values() Values

	base() *Base
}

// Base is the substructure shared by every record.
type Base struct {
	// Comment is the implicit optional comment field.
	Comment *string

	// Extra holds undeclared keys of open record types, in input order.
	Extra *doc.Map
}

func (b *Base) base() *Base { return b }

// Checker is implemented by records with construction-time checks beyond
// their field kinds, such as the unit predicate.
type Checker interface {
	Check() error
}

// Ref returns a pointer to v. It keeps optional fields of record literals
// on one line: Unit: header.Ref("1/angstrom").
func Ref[T any](v T) *T {
	return &v
}
