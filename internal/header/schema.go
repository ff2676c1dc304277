package header

// CommentField is the implicit optional field every record carries.
// It is not declared in Type.Fields and may not be redeclared.
const CommentField = "comment"

// Field declares one named field of a record type.
type Field struct {
	Name        string
	Kind        Kind
	Optional    bool
	Description string
}

// Constructor builds a record from resolved field values. Values holds only
// the fields that are present; absent optional fields have no key.
type Constructor func(v Values) (Record, error)

// Type is the schema descriptor of one record type.
//
// A Type is declared once as a package-level value and registered with
// NewRegistry, which precomputes its optional-field set. It must not be
// modified afterwards.
type Type struct {
	// Name is the unique type name used by Nested kinds.
	Name string

	// Fields lists the declared business fields in output order.
	Fields []Field

	// Open types keep unknown keys in Base.Extra instead of rejecting them.
	Open bool

	// New constructs a record from resolved values.
	New Constructor

	optional map[string]bool
}

// Field returns the declared field called name.
func (t *Type) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// IsOptional reports whether name is an optional field of t.
// The implicit comment field is always optional.
func (t *Type) IsOptional(name string) bool {
	if name == CommentField {
		return true
	}
	if t.optional != nil {
		return t.optional[name]
	}
	f, ok := t.Field(name)
	return ok && f.Optional
}

// OptionalNames returns the optional declared fields in declaration order,
// followed by the implicit comment field.
func (t *Type) OptionalNames() []string {
	var names []string
	for _, f := range t.Fields {
		if f.Optional {
			names = append(names, f.Name)
		}
	}
	return append(names, CommentField)
}
