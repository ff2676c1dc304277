// Package doc provides the generic document tree that sits between the text
// format and typed header records.
//
// A document is what a YAML header block decodes to before any schema is
// applied: mappings, sequences and scalars with no static typing. The same tree
// is produced by projecting a typed record (see header.ToDict) so both the
// diff engine and the codec work on a single representation.
//
// Key design constraints:
//   - Value is sealed; only the types in this package implement it
//   - Map preserves insertion order, equality ignores it
//   - Int and Float compare numerically equal (4 == 4.0)
//   - Timestamps decoded from text stay String; the resolver parses them
//
// This package imports nothing internal.
package doc
