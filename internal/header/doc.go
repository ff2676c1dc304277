// Package header implements the typed header model of the ORSO text format.
//
// It has three parts that share one static schema table:
//
//   - Schema descriptors: Kind, Field and Type describe each record type's
//     declared fields. A Registry validates a set of types once (names,
//     references, acyclicity) and is read-only afterwards.
//   - Record model: every record embeds Base, which carries the implicit
//     optional comment and, for open types, an ordered extension map.
//     ToDict projects a record to a generic document; Equal compares
//     projections.
//   - Resolver and skeletons: Registry.Resolve coerces loosely-typed document
//     values into records by walking the descriptors, never by reflecting on
//     Go types. Registry.Empty builds a skeleton with every required field
//     populated and every optional field absent.
//
// Record types live outside this package (see internal/orso); they supply a
// constructor from resolved Values and a projection back to Values.
//
// Key design constraints:
//   - Descriptors are immutable after NewRegistry returns
//   - Schema graphs must be acyclic; NewRegistry rejects cycles
//   - Union alternatives are tried in declaration order, first match wins
//   - Resolution is pure: no I/O, no shared mutable state
package header
