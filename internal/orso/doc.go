// Package orso declares the ORSO header record catalogue and ties it to the
// container codec.
//
// Every record type has a package-level *header.Type descriptor; all of them
// are registered once in a process-wide read-only registry (see Registry).
// Records that carry a unit check it with header.CheckUnit.
package orso
