// Package store provides a SQLite-backed catalogue of indexed ORSO datasets.
//
// Every indexed file becomes one ingest (a UUIDv7 id plus a logical
// sequence number) and one row per dataset holding:
//   - the dataset identifier and position within the file
//   - the header as RFC 8785 canonical JSON and its content id
//   - the column labels and matrix shape
//
// The catalogue is for discovery tooling; the container file stays the
// source of truth.
//
// # Deterministic Query Results
//
// All listing queries order by ingest seq, then position within the file,
// so results do not depend on wall time or insertion races.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
