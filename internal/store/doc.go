// Package store provides SQLite-backed persistence for autostore
// records, deduplicated by content hash.
//
// The store holds four kinds of rows:
//   - Geometries: molecular geometries, unique per geometry hash
//   - Calculations: calculation specifications, one row per distinct
//     content, with named digests in the calculation_hash registry
//   - Energies: scalar results, many-to-one against both calculation
//     and geometry
//   - Ingests: provenance rows for ingestion runs (UUIDv7 ids)
//
// # Write protocol
//
// Hash population happens inside the write path: callers hand over
// domain objects and the store computes digests before any row is
// committed, so a row can never carry a stale or missing hash.
// Every insert is an insert-or-fetch:
//
//  1. canonicalize and digest the object
//  2. insert inside a transaction, tolerating hash conflicts
//  3. on conflict, re-fetch and return the existing row's identity
//
// A uniqueness violation raised by a concurrent writer is therefore
// never surfaced to the caller; it resolves as a successful
// deduplication.
//
// # Relationship invariant
//
// An energy row's geometry reference always equals its calculation's
// geometry reference. AddEnergy derives the geometry internally;
// AddEnergyChecked validates an explicit reference and rejects
// disagreement with *ConsistencyError before anything is committed.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// All digests are computed via internal/chem using RFC 8785 canonical
// JSON and SHA-256 with domain separation.
package store
