// Package chem provides the domain types and content-addressed hashing
// for autostore.
//
// This package contains type definitions and pure functions only. All
// other internal packages import chem; chem imports nothing internal.
// This ensures it remains the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Coordinates are always Angstrom; unit conversion happens at the
//     qcio boundary, never here
//   - Floats are canonicalized to a fixed precision (1e-10) before
//     hashing, so representation noise cannot change a digest
//   - Atom ordering is significant: symbols and coordinates are hashed
//     in the as-given sequence on both insert and lookup paths
//   - All JSON tags use snake_case
package chem
