// Package qcio translates between external QCIO object shapes
// (ProgramInput and Results documents) and the internal chem records.
// It is the sole translation point at that boundary.
//
// Unit convention: QCIO documents carry coordinates in Bohr unless the
// structure says otherwise; internal storage is always Angstrom.
// Conversion happens here on the way in and on the way out.
//
// Fields present in an external document but not modeled internally
// (wavefunction data, gradients, nested keyword structures beyond
// scalars) are dropped by ToRecords; FromRecords reconstructs exactly
// the modeled subset. A missing required field or an unrecognized
// unit fails with *ConversionError naming the field, and no partial
// record is produced.
package qcio
