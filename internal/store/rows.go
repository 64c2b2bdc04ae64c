package store

import "github.com/avcopan/autostore/internal/chem"

// GeometryRow is a stored geometry with its identity. Rows are
// content-addressed and immutable: any content change yields a
// different hash and a new row.
type GeometryRow struct {
	ID       int64         `json:"id"`
	Hash     string        `json:"hash"`
	Geometry chem.Geometry `json:"geometry"`
}

// CalculationRow is a stored calculation with its identity, its
// geometry reference, and every named digest from the hash registry.
type CalculationRow struct {
	ID          int64             `json:"id"`
	GeometryID  int64             `json:"geometry_id"`
	Hashes      map[string]string `json:"hashes"`
	Calculation chem.Calculation  `json:"calculation"`
}

// EnergyRow is a stored scalar energy result. GeometryID always
// equals the referenced calculation's geometry reference.
type EnergyRow struct {
	ID            int64   `json:"id"`
	CalculationID int64   `json:"calculation_id"`
	GeometryID    int64   `json:"geometry_id"`
	Value         float64 `json:"value"` // Hartree
	IngestID      string  `json:"ingest_id,omitempty"`
}
