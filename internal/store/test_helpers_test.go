package store

import (
	"path/filepath"
	"testing"

	"github.com/avcopan/autostore/internal/chem"
	"github.com/avcopan/autostore/internal/testutil"
)

// createTestStore creates a new on-disk store in a temp dir for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// hydrogenGeometry returns an H2 geometry at 0.74 Angstrom.
func hydrogenGeometry() chem.Geometry {
	return testutil.Hydrogen()
}

// waterGeometry returns a bent water geometry.
func waterGeometry() chem.Geometry {
	return testutil.Water()
}

// hfCalculation returns a minimal HF/STO-3G calculation.
func hfCalculation() chem.Calculation {
	return chem.Calculation{
		Program:  "psi4",
		Method:   "HF",
		Basis:    "STO-3G",
		Calctype: "energy",
	}
}
