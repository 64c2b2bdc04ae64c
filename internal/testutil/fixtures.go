// Package testutil holds shared test fixtures: well-known geometries,
// calculations, and QCIO documents that several packages exercise.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avcopan/autostore/internal/chem"
)

// WaterEnergy is the GFN2 total energy of the water fixture, in hartree.
const WaterEnergy = -5.062316802835694

// Water returns a right-angle water geometry in Angstrom.
func Water() chem.Geometry {
	return chem.Geometry{
		Symbols: []string{"O", "H", "H"},
		Coordinates: [][3]float64{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
		},
	}
}

// Hydrogen returns an H2 geometry at the experimental bond length.
func Hydrogen() chem.Geometry {
	return chem.Geometry{
		Symbols: []string{"H", "H"},
		Coordinates: [][3]float64{
			{0, 0, 0},
			{0.74, 0, 0},
		},
	}
}

// GFN2Calculation returns the semiempirical calculation paired with the
// water results document.
func GFN2Calculation() chem.Calculation {
	return chem.Calculation{
		Program:  "crest",
		Method:   "gfn2",
		Calctype: "energy",
	}
}

// WaterResultsJSON is a complete QCIO results document for the water
// fixture. Coordinates are in Bohr, one bond length per axis.
const WaterResultsJSON = `{
  "input_data": {
    "structure": {
      "symbols": ["O", "H", "H"],
      "geometry": [
        [0.0, 0.0, 0.0],
        [1.8897261259082012, 0.0, 0.0],
        [0.0, 1.8897261259082012, 0.0]
      ],
      "charge": 0,
      "multiplicity": 1
    },
    "model": {"method": "gfn2", "basis": null},
    "calctype": "energy"
  },
  "success": true,
  "data": {"energy": -5.062316802835694},
  "provenance": {"program": "crest", "program_version": "3.0.2"}
}`

// WaterInputJSON is the program-input half of WaterResultsJSON, as a
// lookup would present it.
const WaterInputJSON = `{
  "structure": {
    "symbols": ["O", "H", "H"],
    "geometry": [
      [0.0, 0.0, 0.0],
      [1.8897261259082012, 0.0, 0.0],
      [0.0, 1.8897261259082012, 0.0]
    ],
    "charge": 0,
    "multiplicity": 1
  },
  "model": {"method": "gfn2"},
  "calctype": "energy"
}`

// WriteFixture writes a fixture document under dir and returns its path.
func WriteFixture(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}
