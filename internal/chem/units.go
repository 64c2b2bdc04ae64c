package chem

import "fmt"

// BohrPerAngstrom is the conversion factor from Angstrom to Bohr
// (inverse of the CODATA 2018 Bohr radius in Angstrom).
const BohrPerAngstrom = 1.8897261259082012

// Unit is a supported length unit for external coordinate data.
// Internal storage is always Angstrom.
type Unit string

const (
	UnitAngstrom Unit = "angstrom"
	UnitBohr     Unit = "bohr"
)

// ParseUnit normalizes a unit label. The empty string defaults to Bohr,
// the QCIO wire convention.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "", "bohr":
		return UnitBohr, nil
	case "angstrom":
		return UnitAngstrom, nil
	default:
		return "", fmt.Errorf("unrecognized unit %q", s)
	}
}

// BohrToAngstrom converts a length from Bohr to Angstrom.
func BohrToAngstrom(x float64) float64 {
	return x / BohrPerAngstrom
}

// AngstromToBohr converts a length from Angstrom to Bohr.
func AngstromToBohr(x float64) float64 {
	return x * BohrPerAngstrom
}

// ToAngstrom converts coordinate rows from the given unit to Angstrom.
// The input is not modified.
func ToAngstrom(coords [][3]float64, from Unit) ([][3]float64, error) {
	switch from {
	case UnitAngstrom:
		out := make([][3]float64, len(coords))
		copy(out, coords)
		return out, nil
	case UnitBohr:
		out := make([][3]float64, len(coords))
		for i, row := range coords {
			for j, x := range row {
				out[i][j] = BohrToAngstrom(x)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unrecognized unit %q", from)
	}
}

// FromAngstrom converts coordinate rows from Angstrom to the given unit.
// The input is not modified.
func FromAngstrom(coords [][3]float64, to Unit) ([][3]float64, error) {
	switch to {
	case UnitAngstrom:
		out := make([][3]float64, len(coords))
		copy(out, coords)
		return out, nil
	case UnitBohr:
		out := make([][3]float64, len(coords))
		for i, row := range coords {
			for j, x := range row {
				out[i][j] = AngstromToBohr(x)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unrecognized unit %q", to)
	}
}
