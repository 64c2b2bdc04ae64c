package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		input   string
		want    Unit
		wantErr bool
	}{
		{"", UnitBohr, false}, // QCIO wire default
		{"bohr", UnitBohr, false},
		{"angstrom", UnitAngstrom, false},
		{"parsec", "", true},
	}

	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			got, err := ParseUnit(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBohrAngstromRoundTrip(t *testing.T) {
	assert.InDelta(t, 1.0, BohrToAngstrom(BohrPerAngstrom), 1e-14)
	assert.InDelta(t, 0.74, BohrToAngstrom(AngstromToBohr(0.74)), 1e-14)
}

func TestToAngstrom(t *testing.T) {
	bohr := [][3]float64{{0, 0, 0}, {BohrPerAngstrom, 0, 0}}

	got, err := ToAngstrom(bohr, UnitBohr)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got[1][0], 1e-14)

	// Angstrom input passes through but is copied.
	same, err := ToAngstrom(got, UnitAngstrom)
	require.NoError(t, err)
	assert.Equal(t, got, same)
	same[0][0] = 99
	assert.Equal(t, 0.0, got[0][0], "input must not be aliased")

	_, err = ToAngstrom(bohr, Unit("furlong"))
	assert.Error(t, err)
}

func TestFromAngstrom(t *testing.T) {
	angstrom := [][3]float64{{1, 0, 0}}

	got, err := FromAngstrom(angstrom, UnitBohr)
	require.NoError(t, err)
	assert.InDelta(t, BohrPerAngstrom, got[0][0], 1e-14)

	_, err = FromAngstrom(angstrom, Unit("furlong"))
	assert.Error(t, err)
}
