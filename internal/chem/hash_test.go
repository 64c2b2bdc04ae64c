package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hydrogen() Geometry {
	return Geometry{
		Symbols:     []string{"H", "H"},
		Coordinates: [][3]float64{{0, 0, 0}, {0, 0, 0.74}},
	}
}

func TestGeometryHashDeterminism(t *testing.T) {
	h1, err := GeometryHash(hydrogen())
	require.NoError(t, err)

	h2, err := GeometryHash(hydrogen())
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "GeometryHash must be deterministic")
	assert.Len(t, h1, 64, "SHA-256 hex is 64 characters")
}

func TestGeometryHashIgnoresRepresentationNoise(t *testing.T) {
	g1 := hydrogen()
	g2 := hydrogen()
	g2.Coordinates[1][2] = 0.74 + 1e-12 // below canonicalization tolerance

	assert.Equal(t, MustGeometryHash(g1), MustGeometryHash(g2))
}

func TestGeometryHashChangesWithContent(t *testing.T) {
	base := MustGeometryHash(hydrogen())

	moved := hydrogen()
	moved.Coordinates[1][2] = 0.75
	assert.NotEqual(t, base, MustGeometryHash(moved), "coordinate change")

	relabeled := hydrogen()
	relabeled.Symbols = []string{"H", "D"}
	assert.NotEqual(t, base, MustGeometryHash(relabeled), "symbol change")

	charged := hydrogen()
	charged.Charge = 1
	assert.NotEqual(t, base, MustGeometryHash(charged), "charge change")

	excited := hydrogen()
	excited.Spin = 2
	assert.NotEqual(t, base, MustGeometryHash(excited), "spin change")
}

func TestGeometryHashOrderSensitive(t *testing.T) {
	// Atom ordering is significant: the digest is computed over the
	// as-given sequence.
	g1 := Geometry{
		Symbols:     []string{"O", "H"},
		Coordinates: [][3]float64{{0, 0, 0}, {0, 0, 1}},
	}
	g2 := Geometry{
		Symbols:     []string{"H", "O"},
		Coordinates: [][3]float64{{0, 0, 1}, {0, 0, 0}},
	}

	assert.NotEqual(t, MustGeometryHash(g1), MustGeometryHash(g2))
}

func TestGeometryHashRejectsInvalid(t *testing.T) {
	_, err := GeometryHash(Geometry{})
	assert.Error(t, err, "empty geometry")

	_, err = GeometryHash(Geometry{
		Symbols:     []string{"H", "H"},
		Coordinates: [][3]float64{{0, 0, 0}},
	})
	assert.Error(t, err, "symbol/coordinate length mismatch")
}

func TestCalculationHashDeterminism(t *testing.T) {
	calc := Calculation{Program: "psi4", Method: "hf", Basis: "sto-3g"}
	geoHash := MustGeometryHash(hydrogen())

	h1, err := CalculationHash(calc, geoHash, HashMinimal)
	require.NoError(t, err)

	h2, err := CalculationHash(calc, geoHash, HashMinimal)
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "CalculationHash must be deterministic")
	assert.Len(t, h1, 64, "SHA-256 hex is 64 characters")
}

func TestCalculationHashChangesWithFields(t *testing.T) {
	geoHash := MustGeometryHash(hydrogen())
	base := MustCalculationHash(
		Calculation{Program: "psi4", Method: "hf", Basis: "sto-3g"}, geoHash, HashMinimal)

	other := MustCalculationHash(
		Calculation{Program: "psi4", Method: "b3lyp", Basis: "sto-3g"}, geoHash, HashMinimal)
	assert.NotEqual(t, base, other, "method change")

	other = MustCalculationHash(
		Calculation{Program: "psi4", Method: "hf", Basis: "cc-pvdz"}, geoHash, HashMinimal)
	assert.NotEqual(t, base, other, "basis change")

	other = MustCalculationHash(
		Calculation{Program: "gaussian", Method: "hf", Basis: "sto-3g"}, geoHash, HashMinimal)
	assert.NotEqual(t, base, other, "program change")
}

func TestCalculationHashIncorporatesGeometryHash(t *testing.T) {
	calc := Calculation{Program: "psi4", Method: "hf", Basis: "sto-3g"}

	moved := hydrogen()
	moved.Coordinates[1][2] = 0.75

	h1 := MustCalculationHash(calc, MustGeometryHash(hydrogen()), HashMinimal)
	h2 := MustCalculationHash(calc, MustGeometryHash(moved), HashMinimal)

	assert.NotEqual(t, h1, h2, "geometry content change must change the calculation hash")
}

func TestCalculationHashNamedVariants(t *testing.T) {
	geoHash := MustGeometryHash(hydrogen())

	plain := Calculation{Program: "crest", Method: "gfn2"}
	keyworded := Calculation{
		Program:  "crest",
		Method:   "gfn2",
		Keywords: map[string]string{"opt": "tight"},
	}

	// Keywords are outside the minimal hash but inside the full hash.
	assert.Equal(t,
		MustCalculationHash(plain, geoHash, HashMinimal),
		MustCalculationHash(keyworded, geoHash, HashMinimal))
	assert.NotEqual(t,
		MustCalculationHash(plain, geoHash, HashFull),
		MustCalculationHash(keyworded, geoHash, HashFull))
}

func TestCalculationHashIgnoresProvenance(t *testing.T) {
	geoHash := MustGeometryHash(hydrogen())

	plain := Calculation{Program: "crest", Method: "gfn2"}
	annotated := Calculation{
		Program:  "crest",
		Method:   "gfn2",
		Hostname: "node-17",
		WallTime: 12.5,
		Extras:   map[string]string{"job_id": "abc"},
	}

	for _, name := range HashNames() {
		assert.Equal(t,
			MustCalculationHash(plain, geoHash, name),
			MustCalculationHash(annotated, geoHash, name),
			"provenance must not affect the %q hash", name)
	}
}

func TestCalculationHashUnknownName(t *testing.T) {
	geoHash := MustGeometryHash(hydrogen())

	_, err := CalculationHash(
		Calculation{Program: "psi4", Method: "hf"}, geoHash, "sha1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown hash name")
}

func TestCalculationHashRequiresGeometryHash(t *testing.T) {
	_, err := CalculationHash(
		Calculation{Program: "psi4", Method: "hf"}, "", HashMinimal)
	assert.Error(t, err)
}

func TestHashNames(t *testing.T) {
	assert.Equal(t, []string{HashFull, HashMinimal}, HashNames())
}

func TestGeometryAndCalculationDomainsDiffer(t *testing.T) {
	// Same canonical bytes under different domains must not collide.
	data := []byte(`{}`)
	assert.NotEqual(t,
		hashWithDomain(DomainGeometry, data),
		hashWithDomain(DomainCalculation, data))
}
