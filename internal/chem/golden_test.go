package chem

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// Golden files pin the canonical byte form that digests are computed
// over. A diff here means every stored hash changes; that requires a
// new domain version, not a golden update.
//
// To regenerate golden files, run:
//
//	go test ./internal/chem -update

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestGoldenCanonicalGeometry(t *testing.T) {
	g := Geometry{
		Symbols:     []string{"O", "H", "H"},
		Coordinates: [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Charge:      0,
		Spin:        0,
	}

	canonical, err := MarshalCanonical(Object{
		"symbols":     StringsToArray(g.Symbols),
		"coordinates": CoordinatesToArray(g.Coordinates),
		"charge":      Int(g.Charge),
		"spin":        Int(g.Spin),
	})
	require.NoError(t, err)

	newGoldie(t).Assert(t, "geometry_water", canonical)
}

func TestGoldenCanonicalCalculation(t *testing.T) {
	calc := Calculation{
		Program:  "crest",
		Method:   "gfn2",
		Calctype: "energy",
		Keywords: map[string]string{"opt": "tight"},
	}
	geoHash := MustGeometryHash(Geometry{
		Symbols:     []string{"O", "H", "H"},
		Coordinates: [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
	})

	canonical, err := MarshalCanonical(fullHashObject(calc, geoHash))
	require.NoError(t, err)

	newGoldie(t).Assert(t, "calculation_full", canonical)
}
