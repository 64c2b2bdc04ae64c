package store

import (
	"context"
	"testing"

	"github.com/avcopan/autostore/internal/chem"
)

func TestGeometryByHash(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id, _, err := s.AddGeometry(ctx, waterGeometry())
	if err != nil {
		t.Fatalf("AddGeometry() failed: %v", err)
	}

	hash := chem.MustGeometryHash(waterGeometry())
	row, ok, err := s.GeometryByHash(ctx, hash)
	if err != nil {
		t.Fatalf("GeometryByHash() failed: %v", err)
	}
	if !ok {
		t.Fatal("expected geometry to be found")
	}
	if row.ID != id {
		t.Errorf("id = %d, want %d", row.ID, id)
	}

	// Stored content round-trips.
	want := waterGeometry()
	if len(row.Geometry.Symbols) != len(want.Symbols) {
		t.Fatalf("symbols = %v, want %v", row.Geometry.Symbols, want.Symbols)
	}
	for i, sym := range want.Symbols {
		if row.Geometry.Symbols[i] != sym {
			t.Errorf("symbol %d = %q, want %q", i, row.Geometry.Symbols[i], sym)
		}
	}
	for i, coord := range want.Coordinates {
		if row.Geometry.Coordinates[i] != coord {
			t.Errorf("coordinate %d = %v, want %v", i, row.Geometry.Coordinates[i], coord)
		}
	}
}

func TestGeometryByHash_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, ok, err := s.GeometryByHash(context.Background(),
		"0000000000000000000000000000000000000000000000000000000000000000")
	if err != nil {
		t.Fatalf("GeometryByHash() failed: %v", err)
	}
	if ok {
		t.Error("expected ok=false for unknown hash")
	}
}

func TestLookupGeometry_ContentAddressed(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id, _, err := s.AddGeometry(ctx, waterGeometry())
	if err != nil {
		t.Fatalf("AddGeometry() failed: %v", err)
	}

	// A fresh value with the same canonical content resolves to the row.
	row, ok, err := s.LookupGeometry(ctx, waterGeometry())
	if err != nil || !ok {
		t.Fatalf("LookupGeometry() = ok=%v, err=%v", ok, err)
	}
	if row.ID != id {
		t.Errorf("id = %d, want %d", row.ID, id)
	}
}

func TestCalculationByHash(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	geoID, _, err := s.AddGeometry(ctx, hydrogenGeometry())
	if err != nil {
		t.Fatalf("AddGeometry() failed: %v", err)
	}
	calcID, _, err := s.AddCalculation(ctx, hfCalculation(), geoID)
	if err != nil {
		t.Fatalf("AddCalculation() failed: %v", err)
	}

	geoHash := chem.MustGeometryHash(hydrogenGeometry())
	value := chem.MustCalculationHash(hfCalculation(), geoHash, chem.HashMinimal)

	row, ok, err := s.CalculationByHash(ctx, value)
	if err != nil || !ok {
		t.Fatalf("CalculationByHash() = ok=%v, err=%v", ok, err)
	}
	if row.ID != calcID {
		t.Errorf("id = %d, want %d", row.ID, calcID)
	}
	if row.Calculation.Method != "HF" || row.Calculation.Basis != "STO-3G" {
		t.Errorf("calculation fields did not round-trip: %+v", row.Calculation)
	}
}

func TestCalculationsForGeometry(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	geoID, _, err := s.AddGeometry(ctx, hydrogenGeometry())
	if err != nil {
		t.Fatalf("AddGeometry() failed: %v", err)
	}

	calcs, err := s.CalculationsForGeometry(ctx, geoID)
	if err != nil {
		t.Fatalf("CalculationsForGeometry() failed: %v", err)
	}
	if calcs == nil || len(calcs) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", calcs)
	}

	hf := hfCalculation()
	mp2 := hfCalculation()
	mp2.Method = "MP2"

	if _, _, err := s.AddCalculation(ctx, hf, geoID); err != nil {
		t.Fatalf("AddCalculation() failed: %v", err)
	}
	if _, _, err := s.AddCalculation(ctx, mp2, geoID); err != nil {
		t.Fatalf("AddCalculation() failed: %v", err)
	}

	calcs, err = s.CalculationsForGeometry(ctx, geoID)
	if err != nil {
		t.Fatalf("CalculationsForGeometry() failed: %v", err)
	}
	if len(calcs) != 2 {
		t.Fatalf("len(calcs) = %d, want 2", len(calcs))
	}
	if calcs[0].Calculation.Method != "HF" || calcs[1].Calculation.Method != "MP2" {
		t.Errorf("unexpected order: %q, %q",
			calcs[0].Calculation.Method, calcs[1].Calculation.Method)
	}
}

func TestEnergy_ResolvesByContent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.AddResult(ctx, hydrogenGeometry(), hfCalculation(), -1.117, ""); err != nil {
		t.Fatalf("AddResult() failed: %v", err)
	}

	// Resolution uses content only: fresh objects, no row ids.
	value, ok, err := s.Energy(ctx, hydrogenGeometry(), hfCalculation(), chem.HashMinimal)
	if err != nil {
		t.Fatalf("Energy() failed: %v", err)
	}
	if !ok {
		t.Fatal("expected stored energy to be found")
	}
	if value != -1.117 {
		t.Errorf("energy = %v, want -1.117", value)
	}
}

func TestEnergy_NotFoundForDifferentContent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.AddResult(ctx, hydrogenGeometry(), hfCalculation(), -1.117, ""); err != nil {
		t.Fatalf("AddResult() failed: %v", err)
	}

	// Different basis, no result stored.
	other := hfCalculation()
	other.Basis = "cc-pVDZ"
	_, ok, err := s.Energy(ctx, hydrogenGeometry(), other, chem.HashMinimal)
	if err != nil {
		t.Fatalf("Energy() failed: %v", err)
	}
	if ok {
		t.Error("expected ok=false for unmatched calculation")
	}

	// Different geometry, no result stored.
	_, ok, err = s.Energy(ctx, waterGeometry(), hfCalculation(), chem.HashMinimal)
	if err != nil {
		t.Fatalf("Energy() failed: %v", err)
	}
	if ok {
		t.Error("expected ok=false for unmatched geometry")
	}
}

func TestEnergy_UnknownHashName(t *testing.T) {
	s := createTestStore(t)

	_, _, err := s.Energy(context.Background(),
		hydrogenGeometry(), hfCalculation(), "sha1")
	if err == nil {
		t.Error("expected error for unknown hash name")
	}
}

func TestEnergy_FullHashDistinguishesKeywords(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	calc := hfCalculation()
	calc.Keywords = map[string]string{"scf_type": "df"}

	if _, err := s.AddResult(ctx, hydrogenGeometry(), calc, -1.117, ""); err != nil {
		t.Fatalf("AddResult() failed: %v", err)
	}

	// Minimal hash ignores keywords, so the plain query still resolves.
	_, ok, err := s.Energy(ctx, hydrogenGeometry(), hfCalculation(), chem.HashMinimal)
	if err != nil {
		t.Fatalf("Energy() failed: %v", err)
	}
	if !ok {
		t.Error("minimal hash lookup should ignore keywords")
	}

	// Full hash does not.
	_, ok, err = s.Energy(ctx, hydrogenGeometry(), hfCalculation(), chem.HashFull)
	if err != nil {
		t.Fatalf("Energy() failed: %v", err)
	}
	if ok {
		t.Error("full hash lookup should distinguish keywords")
	}
}
