package store

import (
	"testing"
)

func TestMarshalCoordinates_CanonicalText(t *testing.T) {
	got, err := marshalCoordinates([][3]float64{{0, 0, 0.74}})
	if err != nil {
		t.Fatalf("marshalCoordinates() failed: %v", err)
	}
	want := "[[0.0000000000,0.0000000000,0.7400000000]]"
	if got != want {
		t.Errorf("marshalCoordinates() = %s, want %s", got, want)
	}

	coords, err := unmarshalCoordinates(got)
	if err != nil {
		t.Fatalf("unmarshalCoordinates() failed: %v", err)
	}
	if len(coords) != 1 || coords[0] != [3]float64{0, 0, 0.74} {
		t.Errorf("round-trip = %v", coords)
	}
}

func TestMarshalStringMap_EmptyAndNil(t *testing.T) {
	for _, m := range []map[string]string{nil, {}} {
		got, err := marshalStringMap(m)
		if err != nil {
			t.Fatalf("marshalStringMap(%v) failed: %v", m, err)
		}
		if got != "{}" {
			t.Errorf("marshalStringMap(%v) = %q, want {}", m, got)
		}
	}

	back, err := unmarshalStringMap("{}")
	if err != nil {
		t.Fatalf("unmarshalStringMap() failed: %v", err)
	}
	if back != nil {
		t.Errorf("unmarshalStringMap({}) = %v, want nil", back)
	}
}

func TestMarshalSymbols_RejectsNonCanonical(t *testing.T) {
	// Symbol text is NFC-normalized on the way in, so lookup and
	// insert paths agree even for exotic labels.
	composed, err := marshalSymbols([]string{"café"})
	if err != nil {
		t.Fatalf("marshalSymbols() failed: %v", err)
	}
	decomposed, err := marshalSymbols([]string{"café"})
	if err != nil {
		t.Fatalf("marshalSymbols() failed: %v", err)
	}
	if composed != decomposed {
		t.Errorf("NFC forms differ: %q vs %q", composed, decomposed)
	}
}
