package store

import (
	"encoding/json"
	"fmt"

	"github.com/avcopan/autostore/internal/chem"
)

// Column serialization for slice and map fields. The stored TEXT is
// canonical JSON, so what sits in a row is byte-identical to what its
// digest was computed over. Coordinates therefore round-trip at the
// canonicalization precision, not at full float64 precision.

func marshalSymbols(symbols []string) (string, error) {
	data, err := chem.MarshalCanonical(chem.StringsToArray(symbols))
	if err != nil {
		return "", fmt.Errorf("marshal symbols: %w", err)
	}
	return string(data), nil
}

func marshalCoordinates(coords [][3]float64) (string, error) {
	data, err := chem.MarshalCanonical(chem.CoordinatesToArray(coords))
	if err != nil {
		return "", fmt.Errorf("marshal coordinates: %w", err)
	}
	return string(data), nil
}

func marshalStringMap(m map[string]string) (string, error) {
	data, err := chem.MarshalCanonical(chem.StringMapToObject(m))
	if err != nil {
		return "", fmt.Errorf("marshal string map: %w", err)
	}
	return string(data), nil
}

func marshalStrings(ss []string) (string, error) {
	data, err := chem.MarshalCanonical(chem.StringsToArray(ss))
	if err != nil {
		return "", fmt.Errorf("marshal strings: %w", err)
	}
	return string(data), nil
}

func unmarshalSymbols(data string) ([]string, error) {
	var symbols []string
	if err := json.Unmarshal([]byte(data), &symbols); err != nil {
		return nil, fmt.Errorf("unmarshal symbols: %w", err)
	}
	return symbols, nil
}

func unmarshalCoordinates(data string) ([][3]float64, error) {
	var coords [][3]float64
	if err := json.Unmarshal([]byte(data), &coords); err != nil {
		return nil, fmt.Errorf("unmarshal coordinates: %w", err)
	}
	return coords, nil
}

func unmarshalStringMap(data string) (map[string]string, error) {
	if data == "" || data == "{}" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, fmt.Errorf("unmarshal string map: %w", err)
	}
	return m, nil
}

func unmarshalStrings(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var ss []string
	if err := json.Unmarshal([]byte(data), &ss); err != nil {
		return nil, fmt.Errorf("unmarshal strings: %w", err)
	}
	return ss, nil
}
