package chem

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
)

// Domain prefixes for content-addressed identity. The version suffix
// enables future algorithm migration without digest collisions.
const (
	DomainGeometry    = "autostore/geometry/v1"
	DomainCalculation = "autostore/calculation/v1"
)

// HashMinimal and HashFull are the registered calculation hash names.
// "minimal" identifies a calculation by the fields that determine its
// physics; "full" additionally covers keywords, command line, input
// text, attached files, and program version.
const (
	HashMinimal = "minimal"
	HashFull    = "full"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte separator
// prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// GeometryHash computes the content-addressed digest of a geometry.
// The digest depends only on symbols, coordinates (canonicalized to
// FloatPrecision), charge and spin. Two geometries with identical
// canonical content always hash identically, independent of any
// storage-assigned identifier.
func GeometryHash(g Geometry) (string, error) {
	if err := g.Validate(); err != nil {
		return "", fmt.Errorf("geometry hash: %w", err)
	}

	obj := Object{
		"symbols":     StringsToArray(g.Symbols),
		"coordinates": CoordinatesToArray(g.Coordinates),
		"charge":      Int(g.Charge),
		"spin":        Int(g.Spin),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("geometry hash: %w", err)
	}

	return hashWithDomain(DomainGeometry, canonical), nil
}

// calculationHashFns maps registered hash names to the function that
// builds the object to be digested. One stored calculation row carries
// one digest per registered name.
var calculationHashFns = map[string]func(c Calculation, geometryHash string) Object{
	HashMinimal: minimalHashObject,
	HashFull:    fullHashObject,
}

// HashNames returns the registered calculation hash names in sorted
// order.
func HashNames() []string {
	names := make([]string, 0, len(calculationHashFns))
	for name := range calculationHashFns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// CalculationHash computes the named content-addressed digest of a
// calculation. The referenced geometry participates via its digest,
// never its row identifier, so calculation digests are reproducible
// purely from content.
func CalculationHash(c Calculation, geometryHash, name string) (string, error) {
	if err := c.Validate(); err != nil {
		return "", fmt.Errorf("calculation hash: %w", err)
	}
	if geometryHash == "" {
		return "", fmt.Errorf("calculation hash: empty geometry hash")
	}

	fn, ok := calculationHashFns[name]
	if !ok {
		return "", fmt.Errorf("calculation hash: unknown hash name %q (available: %v)",
			name, HashNames())
	}

	canonical, err := MarshalCanonical(fn(c, geometryHash))
	if err != nil {
		return "", fmt.Errorf("calculation hash %q: %w", name, err)
	}

	return hashWithDomain(DomainCalculation, canonical), nil
}

func minimalHashObject(c Calculation, geometryHash string) Object {
	return Object{
		"program":  String(c.Program),
		"method":   String(c.Method),
		"basis":    String(c.Basis),
		"calctype": String(c.Calctype),
		"geometry": String(geometryHash),
	}
}

func fullHashObject(c Calculation, geometryHash string) Object {
	obj := minimalHashObject(c, geometryHash)
	obj["program_version"] = String(c.ProgramVersion)
	obj["input"] = String(c.Input)
	obj["keywords"] = StringMapToObject(c.Keywords)
	obj["cmdline_args"] = StringsToArray(c.CmdlineArgs)
	obj["files"] = StringMapToObject(c.Files)
	return obj
}

// MustGeometryHash is like GeometryHash but panics on error. Use only
// in tests or when inputs are known to be valid.
func MustGeometryHash(g Geometry) string {
	h, err := GeometryHash(g)
	if err != nil {
		panic(err)
	}
	return h
}

// MustCalculationHash is like CalculationHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustCalculationHash(c Calculation, geometryHash, name string) string {
	h, err := CalculationHash(c, geometryHash, name)
	if err != nil {
		panic(err)
	}
	return h
}
