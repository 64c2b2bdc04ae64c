package chem

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface over the types that may appear in
// canonical JSON for hashing. Only String, Int, Float, Bool, Array,
// and Object implement it. Nulls are forbidden: optional fields are
// represented by their zero value so every digest input has a fixed
// shape.
type Value interface {
	value() // sealed
}

// String is a string value in canonical JSON.
type String string

func (String) value() {}

// Int is an integer value in canonical JSON. Always int64.
type Int int64

func (Int) value() {}

// Float is a floating-point value in canonical JSON. Floats are
// rounded to FloatPrecision decimal places and emitted with fixed
// formatting, so two values that agree within the canonicalization
// tolerance serialize identically. NaN and Inf are rejected at
// marshal time.
type Float float64

func (Float) value() {}

// Bool is a boolean value in canonical JSON.
type Bool bool

func (Bool) value() {}

// Array is an ordered sequence of values.
type Array []Value

func (Array) value() {}

// Object is a map of string keys to values. Use SortedKeys for
// deterministic iteration.
type Object map[string]Value

func (Object) value() {}

// StringsToArray converts a string slice to an Array.
func StringsToArray(ss []string) Array {
	arr := make(Array, len(ss))
	for i, s := range ss {
		arr[i] = String(s)
	}
	return arr
}

// CoordinatesToArray converts coordinate rows to a nested Array of
// Floats, preserving row order.
func CoordinatesToArray(coords [][3]float64) Array {
	arr := make(Array, len(coords))
	for i, row := range coords {
		arr[i] = Array{Float(row[0]), Float(row[1]), Float(row[2])}
	}
	return arr
}

// StringMapToObject converts a string map to an Object. Key ordering
// is handled at marshal time.
func StringMapToObject(m map[string]string) Object {
	obj := make(Object, len(m))
	for k, v := range m {
		obj[k] = String(v)
	}
	return obj
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code
// units). Go's sort.Strings uses UTF-8 which produces a different
// order for strings outside the BMP.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units as required
// by RFC 8785. Must use unicode/utf16.Encode for correct surrogate
// handling.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}
