package qcio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks a decode format from a file extension.
// Unrecognized extensions default to JSON, the QCIO interchange norm.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DecodeResults decodes and validates a Results document. Validation
// runs against the raw document so unknown-field and type errors carry
// the document's own field names.
func DecodeResults(data []byte, format Format) (Results, error) {
	if err := ValidateResults(data, format); err != nil {
		return Results{}, err
	}
	var res Results
	if err := decode(data, format, &res); err != nil {
		return Results{}, err
	}
	return res, nil
}

// DecodeProgramInput decodes and validates a ProgramInput document.
func DecodeProgramInput(data []byte, format Format) (ProgramInput, error) {
	if err := ValidateProgramInput(data, format); err != nil {
		return ProgramInput{}, err
	}
	var in ProgramInput
	if err := decode(data, format, &in); err != nil {
		return ProgramInput{}, err
	}
	return in, nil
}

// LoadResults reads a Results document from disk, picking the format
// by extension.
func LoadResults(path string) (Results, error) {
	return loadResults(path, true)
}

// LoadResultsUnchecked reads a Results document without schema
// validation, for pipelines that have already validated upstream.
// Structural problems then surface as conversion errors instead.
func LoadResultsUnchecked(path string) (Results, error) {
	return loadResults(path, false)
}

func loadResults(path string, check bool) (Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Results{}, fmt.Errorf("reading results document: %w", err)
	}
	format := FormatForPath(path)
	if check {
		if err := ValidateResults(data, format); err != nil {
			return Results{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	var res Results
	if err := decode(data, format, &res); err != nil {
		return Results{}, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// LoadProgramInput reads a ProgramInput document from disk, picking
// the format by extension.
func LoadProgramInput(path string) (ProgramInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProgramInput{}, fmt.Errorf("reading program input document: %w", err)
	}
	in, err := DecodeProgramInput(data, FormatForPath(path))
	if err != nil {
		return ProgramInput{}, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// EncodeResults serializes a Results document in the given format.
func EncodeResults(res Results, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(res)
	case FormatJSON:
		return json.MarshalIndent(res, "", "  ")
	default:
		return nil, fmt.Errorf("unrecognized format %q", format)
	}
}

func decode(data []byte, format Format, v any) error {
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("decoding yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("decoding json: %w", err)
		}
	default:
		return fmt.Errorf("unrecognized format %q", format)
	}
	return nil
}
