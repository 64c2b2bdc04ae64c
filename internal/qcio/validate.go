package qcio

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaSource string

var (
	schemaOnce    sync.Once
	schemaCtx     *cue.Context
	schemaResults cue.Value
	schemaInput   cue.Value
	schemaErr     error
)

// compileSchema builds the embedded schema once. The schema is part of
// the binary, so a compile failure is a programming error surfaced to
// every caller.
func compileSchema() error {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		root := schemaCtx.CompileString(schemaSource, cue.Filename("schema.cue"))
		if err := root.Err(); err != nil {
			schemaErr = fmt.Errorf("compiling embedded schema: %w", err)
			return
		}
		schemaResults = root.LookupPath(cue.ParsePath("#Results"))
		if err := schemaResults.Err(); err != nil {
			schemaErr = fmt.Errorf("resolving #Results: %w", err)
			return
		}
		schemaInput = root.LookupPath(cue.ParsePath("#ProgramInput"))
		if err := schemaInput.Err(); err != nil {
			schemaErr = fmt.Errorf("resolving #ProgramInput: %w", err)
		}
	})
	return schemaErr
}

// ValidateResults checks raw document bytes against the Results schema.
// Validation runs on the undecoded document, so unknown and mistyped
// fields are reported under the document's own field names.
func ValidateResults(data []byte, format Format) error {
	return validate(data, format, "results", &schemaResults)
}

// ValidateProgramInput checks raw document bytes against the
// ProgramInput schema.
func ValidateProgramInput(data []byte, format Format) error {
	return validate(data, format, "program input", &schemaInput)
}

func validate(data []byte, format Format, kind string, schema *cue.Value) error {
	if err := compileSchema(); err != nil {
		return err
	}
	doc, err := documentValue(data, format)
	if err != nil {
		return fmt.Errorf("invalid %s document: %w", kind, err)
	}
	val := schema.Unify(doc)
	// Final+Concrete makes missing required fields (which unify to a
	// non-concrete constraint) fail validation, not just type clashes.
	if err := val.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid %s document: %w", kind, err)
	}
	return nil
}

// documentValue parses document bytes with CUE's own decoders, which
// keep integers integral where encoding/json would widen them to float.
func documentValue(data []byte, format Format) (cue.Value, error) {
	switch format {
	case FormatYAML:
		file, err := cueyaml.Extract("document.yaml", data)
		if err != nil {
			return cue.Value{}, err
		}
		doc := schemaCtx.BuildFile(file)
		return doc, doc.Err()
	case FormatJSON:
		expr, err := cuejson.Extract("document.json", data)
		if err != nil {
			return cue.Value{}, err
		}
		doc := schemaCtx.BuildExpr(expr)
		return doc, doc.Err()
	default:
		return cue.Value{}, fmt.Errorf("unrecognized format %q", format)
	}
}
