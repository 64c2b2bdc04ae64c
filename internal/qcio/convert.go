package qcio

import (
	"sort"
	"strconv"

	"github.com/avcopan/autostore/internal/chem"
)

// ToRecords converts a completed Results document into the internal
// geometry and calculation records plus the total energy. A document
// that is unsuccessful, missing its energy, or structurally unmappable
// returns a *ConversionError; no partial record is produced.
func ToRecords(res Results) (chem.Geometry, chem.Calculation, float64, error) {
	if !res.Success {
		return chem.Geometry{}, chem.Calculation{}, 0,
			conversionErrorf("success", "only successful results are stored")
	}
	if res.Data.Energy == nil {
		return chem.Geometry{}, chem.Calculation{}, 0,
			conversionErrorf("data.energy", "missing")
	}

	g, err := structureToGeometry(res.InputData.Structure)
	if err != nil {
		return chem.Geometry{}, chem.Calculation{}, 0, err
	}

	c, err := inputToCalculation(res.InputData, res.Provenance)
	if err != nil {
		return chem.Geometry{}, chem.Calculation{}, 0, err
	}

	return g, c, *res.Data.Energy, nil
}

// InputToRecords converts a ProgramInput document into the internal
// records, for lookups where no Results exist yet. The program name
// comes from the caller since an input document carries no provenance.
func InputToRecords(in ProgramInput, program string) (chem.Geometry, chem.Calculation, error) {
	if program == "" {
		return chem.Geometry{}, chem.Calculation{}, conversionErrorf("program", "missing")
	}
	g, err := structureToGeometry(in.Structure)
	if err != nil {
		return chem.Geometry{}, chem.Calculation{}, err
	}
	c, err := inputToCalculation(in, Provenance{Program: program})
	if err != nil {
		return chem.Geometry{}, chem.Calculation{}, err
	}
	return g, c, nil
}

// FromRecords reconstructs the modeled subset of a Results document.
// Coordinates come back out in Bohr, multiplicity as spin+1.
func FromRecords(g chem.Geometry, c chem.Calculation, energy float64) Results {
	e := energy
	bohr, _ := chem.FromAngstrom(g.Coordinates, chem.UnitBohr)
	return Results{
		InputData: ProgramInput{
			Structure: Structure{
				Symbols:      append([]string(nil), g.Symbols...),
				Geometry:     bohr,
				Units:        string(chem.UnitBohr),
				Charge:       g.Charge,
				Multiplicity: g.Spin + 1,
			},
			Model: Model{
				Method: c.Method,
				Basis:  c.Basis,
			},
			Calctype:    c.Calctype,
			Input:       c.Input,
			Keywords:    keywordsFromStrings(c.Keywords),
			CmdlineArgs: append([]string(nil), c.CmdlineArgs...),
			Files:       copyStringMap(c.Files),
			Extras:      keywordsFromStrings(c.Extras),
		},
		Success: true,
		Data:    Data{Energy: &e},
		Provenance: Provenance{
			Program:        c.Program,
			ProgramVersion: c.ProgramVersion,
			ScratchDir:     c.ScratchDir,
			WallTime:       c.WallTime,
			Hostname:       c.Hostname,
			HostCPUs:       c.HostCPUs,
			HostMem:        c.HostMem,
		},
	}
}

func structureToGeometry(st Structure) (chem.Geometry, error) {
	if len(st.Symbols) == 0 {
		return chem.Geometry{}, conversionErrorf("input_data.structure.symbols", "empty")
	}
	if len(st.Symbols) != len(st.Geometry) {
		return chem.Geometry{}, conversionErrorf("input_data.structure.geometry",
			"%d rows for %d symbols", len(st.Geometry), len(st.Symbols))
	}
	unit, err := chem.ParseUnit(st.Units)
	if err != nil {
		return chem.Geometry{}, conversionErrorf("input_data.structure.units", "%v", err)
	}
	mult := st.Multiplicity
	if mult == 0 {
		mult = 1
	}
	if mult < 1 {
		return chem.Geometry{}, conversionErrorf("input_data.structure.multiplicity",
			"must be >= 1, got %d", mult)
	}
	coords, err := chem.ToAngstrom(st.Geometry, unit)
	if err != nil {
		return chem.Geometry{}, conversionErrorf("input_data.structure.units", "%v", err)
	}
	g := chem.Geometry{
		Symbols:     append([]string(nil), st.Symbols...),
		Coordinates: coords,
		Charge:      st.Charge,
		Spin:        mult - 1,
	}
	if err := g.Validate(); err != nil {
		return chem.Geometry{}, conversionErrorf("input_data.structure", "%v", err)
	}
	return g, nil
}

func inputToCalculation(in ProgramInput, prov Provenance) (chem.Calculation, error) {
	if prov.Program == "" {
		return chem.Calculation{}, conversionErrorf("provenance.program", "missing")
	}
	if in.Model.Method == "" {
		return chem.Calculation{}, conversionErrorf("input_data.model.method", "missing")
	}
	keywords, err := scalarsToStrings(in.Keywords, "input_data.keywords")
	if err != nil {
		return chem.Calculation{}, err
	}
	extras, err := scalarsToStrings(in.Extras, "input_data.extras")
	if err != nil {
		return chem.Calculation{}, err
	}
	c := chem.Calculation{
		Program:        prov.Program,
		Method:         in.Model.Method,
		Basis:          in.Model.Basis,
		Calctype:       in.Calctype,
		ProgramVersion: prov.ProgramVersion,
		Input:          in.Input,
		Keywords:       keywords,
		CmdlineArgs:    append([]string(nil), in.CmdlineArgs...),
		Files:          copyStringMap(in.Files),
		ScratchDir:     prov.ScratchDir,
		WallTime:       prov.WallTime,
		Hostname:       prov.Hostname,
		HostCPUs:       prov.HostCPUs,
		HostMem:        prov.HostMem,
		Extras:         extras,
	}
	if err := c.Validate(); err != nil {
		return chem.Calculation{}, conversionErrorf("input_data", "%v", err)
	}
	return c, nil
}

// scalarsToStrings narrows loose keyword-style values to strings.
// Scalars format deterministically; nil values are dropped; nested
// structures cannot be represented and fail the conversion.
func scalarsToStrings(kw map[string]any, field string) (map[string]string, error) {
	if len(kw) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(kw))
	keys := make([]string, 0, len(kw))
	for k := range kw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := kw[k].(type) {
		case nil:
			continue
		case string:
			out[k] = v
		case bool:
			out[k] = strconv.FormatBool(v)
		case int:
			out[k] = strconv.Itoa(v)
		case int64:
			out[k] = strconv.FormatInt(v, 10)
		case float64:
			out[k] = strconv.FormatFloat(v, 'g', -1, 64)
		default:
			return nil, conversionErrorf(field+"."+k, "unsupported value type %T", v)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func keywordsFromStrings(kw map[string]string) map[string]any {
	if len(kw) == 0 {
		return nil
	}
	out := make(map[string]any, len(kw))
	for k, v := range kw {
		out[k] = v
	}
	return out
}

func copyStringMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
