package chem

import "fmt"

// Geometry is a molecular geometry: atomic symbols with Cartesian
// coordinates in Angstrom. The ordering of Symbols and Coordinates
// corresponds element-wise and is significant for hashing.
type Geometry struct {
	Symbols     []string     `json:"symbols"`
	Coordinates [][3]float64 `json:"coordinates"` // Angstrom
	Charge      int          `json:"charge"`      // total molecular charge
	Spin        int          `json:"spin"`        // unpaired electrons (2S)
}

// NumAtoms returns the number of atoms in the geometry.
func (g Geometry) NumAtoms() int {
	return len(g.Symbols)
}

// Validate checks structural consistency of the geometry.
func (g Geometry) Validate() error {
	if len(g.Symbols) == 0 {
		return fmt.Errorf("geometry has no atoms")
	}
	if len(g.Symbols) != len(g.Coordinates) {
		return fmt.Errorf("geometry has %d symbols but %d coordinate rows",
			len(g.Symbols), len(g.Coordinates))
	}
	for i, s := range g.Symbols {
		if s == "" {
			return fmt.Errorf("geometry symbol %d is empty", i)
		}
	}
	return nil
}

// Calculation describes a quantum chemistry calculation specification.
//
// Input fields (Program through ProgramVersion, plus Keywords,
// CmdlineArgs, Files and Input) participate in the "full" hash; the
// "minimal" hash covers Program, Method, Basis and Calctype only.
// Provenance fields and Extras are recorded but never hashed.
type Calculation struct {
	// Input fields:
	Program        string            `json:"program"`
	Method         string            `json:"method"`
	Basis          string            `json:"basis,omitempty"`
	Calctype       string            `json:"calctype,omitempty"`
	ProgramVersion string            `json:"program_version,omitempty"`
	Input          string            `json:"input,omitempty"`
	Keywords       map[string]string `json:"keywords,omitempty"`
	CmdlineArgs    []string          `json:"cmdline_args,omitempty"`
	Files          map[string]string `json:"files,omitempty"`

	// Provenance fields:
	ScratchDir string  `json:"scratch_dir,omitempty"`
	WallTime   float64 `json:"wall_time,omitempty"`
	Hostname   string  `json:"hostname,omitempty"`
	HostCPUs   int     `json:"hostcpus,omitempty"`
	HostMem    int64   `json:"hostmem,omitempty"`

	Extras map[string]string `json:"extras,omitempty"`
}

// Validate checks that the calculation carries its required fields.
func (c Calculation) Validate() error {
	if c.Program == "" {
		return fmt.Errorf("calculation has no program")
	}
	if c.Method == "" {
		return fmt.Errorf("calculation has no method")
	}
	return nil
}
