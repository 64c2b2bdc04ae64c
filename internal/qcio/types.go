package qcio

// Structure is the external molecular geometry shape. Geometry is in
// the structure's declared unit, Bohr when Units is empty.
type Structure struct {
	Symbols      []string     `json:"symbols" yaml:"symbols"`
	Geometry     [][3]float64 `json:"geometry" yaml:"geometry"`
	Units        string       `json:"units,omitempty" yaml:"units,omitempty"`
	Charge       int          `json:"charge" yaml:"charge"`
	Multiplicity int          `json:"multiplicity,omitempty" yaml:"multiplicity,omitempty"`
}

// Model names the level of theory.
type Model struct {
	Method string `json:"method" yaml:"method"`
	Basis  string `json:"basis,omitempty" yaml:"basis,omitempty"`
}

// ProgramInput is the external calculation-request shape. Keywords is
// kept loose here because documents in the wild mix strings, numbers,
// and booleans; ToRecords narrows it to scalar strings.
type ProgramInput struct {
	Structure   Structure         `json:"structure" yaml:"structure"`
	Model       Model             `json:"model" yaml:"model"`
	Calctype    string            `json:"calctype,omitempty" yaml:"calctype,omitempty"`
	Input       string            `json:"input,omitempty" yaml:"input,omitempty"`
	Keywords    map[string]any    `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	CmdlineArgs []string          `json:"cmdline_args,omitempty" yaml:"cmdline_args,omitempty"`
	Files       map[string]string `json:"files,omitempty" yaml:"files,omitempty"`
	Extras      map[string]any    `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// Data carries computed outputs. Only the total energy is modeled;
// gradients and wavefunction payloads pass through undecoded.
type Data struct {
	Energy *float64 `json:"energy,omitempty" yaml:"energy,omitempty"`
}

// Provenance records where and how a calculation ran.
type Provenance struct {
	Program        string  `json:"program" yaml:"program"`
	ProgramVersion string  `json:"program_version,omitempty" yaml:"program_version,omitempty"`
	ScratchDir     string  `json:"scratch_dir,omitempty" yaml:"scratch_dir,omitempty"`
	WallTime       float64 `json:"wall_time,omitempty" yaml:"wall_time,omitempty"`
	Hostname       string  `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	HostCPUs       int     `json:"hostcpus,omitempty" yaml:"hostcpus,omitempty"`
	HostMem        int64   `json:"hostmem,omitempty" yaml:"hostmem,omitempty"`
}

// Results is the external completed-calculation shape.
type Results struct {
	InputData  ProgramInput `json:"input_data" yaml:"input_data"`
	Success    bool         `json:"success" yaml:"success"`
	Stdout     string       `json:"stdout,omitempty" yaml:"stdout,omitempty"`
	Data       Data         `json:"data" yaml:"data"`
	Provenance Provenance   `json:"provenance" yaml:"provenance"`
}
