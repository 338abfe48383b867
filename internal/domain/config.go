package domain

// Config represents the foilopt configuration loaded from foilopt.yaml.
type Config struct {
	Flow   FlowConfig
	Solver SolverConfig
	Paths  PathsConfig
}

// FlowConfig holds the free-stream values the Reynolds number is derived from.
type FlowConfig struct {
	Chord              float64 `json:"chord" validate:"gt=0"`               // [m]
	CruiseSpeed        float64 `json:"cruise_speed" validate:"gt=0"`        // [m/s]
	KinematicViscosity float64 `json:"kinematic_viscosity" validate:"gt=0"` // [m^2/s]
}

// ReynoldsNumber returns chord*speed/viscosity.
func (f FlowConfig) ReynoldsNumber() float64 {
	if f.KinematicViscosity == 0 {
		return 0
	}
	return f.Chord * f.CruiseSpeed / f.KinematicViscosity
}

// SolverConfig is handed to the external solver and recorded with each run.
type SolverConfig struct {
	PanelNodes int     `json:"panel_nodes" validate:"gt=0"`
	IterLimit  int     `json:"iter_limit" validate:"gt=0"`
	AlphaStart float64 `json:"alpha_start"`
	AlphaEnd   float64 `json:"alpha_end" validate:"gtefield=AlphaStart"`
	AlphaStep  float64 `json:"alpha_step" validate:"gt=0"`
}

type PathsConfig struct {
	InputDir  string `validate:"required"`
	OutputDir string `validate:"required"`
	RunsDir   string `validate:"required"`
	PolarFile string `validate:"required"`
}

// DefaultConfig provides sane defaults if foilopt.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Flow: FlowConfig{
			Chord:              0.2334,
			CruiseSpeed:        15.5,
			KinematicViscosity: 1.5e-5,
		},
		Solver: SolverConfig{
			PanelNodes: 160,
			IterLimit:  100,
			AlphaStart: 0,
			AlphaEnd:   10,
			AlphaStep:  0.5,
		},
		Paths: PathsConfig{
			InputDir:  "input",
			OutputDir: "output",
			RunsDir:   "runs",
			PolarFile: "sim_results.dat",
		},
	}
}

// WorkspaceSpec describes where a workspace should be created.
type WorkspaceSpec struct {
	Root string
}
