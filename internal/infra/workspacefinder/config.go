package workspacefinder

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/foilopt/internal/domain"
	"github.com/aalvaropc/foilopt/internal/infra/config"
)

// ConfigFileName marks a workspace root.
const ConfigFileName = "foilopt.yaml"

// LoadConfig loads foilopt.yaml from the workspace root, applies defaults and
// validates the result.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	f := y.Foilopt
	setFloat(&cfg.Flow.Chord, f.Flow.Chord)
	setFloat(&cfg.Flow.CruiseSpeed, f.Flow.CruiseSpeed)
	setFloat(&cfg.Flow.KinematicViscosity, f.Flow.KinematicViscosity)

	setInt(&cfg.Solver.PanelNodes, f.Solver.PanelNodes)
	setInt(&cfg.Solver.IterLimit, f.Solver.IterLimit)
	setFloat(&cfg.Solver.AlphaStart, f.Solver.AlphaStart)
	setFloat(&cfg.Solver.AlphaEnd, f.Solver.AlphaEnd)
	setFloat(&cfg.Solver.AlphaStep, f.Solver.AlphaStep)

	if f.Paths.InputDir != "" {
		cfg.Paths.InputDir = f.Paths.InputDir
	}
	if f.Paths.OutputDir != "" {
		cfg.Paths.OutputDir = f.Paths.OutputDir
	}
	if f.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = f.Paths.RunsDir
	}
	if f.Paths.PolarFile != "" {
		cfg.Paths.PolarFile = f.Paths.PolarFile
	}

	if err := config.Validate(path, cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

type yamlConfig struct {
	Foilopt struct {
		Flow struct {
			Chord              *float64 `yaml:"chord"`
			CruiseSpeed        *float64 `yaml:"cruise_speed"`
			KinematicViscosity *float64 `yaml:"kinematic_viscosity"`
		} `yaml:"flow"`

		Solver struct {
			PanelNodes *int     `yaml:"panel_nodes"`
			IterLimit  *int     `yaml:"iter_limit"`
			AlphaStart *float64 `yaml:"alpha_start"`
			AlphaEnd   *float64 `yaml:"alpha_end"`
			AlphaStep  *float64 `yaml:"alpha_step"`
		} `yaml:"solver"`

		Paths struct {
			InputDir  string `yaml:"input_dir"`
			OutputDir string `yaml:"output_dir"`
			RunsDir   string `yaml:"runs_dir"`
			PolarFile string `yaml:"polar_file"`
		} `yaml:"paths"`
	} `yaml:"foilopt"`
}
