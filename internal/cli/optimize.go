package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/foilopt/internal/domain"
	"github.com/aalvaropc/foilopt/internal/infra/config"
	"github.com/aalvaropc/foilopt/internal/infra/logger"
	"github.com/aalvaropc/foilopt/internal/usecase"
)

type flowFlags struct {
	chord     float64
	speed     float64
	viscosity float64
}

func optimizeCmd() *cobra.Command {
	var workspace string
	var airfoil string
	var polarPath string
	var noSave bool
	var noRecap bool
	var format string
	var ff flowFlags

	c := &cobra.Command{
		Use:   "optimize",
		Short: "Pick the optimal angle of attack from a solver polar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			cfg := applyFlowFlags(cmd, ws.cfg, ff)
			if err := config.Validate("flags", cfg); err != nil {
				return err
			}

			in := usecase.OptimizeInput{
				PolarPath: resolvePolarPath(ws, polarPath),
				Flow:      cfg.Flow,
				Solver:    cfg.Solver,
			}
			if airfoil != "" {
				p, err := resolveAirfoilPath(ws, airfoil)
				if err != nil {
					return err
				}
				in.AirfoilPath = p
			}

			opts := []usecase.OptimizeOption{usecase.WithOptimizeLogger(logger.For("optimize"))}
			if !noSave {
				opts = append(opts, usecase.WithStore(ws.store))
			}
			if !noRecap {
				opts = append(opts, usecase.WithRecap(ws.recap))
			}

			uc := usecase.NewOptimizeSweep(ws.coords, ws.polars, opts...)
			run, runID, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printRun(cmd.OutOrStdout(), run, runID, format)
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&airfoil, "airfoil", "a", "", "Airfoil name or path the polar belongs to (optional)")
	c.Flags().StringVar(&polarPath, "polar", "", "Polar file (defaults to <output_dir>/<polar_file>)")
	c.Flags().Float64Var(&ff.chord, "chord", 0, "Chord length [m] (overrides foilopt.yaml)")
	c.Flags().Float64Var(&ff.speed, "speed", 0, "Cruise speed [m/s] (overrides foilopt.yaml)")
	c.Flags().Float64Var(&ff.viscosity, "viscosity", 0, "Kinematic viscosity [m^2/s] (overrides foilopt.yaml)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save run artifact under runs/")
	c.Flags().BoolVar(&noRecap, "no-recap", false, "Do not write optimization_recap.txt")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

// applyFlowFlags overrides only the flow values whose flags were set.
func applyFlowFlags(cmd *cobra.Command, cfg domain.Config, ff flowFlags) domain.Config {
	if cmd.Flags().Changed("chord") {
		cfg.Flow.Chord = ff.chord
	}
	if cmd.Flags().Changed("speed") {
		cfg.Flow.CruiseSpeed = ff.speed
	}
	if cmd.Flags().Changed("viscosity") {
		cfg.Flow.KinematicViscosity = ff.viscosity
	}
	return cfg
}

func printRun(w io.Writer, run domain.OptimizationRun, runID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"run_id": runID,
			"run":    run,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyRun(w, run, runID)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyRun(w io.Writer, run domain.OptimizationRun, runID string) {
	total := run.EndedAt.Sub(run.StartedAt)
	if run.StartedAt.IsZero() || run.EndedAt.IsZero() {
		total = 0
	}

	name := run.Airfoil
	if name == "" {
		name = "(unnamed)"
	}

	fmt.Fprintf(w, "Airfoil:    %s\n", name)
	fmt.Fprintf(w, "Polar:      %s\n", run.PolarPath)
	fmt.Fprintf(w, "Reynolds:   %.0f\n", run.ReynoldsNumber)
	fmt.Fprintf(w, "Started:    %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration:   %s\n", total)
	if runID != "" {
		fmt.Fprintf(w, "Run ID:     %s\n", runID)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Sweep: %d record(s), %d invalid\n", len(run.Sweep), countInvalid(run.Sweep))
	fmt.Fprintf(w, "Front: %d point(s)\n", len(run.Front))
	for i, p := range run.Front {
		mark := " "
		if i == 0 {
			mark = "*"
		}
		fmt.Fprintf(w, "  %s cl=%.4f  l/d=%.3f\n", mark, p.CL, p.Efficiency)
	}
	fmt.Fprintln(w)

	o := run.Optimal
	fmt.Fprintf(w, "Optimal: alpha=%.3f  cl=%.3f  cd=%.3f  l/d=%.3f\n", o.Alpha, o.CL, o.CD, o.Efficiency)
}

func countInvalid(s domain.Sweep) int {
	n := 0
	for _, r := range s {
		if !r.Valid() {
			n++
		}
	}
	return n
}
