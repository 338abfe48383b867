package usecase

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/aalvaropc/foilopt/internal/domain"
	"github.com/aalvaropc/foilopt/internal/ports"
	"github.com/aalvaropc/foilopt/internal/usecase/pareto"
)

// OptimizeInput selects the polar to optimize and the settings it was produced with.
type OptimizeInput struct {
	AirfoilPath string // optional; its label names the run
	PolarPath   string
	Flow        domain.FlowConfig
	Solver      domain.SolverConfig
}

type OptimizeSweep struct {
	airfoils ports.CoordinateSource
	polars   ports.PolarLoader
	store    ports.ArtifactStore
	recap    ports.RecapWriter
	log      *slog.Logger
	now      func() time.Time
}

type OptimizeOption func(*OptimizeSweep)

// WithStore persists each run. A nil store disables saving.
func WithStore(s ports.ArtifactStore) OptimizeOption {
	return func(uc *OptimizeSweep) { uc.store = s }
}

// WithRecap writes a text recap after each run. A nil writer disables it.
func WithRecap(w ports.RecapWriter) OptimizeOption {
	return func(uc *OptimizeSweep) { uc.recap = w }
}

func WithOptimizeLogger(l *slog.Logger) OptimizeOption {
	return func(uc *OptimizeSweep) {
		if l != nil {
			uc.log = l
		}
	}
}

func WithClock(now func() time.Time) OptimizeOption {
	return func(uc *OptimizeSweep) {
		if now != nil {
			uc.now = now
		}
	}
}

func NewOptimizeSweep(airfoils ports.CoordinateSource, polars ports.PolarLoader, opts ...OptimizeOption) *OptimizeSweep {
	uc := &OptimizeSweep{
		airfoils: airfoils,
		polars:   polars,
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute builds the Pareto front of the polar, selects the optimal record and
// saves the run. The returned run is filled as far as the pipeline got, so
// callers can still report a partial result on error.
func (uc *OptimizeSweep) Execute(ctx context.Context, in OptimizeInput) (domain.OptimizationRun, string, error) {
	run := domain.OptimizationRun{
		AirfoilPath:    in.AirfoilPath,
		PolarPath:      in.PolarPath,
		Flow:           in.Flow,
		Solver:         in.Solver,
		ReynoldsNumber: in.Flow.ReynoldsNumber(),
		StartedAt:      uc.now(),
	}
	if err := ctx.Err(); err != nil {
		run.EndedAt = uc.now()
		return run, "", err
	}

	run.Airfoil = uc.airfoilName(in.AirfoilPath)

	sweep, err := uc.polars.LoadPolar(in.PolarPath)
	if err != nil {
		run.EndedAt = uc.now()
		return run, "", err
	}
	run.Sweep = sweep

	run.Front = pareto.BuildFront(sweep)
	uc.log.Info("optimize.front_built",
		"polar", in.PolarPath,
		"records", len(sweep),
		"front", len(run.Front),
	)

	opt, err := pareto.SelectOptimal(run.Front, sweep)
	if err != nil {
		if oe, ok := err.(*domain.OpError); ok && oe.Path == "" {
			oe.Path = in.PolarPath
		}
		uc.log.Error("optimize.select_failed", "polar", in.PolarPath, "err", err)
		run.EndedAt = uc.now()
		return run, "", err
	}
	run.Optimal = opt
	run.EndedAt = uc.now()

	uc.log.Info("optimize.ok",
		"airfoil", run.Airfoil,
		"alpha", opt.Alpha,
		"cl", opt.CL,
		"cd", opt.CD,
		"efficiency", opt.Efficiency,
	)

	if uc.recap != nil {
		path, err := uc.recap.WriteRecap(run)
		if err != nil {
			return run, "", err
		}
		uc.log.Debug("optimize.recap_written", "path", path)
	}

	if uc.store == nil {
		return run, "", nil
	}
	id, err := uc.store.SaveRun(run)
	if err != nil {
		uc.log.Error("optimize.save_failed", "err", err)
		return run, "", err
	}
	return run, id, nil
}

func (uc *OptimizeSweep) airfoilName(path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	if uc.airfoils != nil {
		set, err := uc.airfoils.ReadCoordinates(path)
		if err == nil && strings.TrimSpace(set.Label) != "" {
			return strings.TrimSpace(set.Label)
		}
		if err != nil {
			uc.log.Warn("optimize.airfoil_label_unreadable", "path", path, "err", err)
		}
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
