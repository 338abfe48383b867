package usecase

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/aalvaropc/foilopt/internal/domain"
	"github.com/aalvaropc/foilopt/internal/ports"
	"github.com/aalvaropc/foilopt/internal/usecase/geometry"
)

// FormatResult describes one rewritten coordinate file.
type FormatResult struct {
	Path         string
	Label        string
	InputPoints  int
	OutputPoints int
	Reversed     bool
}

type FormatAirfoil struct {
	source ports.CoordinateSource
	sink   ports.CoordinateSink
	log    *slog.Logger
	jobs   int
}

type FormatOption func(*FormatAirfoil)

func WithFormatLogger(l *slog.Logger) FormatOption {
	return func(uc *FormatAirfoil) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithJobs bounds how many files ExecuteAll rewrites at once.
func WithJobs(n int) FormatOption {
	return func(uc *FormatAirfoil) {
		if n > 0 {
			uc.jobs = n
		}
	}
}

func NewFormatAirfoil(src ports.CoordinateSource, sink ports.CoordinateSink, opts ...FormatOption) *FormatAirfoil {
	uc := &FormatAirfoil{
		source: src,
		sink:   sink,
		log:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		jobs:   4,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute reads path, normalizes its outline and overwrites path with the result.
// Nothing is written when normalization fails.
func (uc *FormatAirfoil) Execute(ctx context.Context, path string) (FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return FormatResult{}, err
	}

	set, err := uc.source.ReadCoordinates(path)
	if err != nil {
		return FormatResult{}, err
	}

	canonical, reversed, err := geometry.NormalizeSet(set)
	if err != nil {
		if oe, ok := err.(*domain.OpError); ok && oe.Path == "" {
			oe.Path = path
		}
		uc.log.Error("format.failed", "path", path, "points", len(set.Points), "err", err)
		return FormatResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return FormatResult{}, err
	}
	if err := uc.sink.WriteCoordinates(path, canonical); err != nil {
		return FormatResult{}, err
	}

	res := FormatResult{
		Path:         path,
		Label:        set.Label,
		InputPoints:  len(set.Points),
		OutputPoints: len(canonical.Points),
		Reversed:     reversed,
	}
	uc.log.Info("format.ok",
		"path", path,
		"label", res.Label,
		"input_points", res.InputPoints,
		"output_points", res.OutputPoints,
		"reversed", res.Reversed,
	)
	return res, nil
}

// ExecuteAll formats every distinct path concurrently. Repeated paths are formatted
// once; results follow the order of first appearance. The first error cancels files
// that have not started yet.
func (uc *FormatAirfoil) ExecuteAll(ctx context.Context, paths []string) ([]FormatResult, error) {
	paths = uniquePaths(paths)
	results := make([]FormatResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.jobs)

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			res, err := uc.Execute(gctx, p)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func uniquePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		key := filepath.Clean(p)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
