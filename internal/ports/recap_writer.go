package ports

import "github.com/aalvaropc/foilopt/internal/domain"

// RecapWriter renders a human-readable summary of a run.
type RecapWriter interface {
	WriteRecap(run domain.OptimizationRun) (path string, err error)
}
