package ports

import "github.com/aalvaropc/foilopt/internal/domain"

// PolarLoader reads an alpha-ordered sweep produced by the external solver.
type PolarLoader interface {
	LoadPolar(path string) (domain.Sweep, error)
}
