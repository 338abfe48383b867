package ports

import "github.com/aalvaropc/foilopt/internal/domain"

// CoordinateSource reads a label line plus boundary points from a coordinate resource.
type CoordinateSource interface {
	ReadCoordinates(path string) (domain.BoundaryPointSet, error)
}

// CoordinateSink overwrites a coordinate resource with a canonical outline.
type CoordinateSink interface {
	WriteCoordinates(path string, airfoil domain.CanonicalAirfoil) error
}

// AirfoilCatalog lists coordinate files available in a workspace.
type AirfoilCatalog interface {
	ListAirfoils(root string) ([]domain.AirfoilRef, error)
}
