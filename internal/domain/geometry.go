package domain

// MinBoundaryPoints is the smallest point count an airfoil outline can be normalized from.
const MinBoundaryPoints = 10

// Point is a 2D airfoil coordinate in chord-normalized units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Less orders points by X only.
func (p Point) Less(o Point) bool {
	return p.X < o.X
}

// Equal reports exact field equality (no epsilon).
func (p Point) Equal(o Point) bool {
	return p.X == o.X && p.Y == o.Y
}

// BoundaryPointSet is the raw content of a coordinate file.
// Label is the first line of the file (usually the airfoil name) and is never parsed.
type BoundaryPointSet struct {
	Label  string
	Points []Point
}

// CanonicalAirfoil is an outline ordered trailing edge -> upper surface -> lower
// surface -> trailing edge. The leading edge is the junction between both surfaces
// and is not stored as an explicit upper-surface entry.
type CanonicalAirfoil struct {
	Label  string
	Points []Point
}

// AirfoilRef is a lightweight reference to a coordinate file on disk.
type AirfoilRef struct {
	Name string
	Path string
}
