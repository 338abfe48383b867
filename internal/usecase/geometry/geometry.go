// Package geometry reorders raw airfoil outlines into the point order expected by
// panel-method solvers: trailing edge, upper surface towards the leading edge, then
// the lower surface back to the trailing edge.
//
// Point comparisons are exact. Two coordinates that differ in the last bit are
// different points.
package geometry

import (
	"fmt"
	"slices"

	"github.com/aalvaropc/foilopt/internal/domain"
)

// Extremes returns the indices of the leading edge (minimum x) and trailing edge
// (maximum x). On ties the first occurrence wins for both.
// The caller must pass a non-empty slice.
func Extremes(points []domain.Point) (le, te int) {
	for i := 1; i < len(points); i++ {
		if points[i].Less(points[le]) {
			le = i
		}
		if points[te].Less(points[i]) {
			te = i
		}
	}
	return le, te
}

// NeedsReversing reports whether the outline starts in ascending x order, judged
// from the first two points only.
func NeedsReversing(points []domain.Point) bool {
	return len(points) > 1 && points[1].X > points[0].X
}

// Split partitions points into upper and lower surfaces. Points go to the upper
// surface until x first decreases; from there on every point is lower surface.
func Split(points []domain.Point) (upper, lower []domain.Point) {
	cut := len(points)
	for i := 1; i < len(points); i++ {
		if points[i].X < points[i-1].X {
			cut = i
			break
		}
	}
	return points[:cut], points[cut:]
}

// Normalize returns the canonical ordering of points. The input is not modified.
//
// Upper-surface duplicates are dropped (first occurrence kept) and so is every
// upper-surface point equal to the leading edge; the leading edge is the implicit
// junction between the two surfaces. Lower-surface points are kept verbatim.
func Normalize(points []domain.Point) ([]domain.Point, error) {
	out, _, err := normalize(points)
	return out, err
}

func normalize(points []domain.Point) ([]domain.Point, bool, error) {
	if len(points) < domain.MinBoundaryPoints {
		return nil, false, &domain.OpError{
			Op:   "geometry.normalize",
			Kind: domain.KindTooFewPoints,
			Err:  fmt.Errorf("%w: got %d, need at least %d", domain.ErrTooFewPoints, len(points), domain.MinBoundaryPoints),
		}
	}

	leIdx, _ := Extremes(points)
	le := points[leIdx]
	reverse := NeedsReversing(points)
	upperRaw, lowerRaw := Split(points)

	seen := make(map[domain.Point]struct{}, len(upperRaw))
	upper := make([]domain.Point, 0, len(upperRaw))
	for _, p := range upperRaw {
		if p.Equal(le) {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		upper = append(upper, p)
	}

	if reverse {
		slices.Reverse(upper)
	}

	out := make([]domain.Point, 0, len(upper)+len(lowerRaw))
	out = append(out, upper...)
	out = append(out, lowerRaw...)
	return out, reverse, nil
}

// NormalizeSet normalizes a parsed coordinate file, carrying its label through.
// reversed reports whether the upper surface was flipped to run TE -> LE.
func NormalizeSet(set domain.BoundaryPointSet) (airfoil domain.CanonicalAirfoil, reversed bool, err error) {
	pts, reversed, err := normalize(set.Points)
	if err != nil {
		return domain.CanonicalAirfoil{}, false, err
	}
	return domain.CanonicalAirfoil{Label: set.Label, Points: pts}, reversed, nil
}
