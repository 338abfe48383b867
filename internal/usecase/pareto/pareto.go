// Package pareto selects operating points that trade lift against lift-to-drag
// efficiency.
//
// BuildFront is a single forward pass over an alpha-ordered sweep. When a later
// record dominates the current one the scan jumps straight to that record, so the
// records in between are never examined. The result is therefore not a complete
// skyline: a front point is only guaranteed to be undominated by records that come
// after it.
package pareto

import (
	"fmt"

	"github.com/aalvaropc/foilopt/internal/domain"
)

// Dominates reports whether a has strictly greater cL and strictly greater
// efficiency than b.
func Dominates(a, b domain.SweepRecord) bool {
	return a.CL > b.CL && a.Efficiency > b.Efficiency
}

// BuildFront returns the non-dominated points of sweep in alpha order.
// Invalid records (cL and cD both zero) never enter the front.
func BuildFront(sweep domain.Sweep) []domain.ParetoPoint {
	front := make([]domain.ParetoPoint, 0)

	i := 0
	for i < len(sweep) {
		cur := sweep[i]
		if !cur.Valid() {
			i++
			continue
		}

		next := -1
		for j := i + 1; j < len(sweep); j++ {
			if Dominates(sweep[j], cur) {
				next = j
				break
			}
		}
		if next >= 0 {
			i = next
			continue
		}

		front = append(front, cur.Point())
		i++
	}

	return front
}

// SelectOptimal adopts the first front point and returns the first sweep record
// whose cL and efficiency are exactly equal to it.
func SelectOptimal(front []domain.ParetoPoint, sweep domain.Sweep) (domain.OptimalConfig, error) {
	if len(front) == 0 {
		return domain.OptimalConfig{}, &domain.OpError{
			Op:   "pareto.select_optimal",
			Kind: domain.KindEmptyFront,
			Err:  domain.ErrEmptyFront,
		}
	}

	best := front[0]
	for _, r := range sweep {
		if r.CL == best.CL && r.Efficiency == best.Efficiency {
			return domain.OptimalConfig{
				Alpha:      r.Alpha,
				CL:         r.CL,
				CD:         r.CD,
				Efficiency: r.Efficiency,
			}, nil
		}
	}

	return domain.OptimalConfig{}, &domain.OpError{
		Op:   "pareto.select_optimal",
		Kind: domain.KindNoMatch,
		Err:  fmt.Errorf("%w: cl=%g efficiency=%g", domain.ErrNoMatch, best.CL, best.Efficiency),
	}
}

// Optimize builds the front of sweep and selects its optimal record.
func Optimize(sweep domain.Sweep) ([]domain.ParetoPoint, domain.OptimalConfig, error) {
	front := BuildFront(sweep)
	opt, err := SelectOptimal(front, sweep)
	if err != nil {
		return front, domain.OptimalConfig{}, err
	}
	return front, opt, nil
}
