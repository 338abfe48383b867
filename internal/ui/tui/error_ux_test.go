package tui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aalvaropc/foilopt/internal/domain"
)

func TestUserMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{
			"airfoil not found",
			&domain.OpError{Op: "coordfile.read", Kind: domain.KindNotFound, Err: domain.ErrNotFound},
			"Airfoil file not found",
		},
		{
			"polar not found",
			&domain.OpError{Op: "polar.load", Kind: domain.KindNotFound, Err: domain.ErrNotFound},
			"Polar file not found (run the solver first)",
		},
		{
			"too few points with path",
			&domain.OpError{Op: "geometry.normalize", Kind: domain.KindTooFewPoints, Path: "/ws/input/e387.dat", Err: domain.ErrTooFewPoints},
			"Not enough coordinates in e387.dat",
		},
		{
			"empty front",
			&domain.OpError{Op: "pareto.select_optimal", Kind: domain.KindEmptyFront, Err: domain.ErrEmptyFront},
			"Polar has no valid records",
		},
		{
			"no match",
			&domain.OpError{Op: "pareto.select_optimal", Kind: domain.KindNoMatch, Err: domain.ErrNoMatch},
			"Optimal point not found in polar",
		},
		{
			"yaml line",
			&domain.OpError{Op: "workspacefinder.loadconfig", Kind: domain.KindInvalidConfig, Path: "/ws/foilopt.yaml", Err: errors.New("yaml: line 4: did not find expected key")},
			"Invalid YAML at foilopt.yaml line 4",
		},
		{
			"validation field",
			&domain.OpError{Op: "config.validate", Kind: domain.KindInvalidConfig, Path: "/ws/foilopt.yaml", Err: fmt.Errorf("field flow.chord: must be greater than 0: %w", domain.ErrInvalidConfig)},
			"Invalid flow.chord in foilopt.yaml",
		},
		{"plain", errors.New("boom"), "Unexpected error (see logs)"},
	}

	for _, c := range cases {
		if got := userMessage(c.err); got != c.want {
			t.Errorf("%s: userMessage() = %q, want %q", c.name, got, c.want)
		}
	}
}
