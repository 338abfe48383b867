package polar

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/foilopt/internal/domain"
)

func TestLoadPolar_XFOILFile(t *testing.T) {
	sweep, err := NewLoader().LoadPolar(filepath.Join("testdata", "naca2412_polar.dat"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sweep) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(sweep))
	}

	first := sweep[0]
	if first.Alpha != 0 || first.CL != 0.2506 || first.CD != 0.00812 {
		t.Fatalf("unexpected first row %+v", first)
	}
	if first.Efficiency != first.CL/first.CD {
		t.Fatalf("expected efficiency cl/cd, got %v", first.Efficiency)
	}
	if sweep[7].Alpha != 4 {
		t.Fatalf("expected order preserved, last alpha %v", sweep[7].Alpha)
	}
}

func TestLoadPolar_Missing(t *testing.T) {
	_, err := NewLoader().LoadPolar(filepath.Join(t.TempDir(), "missing.dat"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestParse_DiscardsRowsAboveSeparator(t *testing.T) {
	in := strings.Join([]string{
		"1 2 3 looks like data",
		"------ --------",
		"0.0 0.3 0.01",
		"bad row here",
		"1.0 NaN 0.01",
		"2.0 0.5",
		"3.0 0.0 0.0",
	}, "\n")

	sweep, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sweep) != 2 {
		t.Fatalf("expected 2 rows, got %d (%+v)", len(sweep), sweep)
	}
	if sweep[1].Valid() {
		t.Fatalf("expected zero row to be kept as invalid sentinel")
	}
}

func TestParse_NoSeparator(t *testing.T) {
	sweep, err := Parse(strings.NewReader("alpha CL CD\n0 0.2 0.01\n1 0.3 0.012\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sweep) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(sweep))
	}
}

func TestIsSeparator(t *testing.T) {
	cases := map[string]bool{
		"------ -------- ---------": true,
		"---":                       true,
		"--":                        false,
		"-0.5 0.1 0.01":             false,
		"--- x":                     false,
	}
	for in, want := range cases {
		if got := isSeparator(in); got != want {
			t.Errorf("isSeparator(%q) = %v, want %v", in, got, want)
		}
	}
}
