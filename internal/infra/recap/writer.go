package recap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aalvaropc/foilopt/internal/domain"
	"github.com/aalvaropc/foilopt/internal/ports"
)

// FileName is overwritten on every run.
const FileName = "optimization_recap.txt"

// Writer renders optimization_recap.txt into the workspace output dir.
type Writer struct {
	outputDir string
}

func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

var _ ports.RecapWriter = (*Writer)(nil)

func (w *Writer) WriteRecap(run domain.OptimizationRun) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "recap.mkdir",
			Kind: domain.KindExecution,
			Path: w.outputDir,
			Err:  err,
		}
	}

	path := filepath.Join(w.outputDir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", &domain.OpError{
			Op:   "recap.write",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	werr := Render(f, run)
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		return "", &domain.OpError{
			Op:   "recap.write",
			Kind: domain.KindExecution,
			Path: path,
			Err:  werr,
		}
	}
	return path, nil
}

// Render writes the human-readable recap of run.
func Render(w io.Writer, run domain.OptimizationRun) error {
	ew := &errWriter{w: w}

	ew.printf("\n--- OPTIMIZATION RESULTS ---\n\n")
	ew.printf("Airfoil model: %s\n\n", run.Airfoil)
	ew.printf("Parameters:\n")
	ew.printf("  -Chord: %s\n", num(run.Flow.Chord))
	ew.printf("  -Cruise Speed: %s\n", num(run.Flow.CruiseSpeed))
	ew.printf("  -Kinematic Viscosity: %s\n", num(run.Flow.KinematicViscosity))
	ew.printf("  -Reynolds Number: %s\n\n", num(run.ReynoldsNumber))
	ew.printf("Optimal Values:\n")
	ew.printf("  -Alpha: %.3f\n", run.Optimal.Alpha)
	ew.printf("  -CL: %.3f\n", run.Optimal.CL)
	ew.printf("  -CD: %.3f\n", run.Optimal.CD)
	ew.printf("  -L/D: %.3f\n", run.Optimal.Efficiency)

	return ew.err
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
