package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aalvaropc/foilopt/internal/domain"
)

func polarSweep() domain.Sweep {
	return domain.NewSweep(
		[]float64{0, 1, 2, 3, 4},
		[]float64{0.2, 0.3, 0.4, 0.5, 0.6},
		[]float64{0.01, 0.01, 0.01, 0.02, 0.03},
	)
}

func fixedClock() func() time.Time {
	t0 := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return func() time.Time { return t0 }
}

func TestOptimizeSweep_SelectsAndPersists(t *testing.T) {
	coords := newFakeCoords()
	coords.sets["input/naca.dat"] = lednicerSet()
	store := &fakeStore{}
	rec := &fakeRecap{}

	flow := domain.DefaultConfig().Flow
	uc := NewOptimizeSweep(coords, fakePolar{sweep: polarSweep()},
		WithStore(store),
		WithRecap(rec),
		WithClock(fixedClock()),
	)

	run, id, err := uc.Execute(context.Background(), OptimizeInput{
		AirfoilPath: "input/naca.dat",
		PolarPath:   "sim_results.dat",
		Flow:        flow,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if id != "run-1" {
		t.Fatalf("expected store id, got %q", id)
	}
	if run.Airfoil != "TEST 12" {
		t.Fatalf("expected label as airfoil name, got %q", run.Airfoil)
	}
	if run.ReynoldsNumber != flow.ReynoldsNumber() {
		t.Fatalf("reynolds not recorded: %v", run.ReynoldsNumber)
	}

	// efficiencies 20, 30, 40, 25, 20: alpha=2 dominates everything before it
	sweep := polarSweep()
	if len(run.Front) == 0 || run.Front[0] != sweep[2].Point() {
		t.Fatalf("unexpected front: %#v", run.Front)
	}
	if run.Optimal.Alpha != 2 {
		t.Fatalf("expected alpha=2, got %#v", run.Optimal)
	}
	if len(store.saved) != 1 || len(rec.runs) != 1 {
		t.Fatalf("expected one save and one recap, got %d/%d", len(store.saved), len(rec.runs))
	}
	if run.EndedAt.IsZero() || run.StartedAt.IsZero() {
		t.Fatalf("expected timestamps")
	}
}

func TestOptimizeSweep_NoStoreNoID(t *testing.T) {
	uc := NewOptimizeSweep(nil, fakePolar{sweep: polarSweep()})

	run, id, err := uc.Execute(context.Background(), OptimizeInput{PolarPath: "p.dat"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if id != "" {
		t.Fatalf("expected empty id, got %q", id)
	}
	if run.Airfoil != "" {
		t.Fatalf("expected no airfoil name, got %q", run.Airfoil)
	}
}

func TestOptimizeSweep_AirfoilNameFallsBackToFileName(t *testing.T) {
	coords := newFakeCoords()
	uc := NewOptimizeSweep(coords, fakePolar{sweep: polarSweep()})

	run, _, err := uc.Execute(context.Background(), OptimizeInput{
		AirfoilPath: "input/e387.dat",
		PolarPath:   "p.dat",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if run.Airfoil != "e387" {
		t.Fatalf("expected file stem, got %q", run.Airfoil)
	}
}

func TestOptimizeSweep_AllInvalidIsEmptyFront(t *testing.T) {
	sweep := domain.NewSweep([]float64{0, 1}, []float64{0, 0}, []float64{0, 0})
	store := &fakeStore{}
	rec := &fakeRecap{}
	uc := NewOptimizeSweep(nil, fakePolar{sweep: sweep}, WithStore(store), WithRecap(rec))

	run, _, err := uc.Execute(context.Background(), OptimizeInput{PolarPath: "p.dat"})
	if !domain.IsKind(err, domain.KindEmptyFront) {
		t.Fatalf("expected empty_front, got %v", err)
	}
	var oe *domain.OpError
	if !errors.As(err, &oe) || oe.Path != "p.dat" {
		t.Fatalf("expected polar path on error, got %#v", err)
	}
	if len(run.Sweep) != 2 {
		t.Fatalf("expected sweep kept on partial run")
	}
	if len(store.saved) != 0 || len(rec.runs) != 0 {
		t.Fatalf("failed runs must not be persisted")
	}
}

func TestOptimizeSweep_PolarError(t *testing.T) {
	perr := &domain.OpError{Op: "polar.load", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
	uc := NewOptimizeSweep(nil, fakePolar{err: perr})

	_, _, err := uc.Execute(context.Background(), OptimizeInput{PolarPath: "missing.dat"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOptimizeSweep_StoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	uc := NewOptimizeSweep(nil, fakePolar{sweep: polarSweep()}, WithStore(store))

	run, id, err := uc.Execute(context.Background(), OptimizeInput{PolarPath: "p.dat"})
	if err == nil {
		t.Fatalf("expected store error")
	}
	if id != "" {
		t.Fatalf("expected no id")
	}
	if run.Optimal.Alpha != 2 {
		t.Fatalf("optimal should still be reported, got %#v", run.Optimal)
	}
}

func TestOptimizeSweep_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewOptimizeSweep(nil, fakePolar{sweep: polarSweep()})
	if _, _, err := uc.Execute(ctx, OptimizeInput{PolarPath: "p.dat"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
