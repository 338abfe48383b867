package usecase

import (
	"errors"
	"sync"

	"github.com/aalvaropc/foilopt/internal/domain"
)

type fakeCoords struct {
	mu      sync.Mutex
	sets    map[string]domain.BoundaryPointSet
	written map[string]domain.CanonicalAirfoil
	readErr error
}

func newFakeCoords() *fakeCoords {
	return &fakeCoords{
		sets:    map[string]domain.BoundaryPointSet{},
		written: map[string]domain.CanonicalAirfoil{},
	}
}

func (f *fakeCoords) ReadCoordinates(path string) (domain.BoundaryPointSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return domain.BoundaryPointSet{}, f.readErr
	}
	s, ok := f.sets[path]
	if !ok {
		return domain.BoundaryPointSet{}, &domain.OpError{
			Op:   "fake.read",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  domain.ErrNotFound,
		}
	}
	return s, nil
}

func (f *fakeCoords) WriteCoordinates(path string, a domain.CanonicalAirfoil) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written[path] = a
	return nil
}

type fakePolar struct {
	sweep domain.Sweep
	err   error
}

func (f fakePolar) LoadPolar(string) (domain.Sweep, error) { return f.sweep, f.err }

type fakeStore struct {
	saved []domain.RunArtifact
	err   error
}

func (f *fakeStore) SaveRun(run domain.RunArtifact) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, run)
	return "run-1", nil
}

func (f *fakeStore) ListRuns() ([]domain.RunRef, error) { return nil, nil }

func (f *fakeStore) LoadRun(string) ([]byte, error) { return nil, errors.New("not implemented") }

type fakeRecap struct {
	runs []domain.OptimizationRun
}

func (f *fakeRecap) WriteRecap(run domain.OptimizationRun) (string, error) {
	f.runs = append(f.runs, run)
	return "output/optimization_recap.txt", nil
}

// lednicerSet is an ascending-ordered outline: upper surface LE->TE, then lower.
func lednicerSet() domain.BoundaryPointSet {
	return domain.BoundaryPointSet{
		Label: "TEST 12",
		Points: []domain.Point{
			{X: 0, Y: 0}, {X: 0.1, Y: 0.05}, {X: 0.3, Y: 0.07}, {X: 0.5, Y: 0.06},
			{X: 0.8, Y: 0.03}, {X: 1, Y: 0},
			{X: 0, Y: 0}, {X: 0.1, Y: -0.03}, {X: 0.3, Y: -0.04}, {X: 0.5, Y: -0.03},
			{X: 0.8, Y: -0.01}, {X: 1, Y: 0},
		},
	}
}
