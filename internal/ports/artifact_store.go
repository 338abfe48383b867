package ports

import "github.com/aalvaropc/foilopt/internal/domain"

// ArtifactStore persists optimization runs for reproducibility.
type ArtifactStore interface {
	SaveRun(run domain.RunArtifact) (id string, err error)
	ListRuns() ([]domain.RunRef, error)
	LoadRun(id string) ([]byte, error)
}
