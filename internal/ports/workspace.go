package ports

import "github.com/aalvaropc/foilopt/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
