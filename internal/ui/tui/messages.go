package tui

import (
	"github.com/aalvaropc/foilopt/internal/domain"
	"github.com/aalvaropc/foilopt/internal/usecase"
)

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

type airfoilsLoadedMsg struct {
	root string
	refs []domain.AirfoilRef
	err  error
}

type runsLoadedMsg struct {
	root string
	refs []domain.RunRef
	err  error
}

type formatDoneMsg struct {
	res usecase.FormatResult
	err error
}

type optimizeDoneMsg struct {
	run domain.OptimizationRun
	id  string
	err error
}
