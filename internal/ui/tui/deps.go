package tui

import (
	"log/slog"

	"github.com/aalvaropc/foilopt/internal/ports"
)

type Deps struct {
	WorkspaceLocator     ports.WorkspaceLocator
	WorkspaceInitializer ports.WorkspaceInitializer

	Logger  *slog.Logger
	LogPath string // shown in the footer when Debug is set
	Debug   bool
}
