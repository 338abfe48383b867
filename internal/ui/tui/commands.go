package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/foilopt/internal/infra/coordfile"
	"github.com/aalvaropc/foilopt/internal/infra/polar"
	"github.com/aalvaropc/foilopt/internal/infra/recap"
	"github.com/aalvaropc/foilopt/internal/infra/runstore"
	"github.com/aalvaropc/foilopt/internal/infra/workspacefinder"
	"github.com/aalvaropc/foilopt/internal/usecase"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := usecase.NewInitWorkspace(deps.WorkspaceInitializer).Execute(root, false)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}

func cmdLoadAirfoils(root string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return airfoilsLoadedMsg{root: root, err: err}
		}

		store := coordfile.NewStore(coordfile.WithInputDir(cfg.Paths.InputDir))
		refs, err := store.ListAirfoils(root)
		return airfoilsLoadedMsg{root: root, refs: refs, err: err}
	}
}

func cmdLoadRuns(root string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return runsLoadedMsg{root: root, err: err}
		}

		refs, err := runstore.NewJSONStore(root, cfg).ListRuns()
		return runsLoadedMsg{root: root, refs: refs, err: err}
	}
}

func listen[T any](ch <-chan T, closed T) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return closed
		}
		return msg
	}
}

func startFormatAsync(path string, log *slog.Logger) (chan formatDoneMsg, tea.Cmd) {
	ch := make(chan formatDoneMsg, 1)

	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		log.Info("format.start", "path", path, "source", "tui")

		store := coordfile.NewStore()
		uc := usecase.NewFormatAirfoil(store, store, usecase.WithFormatLogger(log))

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		res, err := uc.Execute(ctx, path)
		ch <- formatDoneMsg{res: res, err: err}
	}()

	return ch, listen(ch, formatDoneMsg{err: errors.New("format channel closed")})
}

func startOptimizeAsync(
	workspaceRoot, airfoilPath string,
	log *slog.Logger,
	debug bool,
) (chan optimizeDoneMsg, tea.Cmd) {
	ch := make(chan optimizeDoneMsg, 1)

	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		log.Info("optimize.start",
			"workspace", workspaceRoot,
			"airfoil_path", airfoilPath,
			"source", "tui",
			"debug", debug,
		)

		cfg, err := workspacefinder.LoadConfig(workspaceRoot)
		if err != nil {
			log.Error("optimize.load_config.failed", "err", err)
			ch <- optimizeDoneMsg{err: err}
			return
		}

		uc := usecase.NewOptimizeSweep(
			coordfile.NewStore(coordfile.WithInputDir(cfg.Paths.InputDir)),
			polar.NewLoader(),
			usecase.WithStore(runstore.NewJSONStore(workspaceRoot, cfg, runstore.WithIndex(true))),
			usecase.WithRecap(recap.NewWriter(filepath.Join(workspaceRoot, cfg.Paths.OutputDir))),
			usecase.WithOptimizeLogger(log),
		)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		run, id, execErr := uc.Execute(ctx, usecase.OptimizeInput{
			AirfoilPath: airfoilPath,
			PolarPath:   filepath.Join(workspaceRoot, cfg.Paths.OutputDir, cfg.Paths.PolarFile),
			Flow:        cfg.Flow,
			Solver:      cfg.Solver,
		})

		if execErr != nil {
			log.Error("optimize.failed", "err", execErr, "saved_id", id)
		} else if debug {
			for i, p := range run.Front {
				log.Debug("optimize.front_point", "index", i, "cl", p.CL, "efficiency", p.Efficiency)
			}
		}

		ch <- optimizeDoneMsg{run: run, id: id, err: execErr}
	}()

	return ch, listen(ch, optimizeDoneMsg{err: errors.New("optimize channel closed")})
}
