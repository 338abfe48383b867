package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/foilopt/internal/infra/fsworkspace"
	"github.com/aalvaropc/foilopt/internal/infra/logger"
	"github.com/aalvaropc/foilopt/internal/infra/workspacefinder"
	"github.com/aalvaropc/foilopt/internal/ui/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var cleanup func() error

	cmd := &cobra.Command{
		Use:          "foilopt",
		Short:        "foilopt: airfoil outline normalizer and polar optimizer",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cleanup, _ = logger.Setup(logger.Config{
				Root:  logRoot(),
				Debug: debug,
			})
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if cleanup != nil {
				return cleanup()
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(debug)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .foilopt/logs/foilopt.log")

	cmd.AddCommand(
		initCmd(),
		formatCmd(),
		optimizeCmd(),
		airfoilsCmd(),
		runsCmd(),
		tuiCmd(&debug),
		versionCmd(),
	)
	return cmd
}

func tuiCmd(debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse airfoils and run optimizations interactively",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(*debug)
		},
	}
}

func runTUI(debug bool) error {
	deps := tui.Deps{
		WorkspaceLocator:     workspacefinder.NewFinder(),
		WorkspaceInitializer: fsworkspace.NewInitializer(),
		Logger:               logger.For("tui"),
		LogPath:              logger.Path(),
		Debug:                debug,
	}
	return tui.Run(deps)
}

// logRoot is the workspace root when one is found, else the working directory.
func logRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	wd, _ = filepath.Abs(wd)

	if root, ferr := workspacefinder.NewFinder().FindRoot(wd); ferr == nil && root != "" {
		return root
	}
	return wd
}
