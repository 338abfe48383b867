package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/foilopt/internal/infra/fsworkspace"
	"github.com/aalvaropc/foilopt/internal/infra/logger"
	"github.com/aalvaropc/foilopt/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a foilopt workspace (foilopt.yaml, input/, output/, runs/)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, force); err != nil {
				logger.For("init").Error("init.failed", "root", root, "err", err)
				return err
			}

			logger.For("init").Info("init.ok", "root", root, "force", force)
			fmt.Fprintf(cmd.OutOrStdout(), "Workspace ready at %s\n", root)
			return nil
		},
	}

	c.Flags().StringVarP(&path, "path", "p", ".", "Directory to initialize")
	c.Flags().BoolVar(&force, "force", false, "Overwrite template files that already exist")
	return c
}
