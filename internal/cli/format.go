package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/foilopt/internal/infra/logger"
	"github.com/aalvaropc/foilopt/internal/usecase"
)

func formatCmd() *cobra.Command {
	var workspace string
	var jobs int
	var all bool

	c := &cobra.Command{
		Use:   "format [airfoil...]",
		Short: "Rewrite airfoil coordinate files in solver order (TE, upper, LE, lower, TE)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !all {
				return fmt.Errorf("no airfoil given (pass names/paths or --all)")
			}

			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			var paths []string
			if all {
				refs, err := ws.catalog.ListAirfoils(ws.root)
				if err != nil {
					return err
				}
				for _, r := range refs {
					paths = append(paths, r.Path)
				}
			}
			for _, a := range args {
				p, err := resolveAirfoilPath(ws, a)
				if err != nil {
					return err
				}
				paths = append(paths, p)
			}
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no airfoils found)")
				return nil
			}

			uc := usecase.NewFormatAirfoil(ws.coords, ws.coords,
				usecase.WithJobs(jobs),
				usecase.WithFormatLogger(logger.For("format")),
			)

			results, err := uc.ExecuteAll(cmd.Context(), paths)
			printFormatResults(cmd.OutOrStdout(), ws.root, results)
			return err
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().IntVarP(&jobs, "jobs", "j", 4, "Files to format concurrently")
	c.Flags().BoolVar(&all, "all", false, "Format every coordinate file in the input dir")
	return c
}

func printFormatResults(w io.Writer, root string, results []usecase.FormatResult) {
	for _, r := range results {
		if r.Path == "" {
			continue
		}
		rel, err := filepath.Rel(root, r.Path)
		if err != nil {
			rel = r.Path
		}
		order := "kept"
		if r.Reversed {
			order = "reversed"
		}
		fmt.Fprintf(w, "- %s  (%s) %d -> %d points, upper surface %s\n",
			r.Label, rel, r.InputPoints, r.OutputPoints, order)
	}
}
