package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/foilopt/internal/usecase/query"
)

func runsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved optimization runs",
	}

	c.AddCommand(runsListCmd(), runsQueryCmd())
	return c
}

func runsListCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			refs, err := ws.store.ListRuns()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no runs found)")
				return nil
			}
			for _, r := range refs {
				fmt.Fprintf(out, "- %s  %s  alpha=%.3f  (%s)\n",
					r.ID, r.Airfoil, r.Alpha, r.StartedAt.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}

func runsQueryCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "query <run-id> <[name=]jsonpath>...",
		Short: "Evaluate JSONPath expressions against a saved run",
		Example: `  foilopt runs query 20260102T030405Z_naca_2412 '$.optimal.alpha'
  foilopt runs query 20260102T030405Z_naca_2412 re='$.reynolds_number' cls='$.front[*].cl'`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			rules, err := query.ParseRules(args[1:])
			if err != nil {
				return err
			}

			doc, err := ws.store.LoadRun(args[0])
			if err != nil {
				return err
			}

			_, results := query.Apply(doc, rules)

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if r.Success {
					fmt.Fprintf(out, "%s = %s\n", r.Name, r.Message)
					continue
				}
				failed++
				fmt.Fprintf(out, "%s: %s\n", r.Name, r.Message)
			}
			if failed > 0 {
				return fmt.Errorf("%d query(ies) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}
