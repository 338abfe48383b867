package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/foilopt/internal/buildinfo"
	"github.com/aalvaropc/foilopt/internal/infra/logger"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, buildinfo.String()); err != nil {
				return err
			}
			if p := logger.Path(); p != "" {
				_, err := fmt.Fprintf(out, "log: %s\n", p)
				return err
			}
			return nil
		},
	}
}
