package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			validated(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "hetznerctl %s (commit %s, built %s)\n", Version, Commit, Date)
			return nil
		},
	}
}
