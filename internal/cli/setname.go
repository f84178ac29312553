package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hetznerctl/internal/session"
	"hetznerctl/internal/theme"
)

func newSetNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-name <ip> <name>",
		Short: "Rename a server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return usageErrorf("set-name requires exactly an IP address and a name")
			}
			validated(cmd)
			return runSetName(cmd, sess, args[0], args[1])
		},
	}
}

func runSetName(cmd *cobra.Command, s *session.Session, ip, name string) error {
	srv, err := s.Robot.SetServerName(cmd.Context(), ip, name)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("Server %s is now named %q", srv.IP, srv.Name)
	if theme.Enabled() {
		msg = SuccessMessage(msg)
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
