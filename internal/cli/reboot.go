package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hetznerctl/internal/robot"
	"hetznerctl/internal/session"
	"hetznerctl/internal/theme"
)

func newRebootCmd() *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "reboot <ip>...",
		Short: "Reboot one or more servers",
		Long: `Reboot servers by their main IP address. The soft method triggers
Ctrl-Alt-Del, hard performs a hardware reset and manual asks a
technician to press the power button.

With several IP addresses a failure on one server is reported and the
remaining servers are still rebooted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return usageErrorf("reboot requires at least one IP address")
			}
			m, err := robot.ParseRebootMethod(method)
			if err != nil {
				return usageErrorf("%v", err)
			}
			validated(cmd)
			return runReboot(cmd, sess, m, args)
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", string(robot.RebootSoft), "reboot method: soft, hard or manual")
	return cmd
}

func runReboot(cmd *cobra.Command, s *session.Session, method robot.RebootMethod, ips []string) error {
	w := cmd.OutOrStdout()
	var failed int
	for _, ip := range ips {
		if err := s.Robot.Reboot(cmd.Context(), ip, method); err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: rebooting %s: %v\n", ip, err)
			continue
		}
		msg := fmt.Sprintf("Rebooting %s (%s)", ip, method)
		if theme.Enabled() {
			msg = SuccessMessage(msg)
		}
		fmt.Fprintln(w, msg)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d reboots failed", failed, len(ips))
	}
	return nil
}
