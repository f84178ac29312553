package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hetznerctl/internal/session"
	"hetznerctl/internal/theme"
)

func newRescueCmd() *cobra.Command {
	var (
		patience int
		manual   bool
		noShell  bool
	)

	cmd := &cobra.Command{
		Use:   "rescue <ip>...",
		Short: "Boot servers into the rescue system",
		Long: `Activate the rescue system, reboot the server and open an interactive
root shell over ssh once it is reachable. When the shell exits, the
rescue system is disarmed and the server rebooted back into its normal
system. Several servers are handled one after another.

With --noshell the rescue system is activated and the server rebooted,
but no shell is opened; the rescue password is printed instead so you
can connect yourself. The rescue system stays armed in that case.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return usageErrorf("rescue requires at least one IP address")
			}
			if patience <= 0 {
				return usageErrorf("--patience must be a positive number of seconds")
			}
			validated(cmd)
			return runRescue(cmd, sess, args, time.Duration(patience)*time.Second, manual, noShell)
		},
	}

	cmd.Flags().IntVar(&patience, "patience", 300, "seconds to wait per reboot attempt")
	cmd.Flags().BoolVar(&manual, "manual", false, "fall back to a manual reboot when the server stays down")
	cmd.Flags().BoolVar(&noShell, "noshell", false, "do not open a shell, print the rescue password instead")
	return cmd
}

func runRescue(cmd *cobra.Command, s *session.Session, ips []string, patience time.Duration, manual, noShell bool) error {
	for _, ip := range ips {
		if err := rescueOne(cmd, s, ip, patience, manual, noShell); err != nil {
			return err
		}
	}
	return nil
}

func rescueOne(cmd *cobra.Command, s *session.Session, ip string, patience time.Duration, manual, noShell bool) error {
	srv, err := s.Robot.Server(cmd.Context(), ip)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if noShell {
		state, err := s.Robot.ActivateRescue(cmd.Context(), srv.IP)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Rescue system armed for %s, rebooting\n", srv.IP)
		if err := s.Robot.ObservedReboot(cmd.Context(), srv, patience, manual); err != nil {
			return err
		}
		msg := fmt.Sprintf("Rescue system is up, connect with: ssh root@%s", srv.IP)
		if theme.Enabled() {
			msg = SuccessMessage(msg)
		}
		fmt.Fprintln(w, msg)
		fmt.Fprintf(w, "Password: %s\n", state.Password)
		return nil
	}

	fmt.Fprintf(w, "Booting %s into the rescue system\n", srv.IP)
	return s.Robot.RescueShell(cmd.Context(), srv, patience, manual)
}
