package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hetznerctl/internal/output"
	"hetznerctl/internal/session"
	"hetznerctl/internal/theme"
)

func newRdnsCmd() *cobra.Command {
	var (
		set    bool
		del    bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "rdns [<ip> [<ptr>]]",
		Short: "Query or maintain reverse DNS entries",
		Long: `Without arguments all reverse DNS entries of the account are listed.
With an IP address the entry for that address is printed.

  rdns --set <ip> <name>   create or replace the pointer for an address
  rdns --delete <ip>       remove the pointer for an address`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if set && del {
				return usageErrorf("--set and --delete are mutually exclusive")
			}
			if !validFormat(format) {
				return usageErrorf("invalid output format %q (expected text, json or yaml)", format)
			}
			switch {
			case set:
				if len(args) != 2 {
					return usageErrorf("rdns --set requires exactly an IP address and a name")
				}
				validated(cmd)
				return runRdnsSet(cmd, sess, args[0], args[1])
			case del:
				if len(args) != 1 {
					return usageErrorf("rdns --delete requires exactly one IP address")
				}
				validated(cmd)
				return runRdnsDelete(cmd, sess, args[0])
			case len(args) > 1:
				return usageErrorf("rdns takes at most one IP address (did you mean --set?)")
			case len(args) == 1:
				validated(cmd)
				return runRdnsQuery(cmd, sess, format, args[0])
			default:
				validated(cmd)
				return runRdnsList(cmd, sess, format)
			}
		},
	}

	cmd.Flags().BoolVar(&set, "set", false, "create or replace an entry")
	cmd.Flags().BoolVar(&del, "delete", false, "remove an entry")
	cmd.Flags().StringVar(&format, "format", formatText, "output format: text, json or yaml")
	return cmd
}

func runRdnsList(cmd *cobra.Command, s *session.Session, format string) error {
	records, err := s.Robot.RDNSList(cmd.Context(), "")
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if format != formatText {
		return renderAs(w, format, records)
	}

	if theme.Enabled() {
		tbl := NewStyledTable("IP", "PTR")
		for _, rec := range records {
			tbl.AddRow(rec.IP, rec.PTR)
		}
		fmt.Fprint(w, tbl.Render())
		return nil
	}

	tbl := output.NewTable(w, "IP", "PTR")
	for _, rec := range records {
		tbl.AddRow(rec.IP, rec.PTR)
	}
	tbl.Render()
	return nil
}

func runRdnsQuery(cmd *cobra.Command, s *session.Session, format, ip string) error {
	rec, err := s.Robot.RDNS(cmd.Context(), ip)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if format != formatText {
		return renderAs(w, format, rec)
	}
	fmt.Fprintf(w, "%s -> %s\n", rec.IP, rec.PTR)
	return nil
}

func runRdnsSet(cmd *cobra.Command, s *session.Session, ip, ptr string) error {
	rec, err := s.Robot.SetRDNS(cmd.Context(), ip, ptr)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("%s -> %s", rec.IP, rec.PTR)
	if theme.Enabled() {
		msg = SuccessMessage(msg)
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func runRdnsDelete(cmd *cobra.Command, s *session.Session, ip string) error {
	if err := s.Robot.DeleteRDNS(cmd.Context(), ip); err != nil {
		return err
	}
	msg := fmt.Sprintf("Removed reverse DNS entry for %s", ip)
	if theme.Enabled() {
		msg = SuccessMessage(msg)
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
