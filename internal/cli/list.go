package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hetznerctl/internal/output"
	"hetznerctl/internal/session"
	"hetznerctl/internal/theme"
)

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all servers of the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("list takes no arguments")
			}
			if !validFormat(format) {
				return usageErrorf("invalid output format %q (expected text, json or yaml)", format)
			}
			validated(cmd)
			return runList(cmd, sess, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format: text, json or yaml")
	return cmd
}

func runList(cmd *cobra.Command, s *session.Session, format string) error {
	servers, err := s.Robot.Servers(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if format != formatText {
		return renderAs(w, format, servers)
	}

	if theme.Enabled() {
		tbl := NewStyledTable("IP", "ID", "PRODUCT", "NAME")
		for _, srv := range servers {
			tbl.AddRow(srv.IP, strconv.Itoa(srv.Number), srv.Product, srv.Name)
		}
		fmt.Fprint(w, tbl.Render())
		return nil
	}

	tbl := output.NewTable(w, "IP", "ID", "PRODUCT", "NAME")
	for _, srv := range servers {
		tbl.AddRow(srv.IP, strconv.Itoa(srv.Number), srv.Product, srv.Name)
	}
	tbl.Render()
	return nil
}
