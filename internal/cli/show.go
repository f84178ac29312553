package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hetznerctl/internal/output"
	"hetznerctl/internal/robot"
	"hetznerctl/internal/session"
)

// serverDetail aggregates everything show reports about one server.
type serverDetail struct {
	Server  robot.Server   `json:"server" yaml:"server"`
	IPs     []robot.IP     `json:"ips" yaml:"ips"`
	Subnets []robot.Subnet `json:"subnets" yaml:"subnets"`
	RDNS    []robot.RDNS   `json:"rdns" yaml:"rdns"`
}

func newShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <ip>...",
		Short: "Show full details of one or more servers",
		Long: `Show the full detail block of each server: base data, assigned IP
addresses, routed subnets with their address range, and reverse DNS
entries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return usageErrorf("show requires at least one IP address")
			}
			if !validFormat(format) {
				return usageErrorf("invalid output format %q (expected text, json or yaml)", format)
			}
			validated(cmd)
			return runShow(cmd, sess, format, args)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format: text, json or yaml")
	return cmd
}

func runShow(cmd *cobra.Command, s *session.Session, format string, ips []string) error {
	details := make([]serverDetail, 0, len(ips))
	for _, ip := range ips {
		detail, err := fetchDetail(cmd.Context(), s, ip)
		if err != nil {
			return err
		}
		details = append(details, *detail)
	}

	w := cmd.OutOrStdout()
	if format != formatText {
		return renderAs(w, format, details)
	}
	for i, detail := range details {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printDetail(w, &detail)
	}
	return nil
}

func fetchDetail(ctx context.Context, s *session.Session, ip string) (*serverDetail, error) {
	srv, err := s.Robot.Server(ctx, ip)
	if err != nil {
		return nil, err
	}
	addrs, err := s.Robot.IPs(ctx, srv.IP)
	if err != nil {
		return nil, err
	}
	subnets, err := s.Robot.Subnets(ctx, srv.IP)
	if err != nil {
		return nil, err
	}
	records, err := s.Robot.RDNSList(ctx, srv.IP)
	if err != nil {
		return nil, err
	}
	return &serverDetail{Server: *srv, IPs: addrs, Subnets: subnets, RDNS: records}, nil
}

func printDetail(w io.Writer, d *serverDetail) {
	srv := d.Server
	fmt.Fprintf(w, "Server %s (#%d %s)\n", srv.IP, srv.Number, srv.Product)

	const width = 11
	if srv.Name != "" {
		output.KeyValue(w, 2, "Name", width, srv.Name)
	}
	output.KeyValue(w, 2, "Datacenter", width, srv.Datacenter)
	output.KeyValue(w, 2, "Status", width, srv.Status)
	output.KeyValue(w, 2, "Traffic", width, srv.Traffic)
	output.KeyValue(w, 2, "Flatrate", width, output.YesNo(srv.Flatrate))
	output.KeyValue(w, 2, "Throttled", width, output.YesNo(srv.Throttled))
	output.KeyValue(w, 2, "Cancelled", width, output.YesNo(srv.Cancelled))
	if !srv.PaidUntil.IsZero() {
		output.KeyValue(w, 2, "Paid until", width, srv.PaidUntil.Format("2006-01-02"))
	}

	if len(d.IPs) > 0 {
		fmt.Fprintln(w, "  IP addresses:")
		for _, addr := range d.IPs {
			line := "    " + addr.IP
			if addr.SeparateMAC != "" {
				line += "  (separate MAC " + addr.SeparateMAC + ")"
			}
			if addr.Locked {
				line += "  [locked]"
			}
			fmt.Fprintln(w, line)
		}
	}

	if len(d.Subnets) > 0 {
		fmt.Fprintln(w, "  Subnets:")
		for _, sn := range d.Subnets {
			line := fmt.Sprintf("    %s/%d  gateway %s", sn.IP, sn.Mask, sn.Gateway)
			if first, last, err := sn.Range(); err == nil {
				line += fmt.Sprintf("  range %s - %s", first, last)
			}
			if sn.Failover {
				line += "  [failover]"
			}
			fmt.Fprintln(w, line)
		}
	}

	if len(d.RDNS) > 0 {
		fmt.Fprintln(w, "  Reverse DNS:")
		for _, rec := range d.RDNS {
			fmt.Fprintf(w, "    %s -> %s\n", rec.IP, rec.PTR)
		}
	}
}
