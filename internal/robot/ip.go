package robot

import (
	"context"
	"net/netip"
	"net/url"

	"hetznerctl/internal/netutil"
)

// IP is a single address assigned to a server.
type IP struct {
	IP              string `json:"ip" yaml:"ip"`
	ServerIP        string `json:"server_ip" yaml:"server_ip"`
	Locked          bool   `json:"locked" yaml:"locked"`
	SeparateMAC     string `json:"separate_mac" yaml:"separate_mac,omitempty"`
	TrafficWarnings bool   `json:"traffic_warnings" yaml:"traffic_warnings"`
	TrafficHourly   int    `json:"traffic_hourly" yaml:"traffic_hourly"`
	TrafficDaily    int    `json:"traffic_daily" yaml:"traffic_daily"`
	TrafficMonthly  int    `json:"traffic_monthly" yaml:"traffic_monthly"`
}

type ipEnvelope struct {
	IP IP `json:"ip"`
}

// IP fetches a single address.
func (c *Client) IP(ctx context.Context, ip string) (*IP, error) {
	var env ipEnvelope
	if err := c.get(ctx, "/ip/"+url.PathEscape(ip), &env); err != nil {
		return nil, err
	}
	return &env.IP, nil
}

// IPs lists all addresses belonging to the server with the given main IP.
func (c *Client) IPs(ctx context.Context, serverIP string) ([]IP, error) {
	query := url.Values{"server_ip": {serverIP}}
	var envs []ipEnvelope
	if err := c.get(ctx, "/ip?"+query.Encode(), &envs); err != nil {
		// No addresses beyond the main IP is reported as 404.
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	ips := make([]IP, len(envs))
	for i, env := range envs {
		ips[i] = env.IP
	}
	return ips, nil
}

// Subnet is an address block routed to a server.
type Subnet struct {
	IP              string `json:"ip" yaml:"ip"`
	Mask            int    `json:"mask" yaml:"mask"`
	Gateway         string `json:"gateway" yaml:"gateway"`
	ServerIP        string `json:"server_ip" yaml:"server_ip"`
	Failover        bool   `json:"failover" yaml:"failover"`
	Locked          bool   `json:"locked" yaml:"locked"`
	TrafficWarnings bool   `json:"traffic_warnings" yaml:"traffic_warnings"`
	TrafficHourly   int    `json:"traffic_hourly" yaml:"traffic_hourly"`
	TrafficDaily    int    `json:"traffic_daily" yaml:"traffic_daily"`
	TrafficMonthly  int    `json:"traffic_monthly" yaml:"traffic_monthly"`
}

// Range returns the smallest and biggest address of the subnet.
func (s *Subnet) Range() (first, last netip.Addr, err error) {
	p, err := netutil.ParsePrefix(s.IP, s.Mask)
	if err != nil {
		return netip.Addr{}, netip.Addr{}, err
	}
	first, last = netutil.Range(p)
	return first, last, nil
}

// Contains reports whether addr lies within the subnet. Malformed input on
// either side counts as outside.
func (s *Subnet) Contains(addr string) bool {
	p, err := netutil.ParsePrefix(s.IP, s.Mask)
	if err != nil {
		return false
	}
	return netutil.Contains(p, addr)
}

type subnetEnvelope struct {
	Subnet Subnet `json:"subnet"`
}

// Subnets lists the subnets routed to the server with the given main IP.
// A server without subnets is reported by the API as 404 rather than an
// empty list.
func (c *Client) Subnets(ctx context.Context, serverIP string) ([]Subnet, error) {
	query := url.Values{"server_ip": {serverIP}}
	var envs []subnetEnvelope
	if err := c.get(ctx, "/subnet?"+query.Encode(), &envs); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	subnets := make([]Subnet, len(envs))
	for i, env := range envs {
		subnets[i] = env.Subnet
	}
	return subnets, nil
}
