package robot

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Server is a dedicated server as reported by the API. The main IP address
// doubles as the server's identifier in most endpoints.
type Server struct {
	IP         string `json:"server_ip" yaml:"ip"`
	Number     int    `json:"server_number" yaml:"number"`
	Name       string `json:"server_name" yaml:"name"`
	Product    string `json:"product" yaml:"product"`
	Datacenter string `json:"dc" yaml:"datacenter"`
	Traffic    string `json:"traffic" yaml:"traffic"`
	Flatrate   bool   `json:"flatrate" yaml:"flatrate"`
	Status     string `json:"status" yaml:"status"`
	Throttled  bool   `json:"throttled" yaml:"throttled"`
	Cancelled  bool   `json:"cancelled" yaml:"cancelled"`
	PaidUntil  Date   `json:"paid_until" yaml:"paid_until"`
}

// IsVServer reports whether this is a virtual server. Virtual servers
// ignore soft reboots and expose hardware resets only through the web
// interface, which this client does not speak.
func (s *Server) IsVServer() bool {
	return strings.HasPrefix(s.Product, "VQ")
}

type serverEnvelope struct {
	Server Server `json:"server"`
}

// Server fetches a single server by its main IP address.
func (c *Client) Server(ctx context.Context, ip string) (*Server, error) {
	var env serverEnvelope
	if err := c.get(ctx, "/server/"+url.PathEscape(ip), &env); err != nil {
		return nil, err
	}
	return &env.Server, nil
}

// Servers lists all servers of the account.
func (c *Client) Servers(ctx context.Context) ([]Server, error) {
	var envs []serverEnvelope
	if err := c.get(ctx, "/server", &envs); err != nil {
		return nil, err
	}
	servers := make([]Server, len(envs))
	for i, env := range envs {
		servers[i] = env.Server
	}
	return servers, nil
}

// SetServerName renames a server and returns its updated state.
func (c *Client) SetServerName(ctx context.Context, ip, name string) (*Server, error) {
	form := url.Values{"server_name": {name}}
	var env serverEnvelope
	if err := c.post(ctx, "/server/"+url.PathEscape(ip), form, &env); err != nil {
		return nil, err
	}
	return &env.Server, nil
}

// RebootMethod selects how a reset is performed.
type RebootMethod string

const (
	// RebootSoft triggers Ctrl-Alt-Del.
	RebootSoft RebootMethod = "soft"
	// RebootHard triggers a hardware reset.
	RebootHard RebootMethod = "hard"
	// RebootManual requests a technician to press the power button.
	RebootManual RebootMethod = "manual"
)

var rebootWireTypes = map[RebootMethod]string{
	RebootSoft:   "sw",
	RebootHard:   "hw",
	RebootManual: "man",
}

// ParseRebootMethod validates a user-supplied method name.
func ParseRebootMethod(s string) (RebootMethod, error) {
	m := RebootMethod(strings.ToLower(s))
	if _, ok := rebootWireTypes[m]; !ok {
		return "", fmt.Errorf("invalid reboot method %q (expected soft, hard or manual)", s)
	}
	return m, nil
}

// Reboot resets the server identified by its main IP address.
func (c *Client) Reboot(ctx context.Context, ip string, method RebootMethod) error {
	wire, ok := rebootWireTypes[method]
	if !ok {
		return fmt.Errorf("invalid reboot method %q", method)
	}
	form := url.Values{"type": {wire}}
	var out map[string]any
	return c.post(ctx, "/reset/"+url.PathEscape(ip), form, &out)
}
