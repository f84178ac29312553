package robot

import (
	"context"
	"net/url"
)

// RDNS is a reverse-DNS pointer for a single address.
type RDNS struct {
	IP  string `json:"ip" yaml:"ip"`
	PTR string `json:"ptr" yaml:"ptr"`
}

type rdnsEnvelope struct {
	RDNS RDNS `json:"rdns"`
}

// RDNS fetches the reverse-DNS entry for one address.
func (c *Client) RDNS(ctx context.Context, ip string) (*RDNS, error) {
	var env rdnsEnvelope
	if err := c.get(ctx, "/rdns/"+url.PathEscape(ip), &env); err != nil {
		return nil, err
	}
	return &env.RDNS, nil
}

// RDNSList lists reverse-DNS entries. With a non-empty serverIP the listing
// is restricted to addresses of that server. An account or server without
// any entries is reported as 404.
func (c *Client) RDNSList(ctx context.Context, serverIP string) ([]RDNS, error) {
	path := "/rdns"
	if serverIP != "" {
		query := url.Values{"server_ip": {serverIP}}
		path += "?" + query.Encode()
	}
	var envs []rdnsEnvelope
	if err := c.get(ctx, path, &envs); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	records := make([]RDNS, len(envs))
	for i, env := range envs {
		records[i] = env.RDNS
	}
	return records, nil
}

// SetRDNS creates or replaces the pointer for an address.
func (c *Client) SetRDNS(ctx context.Context, ip, ptr string) (*RDNS, error) {
	form := url.Values{"ptr": {ptr}}
	var env rdnsEnvelope
	if err := c.post(ctx, "/rdns/"+url.PathEscape(ip), form, &env); err != nil {
		return nil, err
	}
	return &env.RDNS, nil
}

// DeleteRDNS removes the pointer for an address.
func (c *Client) DeleteRDNS(ctx context.Context, ip string) error {
	return c.delete(ctx, "/rdns/"+url.PathEscape(ip), nil)
}
