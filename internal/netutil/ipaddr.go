// Package netutil provides address arithmetic for the subnet resources
// returned by the Robot API, which reports networks as a bare address plus
// prefix length.
package netutil

import (
	"fmt"
	"net/netip"
)

// ParsePrefix builds a netip.Prefix from the address and mask fields of a
// subnet resource.
func ParsePrefix(addr string, mask int) (netip.Prefix, error) {
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("parsing subnet address %q: %w", addr, err)
	}
	p := netip.PrefixFrom(ip, mask)
	if !p.IsValid() {
		return netip.Prefix{}, fmt.Errorf("invalid prefix length %d for %s", mask, addr)
	}
	return p, nil
}

// Range returns the smallest and biggest address of the prefix.
func Range(p netip.Prefix) (first, last netip.Addr) {
	first = p.Masked().Addr()
	if first.Is4() {
		b := first.As4()
		for i := p.Bits(); i < 32; i++ {
			b[i/8] |= 1 << (7 - i%8)
		}
		last = netip.AddrFrom4(b)
		return first, last
	}
	b := first.As16()
	for i := p.Bits(); i < 128; i++ {
		b[i/8] |= 1 << (7 - i%8)
	}
	last = netip.AddrFrom16(b)
	return first, last
}

// Contains reports whether addr (textual form) lies within the prefix.
// Malformed addresses are simply outside.
func Contains(p netip.Prefix, addr string) bool {
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return false
	}
	return p.Contains(ip)
}
