// Package ipaddr provides the IPv4 address and prefix primitives shared
// by every other package: parsing/formatting, prefix masking, and /24
// enumeration.
package ipaddr

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// Addr is an IPv4 address stored as the big-endian integer value of its
// four octets (a.b.c.d -> (a<<24)|(b<<16)|(c<<8)|d), matching the
// src_ip_int column of the observation CSV.
type Addr uint32

// ParseAddr parses a dotted-quad IPv4 address.
func ParseAddr(s string) (Addr, error) {
	parsed, err := netip.ParseAddr(s)
	if err != nil {
		return 0, fmt.Errorf("ipaddr: invalid address %q: %w", s, err)
	}
	if !parsed.Is4() {
		return 0, fmt.Errorf("ipaddr: not an IPv4 address: %q", s)
	}
	b := parsed.As4()
	return Addr(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])), nil
}

// ParseAddrInt parses the decimal integer form used by the src_ip_int
// CSV column.
func ParseAddrInt(s string) (Addr, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("ipaddr: invalid integer address %q: %w", s, err)
	}
	return Addr(v), nil
}

// String formats the address in dotted-quad form.
func (a Addr) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(a>>24), byte(a>>16), byte(a>>8), byte(a))
}

// Netip bridges to net/netip, the representation github.com/gaissmai/bart
// requires.
func (a Addr) Netip() netip.Addr {
	return netip.AddrFrom4([4]byte{byte(a >> 24), byte(a >> 16), byte(a >> 8), byte(a)})
}

// mask clears the host bits of ip below prefix length l (0..32).
func mask(ip Addr, l uint8) Addr {
	if l == 0 {
		return 0
	}
	if l >= 32 {
		return ip
	}
	shift := 32 - uint(l)
	return (ip >> shift) << shift
}

// splitPrefixString splits "a.b.c.d/n" into its address and length parts.
func splitPrefixString(s string) (string, uint8, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("ipaddr: malformed prefix %q", s)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 0 || n > 32 {
		return "", 0, fmt.Errorf("ipaddr: invalid prefix length in %q", s)
	}
	return parts[0], uint8(n), nil
}
