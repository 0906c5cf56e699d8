package ipaddr

import (
	"fmt"
	"net/netip"
)

// Prefix is an IPv4 prefix, always stored with Base masked to Len.
type Prefix struct {
	Base Addr
	Len  uint8
}

// NewPrefix masks base to len and returns the canonical prefix.
func NewPrefix(base Addr, len uint8) Prefix {
	return Prefix{Base: mask(base, len), Len: len}
}

// ParsePrefix parses "a.b.c.d/n".
func ParsePrefix(s string) (Prefix, error) {
	ipPart, l, err := splitPrefixString(s)
	if err != nil {
		return Prefix{}, err
	}
	base, err := ParseAddr(ipPart)
	if err != nil {
		return Prefix{}, err
	}
	return NewPrefix(base, l), nil
}

func (p Prefix) String() string {
	return fmt.Sprintf("%s/%d", p.Base, p.Len)
}

// Netip bridges to net/netip for github.com/gaissmai/bart.
func (p Prefix) Netip() netip.Prefix {
	return netip.PrefixFrom(p.Base.Netip(), int(p.Len))
}

// Contains reports whether ip falls inside p.
func (p Prefix) Contains(ip Addr) bool {
	return mask(ip, p.Len) == p.Base
}

// To24 returns the /24 prefix containing ip.
func To24(ip Addr) Prefix {
	return NewPrefix(ip, 24)
}

// Enumerate24 yields the consecutive /24 prefixes contained in p. For
// Len <= 24 this is 2^(24-Len) prefixes spaced 256 apart; for Len > 24
// it returns the single /24 that contains p (mirroring the degenerate
// case of the original get_subnets when the requested mask is coarser
// than the input).
func (p Prefix) Enumerate24() []Prefix {
	if p.Len > 24 {
		return []Prefix{NewPrefix(p.Base, 24)}
	}
	count := 1 << uint(24-p.Len)
	out := make([]Prefix, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, Prefix{Base: p.Base + Addr(i*256), Len: 24})
	}
	return out
}
