// Package mirror implements the mirroring engine (C7): a
// longest-prefix-match rule table built from a deployed sentinel set,
// applied to a packet stream to find packets that falsify a sentinel.
package mirror

import (
	"net/netip"

	"github.com/gaissmai/bart"

	"github.com/Emeline-1/magnifier/internal/ipaddr"
	"github.com/Emeline-1/magnifier/internal/observation"
	"github.com/Emeline-1/magnifier/internal/sentinel"
)

// Engine owns one rule table for a single iteration: rules live
// exactly one iteration per spec.md §3.
type Engine struct {
	table *bart.Table[uint16]
}

// BuildRules installs one LPM rule per sentinel, predicted-ingress as
// the rule payload. Sentinels are pairwise disjoint by construction
// (spec.md invariant 1), so at most one rule can ever match a given
// packet — mirroring soundness (invariant 4) follows from that, not
// from a secondary check.
func BuildRules(sentinels []sentinel.Sentinel) *Engine {
	tbl := &bart.Table[uint16]{}
	for _, s := range sentinels {
		tbl.Insert(s.Prefix.Netip(), s.Ingress)
	}
	return &Engine{table: tbl}
}

// Apply mirrors every packet in pkts whose longest matching rule
// predicts an ingress different from the packet's actual ingress. With
// removeOnHit, the matched rule is deleted the first time it fires —
// modelling the measurement policy of pulling a rule network-wide as
// soon as it fires (spec.md §4.7) — and its prefix is returned once in
// removed, in first-falsified order.
func (e *Engine) Apply(pkts []observation.Record, removeOnHit bool) (mirrored []observation.Record, removed []ipaddr.Prefix) {
	for _, p := range pkts {
		lpmPfx, predicted, ok := e.table.LookupPrefixLPM(netip.PrefixFrom(p.SrcIP.Netip(), 32))
		if !ok || predicted == p.Ingress {
			continue
		}

		mirrored = append(mirrored, p)

		if removeOnHit {
			e.table.Delete(lpmPfx)
			removed = append(removed, ipaddr.Prefix{
				Base: ipaddr.Addr(uint32(lpmPfx.Addr().As4()[0])<<24 | uint32(lpmPfx.Addr().As4()[1])<<16 | uint32(lpmPfx.Addr().As4()[2])<<8 | uint32(lpmPfx.Addr().As4()[3])),
				Len:  uint8(lpmPfx.Bits()),
			})
		}
	}

	return mirrored, removed
}
