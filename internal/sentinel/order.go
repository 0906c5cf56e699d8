package sentinel

import (
	"sort"

	"github.com/gaissmai/bart"

	"github.com/Emeline-1/magnifier/internal/observation"
)

// Order selects how a sentinel set is ranked before truncation.
type Order int

const (
	OrderActivity Order = iota
	OrderSize
	OrderFull
)

func (o Order) String() string {
	switch o {
	case OrderActivity:
		return "activity"
	case OrderSize:
		return "size"
	case OrderFull:
		return "full"
	default:
		return "unknown"
	}
}

// Enhanced pairs a sentinel with its activity: the number of packets in
// the search's own input whose src_ip falls under it.
type Enhanced struct {
	Sentinel Sentinel
	Activity int
}

// Enhance computes per-sentinel activity in one pass, using a
// bart.Table built from the candidate set — the same longest-prefix-match
// primitive the mirroring engine (C7) uses, rather than a second
// bespoke data structure (spec.md §4.6, §9).
func Enhance(sentinels []Sentinel, pkts []observation.Record) []Enhanced {
	tbl := &bart.Table[int]{}
	for i, s := range sentinels {
		tbl.Insert(s.Prefix.Netip(), i)
	}

	enhanced := make([]Enhanced, len(sentinels))
	for i, s := range sentinels {
		enhanced[i] = Enhanced{Sentinel: s}
	}

	for _, r := range pkts {
		if idx, ok := tbl.Lookup(r.SrcIP.Netip()); ok {
			enhanced[idx].Activity++
		}
	}

	return enhanced
}

// Rank returns a new, sorted copy of enhanced according to order:
// activity descending, size ascending (narrowest prefix length first,
// i.e. largest address span first), or, for OrderFull, a canonical
// order that exists purely so output is deterministic (full keeps
// every sentinel, so ranking never truncates anything).
func Rank(enhanced []Enhanced, order Order) []Enhanced {
	ranked := make([]Enhanced, len(enhanced))
	copy(ranked, enhanced)

	switch order {
	case OrderActivity:
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Activity != ranked[j].Activity {
				return ranked[i].Activity > ranked[j].Activity
			}
			return prefixLess(ranked[i].Sentinel.Prefix, ranked[j].Sentinel.Prefix)
		})
	case OrderSize:
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Sentinel.Prefix.Len != ranked[j].Sentinel.Prefix.Len {
				return ranked[i].Sentinel.Prefix.Len < ranked[j].Sentinel.Prefix.Len
			}
			return prefixLess(ranked[i].Sentinel.Prefix, ranked[j].Sentinel.Prefix)
		})
	default: // OrderFull
		sort.SliceStable(ranked, func(i, j int) bool {
			return prefixLess(ranked[i].Sentinel.Prefix, ranked[j].Sentinel.Prefix)
		})
	}

	return ranked
}

// Top returns the first k ranked sentinels, or all of them if k <= 0
// or k >= len(ranked) (the OrderFull / untruncated case).
func Top(ranked []Enhanced, k int) []Sentinel {
	if k <= 0 || k >= len(ranked) {
		out := make([]Sentinel, len(ranked))
		for i, e := range ranked {
			out[i] = e.Sentinel
		}
		return out
	}
	out := make([]Sentinel, k)
	for i := 0; i < k; i++ {
		out[i] = ranked[i].Sentinel
	}
	return out
}
