// Package sentinel implements the sentinel search (C5) and the
// activity/size ordering used to select which sentinels get deployed
// as mirroring rules (C6).
package sentinel

import (
	"sort"

	"github.com/Emeline-1/magnifier/internal/ipaddr"
	"github.com/Emeline-1/magnifier/internal/observation"
)

// Sentinel is a source-IP prefix whose observed traffic has, so far,
// all entered through a single ingress.
type Sentinel struct {
	Prefix  ipaddr.Prefix
	Ingress uint16
}

// Search finds the maximal set of pairwise-disjoint sentinels over
// records, scanning prefix lengths from sStart up to sEnd (inclusive;
// sStart is the shorter, wider prefix length, e.g. 16, and sEnd the
// longer, narrower one, e.g. 24 — spec.md §4.5). A group of records
// sharing a masked prefix becomes a sentinel once every record in it
// carries the same ingress; once accepted, its records are removed
// from consideration at every narrower length, which is what keeps the
// output disjoint (spec.md §4.5, invariants 1 and 3).
func Search(records []observation.Record, sStart, sEnd uint8) []Sentinel {
	alive := make([]observation.Record, len(records))
	copy(alive, records)

	var accepted []Sentinel

	for l := sStart; ; l++ {
		if len(alive) == 0 {
			break
		}

		groups := make(map[ipaddr.Prefix]*ingressSet, len(alive))
		keys := make([]ipaddr.Prefix, len(alive))
		for i, r := range alive {
			key := ipaddr.NewPrefix(r.SrcIP, l)
			keys[i] = key
			g, ok := groups[key]
			if !ok {
				g = &ingressSet{}
				groups[key] = g
			}
			g.add(r.Ingress)
		}

		qualifying := make(map[ipaddr.Prefix]uint16)
		for key, g := range groups {
			if g.count() <= 1 {
				qualifying[key] = g.single()
			}
		}

		if len(qualifying) > 0 {
			newKeys := make([]ipaddr.Prefix, 0, len(qualifying))
			for key := range qualifying {
				newKeys = append(newKeys, key)
			}
			sort.Slice(newKeys, func(i, j int) bool { return prefixLess(newKeys[i], newKeys[j]) })
			for _, key := range newKeys {
				accepted = append(accepted, Sentinel{Prefix: key, Ingress: qualifying[key]})
			}

			remaining := alive[:0]
			for i, r := range alive {
				if _, found := qualifying[keys[i]]; found {
					continue
				}
				remaining = append(remaining, r)
			}
			alive = remaining
		}

		if l == sEnd {
			break
		}
	}

	return accepted
}

func prefixLess(a, b ipaddr.Prefix) bool {
	if a.Base != b.Base {
		return a.Base < b.Base
	}
	return a.Len < b.Len
}
