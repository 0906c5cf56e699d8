package evaluate

import (
	"github.com/Emeline-1/magnifier/internal/groundtruth"
	"github.com/Emeline-1/magnifier/internal/ipaddr"
)

// MirrorScores is family (3): the per-/24 loss attributable to
// sentinels invalidated by mirroring this iteration.
type MirrorScores struct {
	PrefixLost          int
	PrefixLostNotUnique int
	PrefixLostNotActive int
	PktLost             uint64
	PktLostNotUnique    uint64
}

// Mirror scores the sentinel prefixes removed this iteration (because a
// mirrored packet falsified them) against gt. Sentinels do not overlap
// (invariant 1), so each removed prefix's /24s need no deduplication
// against one another.
func Mirror(gt map[ipaddr.Prefix]*groundtruth.Entry, removed []ipaddr.Prefix) MirrorScores {
	var sc MirrorScores

	for _, prefix := range removed {
		for _, p24 := range prefix.Enumerate24() {
			e, ok := gt[p24]
			if !ok {
				sc.PrefixLostNotActive++
				continue
			}
			sc.PrefixLost++
			sc.PktLost += e.PktCount

			if len(e.Ingresses) > 1 {
				sc.PrefixLostNotUnique++
				sc.PktLostNotUnique += e.PktCount
			}
		}
	}

	return sc
}
