package evaluate

import (
	"github.com/Emeline-1/magnifier/internal/groundtruth"
	"github.com/Emeline-1/magnifier/internal/ipaddr"
	"github.com/Emeline-1/magnifier/internal/observation"
)

// SamplingScores is family (1): scoring using only the sampled packets,
// without any sentinel inference.
type SamplingScores struct {
	Covered                   int
	CoveredNotUnique          int
	NotCovered                int
	NotCoveredNotUnique       int
	PktCovered                uint64
	PktCoveredNotUnique       uint64
	PktNotCovered             uint64
	PktNotCoveredNotUnique    uint64
	NotActive                 int
}

// Sampling scores samples against gt, mirroring
// get_results_ground_truth_sampling: a /24 is covered the moment any one
// of its samples is still active in gt; samples whose /24 has since
// gone inactive are counted once as NotActive and otherwise ignored.
func Sampling(gt map[ipaddr.Prefix]*groundtruth.Entry, samples []observation.Record) SamplingScores {
	covered := make(map[ipaddr.Prefix]struct{})
	notActive := make(map[ipaddr.Prefix]struct{})
	var sc SamplingScores

	for _, s := range samples {
		p24 := s.Src24
		if _, ok := covered[p24]; ok {
			continue
		}
		if _, ok := notActive[p24]; ok {
			continue
		}
		if e, ok := gt[p24]; ok {
			covered[p24] = struct{}{}
			sc.PktCovered += e.PktCount
		} else {
			notActive[p24] = struct{}{}
			sc.NotActive++
		}
	}

	for p24 := range covered {
		if e, ok := gt[p24]; ok && len(e.Ingresses) > 1 {
			sc.CoveredNotUnique++
			sc.PktCoveredNotUnique += e.PktCount
		}
	}

	for p24, e := range gt {
		if _, ok := covered[p24]; ok {
			continue
		}
		sc.NotCovered++
		sc.PktNotCovered += e.PktCount
		if len(e.Ingresses) > 1 {
			sc.NotCoveredNotUnique++
			sc.PktNotCoveredNotUnique += e.PktCount
		}
	}

	sc.Covered = len(covered)
	return sc
}
