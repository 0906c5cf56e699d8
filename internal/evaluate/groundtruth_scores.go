// Package evaluate implements the evaluator (C9): scoring sentinels and
// samples against ground truth along prefix and packet axes, in the
// three families described in spec.md §4.9.
package evaluate

import (
	"github.com/Emeline-1/magnifier/internal/groundtruth"
	"github.com/Emeline-1/magnifier/internal/ipaddr"
	"github.com/Emeline-1/magnifier/internal/sentinel"
)

// GroundTruthScores is family (2): sentinel-based scoring without
// mirroring, raw or strict. CoveredCorrectCount and PktCountCorrect
// coincide by definition (spec.md §9 open question) but are kept as
// separate fields for output-column compatibility.
type GroundTruthScores struct {
	CoveredCorrect      int
	CoveredWrong        int
	CoveredNotActive    int
	NotCovered          int
	CoveredNotUnique    int
	NotCoveredNotUnique int

	PktCountCorrect          uint64
	CoveredCorrectCount      uint64
	CoveredWrongCount        uint64
	CoveredNotUniqueCount    uint64
	NotCoveredCount          uint64
	NotCoveredNotUniqueCount uint64
	PktAllUnique             uint64
}

// GroundTruth scores sentinels against gt. In strict mode, a sentinel is
// dropped entirely (and every /24 under it skipped) if any of its /24s
// would be wrong or non-unique in gt — a /24 of a sentinel that is
// simply absent from gt does not, by itself, invalidate the sentinel
// (spec.md §9 open question: retained when absent).
func GroundTruth(gt map[ipaddr.Prefix]*groundtruth.Entry, sentinels []sentinel.Sentinel, strict bool) GroundTruthScores {
	var toAnalyze []sentinel.Sentinel
	if !strict {
		toAnalyze = sentinels
	} else {
		for _, s := range sentinels {
			valid := true
			for _, p24 := range s.Prefix.Enumerate24() {
				e, ok := gt[p24]
				if !ok {
					continue
				}
				if _, hit := e.Ingresses[s.Ingress]; !hit || len(e.Ingresses) > 1 {
					valid = false
					break
				}
			}
			if valid {
				toAnalyze = append(toAnalyze, s)
			}
		}
	}

	var sc GroundTruthScores
	checked := make(map[ipaddr.Prefix]struct{})

	for _, s := range toAnalyze {
		for _, p24 := range s.Prefix.Enumerate24() {
			checked[p24] = struct{}{}

			e, ok := gt[p24]
			if !ok {
				sc.CoveredNotActive++
				continue
			}

			if _, hit := e.Ingresses[s.Ingress]; hit {
				sc.CoveredCorrect++
				sc.CoveredCorrectCount += e.PktCount
				sc.PktCountCorrect += e.PktCount

				if len(e.Ingresses) > 1 {
					sc.CoveredNotUnique++
					sc.CoveredNotUniqueCount += e.PktCount
				} else {
					sc.PktAllUnique += e.PktCount
				}
			} else {
				sc.CoveredWrong++
				sc.CoveredWrongCount += e.PktCount
				if len(e.Ingresses) == 1 {
					sc.PktAllUnique += e.PktCount
				}
			}
		}
	}

	for p24, e := range gt {
		if _, done := checked[p24]; done {
			continue
		}
		sc.NotCovered++
		sc.NotCoveredCount += e.PktCount
		if len(e.Ingresses) > 1 {
			sc.NotCoveredNotUnique++
			sc.NotCoveredNotUniqueCount += e.PktCount
		} else {
			sc.PktAllUnique += e.PktCount
		}
	}

	return sc
}
