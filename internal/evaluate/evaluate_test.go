package evaluate

import (
	"testing"

	"github.com/Emeline-1/magnifier/internal/groundtruth"
	"github.com/Emeline-1/magnifier/internal/ipaddr"
	"github.com/Emeline-1/magnifier/internal/sentinel"
)

func mustPrefix(t *testing.T, s string) ipaddr.Prefix {
	t.Helper()
	p, err := ipaddr.ParsePrefix(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func ingressSet(routers ...uint16) map[uint16]struct{} {
	m := make(map[uint16]struct{}, len(routers))
	for _, r := range routers {
		m[r] = struct{}{}
	}
	return m
}

// TestGroundTruthSeedS6 encodes spec.md §8 S6 — Evaluator
// classification, with a ground truth constructed to reproduce the
// vector spec.md states for the raw evaluator.
func TestGroundTruthSeedS6(t *testing.T) {
	gt := map[ipaddr.Prefix]*groundtruth.Entry{
		mustPrefix(t, "1.2.3.0/24"):  {Ingresses: ingressSet(1), PktCount: 1},
		mustPrefix(t, "1.2.4.0/24"):  {Ingresses: ingressSet(1, 9), PktCount: 2},
		mustPrefix(t, "10.0.0.0/24"): {Ingresses: ingressSet(4), PktCount: 1},
		mustPrefix(t, "20.0.0.0/24"): {Ingresses: ingressSet(7, 8), PktCount: 2},
		mustPrefix(t, "40.0.0.0/24"): {Ingresses: ingressSet(2), PktCount: 1},
		// 40.0.1.0/24 intentionally absent: covered by the /23 sentinel
		// but not active in ground truth.
		mustPrefix(t, "99.0.0.0/24"): {Ingresses: ingressSet(3), PktCount: 1},
		mustPrefix(t, "88.0.0.0/24"): {Ingresses: ingressSet(11, 12), PktCount: 2},
	}

	sentinels := []sentinel.Sentinel{
		{Prefix: mustPrefix(t, "1.2.3.0/24"), Ingress: 1},
		{Prefix: mustPrefix(t, "1.2.4.0/24"), Ingress: 1},
		{Prefix: mustPrefix(t, "10.0.0.0/24"), Ingress: 4},
		{Prefix: mustPrefix(t, "20.0.0.0/24"), Ingress: 1},
		{Prefix: mustPrefix(t, "40.0.0.0/23"), Ingress: 5},
	}

	sc := GroundTruth(gt, sentinels, false)

	check := func(name string, got, want int) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %d, want %d", name, got, want)
		}
	}
	checkPkt := func(name string, got, want uint64) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %d, want %d", name, got, want)
		}
	}

	check("CoveredCorrect", sc.CoveredCorrect, 3)
	check("CoveredWrong", sc.CoveredWrong, 2)
	check("CoveredNotActive", sc.CoveredNotActive, 1)
	check("NotCovered", sc.NotCovered, 2)
	check("CoveredNotUnique", sc.CoveredNotUnique, 1)
	check("NotCoveredNotUnique", sc.NotCoveredNotUnique, 1)

	checkPkt("PktCountCorrect", sc.PktCountCorrect, 4)
	checkPkt("CoveredCorrectCount", sc.CoveredCorrectCount, 4)
	checkPkt("CoveredWrongCount", sc.CoveredWrongCount, 3)
	checkPkt("CoveredNotUniqueCount", sc.CoveredNotUniqueCount, 2)
	checkPkt("NotCoveredCount", sc.NotCoveredCount, 3)
	checkPkt("NotCoveredNotUniqueCount", sc.NotCoveredNotUniqueCount, 2)
	checkPkt("PktAllUnique", sc.PktAllUnique, 4)
}

func TestGroundTruthStrictDropsSentinelWithAnyWrongOrNonUnique24(t *testing.T) {
	gt := map[ipaddr.Prefix]*groundtruth.Entry{
		mustPrefix(t, "1.2.0.0/24"): {Ingresses: ingressSet(1), PktCount: 1},
		mustPrefix(t, "1.2.1.0/24"): {Ingresses: ingressSet(2), PktCount: 1}, // wrong for ingress 1
	}
	sentinels := []sentinel.Sentinel{
		{Prefix: mustPrefix(t, "1.2.0.0/23"), Ingress: 1},
	}

	raw := GroundTruth(gt, sentinels, false)
	if raw.CoveredCorrect != 1 || raw.CoveredWrong != 1 {
		t.Fatalf("raw: got correct=%d wrong=%d, want 1,1", raw.CoveredCorrect, raw.CoveredWrong)
	}

	strict := GroundTruth(gt, sentinels, true)
	if strict.CoveredCorrect != 0 || strict.CoveredWrong != 0 {
		t.Fatalf("strict: got correct=%d wrong=%d, want 0,0 (sentinel dropped)", strict.CoveredCorrect, strict.CoveredWrong)
	}
}

func TestGroundTruthStrictRetainsSentinelWhenAbsentFromGroundTruth(t *testing.T) {
	gt := map[ipaddr.Prefix]*groundtruth.Entry{
		mustPrefix(t, "1.2.0.0/24"): {Ingresses: ingressSet(1), PktCount: 1},
		// 1.2.1.0/24 absent entirely: spec.md §9 open question says this
		// must not, by itself, invalidate the sentinel.
	}
	sentinels := []sentinel.Sentinel{
		{Prefix: mustPrefix(t, "1.2.0.0/23"), Ingress: 1},
	}

	strict := GroundTruth(gt, sentinels, true)
	if strict.CoveredCorrect != 1 {
		t.Errorf("CoveredCorrect = %d, want 1 (sentinel retained)", strict.CoveredCorrect)
	}
	if strict.CoveredNotActive != 1 {
		t.Errorf("CoveredNotActive = %d, want 1", strict.CoveredNotActive)
	}
}

func TestMirrorScores(t *testing.T) {
	gt := map[ipaddr.Prefix]*groundtruth.Entry{
		mustPrefix(t, "1.2.3.0/24"): {Ingresses: ingressSet(1), PktCount: 3},
		mustPrefix(t, "1.2.4.0/24"): {Ingresses: ingressSet(1, 2), PktCount: 5},
	}
	removed := []ipaddr.Prefix{
		mustPrefix(t, "1.2.3.0/24"),
		mustPrefix(t, "1.2.4.0/24"),
		mustPrefix(t, "9.9.9.0/24"), // not active
	}

	sc := Mirror(gt, removed)
	if sc.PrefixLost != 2 {
		t.Errorf("PrefixLost = %d, want 2", sc.PrefixLost)
	}
	if sc.PrefixLostNotActive != 1 {
		t.Errorf("PrefixLostNotActive = %d, want 1", sc.PrefixLostNotActive)
	}
	if sc.PrefixLostNotUnique != 1 {
		t.Errorf("PrefixLostNotUnique = %d, want 1", sc.PrefixLostNotUnique)
	}
	if sc.PktLost != 8 {
		t.Errorf("PktLost = %d, want 8", sc.PktLost)
	}
	if sc.PktLostNotUnique != 5 {
		t.Errorf("PktLostNotUnique = %d, want 5", sc.PktLostNotUnique)
	}
}
