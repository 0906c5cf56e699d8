// Package groundtruth builds the per-/24 ingress ground truth (C8) that
// the evaluator scores sentinel sets and mirroring decisions against.
package groundtruth

import (
	"github.com/Emeline-1/magnifier/internal/ipaddr"
	"github.com/Emeline-1/magnifier/internal/observation"
)

// Entry is the accumulated ground truth for a single /24: the set of
// ingresses its traffic was actually observed entering through, and how
// many packets it carried.
type Entry struct {
	Ingresses map[uint16]struct{}
	PktCount  uint64
}

// Unique reports whether all of this /24's traffic entered through a
// single ingress.
func (e Entry) Unique() bool {
	return len(e.Ingresses) == 1
}

// SoleIngress returns the /24's single ingress and true, or (0, false)
// if it was observed through more than one.
func (e Entry) SoleIngress() (uint16, bool) {
	if !e.Unique() {
		return 0, false
	}
	for r := range e.Ingresses {
		return r, true
	}
	return 0, false
}

// Build folds pkts into a per-/24 ground truth map, mirroring
// sim_util.py's gt_init/get_ground_truth.
func Build(pkts []observation.Record) map[ipaddr.Prefix]*Entry {
	gt := make(map[ipaddr.Prefix]*Entry)
	for _, p := range pkts {
		e, ok := gt[p.Src24]
		if !ok {
			e = &Entry{Ingresses: make(map[uint16]struct{})}
			gt[p.Src24] = e
		}
		e.Ingresses[p.Ingress] = struct{}{}
		e.PktCount++
	}
	return gt
}

// CompareSets reports the size of setNew, how many elements are newly
// present compared to setOld, and how many present in setOld are gone
// from setNew — mirroring sim_util.py's compare_sets, used by the
// driver to track sentinel-set churn across iterations.
func CompareSets(setNew, setOld map[ipaddr.Prefix]struct{}) (nNew, nAdded, nRemoved int) {
	nRemoved = 0
	for item := range setOld {
		if _, ok := setNew[item]; !ok {
			nRemoved++
		}
	}
	nNew = len(setNew)
	nOld := len(setOld)
	nAdded = nNew + nRemoved - nOld
	return nNew, nAdded, nRemoved
}

// ToSet reduces a sentinel/prefix slice to the set shape CompareSets
// expects.
func ToSet(prefixes []ipaddr.Prefix) map[ipaddr.Prefix]struct{} {
	set := make(map[ipaddr.Prefix]struct{}, len(prefixes))
	for _, p := range prefixes {
		set[p] = struct{}{}
	}
	return set
}
