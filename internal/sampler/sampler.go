// Package sampler implements the per-ingress deterministic sampler:
// uniform 1-in-n sampling that carries its progress across iteration
// windows, plus the Everflow variant that additionally mirrors every
// flagged packet.
package sampler

import (
	"math/rand"

	"github.com/Emeline-1/magnifier/internal/observation"
)

// Sampler holds the per-ingress sampling offset. New draws the initial
// offsets from a generator of its own, seeded explicitly and never the
// global math/rand functions, so simulations stay reproducible under a
// fixed seed (spec.md §4.3); sampling itself draws no random numbers.
type Sampler struct {
	Frequency int
	Progress  []int
}

// New creates a Sampler for nBorder ingresses at the given sampling
// frequency, drawing each ingress's initial offset uniformly from
// [0, frequency) using the supplied seed.
func New(nBorder, frequency int, seed int64) *Sampler {
	rng := rand.New(rand.NewSource(seed))
	progress := make([]int, nBorder)
	for i := range progress {
		progress[i] = rng.Intn(frequency)
	}
	return &Sampler{Frequency: frequency, Progress: progress}
}

// SamplePerRouter draws every frequency-th packet from each border
// partition starting at that border's current Progress offset, then
// carries the overrun into Progress for the next window. When
// checkFlag is true, flagged packets are skipped from the draw (used
// by the Everflow uniform pass so a flagged packet is never
// double-counted). The returned packets are grouped by border, not in
// chronological order — matching the original's documented behaviour
// that order does not matter downstream (sentinel search is
// order-independent).
func (s *Sampler) SamplePerRouter(borderPkts [][]observation.Record, borderFlags [][]bool, checkFlag bool) []observation.Record {
	var sampled []observation.Record

	for i, pkts := range borderPkts {
		loc := s.Progress[i]
		for loc < len(pkts) {
			if !checkFlag || !borderFlags[i][loc] {
				sampled = append(sampled, pkts[loc])
			}
			loc += s.Frequency
		}
		s.Progress[i] = loc - len(pkts)
	}

	return sampled
}
