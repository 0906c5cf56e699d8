package sampler

import "github.com/Emeline-1/magnifier/internal/observation"

// SampleEverflow mirrors every flagged packet in pkts unconditionally,
// then runs the uniform per-router sampler over the non-flagged stream,
// explicitly excluding already-flagged packets from the random draw —
// grounded on get_sampled_packets_everflow in
// _examples/original_source/simulations/sim_pkts.py. nFlag and nRandom
// report the size of each contribution; nRandom never counts a
// packet that also had its flag set.
func (s *Sampler) SampleEverflow(pkts []observation.Record, flags []bool, borderPkts [][]observation.Record, borderFlags [][]bool) (sampled []observation.Record, nFlag, nRandom int) {
	var flagged []observation.Record
	for i, f := range flags {
		if f {
			flagged = append(flagged, pkts[i])
		}
	}

	random := s.SamplePerRouter(borderPkts, borderFlags, true)

	sampled = make([]observation.Record, 0, len(flagged)+len(random))
	sampled = append(sampled, flagged...)
	sampled = append(sampled, random...)

	return sampled, len(flagged), len(random)
}
