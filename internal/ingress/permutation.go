package ingress

import (
	"math/rand"

	"github.com/Emeline-1/magnifier/internal/ipaddr"
)

// PermutationMapper starts from the persistent mapping and reassigns a
// fixed, seed-selected pct% of /24 prefixes by shifting their ingress
// by +1 mod n_border — the Permutation(pct) policy of spec.md §4.4,
// grounded on sim_pkts.prepare_permutations in
// _examples/original_source/simulations/sim_pkts.py. The shifted set is
// computed once at construction, for the whole run, matching the
// original computing its mapping dict once before the iteration loop.
type PermutationMapper struct {
	col     Column
	nBorder uint16
	shifted map[ipaddr.Prefix]struct{}
}

// NewPermutationMapper selects pct% of allPrefixes (a snapshot of every
// /24 in the all-prefixes file) using the given seed, to be shifted by
// +1 mod nBorder relative to the precomputed persistent column.
func NewPermutationMapper(nBorder int, pct int, allPrefixes []ipaddr.Prefix, seed int64) (*PermutationMapper, error) {
	col, ok := ColumnFor(nBorder)
	if !ok {
		return nil, errInvalidBorder(nBorder)
	}

	rng := rand.New(rand.NewSource(seed))
	toChange := len(allPrefixes) * pct / 100

	perm := rng.Perm(len(allPrefixes))
	shifted := make(map[ipaddr.Prefix]struct{}, toChange)
	for _, idx := range perm[:toChange] {
		shifted[allPrefixes[idx]] = struct{}{}
	}

	return &PermutationMapper{col: col, nBorder: uint16(nBorder), shifted: shifted}, nil
}

func (m *PermutationMapper) Resolve(row Row) uint16 {
	base := row.Pers[m.col]
	if _, ok := m.shifted[row.Src24]; !ok {
		return base
	}
	return (base % m.nBorder) + 1
}

type errInvalidBorder int

func (e errInvalidBorder) Error() string {
	return "ingress: n_border must be one of {4,8,16,32,64}"
}
