package driver

import "github.com/Emeline-1/magnifier/internal/observation"

// history is the fixed-size ring of three iterations' packet vectors
// (spec.md §9 "history as ring of three"): cur is iteration n, prev is
// n-1, prev2 is n-2.
type history struct {
	cur, prev, prev2 []observation.Record
}

// shift rolls the ring forward: prev2 <- prev, prev <- cur. cur is left
// for the caller to overwrite with the new iteration's records.
func (h *history) shift() {
	h.prev2 = h.prev
	h.prev = h.cur
	h.cur = nil
}

// combined concatenates all three slots: the input to the untruncated
// sentinel-on-samples evaluation (spec.md §4.9 family 2), which scores
// once per iteration against n, n-1 and n-2 samples together.
func (h *history) combined() []observation.Record {
	out := make([]observation.Record, 0, len(h.cur)+len(h.prev)+len(h.prev2))
	out = append(out, h.prev2...)
	out = append(out, h.prev...)
	out = append(out, h.cur...)
	return out
}

// priorTwo concatenates prev and prev2 only — the two prior iterations,
// excluding the current one. This is the shape spec.md §4.10's mirror
// feedback loop needs: the sentinel set that informs this iteration's
// rules is built from samples_{n-1}+samples_{n-2} and, per variant,
// mirrored_{n-1}+mirrored_{n-2}, never from iteration n itself.
func (h *history) priorTwo() []observation.Record {
	out := make([]observation.Record, 0, len(h.prev)+len(h.prev2))
	out = append(out, h.prev...)
	out = append(out, h.prev2...)
	return out
}
