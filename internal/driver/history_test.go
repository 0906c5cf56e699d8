package driver

import (
	"testing"

	"github.com/Emeline-1/magnifier/internal/ipaddr"
	"github.com/Emeline-1/magnifier/internal/observation"
)

func rec(t *testing.T, ip string) observation.Record {
	t.Helper()
	a, err := ipaddr.ParseAddr(ip)
	if err != nil {
		t.Fatal(err)
	}
	return observation.Record{SrcIP: a}
}

func TestHistoryShiftRollsForward(t *testing.T) {
	var h history
	h.cur = []observation.Record{rec(t, "1.2.3.1")}
	h.shift()
	if len(h.prev) != 1 || h.cur != nil {
		t.Fatalf("after first shift: prev=%v cur=%v", h.prev, h.cur)
	}

	h.cur = []observation.Record{rec(t, "1.2.3.2")}
	h.shift()
	if len(h.prev2) != 1 || len(h.prev) != 1 || h.cur != nil {
		t.Fatalf("after second shift: prev2=%v prev=%v cur=%v", h.prev2, h.prev, h.cur)
	}
}

func TestHistoryCombinedIncludesCur(t *testing.T) {
	h := history{
		cur:   []observation.Record{rec(t, "1.1.1.1")},
		prev:  []observation.Record{rec(t, "2.2.2.2")},
		prev2: []observation.Record{rec(t, "3.3.3.3")},
	}
	if got := len(h.combined()); got != 3 {
		t.Fatalf("combined() length = %d, want 3 (cur+prev+prev2)", got)
	}
}

func TestHistoryPriorTwoExcludesCur(t *testing.T) {
	h := history{
		cur:   []observation.Record{rec(t, "1.1.1.1"), rec(t, "1.1.1.2")},
		prev:  []observation.Record{rec(t, "2.2.2.2")},
		prev2: []observation.Record{rec(t, "3.3.3.3")},
	}
	got := h.priorTwo()
	if len(got) != 2 {
		t.Fatalf("priorTwo() length = %d, want 2 (prev+prev2, cur excluded)", len(got))
	}
	for _, r := range got {
		if r.SrcIP == h.cur[0].SrcIP || r.SrcIP == h.cur[1].SrcIP {
			t.Errorf("priorTwo() leaked a cur record: %v", r)
		}
	}
}
