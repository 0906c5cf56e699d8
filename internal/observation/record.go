// Package observation implements the append-only packet store: parsing
// the preprocessed input CSV and handing out successive iteration
// windows in file order.
package observation

import "github.com/Emeline-1/magnifier/internal/ipaddr"

// Record is one packet observation, immutable once produced.
type Record struct {
	SrcIP   ipaddr.Addr
	Src24   ipaddr.Prefix
	Ingress uint16
	Flag    bool
	TS      float64
}

// Window is the result of reading one iteration's worth of records.
// An empty Window (len(Pkts) == 0) signals end of file.
type Window struct {
	Pkts        []Record
	Timestamps  []float64
	Flags       []bool
	BorderPkts  [][]Record
	BorderFlags [][]bool
}
