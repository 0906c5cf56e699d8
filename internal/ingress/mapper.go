// Package ingress resolves which border router a packet is assigned to,
// under the random, persistent, or permuted mapping policies.
package ingress

import "github.com/Emeline-1/magnifier/internal/ipaddr"

// Column is the border-router fan-out the CSV's precomputed rN_rand/rN_pers
// columns are indexed by.
type Column int

const (
	Col4 Column = iota
	Col8
	Col16
	Col32
	Col64
)

// ColumnFor returns the Column matching a given n_border, and false if
// n_border is not one of the five precomputed fan-outs.
func ColumnFor(nBorder int) (Column, bool) {
	switch nBorder {
	case 4:
		return Col4, true
	case 8:
		return Col8, true
	case 16:
		return Col16, true
	case 32:
		return Col32, true
	case 64:
		return Col64, true
	default:
		return 0, false
	}
}

// Row holds the precomputed ingress columns of one observation CSV line,
// the columns produced by the out-of-scope preprocessing step.
type Row struct {
	Src24 ipaddr.Prefix
	Rand  [5]uint16 // indexed by Column
	Pers  [5]uint16 // indexed by Column
}

// Mapper resolves a Row to the 1-based ingress router it is assigned to.
type Mapper interface {
	Resolve(row Row) uint16
}

// RandomMapper picks the precomputed "random" column: different flows
// in the same /24 may land on different ingresses.
type RandomMapper struct{ Col Column }

func (m RandomMapper) Resolve(row Row) uint16 { return row.Rand[m.Col] }

// PersistentMapper picks the precomputed "persistent" column: the
// ingress assigned to a /24's first observed packet for the rest of
// the trace.
type PersistentMapper struct{ Col Column }

func (m PersistentMapper) Resolve(row Row) uint16 { return row.Pers[m.Col] }
