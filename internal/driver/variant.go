package driver

import (
	"fmt"

	"github.com/Emeline-1/magnifier/internal/sentinel"
)

// Variant is one (order, top-k) combination the driver carries its own
// mirror history and sentinel set for (spec.md §9 "per-variant
// fan-out").
type Variant struct {
	Order sentinel.Order
	TopK  int
}

// Key renders the variant as a stable string, used both as the prefix
// of its CSV metric names and as the item pool.Launch_pool fans out over
// (it only accepts []string).
func (v Variant) Key() string {
	if v.Order == sentinel.OrderFull {
		return "full"
	}
	return fmt.Sprintf("%s:%d", v.Order, v.TopK)
}

// topKs are the truncation sizes applied to the activity- and
// size-ordered variants (spec.md §9).
var topKs = []int{100, 500, 1000, 5000}

// Variants returns the fixed, ordered list of 9 variants: activity and
// size orderings each truncated to every topKs value, plus one
// untruncated "full" variant. The order here is the order CSV columns
// are emitted in, independent of any fan-out completion order.
func Variants() []Variant {
	variants := make([]Variant, 0, 2*len(topKs)+1)
	for _, order := range []sentinel.Order{sentinel.OrderActivity, sentinel.OrderSize} {
		for _, k := range topKs {
			variants = append(variants, Variant{Order: order, TopK: k})
		}
	}
	variants = append(variants, Variant{Order: sentinel.OrderFull, TopK: 0})
	return variants
}
