package aggregate

import "finboard/internal/core"

// Palette is the fixed ordered list of display colors assigned to category
// slices, cycling when categories outnumber it. The five entries are the
// dashboard's accent colors.
var Palette = []string{
	"#f97316", // orange
	"#8b5cf6", // purple
	"#06b6d4", // cyan
	"#22c55e", // green
	"#6366f1", // indigo
}

// CategoryBucket is one pie slice: summed expense amount for a category plus
// its assigned display color.
type CategoryBucket struct {
	Name  string
	Value core.Money
	Color string
}

// CategoryBreakdown sums expense transactions by category in first-seen
// order. Income transactions contribute nothing. Colors are assigned by
// first-seen index modulo the palette length, so an identical input sequence
// always yields identical (name, color) pairs in identical order.
func CategoryBreakdown(txs []core.Transaction) []CategoryBucket {
	idx := make(map[string]int)
	buckets := make([]CategoryBucket, 0)
	for _, tx := range txs {
		if tx.Type != core.Expense {
			continue
		}
		i, ok := idx[tx.Category]
		if !ok {
			i = len(buckets)
			idx[tx.Category] = i
			buckets = append(buckets, CategoryBucket{Name: tx.Category})
		}
		buckets[i].Value.Cents += tx.Amount.Cents
	}
	for i := range buckets {
		buckets[i].Color = Palette[i%len(Palette)]
	}
	return buckets
}
