package aggregate

import (
	"time"

	"finboard/internal/core"
)

// MonthlyBucket accumulates income and expense sums for one calendar month.
// Month is the three-letter label the charts render on the X axis.
type MonthlyBucket struct {
	Month   string
	Income  core.Money
	Expense core.Money
}

// MonthlySeries groups transactions by calendar month in first-seen order.
//
// Precondition: the input is sorted ascending by date (the store's list
// contract); first-seen order is then chronological. Buckets are keyed by
// year+month, so the same month of different years never collides, but the
// label stays the bare month abbreviation.
func MonthlySeries(txs []core.Transaction) []MonthlyBucket {
	type monthKey struct {
		year  int
		month time.Month
	}
	idx := make(map[monthKey]int, len(txs))
	buckets := make([]MonthlyBucket, 0)
	for _, tx := range txs {
		k := monthKey{tx.Date.Year(), tx.Date.Month()}
		i, ok := idx[k]
		if !ok {
			i = len(buckets)
			idx[k] = i
			buckets = append(buckets, MonthlyBucket{Month: tx.Date.Format("Jan")})
		}
		switch tx.Type {
		case core.Income:
			buckets[i].Income.Cents += tx.Amount.Cents
		case core.Expense:
			buckets[i].Expense.Cents += tx.Amount.Cents
		}
	}
	return buckets
}
