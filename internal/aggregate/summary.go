package aggregate

import "finboard/internal/core"

// SummaryTotals are the all-time totals behind the dashboard stat cards.
// TransactionCount counts every normalized transaction regardless of type.
type SummaryTotals struct {
	TotalIncome      core.Money
	TotalExpense     core.Money
	TransactionCount int
	SpendingGoal     core.Money
}

// Summarize folds the full normalized sequence into summary totals. The
// spending goal comes from the separately stored settings record and defaults
// to zero when absent. Empty input degenerates to all-zero totals; that is a
// valid state, not an error.
func Summarize(txs []core.Transaction, goal core.Money) SummaryTotals {
	s := SummaryTotals{
		TransactionCount: len(txs),
		SpendingGoal:     goal,
	}
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			s.TotalIncome.Cents += tx.Amount.Cents
		case core.Expense:
			s.TotalExpense.Cents += tx.Amount.Cents
		}
	}
	return s
}
