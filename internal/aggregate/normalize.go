// Package aggregate implements the transaction aggregation pipeline: raw
// stored rows are normalized into typed transactions, folded into monthly,
// category, and summary views, and assembled into one immutable snapshot for
// the dashboard. Every function here is pure and carries no state between
// calls; a pass owns its output exclusively.
package aggregate

import (
	"fmt"
	"log/slog"
	"time"

	"finboard/internal/core"
)

// Record is one raw row as the table store returns it: loosely typed, every
// scalar a string. Nothing downstream of Normalize ever sees a Record.
type Record struct {
	ID          string
	Description string
	Date        string
	Category    string
	Amount      string
	Type        string
	UserID      string
}

// Stored dates arrive either day-precise or as full timestamps.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Normalize converts raw rows into canonical transactions, preserving input
// order. Rows that fail amount or date parsing, or whose type is not exactly
// income or expense, are excluded and counted; the rest of the batch is
// unaffected. The skip count is surfaced so callers can report exclusions
// instead of hiding them.
func Normalize(rows []Record) ([]core.Transaction, int) {
	txs := make([]core.Transaction, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		tx, err := normalizeRecord(row)
		if err != nil {
			slog.Warn("Excluding malformed record from aggregation",
				"id", row.ID,
				"type", row.Type,
				"error", err)
			skipped++
			continue
		}
		txs = append(txs, tx)
	}
	return txs, skipped
}

func normalizeRecord(row Record) (core.Transaction, error) {
	typ, err := core.ParseTxType(row.Type)
	if err != nil {
		return core.Transaction{}, err
	}
	cents, err := core.ParseAmountCents(row.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("amount %q: %w", row.Amount, err)
	}
	date, err := parseDate(row.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("date %q: %w", row.Date, err)
	}
	return core.Transaction{
		ID:          row.ID,
		Description: row.Description,
		Date:        date,
		Category:    row.Category,
		Amount:      core.Money{Cents: cents},
		Type:        typ,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, core.ErrInvalidDate
}
