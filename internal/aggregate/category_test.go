package aggregate

import (
	"reflect"
	"testing"

	"finboard/internal/core"
)

func TestCategoryBreakdownExcludesIncome(t *testing.T) {
	txs := []core.Transaction{
		tx("2024-01-05", 30000, core.Income, "Salary"),
		tx("2024-01-12", 10000, core.Expense, "Food"),
	}

	got := CategoryBreakdown(txs)
	if len(got) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(got))
	}
	if got[0].Name != "Food" || got[0].Value.Cents != 10000 {
		t.Fatalf("unexpected bucket: %+v", got[0])
	}
}

func TestCategoryBreakdownFirstSeenOrderAndColors(t *testing.T) {
	txs := []core.Transaction{
		tx("2024-01-01", 5000, core.Expense, "Food"),
		tx("2024-01-02", 7000, core.Expense, "Food"),
		tx("2024-01-03", 2000, core.Expense, "Transport"),
	}

	got := CategoryBreakdown(txs)
	if len(got) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(got))
	}
	if got[0].Name != "Food" || got[0].Value.Cents != 12000 || got[0].Color != Palette[0] {
		t.Fatalf("unexpected first bucket: %+v", got[0])
	}
	if got[1].Name != "Transport" || got[1].Value.Cents != 2000 || got[1].Color != Palette[1] {
		t.Fatalf("unexpected second bucket: %+v", got[1])
	}
}

func TestCategoryBreakdownPaletteWraps(t *testing.T) {
	var txs []core.Transaction
	names := []string{"a", "b", "c", "d", "e", "f", "g"}
	for _, n := range names {
		txs = append(txs, tx("2024-01-01", 100, core.Expense, n))
	}

	got := CategoryBreakdown(txs)
	if len(got) != len(names) {
		t.Fatalf("expected %d buckets, got %d", len(names), len(got))
	}
	if got[5].Color != Palette[0] || got[6].Color != Palette[1] {
		t.Fatalf("palette should wrap modulo %d: %q, %q", len(Palette), got[5].Color, got[6].Color)
	}
}

func TestCategoryBreakdownDeterministic(t *testing.T) {
	txs := []core.Transaction{
		tx("2024-01-01", 100, core.Expense, "Food"),
		tx("2024-01-02", 200, core.Expense, "Transport"),
		tx("2024-01-03", 50, core.Income, ""),
	}

	first := CategoryBreakdown(txs)
	second := CategoryBreakdown(txs)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical input produced different output:\n%+v\n%+v", first, second)
	}
}
