package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseTxType(t *testing.T) {
	cases := []struct {
		in   string
		want TxType
		ok   bool
	}{
		{"income", Income, true},
		{"expense", Expense, true},
		{" expense ", Expense, true},
		{"Income", "", false},
		{"transfer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseTxType(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
			}
		} else if !errors.Is(err, ErrUnknownType) {
			t.Fatalf("%q expected ErrUnknownType, got %v", tc.in, err)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	valid := Transaction{
		Description: "Groceries",
		Date:        date,
		Category:    "Food",
		Amount:      Money{Cents: 4550},
		Type:        Expense,
	}

	cases := []struct {
		name    string
		mutate  func(tx *Transaction)
		wantErr error
	}{
		{"valid expense", func(tx *Transaction) {}, nil},
		{"valid income without category", func(tx *Transaction) {
			tx.Type = Income
			tx.Category = ""
		}, nil},
		{"zero date", func(tx *Transaction) { tx.Date = time.Time{} }, ErrInvalidDate},
		{"negative amount", func(tx *Transaction) { tx.Amount.Cents = -1 }, ErrInvalidAmount},
		{"unknown type", func(tx *Transaction) { tx.Type = "transfer" }, ErrUnknownType},
		{"expense without category", func(tx *Transaction) { tx.Category = " " }, ErrEmptyCategory},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := valid
			tc.mutate(&tx)
			err := tx.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	t.Run("description too long", func(t *testing.T) {
		tx := valid
		tx.Description = strings.Repeat("x", 201)
		if tx.Validate() == nil {
			t.Fatal("expected error for 201-char description")
		}
	})
}
