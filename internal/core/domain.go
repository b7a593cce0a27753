package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

type (
	// TxType is the transaction direction. Exactly two values are
	// recognized; anything else is rejected at the normalization boundary.
	TxType string

	Money struct {
		Cents int64
	}

	// Transaction is a single dated financial record of type income or
	// expense. Amounts are currency-agnostic integer cents.
	Transaction struct {
		ID          string
		Description string
		Date        time.Time
		Category    string
		Amount      Money
		Type        TxType
	}

	// Settings is the per-user settings record stored independently of
	// transactions. A missing record reads as the zero value.
	Settings struct {
		SpendingGoal Money
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrUnknownType   = errors.New("unknown transaction type")
	ErrEmptyCategory = errors.New("empty category")
)

// ParseTxType restricts a raw type label to the two recognized values.
func ParseTxType(s string) (TxType, error) {
	switch t := TxType(strings.TrimSpace(s)); t {
	case Income, Expense:
		return t, nil
	default:
		return "", ErrUnknownType
	}
}

func (t TxType) Valid() bool {
	return t == Income || t == Expense
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (tx Transaction) Validate() error {
	if tx.Date.IsZero() {
		return ErrInvalidDate
	}
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	if !tx.Type.Valid() {
		return ErrUnknownType
	}
	// Income rows may carry a category label, but only expenses require one.
	if tx.Type == Expense && strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	if len(tx.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}
