// Package store defines the ports to the per-user table store. Backends
// return raw rows; conversion to typed transactions happens only in the
// aggregation pipeline's normalizer.
package store

import (
	"context"

	"finboard/internal/aggregate"
	"finboard/internal/core"
)

type (
	// TransactionReader reads stored transaction rows for one user.
	TransactionReader interface {
		// ListTransactions returns every live row sorted ascending by
		// date. The monthly aggregator's first-seen bucket order
		// depends on this sort.
		ListTransactions(ctx context.Context, userID string) ([]aggregate.Record, error)

		// RecentTransactions returns the most recent rows sorted
		// descending by date, limited to at most limit entries.
		RecentTransactions(ctx context.Context, userID string, limit int) ([]aggregate.Record, error)
	}

	// TransactionWriter inserts and removes rows.
	TransactionWriter interface {
		// CreateTransaction stores one row and returns its id. The
		// caller re-runs the fetch/aggregate cycle only after this
		// succeeds.
		CreateTransaction(ctx context.Context, userID string, tx core.Transaction) (string, error)

		DeleteTransaction(ctx context.Context, userID, id string) error
	}

	// SettingsReader reads the per-user settings record. A missing record
	// or field reads as the zero value, never as an error.
	SettingsReader interface {
		ReadSettings(ctx context.Context, userID string) (core.Settings, error)
	}

	// SettingsWriter updates the spending goal.
	SettingsWriter interface {
		WriteSpendingGoal(ctx context.Context, userID string, goal core.Money) error
	}
)
