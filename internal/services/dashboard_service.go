package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"finboard/internal/aggregate"
	"finboard/internal/core"
	"finboard/internal/store"
)

// Snapshot is one immutable fetch-then-aggregate result. Refreshing produces
// a new snapshot with a higher version; nothing mutates an existing one.
type Snapshot struct {
	View      aggregate.View
	Version   uint64
	FetchedAt time.Time
}

// DashboardService runs the fetch/aggregate cycle: one consistent snapshot of
// the transaction list and the settings record, fetched concurrently, then a
// single pass of the aggregation pipeline.
type DashboardService struct {
	transactions store.TransactionReader
	settings     store.SettingsReader
	version      atomic.Uint64
}

func NewDashboardService(transactions store.TransactionReader, settings store.SettingsReader) *DashboardService {
	return &DashboardService{
		transactions: transactions,
		settings:     settings,
	}
}

// BuildSnapshot fetches the user's rows and settings and aggregates them.
// The two reads have no ordering dependency and run concurrently; both must
// complete before the summary finalizes. A cancelled context discards the
// pass instead of returning a partially built view.
func (s *DashboardService) BuildSnapshot(ctx context.Context, userID string) (Snapshot, error) {
	var (
		rows []aggregate.Record
		cfg  core.Settings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if rows, err = s.transactions.ListTransactions(gctx, userID); err != nil {
			return fmt.Errorf("fetch transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if cfg, err = s.settings.ReadSettings(gctx, userID); err != nil {
			return fmt.Errorf("fetch settings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		// The consumer went away while the fetch was outstanding;
		// discard rather than hand back a stale result.
		return Snapshot{}, err
	}

	view := aggregate.Build(rows, cfg.SpendingGoal)

	snap := Snapshot{
		View:      view,
		Version:   s.version.Add(1),
		FetchedAt: time.Now(),
	}

	slog.InfoContext(ctx, "Dashboard snapshot built",
		"user_id", userID,
		"snapshot_version", snap.Version,
		"transaction_count", view.Summary.TransactionCount,
		"skipped_records", view.SkippedRecords,
		"months", len(view.Monthly),
		"categories", len(view.Categories))

	return snap, nil
}
