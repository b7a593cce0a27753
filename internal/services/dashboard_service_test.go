package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"finboard/internal/aggregate"
	"finboard/internal/core"
	"finboard/internal/memory"
)

type failingReader struct {
	listErr     error
	settingsErr error
}

func (f *failingReader) ListTransactions(_ context.Context, _ string) ([]aggregate.Record, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return nil, nil
}

func (f *failingReader) RecentTransactions(_ context.Context, _ string, _ int) ([]aggregate.Record, error) {
	return nil, nil
}

func (f *failingReader) ReadSettings(_ context.Context, _ string) (core.Settings, error) {
	if f.settingsErr != nil {
		return core.Settings{}, f.settingsErr
	}
	return core.Settings{}, nil
}

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New()
	s.Seed("u1", []aggregate.Record{
		{ID: "1", Date: "2024-01-05", Amount: "300.00", Type: "income"},
		{ID: "2", Date: "2024-01-12", Amount: "100.00", Type: "expense", Category: "Food"},
		{ID: "3", Date: "2024-02-03", Amount: "200.00", Type: "expense", Category: "Transport"},
	})
	if err := s.WriteSpendingGoal(context.Background(), "u1", core.Money{Cents: 40000}); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestBuildSnapshot(t *testing.T) {
	s := seededStore(t)
	svc := NewDashboardService(s, s)

	snap, err := svc.BuildSnapshot(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Version != 1 {
		t.Fatalf("first snapshot version = %d", snap.Version)
	}
	if snap.FetchedAt.IsZero() {
		t.Fatal("FetchedAt not set")
	}
	if got := snap.View.Summary.TransactionCount; got != 3 {
		t.Fatalf("transaction count = %d", got)
	}
	if got := snap.View.Summary.SpendingGoal.Cents; got != 40000 {
		t.Fatalf("spending goal = %d", got)
	}
	if len(snap.View.Monthly) != 2 || snap.View.Monthly[0].Month != "Jan" {
		t.Fatalf("unexpected monthly series: %+v", snap.View.Monthly)
	}
}

func TestBuildSnapshotVersionsAdvance(t *testing.T) {
	s := seededStore(t)
	svc := NewDashboardService(s, s)
	ctx := context.Background()

	first, err := svc.BuildSnapshot(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.BuildSnapshot(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if second.Version <= first.Version {
		t.Fatalf("versions must advance: %d then %d", first.Version, second.Version)
	}
}

func TestBuildSnapshotEmptyUser(t *testing.T) {
	s := memory.New()
	svc := NewDashboardService(s, s)

	snap, err := svc.BuildSnapshot(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("empty data is valid, got %v", err)
	}
	if len(snap.View.Monthly) != 0 || len(snap.View.Categories) != 0 {
		t.Fatalf("expected empty view, got %+v", snap.View)
	}
	if snap.View.Summary.TransactionCount != 0 {
		t.Fatal("expected zero transaction count")
	}
}

func TestBuildSnapshotFetchFailure(t *testing.T) {
	boom := errors.New("store unavailable")

	t.Run("transactions", func(t *testing.T) {
		svc := NewDashboardService(&failingReader{listErr: boom}, &failingReader{})
		_, err := svc.BuildSnapshot(context.Background(), "u1")
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped fetch error, got %v", err)
		}
		if !strings.Contains(err.Error(), "fetch transactions") {
			t.Fatalf("error should name the failed fetch: %v", err)
		}
	})

	t.Run("settings", func(t *testing.T) {
		svc := NewDashboardService(&failingReader{}, &failingReader{settingsErr: boom})
		_, err := svc.BuildSnapshot(context.Background(), "u1")
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped fetch error, got %v", err)
		}
	})
}

func TestBuildSnapshotCancelledContext(t *testing.T) {
	s := seededStore(t)
	svc := NewDashboardService(s, s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.BuildSnapshot(ctx, "u1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled context should discard the pass, got %v", err)
	}
}
