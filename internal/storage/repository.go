package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"finboard/internal/aggregate"
	"finboard/internal/core"
)

// SQLiteRepository is the owned table store: transactions plus per-user
// settings, with sync bookkeeping columns for the export worker.
type SQLiteRepository struct {
	db *sql.DB
}

// PendingSyncTransaction is a row the worker still has to push to the export.
// CreatedAt stays the raw stored timestamp text; the worker only orders by it.
type PendingSyncTransaction struct {
	ID        string
	CreatedAt string
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateTransaction implements store.TransactionWriter.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, userID string, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	id := tx.ID
	if id == "" {
		id = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, description, date, category, amount_cents, type)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, userID, tx.Description, tx.Date.Format("2006-01-02"), tx.Category, tx.Amount.Cents, string(tx.Type))
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", id,
		"user_id", userID,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category)

	return id, nil
}

// SoftDeleteTransaction marks a row deleted without removing it, so the
// export worker can still propagate the deletion.
func (r *SQLiteRepository) SoftDeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET deleted_at = CURRENT_TIMESTAMP, synced = 0
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL`,
		id, userID)
	if err != nil {
		return fmt.Errorf("soft delete transaction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("transaction %s not found", id)
	}
	return nil
}

// DeleteTransaction implements store.TransactionWriter.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	return r.SoftDeleteTransaction(ctx, userID, id)
}

// ListTransactions implements store.TransactionReader: every live row for the
// user, ascending by date. The dashboard aggregation depends on this sort.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID string) ([]aggregate.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, date, category, amount_cents, type, user_id
		FROM transactions
		WHERE user_id = ? AND deleted_at IS NULL
		ORDER BY date ASC, created_at ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// RecentTransactions implements store.TransactionReader: newest rows first.
func (r *SQLiteRepository) RecentTransactions(ctx context.Context, userID string, limit int) ([]aggregate.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, date, category, amount_cents, type, user_id
		FROM transactions
		WHERE user_id = ? AND deleted_at IS NULL
		ORDER BY date DESC, created_at DESC
		LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]aggregate.Record, error) {
	var out []aggregate.Record
	for rows.Next() {
		var rec aggregate.Record
		var cents int64
		if err := rows.Scan(&rec.ID, &rec.Description, &rec.Date, &rec.Category, &cents, &rec.Type, &rec.UserID); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		rec.Amount = core.FormatCents(cents)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return out, nil
}

// GetTransaction loads one row by id for the sync worker, deleted or not.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	var (
		tx      core.Transaction
		dateStr string
		typeStr string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, description, date, category, amount_cents, type
		FROM transactions WHERE id = ?`,
		id).Scan(&tx.ID, &tx.Description, &dateStr, &tx.Category, &tx.Amount.Cents, &typeStr)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %s not found", id)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	tx.Type = core.TxType(typeStr)
	if tx.Date, err = time.Parse("2006-01-02", dateStr); err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", dateStr, err)
	}
	return tx, nil
}

// ReadSettings implements store.SettingsReader. A missing settings row reads
// as the zero value, not an error.
func (r *SQLiteRepository) ReadSettings(ctx context.Context, userID string) (core.Settings, error) {
	var cfg core.Settings
	err := r.db.QueryRowContext(ctx, `
		SELECT spending_goal_cents FROM user_settings WHERE user_id = ?`,
		userID).Scan(&cfg.SpendingGoal.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Settings{}, nil
	}
	if err != nil {
		return core.Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return cfg, nil
}

// WriteSpendingGoal implements store.SettingsWriter.
func (r *SQLiteRepository) WriteSpendingGoal(ctx context.Context, userID string, goal core.Money) error {
	if err := goal.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, spending_goal_cents, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE SET
			spending_goal_cents = excluded.spending_goal_cents,
			updated_at = CURRENT_TIMESTAMP`,
		userID, goal.Cents)
	if err != nil {
		return fmt.Errorf("write spending goal: %w", err)
	}
	slog.InfoContext(ctx, "Spending goal saved", "user_id", userID, "goal_cents", goal.Cents)
	return nil
}

// GetPendingSyncTransactions returns live rows not yet pushed to the export.
func (r *SQLiteRepository) GetPendingSyncTransactions(ctx context.Context, limit int) ([]PendingSyncTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at FROM transactions
		WHERE synced = 0 AND deleted_at IS NULL
		ORDER BY created_at ASC
		LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync transactions: %w", err)
	}
	defer rows.Close()

	var out []PendingSyncTransaction
	for rows.Next() {
		var p PendingSyncTransaction
		if err := rows.Scan(&p.ID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending sync row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending sync rows: %w", err)
	}
	return out, nil
}

// MarkSynced records a successful export of one row.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET synced = 1, sync_error = 0 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as synced", "id", id)
	return nil
}

// MarkSyncError flags a row whose export failed so the periodic scan retries it.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_error = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}
	return nil
}
