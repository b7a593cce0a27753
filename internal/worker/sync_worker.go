// Package worker synchronizes stored transactions to the Google Sheets
// export, driven by AMQP messages plus a periodic pending scan.
package worker

import (
	"context"
	"fmt"

	"finboard/internal/amqp"
	"finboard/internal/core"
	applog "finboard/internal/log"
	"finboard/internal/sheets/google"
	"finboard/internal/storage"
)

type SyncWorker struct {
	storage   *storage.SQLiteRepository
	sheets    *google.Client
	batchSize int
	log       *applog.Logger
}

func NewSyncWorker(storage *storage.SQLiteRepository, sheets *google.Client, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		sheets:    sheets,
		batchSize: batchSize,
		log:       applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker),
	}
}

// HandleSyncMessage processes a single transaction sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.SyncMessage) error {
	w.log.InfoContext(ctx, "Processing sync message", applog.FieldTransactionID, msg.ID)

	tx, err := w.storage.GetTransaction(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	return w.exportTransaction(ctx, msg.ID, tx)
}

// HandleDeleteMessage processes a single transaction delete message from AMQP.
func (w *SyncWorker) HandleDeleteMessage(ctx context.Context, msg *amqp.SyncMessage) error {
	w.log.InfoContext(ctx, "Processing delete message", applog.FieldTransactionID, msg.ID)

	if err := w.sheets.RemoveTransaction(ctx, msg.ID); err != nil {
		return fmt.Errorf("remove transaction from sheet: %w", err)
	}

	return w.storage.MarkSynced(ctx, msg.ID)
}

// ProcessPendingTransactions exports rows the message path missed. Called
// periodically and on startup; errors on individual rows are recorded and do
// not stop the batch.
func (w *SyncWorker) ProcessPendingTransactions(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncTransactions(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending sync transactions: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	w.log.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	for _, p := range pending {
		tx, err := w.storage.GetTransaction(ctx, p.ID)
		if err != nil {
			w.log.ErrorContext(ctx, "Failed to load pending transaction",
				applog.FieldTransactionID, p.ID, applog.FieldError, err)
			continue
		}
		if err := w.exportTransaction(ctx, p.ID, tx); err != nil {
			w.log.ErrorContext(ctx, "Failed to export pending transaction",
				applog.FieldTransactionID, p.ID, applog.FieldError, err)
		}
	}

	return nil
}

// StartupSyncCheck drains anything that accumulated while the worker was down.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	return w.ProcessPendingTransactions(ctx)
}

func (w *SyncWorker) exportTransaction(ctx context.Context, id string, tx core.Transaction) error {
	ref, err := w.sheets.AppendTransaction(ctx, tx)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			w.log.ErrorContext(ctx, "Failed to mark sync error",
				applog.FieldTransactionID, id, applog.FieldError, markErr)
		}
		return fmt.Errorf("append transaction to sheet: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}

	w.log.InfoContext(ctx, "Transaction synced to sheet",
		applog.FieldTransactionID, id, applog.FieldSheetsRef, ref)
	return nil
}
