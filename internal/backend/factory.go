package backend

import (
	"context"
	"fmt"
	"log/slog"

	"finboard/internal/amqp"
	"finboard/internal/core"
	"finboard/internal/memory"
	"finboard/internal/services"
	"finboard/internal/storage"
)

// DefaultFactory implements Factory.
type DefaultFactory struct{}

// NewFactory creates a new backend factory.
func NewFactory() *DefaultFactory {
	return &DefaultFactory{}
}

// CreateBackend creates a backend based on the provided configuration.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	switch config.Type {
	case MemoryBackend:
		return f.createMemoryBackend(ctx)
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unknown backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context) (*BackendResult, error) {
	slog.InfoContext(ctx, "creating in-memory backend")

	return &BackendResult{
		Backend: memory.New(),
		Cleanup: func() error { return nil },
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	slog.InfoContext(ctx, "creating sqlite backend", "db_path", config.SQLiteDBPath)

	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite repository: %w", err)
	}

	// AMQP is optional: without it transactions are stored locally and
	// picked up by the worker's periodic pending-sync scan.
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			slog.WarnContext(ctx, "amqp unavailable, continuing without sync publishing", "error", err)
			amqpClient = nil
		}
	}

	svc := services.NewTransactionService(repo, amqpClient)

	return &BackendResult{
		Backend: &sqliteBackend{SQLiteRepository: repo, svc: svc},
		Cleanup: func() error {
			return svc.Close()
		},
	}, nil
}

// sqliteBackend serves reads straight from the repository and routes
// writes through the transaction service so sync messages get published.
type sqliteBackend struct {
	*storage.SQLiteRepository
	svc *services.TransactionService
}

func (b *sqliteBackend) CreateTransaction(ctx context.Context, userID string, tx core.Transaction) (string, error) {
	return b.svc.CreateTransaction(ctx, userID, tx)
}

func (b *sqliteBackend) DeleteTransaction(ctx context.Context, userID, id string) error {
	return b.svc.DeleteTransaction(ctx, userID, id)
}
