// Package services orchestrates storage, messaging and the ledger
// pipeline on behalf of the HTTP handlers and the export worker.
package services

import (
	"context"

	"grafica/internal/core"
)

// Ports for the collaborators the services drive. The SQLite
// repository satisfies all repository interfaces; the AMQP client
// satisfies Publisher.
type (
	ServiceRepository interface {
		CreateService(ctx context.Context, s core.Service) (string, error)
		ListServices(ctx context.Context, activeOnly bool) ([]core.Service, error)
		GetService(ctx context.Context, id string) (core.Service, error)
		UpdateService(ctx context.Context, s core.Service) error
		DeleteService(ctx context.Context, id string) error
	}

	OrderRepository interface {
		CreateOrder(ctx context.Context, o core.Order) (string, error)
		ListOrders(ctx context.Context) ([]core.Order, error)
		GetOrder(ctx context.Context, id string) (core.Order, error)
		UpdateOrder(ctx context.Context, o core.Order) error
		DeleteOrder(ctx context.Context, id string) error
	}

	TransactionRepository interface {
		CreateTransaction(ctx context.Context, t core.Transaction) (string, error)
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		DeleteTransaction(ctx context.Context, id string) error
	}

	// SnapshotSource feeds the ledger pipeline. Both lists may be
	// fetched concurrently.
	SnapshotSource interface {
		ListOrders(ctx context.Context) ([]core.Order, error)
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	// Publisher notifies interested consumers that a record changed.
	Publisher interface {
		PublishRecordChange(ctx context.Context, source, id, action string) error
	}
)
