// Package commands contains business operations that change system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Commands that touch the order board go through the hub; commands that persist go
// through a unit of work.
package commands

import (
	"context"

	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/hub"
	"fulfilment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ArchiveRepoFactory provides access to the order archive within a transaction.
	ArchiveRepoFactory interface {
		OrderArchive() ports.OrderArchive
	}

	// ArchiveUoW manages transactions for archive writes.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.OrderArchive().Save(ctx, o, order.Ordered)
	//   err = uow.Commit(ctx)
	ArchiveUoW interface {
		TxManager
		ArchiveRepoFactory
	}

	// ArchiveUoWFactory creates new archive unit of work instances.
	ArchiveUoWFactory interface {
		Create() ArchiveUoW
	}
)

// Order board interfaces are the parts of *hub.Hub each handler uses.
type (
	// OrderPlacer places new orders.
	OrderPlacer interface {
		NewOrder(items []order.LineItem) (order.Order, error)
	}

	// OrderAdvancer moves orders to their next state, either unconditionally or
	// only from an expected state.
	OrderAdvancer interface {
		Advance(orderID int64) (order.State, error)
		Transition(orderID int64, target order.State) error
	}

	// OrderLister lists every placed order with its state.
	OrderLister interface {
		Orders() []hub.PlacedOrder
	}
)
