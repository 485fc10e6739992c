// Package ports defines the persistence contracts the application layer depends on.
// Adapters under internal/adapters/out implement them.
package ports

import (
	"context"

	"fulfilment/internal/core/domain/model/order"
)

// OrderArchive keeps a durable copy of every placed order and the last state it was seen in.
// The hub stays the source of truth; the archive only records what the hub reported.
type OrderArchive interface {
	// Save inserts the order or, when it is already archived, overwrites its state.
	Save(ctx context.Context, o order.Order, state order.State) error

	// Get returns an archived order with its recorded state.
	// Returns an error wrapping errs.ErrObjectNotFound when the order was never archived.
	Get(ctx context.Context, orderID int64) (order.Order, order.State, error)

	// States returns the recorded state of every archived order.
	States(ctx context.Context) (map[int64]order.State, error)
}
