// Package queries contains read-only operations over the order board and the archive.
// Implements the Query side of the CQRS architecture.
package queries

import (
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/hub"
)

type (
	// OrderBoard reads the current board.
	OrderBoard interface {
		Snapshot() hub.Snapshot
	}

	// OrderReader reads one placed order.
	OrderReader interface {
		Order(orderID int64) (order.Order, order.State, error)
	}
)
