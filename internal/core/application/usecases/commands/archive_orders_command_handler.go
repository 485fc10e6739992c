package commands

import (
	"context"
)

// ArchiveOrdersCommandHandler writes every order whose state changed since the
// last run into the archive. All writes of one run share a transaction.
type ArchiveOrdersCommandHandler struct {
	orders     OrderLister
	uowFactory ArchiveUoWFactory
}

// NewArchiveOrdersCommandHandler creates a handler reading the board from orders.
func NewArchiveOrdersCommandHandler(orders OrderLister, uowFactory ArchiveUoWFactory) ArchiveOrdersCommandHandler {
	return ArchiveOrdersCommandHandler{
		orders:     orders,
		uowFactory: uowFactory,
	}
}

// Handle compares the board with the archived states and saves the orders that
// are new or have moved on. It returns how many orders were saved.
func (h ArchiveOrdersCommandHandler) Handle(ctx context.Context, cmd ArchiveOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	archive := uow.OrderArchive()

	archived, err := archive.States(ctx)
	if err != nil {
		return 0, err
	}

	saved := 0
	for _, placed := range h.orders.Orders() {
		if state, ok := archived[placed.Order.ID()]; ok && state == placed.State {
			continue
		}

		if err = archive.Save(ctx, placed.Order, placed.State); err != nil {
			return 0, err
		}
		saved++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return saved, nil
}
