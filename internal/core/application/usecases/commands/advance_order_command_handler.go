package commands

import (
	"context"

	"fulfilment/internal/core/domain/model/order"
)

// AdvanceOrderCommandHandler moves orders along ORDERED, PROGRESSING, COLLECTED.
type AdvanceOrderCommandHandler struct {
	advancer OrderAdvancer
}

// NewAdvanceOrderCommandHandler creates a handler advancing orders through advancer.
func NewAdvanceOrderCommandHandler(advancer OrderAdvancer) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{advancer: advancer}
}

// Handle advances the order and returns the state it moved to.
// Errors from the hub are returned unchanged, so callers can match
// *order.UnknownOrderError and *order.InvalidTransitionError.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (order.State, error) {
	if err := cmd.Validate(); err != nil {
		return order.Unknown, err
	}
	if err := ctx.Err(); err != nil {
		return order.Unknown, err
	}

	if cmd.From() == order.Unknown {
		return h.advancer.Advance(cmd.OrderID())
	}

	target, err := cmd.From().Next()
	if err != nil {
		return order.Unknown, err
	}
	if err = h.advancer.Transition(cmd.OrderID(), target); err != nil {
		return order.Unknown, err
	}
	return target, nil
}
