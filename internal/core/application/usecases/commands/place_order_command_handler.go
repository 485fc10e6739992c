package commands

import (
	"context"

	"fulfilment/internal/core/domain/model/order"
)

// PlaceOrderCommandHandler submits checkouts to the order hub.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(h)
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("checkout failed: %w", err)
//	}
//	fmt.Printf("Order %d placed at %s\n", placed.ID(), placed.OrderedAt())
type PlaceOrderCommandHandler struct {
	placer OrderPlacer
}

// NewPlaceOrderCommandHandler creates a handler placing orders through placer.
func NewPlaceOrderCommandHandler(placer OrderPlacer) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{placer: placer}
}

// Handle places the order and returns it with its identifier assigned.
// Nothing is placed when ctx is already done.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return order.Order{}, err
	}
	if err := ctx.Err(); err != nil {
		return order.Order{}, err
	}

	return h.placer.NewOrder(cmd.Items())
}
