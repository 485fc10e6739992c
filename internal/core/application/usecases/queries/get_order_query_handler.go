package queries

import (
	"context"
)

// GetOrderQueryHandler reads placed orders from the order hub.
type GetOrderQueryHandler struct {
	orders OrderReader
}

// NewGetOrderQueryHandler creates a handler reading from orders.
func NewGetOrderQueryHandler(orders OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle returns the order. An unknown id yields *order.UnknownOrderError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err := ctx.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, state, err := h.orders.Order(query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		ID:        o.ID(),
		OrderedAt: o.OrderedAt(),
		State:     state,
		Items:     o.Items(),
		Total:     o.Total(),
	}, nil
}
