package queries

import (
	"errors"
	"math"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery reads one placed order, including its line items.
type GetOrderQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a positive order id.
func NewGetOrderQuery(orderID int64) (GetOrderQuery, error) {
	if orderID <= 0 {
		return GetOrderQuery{}, errs.NewValueIsOutOfRangeError("order id", orderID, 1, int64(math.MaxInt64))
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to read.
func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}

// GetOrderQueryResponse describes a placed order and where it is in its lifecycle.
type GetOrderQueryResponse struct {
	ID        int64
	OrderedAt time.Time
	State     order.State
	Items     []order.LineItem
	Total     kernel.Money
}
