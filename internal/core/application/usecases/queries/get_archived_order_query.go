package queries

import (
	"errors"
	"math"
	"time"

	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var (
	ErrGetArchivedOrderQueryIsNotConstructed = errors.New(
		"GetArchivedOrderQuery must be created via NewGetArchivedOrderQuery constructor",
	)
)

// GetArchivedOrderQuery reads an order back from the archive.
//
// Example:
//
//	query, _ := NewGetArchivedOrderQuery(42)
//	handler := NewGetArchivedOrderQueryHandler(db)
//
//	archived, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    fmt.Println("order 42 has not been archived yet")
//	}
type GetArchivedOrderQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetArchivedOrderQuery creates a query for a positive order id.
func NewGetArchivedOrderQuery(orderID int64) (GetArchivedOrderQuery, error) {
	if orderID <= 0 {
		return GetArchivedOrderQuery{}, errs.NewValueIsOutOfRangeError("order id", orderID, 1, int64(math.MaxInt64))
	}

	return GetArchivedOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetArchivedOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetArchivedOrderQueryIsNotConstructed)
}

// OrderID returns the order to read.
func (q GetArchivedOrderQuery) OrderID() int64 {
	return q.orderID
}

// GetArchivedOrderQueryResponse is an archived order as last recorded.
type GetArchivedOrderQueryResponse struct {
	ID         int64
	OrderedAt  time.Time
	State      order.State
	Items      []order.LineItem
	ArchivedAt time.Time
}
