package queries

import (
	"errors"

	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/guard"
)

var (
	ErrGetOrderBoardQueryIsNotConstructed = errors.New(
		"GetOrderBoardQuery must be created via NewGetOrderBoardQuery constructor",
	)
)

// GetOrderBoardQuery reads every order with its current state.
//
// Example:
//
//	query := NewGetOrderBoardQuery()
//	handler := NewGetOrderBoardQueryHandler(h)
//
//	board, err := handler.Handle(ctx, query)
//	for _, row := range board.Orders {
//	    fmt.Printf("%d %s\n", row.ID, row.State)
//	}
type GetOrderBoardQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderBoardQuery creates a parameterless board query.
func NewGetOrderBoardQuery() GetOrderBoardQuery {
	return GetOrderBoardQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrderBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderBoardQueryIsNotConstructed)
}

// GetOrderBoardQueryResponse is the board at one revision, ascending by order id.
type GetOrderBoardQueryResponse struct {
	Revision uint64
	Orders   []OrderBoardRow
}

// OrderBoardRow is one order on the board.
type OrderBoardRow struct {
	ID    int64
	State order.State
}
