package queries

import (
	"context"
)

// GetOrderBoardQueryHandler reads the board from the order hub.
type GetOrderBoardQueryHandler struct {
	board OrderBoard
}

// NewGetOrderBoardQueryHandler creates a handler reading from board.
func NewGetOrderBoardQueryHandler(board OrderBoard) GetOrderBoardQueryHandler {
	return GetOrderBoardQueryHandler{board: board}
}

// Handle returns the current board.
func (h GetOrderBoardQueryHandler) Handle(ctx context.Context, query GetOrderBoardQuery) (GetOrderBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderBoardQueryResponse{}, err
	}
	if err := ctx.Err(); err != nil {
		return GetOrderBoardQueryResponse{}, err
	}

	snapshot := h.board.Snapshot()
	rows := make([]OrderBoardRow, 0, snapshot.Len())
	for _, entry := range snapshot.Entries {
		rows = append(rows, OrderBoardRow{ID: entry.OrderID, State: entry.State})
	}

	return GetOrderBoardQueryResponse{
		Revision: snapshot.Revision,
		Orders:   rows,
	}, nil
}
