package http

import (
	"time"

	"fulfilment/internal/core/application/usecases/queries"
	"fulfilment/internal/core/domain/model/order"
)

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type BoardResponse struct {
	Revision uint64     `json:"revision"`
	Orders   []BoardRow `json:"orders"`
}

type BoardRow struct {
	ID    int64  `json:"id"`
	State string `json:"state"`
}

type LineItem struct {
	ProductID   string `json:"product_id"`
	Description string `json:"description"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

type OrderResponse struct {
	ID        int64      `json:"id"`
	OrderedAt time.Time  `json:"ordered_at"`
	State     string     `json:"state"`
	Items     []LineItem `json:"items"`
	Total     string     `json:"total"`
}

type ArchivedOrderResponse struct {
	ID         int64      `json:"id"`
	OrderedAt  time.Time  `json:"ordered_at"`
	State      string     `json:"state"`
	Items      []LineItem `json:"items"`
	ArchivedAt time.Time  `json:"archived_at"`
}

func newBoardResponse(board queries.GetOrderBoardQueryResponse) BoardResponse {
	rows := make([]BoardRow, len(board.Orders))
	for i, row := range board.Orders {
		rows[i] = BoardRow{ID: row.ID, State: row.State.String()}
	}
	return BoardResponse{Revision: board.Revision, Orders: rows}
}

func newOrderResponse(o queries.GetOrderQueryResponse) OrderResponse {
	return OrderResponse{
		ID:        o.ID,
		OrderedAt: o.OrderedAt,
		State:     o.State.String(),
		Items:     newLineItems(o.Items),
		Total:     o.Total.String(),
	}
}

func newArchivedOrderResponse(o queries.GetArchivedOrderQueryResponse) ArchivedOrderResponse {
	return ArchivedOrderResponse{
		ID:         o.ID,
		OrderedAt:  o.OrderedAt,
		State:      o.State.String(),
		Items:      newLineItems(o.Items),
		ArchivedAt: o.ArchivedAt,
	}
}

func newLineItems(items []order.LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = LineItem{
			ProductID:   item.ProductID,
			Description: item.Description,
			UnitPrice:   item.UnitPrice.String(),
			Quantity:    item.Quantity,
		}
	}
	return out
}
