package queries

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetArchivedOrderQueryHandler reads archived orders straight from the database.
type GetArchivedOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetArchivedOrderQueryHandler creates a handler over a GORM connection.
func NewGetArchivedOrderQueryHandler(db *gorm.DB) GetArchivedOrderQueryHandler {
	return GetArchivedOrderQueryHandler{db: db}
}

type archivedItem struct {
	ProductID   string `json:"product_id"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unit_price_minor"`
	Quantity    int    `json:"quantity"`
}

// Handle returns the archived order, or an error wrapping errs.ErrObjectNotFound.
func (h GetArchivedOrderQueryHandler) Handle(
	ctx context.Context,
	query GetArchivedOrderQuery,
) (GetArchivedOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetArchivedOrderQueryResponse{}, err
	}

	var row struct {
		ID         int64
		OrderedAt  time.Time
		State      string
		Items      []byte
		ArchivedAt time.Time
	}

	result := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			ordered_at,
			state,
			items,
			archived_at
		FROM archived_orders
		WHERE id = ?
	`, query.OrderID()).Scan(&row)
	if result.Error != nil {
		return GetArchivedOrderQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetArchivedOrderQueryResponse{}, errs.NewObjectNotFoundError("archived order", query.OrderID())
	}

	state, err := order.ParseState(row.State)
	if err != nil {
		return GetArchivedOrderQueryResponse{}, err
	}

	var stored []archivedItem
	if err = json.Unmarshal(row.Items, &stored); err != nil {
		return GetArchivedOrderQueryResponse{}, errs.NewValueIsInvalidErrorWithCause("items", err)
	}

	items := make([]order.LineItem, 0, len(stored))
	for _, s := range stored {
		price, priceErr := kernel.NewMoney(s.UnitPrice)
		if priceErr != nil {
			return GetArchivedOrderQueryResponse{}, priceErr
		}
		item, itemErr := order.NewLineItem(s.ProductID, s.Description, price, s.Quantity)
		if itemErr != nil {
			return GetArchivedOrderQueryResponse{}, errors.Join(errs.NewValueIsInvalidError("items"), itemErr)
		}
		items = append(items, item)
	}

	return GetArchivedOrderQueryResponse{
		ID:         row.ID,
		OrderedAt:  row.OrderedAt,
		State:      state,
		Items:      items,
		ArchivedAt: row.ArchivedAt,
	}, nil
}
