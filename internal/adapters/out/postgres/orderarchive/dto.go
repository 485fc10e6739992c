// Package orderarchive stores a durable copy of placed orders in PostgreSQL.
// It maps orders to a single table with the line items kept as a jsonb column.
package orderarchive

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
)

// ArchivedOrderDTO is one row of archived_orders.
type ArchivedOrderDTO struct {
	ID         int64        `gorm:"primaryKey;autoIncrement:false"`
	OrderedAt  time.Time    `gorm:"not null"`
	State      string       `gorm:"type:varchar(16);not null;index"`
	Items      LineItemsDTO `gorm:"type:jsonb;not null"`
	ArchivedAt time.Time    `gorm:"autoUpdateTime"`
}

// TableName overrides GORM's default naming convention.
func (ArchivedOrderDTO) TableName() string {
	return "archived_orders"
}

// LineItemDTO is the JSON form of one line item. Prices are kept in minor units.
type LineItemDTO struct {
	ProductID   string `json:"product_id"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unit_price_minor"`
	Quantity    int    `json:"quantity"`
}

// LineItemsDTO reads and writes the jsonb items column.
type LineItemsDTO []LineItemDTO

// Value encodes the items as JSON text.
func (l LineItemsDTO) Value() (driver.Value, error) {
	if l == nil {
		l = LineItemsDTO{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan decodes the items column.
func (l *LineItemsDTO) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("orderarchive: cannot scan %T into line items", src)
	}
}

func fromDomain(o order.Order, state order.State) ArchivedOrderDTO {
	items := o.Items()
	dtos := make(LineItemsDTO, len(items))
	for i, item := range items {
		dtos[i] = LineItemDTO{
			ProductID:   item.ProductID,
			Description: item.Description,
			UnitPrice:   item.UnitPrice.Minor(),
			Quantity:    item.Quantity,
		}
	}

	return ArchivedOrderDTO{
		ID:        o.ID(),
		OrderedAt: o.OrderedAt().UTC(),
		State:     state.String(),
		Items:     dtos,
	}
}

// ToLineItems converts the stored items back into domain line items.
func (l LineItemsDTO) ToLineItems() ([]order.LineItem, error) {
	items := make([]order.LineItem, len(l))
	for i, dto := range l {
		price, err := kernel.NewMoney(dto.UnitPrice)
		if err != nil {
			return nil, err
		}
		item, err := order.NewLineItem(dto.ProductID, dto.Description, price, dto.Quantity)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

func toDomain(dto ArchivedOrderDTO) (order.Order, order.State, error) {
	state, err := order.ParseState(dto.State)
	if err != nil {
		return order.Order{}, order.Unknown, err
	}

	items, err := dto.Items.ToLineItems()
	if err != nil {
		return order.Order{}, order.Unknown, err
	}

	o, err := order.RestoreOrder(dto.ID, dto.OrderedAt, items)
	if err != nil {
		return order.Order{}, order.Unknown, err
	}

	return o, state, nil
}
