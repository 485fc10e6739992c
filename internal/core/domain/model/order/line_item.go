package order

import (
	"errors"
	"fmt"
	"math"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
)

// LineItem is one product row of an order, copied from the trolley at checkout.
type LineItem struct {
	ProductID   string
	Description string
	UnitPrice   kernel.Money
	Quantity    int
}

// NewLineItem builds a validated line item.
func NewLineItem(productID, description string, unitPrice kernel.Money, quantity int) (LineItem, error) {
	item := LineItem{
		ProductID:   productID,
		Description: description,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	}
	if err := item.Validate(); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

// Validate checks the product id, the quantity and that the subtotal fits in Money.
// Money cannot hold a negative price.
func (li LineItem) Validate() error {
	var productErr, quantityErr error
	if li.ProductID == "" {
		productErr = errs.NewValueIsRequiredError("product id")
	}
	if li.Quantity < 1 {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", li.Quantity, 1, math.MaxInt)
	} else if _, err := li.Subtotal(); err != nil {
		quantityErr = err
	}
	return errors.Join(productErr, quantityErr)
}

// Subtotal is UnitPrice × Quantity.
func (li LineItem) Subtotal() (kernel.Money, error) {
	return li.UnitPrice.Times(li.Quantity)
}

// SumItems adds up the subtotals of items. It fails when a subtotal or the
// running total overflows.
func SumItems(items []LineItem) (kernel.Money, error) {
	var total kernel.Money
	for _, item := range items {
		subtotal, err := item.Subtotal()
		if err != nil {
			return kernel.Money{}, err
		}
		if total, err = total.Add(subtotal); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

// String renders "P1 Widget x3 @ 2.50".
func (li LineItem) String() string {
	return fmt.Sprintf("%s %s x%d @ %s", li.ProductID, li.Description, li.Quantity, li.UnitPrice)
}
