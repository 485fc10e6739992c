package commands

import (
	"errors"
	"fmt"
	"slices"

	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
)

// PlaceOrderCommand carries the contents of a checked-out trolley.
// The items are copied on the way in and on the way out.
//
// Example:
//
//	item, _ := order.NewLineItem("0001", "40 inch TV", kernel.MustMoney(26999), 1)
//	cmd, err := NewPlaceOrderCommand([]order.LineItem{item})
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//
//	placed, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct {
	items []order.LineItem

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the line items of a checkout.
// Fails when items is empty or any item is invalid.
func NewPlaceOrderCommand(items []order.LineItem) (PlaceOrderCommand, error) {
	if len(items) == 0 {
		return PlaceOrderCommand{}, errs.NewValueIsRequiredError("line items")
	}

	var itemErrs []error
	for i, item := range items {
		if err := item.Validate(); err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("line item %d: %w", i, err))
		}
	}
	if err := errors.Join(itemErrs...); err != nil {
		return PlaceOrderCommand{}, err
	}

	return PlaceOrderCommand{
		items: slices.Clone(items),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// Items returns a copy of the line items.
func (c PlaceOrderCommand) Items() []order.LineItem {
	return slices.Clone(c.items)
}
