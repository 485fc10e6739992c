package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order value did not come from NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIDAlreadyAssigned is returned when AssignID is called on a placed order.
	ErrOrderIDAlreadyAssigned = errors.New("order id is already assigned")
)

// Order is the immutable record of one completed checkout.
//
// Order follows these invariants:
//   - Holds at least one valid line item
//   - The ordered-at timestamp is set once, at creation
//   - The identifier is zero until the registry assigns it, and positive afterwards
//   - Line items are copied in and copied out, so neither the originating trolley
//     nor a caller holding the result of Items can change the order
//
// Order has value semantics; methods never modify the receiver.
type Order struct {
	id        int64
	orderedAt time.Time
	items     []LineItem

	guard guard.ConstructorGuard
}

// NewOrder builds an order from a checkout's line items, stamped with clock.Now().
//
// Parameters:
//   - items: the trolley contents, at least one element
//   - clock: time source for the ordered-at timestamp
//
// Returns:
//   - Order: the order without an identifier
//   - error: *InvalidOrderError when items is empty or any item is invalid
//
// Example:
//
//	item, _ := order.NewLineItem("P1", "Widget", kernel.MustMoney(250), 3)
//	o, err := order.NewOrder([]order.LineItem{item}, kernel.SystemClock{})
func NewOrder(items []LineItem, clock kernel.Clock) (Order, error) {
	if err := validateItems(items); err != nil {
		return Order{}, err
	}

	return Order{
		orderedAt: clock.Now(),
		items:     slices.Clone(items),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder rebuilds a placed order read back from storage.
func RestoreOrder(id int64, orderedAt time.Time, items []LineItem) (Order, error) {
	if err := validateItems(items); err != nil {
		return Order{}, err
	}
	if id <= 0 {
		return Order{}, &InvalidOrderError{Cause: errs.NewValueIsOutOfRangeError("order id", id, 1, "max int64")}
	}

	return Order{
		id:        id,
		orderedAt: orderedAt,
		items:     slices.Clone(items),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func validateItems(items []LineItem) error {
	if len(items) == 0 {
		return &InvalidOrderError{Cause: errs.NewValueIsRequiredError("line items")}
	}

	itemErrs := make([]error, 0)
	for i, item := range items {
		if err := item.Validate(); err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("line item %d: %w", i, err))
		}
	}
	if len(itemErrs) > 0 {
		return &InvalidOrderError{Cause: errs.NewValueIsInvalidErrorWithCause("line items", errors.Join(itemErrs...))}
	}
	if _, err := SumItems(items); err != nil {
		return &InvalidOrderError{Cause: err}
	}

	return nil
}

// AssignID returns a copy of the order carrying id. Only the order registry calls this.
func (o Order) AssignID(id int64) (Order, error) {
	if err := o.Validate(); err != nil {
		return Order{}, err
	}
	if o.id != 0 {
		return Order{}, ErrOrderIDAlreadyAssigned
	}
	if id <= 0 {
		return Order{}, errs.NewValueIsOutOfRangeError("order id", id, 1, "max int64")
	}

	o.id = id
	return o, nil
}

// Validate ensures the order was created through NewOrder or RestoreOrder.
func (o Order) Validate() error {
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the registry-assigned identifier, or 0 before placement.
func (o Order) ID() int64 {
	return o.id
}

// IsPlaced reports whether the order has an identifier.
func (o Order) IsPlaced() bool {
	return o.id > 0
}

// OrderedAt returns the creation timestamp.
func (o Order) OrderedAt() time.Time {
	return o.orderedAt
}

// Items returns a copy of the line items.
func (o Order) Items() []LineItem {
	return slices.Clone(o.items)
}

// Total sums the line item subtotals.
func (o Order) Total() kernel.Money {
	// NewOrder and RestoreOrder reject items whose total overflows.
	total, _ := SumItems(o.items)
	return total
}
