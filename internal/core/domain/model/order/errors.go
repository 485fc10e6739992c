package order

import (
	"fmt"

	"fulfilment/internal/pkg/errs"
)

// InvalidOrderError is returned when an order cannot be built from the given
// line items. Cause holds the underlying validation error.
type InvalidOrderError struct {
	Cause error
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("invalid order: %v", e.Cause)
}

func (e *InvalidOrderError) Unwrap() error {
	return e.Cause
}

// UnknownOrderError is returned when an operation names an order id the registry does not hold.
type UnknownOrderError struct {
	OrderID int64
}

func (e *UnknownOrderError) Error() string {
	return fmt.Sprintf("unknown order %d", e.OrderID)
}

func (e *UnknownOrderError) Unwrap() error {
	return errs.NewObjectNotFoundError("order", e.OrderID)
}

// InvalidTransitionError is returned when To does not immediately follow From.
type InvalidTransitionError struct {
	OrderID int64
	From    State
	To      State
}

func (e *InvalidTransitionError) Error() string {
	if e.From.IsTerminal() {
		return fmt.Sprintf("order %d is already %s", e.OrderID, e.From)
	}
	return fmt.Sprintf("order %d cannot move from %s to %s", e.OrderID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return errs.ErrValueIsInvalid
}
