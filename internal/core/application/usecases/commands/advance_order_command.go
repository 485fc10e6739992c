package commands

import (
	"errors"
	"fmt"
	"math"

	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var (
	ErrAdvanceOrderCommandIsNotConstructed = errors.New(
		"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
	)
)

// AdvanceOrderCommand asks for an order to move to its next state.
// A picker sends it when starting work on an order and again once the order is collected.
//
// A command built with NewAdvanceOrderCommandFrom only succeeds while the order is
// still in the given state.
//
// Example:
//
//	cmd, _ := NewAdvanceOrderCommandFrom(orderID, order.Ordered)
//	state, err := handler.Handle(ctx, cmd) // PROGRESSING, or InvalidTransitionError if already claimed
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	from    order.State

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command moving a positive order id to
// whatever state follows its current one.
func NewAdvanceOrderCommand(orderID int64) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return cmd, nil
}

// NewAdvanceOrderCommandFrom creates a command that only applies while the order is in from.
// from must be Ordered or Progressing.
func NewAdvanceOrderCommandFrom(orderID int64, from order.State) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setFrom(from),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c AdvanceOrderCommand) OrderID() int64 {
	return c.orderID
}

// From returns the state the order must be in, or order.Unknown when any state will do.
func (c AdvanceOrderCommand) From() order.State {
	return c.from
}

func (c *AdvanceOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsOutOfRangeError("order id", orderID, 1, int64(math.MaxInt64))
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setFrom(from order.State) error {
	if err := from.Validate(); err != nil {
		return err
	}
	if from.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("from", fmt.Errorf("%s is terminal", from))
	}

	c.from = from
	return nil
}
