package commands_test

import (
	"testing"

	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAdvanceOrderCommand(t *testing.T) {
	t.Run("should accept a positive id", func(t *testing.T) {
		cmd, err := commands.NewAdvanceOrderCommand(4)
		require.NoError(t, err)
		assert.Equal(t, int64(4), cmd.OrderID())
		assert.NoError(t, cmd.Validate())
	})

	t.Run("should reject zero and negative ids", func(t *testing.T) {
		for _, id := range []int64{0, -3} {
			_, err := commands.NewAdvanceOrderCommand(id)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})
}

func TestNewAdvanceOrderCommandFrom(t *testing.T) {
	t.Run("should keep the expected state", func(t *testing.T) {
		cmd, err := commands.NewAdvanceOrderCommandFrom(2, order.Progressing)
		require.NoError(t, err)
		assert.Equal(t, order.Progressing, cmd.From())
	})

	t.Run("should reject a terminal or unknown state together with a bad id", func(t *testing.T) {
		_, err := commands.NewAdvanceOrderCommandFrom(0, order.Collected)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = commands.NewAdvanceOrderCommandFrom(1, order.Unknown)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestAdvanceOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should only move the order from the expected state", func(t *testing.T) {
		cmd, _ := commands.NewAdvanceOrderCommandFrom(1, order.Ordered)
		h := new(MockOrderHub)
		h.On("Transition", int64(1), order.Progressing).Return(nil).Once()

		state, err := commands.NewAdvanceOrderCommandHandler(h).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Progressing, state)
		h.AssertExpectations(t)
		h.AssertNotCalled(t, "Advance", mock.Anything)
	})

	t.Run("should report an order that already moved on", func(t *testing.T) {
		cmd, _ := commands.NewAdvanceOrderCommandFrom(1, order.Ordered)
		h := new(MockOrderHub)
		h.On("Transition", int64(1), order.Progressing).
			Return(&order.InvalidTransitionError{OrderID: 1, From: order.Progressing, To: order.Progressing}).
			Once()

		_, err := commands.NewAdvanceOrderCommandHandler(h).Handle(t.Context(), cmd)

		var transitionErr *order.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
	})


	t.Run("should return the new state", func(t *testing.T) {
		cmd, _ := commands.NewAdvanceOrderCommand(1)
		h := new(MockOrderHub)
		h.On("Advance", int64(1)).Return(order.Progressing, nil).Once()

		state, err := commands.NewAdvanceOrderCommandHandler(h).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Progressing, state)
		h.AssertExpectations(t)
	})

	t.Run("should pass hub errors through", func(t *testing.T) {
		cmd, _ := commands.NewAdvanceOrderCommand(1)
		h := new(MockOrderHub)
		h.On("Advance", int64(1)).
			Return(order.Unknown, &order.InvalidTransitionError{OrderID: 1, From: order.Collected}).
			Once()

		_, err := commands.NewAdvanceOrderCommandHandler(h).Handle(t.Context(), cmd)

		var transitionErr *order.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.Collected, transitionErr.From)
	})

	t.Run("should refuse a command not built by its constructor", func(t *testing.T) {
		h := new(MockOrderHub)

		_, err := commands.NewAdvanceOrderCommandHandler(h).Handle(t.Context(), commands.AdvanceOrderCommand{})

		require.ErrorIs(t, err, commands.ErrAdvanceOrderCommandIsNotConstructed)
		h.AssertNotCalled(t, "Advance", mock.Anything)
	})
}
