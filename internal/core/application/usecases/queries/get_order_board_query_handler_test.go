package queries_test

import (
	"context"
	"testing"

	"fulfilment/internal/core/application/usecases/queries"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/hub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubWithOrders(t *testing.T, n int) *hub.Hub {
	t.Helper()
	h := hub.New()
	h.Initialize()
	t.Cleanup(h.Close)

	item, err := order.NewLineItem("P1", "Widget", kernel.MustMoney(250), 3)
	require.NoError(t, err)
	for range n {
		_, err = h.NewOrder([]order.LineItem{item})
		require.NoError(t, err)
	}
	return h
}

func TestGetOrderBoardQueryHandler_Handle(t *testing.T) {
	t.Run("should list every order ascending by id", func(t *testing.T) {
		h := newHubWithOrders(t, 3)
		_, err := h.Advance(2)
		require.NoError(t, err)

		board, err := queries.NewGetOrderBoardQueryHandler(h).Handle(t.Context(), queries.NewGetOrderBoardQuery())

		require.NoError(t, err)
		assert.Equal(t, []queries.OrderBoardRow{
			{ID: 1, State: order.Ordered},
			{ID: 2, State: order.Progressing},
			{ID: 3, State: order.Ordered},
		}, board.Orders)
		assert.Equal(t, h.Snapshot().Revision, board.Revision)
	})

	t.Run("should return an empty board", func(t *testing.T) {
		board, err := queries.NewGetOrderBoardQueryHandler(newHubWithOrders(t, 0)).
			Handle(t.Context(), queries.NewGetOrderBoardQuery())

		require.NoError(t, err)
		assert.NotNil(t, board.Orders)
		assert.Empty(t, board.Orders)
	})

	t.Run("should refuse a query not built by its constructor", func(t *testing.T) {
		_, err := queries.NewGetOrderBoardQueryHandler(newHubWithOrders(t, 0)).
			Handle(t.Context(), queries.GetOrderBoardQuery{})

		require.ErrorIs(t, err, queries.ErrGetOrderBoardQueryIsNotConstructed)
	})

	t.Run("should stop on a cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := queries.NewGetOrderBoardQueryHandler(newHubWithOrders(t, 1)).
			Handle(ctx, queries.NewGetOrderBoardQuery())

		require.ErrorIs(t, err, context.Canceled)
	})
}
