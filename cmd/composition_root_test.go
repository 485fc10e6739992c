package cmd_test

import (
	"log/slog"
	"testing"

	"fulfilment/cmd"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoot(t *testing.T, config cmd.Config) *cmd.CompositionRoot {
	t.Helper()
	root := cmd.NewCompositionRoot(config, nil, slog.New(slog.DiscardHandler))
	t.Cleanup(root.Close)
	return root
}

func TestCompositionRoot(t *testing.T) {
	t.Run("should share one hub between trolleys and trackers", func(t *testing.T) {
		root := newRoot(t, cmd.Config{})
		board, err := root.CreateTracker()
		require.NoError(t, err)

		trolley := root.CreateTrolley()
		item, err := order.NewLineItem("P1", "Widget", kernel.MustMoney(100), 1)
		require.NoError(t, err)
		require.NoError(t, trolley.Add(item))
		receipt, err := trolley.Checkout(t.Context())
		require.NoError(t, err)

		assert.Equal(t, int64(1), receipt.OrderID)
		assert.Eventually(t, func() bool {
			return board.Orders()[1] == order.Ordered
		}, waitFor, tick)
	})

	t.Run("should build no jobs for an in-memory run without pickers", func(t *testing.T) {
		root := newRoot(t, cmd.Config{})

		jm, err := root.CreateJobManager()

		require.NoError(t, err)
		assert.False(t, root.ArchiveEnabled())
		assert.Equal(t, 0, jm.Len())
	})

	t.Run("should register the simulated pickers with the hub", func(t *testing.T) {
		root := newRoot(t, cmd.Config{PickerCount: 2, PickerSchedule: cmd.DefaultPickerSchedule})

		jm, err := root.CreateJobManager()

		require.NoError(t, err)
		assert.Equal(t, 1, jm.Len())
		assert.Equal(t, 2, root.Hub().ObserverCount())
	})
}
