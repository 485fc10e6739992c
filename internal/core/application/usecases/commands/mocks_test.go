package commands_test

import (
	"context"
	"testing"

	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/hub"
	"fulfilment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderArchive struct{ mock.Mock }

func (m *MockOrderArchive) Save(ctx context.Context, o order.Order, state order.State) error {
	args := m.Called(ctx, o, state)
	return args.Error(0)
}

func (m *MockOrderArchive) Get(ctx context.Context, orderID int64) (order.Order, order.State, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(order.Order), args.Get(1).(order.State), args.Error(2)
}

func (m *MockOrderArchive) States(ctx context.Context) (map[int64]order.State, error) {
	args := m.Called(ctx)
	states, _ := args.Get(0).(map[int64]order.State)
	return states, args.Error(1)
}

type MockArchiveUoW struct{ mock.Mock }

func (m *MockArchiveUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockArchiveUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockArchiveUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockArchiveUoW) OrderArchive() ports.OrderArchive {
	args := m.Called()
	return args.Get(0).(ports.OrderArchive)
}

type MockArchiveUoWFactory struct{ mock.Mock }

func (m *MockArchiveUoWFactory) Create() commands.ArchiveUoW {
	args := m.Called()
	return args.Get(0).(commands.ArchiveUoW)
}

type MockOrderHub struct{ mock.Mock }

func (m *MockOrderHub) NewOrder(items []order.LineItem) (order.Order, error) {
	args := m.Called(items)
	return args.Get(0).(order.Order), args.Error(1)
}

func (m *MockOrderHub) Advance(orderID int64) (order.State, error) {
	args := m.Called(orderID)
	return args.Get(0).(order.State), args.Error(1)
}

func (m *MockOrderHub) Transition(orderID int64, target order.State) error {
	args := m.Called(orderID, target)
	return args.Error(0)
}

func (m *MockOrderHub) Orders() []hub.PlacedOrder {
	args := m.Called()
	return args.Get(0).([]hub.PlacedOrder)
}

func lineItems(t *testing.T) []order.LineItem {
	t.Helper()
	item, err := order.NewLineItem("P1", "Widget", kernel.MustMoney(250), 3)
	require.NoError(t, err)
	return []order.LineItem{item}
}

func placedOrder(t *testing.T, id int64) order.Order {
	t.Helper()
	o, err := order.NewOrder(lineItems(t), kernel.SystemClock{})
	require.NoError(t, err)
	placed, err := o.AssignID(id)
	require.NoError(t, err)
	return placed
}
