package hub_test

import (
	"sync"
	"testing"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/hub"

	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func widget(t *testing.T, qty int) []order.LineItem {
	t.Helper()
	item, err := order.NewLineItem("P1", "Widget", kernel.MustMoney(250), qty)
	require.NoError(t, err)
	return []order.LineItem{item}
}

func unplaced(t *testing.T) order.Order {
	t.Helper()
	o, err := order.NewOrder(widget(t, 1), kernel.SystemClock{})
	require.NoError(t, err)
	return o
}

// recorder keeps every snapshot it is handed.
type recorder struct {
	mu        sync.Mutex
	snapshots []hub.Snapshot
	onReceive func(hub.Snapshot)
}

func (r *recorder) OnSnapshot(s hub.Snapshot) {
	r.mu.Lock()
	r.snapshots = append(r.snapshots, s)
	hook := r.onReceive
	r.mu.Unlock()

	if hook != nil {
		hook(s)
	}
}

func (r *recorder) all() []hub.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]hub.Snapshot, len(r.snapshots))
	copy(out, r.snapshots)
	return out
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshots)
}

func (r *recorder) last() (hub.Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshots) == 0 {
		return hub.Snapshot{}, false
	}
	return r.snapshots[len(r.snapshots)-1], true
}

// seen reports whether the latest snapshot matches the given board.
func (r *recorder) seen(want map[int64]order.State) func() bool {
	return func() bool {
		s, ok := r.last()
		if !ok || s.Len() != len(want) {
			return false
		}
		for id, state := range want {
			if got, ok := s.State(id); !ok || got != state {
				return false
			}
		}
		return true
	}
}

type valueObserver struct {
	seen []int
}

func (valueObserver) OnSnapshot(hub.Snapshot) {}
