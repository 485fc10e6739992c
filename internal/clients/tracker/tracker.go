// Package tracker is the read-only order display: it shows every order on the
// board with its current state.
package tracker

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/hub"
)

// Title heads the rendered board.
const Title = "Order_ID,  State"

// Tracker keeps the latest board pushed by the hub. Register it with
// hub.Hub.Register; it never changes an order.
type Tracker struct {
	id     kernel.UUID
	logger *slog.Logger

	mu      sync.RWMutex
	board   hub.Snapshot
	updated chan struct{}
}

// New returns a tracker with an empty board.
func New(logger *slog.Logger) *Tracker {
	id := kernel.NewUUID()
	return &Tracker{
		id:      id,
		logger:  logger.With("component", "tracker", "tracker_id", id.Short()),
		updated: make(chan struct{}),
	}
}

// ID identifies the display.
func (t *Tracker) ID() kernel.UUID {
	return t.id
}

// OnSnapshot replaces the board.
func (t *Tracker) OnSnapshot(s hub.Snapshot) {
	t.mu.Lock()
	t.board = s
	close(t.updated)
	t.updated = make(chan struct{})
	t.mu.Unlock()

	t.logger.Debug("Board updated", "revision", s.Revision, "orders", s.Len())
}

// Updated returns a channel closed at the next board update.
func (t *Tracker) Updated() <-chan struct{} {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.updated
}

// Board returns a copy of the latest board.
func (t *Tracker) Board() hub.Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	board := t.board
	board.Entries = slices.Clone(board.Entries)
	return board
}

// Orders returns a copy of the board as order id to state.
func (t *Tracker) Orders() map[int64]order.State {
	return t.Board().Map()
}

// Render lists the board under Title, one order per line, ascending by id, as
// "<id>     <STATE>".
func (t *Tracker) Render() string {
	board := t.Board()

	var b strings.Builder
	b.WriteString(Title + "\n")
	for _, e := range board.Entries {
		fmt.Fprintf(&b, "%d%s%s\n", e.OrderID, strings.Repeat(" ", 5), e.State)
	}
	return b.String()
}
