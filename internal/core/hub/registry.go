package hub

import (
	"math"
	"sync"

	"fulfilment/internal/core/domain/model/order"
)

type record struct {
	order order.Order
	state order.State
}

// Registry is the single source of truth for order identifiers and states.
//
// Identifiers start at 1 and grow by one per Insert. They are never reused,
// not even after Reset. Records are only ever added; Reset is the one way to
// empty the registry and is meant for process start-up.
type Registry struct {
	mu       sync.RWMutex
	records  map[int64]*record
	ids      []int64
	lastID   int64
	revision uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[int64]*record)}
}

// Insert assigns the next identifier to o and stores it as Ordered.
// It returns the placed order together with the board as it stood right after the insert.
// Running out of identifiers is fatal.
func (r *Registry) Insert(o order.Order) (order.Order, Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lastID == math.MaxInt64 {
		panic("hub: order identifier space exhausted")
	}

	placed, err := o.AssignID(r.lastID + 1)
	if err != nil {
		return order.Order{}, Snapshot{}, err
	}

	r.lastID = placed.ID()
	r.records[placed.ID()] = &record{order: placed, state: order.Ordered}
	r.ids = append(r.ids, placed.ID())
	r.revision++

	return placed, r.snapshotLocked(), nil
}

// Transition moves an order to target, which must be the immediate successor of
// its current state. The previous state is returned. Nothing changes on error.
func (r *Registry) Transition(orderID int64, target order.State) (order.State, Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[orderID]
	if !ok {
		return order.Unknown, Snapshot{}, &order.UnknownOrderError{OrderID: orderID}
	}
	if !rec.state.CanTransitionTo(target) {
		return order.Unknown, Snapshot{}, &order.InvalidTransitionError{OrderID: orderID, From: rec.state, To: target}
	}

	old := rec.state
	rec.state = target
	r.revision++

	return old, r.snapshotLocked(), nil
}

// Next moves an order to whatever state follows its current one. Reading the
// current state and writing the next happen under one lock, so two concurrent
// calls for the same order never both take the same step.
func (r *Registry) Next(orderID int64) (order.State, order.State, Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[orderID]
	if !ok {
		return order.Unknown, order.Unknown, Snapshot{}, &order.UnknownOrderError{OrderID: orderID}
	}
	next, err := rec.state.Next()
	if err != nil {
		return order.Unknown, order.Unknown, Snapshot{}, &order.InvalidTransitionError{OrderID: orderID, From: rec.state}
	}

	old := rec.state
	rec.state = next
	r.revision++

	return old, next, r.snapshotLocked(), nil
}

// Snapshot returns a consistent copy of the board.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Get returns an order and its current state.
func (r *Registry) Get(orderID int64) (order.Order, order.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[orderID]
	if !ok {
		return order.Order{}, order.Unknown, &order.UnknownOrderError{OrderID: orderID}
	}
	return rec.order, rec.state, nil
}

// All returns every order with its state, ascending by id.
func (r *Registry) All() []PlacedOrder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]PlacedOrder, 0, len(r.ids))
	for _, id := range r.ids {
		rec := r.records[id]
		out = append(out, PlacedOrder{Order: rec.order, State: rec.state})
	}
	return out
}

// Len returns the number of stored orders.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids)
}

// Reset empties the registry. The identifier counter and revision carry on.
func (r *Registry) Reset() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[int64]*record)
	r.ids = nil
	r.revision++

	return r.snapshotLocked()
}

// snapshotLocked relies on ids being appended in ascending order.
func (r *Registry) snapshotLocked() Snapshot {
	entries := make([]Entry, len(r.ids))
	for i, id := range r.ids {
		entries[i] = Entry{OrderID: id, State: r.records[id].state}
	}
	return Snapshot{Revision: r.revision, Entries: entries}
}

// PlacedOrder pairs an order with its current state.
type PlacedOrder struct {
	Order order.Order
	State order.State
}
