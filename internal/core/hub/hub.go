package hub

import (
	"log/slog"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
)

// Hub is shared by every client of the shop. It owns the order registry and the
// set of observers, and pushes a fresh Snapshot to the observers after each change.
type Hub struct {
	registry  *Registry
	observers *ObserverSet
	clock     kernel.Clock
	logger    *slog.Logger
}

// Option configures a Hub.
type Option func(*Hub)

// WithClock sets the time source used to stamp new orders.
func WithClock(clock kernel.Clock) Option {
	return func(h *Hub) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// WithLogger sets the hub's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New returns an empty hub with no observers.
func New(opts ...Option) *Hub {
	h := &Hub{
		registry: NewRegistry(),
		clock:    kernel.SystemClock{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("component", "OrderHub")
	h.observers = NewObserverSet(h.logger)
	return h
}

// Initialize empties the order set. It is meant to be called once at process
// start, before any client registers. Identifiers handed out afterwards continue
// from the last one issued.
func (h *Hub) Initialize() {
	snapshot := h.registry.Reset()
	h.logger.Info("Order hub initialized", "revision", snapshot.Revision)
	h.broadcast(snapshot)
}

// NewOrder places an order for items. The order is stored as Ordered before any
// observer hears about it. The returned order carries its identifier.
func (h *Hub) NewOrder(items []order.LineItem) (order.Order, error) {
	o, err := order.NewOrder(items, h.clock)
	if err != nil {
		return order.Order{}, err
	}

	placed, snapshot, err := h.registry.Insert(o)
	if err != nil {
		return order.Order{}, err
	}

	h.logger.Info("Order placed",
		"order_id", placed.ID(),
		"items", len(placed.Items()),
		"total", placed.Total().String(),
	)
	h.broadcast(snapshot)

	return placed, nil
}

// Advance moves an order to the state after its current one and returns it.
// Ordered becomes Progressing and Progressing becomes Collected. Collected orders
// cannot advance.
func (h *Hub) Advance(orderID int64) (order.State, error) {
	old, next, snapshot, err := h.registry.Next(orderID)
	if err != nil {
		h.logger.Debug("Order advance rejected", "order_id", orderID, "error", err)
		return order.Unknown, err
	}

	h.logger.Info("Order advanced", "order_id", orderID, "from", old.String(), "to", next.String())
	h.broadcast(snapshot)

	return next, nil
}

// Transition moves an order to target, which must directly follow its current
// state. Pickers use it to claim an order only while it is still ORDERED, so a
// stale view of the board cannot push an order past the intended step.
func (h *Hub) Transition(orderID int64, target order.State) error {
	old, snapshot, err := h.registry.Transition(orderID, target)
	if err != nil {
		h.logger.Debug("Order transition rejected", "order_id", orderID, "target", target.String(), "error", err)
		return err
	}

	h.logger.Info("Order advanced", "order_id", orderID, "from", old.String(), "to", target.String())
	h.broadcast(snapshot)

	return nil
}

// Register adds o to the observers. A newly added observer is sent the current
// board straight away; registering a handle that is already present does nothing.
func (h *Hub) Register(o Observer) error {
	box, added, err := h.observers.Add(o)
	if err != nil {
		return err
	}
	if !added {
		return nil
	}

	// Taken after Add so no mutation can fall between the snapshot and the first broadcast.
	snapshot := h.registry.Snapshot()
	box.Offer(snapshot)

	h.logger.Debug("Observer registered", "observers", h.observers.Len(), "revision", snapshot.Revision)
	return nil
}

// Unregister removes o. Unknown handles are ignored.
func (h *Hub) Unregister(o Observer) {
	if h.observers.Remove(o) {
		h.logger.Debug("Observer unregistered", "observers", h.observers.Len())
	}
}

// Snapshot returns the current board.
func (h *Hub) Snapshot() Snapshot {
	return h.registry.Snapshot()
}

// Order returns a placed order with its current state.
func (h *Hub) Order(orderID int64) (order.Order, order.State, error) {
	return h.registry.Get(orderID)
}

// Orders returns every placed order with its current state, ascending by id.
func (h *Hub) Orders() []PlacedOrder {
	return h.registry.All()
}

// ObserverCount returns the number of registered observers.
func (h *Hub) ObserverCount() int {
	return h.observers.Len()
}

// Close drops every observer and stops their delivery goroutines. Orders are kept.
func (h *Hub) Close() {
	h.observers.Clear()
	h.logger.Info("Order hub closed")
}

func (h *Hub) broadcast(snapshot Snapshot) {
	h.observers.ForEach(func(box *Mailbox) {
		box.Offer(snapshot)
	})
}
