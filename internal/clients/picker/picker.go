// Package picker is the warehouse side of the shop. A picker watches the board
// for ORDERED orders, claims one by moving it to PROGRESSING and marks it
// COLLECTED once handed over.
package picker

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/hub"
)

var (
	ErrNoOrdersWaiting     = errors.New("no orders waiting to be picked")
	ErrOrderAlreadyClaimed = errors.New("picker is already working on an order")
	ErrNoOrderClaimed      = errors.New("picker has no order to collect")
)

// OrderAdvancer moves an order to its next state. commands.AdvanceOrderCommandHandler implements it.
type OrderAdvancer interface {
	Handle(ctx context.Context, cmd commands.AdvanceOrderCommand) (order.State, error)
}

// Picker works one order at a time. Several pickers may share a hub; when two
// race for the same order the hub lets exactly one of them claim it.
type Picker struct {
	id       kernel.UUID
	advancer OrderAdvancer
	logger   *slog.Logger

	// work serialises TakeNext and Collected; mu guards the fields below.
	work    sync.Mutex
	mu      sync.Mutex
	waiting []int64
	claimed int64
}

// New returns an idle picker advancing orders through advancer.
func New(advancer OrderAdvancer, logger *slog.Logger) *Picker {
	id := kernel.NewUUID()
	return &Picker{
		id:       id,
		advancer: advancer,
		logger:   logger.With("component", "picker", "picker_id", id.Short()),
	}
}

// ID identifies the picking station.
func (p *Picker) ID() kernel.UUID {
	return p.id
}

// OnSnapshot refreshes the queue of ORDERED orders. A claimed order that left
// the board or was collected elsewhere is released.
func (p *Picker) OnSnapshot(s hub.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.waiting = s.InState(order.Ordered)

	if p.claimed == 0 {
		return
	}
	if state, ok := s.State(p.claimed); !ok || state == order.Collected {
		p.logger.Info("Released claimed order", "order_id", p.claimed)
		p.claimed = 0
	}
}

// Waiting returns the ORDERED order ids this picker last saw, oldest first.
func (p *Picker) Waiting() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.waiting)
}

// Claimed returns the order this picker is working on.
func (p *Picker) Claimed() (int64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.claimed, p.claimed != 0
}

// TakeNext claims the oldest waiting order and moves it to PROGRESSING.
// Orders another picker claimed first are skipped.
func (p *Picker) TakeNext(ctx context.Context) (int64, error) {
	p.work.Lock()
	defer p.work.Unlock()

	if _, busy := p.Claimed(); busy {
		return 0, ErrOrderAlreadyClaimed
	}

	for _, orderID := range p.Waiting() {
		cmd, err := commands.NewAdvanceOrderCommandFrom(orderID, order.Ordered)
		if err != nil {
			return 0, err
		}

		_, err = p.advancer.Handle(ctx, cmd)
		if err != nil {
			if isLostRace(err) {
				continue
			}
			return 0, err
		}

		p.mu.Lock()
		p.claimed = orderID
		p.waiting = slices.DeleteFunc(p.waiting, func(id int64) bool { return id == orderID })
		p.mu.Unlock()

		p.logger.InfoContext(ctx, "Claimed order", "order_id", orderID)
		return orderID, nil
	}

	return 0, ErrNoOrdersWaiting
}

// Collected marks the claimed order COLLECTED and frees the picker.
func (p *Picker) Collected(ctx context.Context) (int64, error) {
	p.work.Lock()
	defer p.work.Unlock()

	orderID, busy := p.Claimed()
	if !busy {
		return 0, ErrNoOrderClaimed
	}

	cmd, err := commands.NewAdvanceOrderCommandFrom(orderID, order.Progressing)
	if err != nil {
		return 0, err
	}

	if _, err = p.advancer.Handle(ctx, cmd); err != nil {
		if isLostRace(err) {
			p.release(orderID)
		}
		return 0, err
	}

	p.release(orderID)
	p.logger.InfoContext(ctx, "Collected order", "order_id", orderID)
	return orderID, nil
}

func (p *Picker) release(orderID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.claimed == orderID {
		p.claimed = 0
	}
}

// isLostRace reports errors meaning the order moved or vanished under us.
func isLostRace(err error) bool {
	var transitionErr *order.InvalidTransitionError
	var unknownErr *order.UnknownOrderError
	return errors.As(err, &transitionErr) || errors.As(err, &unknownErr)
}
