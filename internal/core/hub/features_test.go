package hub_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/hub"

	"github.com/cucumber/godog"
)

type lifecycleContext struct {
	hub     *hub.Hub
	placed  order.Order
	state   order.State
	err     error
	tracker *recorder
}

func (c *lifecycleContext) reset() {
	if c.hub != nil {
		c.hub.Close()
	}
	*c = lifecycleContext{}
}

func (c *lifecycleContext) anInitializedOrderHub() error {
	c.hub = hub.New()
	c.hub.Initialize()
	return nil
}

func (c *lifecycleContext) aCustomerOrders(qty int, productID, description, price string) error {
	unitPrice, err := kernel.ParseMoney(price)
	if err != nil {
		return err
	}
	item, err := order.NewLineItem(productID, description, unitPrice, qty)
	if err != nil {
		return err
	}
	c.placed, c.err = c.hub.NewOrder([]order.LineItem{item})
	return c.err
}

func (c *lifecycleContext) twoCustomersCheckOutAtTheSameTime() error {
	item, err := order.NewLineItem("P1", "Widget", kernel.MustMoney(250), 1)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.hub.NewOrder([]order.LineItem{item})
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *lifecycleContext) aPickerAdvancesOrder(orderID int64) error {
	c.state, c.err = c.hub.Advance(orderID)
	return nil
}

func (c *lifecycleContext) theOrderIsGivenID(id int64) error {
	if c.placed.ID() != id {
		return fmt.Errorf("expected order id %d, got %d", id, c.placed.ID())
	}
	return nil
}

func (c *lifecycleContext) theBoardShowsOrderAs(orderID int64, want string) error {
	got, ok := c.hub.Snapshot().State(orderID)
	if !ok {
		return fmt.Errorf("order %d is not on the board", orderID)
	}
	if got.String() != want {
		return fmt.Errorf("expected order %d to be %s, got %s", orderID, want, got)
	}
	return nil
}

func (c *lifecycleContext) theNewStateIs(want string) error {
	if c.err != nil {
		return fmt.Errorf("expected advance to succeed, got %w", c.err)
	}
	if c.state.String() != want {
		return fmt.Errorf("expected %s, got %s", want, c.state)
	}
	return nil
}

func (c *lifecycleContext) theAdvanceFailsBecauseTheOrderIsAlreadyCollected() error {
	var transitionErr *order.InvalidTransitionError
	if !errors.As(c.err, &transitionErr) {
		return fmt.Errorf("expected InvalidTransitionError, got %v", c.err)
	}
	if transitionErr.From != order.Collected {
		return fmt.Errorf("expected the order to be COLLECTED, got %s", transitionErr.From)
	}
	return nil
}

func (c *lifecycleContext) theAdvanceFailsBecauseTheOrderIsUnknown() error {
	var unknown *order.UnknownOrderError
	if !errors.As(c.err, &unknown) {
		return fmt.Errorf("expected UnknownOrderError, got %v", c.err)
	}
	return nil
}

func (c *lifecycleContext) theBoardHasOrdersWithDistinctAscendingIDs(n int) error {
	s := c.hub.Snapshot()
	if s.Len() != n {
		return fmt.Errorf("expected %d orders, got %d", n, s.Len())
	}
	for i := 1; i < len(s.Entries); i++ {
		if s.Entries[i-1].OrderID >= s.Entries[i].OrderID {
			return fmt.Errorf("ids out of order: %v", s.Entries)
		}
	}
	return nil
}

func (c *lifecycleContext) aTrackerRegisters() error {
	c.tracker = &recorder{}
	return c.hub.Register(c.tracker)
}

func (c *lifecycleContext) theTrackerUnregisters() error {
	c.hub.Unregister(c.tracker)
	return nil
}

func (c *lifecycleContext) theTrackerShowsOrderAs(orderID int64, want string) error {
	deadline := time.Now().Add(waitFor)
	for time.Now().Before(deadline) {
		if s, ok := c.tracker.last(); ok {
			if got, ok := s.State(orderID); ok && got.String() == want {
				return nil
			}
		}
		time.Sleep(tick)
	}
	return fmt.Errorf("tracker never showed order %d as %s", orderID, want)
}

func (c *lifecycleContext) theHubHasObservers(n int) error {
	if got := c.hub.ObserverCount(); got != n {
		return fmt.Errorf("expected %d observers, got %d", n, got)
	}
	return nil
}

func initializeLifecycleScenario(ctx *godog.ScenarioContext) {
	c := &lifecycleContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	ctx.Step(`^an initialized order hub$`, c.anInitializedOrderHub)
	ctx.Step(`^a customer orders (\d+) of "([^"]*)" "([^"]*)" at (\d+\.\d{2})$`, c.aCustomerOrders)
	ctx.Step(`^two customers check out at the same time$`, c.twoCustomersCheckOutAtTheSameTime)
	ctx.Step(`^a picker advances order (\d+)$`, c.aPickerAdvancesOrder)
	ctx.Step(`^a tracker registers$`, c.aTrackerRegisters)
	ctx.Step(`^the tracker unregisters$`, c.theTrackerUnregisters)

	ctx.Step(`^the order is given id (\d+)$`, c.theOrderIsGivenID)
	ctx.Step(`^the board shows order (\d+) as ([A-Z]+)$`, c.theBoardShowsOrderAs)
	ctx.Step(`^the new state is ([A-Z]+)$`, c.theNewStateIs)
	ctx.Step(`^the advance fails because the order is already collected$`, c.theAdvanceFailsBecauseTheOrderIsAlreadyCollected)
	ctx.Step(`^the advance fails because the order is unknown$`, c.theAdvanceFailsBecauseTheOrderIsUnknown)
	ctx.Step(`^the board has (\d+) orders with distinct ascending ids$`, c.theBoardHasOrdersWithDistinctAscendingIDs)
	ctx.Step(`^the tracker shows order (\d+) as ([A-Z]+)$`, c.theTrackerShowsOrderAs)
	ctx.Step(`^the hub has (\d+) observers$`, c.theHubHasObservers)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeLifecycleScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
