// Package customer is the shopper's side of the shop: a trolley that is filled,
// organised and checked out into an order, and the receipt that comes back.
package customer

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"

	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/errs"
)

var ErrTrolleyIsEmpty = errors.New("trolley is empty")

// OrderPlacer submits a checkout. commands.PlaceOrderCommandHandler implements it.
type OrderPlacer interface {
	Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (order.Order, error)
}

// Trolley holds the line items a customer intends to buy.
// It is kept organised: one line per product id, sorted by product id.
// A Trolley is safe for concurrent use.
type Trolley struct {
	id     kernel.UUID
	placer OrderPlacer
	logger *slog.Logger

	mu    sync.Mutex
	items []order.LineItem
}

// NewTrolley returns an empty trolley that checks out through placer.
func NewTrolley(placer OrderPlacer, logger *slog.Logger) *Trolley {
	id := kernel.NewUUID()
	return &Trolley{
		id:     id,
		placer: placer,
		logger: logger.With("component", "trolley", "trolley_id", id.Short()),
	}
}

// ID identifies the customer session owning the trolley.
func (t *Trolley) ID() kernel.UUID {
	return t.id
}

// Add puts item in the trolley. Adding a product already present raises its quantity.
func (t *Trolley) Add(item order.LineItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	items := organise(append(slices.Clone(t.items), item))
	if err := checkTotal(items); err != nil {
		return err
	}
	t.items = items
	return nil
}

// Remove drops the line for productID. It reports whether the product was in the trolley.
func (t *Trolley) Remove(productID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	before := len(t.items)
	t.items = slices.DeleteFunc(t.items, func(li order.LineItem) bool {
		return li.ProductID == productID
	})
	return len(t.items) != before
}

// UpdateQuantity sets the quantity of a product already in the trolley.
func (t *Trolley) UpdateQuantity(productID string, quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	i := slices.IndexFunc(t.items, func(li order.LineItem) bool {
		return li.ProductID == productID
	})
	if i < 0 {
		return errs.NewObjectNotFoundError("product", productID)
	}

	items := slices.Clone(t.items)
	items[i].Quantity = quantity
	if err := checkTotal(items); err != nil {
		return err
	}
	t.items = items
	return nil
}

// Items returns a copy of the trolley contents.
func (t *Trolley) Items() []order.LineItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.items)
}

// Len returns the number of distinct products in the trolley.
func (t *Trolley) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items)
}

// Total is the sum of every line's subtotal.
func (t *Trolley) Total() kernel.Money {
	t.mu.Lock()
	defer t.mu.Unlock()
	return sumItems(t.items)
}

// Clear empties the trolley.
func (t *Trolley) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = nil
}

// Checkout places an order for the current contents and empties the trolley.
// The trolley is left untouched when placing the order fails.
func (t *Trolley) Checkout(ctx context.Context) (Receipt, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.items) == 0 {
		return Receipt{}, ErrTrolleyIsEmpty
	}

	cmd, err := commands.NewPlaceOrderCommand(t.items)
	if err != nil {
		return Receipt{}, err
	}

	placed, err := t.placer.Handle(ctx, cmd)
	if err != nil {
		t.logger.WarnContext(ctx, "Checkout failed", "error", err)
		return Receipt{}, fmt.Errorf("checkout: %w", err)
	}

	t.items = nil
	t.logger.InfoContext(ctx, "Checked out", "order_id", placed.ID())

	return NewReceipt(placed), nil
}

// String lists the trolley the same way a receipt lists an order.
func (t *Trolley) String() string {
	items := t.Items()
	if len(items) == 0 {
		return "Your trolley is empty"
	}

	var b strings.Builder
	writeItems(&b, items)
	return b.String()
}

// organise merges lines sharing a product id by summing quantities, then sorts by product id.
// The first line seen for a product keeps its description and price.
func organise(items []order.LineItem) []order.LineItem {
	merged := make([]order.LineItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}

	slices.SortFunc(merged, func(a, b order.LineItem) int {
		return cmp.Compare(a.ProductID, b.ProductID)
	})
	return merged
}

// checkTotal rejects contents whose lines or total would not fit in Money.
func checkTotal(items []order.LineItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	_, err := order.SumItems(items)
	return err
}

// sumItems totals items already accepted by checkTotal.
func sumItems(items []order.LineItem) kernel.Money {
	total, _ := order.SumItems(items)
	return total
}
