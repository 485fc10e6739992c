package hub

import (
	"sort"

	"fulfilment/internal/core/domain/model/order"
)

// Entry is one row of the order board.
type Entry struct {
	OrderID int64
	State   order.State
}

// Snapshot is a point-in-time copy of the order board, sorted by ascending OrderID.
// Revision increases with every registry mutation and is never reset.
type Snapshot struct {
	Revision uint64
	Entries  []Entry
}

// Len returns the number of orders on the board.
func (s Snapshot) Len() int {
	return len(s.Entries)
}

// State looks up the state of one order.
func (s Snapshot) State(orderID int64) (order.State, bool) {
	i := sort.Search(len(s.Entries), func(i int) bool {
		return s.Entries[i].OrderID >= orderID
	})
	if i < len(s.Entries) && s.Entries[i].OrderID == orderID {
		return s.Entries[i].State, true
	}
	return order.Unknown, false
}

// Map returns the board as a map.
func (s Snapshot) Map() map[int64]order.State {
	m := make(map[int64]order.State, len(s.Entries))
	for _, e := range s.Entries {
		m[e.OrderID] = e.State
	}
	return m
}

// InState returns the ids of orders currently in state, ascending.
func (s Snapshot) InState(state order.State) []int64 {
	ids := make([]int64, 0)
	for _, e := range s.Entries {
		if e.State == state {
			ids = append(ids, e.OrderID)
		}
	}
	return ids
}
