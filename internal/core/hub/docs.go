// Package hub is the order lifecycle hub: the component every client of the
// shop shares to place orders, move them through their states and watch the
// whole order board change.
//
// The package includes:
//   - Registry: mints order identifiers and stores each order with its current state
//   - ObserverSet: the live observers, each behind its own Mailbox
//   - Hub: the façade composing both, broadcasting a Snapshot after every mutation
//
// # Locking
//
// Registry and ObserverSet each own a mutex. A mutation takes the registry lock,
// changes state and copies a Snapshot, then releases it. The broadcast copies the
// observer list under the set's read lock and offers the snapshot to every mailbox
// with no lock held. Offering never blocks: a mailbox keeps only the newest
// snapshot and a goroutine per observer calls OnSnapshot. Observers may therefore
// call back into the hub from OnSnapshot, and a slow observer never delays a
// caller of NewOrder or Advance.
//
// # Ordering
//
// Every mutation bumps the registry revision. A mailbox drops snapshots whose
// revision is not newer than the last one it accepted, so an observer never sees
// an older board after a newer one. Intermediate snapshots may be skipped when
// mutations arrive faster than the observer consumes them.
//
// # Usage
//
//	h := hub.New(hub.WithLogger(logger))
//	h.Initialize()
//
//	_ = h.Register(trackerDisplay)
//	placed, err := h.NewOrder(items)
//	next, err := h.Advance(placed.ID())
//
// Advance always takes the next step. Transition takes it only when the target
// directly follows the current state, which lets a picker claim an ORDERED order
// without risking a second step if someone else got there first:
//
//	err = h.Transition(placed.ID(), order.Progressing)
package hub
