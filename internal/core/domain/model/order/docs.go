// Package order provides the value types of the order lifecycle: the immutable
// Order record, its LineItems, and the State machine an order moves through.
//
// The package includes:
//   - Order: one completed checkout with its identifier, timestamp and line items
//   - LineItem: a product snapshot copied from the customer's trolley
//   - State: the fulfilment stage, Ordered -> Progressing -> Collected
//   - InvalidOrderError, UnknownOrderError, InvalidTransitionError: the caller error kinds
//
// Key business rules:
//   - An order needs at least one line item
//   - Identifiers are assigned by the order registry, never by the order itself
//   - States only ever move forward, one step at a time; Collected is terminal
package order
