// Package kernel provides the small value types shared across the fulfilment domain.
//
// The package includes:
//   - UUID: identity for client sessions (picker stations, tracker displays)
//   - Money: a non-negative amount held in minor currency units
//   - Clock: the time source orders are stamped with
//
// All values are immutable and safe for concurrent use.
package kernel
