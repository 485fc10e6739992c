// Package guard lets value types detect that they were built by their constructor
// rather than declared as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in commands, queries and value objects. Only
// NewConstructorGuard produces a guard that validates, so a zero-value struct
// of the owning type is rejected.
//
// Example:
//
//	var ErrAdvanceOrderCommandIsNotConstructed = errors.New("AdvanceOrderCommand must be created via NewAdvanceOrderCommand")
//
//	type AdvanceOrderCommand struct {
//	    orderID int64
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c AdvanceOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. Otherwise it returns validationError,
// or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
