package order

import (
	"fmt"

	"fulfilment/internal/pkg/errs"
)

// State is the fulfilment stage of an order.
//
// State transitions:
//
//	Ordered ──> Progressing ──> Collected
//
// No other transition is valid: a state is never skipped and never reversed.
type State int

const (
	// Unknown is the zero value and is never stored for an order.
	Unknown State = iota

	// Ordered is the state of a freshly placed order waiting for a picker.
	Ordered

	// Progressing means a picker has claimed the order and is collecting the items.
	Progressing

	// Collected means the order has been handed over. Terminal.
	Collected
)

var stateNames = map[State]string{
	Unknown:     "UNKNOWN",
	Ordered:     "ORDERED",
	Progressing: "PROGRESSING",
	Collected:   "COLLECTED",
}

// String returns the upper-case state name, e.g. "PROGRESSING".
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return stateNames[Unknown]
}

// ParseState is the inverse of String. Unknown is not accepted.
func ParseState(name string) (State, error) {
	for s, n := range stateNames {
		if n == name && s != Unknown {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid state", name))
}

// Validate accepts Ordered, Progressing and Collected.
func (s State) Validate() error {
	if s < Ordered || s > Collected {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// IsTerminal reports whether no further transition exists.
func (s State) IsTerminal() bool {
	return s == Collected
}

// Next returns the single state that may follow s.
// It fails for Collected and for invalid states.
func (s State) Next() (State, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"state",
			fmt.Errorf("%s is terminal", s),
		)
	}
	return s + 1, nil
}

// CanTransitionTo reports whether target is the immediate successor of s.
func (s State) CanTransitionTo(target State) bool {
	next, err := s.Next()
	return err == nil && next == target
}
