package common

import "errors"

// ErrInvalidArgument is the root of every out-of-domain input error: negative
// initial balances, negative rates or limits, non-positive amounts, blank
// required strings and absent required references. Specific errors wrap it,
// so callers can match either with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// Event is a domain event published on the event bus.
type Event interface {
	Type() string
}
