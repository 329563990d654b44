// Package sequence provides explicitly owned, monotonically increasing
// identifier generators.
package sequence

import "sync/atomic"

const (
	// FirstAccountNumber is the first account number handed out.
	FirstAccountNumber int64 = 1000
	// FirstCustomerID is the first customer id handed out.
	FirstCustomerID int64 = 1
)

// Process-wide generators used when a caller does not inject its own.
// Sharing them across banks keeps identifiers unique for the process lifetime.
var (
	AccountNumbers = New(FirstAccountNumber)
	CustomerIDs    = New(FirstCustomerID)
)

// Generator hands out identifiers. Implementations must be safe for concurrent use
// and never return the same value twice.
type Generator interface {
	Next() int64
}

// Sequence is an atomic counter. The zero value starts at 0.
type Sequence struct {
	next atomic.Int64
}

// New creates a Sequence whose first Next call returns start.
func New(start int64) *Sequence {
	s := &Sequence{}
	s.next.Store(start)
	return s
}

// Next returns the current value and advances the sequence.
func (s *Sequence) Next() int64 {
	return s.next.Add(1) - 1
}

// Peek returns the value the next call to Next will return, without consuming it.
func (s *Sequence) Peek() int64 {
	return s.next.Load()
}

var _ Generator = (*Sequence)(nil)
