package events

import (
	"time"

	"github.com/google/uuid"
)

// CustomerAddedEvent is emitted when a bank registers a customer.
type CustomerAddedEvent struct {
	ID         uuid.UUID
	CustomerID int64
	Timestamp  time.Time
}

// CustomerRemovedEvent is emitted when a bank removes a customer.
type CustomerRemovedEvent struct {
	ID         uuid.UUID
	CustomerID int64
	Timestamp  time.Time
}

func (e CustomerAddedEvent) Type() string   { return EventTypeCustomerAdded.String() }
func (e CustomerRemovedEvent) Type() string { return EventTypeCustomerRemoved.String() }
