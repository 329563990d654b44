package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	// Account events
	EventTypeAccountOpened      EventType = "Account.Opened"
	EventTypeDeposited          EventType = "Account.Deposited"
	EventTypeWithdrawn          EventType = "Account.Withdrawn"
	EventTypeWithdrawalDeclined EventType = "Account.WithdrawalDeclined"

	// Transfer events
	EventTypeTransferCompleted EventType = "Transfer.Completed"
	EventTypeTransferDeclined  EventType = "Transfer.Declined"

	// Customer events
	EventTypeCustomerAdded   EventType = "Customer.Added"
	EventTypeCustomerRemoved EventType = "Customer.Removed"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}

// All returns every event type, in declaration order.
func All() []EventType {
	return []EventType{
		EventTypeAccountOpened,
		EventTypeDeposited,
		EventTypeWithdrawn,
		EventTypeWithdrawalDeclined,
		EventTypeTransferCompleted,
		EventTypeTransferDeclined,
		EventTypeCustomerAdded,
		EventTypeCustomerRemoved,
	}
}
