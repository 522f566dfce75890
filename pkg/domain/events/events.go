// Package events holds the domain events published on the event bus.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is implemented by everything published on the bus.
type Event interface {
	Type() string
}

// EventType names an event.
type EventType string

func (t EventType) String() string { return string(t) }

const (
	EventTypeUserRegistered     EventType = "User.Registered"
	EventTypeZakatCalculated    EventType = "Zakat.Calculated"
	EventTypeTransactionApplied EventType = "Transaction.Applied"
)

// UserRegistered is emitted once a new user has been stored.
type UserRegistered struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Username  string
	Timestamp time.Time
}

func (UserRegistered) Type() string { return EventTypeUserRegistered.String() }

// NewUserRegistered builds a UserRegistered event for userID.
func NewUserRegistered(userID uuid.UUID, username string) *UserRegistered {
	return &UserRegistered{
		ID:        uuid.New(),
		UserID:    userID,
		Username:  username,
		Timestamp: time.Now().UTC(),
	}
}

// ZakatCalculated is emitted after a calculation, whether or not its record was stored.
type ZakatCalculated struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	IsDue     bool
	Persisted bool
	Timestamp time.Time
}

func (ZakatCalculated) Type() string { return EventTypeZakatCalculated.String() }

// TransactionApplied is emitted after a ledger mutation commits.
type TransactionApplied struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	TransactionID uuid.UUID
	// Operation is one of "create", "update" or "delete".
	Operation string
	Timestamp time.Time
}

func (TransactionApplied) Type() string { return EventTypeTransactionApplied.String() }

// NewTransactionApplied builds a TransactionApplied event.
func NewTransactionApplied(userID, transactionID uuid.UUID, op string) *TransactionApplied {
	return &TransactionApplied{
		ID:            uuid.New(),
		UserID:        userID,
		TransactionID: transactionID,
		Operation:     op,
		Timestamp:     time.Now().UTC(),
	}
}
