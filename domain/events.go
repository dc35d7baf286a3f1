package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type tags carried by serialized facts; downstream consumers route on them.
const (
	EventTicketReservedName = "event-ticket.reserved"
	TicketCreatedName       = "ticket.created"
)

// DomainEvent is an immutable fact emitted by an aggregate mutation. Facts are
// append-only on the aggregate and are drained by the persistence layer into
// the outbox after a successful save.
type DomainEvent interface {
	DomainEventID() string
	EventName() string
	OccurredOn() time.Time
}

// EventTicketReserved records a successful spot reservation on an event.
type EventTicketReserved struct {
	ID            string    `json:"domainEventId"`
	Type          string    `json:"type"`
	EventTicketID string    `json:"eventTicketId"`
	EventID       string    `json:"eventId"`
	CustomerID    string    `json:"customerId"`
	At            time.Time `json:"occurredOn"`
}

func newEventTicketReserved(eventTicketID EventTicketID, eventID EventID, customerID CustomerID) EventTicketReserved {
	return EventTicketReserved{
		ID:            uuid.NewString(),
		Type:          EventTicketReservedName,
		EventTicketID: eventTicketID.String(),
		EventID:       eventID.String(),
		CustomerID:    customerID.String(),
		At:            time.Now().UTC(),
	}
}

func (e EventTicketReserved) DomainEventID() string { return e.ID }
func (e EventTicketReserved) EventName() string     { return e.Type }
func (e EventTicketReserved) OccurredOn() time.Time { return e.At }

// TicketCreated records the creation of the payment-side Ticket.
type TicketCreated struct {
	ID            string    `json:"domainEventId"`
	Type          string    `json:"type"`
	TicketID      string    `json:"ticketId"`
	EventTicketID string    `json:"eventTicketId"`
	EventID       string    `json:"eventId"`
	CustomerID    string    `json:"customerId"`
	At            time.Time `json:"occurredOn"`
}

func newTicketCreated(ticketID TicketID, eventTicketID EventTicketID, eventID EventID, customerID CustomerID) TicketCreated {
	return TicketCreated{
		ID:            uuid.NewString(),
		Type:          TicketCreatedName,
		TicketID:      ticketID.String(),
		EventTicketID: eventTicketID.String(),
		EventID:       eventID.String(),
		CustomerID:    customerID.String(),
		At:            time.Now().UTC(),
	}
}

func (e TicketCreated) DomainEventID() string { return e.ID }
func (e TicketCreated) EventName() string     { return e.Type }
func (e TicketCreated) OccurredOn() time.Time { return e.At }

// MarshalFact serializes a fact for outbox staging. The type switch is
// exhaustive over the closed set of fact variants; an unknown variant is a
// programming error surfaced at the serialization boundary.
func MarshalFact(evt DomainEvent) ([]byte, error) {
	switch fact := evt.(type) {
	case EventTicketReserved:
		return json.Marshal(fact)
	case TicketCreated:
		return json.Marshal(fact)
	default:
		return nil, fmt.Errorf("unknown domain event type %T", evt)
	}
}
