package domain

import "time"

// TicketStatus is the payment-side lifecycle state.
type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "PENDING"
	TicketStatusPaid      TicketStatus = "PAID"
	TicketStatusCancelled TicketStatus = "CANCELLED"
)

// Ticket is the payment/fulfillment side of a reservation. It has its own
// lifecycle separate from the Event aggregate; only the PENDING state is
// exercised by the reservation path.
type Ticket struct {
	id         TicketID
	customerID CustomerID
	eventID    EventID
	status     TicketStatus
	reservedAt time.Time
	paidAt     *time.Time
	facts      []DomainEvent
}

// NewTicket creates a PENDING ticket for a reservation and emits a
// TicketCreated fact referencing the originating EventTicket.
func NewTicket(eventTicketID EventTicketID, customerID CustomerID, eventID EventID) (*Ticket, error) {
	if eventTicketID.IsZero() {
		return nil, newInvalidValue("EventTicketID")
	}
	if customerID.IsZero() {
		return nil, newInvalidValue("CustomerID")
	}
	if eventID.IsZero() {
		return nil, newInvalidValue("EventID")
	}
	t := &Ticket{
		id:         NewTicketID(),
		customerID: customerID,
		eventID:    eventID,
		status:     TicketStatusPending,
		reservedAt: time.Now().UTC(),
	}
	t.facts = append(t.facts, newTicketCreated(t.id, eventTicketID, eventID, customerID))
	return t, nil
}

// WithTicket reconstructs a ticket from persisted state; no fact is emitted.
func WithTicket(id TicketID, customerID CustomerID, eventID EventID, status TicketStatus, reservedAt time.Time, paidAt *time.Time) (*Ticket, error) {
	if id.IsZero() {
		return nil, newInvalidValue("TicketID")
	}
	if customerID.IsZero() {
		return nil, newInvalidValue("CustomerID")
	}
	if eventID.IsZero() {
		return nil, newInvalidValue("EventID")
	}
	switch status {
	case TicketStatusPending, TicketStatusPaid, TicketStatusCancelled:
	default:
		return nil, newInvalidValue("status for Ticket")
	}
	return &Ticket{
		id:         id,
		customerID: customerID,
		eventID:    eventID,
		status:     status,
		reservedAt: reservedAt,
		paidAt:     paidAt,
	}, nil
}

func (t *Ticket) ID() TicketID           { return t.id }
func (t *Ticket) CustomerID() CustomerID { return t.customerID }
func (t *Ticket) EventID() EventID       { return t.eventID }
func (t *Ticket) Status() TicketStatus   { return t.status }
func (t *Ticket) ReservedAt() time.Time  { return t.reservedAt }

func (t *Ticket) PaidAt() *time.Time {
	if t.paidAt == nil {
		return nil
	}
	at := *t.paidAt
	return &at
}

// DomainEvents returns the facts pending outbox staging.
func (t *Ticket) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(t.facts))
	copy(out, t.facts)
	return out
}

// PullDomainEvents drains the pending facts.
func (t *Ticket) PullDomainEvents() []DomainEvent {
	facts := t.facts
	t.facts = nil
	return facts
}
