package domain

import "time"

// DateLayout is the calendar-date format events are created with.
const DateLayout = "2006-01-02"

const ticketToReserve = 1

// Event is the aggregate root that owns the reservation invariants: the
// ticket set never exceeds totalSpots and never holds two tickets for the
// same customer. All mutation goes through ReserveTicket; guards run strictly
// before any state change, so a failed reservation leaves the aggregate
// untouched.
type Event struct {
	id         EventID
	name       Name
	date       time.Time
	totalSpots int
	partnerID  PartnerID
	tickets    []*EventTicket
	facts      []DomainEvent
	version    int
}

// NewEvent validates the fields and assigns a fresh id. date must be an ISO
// calendar date (no time component). A non-positive totalSpots is accepted
// and yields an event that is sold out from the start.
func NewEvent(name, date string, totalSpots int, partner *Partner) (*Event, error) {
	if partner == nil {
		return nil, newInvalidValue("partnerId for Event")
	}
	return buildEvent(NewEventID(), name, date, totalSpots, partner.ID(), nil)
}

// WithEvent reconstructs an event from persisted state. The ticket set is
// taken as-is: rehydration trusts the persisted invariant.
func WithEvent(id EventID, name, date string, totalSpots int, partnerID PartnerID, tickets []*EventTicket) (*Event, error) {
	if id.IsZero() {
		return nil, newInvalidValue("EventID")
	}
	return buildEvent(id, name, date, totalSpots, partnerID, tickets)
}

func buildEvent(id EventID, name, date string, totalSpots int, partnerID PartnerID, tickets []*EventTicket) (*Event, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, ErrInvalidEventDate
	}
	if partnerID.IsZero() {
		return nil, newInvalidValue("partnerId for Event")
	}
	return &Event{
		id:         id,
		name:       n,
		date:       parsed,
		totalSpots: totalSpots,
		partnerID:  partnerID,
		tickets:    tickets,
	}, nil
}

func (e *Event) ID() EventID          { return e.id }
func (e *Event) Name() Name           { return e.name }
func (e *Event) Date() time.Time      { return e.date }
func (e *Event) TotalSpots() int      { return e.totalSpots }
func (e *Event) PartnerID() PartnerID { return e.partnerID }

// Tickets returns a copy of the reservation set.
func (e *Event) Tickets() []*EventTicket {
	out := make([]*EventTicket, len(e.tickets))
	copy(out, e.tickets)
	return out
}

// SoldOut reports whether every spot is taken.
func (e *Event) SoldOut() bool {
	return len(e.tickets) >= e.totalSpots
}

// RemainingSpots never goes below zero.
func (e *Event) RemainingSpots() int {
	if remaining := e.totalSpots - len(e.tickets); remaining > 0 {
		return remaining
	}
	return 0
}

// ReserveTicket reserves one spot for the given customer. The duplicate guard
// runs before the capacity guard: a repeat customer on a full event gets
// ErrAlreadyRegistered, not ErrEventSoldOut.
func (e *Event) ReserveTicket(customerID CustomerID) (*EventTicket, error) {
	if customerID.IsZero() {
		return nil, newInvalidValue("CustomerID")
	}
	for _, t := range e.tickets {
		if t.CustomerID() == customerID {
			return nil, ErrAlreadyRegistered
		}
	}
	if e.totalSpots < len(e.tickets)+ticketToReserve {
		return nil, ErrEventSoldOut
	}

	ordering := len(e.tickets) + ticketToReserve
	ticket, err := newEventTicket(e.id, customerID, ordering)
	if err != nil {
		return nil, err
	}

	e.tickets = append(e.tickets, ticket)
	e.facts = append(e.facts, newEventTicketReserved(ticket.ID(), e.id, customerID))
	return ticket, nil
}

// DomainEvents returns the facts pending outbox staging.
func (e *Event) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(e.facts))
	copy(out, e.facts)
	return out
}

// PullDomainEvents drains the pending facts. The persistence layer calls it
// once per save, in the same transaction that stores the aggregate.
func (e *Event) PullDomainEvents() []DomainEvent {
	facts := e.facts
	e.facts = nil
	return facts
}

// Version is bookkeeping for stores that use optimistic concurrency. Zero on
// fresh aggregates.
func (e *Event) Version() int { return e.version }

// SetVersion is called by storage on load and after a successful save.
func (e *Event) SetVersion(v int) { e.version = v }

// Equals compares by identity.
func (e *Event) Equals(other *Event) bool {
	return other != nil && e.id == other.id
}
