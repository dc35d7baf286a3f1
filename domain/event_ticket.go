package domain

// EventTicket is one reservation record inside the Event aggregate: one
// (event, customer) pair with a 1-based ordering assigned at reservation
// time. The only post-construction mutation is associating the paid-side
// Ticket once it exists.
type EventTicket struct {
	id         EventTicketID
	eventID    EventID
	customerID CustomerID
	ticketID   *TicketID
	ordering   int
}

func newEventTicket(eventID EventID, customerID CustomerID, ordering int) (*EventTicket, error) {
	return buildEventTicket(NewEventTicketID(), eventID, customerID, nil, ordering)
}

// WithEventTicket reconstructs a reservation from persisted state. ticketID
// stays nil until a paid Ticket has been associated.
func WithEventTicket(id EventTicketID, eventID EventID, customerID CustomerID, ticketID *TicketID, ordering int) (*EventTicket, error) {
	return buildEventTicket(id, eventID, customerID, ticketID, ordering)
}

func buildEventTicket(id EventTicketID, eventID EventID, customerID CustomerID, ticketID *TicketID, ordering int) (*EventTicket, error) {
	if id.IsZero() {
		return nil, newInvalidValue("EventTicketID")
	}
	if eventID.IsZero() {
		return nil, newInvalidValue("EventID")
	}
	if customerID.IsZero() {
		return nil, newInvalidValue("CustomerID")
	}
	if ordering < 1 {
		return nil, newInvalidValue("ordering")
	}
	return &EventTicket{
		id:         id,
		eventID:    eventID,
		customerID: customerID,
		ticketID:   ticketID,
		ordering:   ordering,
	}, nil
}

func (t *EventTicket) ID() EventTicketID      { return t.id }
func (t *EventTicket) EventID() EventID       { return t.eventID }
func (t *EventTicket) CustomerID() CustomerID { return t.customerID }
func (t *EventTicket) Ordering() int          { return t.ordering }

// TicketID returns the associated paid ticket id, or nil before payment.
func (t *EventTicket) TicketID() *TicketID {
	if t.ticketID == nil {
		return nil
	}
	id := *t.ticketID
	return &id
}

// AssociateTicket links the payment-side Ticket to this reservation.
func (t *EventTicket) AssociateTicket(ticketID TicketID) {
	id := ticketID
	t.ticketID = &id
}
