package domain

import "github.com/google/uuid"

// Identifier types wrap a UUID string. Each entity kind gets its own type so
// ids cannot be mixed up across kinds; equality is by wrapped value.

type CustomerID struct{ value string }

type PartnerID struct{ value string }

type EventID struct{ value string }

type TicketID struct{ value string }

type EventTicketID struct{ value string }

// NewCustomerID generates a fresh unique id.
func NewCustomerID() CustomerID {
	return CustomerID{value: uuid.NewString()}
}

// ParseCustomerID validates and wraps an existing id.
func ParseCustomerID(raw string) (CustomerID, error) {
	if _, err := uuid.Parse(raw); err != nil {
		return CustomerID{}, newInvalidValue("CustomerID")
	}
	return CustomerID{value: raw}, nil
}

func (id CustomerID) String() string { return id.value }
func (id CustomerID) IsZero() bool   { return id.value == "" }

func NewPartnerID() PartnerID {
	return PartnerID{value: uuid.NewString()}
}

func ParsePartnerID(raw string) (PartnerID, error) {
	if _, err := uuid.Parse(raw); err != nil {
		return PartnerID{}, newInvalidValue("PartnerID")
	}
	return PartnerID{value: raw}, nil
}

func (id PartnerID) String() string { return id.value }
func (id PartnerID) IsZero() bool   { return id.value == "" }

func NewEventID() EventID {
	return EventID{value: uuid.NewString()}
}

func ParseEventID(raw string) (EventID, error) {
	if _, err := uuid.Parse(raw); err != nil {
		return EventID{}, newInvalidValue("EventID")
	}
	return EventID{value: raw}, nil
}

func (id EventID) String() string { return id.value }
func (id EventID) IsZero() bool   { return id.value == "" }

func NewTicketID() TicketID {
	return TicketID{value: uuid.NewString()}
}

func ParseTicketID(raw string) (TicketID, error) {
	if _, err := uuid.Parse(raw); err != nil {
		return TicketID{}, newInvalidValue("TicketID")
	}
	return TicketID{value: raw}, nil
}

func (id TicketID) String() string { return id.value }
func (id TicketID) IsZero() bool   { return id.value == "" }

func NewEventTicketID() EventTicketID {
	return EventTicketID{value: uuid.NewString()}
}

func ParseEventTicketID(raw string) (EventTicketID, error) {
	if _, err := uuid.Parse(raw); err != nil {
		return EventTicketID{}, newInvalidValue("EventTicketID")
	}
	return EventTicketID{value: raw}, nil
}

func (id EventTicketID) String() string { return id.value }
func (id EventTicketID) IsZero() bool   { return id.value == "" }
