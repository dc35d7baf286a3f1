package domain

import (
	"fmt"
	"testing"
)

func newTestPartner(t *testing.T) *Partner {
	t.Helper()
	p, err := NewPartner("Disney Plus", validCNPJ, "disney@gmail.com")
	if err != nil {
		t.Fatalf("partner: %v", err)
	}
	return p
}

func newTestEvent(t *testing.T, spots int) *Event {
	t.Helper()
	ev, err := NewEvent("Disney on Ice", "2026-01-01", spots, newTestPartner(t))
	if err != nil {
		t.Fatalf("event: %v", err)
	}
	return ev
}

func TestNewEvent(t *testing.T) {
	t.Parallel()

	t.Run("creates an open event", func(t *testing.T) {
		partner := newTestPartner(t)
		ev, err := NewEvent("Disney on Ice", "2026-01-01", 10, partner)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ev.ID().IsZero() {
			t.Fatal("expected a generated id")
		}
		if ev.PartnerID() != partner.ID() {
			t.Fatal("expected partner id to be taken from the partner")
		}
		if ev.Date().Format(DateLayout) != "2026-01-01" {
			t.Fatalf("unexpected date %v", ev.Date())
		}
		if len(ev.Tickets()) != 0 {
			t.Fatal("expected empty ticket set")
		}
		if ev.SoldOut() {
			t.Fatal("expected event to be open")
		}
	})

	t.Run("rejects a missing or unparsable date", func(t *testing.T) {
		partner := newTestPartner(t)
		for _, date := range []string{"", "not-a-date", "2026-13-01", "2026-01-01T10:00:00Z"} {
			_, err := NewEvent("Disney on Ice", date, 10, partner)
			if !IsDomainError(err, ErrCodeInvalidDate) {
				t.Fatalf("date %q: expected INVALID_DATE, got %v", date, err)
			}
		}
	})

	t.Run("rejects a nil partner", func(t *testing.T) {
		_, err := NewEvent("Disney on Ice", "2026-01-01", 10, nil)
		if !IsDomainError(err, ErrCodeInvalidValue) {
			t.Fatalf("expected INVALID_VALUE, got %v", err)
		}
	})

	t.Run("rejects an invalid name", func(t *testing.T) {
		_, err := NewEvent("", "2026-01-01", 10, newTestPartner(t))
		if !IsDomainError(err, ErrCodeInvalidValue) {
			t.Fatalf("expected INVALID_VALUE, got %v", err)
		}
	})

	t.Run("accepts zero spots as an always-sold-out event", func(t *testing.T) {
		// Reference behavior: totalSpots positivity is not enforced.
		ev, err := NewEvent("Disney on Ice", "2026-01-01", 0, newTestPartner(t))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !ev.SoldOut() {
			t.Fatal("expected zero-spot event to be sold out")
		}
		if _, err := ev.ReserveTicket(NewCustomerID()); !IsDomainError(err, ErrCodeSoldOut) {
			t.Fatalf("expected SOLD_OUT, got %v", err)
		}
	})
}

func TestEventReserveTicket(t *testing.T) {
	t.Parallel()

	t.Run("reserves a spot and emits a fact", func(t *testing.T) {
		ev := newTestEvent(t, 10)
		customerID := NewCustomerID()

		ticket, err := ev.ReserveTicket(customerID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ticket.Ordering() != 1 {
			t.Fatalf("expected ordering 1, got %d", ticket.Ordering())
		}
		if ticket.EventID() != ev.ID() || ticket.CustomerID() != customerID {
			t.Fatal("ticket references wrong ids")
		}
		if ticket.TicketID() != nil {
			t.Fatal("expected no paid ticket yet")
		}
		if len(ev.Tickets()) != 1 {
			t.Fatalf("expected 1 ticket, got %d", len(ev.Tickets()))
		}

		facts := ev.DomainEvents()
		if len(facts) != 1 {
			t.Fatalf("expected 1 fact, got %d", len(facts))
		}
		fact, ok := facts[0].(EventTicketReserved)
		if !ok {
			t.Fatalf("expected EventTicketReserved, got %T", facts[0])
		}
		if fact.EventName() != EventTicketReservedName {
			t.Fatalf("unexpected type tag %q", fact.EventName())
		}
		if fact.EventTicketID != ticket.ID().String() || fact.CustomerID != customerID.String() || fact.EventID != ev.ID().String() {
			t.Fatal("fact references wrong ids")
		}
		if fact.DomainEventID() == "" || fact.OccurredOn().IsZero() {
			t.Fatal("fact is missing id or timestamp")
		}
	})

	t.Run("ordering counts successful reservations", func(t *testing.T) {
		ev := newTestEvent(t, 5)
		for k := 1; k <= 5; k++ {
			ticket, err := ev.ReserveTicket(NewCustomerID())
			if err != nil {
				t.Fatalf("reservation %d: %v", k, err)
			}
			if ticket.Ordering() != k {
				t.Fatalf("reservation %d: expected ordering %d, got %d", k, k, ticket.Ordering())
			}
		}
	})

	t.Run("sells out at capacity", func(t *testing.T) {
		const spots = 3
		ev := newTestEvent(t, spots)
		for i := 0; i < spots; i++ {
			if _, err := ev.ReserveTicket(NewCustomerID()); err != nil {
				t.Fatalf("reservation %d: %v", i+1, err)
			}
		}
		if !ev.SoldOut() {
			t.Fatal("expected event to be sold out")
		}

		_, err := ev.ReserveTicket(NewCustomerID())
		if !IsDomainError(err, ErrCodeSoldOut) {
			t.Fatalf("expected SOLD_OUT, got %v", err)
		}
		if err.Error() != "Event sold out" {
			t.Fatalf("unexpected message %q", err.Error())
		}
		if len(ev.Tickets()) != spots {
			t.Fatalf("failed reservation mutated the aggregate: %d tickets", len(ev.Tickets()))
		}
		if len(ev.DomainEvents()) != spots {
			t.Fatalf("failed reservation emitted a fact: %d facts", len(ev.DomainEvents()))
		}
	})

	t.Run("rejects a repeat customer", func(t *testing.T) {
		ev := newTestEvent(t, 10)
		customerID := NewCustomerID()

		if _, err := ev.ReserveTicket(customerID); err != nil {
			t.Fatalf("first reservation: %v", err)
		}
		_, err := ev.ReserveTicket(customerID)
		if !IsDomainError(err, ErrCodeAlreadyRegistered) {
			t.Fatalf("expected ALREADY_REGISTERED, got %v", err)
		}
		if err.Error() != "Email already registered" {
			t.Fatalf("unexpected message %q", err.Error())
		}
		if len(ev.Tickets()) != 1 {
			t.Fatalf("failed reservation mutated the aggregate: %d tickets", len(ev.Tickets()))
		}
	})

	t.Run("duplicate guard wins over sold out", func(t *testing.T) {
		ev := newTestEvent(t, 1)
		customerID := NewCustomerID()
		if _, err := ev.ReserveTicket(customerID); err != nil {
			t.Fatalf("first reservation: %v", err)
		}
		// Event is now full; the repeat customer must still see the
		// duplicate error, not the capacity one.
		_, err := ev.ReserveTicket(customerID)
		if !IsDomainError(err, ErrCodeAlreadyRegistered) {
			t.Fatalf("expected ALREADY_REGISTERED, got %v", err)
		}
	})

	t.Run("one spot, two customers", func(t *testing.T) {
		ev := newTestEvent(t, 1)

		ticket, err := ev.ReserveTicket(NewCustomerID())
		if err != nil {
			t.Fatalf("customer A: %v", err)
		}
		if ticket.Ordering() != 1 {
			t.Fatalf("expected ordering 1, got %d", ticket.Ordering())
		}
		if len(ev.Tickets()) != 1 {
			t.Fatalf("expected 1 ticket, got %d", len(ev.Tickets()))
		}

		if _, err := ev.ReserveTicket(NewCustomerID()); !IsDomainError(err, ErrCodeSoldOut) {
			t.Fatalf("customer B: expected SOLD_OUT, got %v", err)
		}
	})

	t.Run("pull drains pending facts", func(t *testing.T) {
		ev := newTestEvent(t, 2)
		ev.ReserveTicket(NewCustomerID())
		ev.ReserveTicket(NewCustomerID())

		facts := ev.PullDomainEvents()
		if len(facts) != 2 {
			t.Fatalf("expected 2 facts, got %d", len(facts))
		}
		if len(ev.DomainEvents()) != 0 {
			t.Fatal("expected no facts after pull")
		}
	})
}

func TestWithEvent(t *testing.T) {
	t.Parallel()

	t.Run("rehydrated aggregate behaves like the original", func(t *testing.T) {
		ev := newTestEvent(t, 2)
		firstCustomer := NewCustomerID()
		if _, err := ev.ReserveTicket(firstCustomer); err != nil {
			t.Fatalf("seed reservation: %v", err)
		}

		loaded, err := WithEvent(
			ev.ID(),
			ev.Name().String(),
			ev.Date().Format(DateLayout),
			ev.TotalSpots(),
			ev.PartnerID(),
			ev.Tickets(),
		)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !loaded.Equals(ev) {
			t.Fatal("expected identity equality after rehydration")
		}
		if len(loaded.DomainEvents()) != 0 {
			t.Fatal("rehydration must not emit facts")
		}

		// The duplicate guard still sees the persisted ticket.
		if _, err := loaded.ReserveTicket(firstCustomer); !IsDomainError(err, ErrCodeAlreadyRegistered) {
			t.Fatalf("expected ALREADY_REGISTERED, got %v", err)
		}

		// The next reservation continues the ordering sequence.
		ticket, err := loaded.ReserveTicket(NewCustomerID())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ticket.Ordering() != 2 {
			t.Fatalf("expected ordering 2, got %d", ticket.Ordering())
		}
		if !loaded.SoldOut() {
			t.Fatal("expected event to be sold out")
		}
	})

	t.Run("rehydration trusts the persisted ticket set", func(t *testing.T) {
		// An over-full set is accepted as-is; invariants are enforced on
		// mutation, not on load.
		eventID := NewEventID()
		tickets := make([]*EventTicket, 0, 3)
		for i := 1; i <= 3; i++ {
			ticket, err := WithEventTicket(NewEventTicketID(), eventID, NewCustomerID(), nil, i)
			if err != nil {
				t.Fatalf("ticket %d: %v", i, err)
			}
			tickets = append(tickets, ticket)
		}

		ev, err := WithEvent(eventID, "Disney on Ice", "2026-01-01", 2, NewPartnerID(), tickets)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(ev.Tickets()) != 3 {
			t.Fatalf("expected 3 tickets, got %d", len(ev.Tickets()))
		}
		if _, err := ev.ReserveTicket(NewCustomerID()); !IsDomainError(err, ErrCodeSoldOut) {
			t.Fatalf("expected SOLD_OUT, got %v", err)
		}
	})

	t.Run("validates fields on rehydration", func(t *testing.T) {
		if _, err := WithEvent(NewEventID(), "Disney on Ice", "bad", 2, NewPartnerID(), nil); !IsDomainError(err, ErrCodeInvalidDate) {
			t.Fatalf("expected INVALID_DATE, got %v", err)
		}
		if _, err := WithEvent(NewEventID(), "Disney on Ice", "2026-01-01", 2, PartnerID{}, nil); !IsDomainError(err, ErrCodeInvalidValue) {
			t.Fatalf("expected INVALID_VALUE, got %v", err)
		}
	})
}

func TestEventRemainingSpots(t *testing.T) {
	t.Parallel()

	ev := newTestEvent(t, 2)
	for want := 2; want >= 1; want-- {
		if got := ev.RemainingSpots(); got != want {
			t.Fatalf("expected %d remaining, got %d", want, got)
		}
		if _, err := ev.ReserveTicket(NewCustomerID()); err != nil {
			t.Fatal(err)
		}
	}
	if got := ev.RemainingSpots(); got != 0 {
		t.Fatalf("expected 0 remaining, got %d", got)
	}
}

func ExampleEvent_ReserveTicket() {
	partner, _ := NewPartner("Disney Plus", "11.222.333/0001-81", "disney@gmail.com")
	ev, _ := NewEvent("Disney on Ice", "2026-01-01", 1, partner)

	ticket, _ := ev.ReserveTicket(NewCustomerID())
	fmt.Println(ticket.Ordering(), ev.SoldOut())
	// Output: 1 true
}
