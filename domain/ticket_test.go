package domain

import (
	"testing"
	"time"
)

func TestNewTicket(t *testing.T) {
	t.Parallel()

	t.Run("creates a pending ticket and emits a fact", func(t *testing.T) {
		eventTicketID := NewEventTicketID()
		customerID := NewCustomerID()
		eventID := NewEventID()

		ticket, err := NewTicket(eventTicketID, customerID, eventID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ticket.Status() != TicketStatusPending {
			t.Fatalf("expected PENDING, got %s", ticket.Status())
		}
		if ticket.ReservedAt().IsZero() {
			t.Fatal("expected reservedAt to be set")
		}
		if ticket.PaidAt() != nil {
			t.Fatal("expected no paidAt")
		}

		facts := ticket.DomainEvents()
		if len(facts) != 1 {
			t.Fatalf("expected 1 fact, got %d", len(facts))
		}
		fact, ok := facts[0].(TicketCreated)
		if !ok {
			t.Fatalf("expected TicketCreated, got %T", facts[0])
		}
		if fact.EventName() != TicketCreatedName {
			t.Fatalf("unexpected type tag %q", fact.EventName())
		}
		if fact.TicketID != ticket.ID().String() || fact.EventTicketID != eventTicketID.String() {
			t.Fatal("fact references wrong ids")
		}
	})

	t.Run("rejects missing references", func(t *testing.T) {
		if _, err := NewTicket(EventTicketID{}, NewCustomerID(), NewEventID()); !IsDomainError(err, ErrCodeInvalidValue) {
			t.Fatalf("expected INVALID_VALUE, got %v", err)
		}
		if _, err := NewTicket(NewEventTicketID(), CustomerID{}, NewEventID()); !IsDomainError(err, ErrCodeInvalidValue) {
			t.Fatalf("expected INVALID_VALUE, got %v", err)
		}
		if _, err := NewTicket(NewEventTicketID(), NewCustomerID(), EventID{}); !IsDomainError(err, ErrCodeInvalidValue) {
			t.Fatalf("expected INVALID_VALUE, got %v", err)
		}
	})

	t.Run("reconstructs without emitting facts", func(t *testing.T) {
		paidAt := time.Now().UTC()
		ticket, err := WithTicket(NewTicketID(), NewCustomerID(), NewEventID(), TicketStatusPaid, paidAt.Add(-time.Hour), &paidAt)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(ticket.DomainEvents()) != 0 {
			t.Fatal("rehydration must not emit facts")
		}
		if ticket.Status() != TicketStatusPaid {
			t.Fatalf("expected PAID, got %s", ticket.Status())
		}
		if ticket.PaidAt() == nil || !ticket.PaidAt().Equal(paidAt) {
			t.Fatal("paidAt not preserved")
		}
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		_, err := WithTicket(NewTicketID(), NewCustomerID(), NewEventID(), TicketStatus("REFUNDED"), time.Now(), nil)
		if !IsDomainError(err, ErrCodeInvalidValue) {
			t.Fatalf("expected INVALID_VALUE, got %v", err)
		}
	})
}

func TestEventTicketAssociate(t *testing.T) {
	t.Parallel()

	ticket, err := WithEventTicket(NewEventTicketID(), NewEventID(), NewCustomerID(), nil, 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ticket.TicketID() != nil {
		t.Fatal("expected no paid ticket yet")
	}

	paidID := NewTicketID()
	ticket.AssociateTicket(paidID)
	if got := ticket.TicketID(); got == nil || *got != paidID {
		t.Fatalf("expected %v, got %v", paidID, got)
	}
}

func TestWithEventTicketValidation(t *testing.T) {
	t.Parallel()

	if _, err := WithEventTicket(EventTicketID{}, NewEventID(), NewCustomerID(), nil, 1); !IsDomainError(err, ErrCodeInvalidValue) {
		t.Fatalf("expected INVALID_VALUE, got %v", err)
	}
	if _, err := WithEventTicket(NewEventTicketID(), EventID{}, NewCustomerID(), nil, 1); !IsDomainError(err, ErrCodeInvalidValue) {
		t.Fatalf("expected INVALID_VALUE, got %v", err)
	}
	if _, err := WithEventTicket(NewEventTicketID(), NewEventID(), CustomerID{}, nil, 0); !IsDomainError(err, ErrCodeInvalidValue) {
		t.Fatalf("expected INVALID_VALUE, got %v", err)
	}
}
