package domain

import "testing"

func TestIdentifiers(t *testing.T) {
	t.Parallel()

	t.Run("fresh ids are unique", func(t *testing.T) {
		if NewCustomerID() == NewCustomerID() {
			t.Fatal("expected distinct customer ids")
		}
		if NewEventID() == NewEventID() {
			t.Fatal("expected distinct event ids")
		}
	})

	t.Run("parse round-trips a generated id", func(t *testing.T) {
		id := NewPartnerID()
		parsed, err := ParsePartnerID(id.String())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if parsed != id {
			t.Fatalf("expected %v, got %v", id, parsed)
		}
	})

	t.Run("parse rejects non-uuid input", func(t *testing.T) {
		if _, err := ParseCustomerID("not-a-uuid"); !IsDomainError(err, ErrCodeInvalidValue) {
			t.Fatalf("expected INVALID_VALUE, got %v", err)
		}
		if _, err := ParseEventID(""); !IsDomainError(err, ErrCodeInvalidValue) {
			t.Fatalf("expected INVALID_VALUE, got %v", err)
		}
		if _, err := ParseEventTicketID("123"); !IsDomainError(err, ErrCodeInvalidValue) {
			t.Fatalf("expected INVALID_VALUE, got %v", err)
		}
		if _, err := ParseTicketID("xyz"); !IsDomainError(err, ErrCodeInvalidValue) {
			t.Fatalf("expected INVALID_VALUE, got %v", err)
		}
	})

	t.Run("zero value is detectable", func(t *testing.T) {
		var id CustomerID
		if !id.IsZero() {
			t.Fatal("expected zero id")
		}
		if NewCustomerID().IsZero() {
			t.Fatal("expected non-zero id")
		}
	})
}
