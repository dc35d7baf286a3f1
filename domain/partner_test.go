package domain

import "testing"

func TestNewPartner(t *testing.T) {
	t.Parallel()

	t.Run("creates a partner with a fresh id", func(t *testing.T) {
		p, err := NewPartner("Disney Plus", validCNPJ, "disney@gmail.com")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.ID().IsZero() {
			t.Fatal("expected a generated id")
		}
		if p.CNPJ().String() != validCNPJ {
			t.Fatalf("unexpected cnpj %q", p.CNPJ())
		}
	})

	t.Run("fails on the first invalid field in order", func(t *testing.T) {
		_, err := NewPartner("", "bad", "bad")
		if err == nil || err.Error() != "Invalid value for Name" {
			t.Fatalf("expected name failure, got %v", err)
		}

		_, err = NewPartner("Disney Plus", "bad", "bad")
		if err == nil || err.Error() != "Invalid value for Cnpj" {
			t.Fatalf("expected cnpj failure, got %v", err)
		}

		_, err = NewPartner("Disney Plus", validCNPJ, "bad")
		if err == nil || err.Error() != "Invalid value for Email" {
			t.Fatalf("expected email failure, got %v", err)
		}
	})

	t.Run("reconstructs from a known id", func(t *testing.T) {
		id := NewPartnerID()
		p, err := WithPartner(id, "Disney Plus", validCNPJ, "disney@gmail.com")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.ID() != id {
			t.Fatalf("expected id %v, got %v", id, p.ID())
		}
		other, _ := WithPartner(id, "Other", validCNPJ, "other@gmail.com")
		if !p.Equals(other) {
			t.Fatal("expected same-id partners to be equal")
		}
	})
}
