package domain

import "testing"

const (
	validCPF   = "926.400.290-10"
	validCNPJ  = "11.222.333/0001-81"
	validEmail = "john.doe@gmail.com"
)

func TestNewCustomer(t *testing.T) {
	t.Parallel()

	t.Run("creates a customer with a fresh id", func(t *testing.T) {
		c, err := NewCustomer("John Doe", validCPF, validEmail)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if c.ID().IsZero() {
			t.Fatal("expected a generated id")
		}
		if c.Name().String() != "John Doe" {
			t.Fatalf("unexpected name %q", c.Name())
		}
		if c.CPF().String() != validCPF {
			t.Fatalf("unexpected cpf %q", c.CPF())
		}
		if c.Email().String() != validEmail {
			t.Fatalf("unexpected email %q", c.Email())
		}
	})

	t.Run("fails on the first invalid field in order", func(t *testing.T) {
		// name, cpf and email are all invalid; the name failure must win.
		_, err := NewCustomer("", "bad", "bad")
		if err == nil || err.Error() != "Invalid value for Name" {
			t.Fatalf("expected name failure, got %v", err)
		}

		_, err = NewCustomer("John Doe", "bad", "bad")
		if err == nil || err.Error() != "Invalid value for Cpf" {
			t.Fatalf("expected cpf failure, got %v", err)
		}

		_, err = NewCustomer("John Doe", validCPF, "bad")
		if err == nil || err.Error() != "Invalid value for Email" {
			t.Fatalf("expected email failure, got %v", err)
		}
	})

	t.Run("reconstructs from a known id", func(t *testing.T) {
		id := NewCustomerID()
		c, err := WithCustomer(id, "John Doe", validCPF, validEmail)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if c.ID() != id {
			t.Fatalf("expected id %v, got %v", id, c.ID())
		}
	})

	t.Run("equality is identity based", func(t *testing.T) {
		id := NewCustomerID()
		a, _ := WithCustomer(id, "John Doe", validCPF, validEmail)
		b, _ := WithCustomer(id, "Jane Doe", validCPF, "jane.doe@gmail.com")
		if !a.Equals(b) {
			t.Fatal("expected same-id customers to be equal")
		}
		c, _ := NewCustomer("John Doe", validCPF, validEmail)
		if a.Equals(c) {
			t.Fatal("expected different-id customers to differ")
		}
	})
}
