package repository

import (
	"context"

	"github.com/ingresso/backend/domain"
)

// CustomerRepository is the lookup/persist port for Customer aggregates.
// Lookups have return-or-absent semantics: a missing customer is (nil, nil),
// not an error.
type CustomerRepository interface {
	CustomerOfID(ctx context.Context, id domain.CustomerID) (*domain.Customer, error)
	CustomerOfCPF(ctx context.Context, cpf domain.CPF) (*domain.Customer, error)
	CustomerOfEmail(ctx context.Context, email domain.Email) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	// DeleteAll is a test/reset hook.
	DeleteAll(ctx context.Context) error
}
