package repository

import (
	"context"

	"github.com/ingresso/backend/domain"
)

// PartnerRepository is the lookup/persist port for Partner aggregates.
// Lookups return (nil, nil) when absent.
type PartnerRepository interface {
	PartnerOfID(ctx context.Context, id domain.PartnerID) (*domain.Partner, error)
	PartnerOfCNPJ(ctx context.Context, cnpj domain.CNPJ) (*domain.Partner, error)
	PartnerOfEmail(ctx context.Context, email domain.Email) (*domain.Partner, error)
	Create(ctx context.Context, partner *domain.Partner) (*domain.Partner, error)
	Update(ctx context.Context, partner *domain.Partner) (*domain.Partner, error)
	DeleteAll(ctx context.Context) error
}
