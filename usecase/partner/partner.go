package partner

import (
	"context"

	"go.uber.org/zap"

	"github.com/ingresso/backend/domain"
	"github.com/ingresso/backend/repository"
)

// UseCase exposes partner application services over the repository port.
type UseCase struct {
	partners repository.PartnerRepository
	logger   *zap.Logger
}

func New(partners repository.PartnerRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		partners: partners,
		logger:   logger,
	}
}

type CreateInput struct {
	Name  string
	CNPJ  string
	Email string
}

type Output struct {
	ID    string
	Name  string
	CNPJ  string
	Email string
}

func outputFrom(partner *domain.Partner) Output {
	return Output{
		ID:    partner.ID().String(),
		Name:  partner.Name().String(),
		CNPJ:  partner.CNPJ().String(),
		Email: partner.Email().String(),
	}
}

// Create registers a new partner. Uniqueness is checked on CNPJ first, then
// email.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (Output, error) {
	cnpj, err := domain.NewCNPJ(in.CNPJ)
	if err != nil {
		return Output{}, err
	}
	email, err := domain.NewEmail(in.Email)
	if err != nil {
		return Output{}, err
	}

	if existing, err := uc.partners.PartnerOfCNPJ(ctx, cnpj); err != nil {
		return Output{}, err
	} else if existing != nil {
		return Output{}, domain.ErrPartnerExists
	}
	if existing, err := uc.partners.PartnerOfEmail(ctx, email); err != nil {
		return Output{}, err
	} else if existing != nil {
		return Output{}, domain.ErrPartnerExists
	}

	partner, err := domain.NewPartner(in.Name, in.CNPJ, in.Email)
	if err != nil {
		return Output{}, err
	}

	created, err := uc.partners.Create(ctx, partner)
	if err != nil {
		return Output{}, err
	}

	uc.logger.Info("partner created", zap.String("partner_id", created.ID().String()))
	return outputFrom(created), nil
}

// GetByID returns the partner or nil when absent.
func (uc *UseCase) GetByID(ctx context.Context, rawID string) (*Output, error) {
	id, err := domain.ParsePartnerID(rawID)
	if err != nil {
		return nil, err
	}
	partner, err := uc.partners.PartnerOfID(ctx, id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, nil
	}
	out := outputFrom(partner)
	return &out, nil
}
