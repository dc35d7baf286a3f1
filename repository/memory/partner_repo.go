package memory

import (
	"context"

	"github.com/ingresso/backend/domain"
	"github.com/ingresso/backend/repository"
)

type partnerRepository struct {
	store *Store
}

// NewPartnerRepository creates a store-backed partner repository.
func NewPartnerRepository(store *Store) repository.PartnerRepository {
	return &partnerRepository{store: store}
}

func (r *partnerRepository) PartnerOfID(ctx context.Context, id domain.PartnerID) (*domain.Partner, error) {
	defer r.store.lock(ctx)()
	row, ok := r.store.partners[id.String()]
	if !ok {
		return nil, nil
	}
	return rehydratePartner(row)
}

func (r *partnerRepository) PartnerOfCNPJ(ctx context.Context, cnpj domain.CNPJ) (*domain.Partner, error) {
	defer r.store.lock(ctx)()
	for _, row := range r.store.partners {
		if row.cnpj == cnpj.String() {
			return rehydratePartner(row)
		}
	}
	return nil, nil
}

func (r *partnerRepository) PartnerOfEmail(ctx context.Context, email domain.Email) (*domain.Partner, error) {
	defer r.store.lock(ctx)()
	for _, row := range r.store.partners {
		if row.email == email.String() {
			return rehydratePartner(row)
		}
	}
	return nil, nil
}

func (r *partnerRepository) Create(ctx context.Context, partner *domain.Partner) (*domain.Partner, error) {
	return r.save(ctx, partner)
}

func (r *partnerRepository) Update(ctx context.Context, partner *domain.Partner) (*domain.Partner, error) {
	return r.save(ctx, partner)
}

func (r *partnerRepository) DeleteAll(ctx context.Context) error {
	defer r.store.lock(ctx)()
	r.store.partners = make(map[string]partnerRow)
	return nil
}

func (r *partnerRepository) save(ctx context.Context, partner *domain.Partner) (*domain.Partner, error) {
	defer r.store.lock(ctx)()
	row := partnerRow{
		id:    partner.ID().String(),
		name:  partner.Name().String(),
		cnpj:  partner.CNPJ().String(),
		email: partner.Email().String(),
	}
	r.store.partners[row.id] = row
	return rehydratePartner(row)
}

func rehydratePartner(row partnerRow) (*domain.Partner, error) {
	id, err := domain.ParsePartnerID(row.id)
	if err != nil {
		return nil, err
	}
	return domain.WithPartner(id, row.name, row.cnpj, row.email)
}
