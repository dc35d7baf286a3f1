package memory

import (
	"context"

	"github.com/ingresso/backend/domain"
	"github.com/ingresso/backend/repository"
)

type customerRepository struct {
	store *Store
}

// NewCustomerRepository creates a store-backed customer repository.
func NewCustomerRepository(store *Store) repository.CustomerRepository {
	return &customerRepository{store: store}
}

func (r *customerRepository) CustomerOfID(ctx context.Context, id domain.CustomerID) (*domain.Customer, error) {
	defer r.store.lock(ctx)()
	row, ok := r.store.customers[id.String()]
	if !ok {
		return nil, nil
	}
	return rehydrateCustomer(row)
}

func (r *customerRepository) CustomerOfCPF(ctx context.Context, cpf domain.CPF) (*domain.Customer, error) {
	defer r.store.lock(ctx)()
	for _, row := range r.store.customers {
		if row.cpf == cpf.String() {
			return rehydrateCustomer(row)
		}
	}
	return nil, nil
}

func (r *customerRepository) CustomerOfEmail(ctx context.Context, email domain.Email) (*domain.Customer, error) {
	defer r.store.lock(ctx)()
	for _, row := range r.store.customers {
		if row.email == email.String() {
			return rehydrateCustomer(row)
		}
	}
	return nil, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	return r.save(ctx, customer)
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	return r.save(ctx, customer)
}

func (r *customerRepository) DeleteAll(ctx context.Context) error {
	defer r.store.lock(ctx)()
	r.store.customers = make(map[string]customerRow)
	return nil
}

func (r *customerRepository) save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	defer r.store.lock(ctx)()
	row := customerRow{
		id:    customer.ID().String(),
		name:  customer.Name().String(),
		cpf:   customer.CPF().String(),
		email: customer.Email().String(),
	}
	r.store.customers[row.id] = row
	return rehydrateCustomer(row)
}

func rehydrateCustomer(row customerRow) (*domain.Customer, error) {
	id, err := domain.ParseCustomerID(row.id)
	if err != nil {
		return nil, err
	}
	return domain.WithCustomer(id, row.name, row.cpf, row.email)
}
