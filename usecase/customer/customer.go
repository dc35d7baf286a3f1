package customer

import (
	"context"

	"go.uber.org/zap"

	"github.com/ingresso/backend/domain"
	"github.com/ingresso/backend/repository"
)

// UseCase exposes customer application services over the repository port.
type UseCase struct {
	customers repository.CustomerRepository
	logger    *zap.Logger
}

func New(customers repository.CustomerRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		customers: customers,
		logger:    logger,
	}
}

type CreateInput struct {
	Name  string
	CPF   string
	Email string
}

type Output struct {
	ID    string
	Name  string
	CPF   string
	Email string
}

func outputFrom(customer *domain.Customer) Output {
	return Output{
		ID:    customer.ID().String(),
		Name:  customer.Name().String(),
		CPF:   customer.CPF().String(),
		Email: customer.Email().String(),
	}
}

// Create registers a new customer. Uniqueness is checked on CPF first, then
// email; both collisions surface as "Customer already exists".
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (Output, error) {
	cpf, err := domain.NewCPF(in.CPF)
	if err != nil {
		return Output{}, err
	}
	email, err := domain.NewEmail(in.Email)
	if err != nil {
		return Output{}, err
	}

	if existing, err := uc.customers.CustomerOfCPF(ctx, cpf); err != nil {
		return Output{}, err
	} else if existing != nil {
		return Output{}, domain.ErrCustomerExists
	}
	if existing, err := uc.customers.CustomerOfEmail(ctx, email); err != nil {
		return Output{}, err
	} else if existing != nil {
		return Output{}, domain.ErrCustomerExists
	}

	customer, err := domain.NewCustomer(in.Name, in.CPF, in.Email)
	if err != nil {
		return Output{}, err
	}

	created, err := uc.customers.Create(ctx, customer)
	if err != nil {
		return Output{}, err
	}

	uc.logger.Info("customer created", zap.String("customer_id", created.ID().String()))
	return outputFrom(created), nil
}

// GetByID returns the customer or nil when absent.
func (uc *UseCase) GetByID(ctx context.Context, rawID string) (*Output, error) {
	id, err := domain.ParseCustomerID(rawID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customers.CustomerOfID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	out := outputFrom(customer)
	return &out, nil
}
