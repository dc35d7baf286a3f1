package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ingresso/backend/domain"
	"github.com/ingresso/backend/repository"
)

type customerRepository struct {
	q querier
}

// NewCustomerRepository instantiates a Postgres-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool) repository.CustomerRepository {
	return &customerRepository{q: querier{pool: pool}}
}

func (r *customerRepository) CustomerOfID(ctx context.Context, id domain.CustomerID) (*domain.Customer, error) {
	const query = `
		SELECT id, name, cpf, email
		FROM customers
		WHERE id = $1
	`
	return r.scanCustomer(r.q.QueryRow(ctx, query, id.String()))
}

func (r *customerRepository) CustomerOfCPF(ctx context.Context, cpf domain.CPF) (*domain.Customer, error) {
	const query = `
		SELECT id, name, cpf, email
		FROM customers
		WHERE cpf = $1
	`
	return r.scanCustomer(r.q.QueryRow(ctx, query, cpf.String()))
}

func (r *customerRepository) CustomerOfEmail(ctx context.Context, email domain.Email) (*domain.Customer, error) {
	const query = `
		SELECT id, name, cpf, email
		FROM customers
		WHERE email = $1
	`
	return r.scanCustomer(r.q.QueryRow(ctx, query, email.String()))
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	const stmt = `
		INSERT INTO customers (id, name, cpf, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	if _, err := r.q.Exec(ctx, stmt,
		customer.ID().String(),
		customer.Name().String(),
		customer.CPF().String(),
		customer.Email().String(),
	); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrCustomerExists
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	const stmt = `
		UPDATE customers
		SET name = $2, cpf = $3, email = $4, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := r.q.Exec(ctx, stmt,
		customer.ID().String(),
		customer.Name().String(),
		customer.CPF().String(),
		customer.Email().String(),
	); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return customer, nil
}

func (r *customerRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM customers`); err != nil {
		return fmt.Errorf("delete customers: %w", err)
	}
	return nil
}

func (r *customerRepository) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var id, name, cpf, email string
	if err := row.Scan(&id, &name, &cpf, &email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	customerID, err := domain.ParseCustomerID(id)
	if err != nil {
		return nil, err
	}
	return domain.WithCustomer(customerID, name, cpf, email)
}
