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

type partnerRepository struct {
	q querier
}

// NewPartnerRepository instantiates a Postgres-backed partner repository.
func NewPartnerRepository(pool *pgxpool.Pool) repository.PartnerRepository {
	return &partnerRepository{q: querier{pool: pool}}
}

func (r *partnerRepository) PartnerOfID(ctx context.Context, id domain.PartnerID) (*domain.Partner, error) {
	const query = `
		SELECT id, name, cnpj, email
		FROM partners
		WHERE id = $1
	`
	return r.scanPartner(r.q.QueryRow(ctx, query, id.String()))
}

func (r *partnerRepository) PartnerOfCNPJ(ctx context.Context, cnpj domain.CNPJ) (*domain.Partner, error) {
	const query = `
		SELECT id, name, cnpj, email
		FROM partners
		WHERE cnpj = $1
	`
	return r.scanPartner(r.q.QueryRow(ctx, query, cnpj.String()))
}

func (r *partnerRepository) PartnerOfEmail(ctx context.Context, email domain.Email) (*domain.Partner, error) {
	const query = `
		SELECT id, name, cnpj, email
		FROM partners
		WHERE email = $1
	`
	return r.scanPartner(r.q.QueryRow(ctx, query, email.String()))
}

func (r *partnerRepository) Create(ctx context.Context, partner *domain.Partner) (*domain.Partner, error) {
	const stmt = `
		INSERT INTO partners (id, name, cnpj, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	if _, err := r.q.Exec(ctx, stmt,
		partner.ID().String(),
		partner.Name().String(),
		partner.CNPJ().String(),
		partner.Email().String(),
	); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrPartnerExists
		}
		return nil, fmt.Errorf("create partner: %w", err)
	}
	return partner, nil
}

func (r *partnerRepository) Update(ctx context.Context, partner *domain.Partner) (*domain.Partner, error) {
	const stmt = `
		UPDATE partners
		SET name = $2, cnpj = $3, email = $4, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := r.q.Exec(ctx, stmt,
		partner.ID().String(),
		partner.Name().String(),
		partner.CNPJ().String(),
		partner.Email().String(),
	); err != nil {
		return nil, fmt.Errorf("update partner: %w", err)
	}
	return partner, nil
}

func (r *partnerRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM partners`); err != nil {
		return fmt.Errorf("delete partners: %w", err)
	}
	return nil
}

func (r *partnerRepository) scanPartner(row pgx.Row) (*domain.Partner, error) {
	var id, name, cnpj, email string
	if err := row.Scan(&id, &name, &cnpj, &email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan partner: %w", err)
	}
	partnerID, err := domain.ParsePartnerID(id)
	if err != nil {
		return nil, err
	}
	return domain.WithPartner(partnerID, name, cnpj, email)
}
