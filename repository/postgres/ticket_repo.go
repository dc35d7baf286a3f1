package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ingresso/backend/domain"
	"github.com/ingresso/backend/repository"
)

type ticketRepository struct {
	pool *pgxpool.Pool
	q    querier
}

// NewTicketRepository instantiates a Postgres-backed ticket repository.
func NewTicketRepository(pool *pgxpool.Pool) repository.TicketRepository {
	return &ticketRepository{pool: pool, q: querier{pool: pool}}
}

func (r *ticketRepository) TicketOfID(ctx context.Context, id domain.TicketID) (*domain.Ticket, error) {
	const query = `
		SELECT id, customer_id, event_id, status, reserved_at, paid_at
		FROM tickets
		WHERE id = $1
	`
	var (
		rawID, customerID, eventID, status string
		reservedAt                         time.Time
		paidAt                             *time.Time
	)
	err := r.q.QueryRow(ctx, query, id.String()).
		Scan(&rawID, &customerID, &eventID, &status, &reservedAt, &paidAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan ticket: %w", err)
	}

	ticketID, err := domain.ParseTicketID(rawID)
	if err != nil {
		return nil, err
	}
	cID, err := domain.ParseCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	eID, err := domain.ParseEventID(eventID)
	if err != nil {
		return nil, err
	}
	return domain.WithTicket(ticketID, cID, eID, domain.TicketStatus(status), reservedAt, paidAt)
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	return r.save(ctx, ticket)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	return r.save(ctx, ticket)
}

func (r *ticketRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM tickets`); err != nil {
		return fmt.Errorf("delete tickets: %w", err)
	}
	return nil
}

func (r *ticketRepository) save(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	err := withTx(ctx, r.pool, func(txCtx context.Context) error {
		const upsert = `
			INSERT INTO tickets (id, customer_id, event_id, status, reserved_at, paid_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE
			SET status = EXCLUDED.status,
				paid_at = EXCLUDED.paid_at
		`
		if _, err := r.q.Exec(txCtx, upsert,
			ticket.ID().String(),
			ticket.CustomerID().String(),
			ticket.EventID().String(),
			string(ticket.Status()),
			ticket.ReservedAt(),
			ticket.PaidAt(),
		); err != nil {
			return fmt.Errorf("save ticket: %w", err)
		}
		return stageFacts(txCtx, r.q, ticket.PullDomainEvents())
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}
