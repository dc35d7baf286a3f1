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

type eventRepository struct {
	pool *pgxpool.Pool
	q    querier
}

// NewEventRepository instantiates a Postgres-backed event repository. Saving
// an aggregate upserts the event row, replaces its ticket set and stages the
// pulled domain events in the outbox, all inside one transaction. Reservation
// flows lock the event row with SELECT ... FOR UPDATE, which gives the
// at-most-one-concurrent-reservation-per-event guarantee the aggregate
// depends on.
func NewEventRepository(pool *pgxpool.Pool) repository.EventRepository {
	return &eventRepository{pool: pool, q: querier{pool: pool}}
}

func (r *eventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *eventRepository) EventOfID(ctx context.Context, id domain.EventID) (*domain.Event, error) {
	const query = `
		SELECT id, name, date, total_spots, partner_id, version
		FROM events
		WHERE id = $1
	`
	return r.loadEvent(ctx, r.q.QueryRow(ctx, query, id.String()))
}

func (r *eventRepository) EventForUpdate(ctx context.Context, id domain.EventID) (*domain.Event, error) {
	const query = `
		SELECT id, name, date, total_spots, partner_id, version
		FROM events
		WHERE id = $1
		FOR UPDATE
	`
	return r.loadEvent(ctx, r.q.QueryRow(ctx, query, id.String()))
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	return r.save(ctx, event)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	return r.save(ctx, event)
}

func (r *eventRepository) DeleteAll(ctx context.Context) error {
	return r.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := r.q.Exec(txCtx, `DELETE FROM event_tickets`); err != nil {
			return fmt.Errorf("delete event tickets: %w", err)
		}
		if _, err := r.q.Exec(txCtx, `DELETE FROM events`); err != nil {
			return fmt.Errorf("delete events: %w", err)
		}
		return nil
	})
}

func (r *eventRepository) save(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	err := r.WithTx(ctx, func(txCtx context.Context) error {
		const upsert = `
			INSERT INTO events (id, name, date, total_spots, partner_id, version, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name,
				date = EXCLUDED.date,
				total_spots = EXCLUDED.total_spots,
				partner_id = EXCLUDED.partner_id,
				version = EXCLUDED.version,
				updated_at = NOW()
		`
		version := event.Version() + 1
		if _, err := r.q.Exec(txCtx, upsert,
			event.ID().String(),
			event.Name().String(),
			event.Date(),
			event.TotalSpots(),
			event.PartnerID().String(),
			version,
		); err != nil {
			return fmt.Errorf("save event: %w", err)
		}

		const upsertTicket = `
			INSERT INTO event_tickets (id, event_id, customer_id, ticket_id, ordering)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE
			SET ticket_id = EXCLUDED.ticket_id
		`
		for _, ticket := range event.Tickets() {
			var paidID any
			if id := ticket.TicketID(); id != nil {
				paidID = id.String()
			}
			if _, err := r.q.Exec(txCtx, upsertTicket,
				ticket.ID().String(),
				ticket.EventID().String(),
				ticket.CustomerID().String(),
				paidID,
				ticket.Ordering(),
			); err != nil {
				return fmt.Errorf("save event ticket: %w", err)
			}
		}

		if err := stageFacts(txCtx, r.q, event.PullDomainEvents()); err != nil {
			return err
		}
		event.SetVersion(version)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) loadEvent(ctx context.Context, row pgx.Row) (*domain.Event, error) {
	var (
		id, name, partnerID string
		date                time.Time
		totalSpots, version int
	)
	if err := row.Scan(&id, &name, &date, &totalSpots, &partnerID, &version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}

	eventID, err := domain.ParseEventID(id)
	if err != nil {
		return nil, err
	}
	pID, err := domain.ParsePartnerID(partnerID)
	if err != nil {
		return nil, err
	}

	tickets, err := r.loadTickets(ctx, eventID)
	if err != nil {
		return nil, err
	}

	event, err := domain.WithEvent(eventID, name, date.Format(domain.DateLayout), totalSpots, pID, tickets)
	if err != nil {
		return nil, err
	}
	event.SetVersion(version)
	return event, nil
}

func (r *eventRepository) loadTickets(ctx context.Context, eventID domain.EventID) ([]*domain.EventTicket, error) {
	const query = `
		SELECT id, customer_id, ticket_id, ordering
		FROM event_tickets
		WHERE event_id = $1
		ORDER BY ordering
	`
	rows, err := r.q.Query(ctx, query, eventID.String())
	if err != nil {
		return nil, fmt.Errorf("load event tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*domain.EventTicket
	for rows.Next() {
		var (
			id, customerID string
			paidID         *string
			ordering       int
		)
		if err := rows.Scan(&id, &customerID, &paidID, &ordering); err != nil {
			return nil, fmt.Errorf("scan event ticket: %w", err)
		}
		ticketID, err := domain.ParseEventTicketID(id)
		if err != nil {
			return nil, err
		}
		cID, err := domain.ParseCustomerID(customerID)
		if err != nil {
			return nil, err
		}
		var paid *domain.TicketID
		if paidID != nil {
			parsed, err := domain.ParseTicketID(*paidID)
			if err != nil {
				return nil, err
			}
			paid = &parsed
		}
		ticket, err := domain.WithEventTicket(ticketID, eventID, cID, paid, ordering)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}

// stageFacts inserts serialized facts into the outbox. The fact id is the
// primary key, so retried saves cannot double-stage.
func stageFacts(ctx context.Context, q querier, facts []domain.DomainEvent) error {
	const stmt = `
		INSERT INTO outbox (id, event_name, content, published, attempts, created_at)
		VALUES ($1, $2, $3, FALSE, 0, $4)
		ON CONFLICT (id) DO NOTHING
	`
	for _, fact := range facts {
		content, err := domain.MarshalFact(fact)
		if err != nil {
			return err
		}
		if _, err := q.Exec(ctx, stmt, fact.DomainEventID(), fact.EventName(), content, fact.OccurredOn()); err != nil {
			return fmt.Errorf("stage fact: %w", err)
		}
	}
	return nil
}
