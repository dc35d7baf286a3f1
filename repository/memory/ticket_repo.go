package memory

import (
	"context"

	"github.com/ingresso/backend/domain"
	"github.com/ingresso/backend/repository"
)

type ticketRepository struct {
	store *Store
}

// NewTicketRepository creates a store-backed ticket repository.
func NewTicketRepository(store *Store) repository.TicketRepository {
	return &ticketRepository{store: store}
}

func (r *ticketRepository) TicketOfID(ctx context.Context, id domain.TicketID) (*domain.Ticket, error) {
	defer r.store.lock(ctx)()
	row, ok := r.store.tickets[id.String()]
	if !ok {
		return nil, nil
	}
	return rehydrateTicket(row)
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	return r.save(ctx, ticket)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	return r.save(ctx, ticket)
}

func (r *ticketRepository) DeleteAll(ctx context.Context) error {
	defer r.store.lock(ctx)()
	r.store.tickets = make(map[string]ticketRow)
	return nil
}

func (r *ticketRepository) save(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	defer r.store.lock(ctx)()
	row := ticketRow{
		id:         ticket.ID().String(),
		customerID: ticket.CustomerID().String(),
		eventID:    ticket.EventID().String(),
		status:     string(ticket.Status()),
		reservedAt: ticket.ReservedAt(),
		paidAt:     ticket.PaidAt(),
	}
	r.store.tickets[row.id] = row

	if err := stageFacts(r.store, ticket.PullDomainEvents()); err != nil {
		return nil, err
	}
	return rehydrateTicket(row)
}

func rehydrateTicket(row ticketRow) (*domain.Ticket, error) {
	id, err := domain.ParseTicketID(row.id)
	if err != nil {
		return nil, err
	}
	customerID, err := domain.ParseCustomerID(row.customerID)
	if err != nil {
		return nil, err
	}
	eventID, err := domain.ParseEventID(row.eventID)
	if err != nil {
		return nil, err
	}
	return domain.WithTicket(id, customerID, eventID, domain.TicketStatus(row.status), row.reservedAt, row.paidAt)
}
