package repository

import (
	"context"

	"github.com/ingresso/backend/domain"
)

// TicketRepository is the lookup/persist port for payment-side Tickets.
// Lookups return (nil, nil) when absent. Create stages the ticket's pulled
// domain events in the outbox within the same transaction.
type TicketRepository interface {
	TicketOfID(ctx context.Context, id domain.TicketID) (*domain.Ticket, error)
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	DeleteAll(ctx context.Context) error
}
