package repository

import (
	"context"

	"github.com/ingresso/backend/domain"
)

// EventRepository is the lookup/persist port for Event aggregates.
//
// The aggregate's reservation invariant is only as strong as the concurrency
// discipline around load-mutate-save, so the port carries a transaction
// boundary: WithTx runs fn inside a store transaction, and EventForUpdate
// loads the event with an exclusive per-event lock held until the transaction
// ends. Reservation-producing flows must go through both; plain EventOfID is
// for reads.
//
// Create and Update persist the whole aggregate and stage its pulled domain
// events in the outbox within the same transaction, so a crash cannot drop a
// fact nor double-emit it on retry.
type EventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	EventOfID(ctx context.Context, id domain.EventID) (*domain.Event, error)
	EventForUpdate(ctx context.Context, id domain.EventID) (*domain.Event, error)
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) (*domain.Event, error)
	DeleteAll(ctx context.Context) error
}
