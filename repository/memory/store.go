// Package memory provides an in-memory implementation of the repository
// ports. It backs tests and the standalone mode; state lives in an explicit
// Store whose lifecycle is scoped to the serving process or test fixture,
// never in package-level globals.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ingresso/backend/repository"
)

type txKey struct{}

// Store holds row snapshots for every aggregate kind plus the outbox. Rows
// are plain field copies, so a loaded aggregate can be mutated freely without
// leaking into the store until it is saved again.
type Store struct {
	mu sync.Mutex

	customers map[string]customerRow
	partners  map[string]partnerRow
	events    map[string]eventRow
	tickets   map[string]ticketRow
	outbox    map[string]repository.OutboxEntry
	outboxSeq []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		customers: make(map[string]customerRow),
		partners:  make(map[string]partnerRow),
		events:    make(map[string]eventRow),
		tickets:   make(map[string]ticketRow),
		outbox:    make(map[string]repository.OutboxEntry),
	}
}

// WithTx runs fn under the store's exclusive lock. The store serializes all
// transactions globally, which trivially satisfies the at-most-one-concurrent
// reservation-per-event requirement.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

// lock acquires the store mutex unless the context already runs inside a
// transaction. Callers defer the returned func.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func inTx(ctx context.Context) bool {
	flag, _ := ctx.Value(txKey{}).(bool)
	return flag
}

// Reset drops all state. Test hook backing the repositories' DeleteAll.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = make(map[string]customerRow)
	s.partners = make(map[string]partnerRow)
	s.events = make(map[string]eventRow)
	s.tickets = make(map[string]ticketRow)
	s.outbox = make(map[string]repository.OutboxEntry)
	s.outboxSeq = nil
}

type customerRow struct {
	id    string
	name  string
	cpf   string
	email string
}

type partnerRow struct {
	id    string
	name  string
	cnpj  string
	email string
}

type eventRow struct {
	id         string
	name       string
	date       string
	totalSpots int
	partnerID  string
	version    int
	tickets    []eventTicketRow
}

type eventTicketRow struct {
	id         string
	eventID    string
	customerID string
	ticketID   *string
	ordering   int
}

type ticketRow struct {
	id         string
	customerID string
	eventID    string
	status     string
	reservedAt time.Time
	paidAt     *time.Time
}
