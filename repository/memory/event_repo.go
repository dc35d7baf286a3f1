package memory

import (
	"context"
	"sort"

	"github.com/ingresso/backend/domain"
	"github.com/ingresso/backend/repository"
)

type eventRepository struct {
	store *Store
}

// NewEventRepository creates a store-backed event repository. Saves stage the
// aggregate's pulled domain events in the store outbox inside the same
// critical section as the row write.
func NewEventRepository(store *Store) repository.EventRepository {
	return &eventRepository{store: store}
}

func (r *eventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.store.WithTx(ctx, fn)
}

func (r *eventRepository) EventOfID(ctx context.Context, id domain.EventID) (*domain.Event, error) {
	defer r.store.lock(ctx)()
	return r.load(id)
}

// EventForUpdate behaves like EventOfID; the store's WithTx already holds the
// global lock, which subsumes a per-row lock.
func (r *eventRepository) EventForUpdate(ctx context.Context, id domain.EventID) (*domain.Event, error) {
	defer r.store.lock(ctx)()
	return r.load(id)
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	return r.save(ctx, event)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	return r.save(ctx, event)
}

func (r *eventRepository) DeleteAll(ctx context.Context) error {
	defer r.store.lock(ctx)()
	r.store.events = make(map[string]eventRow)
	return nil
}

func (r *eventRepository) save(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	defer r.store.lock(ctx)()

	tickets := event.Tickets()
	rows := make([]eventTicketRow, 0, len(tickets))
	for _, t := range tickets {
		row := eventTicketRow{
			id:         t.ID().String(),
			eventID:    t.EventID().String(),
			customerID: t.CustomerID().String(),
			ordering:   t.Ordering(),
		}
		if paid := t.TicketID(); paid != nil {
			v := paid.String()
			row.ticketID = &v
		}
		rows = append(rows, row)
	}

	row := eventRow{
		id:         event.ID().String(),
		name:       event.Name().String(),
		date:       event.Date().Format(domain.DateLayout),
		totalSpots: event.TotalSpots(),
		partnerID:  event.PartnerID().String(),
		version:    event.Version() + 1,
		tickets:    rows,
	}
	r.store.events[row.id] = row
	event.SetVersion(row.version)

	if err := stageFacts(r.store, event.PullDomainEvents()); err != nil {
		return nil, err
	}
	return r.load(event.ID())
}

func (r *eventRepository) load(id domain.EventID) (*domain.Event, error) {
	row, ok := r.store.events[id.String()]
	if !ok {
		return nil, nil
	}
	return rehydrateEvent(row)
}

// stageFacts appends serialized facts to the store outbox, keyed by fact id
// so re-staging is idempotent. Callers hold the store lock.
func stageFacts(store *Store, facts []domain.DomainEvent) error {
	for _, fact := range facts {
		if _, ok := store.outbox[fact.DomainEventID()]; ok {
			continue
		}
		content, err := domain.MarshalFact(fact)
		if err != nil {
			return err
		}
		store.outbox[fact.DomainEventID()] = repository.OutboxEntry{
			ID:        fact.DomainEventID(),
			EventName: fact.EventName(),
			Content:   content,
			CreatedAt: fact.OccurredOn(),
		}
		store.outboxSeq = append(store.outboxSeq, fact.DomainEventID())
	}
	return nil
}

func rehydrateEvent(row eventRow) (*domain.Event, error) {
	id, err := domain.ParseEventID(row.id)
	if err != nil {
		return nil, err
	}
	partnerID, err := domain.ParsePartnerID(row.partnerID)
	if err != nil {
		return nil, err
	}

	ticketRows := append([]eventTicketRow(nil), row.tickets...)
	sort.Slice(ticketRows, func(i, j int) bool {
		return ticketRows[i].ordering < ticketRows[j].ordering
	})

	tickets := make([]*domain.EventTicket, 0, len(ticketRows))
	for _, tr := range ticketRows {
		ticket, err := rehydrateEventTicket(tr)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	event, err := domain.WithEvent(id, row.name, row.date, row.totalSpots, partnerID, tickets)
	if err != nil {
		return nil, err
	}
	event.SetVersion(row.version)
	return event, nil
}

func rehydrateEventTicket(row eventTicketRow) (*domain.EventTicket, error) {
	id, err := domain.ParseEventTicketID(row.id)
	if err != nil {
		return nil, err
	}
	eventID, err := domain.ParseEventID(row.eventID)
	if err != nil {
		return nil, err
	}
	customerID, err := domain.ParseCustomerID(row.customerID)
	if err != nil {
		return nil, err
	}
	var paidID *domain.TicketID
	if row.ticketID != nil {
		parsed, err := domain.ParseTicketID(*row.ticketID)
		if err != nil {
			return nil, err
		}
		paidID = &parsed
	}
	return domain.WithEventTicket(id, eventID, customerID, paidID, row.ordering)
}
