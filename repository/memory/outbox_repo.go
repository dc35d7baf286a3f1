package memory

import (
	"context"

	"github.com/ingresso/backend/repository"
)

type outboxRepository struct {
	store *Store
}

// NewOutboxRepository creates a store-backed outbox repository.
func NewOutboxRepository(store *Store) repository.OutboxRepository {
	return &outboxRepository{store: store}
}

func (r *outboxRepository) Unpublished(ctx context.Context, limit int) ([]repository.OutboxEntry, error) {
	defer r.store.lock(ctx)()
	if limit <= 0 {
		limit = 100
	}
	entries := make([]repository.OutboxEntry, 0, limit)
	for _, id := range r.store.outboxSeq {
		entry, ok := r.store.outbox[id]
		if !ok || entry.Published {
			continue
		}
		entry.Content = append([]byte(nil), entry.Content...)
		entries = append(entries, entry)
		if len(entries) == limit {
			break
		}
	}
	return entries, nil
}

func (r *outboxRepository) CountUnpublished(ctx context.Context) (int, error) {
	defer r.store.lock(ctx)()
	count := 0
	for _, entry := range r.store.outbox {
		if !entry.Published {
			count++
		}
	}
	return count, nil
}

func (r *outboxRepository) MarkPublished(ctx context.Context, ids []string) error {
	defer r.store.lock(ctx)()
	for _, id := range ids {
		if entry, ok := r.store.outbox[id]; ok {
			entry.Published = true
			r.store.outbox[id] = entry
		}
	}
	return nil
}

func (r *outboxRepository) RecordFailure(ctx context.Context, id string) error {
	defer r.store.lock(ctx)()
	if entry, ok := r.store.outbox[id]; ok {
		entry.Attempts++
		r.store.outbox[id] = entry
	}
	return nil
}

func (r *outboxRepository) Remove(ctx context.Context, id string) error {
	defer r.store.lock(ctx)()
	delete(r.store.outbox, id)
	return nil
}

func (r *outboxRepository) DeleteAll(ctx context.Context) error {
	defer r.store.lock(ctx)()
	r.store.outbox = make(map[string]repository.OutboxEntry)
	r.store.outboxSeq = nil
	return nil
}
