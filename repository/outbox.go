package repository

import (
	"context"
	"time"
)

// OutboxEntry is a staged fact awaiting publication. Content is the
// serialized fact; ID is the fact's own unique id, which makes staging
// idempotent.
type OutboxEntry struct {
	ID        string
	EventName string
	Content   []byte
	Published bool
	Attempts  int
	CreatedAt time.Time
}

// OutboxRepository is the staging area the relay drains. Writes happen inside
// the aggregate repositories' save transactions; the relay only reads,
// marks and removes.
type OutboxRepository interface {
	Unpublished(ctx context.Context, limit int) ([]OutboxEntry, error)
	CountUnpublished(ctx context.Context) (int, error)
	MarkPublished(ctx context.Context, ids []string) error
	// RecordFailure bumps the attempt counter after a failed publish.
	RecordFailure(ctx context.Context, id string) error
	// Remove drops an entry without publishing it (dead-letter path).
	Remove(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
