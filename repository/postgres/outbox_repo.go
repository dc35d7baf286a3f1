package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ingresso/backend/repository"
)

type outboxRepository struct {
	q querier
}

// NewOutboxRepository instantiates a Postgres-backed outbox repository. Rows
// are written by the aggregate repositories; this side only reads and marks.
func NewOutboxRepository(pool *pgxpool.Pool) repository.OutboxRepository {
	return &outboxRepository{q: querier{pool: pool}}
}

func (r *outboxRepository) Unpublished(ctx context.Context, limit int) ([]repository.OutboxEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
		SELECT id, event_name, content, published, attempts, created_at
		FROM outbox
		WHERE published = FALSE
		ORDER BY created_at
		LIMIT $1
	`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("load outbox: %w", err)
	}
	defer rows.Close()

	var entries []repository.OutboxEntry
	for rows.Next() {
		var entry repository.OutboxEntry
		if err := rows.Scan(&entry.ID, &entry.EventName, &entry.Content, &entry.Published, &entry.Attempts, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *outboxRepository) CountUnpublished(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE published = FALSE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count outbox backlog: %w", err)
	}
	return count, nil
}

func (r *outboxRepository) MarkPublished(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	const stmt = `UPDATE outbox SET published = TRUE WHERE id = ANY($1)`
	if _, err := r.q.Exec(ctx, stmt, ids); err != nil {
		return fmt.Errorf("mark published: %w", err)
	}
	return nil
}

func (r *outboxRepository) RecordFailure(ctx context.Context, id string) error {
	const stmt = `UPDATE outbox SET attempts = attempts + 1 WHERE id = $1`
	if _, err := r.q.Exec(ctx, stmt, id); err != nil {
		return fmt.Errorf("record failure: %w", err)
	}
	return nil
}

func (r *outboxRepository) Remove(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM outbox WHERE id = $1`, id); err != nil {
		return fmt.Errorf("remove outbox entry: %w", err)
	}
	return nil
}

func (r *outboxRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM outbox`); err != nil {
		return fmt.Errorf("delete outbox: %w", err)
	}
	return nil
}
