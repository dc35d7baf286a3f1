package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ingresso/backend/internal/infrastructure/deadletter"
	"github.com/ingresso/backend/internal/infrastructure/queue"
	"github.com/ingresso/backend/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// RelayConfig controls how frequently the outbox is drained.
type RelayConfig struct {
	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
}

// OutboxRelay drains staged facts to the queue gateway on a fixed schedule.
// Facts leave the outbox either published or, after MaxAttempts failures,
// parked in the dead letter store. Delivery is at-least-once: a crash between
// publish and MarkPublished re-sends the batch, and consumers deduplicate on
// the fact id.
type OutboxRelay struct {
	outbox  repository.OutboxRepository
	gateway queue.Gateway
	letters *deadletter.Store
	monitor ConnectionHealth
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     RelayConfig
}

func NewOutboxRelay(
	outbox repository.OutboxRepository,
	gateway queue.Gateway,
	letters *deadletter.Store,
	monitor ConnectionHealth,
	logger *zap.Logger,
	cfg RelayConfig,
) *OutboxRelay {
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.BatchSize <= 0 || cfg.BatchSize > 100 {
		cfg.BatchSize = 100
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	relay := &OutboxRelay{
		outbox:  outbox,
		gateway: gateway,
		letters: letters,
		monitor: monitor,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = relay.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := relay.Drain(ctx); err != nil {
			relay.logger.Error("outbox drain failed", zap.Error(err))
		}
	})

	return relay
}

// Start launches the cron scheduler.
func (r *OutboxRelay) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.cron.Start()
	r.logger.Info("outbox relay started")
}

// Stop gracefully stops the scheduler.
func (r *OutboxRelay) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("outbox relay stopped")
}

// Drain publishes one batch of unpublished facts synchronously.
func (r *OutboxRelay) Drain(ctx context.Context) error {
	if r == nil || r.outbox == nil {
		return nil
	}
	if r.monitor != nil && !r.monitor.IsOnline() {
		r.logger.Debug("skipping outbox drain (offline)")
		return nil
	}

	entries, err := r.outbox.Unpublished(ctx, r.cfg.BatchSize)
	if err != nil {
		return err
	}

	var published []string
	for _, entry := range entries {
		if err := r.gateway.Publish(ctx, entry.ID, entry.EventName, entry.Content); err != nil {
			r.logger.Error("failed to publish fact",
				zap.String("fact_id", entry.ID),
				zap.String("type", entry.EventName),
				zap.Int("attempts", entry.Attempts),
				zap.Error(err))

			if entry.Attempts+1 >= r.cfg.MaxAttempts {
				r.park(ctx, entry, err)
				continue
			}
			if err := r.outbox.RecordFailure(ctx, entry.ID); err != nil {
				r.logger.Warn("failed to record publish failure", zap.Error(err))
			}
			continue
		}
		published = append(published, entry.ID)
	}

	if len(published) == 0 {
		return nil
	}
	if err := r.outbox.MarkPublished(ctx, published); err != nil {
		return fmt.Errorf("mark published: %w", err)
	}
	r.logger.Debug("outbox batch drained", zap.Int("published", len(published)))
	return nil
}

func (r *OutboxRelay) park(ctx context.Context, entry repository.OutboxEntry, cause error) {
	r.logger.Warn("parking fact in dead letter store",
		zap.String("fact_id", entry.ID),
		zap.String("type", entry.EventName))

	if r.letters != nil {
		letter := deadletter.Letter{
			ID:        entry.ID,
			EventName: entry.EventName,
			Content:   append([]byte(nil), entry.Content...),
			Attempts:  entry.Attempts + 1,
			LastError: cause.Error(),
			FailedAt:  time.Now(),
		}
		if err := r.letters.Park(letter); err != nil {
			// Keep the entry in the outbox rather than lose the fact.
			r.logger.Error("failed to park dead letter", zap.Error(err))
			_ = r.outbox.RecordFailure(ctx, entry.ID)
			return
		}
	}
	if err := r.outbox.Remove(ctx, entry.ID); err != nil {
		r.logger.Warn("failed to remove parked outbox entry", zap.Error(err))
	}
}
