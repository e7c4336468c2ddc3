package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	relayBatchSize = 100
	relayInterval  = 5 * time.Second
)

// Relay drains the outbox to Kafka on a fixed tick. It is safe to run a
// single instance per deployment; rows are only re-sent after a failure,
// so duplicate delivery is possible and consumers must be idempotent.
type Relay struct {
	outbox    OutboxRepository
	publisher Publisher
	logger    *zap.Logger
}

func NewRelay(outbox OutboxRepository, publisher Publisher, logger ...*zap.Logger) *Relay {
	l := zap.L().Named("kafka.relay")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.relay")
	}
	return &Relay{outbox: outbox, publisher: publisher, logger: l}
}

// Run blocks until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(relayInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started")
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if err := r.drainOnce(ctx); err != nil {
				r.logger.Error("outbox drain failed", zap.Error(err))
			}
		}
	}
}

func (r *Relay) drainOnce(ctx context.Context) error {
	events, err := r.outbox.ListPending(ctx, relayBatchSize)
	if err != nil {
		return err
	}

	for _, evt := range events {
		if err := r.publisher.Publish(ctx, evt.Topic, evt.Key, evt.Payload); err != nil {
			if markErr := r.outbox.MarkFailed(ctx, evt.ID, err); markErr != nil {
				r.logger.Error("failed to mark outbox event",
					zap.String("event_id", evt.ID.String()),
					zap.Error(markErr),
				)
			}
			continue
		}
		if err := r.outbox.MarkSent(ctx, evt.ID); err != nil {
			r.logger.Error("failed to mark outbox event sent",
				zap.String("event_id", evt.ID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}
