package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock
type OutboxRepository interface {
	WithTx(tx *gorm.DB) OutboxRepository
	Enqueue(ctx context.Context, topic, key string, payload any) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, cause error) error
}

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *gorm.DB) OutboxRepository {
	return &outboxRepository{db: tx}
}

func (r *outboxRepository) Enqueue(ctx context.Context, topic, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	evt := &OutboxEvent{
		ID:            uuid.New(),
		Topic:         topic,
		Key:           key,
		Payload:       body,
		Status:        OutboxPending,
		NextAttemptAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(evt).Error
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	var events []OutboxEvent
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_attempt_at <= ?", OutboxPending, time.Now().UTC()).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *outboxRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  OutboxSent,
			"sent_at": now,
		}).Error
}

// MarkFailed bumps the attempt counter and schedules the next retry with
// exponential spacing. Past the cutoff the event is parked as failed.
func (r *outboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, cause error) error {
	var evt OutboxEvent
	if err := r.db.WithContext(ctx).First(&evt, "id = ?", id).Error; err != nil {
		return err
	}

	evt.Attempts++
	evt.LastError = truncate(cause.Error(), 500)

	if evt.Attempts >= maxOutboxAttempts {
		evt.Status = OutboxFailed
	} else {
		delay := time.Duration(1<<evt.Attempts) * time.Second
		evt.NextAttemptAt = time.Now().UTC().Add(delay)
	}

	return r.db.WithContext(ctx).Save(&evt).Error
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
