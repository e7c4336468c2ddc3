package kafka

import (
	"time"

	"github.com/google/uuid"
)

const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)

// maxOutboxAttempts is the delivery cutoff. After this many failures the
// event is parked as failed and needs an operator to requeue it.
const maxOutboxAttempts = 8

// OutboxEvent is a row written in the same transaction as the state
// change it describes. The relay worker drains pending rows to Kafka.
type OutboxEvent struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Topic         string    `gorm:"size:100;not null;index"`
	Key           string    `gorm:"size:100;not null"`
	Payload       []byte    `gorm:"not null"`
	Status        string    `gorm:"size:10;not null;default:'pending';index"`
	Attempts      int       `gorm:"not null;default:0"`
	NextAttemptAt time.Time `gorm:"not null;index"`
	LastError     string    `gorm:"size:500"`
	CreatedAt     time.Time
	SentAt        *time.Time
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}
