package balance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance is one employee's ledger row for a leave type in a given
// year. DaysRemaining is denormalized and recomputed on every write.
// Version backs the optimistic concurrency check on debits and credits.
type LeaveBalance struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balance_owner,priority:1"`
	LeaveTypeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balance_owner,priority:2"`
	Year          int       `gorm:"not null;uniqueIndex:idx_balance_owner,priority:3"`
	TotalDays     int       `gorm:"not null"`
	DaysUsed      int       `gorm:"not null;default:0"`
	DaysRemaining int       `gorm:"not null"`
	Version       int64     `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (b *LeaveBalance) recompute() {
	b.DaysRemaining = b.TotalDays - b.DaysUsed
}
