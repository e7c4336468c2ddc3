package audit

import (
	"time"

	"github.com/google/uuid"
)

const (
	LoginSuccess = "success"
	LoginFailed  = "failed"
	LoginBlocked = "blocked"
)

const (
	StatusActivated   = "ACTIVATED"
	StatusDeactivated = "DEACTIVATED"
)

// LoginHistory records every authentication attempt, including ones
// that never resolved to an account. EmployeeID is nil in that case.
type LoginHistory struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;index"`
	Username   string     `gorm:"size:50;not null;index"`
	Status     string     `gorm:"size:10;not null;index"`
	IPAddress  string     `gorm:"size:45"`
	UserAgent  string     `gorm:"size:255"`
	DeviceType string     `gorm:"size:20"`
	Browser    string     `gorm:"size:30"`
	OSType     string     `gorm:"size:30"`
	LoginTime  time.Time  `gorm:"not null;index"`
}

// AccountStatusHistory records activations and deactivations together
// with who made the change and why.
type AccountStatusHistory struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index"`
	PreviousStatus string    `gorm:"size:15;not null"`
	NewStatus      string    `gorm:"size:15;not null"`
	StatusChange   string    `gorm:"size:15;not null;index"`
	Reason         string    `gorm:"size:255"`
	ChangedBy      uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt      time.Time
}
