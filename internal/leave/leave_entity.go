package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Request lifecycle. A request is "active" while pending or approved;
// the partial unique index on employees enforces one active request at
// a time.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
	StatusExhausted = "exhausted"
)

// LeaveRequest is one application for leave. Department and unit are
// snapshotted at submission time so later transfers do not rewrite who
// was responsible for the approval chain.
type LeaveRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeaveCode string    `gorm:"size:20;not null;uniqueIndex"`

	EmployeeID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	LeaveTypeID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	UnitID       *uuid.UUID `gorm:"type:uuid;index"`

	StartDate      time.Time `gorm:"type:date;not null"`
	EndDate        time.Time `gorm:"type:date;not null"`
	DaysRequested  int       `gorm:"not null"`
	DeductibleDays int       `gorm:"not null;default:0"`
	NetDays        int       `gorm:"not null"`
	Year           int       `gorm:"not null;index"`
	Reason         string    `gorm:"size:500"`

	Status string `gorm:"size:10;not null;default:'pending';index"`

	RecommendedBy *uuid.UUID `gorm:"type:uuid"`
	RecommendedAt *time.Time
	DecidedBy     *uuid.UUID `gorm:"type:uuid"`
	DecidedAt     *time.Time

	LeaveLastTaken *time.Time `gorm:"type:date"`

	HomeAddress       string `gorm:"size:255"`
	PlaceToSpendLeave string `gorm:"size:255"`
	AltPhone          string `gorm:"size:20"`

	IPAddress string   `gorm:"size:45"`
	UserAgent string   `gorm:"size:255"`
	Latitude  *float64 `gorm:"type:decimal(9,6)"`
	Longitude *float64 `gorm:"type:decimal(9,6)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Active reports whether the request still occupies the employee's
// single active slot.
func (r *LeaveRequest) Active() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}
