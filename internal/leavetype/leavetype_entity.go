package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveType is reference data: the annual allotment in working days and
// whether the type may be taken in several separate requests per year.
type LeaveType struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"size:100;not null;uniqueIndex"`
	NumberOfDays  int       `gorm:"not null;default:0"`
	MultipleTimes bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
