package unit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unit is a subdivision of a department. Names are unique across the
// organisation, not just within the owning department.
type Unit struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:100;not null;uniqueIndex"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
