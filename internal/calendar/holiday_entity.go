package calendar

import (
	"time"

	"github.com/google/uuid"
)

// Holiday marks a calendar date as non-working. Unique per date.
type Holiday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:255;not null"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex"`
	Year        int       `gorm:"not null;index"`
	Description string    `gorm:"size:200"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
