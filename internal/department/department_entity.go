package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeClinical    = "CLINICAL"
	TypeNonClinical = "NON-CLINICAL"
)

type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:100;not null;uniqueIndex"`
	Type      string    `gorm:"size:20;not null;default:'NON-CLINICAL'"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
