package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fmcmkdict/LMA-App/internal/domain"
)

// Employee is a staff account. The boolean role flags are additive:
// an employee may hold several at once, and each one contributes its
// capability to the set used for authorization.
type Employee struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username      string    `gorm:"size:50;not null;uniqueIndex"`
	PasswordHash  string    `gorm:"size:100;not null"`
	SurName       string    `gorm:"size:100;not null;index"`
	FirstName     string    `gorm:"size:100;not null"`
	OtherName     string    `gorm:"size:100"`
	Gender        string    `gorm:"size:10"`
	Designation   string    `gorm:"size:100"`
	Phone         string    `gorm:"size:30"`
	Email         string    `gorm:"size:120;index"`
	DOB           *time.Time `gorm:"type:date"`
	DateFirstAppt *time.Time `gorm:"type:date"`
	DateConfirmed *time.Time `gorm:"type:date"`

	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	UnitID       *uuid.UUID `gorm:"type:uuid;index"`

	IsActive    bool `gorm:"not null;default:true"`
	IsSuperuser bool `gorm:"not null;default:false"`
	IsHR        bool `gorm:"not null;default:false"`
	IsHOD       bool `gorm:"not null;default:false"`
	IsUnitHead  bool `gorm:"not null;default:false"`
	IsManager   bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Capabilities maps the role flags onto the capability set consumed by
// the policy enforcer. Every account carries the base employee
// capability.
func (e *Employee) Capabilities() domain.CapabilitySet {
	caps := domain.CapabilitySet{domain.CapEmployee: struct{}{}}
	if e.IsSuperuser {
		caps[domain.CapSuperuser] = struct{}{}
	}
	if e.IsHR {
		caps[domain.CapHR] = struct{}{}
	}
	if e.IsHOD {
		caps[domain.CapHOD] = struct{}{}
	}
	if e.IsUnitHead {
		caps[domain.CapUnitHead] = struct{}{}
	}
	if e.IsManager {
		caps[domain.CapManager] = struct{}{}
	}
	return caps
}

// FullName joins surname, first name and other name, skipping blanks.
func (e *Employee) FullName() string {
	name := e.SurName + " " + e.FirstName
	if e.OtherName != "" {
		name += " " + e.OtherName
	}
	return name
}
