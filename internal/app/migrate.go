package app

import (
	"gorm.io/gorm"

	"github.com/fmcmkdict/LMA-App/internal/audit"
	"github.com/fmcmkdict/LMA-App/internal/balance"
	"github.com/fmcmkdict/LMA-App/internal/calendar"
	"github.com/fmcmkdict/LMA-App/internal/department"
	"github.com/fmcmkdict/LMA-App/internal/employee"
	"github.com/fmcmkdict/LMA-App/internal/leave"
	"github.com/fmcmkdict/LMA-App/internal/leavetype"
	"github.com/fmcmkdict/LMA-App/internal/messaging/kafka"
	"github.com/fmcmkdict/LMA-App/internal/unit"
)

// Migrate creates or updates every table the application owns. The raw
// statements cover what AutoMigrate cannot express: the counter table
// used by raw upserts and the partial index that allows at most one
// pending-or-approved request per employee.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&department.Department{},
		&unit.Unit{},
		&employee.Employee{},
		&leavetype.LeaveType{},
		&calendar.Holiday{},
		&balance.LeaveBalance{},
		&leave.LeaveRequest{},
		&audit.LoginHistory{},
		&audit.AccountStatusHistory{},
		&kafka.OutboxEvent{},
	); err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sequence_counters (
			scope      VARCHAR(100) PRIMARY KEY,
			last_value BIGINT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`).Error; err != nil {
		return err
	}

	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_leave_requests_one_active
		ON leave_requests (employee_id)
		WHERE status IN ('pending', 'approved') AND deleted_at IS NULL
	`).Error
}
