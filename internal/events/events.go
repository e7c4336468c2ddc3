// Package events defines the payloads published to Kafka through the
// transactional outbox. Payloads are versioned by topic name; fields are
// only ever added, never repurposed.
package events

import "time"

const (
	TopicLeaveSubmitted       = "leave.submitted"
	TopicLeaveDecided         = "leave.decided"
	TopicAccountStatusChanged = "employee.account_status_changed"
)

type LeaveSubmitted struct {
	LeaveID     string    `json:"leave_id"`
	LeaveCode   string    `json:"leave_code"`
	EmployeeID  string    `json:"employee_id"`
	LeaveTypeID string    `json:"leave_type_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	NetDays     int       `json:"net_days"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type LeaveDecided struct {
	LeaveID    string    `json:"leave_id"`
	LeaveCode  string    `json:"leave_code"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	DecidedBy  string    `json:"decided_by"`
	DecidedAt  time.Time `json:"decided_at"`
}

type AccountStatusChanged struct {
	EmployeeID string    `json:"employee_id"`
	Username   string    `json:"username"`
	Change     string    `json:"change"`
	Reason     string    `json:"reason,omitempty"`
	ChangedBy  string    `json:"changed_by"`
	ChangedAt  time.Time `json:"changed_at"`
}
