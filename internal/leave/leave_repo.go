package leave

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	EmployeeID   string
	DepartmentID string
	UnitID       string
	Status       string
	Year         int
	Search       string
	Offset       int
	Limit        int
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, req *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	HasActiveRequest(ctx context.Context, employeeID uuid.UUID) (bool, error)
	HasTypeInYear(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error)
	Update(ctx context.Context, req *LeaveRequest) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) HasActiveRequest(ctx context.Context, employeeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ? AND status IN ?", employeeID, []string{StatusPending, StatusApproved}).
		Count(&count).Error
	return count > 0, err
}

// HasTypeInYear counts requests of the same type for the year that are
// still standing. Rejected and cancelled requests free the slot.
func (r *repository) HasTypeInYear(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ? AND leave_type_id = ? AND year = ? AND status IN ?",
			employeeID, leaveTypeID, year,
			[]string{StatusPending, StatusApproved, StatusExhausted}).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&LeaveRequest{})

	if filter.EmployeeID != "" {
		q = q.Where("leave_requests.employee_id = ?", filter.EmployeeID)
	}
	if filter.DepartmentID != "" {
		q = q.Where("leave_requests.department_id = ?", filter.DepartmentID)
	}
	if filter.UnitID != "" {
		q = q.Where("leave_requests.unit_id = ?", filter.UnitID)
	}
	if filter.Status != "" {
		q = q.Where("leave_requests.status = ?", filter.Status)
	}
	if filter.Year != 0 {
		q = q.Where("leave_requests.year = ?", filter.Year)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		q = q.Joins("JOIN employees ON employees.id = leave_requests.employee_id").
			Where("LOWER(employees.sur_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []LeaveRequest
	err := q.Order("leave_requests.created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&requests).Error
	return requests, total, err
}

func (r *repository) Update(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&LeaveRequest{}, "id = ?", id).Error
}
