package balance

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	balanceerrors "github.com/fmcmkdict/LMA-App/internal/balance/errors"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	Find(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (*LeaveBalance, error)
	FindAllForEmployee(ctx context.Context, employeeID uuid.UUID, year int) ([]LeaveBalance, error)
	UpdateVersioned(ctx context.Context, b *LeaveBalance) error
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

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) Find(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		First(&b, "employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		Error
	return &b, err
}

func (r *repository) FindAllForEmployee(ctx context.Context, employeeID uuid.UUID, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND year = ?", employeeID, year).
		Find(&balances).Error
	return balances, err
}

// UpdateVersioned writes the row only if nobody else has touched it
// since it was read. On success the in-memory version is bumped to
// match the stored one.
func (r *repository) UpdateVersioned(ctx context.Context, b *LeaveBalance) error {
	res := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(map[string]any{
			"total_days":     b.TotalDays,
			"days_used":      b.DaysUsed,
			"days_remaining": b.DaysRemaining,
			"version":        b.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return balanceerrors.ErrVersionConflict
	}
	b.Version++
	return nil
}
