package audit

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type LoginHistoryFilter struct {
	EmployeeID string
	Status     string
	From       *time.Time
	To         *time.Time
	Offset     int
	Limit      int
}

type StatusHistoryFilter struct {
	EmployeeID string
	Change     string
	Offset     int
	Limit      int
}

type LoginStats struct {
	Total   int64
	Success int64
	Failed  int64
	Blocked int64
	Devices map[string]int64
}

type StatusStats struct {
	Total         int64
	Activations   int64
	Deactivations int64
}

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateLoginHistory(ctx context.Context, entry *LoginHistory) error
	ListLoginHistory(ctx context.Context, filter LoginHistoryFilter) ([]LoginHistory, int64, error)
	LoginStatistics(ctx context.Context, from, to *time.Time) (LoginStats, error)
	CreateStatusHistory(ctx context.Context, entry *AccountStatusHistory) error
	ListStatusHistory(ctx context.Context, filter StatusHistoryFilter) ([]AccountStatusHistory, int64, error)
	StatusStatistics(ctx context.Context) (StatusStats, error)
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

func (r *repository) CreateLoginHistory(ctx context.Context, entry *LoginHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListLoginHistory(ctx context.Context, filter LoginHistoryFilter) ([]LoginHistory, int64, error) {
	q := r.db.WithContext(ctx).Model(&LoginHistory{})

	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("login_time >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("login_time < ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []LoginHistory
	err := q.Order("login_time DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&entries).Error
	return entries, total, err
}

func (r *repository) LoginStatistics(ctx context.Context, from, to *time.Time) (LoginStats, error) {
	base := r.db.WithContext(ctx).Model(&LoginHistory{})
	if from != nil {
		base = base.Where("login_time >= ?", *from)
	}
	if to != nil {
		base = base.Where("login_time < ?", *to)
	}

	var stats LoginStats
	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	type statusCount struct {
		Status string
		N      int64
	}
	var byStatus []statusCount
	if err := base.Session(&gorm.Session{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return stats, err
	}
	for _, sc := range byStatus {
		switch sc.Status {
		case LoginSuccess:
			stats.Success = sc.N
		case LoginFailed:
			stats.Failed = sc.N
		case LoginBlocked:
			stats.Blocked = sc.N
		}
	}

	type deviceCount struct {
		DeviceType string
		N          int64
	}
	var byDevice []deviceCount
	if err := base.Session(&gorm.Session{}).
		Select("device_type, COUNT(*) AS n").
		Group("device_type").
		Scan(&byDevice).Error; err != nil {
		return stats, err
	}
	stats.Devices = make(map[string]int64, len(byDevice))
	for _, dc := range byDevice {
		key := dc.DeviceType
		if key == "" {
			key = "unknown"
		}
		stats.Devices[key] = dc.N
	}

	return stats, nil
}

func (r *repository) CreateStatusHistory(ctx context.Context, entry *AccountStatusHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListStatusHistory(ctx context.Context, filter StatusHistoryFilter) ([]AccountStatusHistory, int64, error) {
	q := r.db.WithContext(ctx).Model(&AccountStatusHistory{})

	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Change != "" {
		q = q.Where("status_change = ?", filter.Change)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []AccountStatusHistory
	err := q.Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&entries).Error
	return entries, total, err
}

func (r *repository) StatusStatistics(ctx context.Context) (StatusStats, error) {
	var stats StatusStats
	m := r.db.WithContext(ctx).Model(&AccountStatusHistory{})

	if err := m.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := m.Session(&gorm.Session{}).
		Where("status_change = ?", StatusActivated).
		Count(&stats.Activations).Error; err != nil {
		return stats, err
	}
	if err := m.Session(&gorm.Session{}).
		Where("status_change = ?", StatusDeactivated).
		Count(&stats.Deactivations).Error; err != nil {
		return stats, err
	}
	return stats, nil
}
