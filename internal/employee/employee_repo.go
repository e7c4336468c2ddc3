package employee

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type ListFilter struct {
	Search       string
	DepartmentID string
	UnitID       string
	ActiveOnly   bool
	Offset       int
	Limit        int
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, emp *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByUsername(ctx context.Context, username string) (*Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	Update(ctx context.Context, emp *Employee) error
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

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).First(&emp, "id = ?", id).Error
	return &emp, err
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).First(&emp, "username = ?", username).Error
	return &emp, err
}

// List searches by surname substring and filters by org placement.
func (r *repository) List(ctx context.Context, filter ListFilter) ([]Employee, int64, error) {
	q := r.db.WithContext(ctx).Model(&Employee{})

	if s := strings.TrimSpace(filter.Search); s != "" {
		q = q.Where("LOWER(sur_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if filter.DepartmentID != "" {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.UnitID != "" {
		q = q.Where("unit_id = ?", filter.UnitID)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var emps []Employee
	err := q.Order("sur_name ASC, first_name ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&emps).Error
	return emps, total, err
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}
