package unit

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=unit_repo.go -destination=mock/unit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, u *Unit) error
	FindAll(ctx context.Context, departmentID string) ([]Unit, error)
	FindByID(ctx context.Context, id string) (*Unit, error)
	Update(ctx context.Context, u *Unit) error
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

func (r *repository) Create(ctx context.Context, u *Unit) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// FindAll lists units, optionally restricted to one department.
func (r *repository) FindAll(ctx context.Context, departmentID string) ([]Unit, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}

	var units []Unit
	err := q.Find(&units).Error
	return units, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Unit, error) {
	var u Unit
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) Update(ctx context.Context, u *Unit) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Unit{}, "id = ?", id).Error
}
