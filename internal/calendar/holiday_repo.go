package calendar

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, h *Holiday) error
	FindAll(ctx context.Context, year int) ([]Holiday, error)
	FindByID(ctx context.Context, id string) (*Holiday, error)
	Delete(ctx context.Context, id string) error
	ExistsOnDate(ctx context.Context, date time.Time) (bool, error)
	DatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
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

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindAll(ctx context.Context, year int) ([]Holiday, error) {
	var holidays []Holiday
	q := r.db.WithContext(ctx).Order("date ASC")
	if year > 0 {
		q = q.Where("year = ?", year)
	}
	err := q.Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	return &h, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Holiday{}, "id = ?", id).Error
}

func (r *repository) ExistsOnDate(ctx context.Context, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Holiday{}).
		Where("date = ?", date).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) DatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&Holiday{}).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Pluck("date", &dates).Error
	return dates, err
}
