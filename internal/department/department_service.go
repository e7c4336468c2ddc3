package department

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	departmenterrors "github.com/fmcmkdict/LMA-App/internal/department/errors"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *gorm.DB
	repo Repository
}

func NewService(db *gorm.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	dept := &Department{
		ID:   uuid.New(),
		Name: req.Name,
		Type: req.Type,
	}

	if err := s.repo.Create(ctx, dept); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return DepartmentResponse{}, departmenterrors.ErrDuplicateName
		}
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]DepartmentResponse, len(depts))
	for i, dept := range depts {
		resp[i] = mapToResponse(dept)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	var updated Department

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		dept, err := qtx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return departmenterrors.ErrDepartmentNotFound
			}
			return err
		}

		dept.Name = req.Name
		dept.Type = req.Type

		if err := qtx.Update(ctx, dept); err != nil {
			return err
		}
		updated = *dept
		return nil
	})
	if err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return departmenterrors.ErrDepartmentNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:   dept.ID.String(),
		Name: dept.Name,
		Type: dept.Type,
	}
}
