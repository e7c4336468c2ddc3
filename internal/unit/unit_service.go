package unit

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fmcmkdict/LMA-App/internal/department"
	uniterrors "github.com/fmcmkdict/LMA-App/internal/unit/errors"
)

//go:generate mockgen -source=unit_service.go -destination=mock/unit_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUnitRequest) (UnitResponse, error)
	GetAll(ctx context.Context, departmentID string) ([]UnitResponse, error)
	GetByID(ctx context.Context, id string) (UnitResponse, error)
	Update(ctx context.Context, id string, req UpdateUnitRequest) (UnitResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *gorm.DB
	repo     Repository
	deptRepo department.Repository
}

func NewService(db *gorm.DB, repo Repository, deptRepo department.Repository) Service {
	return &service{db: db, repo: repo, deptRepo: deptRepo}
}

func (s *service) Create(ctx context.Context, req CreateUnitRequest) (UnitResponse, error) {
	deptID, err := s.resolveDepartment(ctx, req.DepartmentID)
	if err != nil {
		return UnitResponse{}, err
	}

	u := &Unit{
		ID:           uuid.New(),
		Name:         req.Name,
		DepartmentID: deptID,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return UnitResponse{}, uniterrors.ErrDuplicateName
		}
		return UnitResponse{}, err
	}

	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context, departmentID string) ([]UnitResponse, error) {
	units, err := s.repo.FindAll(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	resp := make([]UnitResponse, len(units))
	for i, u := range units {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UnitResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UnitResponse{}, uniterrors.ErrUnitNotFound
		}
		return UnitResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUnitRequest) (UnitResponse, error) {
	deptID, err := s.resolveDepartment(ctx, req.DepartmentID)
	if err != nil {
		return UnitResponse{}, err
	}

	var updated Unit
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		u, err := qtx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uniterrors.ErrUnitNotFound
			}
			return err
		}

		u.Name = req.Name
		u.DepartmentID = deptID

		if err := qtx.Update(ctx, u); err != nil {
			return err
		}
		updated = *u
		return nil
	})
	if err != nil {
		return UnitResponse{}, err
	}

	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uniterrors.ErrUnitNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) resolveDepartment(ctx context.Context, id string) (uuid.UUID, error) {
	dept, err := s.deptRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, uniterrors.ErrDepartmentNotFound
		}
		return uuid.Nil, err
	}
	return dept.ID, nil
}

func mapToResponse(u Unit) UnitResponse {
	return UnitResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		DepartmentID: u.DepartmentID.String(),
	}
}
