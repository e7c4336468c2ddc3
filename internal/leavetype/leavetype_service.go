package leavetype

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	leavetypeerrors "github.com/fmcmkdict/LMA-App/internal/leavetype/errors"
)

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *gorm.DB
	repo Repository
}

func NewService(db *gorm.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	lt := &LeaveType{
		ID:            uuid.New(),
		Name:          req.Name,
		NumberOfDays:  req.NumberOfDays,
		MultipleTimes: req.MultipleTimes,
	}

	if err := s.repo.Create(ctx, lt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrDuplicateName
		}
		return LeaveTypeResponse{}, err
	}

	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	var updated LeaveType

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		lt, err := qtx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leavetypeerrors.ErrLeaveTypeNotFound
			}
			return err
		}

		lt.Name = req.Name
		lt.NumberOfDays = req.NumberOfDays
		lt.MultipleTimes = req.MultipleTimes

		if err := qtx.Update(ctx, lt); err != nil {
			return err
		}
		updated = *lt
		return nil
	})
	if err != nil {
		return LeaveTypeResponse{}, err
	}

	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavetypeerrors.ErrLeaveTypeNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:            lt.ID.String(),
		Name:          lt.Name,
		NumberOfDays:  lt.NumberOfDays,
		MultipleTimes: lt.MultipleTimes,
	}
}
