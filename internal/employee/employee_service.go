package employee

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fmcmkdict/LMA-App/internal/audit"
	"github.com/fmcmkdict/LMA-App/internal/department"
	employeeerrors "github.com/fmcmkdict/LMA-App/internal/employee/errors"
	"github.com/fmcmkdict/LMA-App/internal/events"
	"github.com/fmcmkdict/LMA-App/internal/messaging/kafka"
	"github.com/fmcmkdict/LMA-App/internal/shared/apperror"
	"github.com/fmcmkdict/LMA-App/internal/shared/response"
	"github.com/fmcmkdict/LMA-App/internal/unit"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, q ListEmployeesQuery) ([]EmployeeResponse, *response.PaginationMeta, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	ChangeStatus(ctx context.Context, id string, req ChangeStatusRequest, changedBy uuid.UUID) (EmployeeResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	deptRepo  department.Repository
	unitRepo  unit.Repository
	auditRepo audit.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	deptRepo department.Repository,
	unitRepo unit.Repository,
	auditRepo audit.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		deptRepo:  deptRepo,
		unitRepo:  unitRepo,
		auditRepo: auditRepo,
		outbox:    outbox,
		logger:    l,
	}
}

func (s *service) Register(ctx context.Context, req RegisterEmployeeRequest) (EmployeeResponse, error) {
	deptID, unitID, err := s.resolvePlacement(ctx, req.DepartmentID, req.UnitID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	dob, err := parseOptionalDate("dob", req.DOB)
	if err != nil {
		return EmployeeResponse{}, err
	}
	firstAppt, err := parseOptionalDate("date_first_appt", req.DateFirstAppt)
	if err != nil {
		return EmployeeResponse{}, err
	}
	confirmed, err := parseOptionalDate("date_confirmed", req.DateConfirmed)
	if err != nil {
		return EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return EmployeeResponse{}, err
	}

	emp := &Employee{
		ID:            uuid.New(),
		Username:      req.Username,
		PasswordHash:  string(hash),
		SurName:       req.SurName,
		FirstName:     req.FirstName,
		OtherName:     req.OtherName,
		Gender:        req.Gender,
		Designation:   req.Designation,
		Phone:         req.Phone,
		Email:         req.Email,
		DOB:           dob,
		DateFirstAppt: firstAppt,
		DateConfirmed: confirmed,
		DepartmentID:  deptID,
		UnitID:        unitID,
		IsActive:      true,
		IsHR:          req.IsHR,
		IsHOD:         req.IsHOD,
		IsUnitHead:    req.IsUnitHead,
		IsManager:     req.IsManager,
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return EmployeeResponse{}, employeeerrors.ErrDuplicateUsername
		}
		return EmployeeResponse{}, err
	}

	s.logger.Info("employee registered",
		zap.String("employee_id", emp.ID.String()),
		zap.String("username", emp.Username),
	)
	return mapToResponse(*emp), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*emp), nil
}

func (s *service) List(ctx context.Context, q ListEmployeesQuery) ([]EmployeeResponse, *response.PaginationMeta, error) {
	emps, total, err := s.repo.List(ctx, ListFilter{
		Search:       q.Search,
		DepartmentID: q.DepartmentID,
		UnitID:       q.UnitID,
		ActiveOnly:   q.ActiveOnly,
		Offset:       (q.Page - 1) * q.Limit,
		Limit:        q.Limit,
	})
	if err != nil {
		return nil, nil, err
	}

	resp := make([]EmployeeResponse, len(emps))
	for i, emp := range emps {
		resp[i] = mapToResponse(emp)
	}

	meta := response.NewPaginationMeta(total, q.Page, q.Limit)
	return resp, &meta, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	deptID, unitID, err := s.resolvePlacement(ctx, req.DepartmentID, req.UnitID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	dob, err := parseOptionalDate("dob", req.DOB)
	if err != nil {
		return EmployeeResponse{}, err
	}
	firstAppt, err := parseOptionalDate("date_first_appt", req.DateFirstAppt)
	if err != nil {
		return EmployeeResponse{}, err
	}
	confirmed, err := parseOptionalDate("date_confirmed", req.DateConfirmed)
	if err != nil {
		return EmployeeResponse{}, err
	}

	var updated Employee
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		emp, err := qtx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return employeeerrors.ErrEmployeeNotFound
			}
			return err
		}

		emp.SurName = req.SurName
		emp.FirstName = req.FirstName
		emp.OtherName = req.OtherName
		emp.Gender = req.Gender
		emp.Designation = req.Designation
		emp.Phone = req.Phone
		emp.Email = req.Email
		emp.DOB = dob
		emp.DateFirstAppt = firstAppt
		emp.DateConfirmed = confirmed
		emp.DepartmentID = deptID
		emp.UnitID = unitID

		if req.IsHR != nil {
			emp.IsHR = *req.IsHR
		}
		if req.IsHOD != nil {
			emp.IsHOD = *req.IsHOD
		}
		if req.IsUnitHead != nil {
			emp.IsUnitHead = *req.IsUnitHead
		}
		if req.IsManager != nil {
			emp.IsManager = *req.IsManager
		}

		if err := qtx.Update(ctx, emp); err != nil {
			return err
		}
		updated = *emp
		return nil
	})
	if err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(updated), nil
}

// ChangeStatus flips the active flag and records the change, its reason
// and its author in the same transaction. A status event is queued for
// downstream consumers.
func (s *service) ChangeStatus(ctx context.Context, id string, req ChangeStatusRequest, changedBy uuid.UUID) (EmployeeResponse, error) {
	var updated Employee

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		emp, err := qtx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return employeeerrors.ErrEmployeeNotFound
			}
			return err
		}

		if emp.IsActive == req.IsActive {
			return employeeerrors.ErrStatusUnchanged
		}

		change := audit.StatusDeactivated
		if req.IsActive {
			change = audit.StatusActivated
		}

		emp.IsActive = req.IsActive
		if err := qtx.Update(ctx, emp); err != nil {
			return err
		}

		history := &audit.AccountStatusHistory{
			ID:             uuid.New(),
			EmployeeID:     emp.ID,
			PreviousStatus: statusLabel(!req.IsActive),
			NewStatus:      statusLabel(req.IsActive),
			StatusChange:   change,
			Reason:         req.Reason,
			ChangedBy:      changedBy,
		}
		if err := s.auditRepo.WithTx(tx).CreateStatusHistory(ctx, history); err != nil {
			return err
		}

		evt := events.AccountStatusChanged{
			EmployeeID: emp.ID.String(),
			Username:   emp.Username,
			Change:     change,
			Reason:     req.Reason,
			ChangedBy:  changedBy.String(),
			ChangedAt:  time.Now().UTC(),
		}
		if err := s.outbox.WithTx(tx).Enqueue(ctx, events.TopicAccountStatusChanged, emp.ID.String(), evt); err != nil {
			return err
		}

		updated = *emp
		return nil
	})
	if err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("employee status changed",
		zap.String("employee_id", updated.ID.String()),
		zap.Bool("is_active", updated.IsActive),
		zap.String("changed_by", changedBy.String()),
	)
	return mapToResponse(updated), nil
}

func (s *service) resolvePlacement(ctx context.Context, deptID, unitID string) (*uuid.UUID, *uuid.UUID, error) {
	var dept, un *uuid.UUID

	if deptID != "" {
		d, err := s.deptRepo.FindByID(ctx, deptID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, employeeerrors.ErrDepartmentNotFound
			}
			return nil, nil, err
		}
		dept = &d.ID
	}

	if unitID != "" {
		u, err := s.unitRepo.FindByID(ctx, unitID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, employeeerrors.ErrUnitNotFound
			}
			return nil, nil, err
		}
		un = &u.ID
	}

	return dept, un, nil
}

func statusLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperror.InvalidField(field)
	}
	t = t.UTC()
	return &t, nil
}

func mapToResponse(emp Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           emp.ID.String(),
		Username:     emp.Username,
		SurName:      emp.SurName,
		FirstName:    emp.FirstName,
		OtherName:    emp.OtherName,
		FullName:     emp.FullName(),
		Gender:       emp.Gender,
		Designation:  emp.Designation,
		Phone:        emp.Phone,
		Email:        emp.Email,
		IsActive:     emp.IsActive,
		Capabilities: emp.Capabilities().Strings(),
	}
	if emp.DOB != nil {
		resp.DOB = emp.DOB.Format(dateLayout)
	}
	if emp.DateFirstAppt != nil {
		resp.DateFirstAppt = emp.DateFirstAppt.Format(dateLayout)
	}
	if emp.DateConfirmed != nil {
		resp.DateConfirmed = emp.DateConfirmed.Format(dateLayout)
	}
	if emp.DepartmentID != nil {
		resp.DepartmentID = emp.DepartmentID.String()
	}
	if emp.UnitID != nil {
		resp.UnitID = emp.UnitID.String()
	}
	return resp
}
