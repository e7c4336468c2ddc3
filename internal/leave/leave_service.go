package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fmcmkdict/LMA-App/internal/balance"
	balanceerrors "github.com/fmcmkdict/LMA-App/internal/balance/errors"
	"github.com/fmcmkdict/LMA-App/internal/calendar"
	"github.com/fmcmkdict/LMA-App/internal/employee"
	"github.com/fmcmkdict/LMA-App/internal/events"
	leaveerrors "github.com/fmcmkdict/LMA-App/internal/leave/errors"
	"github.com/fmcmkdict/LMA-App/internal/leavetype"
	"github.com/fmcmkdict/LMA-App/internal/messaging/kafka"
	"github.com/fmcmkdict/LMA-App/internal/shared/apperror"
	"github.com/fmcmkdict/LMA-App/internal/shared/counter"
	"github.com/fmcmkdict/LMA-App/internal/shared/response"
)

const (
	dateLayout = "2006-01-02"

	submitMaxRetries  = 5
	submitInitialWait = 20 * time.Millisecond
)

// RequestMeta is the client fingerprint captured with each submission.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID uuid.UUID, req SubmitLeaveRequest, meta RequestMeta) (LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	List(ctx context.Context, q ListLeavesQuery) ([]LeaveResponse, *response.PaginationMeta, error)
	ListMine(ctx context.Context, employeeID uuid.UUID, q ListLeavesQuery) ([]LeaveResponse, *response.PaginationMeta, error)
	Edit(ctx context.Context, actorID uuid.UUID, isSuperuser bool, id string, req EditLeaveRequest) (LeaveResponse, error)
	Recommend(ctx context.Context, actorID uuid.UUID, id string) (LeaveResponse, error)
	Decide(ctx context.Context, actorID uuid.UUID, id string, approve bool) (LeaveResponse, error)
	Cancel(ctx context.Context, actorID uuid.UUID, id string) (LeaveResponse, error)
	MarkExhausted(ctx context.Context, actorID uuid.UUID, id string) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db            *gorm.DB
	repo          Repository
	leaveTypeRepo leavetype.Repository
	empRepo       employee.Repository
	calendarSvc   calendar.Service
	balanceSvc    balance.Service
	counterRepo   counter.Repository
	outbox        kafka.OutboxRepository
	logger        *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	leaveTypeRepo leavetype.Repository,
	empRepo employee.Repository,
	calendarSvc calendar.Service,
	balanceSvc balance.Service,
	counterRepo counter.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		leaveTypeRepo: leaveTypeRepo,
		empRepo:       empRepo,
		calendarSvc:   calendarSvc,
		balanceSvc:    balanceSvc,
		counterRepo:   counterRepo,
		outbox:        outbox,
		logger:        l,
	}
}

// Submit runs the full admission pipeline: one active request per
// employee, one request per type per year unless the type allows
// repeats, then a ledger debit for the net days. Everything after the
// end-date projection happens in a single transaction, retried when the
// balance row moves underneath it.
func (s *service) Submit(ctx context.Context, employeeID uuid.UUID, req SubmitLeaveRequest, meta RequestMeta) (LeaveResponse, error) {
	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	leaveTypeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, apperror.InvalidField("leave_type_id")
	}

	emp, err := s.empRepo.FindByID(ctx, employeeID.String())
	if err != nil {
		return LeaveResponse{}, err
	}

	lt, err := s.leaveTypeRepo.FindByID(ctx, leaveTypeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveTypeNotFound
		}
		return LeaveResponse{}, err
	}

	var lastTaken *time.Time
	if req.LeaveLastTaken != "" {
		d, err := calendar.ParseDate(req.LeaveLastTaken)
		if err != nil {
			return LeaveResponse{}, apperror.InvalidField("leave_last_taken")
		}
		lastTaken = &d
	}

	netDays := req.Days - req.DeductibleDays
	if netDays < 0 {
		netDays = 0
	}

	endDate, err := s.calendarSvc.ProjectEndDate(ctx, start, netDays)
	if err != nil {
		return LeaveResponse{}, err
	}

	year := start.Year()
	now := time.Now().UTC()

	var created LeaveRequest
	operation := func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			qtx := s.repo.WithTx(tx)

			active, err := qtx.HasActiveRequest(ctx, employeeID)
			if err != nil {
				return backoff.Permanent(err)
			}
			if active {
				return backoff.Permanent(leaveerrors.ErrDuplicateActiveRequest)
			}

			if !lt.MultipleTimes {
				taken, err := qtx.HasTypeInYear(ctx, employeeID, leaveTypeID, year)
				if err != nil {
					return backoff.Permanent(err)
				}
				if taken {
					return backoff.Permanent(leaveerrors.ErrDuplicateTypeThisYear)
				}
			}

			if netDays > 0 {
				if _, err := s.balanceSvc.DebitTx(ctx, tx, employeeID, leaveTypeID, year, netDays); err != nil {
					if errors.Is(err, balanceerrors.ErrVersionConflict) {
						return err
					}
					return backoff.Permanent(err)
				}
			}

			seq, err := s.counterRepo.WithTx(tx).GetNextValue(ctx, fmt.Sprintf("leave_code:%d", year))
			if err != nil {
				return backoff.Permanent(err)
			}

			created = LeaveRequest{
				ID:             uuid.New(),
				LeaveCode:      fmt.Sprintf("LV-%d-%06d", year, seq),
				EmployeeID:     employeeID,
				LeaveTypeID:    leaveTypeID,
				DepartmentID:   emp.DepartmentID,
				UnitID:         emp.UnitID,
				StartDate:      start,
				EndDate:        endDate,
				DaysRequested:  req.Days,
				DeductibleDays: req.DeductibleDays,
				NetDays:        netDays,
				Year:           year,
				Reason:         req.Reason,
				Status:         StatusPending,
				LeaveLastTaken: lastTaken,

				HomeAddress:       req.HomeAddress,
				PlaceToSpendLeave: req.PlaceToSpendLeave,
				AltPhone:          req.AltPhone,
				IPAddress:         meta.IPAddress,
				UserAgent:         meta.UserAgent,
				Latitude:          req.Latitude,
				Longitude:         req.Longitude,
			}
			if err := qtx.Create(ctx, &created); err != nil {
				// The partial unique index backstops the active-request
				// check: a concurrent submit that slipped past it loses
				// here and gets the same error the check would have given.
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return backoff.Permanent(leaveerrors.ErrDuplicateActiveRequest)
				}
				return backoff.Permanent(err)
			}

			evt := events.LeaveSubmitted{
				LeaveID:     created.ID.String(),
				LeaveCode:   created.LeaveCode,
				EmployeeID:  employeeID.String(),
				LeaveTypeID: leaveTypeID.String(),
				StartDate:   start.Format(dateLayout),
				EndDate:     endDate.Format(dateLayout),
				NetDays:     netDays,
				SubmittedAt: now,
			}
			if err := s.outbox.WithTx(tx).Enqueue(ctx, events.TopicLeaveSubmitted, employeeID.String(), evt); err != nil {
				return backoff.Permanent(err)
			}
			return nil
		})
	}

	if err := retrySubmit(ctx, operation); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request submitted",
		zap.String("leave_id", created.ID.String()),
		zap.String("leave_code", created.LeaveCode),
		zap.String("employee_id", employeeID.String()),
		zap.Int("net_days", netDays),
	)
	return mapToResponse(created), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	req, err := s.findRequest(ctx, s.repo, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	resp := mapToResponse(*req)

	// Recomputed rather than stored so the cross-check stays honest when
	// the holiday table changes after submission.
	if days, err := s.calendarSvc.CountWorkingDays(ctx, req.StartDate, req.EndDate); err == nil {
		resp.WorkingDays = days
	}
	return resp, nil
}

func (s *service) List(ctx context.Context, q ListLeavesQuery) ([]LeaveResponse, *response.PaginationMeta, error) {
	return s.list(ctx, ListFilter{
		EmployeeID:   q.EmployeeID,
		DepartmentID: q.DepartmentID,
		UnitID:       q.UnitID,
		Status:       q.Status,
		Year:         q.Year,
		Search:       q.Search,
		Offset:       (q.Page - 1) * q.Limit,
		Limit:        q.Limit,
	}, q.Page, q.Limit)
}

func (s *service) ListMine(ctx context.Context, employeeID uuid.UUID, q ListLeavesQuery) ([]LeaveResponse, *response.PaginationMeta, error) {
	return s.list(ctx, ListFilter{
		EmployeeID: employeeID.String(),
		Status:     q.Status,
		Year:       q.Year,
		Offset:     (q.Page - 1) * q.Limit,
		Limit:      q.Limit,
	}, q.Page, q.Limit)
}

func (s *service) list(ctx context.Context, filter ListFilter, page, limit int) ([]LeaveResponse, *response.PaginationMeta, error) {
	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	resp := make([]LeaveResponse, len(requests))
	for i, req := range requests {
		resp[i] = mapToResponse(req)
	}

	meta := response.NewPaginationMeta(total, page, limit)
	return resp, &meta, nil
}

// Edit lets the owner fix the start date or reason while the request is
// still pending. The granted day count is immutable after submission,
// so the ledger stays untouched and only the end date is reprojected.
func (s *service) Edit(ctx context.Context, actorID uuid.UUID, isSuperuser bool, id string, req EditLeaveRequest) (LeaveResponse, error) {
	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	var updated LeaveRequest
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		lr, err := s.findRequest(ctx, qtx, id)
		if err != nil {
			return err
		}

		if lr.EmployeeID != actorID && !isSuperuser {
			return leaveerrors.ErrNotRequestOwner
		}
		if lr.Status != StatusPending {
			return leaveerrors.ErrEditNotPending
		}
		if start.Year() != lr.Year {
			return apperror.InvalidField("start_date")
		}

		endDate, err := s.calendarSvc.ProjectEndDate(ctx, start, lr.NetDays)
		if err != nil {
			return err
		}

		lr.StartDate = start
		lr.EndDate = endDate
		lr.Reason = req.Reason

		if err := qtx.Update(ctx, lr); err != nil {
			return err
		}
		updated = *lr
		return nil
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	return mapToResponse(updated), nil
}

func (s *service) Recommend(ctx context.Context, actorID uuid.UUID, id string) (LeaveResponse, error) {
	var updated LeaveRequest

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		lr, err := s.findRequest(ctx, qtx, id)
		if err != nil {
			return err
		}

		if lr.Status != StatusPending {
			return leaveerrors.ErrInvalidStateTransition
		}
		if lr.RecommendedBy != nil {
			return leaveerrors.ErrAlreadyRecommended
		}

		now := time.Now().UTC()
		lr.RecommendedBy = &actorID
		lr.RecommendedAt = &now

		if err := qtx.Update(ctx, lr); err != nil {
			return err
		}
		updated = *lr
		return nil
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request recommended",
		zap.String("leave_id", updated.ID.String()),
		zap.String("recommended_by", actorID.String()),
	)
	return mapToResponse(updated), nil
}

// Decide approves or rejects a recommended request. Rejection returns
// the debited days to the ledger in the same transaction.
func (s *service) Decide(ctx context.Context, actorID uuid.UUID, id string, approve bool) (LeaveResponse, error) {
	var updated LeaveRequest

	operation := func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			qtx := s.repo.WithTx(tx)

			lr, err := s.findRequest(ctx, qtx, id)
			if err != nil {
				return backoff.Permanent(err)
			}

			if lr.Status != StatusPending {
				return backoff.Permanent(leaveerrors.ErrAlreadyDecided)
			}
			if lr.RecommendedBy == nil {
				return backoff.Permanent(leaveerrors.ErrNotRecommended)
			}

			now := time.Now().UTC()
			lr.DecidedBy = &actorID
			lr.DecidedAt = &now

			if approve {
				lr.Status = StatusApproved
			} else {
				lr.Status = StatusRejected
				if lr.NetDays > 0 {
					if _, err := s.balanceSvc.CreditTx(ctx, tx, lr.EmployeeID, lr.LeaveTypeID, lr.Year, lr.NetDays); err != nil {
						if errors.Is(err, balanceerrors.ErrVersionConflict) {
							return err
						}
						return backoff.Permanent(err)
					}
				}
			}

			if err := qtx.Update(ctx, lr); err != nil {
				return backoff.Permanent(err)
			}

			evt := events.LeaveDecided{
				LeaveID:    lr.ID.String(),
				LeaveCode:  lr.LeaveCode,
				EmployeeID: lr.EmployeeID.String(),
				Status:     lr.Status,
				DecidedBy:  actorID.String(),
				DecidedAt:  now,
			}
			if err := s.outbox.WithTx(tx).Enqueue(ctx, events.TopicLeaveDecided, lr.EmployeeID.String(), evt); err != nil {
				return backoff.Permanent(err)
			}

			updated = *lr
			return nil
		})
	}

	if err := retrySubmit(ctx, operation); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request decided",
		zap.String("leave_id", updated.ID.String()),
		zap.String("status", updated.Status),
		zap.String("decided_by", actorID.String()),
	)
	return mapToResponse(updated), nil
}

// Cancel withdraws a pending or approved request and returns its days.
func (s *service) Cancel(ctx context.Context, actorID uuid.UUID, id string) (LeaveResponse, error) {
	var updated LeaveRequest

	operation := func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			qtx := s.repo.WithTx(tx)

			lr, err := s.findRequest(ctx, qtx, id)
			if err != nil {
				return backoff.Permanent(err)
			}

			if !lr.Active() {
				return backoff.Permanent(leaveerrors.ErrInvalidStateTransition)
			}

			now := time.Now().UTC()
			lr.Status = StatusCancelled
			lr.DecidedBy = &actorID
			lr.DecidedAt = &now

			if lr.NetDays > 0 {
				if _, err := s.balanceSvc.CreditTx(ctx, tx, lr.EmployeeID, lr.LeaveTypeID, lr.Year, lr.NetDays); err != nil {
					if errors.Is(err, balanceerrors.ErrVersionConflict) {
						return err
					}
					return backoff.Permanent(err)
				}
			}

			if err := qtx.Update(ctx, lr); err != nil {
				return backoff.Permanent(err)
			}
			updated = *lr
			return nil
		})
	}

	if err := retrySubmit(ctx, operation); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request cancelled",
		zap.String("leave_id", updated.ID.String()),
		zap.String("cancelled_by", actorID.String()),
	)
	return mapToResponse(updated), nil
}

// MarkExhausted closes an approved request whose days have been fully
// used. The ledger keeps the debit.
func (s *service) MarkExhausted(ctx context.Context, actorID uuid.UUID, id string) (LeaveResponse, error) {
	var updated LeaveRequest

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		lr, err := s.findRequest(ctx, qtx, id)
		if err != nil {
			return err
		}

		if lr.Status != StatusApproved {
			return leaveerrors.ErrInvalidStateTransition
		}

		now := time.Now().UTC()
		lr.Status = StatusExhausted
		lr.DecidedBy = &actorID
		lr.DecidedAt = &now

		if err := qtx.Update(ctx, lr); err != nil {
			return err
		}
		updated = *lr
		return nil
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.findRequest(ctx, s.repo, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) findRequest(ctx context.Context, repo Repository, id string) (*LeaveRequest, error) {
	lr, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return lr, nil
}

func retrySubmit(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = submitInitialWait

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, submitMaxRetries), ctx))
	if err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			return perm.Err
		}
		return err
	}
	return nil
}

func mapToResponse(lr LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:             lr.ID.String(),
		LeaveCode:      lr.LeaveCode,
		EmployeeID:     lr.EmployeeID.String(),
		LeaveTypeID:    lr.LeaveTypeID.String(),
		StartDate:      lr.StartDate.Format(dateLayout),
		EndDate:        lr.EndDate.Format(dateLayout),
		DaysRequested:  lr.DaysRequested,
		DeductibleDays: lr.DeductibleDays,
		NetDays:        lr.NetDays,
		Year:           lr.Year,
		Reason:         lr.Reason,
		Status:         lr.Status,
		HomeAddress:    lr.HomeAddress,
		PlaceToSpend:   lr.PlaceToSpendLeave,
		AltPhone:       lr.AltPhone,
		Latitude:       lr.Latitude,
		Longitude:      lr.Longitude,
		CreatedAt:      lr.CreatedAt.UTC().Format(time.RFC3339),
	}
	if lr.DepartmentID != nil {
		resp.DepartmentID = lr.DepartmentID.String()
	}
	if lr.UnitID != nil {
		resp.UnitID = lr.UnitID.String()
	}
	if lr.RecommendedBy != nil {
		resp.RecommendedBy = lr.RecommendedBy.String()
	}
	if lr.RecommendedAt != nil {
		resp.RecommendedAt = lr.RecommendedAt.UTC().Format(time.RFC3339)
	}
	if lr.DecidedBy != nil {
		resp.DecidedBy = lr.DecidedBy.String()
	}
	if lr.DecidedAt != nil {
		resp.DecidedAt = lr.DecidedAt.UTC().Format(time.RFC3339)
	}
	if lr.LeaveLastTaken != nil {
		resp.LeaveLastTaken = lr.LeaveLastTaken.Format(dateLayout)
	}
	return resp
}
