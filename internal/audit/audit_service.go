package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fmcmkdict/LMA-App/internal/shared/apperror"
	"github.com/fmcmkdict/LMA-App/internal/shared/response"
)

const dateLayout = "2006-01-02"

// LoginAttempt is everything the auth flow knows about one sign-in try.
type LoginAttempt struct {
	EmployeeID *uuid.UUID
	Username   string
	Status     string
	IPAddress  string
	UserAgent  string
}

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	RecordLoginAttempt(ctx context.Context, attempt LoginAttempt)
	ListLoginHistory(ctx context.Context, q ListLoginHistoryQuery) ([]LoginHistoryResponse, *response.PaginationMeta, error)
	LoginStatistics(ctx context.Context, from, to string) (LoginStatisticsResponse, error)
	ListStatusHistory(ctx context.Context, q ListStatusHistoryQuery) ([]StatusHistoryResponse, *response.PaginationMeta, error)
	StatusStatistics(ctx context.Context) (StatusStatisticsResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

// RecordLoginAttempt never fails the caller. A sign-in must not be
// rejected because the history insert hit a transient error.
func (s *service) RecordLoginAttempt(ctx context.Context, attempt LoginAttempt) {
	device, browser, osType := ClassifyUserAgent(attempt.UserAgent)

	entry := &LoginHistory{
		ID:         uuid.New(),
		EmployeeID: attempt.EmployeeID,
		Username:   attempt.Username,
		Status:     attempt.Status,
		IPAddress:  attempt.IPAddress,
		UserAgent:  attempt.UserAgent,
		DeviceType: device,
		Browser:    browser,
		OSType:     osType,
		LoginTime:  time.Now().UTC(),
	}

	if err := s.repo.CreateLoginHistory(ctx, entry); err != nil {
		s.logger.Error("failed to record login attempt",
			zap.String("username", attempt.Username),
			zap.String("status", attempt.Status),
			zap.Error(err),
		)
	}
}

func (s *service) ListLoginHistory(ctx context.Context, q ListLoginHistoryQuery) ([]LoginHistoryResponse, *response.PaginationMeta, error) {
	filter := LoginHistoryFilter{
		EmployeeID: q.EmployeeID,
		Status:     q.Status,
		Offset:     (q.Page - 1) * q.Limit,
		Limit:      q.Limit,
	}

	var err error
	if filter.From, err = parseDateFilter("from", q.From); err != nil {
		return nil, nil, err
	}
	if filter.To, err = parseDateFilter("to", q.To); err != nil {
		return nil, nil, err
	}

	entries, total, err := s.repo.ListLoginHistory(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	resp := make([]LoginHistoryResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapLoginHistory(e)
	}

	meta := response.NewPaginationMeta(total, q.Page, q.Limit)
	return resp, &meta, nil
}

func (s *service) LoginStatistics(ctx context.Context, from, to string) (LoginStatisticsResponse, error) {
	fromT, err := parseDateFilter("from", from)
	if err != nil {
		return LoginStatisticsResponse{}, err
	}
	toT, err := parseDateFilter("to", to)
	if err != nil {
		return LoginStatisticsResponse{}, err
	}

	stats, err := s.repo.LoginStatistics(ctx, fromT, toT)
	if err != nil {
		return LoginStatisticsResponse{}, err
	}

	resp := LoginStatisticsResponse{
		Total:   stats.Total,
		Success: stats.Success,
		Failed:  stats.Failed,
		Blocked: stats.Blocked,
		Devices: stats.Devices,
	}
	if stats.Total > 0 {
		resp.SuccessRate = float64(stats.Success) / float64(stats.Total)
		resp.FailureRate = float64(stats.Failed+stats.Blocked) / float64(stats.Total)
	}
	return resp, nil
}

func (s *service) ListStatusHistory(ctx context.Context, q ListStatusHistoryQuery) ([]StatusHistoryResponse, *response.PaginationMeta, error) {
	entries, total, err := s.repo.ListStatusHistory(ctx, StatusHistoryFilter{
		EmployeeID: q.EmployeeID,
		Change:     q.Change,
		Offset:     (q.Page - 1) * q.Limit,
		Limit:      q.Limit,
	})
	if err != nil {
		return nil, nil, err
	}

	resp := make([]StatusHistoryResponse, len(entries))
	for i, e := range entries {
		resp[i] = StatusHistoryResponse{
			ID:             e.ID.String(),
			EmployeeID:     e.EmployeeID.String(),
			PreviousStatus: e.PreviousStatus,
			NewStatus:      e.NewStatus,
			StatusChange:   e.StatusChange,
			Reason:         e.Reason,
			ChangedBy:      e.ChangedBy.String(),
			CreatedAt:      e.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	meta := response.NewPaginationMeta(total, q.Page, q.Limit)
	return resp, &meta, nil
}

func (s *service) StatusStatistics(ctx context.Context) (StatusStatisticsResponse, error) {
	stats, err := s.repo.StatusStatistics(ctx)
	if err != nil {
		return StatusStatisticsResponse{}, err
	}
	return StatusStatisticsResponse{
		Total:         stats.Total,
		Activations:   stats.Activations,
		Deactivations: stats.Deactivations,
	}, nil
}

func parseDateFilter(field, value string) (*time.Time, error) {
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

func mapLoginHistory(e LoginHistory) LoginHistoryResponse {
	resp := LoginHistoryResponse{
		ID:         e.ID.String(),
		Username:   e.Username,
		Status:     e.Status,
		IPAddress:  e.IPAddress,
		UserAgent:  e.UserAgent,
		DeviceType: e.DeviceType,
		Browser:    e.Browser,
		OSType:     e.OSType,
		LoginTime:  e.LoginTime.UTC().Format(time.RFC3339),
	}
	if e.EmployeeID != nil {
		resp.EmployeeID = e.EmployeeID.String()
	}
	return resp
}
