package balance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	balanceerrors "github.com/fmcmkdict/LMA-App/internal/balance/errors"
	"github.com/fmcmkdict/LMA-App/internal/leavetype"
)

const (
	// DefaultAllotment applies when a leave type has no allotment of its
	// own. Overridable through LEAVE_DEFAULT_ALLOTMENT.
	DefaultAllotment = 30

	cacheTTL = 5 * time.Minute

	casMaxRetries  = 5
	casInitialWait = 20 * time.Millisecond
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	// GetOrCreateTx lazily opens the ledger row inside the caller's
	// transaction. Creation is idempotent under concurrency.
	GetOrCreateTx(ctx context.Context, tx *gorm.DB, employeeID, leaveTypeID uuid.UUID, year int) (*LeaveBalance, error)

	// DebitTx makes a single debit attempt inside the caller's
	// transaction. It fails with ErrVersionConflict when the row moved
	// under the caller, who is expected to retry the whole transaction.
	DebitTx(ctx context.Context, tx *gorm.DB, employeeID, leaveTypeID uuid.UUID, year, days int) (*LeaveBalance, error)

	// CreditTx returns days to the ledger, clamped so used days never
	// go below zero.
	CreditTx(ctx context.Context, tx *gorm.DB, employeeID, leaveTypeID uuid.UUID, year, days int) (*LeaveBalance, error)

	// Debit is the standalone variant with its own transaction and
	// retry loop, for callers outside a larger write.
	Debit(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year, days int) (*LeaveBalance, error)

	ListForEmployee(ctx context.Context, employeeID uuid.UUID, year int) ([]BalanceResponse, error)
	InvalidateCache(ctx context.Context, employeeID uuid.UUID, year int)
}

type service struct {
	db            *gorm.DB
	repo          Repository
	leaveTypeRepo leavetype.Repository
	cache         *redis.Client
	group         singleflight.Group
	logger        *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	leaveTypeRepo leavetype.Repository,
	cache *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		leaveTypeRepo: leaveTypeRepo,
		cache:         cache,
		logger:        l,
	}
}

func (s *service) GetOrCreateTx(ctx context.Context, tx *gorm.DB, employeeID, leaveTypeID uuid.UUID, year int) (*LeaveBalance, error) {
	repo := s.repo.WithTx(tx)

	b, err := repo.Find(ctx, employeeID, leaveTypeID, year)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	allotment, err := s.allotmentFor(ctx, leaveTypeID)
	if err != nil {
		return nil, err
	}

	b = &LeaveBalance{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		Year:        year,
		TotalDays:   allotment,
		Version:     1,
	}
	b.recompute()

	if err := repo.Create(ctx, b); err != nil {
		// A concurrent request may have opened the row first.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repo.Find(ctx, employeeID, leaveTypeID, year)
		}
		return nil, err
	}
	return b, nil
}

func (s *service) DebitTx(ctx context.Context, tx *gorm.DB, employeeID, leaveTypeID uuid.UUID, year, days int) (*LeaveBalance, error) {
	b, err := s.GetOrCreateTx(ctx, tx, employeeID, leaveTypeID, year)
	if err != nil {
		return nil, err
	}

	if days > b.DaysRemaining {
		return nil, balanceerrors.InsufficientBalance(b.DaysRemaining)
	}

	b.DaysUsed += days
	b.recompute()

	if err := s.repo.WithTx(tx).UpdateVersioned(ctx, b); err != nil {
		return nil, err
	}

	s.InvalidateCache(ctx, employeeID, year)
	return b, nil
}

func (s *service) CreditTx(ctx context.Context, tx *gorm.DB, employeeID, leaveTypeID uuid.UUID, year, days int) (*LeaveBalance, error) {
	b, err := s.GetOrCreateTx(ctx, tx, employeeID, leaveTypeID, year)
	if err != nil {
		return nil, err
	}

	b.DaysUsed -= days
	if b.DaysUsed < 0 {
		b.DaysUsed = 0
	}
	b.recompute()

	if err := s.repo.WithTx(tx).UpdateVersioned(ctx, b); err != nil {
		return nil, err
	}

	s.InvalidateCache(ctx, employeeID, year)
	return b, nil
}

func (s *service) Debit(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year, days int) (*LeaveBalance, error) {
	var out *LeaveBalance

	operation := func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			b, err := s.DebitTx(ctx, tx, employeeID, leaveTypeID, year, days)
			if err != nil {
				if errors.Is(err, balanceerrors.ErrVersionConflict) {
					return err
				}
				return backoff.Permanent(err)
			}
			out = b
			return nil
		})
	}

	if err := backoff.Retry(operation, debitBackoff(ctx)); err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			return nil, perm.Err
		}
		return nil, err
	}
	return out, nil
}

func (s *service) ListForEmployee(ctx context.Context, employeeID uuid.UUID, year int) ([]BalanceResponse, error) {
	key := cacheKey(employeeID, year)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached []BalanceResponse
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		balances, err := s.repo.FindAllForEmployee(ctx, employeeID, year)
		if err != nil {
			return nil, err
		}

		resp := make([]BalanceResponse, len(balances))
		for i, b := range balances {
			resp[i] = mapToResponse(b)
		}

		if s.cache != nil {
			if raw, err := json.Marshal(resp); err == nil {
				if err := s.cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
					s.logger.Warn("balance cache write failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]BalanceResponse), nil
}

func (s *service) InvalidateCache(ctx context.Context, employeeID uuid.UUID, year int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey(employeeID, year)).Err(); err != nil {
		s.logger.Warn("balance cache invalidation failed",
			zap.String("employee_id", employeeID.String()),
			zap.Error(err),
		)
	}
}

func (s *service) allotmentFor(ctx context.Context, leaveTypeID uuid.UUID) (int, error) {
	lt, err := s.leaveTypeRepo.FindByID(ctx, leaveTypeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, balanceerrors.ErrBalanceNotFound
		}
		return 0, err
	}
	if lt.NumberOfDays > 0 {
		return lt.NumberOfDays, nil
	}
	return defaultAllotment(), nil
}

func defaultAllotment() int {
	if v := os.Getenv("LEAVE_DEFAULT_ALLOTMENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultAllotment
}

func debitBackoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = casInitialWait
	return backoff.WithContext(backoff.WithMaxRetries(b, casMaxRetries), ctx)
}

func cacheKey(employeeID uuid.UUID, year int) string {
	return fmt.Sprintf("leave:balance:%s:%d", employeeID, year)
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:            b.ID.String(),
		EmployeeID:    b.EmployeeID.String(),
		LeaveTypeID:   b.LeaveTypeID.String(),
		Year:          b.Year,
		TotalDays:     b.TotalDays,
		DaysUsed:      b.DaysUsed,
		DaysRemaining: b.DaysRemaining,
	}
}
