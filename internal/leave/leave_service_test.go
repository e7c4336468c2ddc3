package leave

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fmcmkdict/LMA-App/internal/audit"
	"github.com/fmcmkdict/LMA-App/internal/balance"
	balanceerrors "github.com/fmcmkdict/LMA-App/internal/balance/errors"
	"github.com/fmcmkdict/LMA-App/internal/calendar"
	"github.com/fmcmkdict/LMA-App/internal/employee"
	leaveerrors "github.com/fmcmkdict/LMA-App/internal/leave/errors"
	"github.com/fmcmkdict/LMA-App/internal/leavetype"
	"github.com/fmcmkdict/LMA-App/internal/messaging/kafka"
	"github.com/fmcmkdict/LMA-App/internal/shared/counter"
)

type leaveHarness struct {
	db         *gorm.DB
	svc        Service
	balanceSvc balance.Service
	emp        *employee.Employee
	annual     *leavetype.LeaveType
	casual     *leavetype.LeaveType
}

func setupLeaveHarness(t *testing.T) *leaveHarness {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&employee.Employee{},
		&leavetype.LeaveType{},
		&calendar.Holiday{},
		&balance.LeaveBalance{},
		&LeaveRequest{},
		&audit.LoginHistory{},
		&kafka.OutboxEvent{},
	))
	require.NoError(t, db.Exec(`
		CREATE TABLE IF NOT EXISTS sequence_counters (
			scope      VARCHAR(100) PRIMARY KEY,
			last_value BIGINT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`).Error)
	require.NoError(t, db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_leave_requests_one_active
		ON leave_requests (employee_id)
		WHERE status IN ('pending', 'approved') AND deleted_at IS NULL
	`).Error)

	emp := &employee.Employee{
		ID:           uuid.New(),
		Username:     "aokafor",
		PasswordHash: "x",
		SurName:      "Okafor",
		FirstName:    "Adaeze",
		IsActive:     true,
	}
	require.NoError(t, db.Create(emp).Error)

	annual := &leavetype.LeaveType{ID: uuid.New(), Name: "Annual Leave", NumberOfDays: 30}
	casual := &leavetype.LeaveType{ID: uuid.New(), Name: "Casual Leave", NumberOfDays: 10, MultipleTimes: true}
	require.NoError(t, db.Create(annual).Error)
	require.NoError(t, db.Create(casual).Error)

	empRepo := employee.NewRepository(db)
	leaveTypeRepo := leavetype.NewRepository(db)
	calendarSvc := calendar.NewService(calendar.NewRepository(db))
	balanceSvc := balance.NewService(db, balance.NewRepository(db), leaveTypeRepo, nil)

	svc := NewService(
		db,
		NewRepository(db),
		leaveTypeRepo,
		empRepo,
		calendarSvc,
		balanceSvc,
		counter.NewRepository(db),
		kafka.NewOutboxRepository(db),
	)

	return &leaveHarness{
		db:         db,
		svc:        svc,
		balanceSvc: balanceSvc,
		emp:        emp,
		annual:     annual,
		casual:     casual,
	}
}

func (h *leaveHarness) submit(t *testing.T, lt *leavetype.LeaveType, start string, days, deductible int) LeaveResponse {
	t.Helper()
	resp, err := h.svc.Submit(context.Background(), h.emp.ID, SubmitLeaveRequest{
		LeaveTypeID:    lt.ID.String(),
		StartDate:      start,
		Days:           days,
		DeductibleDays: deductible,
		Reason:         "family obligations",
	}, RequestMeta{IPAddress: "10.0.0.1", UserAgent: "go-test"})
	require.NoError(t, err)
	return resp
}

func (h *leaveHarness) remaining(t *testing.T, lt *leavetype.LeaveType) int {
	t.Helper()
	balances, err := h.balanceSvc.ListForEmployee(context.Background(), h.emp.ID, 2025)
	require.NoError(t, err)
	for _, b := range balances {
		if b.LeaveTypeID == lt.ID.String() {
			return b.DaysRemaining
		}
	}
	t.Fatalf("no balance row for leave type %s", lt.Name)
	return 0
}

func TestSubmitHappyPath(t *testing.T) {
	h := setupLeaveHarness(t)

	resp := h.submit(t, h.annual, "2025-06-02", 12, 2)

	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, 10, resp.NetDays)
	assert.Equal(t, "2025-06-02", resp.StartDate)
	assert.Equal(t, "2025-06-13", resp.EndDate)
	assert.Equal(t, "LV-2025-000001", resp.LeaveCode)
	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, 20, h.remaining(t, h.annual))

	// The submission event rides in the same transaction.
	var events []kafka.OutboxEvent
	require.NoError(t, h.db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, "leave.submitted", events[0].Topic)
	assert.Equal(t, kafka.OutboxPending, events[0].Status)
}

func TestSubmitLeaveCodesAreSequential(t *testing.T) {
	h := setupLeaveHarness(t)

	first := h.submit(t, h.casual, "2025-06-02", 2, 0)
	_, err := h.svc.Cancel(context.Background(), h.emp.ID, first.ID)
	require.NoError(t, err)

	second := h.submit(t, h.casual, "2025-07-07", 2, 0)
	assert.Equal(t, "LV-2025-000001", first.LeaveCode)
	assert.Equal(t, "LV-2025-000002", second.LeaveCode)
}

func TestSubmitRejectsSecondActiveRequest(t *testing.T) {
	h := setupLeaveHarness(t)

	h.submit(t, h.annual, "2025-06-02", 5, 0)

	_, err := h.svc.Submit(context.Background(), h.emp.ID, SubmitLeaveRequest{
		LeaveTypeID: h.casual.ID.String(),
		StartDate:   "2025-07-07",
		Days:        2,
		Reason:      "second request",
	}, RequestMeta{})
	assert.ErrorIs(t, err, leaveerrors.ErrDuplicateActiveRequest)
}

func TestSubmitRejectsSameTypeTwiceInYear(t *testing.T) {
	h := setupLeaveHarness(t)
	ctx := context.Background()
	approver := uuid.New()

	first := h.submit(t, h.annual, "2025-06-02", 5, 0)
	_, err := h.svc.Recommend(ctx, uuid.New(), first.ID)
	require.NoError(t, err)
	_, err = h.svc.Decide(ctx, approver, first.ID, true)
	require.NoError(t, err)
	_, err = h.svc.MarkExhausted(ctx, approver, first.ID)
	require.NoError(t, err)

	_, err = h.svc.Submit(ctx, h.emp.ID, SubmitLeaveRequest{
		LeaveTypeID: h.annual.ID.String(),
		StartDate:   "2025-09-01",
		Days:        5,
		Reason:      "another round",
	}, RequestMeta{})
	assert.ErrorIs(t, err, leaveerrors.ErrDuplicateTypeThisYear)
}

func TestSubmitAllowsRepeatableTypeAgain(t *testing.T) {
	h := setupLeaveHarness(t)
	ctx := context.Background()
	approver := uuid.New()

	first := h.submit(t, h.casual, "2025-06-02", 2, 0)
	_, err := h.svc.Recommend(ctx, uuid.New(), first.ID)
	require.NoError(t, err)
	_, err = h.svc.Decide(ctx, approver, first.ID, true)
	require.NoError(t, err)
	_, err = h.svc.MarkExhausted(ctx, approver, first.ID)
	require.NoError(t, err)

	second := h.submit(t, h.casual, "2025-09-01", 2, 0)
	assert.Equal(t, StatusPending, second.Status)
}

func TestSubmitInsufficientBalance(t *testing.T) {
	h := setupLeaveHarness(t)

	_, err := h.svc.Submit(context.Background(), h.emp.ID, SubmitLeaveRequest{
		LeaveTypeID: h.annual.ID.String(),
		StartDate:   "2025-06-02",
		Days:        40,
		Reason:      "long trip",
	}, RequestMeta{})
	assert.ErrorIs(t, err, balanceerrors.ErrInsufficientBalance)

	// Nothing was persisted.
	var count int64
	require.NoError(t, h.db.Model(&LeaveRequest{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSubmitFullyDeductibleSkipsLedger(t *testing.T) {
	h := setupLeaveHarness(t)

	resp := h.submit(t, h.annual, "2025-06-02", 3, 5)
	assert.Equal(t, 0, resp.NetDays)
	assert.Equal(t, resp.StartDate, resp.EndDate)

	var count int64
	require.NoError(t, h.db.Model(&balance.LeaveBalance{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRecommendOnlyOnce(t *testing.T) {
	h := setupLeaveHarness(t)
	ctx := context.Background()

	resp := h.submit(t, h.annual, "2025-06-02", 5, 0)

	recommender := uuid.New()
	out, err := h.svc.Recommend(ctx, recommender, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, recommender.String(), out.RecommendedBy)
	assert.NotEmpty(t, out.RecommendedAt)

	_, err = h.svc.Recommend(ctx, uuid.New(), resp.ID)
	assert.ErrorIs(t, err, leaveerrors.ErrAlreadyRecommended)
}

func TestDecideRequiresRecommendation(t *testing.T) {
	h := setupLeaveHarness(t)

	resp := h.submit(t, h.annual, "2025-06-02", 5, 0)

	_, err := h.svc.Decide(context.Background(), uuid.New(), resp.ID, true)
	assert.ErrorIs(t, err, leaveerrors.ErrNotRecommended)
}

func TestDecideApprove(t *testing.T) {
	h := setupLeaveHarness(t)
	ctx := context.Background()

	resp := h.submit(t, h.annual, "2025-06-02", 5, 0)
	_, err := h.svc.Recommend(ctx, uuid.New(), resp.ID)
	require.NoError(t, err)

	approver := uuid.New()
	out, err := h.svc.Decide(ctx, approver, resp.ID, true)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, out.Status)
	assert.Equal(t, approver.String(), out.DecidedBy)

	// The debit stays on the ledger.
	assert.Equal(t, 25, h.remaining(t, h.annual))

	_, err = h.svc.Decide(ctx, uuid.New(), resp.ID, false)
	assert.ErrorIs(t, err, leaveerrors.ErrAlreadyDecided)
}

func TestDecideRejectRefundsLedger(t *testing.T) {
	h := setupLeaveHarness(t)
	ctx := context.Background()

	resp := h.submit(t, h.annual, "2025-06-02", 5, 0)
	assert.Equal(t, 25, h.remaining(t, h.annual))

	_, err := h.svc.Recommend(ctx, uuid.New(), resp.ID)
	require.NoError(t, err)

	out, err := h.svc.Decide(ctx, uuid.New(), resp.ID, false)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, out.Status)
	assert.Equal(t, 30, h.remaining(t, h.annual))
}

func TestCancelRefundsAndFreesSlot(t *testing.T) {
	h := setupLeaveHarness(t)
	ctx := context.Background()

	resp := h.submit(t, h.annual, "2025-06-02", 5, 0)
	assert.Equal(t, 25, h.remaining(t, h.annual))

	out, err := h.svc.Cancel(ctx, h.emp.ID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, out.Status)
	assert.Equal(t, 30, h.remaining(t, h.annual))

	// The active slot is free again.
	second := h.submit(t, h.annual, "2025-07-07", 3, 0)
	assert.Equal(t, StatusPending, second.Status)

	_, err = h.svc.Cancel(ctx, h.emp.ID, resp.ID)
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStateTransition)
}

func TestMarkExhaustedKeepsDebit(t *testing.T) {
	h := setupLeaveHarness(t)
	ctx := context.Background()

	resp := h.submit(t, h.annual, "2025-06-02", 5, 0)

	_, err := h.svc.MarkExhausted(ctx, uuid.New(), resp.ID)
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStateTransition, "pending requests cannot be exhausted")

	_, err = h.svc.Recommend(ctx, uuid.New(), resp.ID)
	require.NoError(t, err)
	_, err = h.svc.Decide(ctx, uuid.New(), resp.ID, true)
	require.NoError(t, err)

	out, err := h.svc.MarkExhausted(ctx, uuid.New(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusExhausted, out.Status)
	assert.Equal(t, 25, h.remaining(t, h.annual))
}

func TestEditPendingOnly(t *testing.T) {
	h := setupLeaveHarness(t)
	ctx := context.Background()

	resp := h.submit(t, h.annual, "2025-06-02", 12, 2)

	out, err := h.svc.Edit(ctx, h.emp.ID, false, resp.ID, EditLeaveRequest{
		StartDate: "2025-06-09",
		Reason:    "moved by one week",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-09", out.StartDate)
	assert.Equal(t, "2025-06-20", out.EndDate)
	assert.Equal(t, 10, out.NetDays)

	// Someone else may not touch it.
	_, err = h.svc.Edit(ctx, uuid.New(), false, resp.ID, EditLeaveRequest{
		StartDate: "2025-06-16",
		Reason:    "not mine",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrNotRequestOwner)

	_, err = h.svc.Recommend(ctx, uuid.New(), resp.ID)
	require.NoError(t, err)
	_, err = h.svc.Decide(ctx, uuid.New(), resp.ID, true)
	require.NoError(t, err)

	_, err = h.svc.Edit(ctx, h.emp.ID, false, resp.ID, EditLeaveRequest{
		StartDate: "2025-06-16",
		Reason:    "too late",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrEditNotPending)
}

func TestListMineFiltersByOwner(t *testing.T) {
	h := setupLeaveHarness(t)
	ctx := context.Background()

	other := &employee.Employee{
		ID:           uuid.New(),
		Username:     "cnwosu",
		PasswordHash: "x",
		SurName:      "Nwosu",
		FirstName:    "Chidi",
		IsActive:     true,
	}
	require.NoError(t, h.db.Create(other).Error)

	h.submit(t, h.annual, "2025-06-02", 5, 0)

	_, err := h.svc.Submit(ctx, other.ID, SubmitLeaveRequest{
		LeaveTypeID: h.annual.ID.String(),
		StartDate:   "2025-06-02",
		Days:        3,
		Reason:      "other request",
	}, RequestMeta{})
	require.NoError(t, err)

	mine, meta, err := h.svc.ListMine(ctx, h.emp.ID, ListLeavesQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, h.emp.ID.String(), mine[0].EmployeeID)
	assert.EqualValues(t, 1, meta.Total)

	bySurname, _, err := h.svc.List(ctx, ListLeavesQuery{Search: "nwo", Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, bySurname, 1)
	assert.Equal(t, other.ID.String(), bySurname[0].EmployeeID)
}

func TestSubmitCapturesContextFields(t *testing.T) {
	h := setupLeaveHarness(t)
	ctx := context.Background()

	resp, err := h.svc.Submit(ctx, h.emp.ID, SubmitLeaveRequest{
		LeaveTypeID:       h.annual.ID.String(),
		StartDate:         "2025-06-02",
		Days:              5,
		Reason:            "family obligations",
		LeaveLastTaken:    "2024-08-12",
		HomeAddress:       "12 Marina Road, Lagos",
		PlaceToSpendLeave: "Enugu",
		AltPhone:          "08030000000",
	}, RequestMeta{IPAddress: "10.0.0.1", UserAgent: "go-test"})
	require.NoError(t, err)

	assert.Equal(t, "2024-08-12", resp.LeaveLastTaken)
	assert.Equal(t, "12 Marina Road, Lagos", resp.HomeAddress)
	assert.Equal(t, "Enugu", resp.PlaceToSpend)
	assert.Equal(t, "08030000000", resp.AltPhone)

	var stored LeaveRequest
	require.NoError(t, h.db.First(&stored, "id = ?", resp.ID).Error)
	assert.Equal(t, "10.0.0.1", stored.IPAddress)
	assert.Equal(t, "go-test", stored.UserAgent)
}

func TestGetByIDRecomputesWorkingDays(t *testing.T) {
	h := setupLeaveHarness(t)

	resp := h.submit(t, h.annual, "2025-06-02", 10, 0)

	got, err := h.svc.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.WorkingDays)
	assert.Equal(t, got.NetDays, got.WorkingDays)
}

// racingLeaveRepo simulates a duplicate check that raced past an
// in-flight submission: the check reports no active request even though
// one is already committed.
type racingLeaveRepo struct {
	Repository
}

func (r racingLeaveRepo) WithTx(tx *gorm.DB) Repository {
	return racingLeaveRepo{r.Repository.WithTx(tx)}
}

func (r racingLeaveRepo) HasActiveRequest(context.Context, uuid.UUID) (bool, error) {
	return false, nil
}

func TestSubmitConcurrentLoserGetsDuplicateActive(t *testing.T) {
	h := setupLeaveHarness(t)
	ctx := context.Background()

	h.submit(t, h.casual, "2025-06-02", 2, 0)

	svc := NewService(
		h.db,
		racingLeaveRepo{NewRepository(h.db)},
		leavetype.NewRepository(h.db),
		employee.NewRepository(h.db),
		calendar.NewService(calendar.NewRepository(h.db)),
		h.balanceSvc,
		counter.NewRepository(h.db),
		kafka.NewOutboxRepository(h.db),
	)

	// The unique index backstops the check, and the loser gets the same
	// error the check itself would have produced, not a raw storage error.
	_, err := svc.Submit(ctx, h.emp.ID, SubmitLeaveRequest{
		LeaveTypeID: h.casual.ID.String(),
		StartDate:   "2025-07-07",
		Days:        2,
		Reason:      "second attempt",
	}, RequestMeta{})
	assert.ErrorIs(t, err, leaveerrors.ErrDuplicateActiveRequest)

	// Nothing from the losing transaction sticks.
	var count int64
	require.NoError(t, h.db.Model(&LeaveRequest{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, 8, h.remaining(t, h.casual))
}
