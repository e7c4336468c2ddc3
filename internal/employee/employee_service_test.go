package employee

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
	"github.com/fmcmkdict/LMA-App/internal/department"
	employeeerrors "github.com/fmcmkdict/LMA-App/internal/employee/errors"
	"github.com/fmcmkdict/LMA-App/internal/events"
	"github.com/fmcmkdict/LMA-App/internal/messaging/kafka"
	"github.com/fmcmkdict/LMA-App/internal/unit"
)

func setupEmployeeService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&department.Department{},
		&unit.Unit{},
		&Employee{},
		&audit.AccountStatusHistory{},
		&kafka.OutboxEvent{},
	))

	svc := NewService(
		db,
		NewRepository(db),
		department.NewRepository(db),
		unit.NewRepository(db),
		audit.NewRepository(db),
		kafka.NewOutboxRepository(db),
	)
	return svc, db
}

func registerTestEmployee(t *testing.T, svc Service) EmployeeResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), RegisterEmployeeRequest{
		Username:  "cnwosu",
		Password:  "long-enough-pass",
		SurName:   "Nwosu",
		FirstName: "Chidi",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterHashesPasswordAndActivates(t *testing.T) {
	svc, db := setupEmployeeService(t)
	resp := registerTestEmployee(t, svc)

	assert.True(t, resp.IsActive)
	assert.Equal(t, "Nwosu Chidi", resp.FullName)
	assert.Contains(t, resp.Capabilities, "employee")

	var stored Employee
	require.NoError(t, db.First(&stored, "username = ?", "cnwosu").Error)
	assert.NotEqual(t, "long-enough-pass", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := setupEmployeeService(t)
	registerTestEmployee(t, svc)

	_, err := svc.Register(context.Background(), RegisterEmployeeRequest{
		Username:  "cnwosu",
		Password:  "another-password",
		SurName:   "Other",
		FirstName: "Person",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrDuplicateUsername)
}

func TestRegisterUnknownDepartment(t *testing.T) {
	svc, _ := setupEmployeeService(t)

	_, err := svc.Register(context.Background(), RegisterEmployeeRequest{
		Username:     "someone",
		Password:     "long-enough-pass",
		SurName:      "Some",
		FirstName:    "One",
		DepartmentID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, employeeerrors.ErrDepartmentNotFound)
}

func TestChangeStatusWritesHistoryAndEvent(t *testing.T) {
	svc, db := setupEmployeeService(t)
	resp := registerTestEmployee(t, svc)
	actor := uuid.New()

	updated, err := svc.ChangeStatus(context.Background(), resp.ID, ChangeStatusRequest{
		IsActive: false,
		Reason:   "resigned",
	}, actor)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	var history []audit.AccountStatusHistory
	require.NoError(t, db.Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, audit.StatusDeactivated, history[0].StatusChange)
	assert.Equal(t, "active", history[0].PreviousStatus)
	assert.Equal(t, "inactive", history[0].NewStatus)
	assert.Equal(t, "resigned", history[0].Reason)
	assert.Equal(t, actor, history[0].ChangedBy)

	var outboxRows []kafka.OutboxEvent
	require.NoError(t, db.Find(&outboxRows).Error)
	require.Len(t, outboxRows, 1)
	assert.Equal(t, events.TopicAccountStatusChanged, outboxRows[0].Topic)
	assert.Equal(t, kafka.OutboxPending, outboxRows[0].Status)
}

func TestChangeStatusNoOp(t *testing.T) {
	svc, db := setupEmployeeService(t)
	resp := registerTestEmployee(t, svc)

	_, err := svc.ChangeStatus(context.Background(), resp.ID, ChangeStatusRequest{
		IsActive: true,
		Reason:   "already active",
	}, uuid.New())
	assert.ErrorIs(t, err, employeeerrors.ErrStatusUnchanged)

	var count int64
	require.NoError(t, db.Model(&audit.AccountStatusHistory{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestChangeStatusReactivation(t *testing.T) {
	svc, db := setupEmployeeService(t)
	resp := registerTestEmployee(t, svc)
	actor := uuid.New()

	_, err := svc.ChangeStatus(context.Background(), resp.ID, ChangeStatusRequest{IsActive: false, Reason: "leave of absence"}, actor)
	require.NoError(t, err)

	updated, err := svc.ChangeStatus(context.Background(), resp.ID, ChangeStatusRequest{IsActive: true, Reason: "returned"}, actor)
	require.NoError(t, err)
	assert.True(t, updated.IsActive)

	var history []audit.AccountStatusHistory
	require.NoError(t, db.Order("created_at").Find(&history).Error)
	require.Len(t, history, 2)
	assert.Equal(t, audit.StatusActivated, history[1].StatusChange)
}

func TestUpdatePreservesRoleFlagsWhenOmitted(t *testing.T) {
	svc, _ := setupEmployeeService(t)

	resp, err := svc.Register(context.Background(), RegisterEmployeeRequest{
		Username:   "uhead",
		Password:   "long-enough-pass",
		SurName:    "Head",
		FirstName:  "Unit",
		IsUnitHead: true,
	})
	require.NoError(t, err)
	require.Contains(t, resp.Capabilities, "unit_head")

	updated, err := svc.Update(context.Background(), resp.ID, UpdateEmployeeRequest{
		SurName:   "Head",
		FirstName: "Unit",
		Phone:     "08030000000",
	})
	require.NoError(t, err)
	assert.Contains(t, updated.Capabilities, "unit_head")

	no := false
	updated, err = svc.Update(context.Background(), resp.ID, UpdateEmployeeRequest{
		SurName:    "Head",
		FirstName:  "Unit",
		IsUnitHead: &no,
	})
	require.NoError(t, err)
	assert.NotContains(t, updated.Capabilities, "unit_head")
}

func TestListFiltersBySurname(t *testing.T) {
	svc, _ := setupEmployeeService(t)
	registerTestEmployee(t, svc)

	_, err := svc.Register(context.Background(), RegisterEmployeeRequest{
		Username:  "aokafor",
		Password:  "long-enough-pass",
		SurName:   "Okafor",
		FirstName: "Adaeze",
	})
	require.NoError(t, err)

	results, meta, err := svc.List(context.Background(), ListEmployeesQuery{Search: "oka", Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Okafor", results[0].SurName)
	assert.EqualValues(t, 1, meta.Total)
}
