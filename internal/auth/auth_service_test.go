package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fmcmkdict/LMA-App/internal/audit"
	autherrors "github.com/fmcmkdict/LMA-App/internal/auth/errors"
	"github.com/fmcmkdict/LMA-App/internal/employee"
)

func setupAuthService(t *testing.T) (Service, *gorm.DB, *employee.Employee) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&employee.Employee{}, &audit.LoginHistory{}))

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	emp := &employee.Employee{
		ID:           uuid.New(),
		Username:     "aokafor",
		PasswordHash: string(hash),
		SurName:      "Okafor",
		FirstName:    "Adaeze",
		IsActive:     true,
		IsUnitHead:   true,
	}
	require.NoError(t, db.Create(emp).Error)

	auditSvc := audit.NewService(audit.NewRepository(db))
	svc := NewService(employee.NewRepository(db), auditSvc)
	return svc, db, emp
}

func loginHistory(t *testing.T, db *gorm.DB) []audit.LoginHistory {
	t.Helper()
	var entries []audit.LoginHistory
	require.NoError(t, db.Find(&entries).Error)
	return entries
}

func TestLoginSuccess(t *testing.T) {
	svc, db, emp := setupAuthService(t)

	pair, err := svc.Login(context.Background(), LoginRequest{
		Username: "aokafor",
		Password: "s3cret-pass",
	}, RequestMeta{IPAddress: "10.0.0.1", UserAgent: "Mozilla/5.0 (Windows NT 10.0) Chrome/120.0"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	entries := loginHistory(t, db)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.LoginSuccess, entries[0].Status)
	assert.Equal(t, emp.ID, *entries[0].EmployeeID)
	assert.Equal(t, "desktop", entries[0].DeviceType)
	assert.Equal(t, "Chrome", entries[0].Browser)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, db, _ := setupAuthService(t)

	_, err := svc.Login(context.Background(), LoginRequest{
		Username: "aokafor",
		Password: "wrong",
	}, RequestMeta{})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	entries := loginHistory(t, db)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.LoginFailed, entries[0].Status)
}

func TestLoginUnknownUserStillRecorded(t *testing.T) {
	svc, db, _ := setupAuthService(t)

	_, err := svc.Login(context.Background(), LoginRequest{
		Username: "nobody",
		Password: "whatever",
	}, RequestMeta{})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	entries := loginHistory(t, db)
	require.Len(t, entries, 1)
	assert.Equal(t, "nobody", entries[0].Username)
	assert.Nil(t, entries[0].EmployeeID)
}

func TestLoginDeactivatedAccountBlocked(t *testing.T) {
	svc, db, emp := setupAuthService(t)
	require.NoError(t, db.Model(emp).Update("is_active", false).Error)

	_, err := svc.Login(context.Background(), LoginRequest{
		Username: "aokafor",
		Password: "s3cret-pass",
	}, RequestMeta{})
	assert.ErrorIs(t, err, autherrors.ErrAccountInactive)

	entries := loginHistory(t, db)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.LoginBlocked, entries[0].Status)
}

func TestRefreshRoundTrip(t *testing.T) {
	svc, _, _ := setupAuthService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, LoginRequest{Username: "aokafor", Password: "s3cret-pass"}, RequestMeta{})
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	// An access token must not pass as a refresh token.
	_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: pair.AccessToken})
	assert.ErrorIs(t, err, autherrors.ErrInvalidTokenType)
}

func TestMeExposesCapabilities(t *testing.T) {
	svc, _, emp := setupAuthService(t)

	me, err := svc.Me(context.Background(), emp.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "aokafor", me.Username)
	assert.Contains(t, me.Capabilities, "employee")
	assert.Contains(t, me.Capabilities, "unit_head")
}
