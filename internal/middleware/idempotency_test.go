package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIdempotencyRoute(t *testing.T) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()

	r := gin.New()
	r.POST("/leaves", func(c *gin.Context) {
		c.Set("employee_id", "emp-1")
		c.Next()
	}, Idempotency(rdb), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true, "data": gin.H{"leave_code": "LV-2025-000001"}})
	})
	return r, mock
}

func TestIdempotencyPassesThroughWithoutKey(t *testing.T) {
	r, mock := setupIdempotencyRoute(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	r, mock := setupIdempotencyRoute(t)

	cached := `{"ok":true,"data":{"leave_code":"LV-2025-000001"}}`
	mock.ExpectGet("idemp:/leaves:emp-1:abc").SetVal(cached)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
	req.Header.Set("Idempotency-Key", "abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, cached, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRejectsInFlightDuplicate(t *testing.T) {
	r, mock := setupIdempotencyRoute(t)

	mock.ExpectGet("idemp:/leaves:emp-1:abc").RedisNil()
	mock.ExpectSetNX("idemp:/leaves:emp-1:abc:lock", "locked", 30*time.Second).SetVal(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
	req.Header.Set("Idempotency-Key", "abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyCachesSuccessAndReleasesLock(t *testing.T) {
	r, mock := setupIdempotencyRoute(t)

	mock.ExpectGet("idemp:/leaves:emp-1:abc").RedisNil()
	mock.ExpectSetNX("idemp:/leaves:emp-1:abc:lock", "locked", 30*time.Second).SetVal(true)
	mock.Regexp().ExpectSet("idemp:/leaves:emp-1:abc", `.*LV-2025-000001.*`, idempotencyCacheTTL).SetVal("OK")
	mock.ExpectDel("idemp:/leaves:emp-1:abc:lock").SetVal(1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
	req.Header.Set("Idempotency-Key", "abc")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
