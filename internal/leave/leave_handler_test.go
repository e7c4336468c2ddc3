package leave

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leaveerrors "github.com/fmcmkdict/LMA-App/internal/leave/errors"
	"github.com/fmcmkdict/LMA-App/internal/shared/response"
)

type fakeLeaveService struct {
	submitResp LeaveResponse
	submitErr  error
	decideResp LeaveResponse
	decideErr  error

	gotSubmit *SubmitLeaveRequest
	gotMeta   RequestMeta
}

func (f *fakeLeaveService) Submit(_ context.Context, _ uuid.UUID, req SubmitLeaveRequest, meta RequestMeta) (LeaveResponse, error) {
	f.gotSubmit = &req
	f.gotMeta = meta
	return f.submitResp, f.submitErr
}

func (f *fakeLeaveService) GetByID(context.Context, string) (LeaveResponse, error) {
	return LeaveResponse{}, nil
}

func (f *fakeLeaveService) List(context.Context, ListLeavesQuery) ([]LeaveResponse, *response.PaginationMeta, error) {
	return nil, nil, nil
}

func (f *fakeLeaveService) ListMine(context.Context, uuid.UUID, ListLeavesQuery) ([]LeaveResponse, *response.PaginationMeta, error) {
	return nil, nil, nil
}

func (f *fakeLeaveService) Edit(context.Context, uuid.UUID, bool, string, EditLeaveRequest) (LeaveResponse, error) {
	return LeaveResponse{}, nil
}

func (f *fakeLeaveService) Recommend(context.Context, uuid.UUID, string) (LeaveResponse, error) {
	return LeaveResponse{}, nil
}

func (f *fakeLeaveService) Decide(context.Context, uuid.UUID, string, bool) (LeaveResponse, error) {
	return f.decideResp, f.decideErr
}

func (f *fakeLeaveService) Cancel(context.Context, uuid.UUID, string) (LeaveResponse, error) {
	return LeaveResponse{}, nil
}

func (f *fakeLeaveService) MarkExhausted(context.Context, uuid.UUID, string) (LeaveResponse, error) {
	return LeaveResponse{}, nil
}

func (f *fakeLeaveService) Delete(context.Context, string) error {
	return nil
}

func performRequest(t *testing.T, handler gin.HandlerFunc, method, path string, body any, employeeID string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set("User-Agent", "go-test")
	if employeeID != "" {
		c.Set("employee_id", employeeID)
	}

	handler(c)
	return w
}

func TestSubmitHandlerSuccess(t *testing.T) {
	employeeID := uuid.New()
	fake := &fakeLeaveService{
		submitResp: LeaveResponse{
			ID:        uuid.NewString(),
			LeaveCode: "LV-2025-000007",
			Status:    StatusPending,
		},
	}
	h := NewHandler(fake)

	w := performRequest(t, h.Submit, http.MethodPost, "/api/v1/leaves", SubmitLeaveRequest{
		LeaveTypeID: uuid.NewString(),
		StartDate:   "2025-06-02",
		Days:        5,
		Reason:      "rest",
	}, employeeID.String())

	assert.Equal(t, http.StatusCreated, w.Code)

	var envelope response.ApiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Ok)

	require.NotNil(t, fake.gotSubmit)
	assert.Equal(t, 5, fake.gotSubmit.Days)
	assert.Equal(t, "go-test", fake.gotMeta.UserAgent)
}

func TestSubmitHandlerValidation(t *testing.T) {
	h := NewHandler(&fakeLeaveService{})

	w := performRequest(t, h.Submit, http.MethodPost, "/api/v1/leaves", map[string]any{
		"start_date": "2025-06-02",
	}, uuid.NewString())

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.ApiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Ok)
}

func TestSubmitHandlerMissingAuthContext(t *testing.T) {
	h := NewHandler(&fakeLeaveService{})

	w := performRequest(t, h.Submit, http.MethodPost, "/api/v1/leaves", SubmitLeaveRequest{
		LeaveTypeID: uuid.NewString(),
		StartDate:   "2025-06-02",
		Days:        5,
		Reason:      "rest",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitHandlerMapsDomainErrors(t *testing.T) {
	fake := &fakeLeaveService{submitErr: leaveerrors.ErrDuplicateActiveRequest}
	h := NewHandler(fake)

	w := performRequest(t, h.Submit, http.MethodPost, "/api/v1/leaves", SubmitLeaveRequest{
		LeaveTypeID: uuid.NewString(),
		StartDate:   "2025-06-02",
		Days:        5,
		Reason:      "rest",
	}, uuid.NewString())

	assert.Equal(t, http.StatusConflict, w.Code)

	var envelope struct {
		Ok    bool `json:"ok"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Ok)
	assert.Equal(t, "CONFLICT", envelope.Error.Code)
}

func TestDecideHandlerRejectsUndecidable(t *testing.T) {
	fake := &fakeLeaveService{decideErr: leaveerrors.ErrNotRecommended}
	h := NewHandler(fake)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(DecideLeaveRequest{Approve: true})
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/leaves/x/decision", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	c.Set("employee_id", uuid.NewString())

	h.Decide(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
