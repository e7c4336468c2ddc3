package calendar

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fmcmkdict/LMA-App/internal/shared/apperror"
	"github.com/fmcmkdict/LMA-App/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("calendar.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("calendar request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CreateHoliday(c *gin.Context) {
	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.CreateHoliday(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetHolidays(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	resp, err := h.service.GetHolidays(c.Request.Context(), year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteHoliday(c *gin.Context) {
	if err := h.service.DeleteHoliday(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// WorkingDays exposes the inclusive working-day count between two dates for
// display and audit cross-checks.
func (h *Handler) WorkingDays(c *gin.Context) {
	start, err := ParseDate(c.Query("start_date"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	end, err := ParseDate(c.Query("end_date"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	days, err := h.service.CountWorkingDays(c.Request.Context(), start, end)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, WorkingDaysResponse{
		StartDate:   start.Format(dateLayout),
		EndDate:     end.Format(dateLayout),
		WorkingDays: days,
	}, nil)
}

// EndDate previews the end date a grant of N working days would land on,
// so the client can show it before the request is submitted.
func (h *Handler) EndDate(c *gin.Context) {
	start, err := ParseDate(c.Query("start_date"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	days, err := strconv.Atoi(c.Query("working_days"))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("working_days"))
		return
	}

	end, err := h.service.ProjectEndDate(c.Request.Context(), start, days)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, EndDateResponse{
		StartDate:   start.Format(dateLayout),
		WorkingDays: days,
		EndDate:     end.Format(dateLayout),
	}, nil)
}
