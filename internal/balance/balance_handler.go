package balance

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fmcmkdict/LMA-App/internal/shared/apperror"
	"github.com/fmcmkdict/LMA-App/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetMine returns the caller's ledger for the requested year, defaulting
// to the current one.
func (h *Handler) GetMine(c *gin.Context) {
	employeeID, err := uuid.Parse(c.GetString("employee_id"))
	if err != nil {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	year, err := yearParam(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.ListForEmployee(c.Request.Context(), employeeID, year)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetForEmployee lets managers inspect another employee's ledger.
func (h *Handler) GetForEmployee(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeServiceError(c, apperror.InvalidField("id"))
		return
	}

	year, err := yearParam(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.ListForEmployee(c.Request.Context(), employeeID, year)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func yearParam(c *gin.Context) (int, error) {
	raw := c.Query("year")
	if raw == "" {
		return time.Now().UTC().Year(), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 2000 || year > 2200 {
		return 0, apperror.InvalidField("year")
	}
	return year, nil
}
