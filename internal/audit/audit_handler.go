package audit

import (
	"net/http"

	"github.com/gin-gonic/gin"

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

func (h *Handler) GetLoginHistory(c *gin.Context) {
	var q ListLoginHistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, meta, err := h.service.ListLoginHistory(c.Request.Context(), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, meta)
}

func (h *Handler) GetLoginStatistics(c *gin.Context) {
	resp, err := h.service.LoginStatistics(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetStatusHistory(c *gin.Context) {
	var q ListStatusHistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, meta, err := h.service.ListStatusHistory(c.Request.Context(), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, meta)
}

func (h *Handler) GetStatusStatistics(c *gin.Context) {
	resp, err := h.service.StatusStatistics(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
