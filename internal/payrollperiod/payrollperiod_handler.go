package payrollperiod

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/viniciusmecosta/spe-api/internal/shared/apperror"
	"github.com/viniciusmecosta/spe-api/internal/shared/response"
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

func actorFromContext(c *gin.Context) (uuid.UUID, string, bool) {
	actorID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
		return uuid.Nil, "", false
	}
	return actorID, c.GetString("role"), true
}

func (h *Handler) Close(c *gin.Context) {
	var req ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	actorID, role, ok := actorFromContext(c)
	if !ok {
		return
	}

	resp, err := h.service.Close(c.Request.Context(), req.Month, req.Year, actorID, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Reopen(c *gin.Context) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid month", nil)
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid year", nil)
		return
	}

	actorID, role, ok := actorFromContext(c)
	if !ok {
		return
	}

	if err := h.service.Reopen(c.Request.Context(), month, year, actorID, role); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "period reopened successfully"}, nil)
}

func (h *Handler) ListClosed(c *gin.Context) {
	resp, err := h.service.ListClosed(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
