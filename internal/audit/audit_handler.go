package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/viniciusmecosta/spe-api/internal/shared/apperror"
	"github.com/viniciusmecosta/spe-api/internal/shared/response"
)

const defaultListLimit = 100

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

func (h *Handler) ListByEntity(c *gin.Context) {
	entity := c.Query("entity")
	if entity == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "entity is required", nil)
		return
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid limit", nil)
			return
		}
		limit = parsed
	}

	entries, err := h.service.ListByEntity(c.Request.Context(), entity, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToAuditLogResponseList(entries), nil)
}
