package anomaly

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

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

func monthYearFromQuery(c *gin.Context) (int, int, bool) {
	month, year := 0, 0
	if v := c.Query("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid month", nil)
			return 0, 0, false
		}
		month = parsed
	}
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid year", nil)
			return 0, 0, false
		}
		year = parsed
	}
	return month, year, true
}

func (h *Handler) GetMine(c *gin.Context) {
	month, year, ok := monthYearFromQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.GetMine(c.Request.Context(), c.GetString("user_id"), month, year)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetForUser(c *gin.Context) {
	month, year, ok := monthYearFromQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.GetForUser(c.Request.Context(), c.Param("userId"), month, year)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetForAllEmployees(c *gin.Context) {
	month, year, ok := monthYearFromQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.GetForAllEmployees(c.Request.Context(), month, year)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
