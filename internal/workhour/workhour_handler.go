package workhour

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/viniciusmecosta/spe-api/internal/shared/apperror"
	"github.com/viniciusmecosta/spe-api/internal/shared/response"
)

type Handler struct {
	service Service
	loc     *time.Location
}

func NewHandler(service Service, loc *time.Location) *Handler {
	return &Handler{service: service, loc: loc}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) rangeFromQuery(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().In(h.loc)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)

	if v := c.Query("start_date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, h.loc)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid start_date", nil)
			return time.Time{}, time.Time{}, false
		}
		start = parsed
	}
	if v := c.Query("end_date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, h.loc)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid end_date", nil)
			return time.Time{}, time.Time{}, false
		}
		end = parsed
	}
	return start, end, true
}

func (h *Handler) GetMyBalance(c *gin.Context) {
	start, end, ok := h.rangeFromQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.GetPeriodSummary(c.Request.Context(), c.GetString("user_id"), start, end)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetUserBalance(c *gin.Context) {
	start, end, ok := h.rangeFromQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.GetPeriodSummary(c.Request.Context(), c.Param("userId"), start, end)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAllBalances(c *gin.Context) {
	start, end, ok := h.rangeFromQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.GetAllSummaries(c.Request.Context(), start, end)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ExportReport(c *gin.Context) {
	start, end, ok := h.rangeFromQuery(c)
	if !ok {
		return
	}
	report, err := h.service.ExportPeriodReport(c.Request.Context(), start, end)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	filename := fmt.Sprintf("espelho_ponto_%s_%s.xlsx", start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report)
}
