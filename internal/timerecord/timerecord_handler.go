package timerecord

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

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

func actorFromContext(c *gin.Context) (uuid.UUID, string, bool) {
	actorID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
		return uuid.Nil, "", false
	}
	return actorID, c.GetString("role"), true
}

// rangeFromQuery reads start/end dates (YYYY-MM-DD) defaulting to the
// current month so far, matching the balance endpoints.
func (h *Handler) rangeFromQuery(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().In(h.loc)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc)
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, h.loc)

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
		end = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, 0, h.loc)
	}
	return start, end, true
}

func (h *Handler) RegisterEntry(c *gin.Context) {
	actorID, _, ok := actorFromContext(c)
	if !ok {
		return
	}
	resp, err := h.service.RegisterEntry(c.Request.Context(), actorID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) RegisterExit(c *gin.Context) {
	actorID, _, ok := actorFromContext(c)
	if !ok {
		return
	}
	resp, err := h.service.RegisterExit(c.Request.Context(), actorID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ToggleType(c *gin.Context) {
	actorID, role, ok := actorFromContext(c)
	if !ok {
		return
	}
	resp, err := h.service.ToggleType(c.Request.Context(), c.Param("id"), actorID, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMyRecords(c *gin.Context) {
	actorID, _, ok := actorFromContext(c)
	if !ok {
		return
	}
	start, end, ok := h.rangeFromQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.GetByUserAndRange(c.Request.Context(), actorID.String(), start, end)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetUserRecords(c *gin.Context) {
	start, end, ok := h.rangeFromQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.GetByUserAndRange(c.Request.Context(), c.Param("userId"), start, end)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AdminCreate(c *gin.Context) {
	var req AdminCreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	actorID, _, ok := actorFromContext(c)
	if !ok {
		return
	}
	resp, err := h.service.AdminCreate(c.Request.Context(), actorID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	var req AdminUpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	actorID, _, ok := actorFromContext(c)
	if !ok {
		return
	}
	resp, err := h.service.AdminUpdate(c.Request.Context(), c.Param("id"), actorID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AdminDelete(c *gin.Context) {
	var req AdminDeleteRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	actorID, _, ok := actorFromContext(c)
	if !ok {
		return
	}
	if err := h.service.AdminDelete(c.Request.Context(), c.Param("id"), actorID, req); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "record deleted successfully"}, nil)
}

func (h *Handler) GrantManualAuth(c *gin.Context) {
	var req GrantManualAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	actorID, _, ok := actorFromContext(c)
	if !ok {
		return
	}
	if err := h.service.GrantManualAuth(c.Request.Context(), c.Param("userId"), actorID, req); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": "authorization granted"}, nil)
}

func (h *Handler) RevokeManualAuth(c *gin.Context) {
	actorID, _, ok := actorFromContext(c)
	if !ok {
		return
	}
	if err := h.service.RevokeManualAuth(c.Request.Context(), c.Param("userId"), actorID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "authorization revoked"}, nil)
}
