package scheduleerrors

import (
	"net/http"

	"github.com/viniciusmecosta/spe-api/internal/shared/apperror"
)

var (
	ErrInvalidDayOfWeek = apperror.New(
		apperror.CodeInvalidInput,
		"day_of_week must be between 0 and 6",
		http.StatusBadRequest,
	)
	ErrInvalidDailyHours = apperror.New(
		apperror.CodeInvalidInput,
		"daily_hours must be between 0 and 24",
		http.StatusBadRequest,
	)
	ErrDuplicateDayOfWeek = apperror.New(
		apperror.CodeInvalidInput,
		"schedule has more than one entry for the same day_of_week",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidHolidayDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrHolidayExists = apperror.New(
		apperror.CodeConflict,
		"holiday already exists for this date",
		http.StatusConflict,
	)
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"holiday not found",
		http.StatusNotFound,
	)
)
