package adjustmenterrors

import (
	"net/http"

	"github.com/viniciusmecosta/spe-api/internal/shared/apperror"
)

var (
	ErrAdjustmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"adjustment request not found",
		http.StatusNotFound,
	)
	ErrAlreadyReviewed = apperror.New(
		apperror.CodeConflict,
		"adjustment request was already reviewed",
		http.StatusConflict,
	)
	ErrInvalidAdjustmentType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid adjustment type",
		http.StatusBadRequest,
	)
	ErrInvalidTargetDate = apperror.New(
		apperror.CodeInvalidInput,
		"target_date must be a valid YYYY-MM-DD date",
		http.StatusBadRequest,
	)
	ErrInvalidTime = apperror.New(
		apperror.CodeInvalidInput,
		"entry_time and exit_time must be HH:MM",
		http.StatusBadRequest,
	)
	ErrMissingTimes = apperror.New(
		apperror.CodeInvalidInput,
		"the requested adjustment type requires entry_time and/or exit_time",
		http.StatusBadRequest,
	)
	ErrReviewForbidden = apperror.New(
		apperror.CodeForbidden,
		"only a manager can review adjustment requests",
		http.StatusForbidden,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"adjustment requests can only be filed for yourself",
		http.StatusForbidden,
	)
)
