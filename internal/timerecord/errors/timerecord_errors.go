package timerecorderrors

import (
	"net/http"

	"github.com/viniciusmecosta/spe-api/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"time record not found",
		http.StatusNotFound,
	)
	ErrToggleForbidden = apperror.New(
		apperror.CodeForbidden,
		"only the record owner or a manager can toggle a record",
		http.StatusForbidden,
	)
	ErrLastWasEntry = apperror.New(
		apperror.CodeInvalidState,
		"last record was an entry, you must exit first",
		http.StatusBadRequest,
	)
	ErrLastWasExit = apperror.New(
		apperror.CodeInvalidState,
		"last record was an exit (or no record), you must enter first",
		http.StatusBadRequest,
	)
	ErrManualNotAuthorized = apperror.New(
		apperror.CodeForbidden,
		"manual punch is not authorized for this user right now",
		http.StatusForbidden,
	)
	ErrJustificationRequired = apperror.New(
		apperror.CodeInvalidInput,
		"edit_justification and edit_reason are required",
		http.StatusBadRequest,
	)
	ErrInvalidRecordType = apperror.New(
		apperror.CodeInvalidInput,
		"record_type must be ENTRY or EXIT",
		http.StatusBadRequest,
	)
	ErrInvalidDatetime = apperror.New(
		apperror.CodeInvalidInput,
		"invalid datetime format, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidAuthWindow = apperror.New(
		apperror.CodeInvalidInput,
		"valid_until must be after valid_from",
		http.StatusBadRequest,
	)
)
