package payrollperioderrors

import (
	"fmt"
	"net/http"

	"github.com/viniciusmecosta/spe-api/internal/shared/apperror"
)

var (
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be 1-12 and year must be positive",
		http.StatusBadRequest,
	)
	ErrPeriodNotPast = apperror.New(
		apperror.CodeInvalidState,
		"only months strictly before the current month can be closed",
		http.StatusBadRequest,
	)
	ErrAlreadyClosed = apperror.New(
		apperror.CodeConflict,
		"payroll period is already closed",
		http.StatusConflict,
	)
	ErrNotClosed = apperror.New(
		apperror.CodeNotFound,
		"payroll period is not closed",
		http.StatusNotFound,
	)
	ErrCloseForbidden = apperror.New(
		apperror.CodeForbidden,
		"only managers or maintainers can close a payroll period",
		http.StatusForbidden,
	)
	ErrReopenForbidden = apperror.New(
		apperror.CodeForbidden,
		"only maintainers can reopen a payroll period",
		http.StatusForbidden,
	)
)

// NewPeriodClosed carries the month/year so callers surface which period
// blocked the write.
func NewPeriodClosed(month, year int) *apperror.AppError {
	return apperror.New(
		apperror.CodePeriodClosed,
		fmt.Sprintf("payroll period %02d/%d is closed, no modifications allowed", month, year),
		http.StatusConflict,
	)
}
