package biometricerrors

import (
	"net/http"

	"github.com/viniciusmecosta/spe-api/internal/shared/apperror"
)

var (
	ErrBiometricNotFound = apperror.New(
		apperror.CodeNotFound,
		"biometric template not found",
		http.StatusNotFound,
	)
	ErrTemplateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"template_data is required",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
)
