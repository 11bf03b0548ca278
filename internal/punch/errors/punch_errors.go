package puncherrors

import (
	"net/http"

	"github.com/viniciusmecosta/spe-api/internal/shared/apperror"
)

// Messages are what ends up on the device display, so the user-facing
// ones stay in Portuguese and within the 16 character line width.
var (
	ErrDuplicateRequest = apperror.New(
		apperror.CodeDuplicateRequest,
		"Duplicated request",
		http.StatusConflict,
	)
	ErrUnknownBiometric = apperror.New(
		apperror.CodeUnknownBiometric,
		"Biometria não cadastrada",
		http.StatusNotFound,
	)
	ErrInactiveUser = apperror.New(
		apperror.CodeInactiveUser,
		"Usuário inativo",
		http.StatusForbidden,
	)
)
