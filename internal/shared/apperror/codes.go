package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput     = "INVALID_INPUT"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInvalidState     = "INVALID_STATE"
	CodeDuplicateRequest = "DUPLICATE_REQUEST"
	CodeUnknownBiometric = "UNKNOWN_BIOMETRIC"
	CodeInactiveUser     = "INACTIVE_USER"
	CodePeriodClosed     = "PERIOD_CLOSED"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
