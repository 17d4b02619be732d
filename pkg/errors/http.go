package errors

import (
	"errors"
	"net/http"
)

// Convert normalizes any error into an AppError. Unrecognized errors become
// CodeInternal with a generic message so driver details never leak to clients.
func Convert(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Code: CodeInternal, Message: "internal server error", Cause: err}
}

// HTTPStatus maps an error's code to a status. Used only at the HTTP boundary.
func HTTPStatus(err error) int {
	switch Convert(err).Code {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}
