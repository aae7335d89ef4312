package render

import (
	"errors"
	"net/http"

	"github.com/futig/scopeguard/internal/entity"
)

// StatusFor maps a use case error to the response status
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, entity.ErrUnauthenticated) || errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrChatNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrNoDraft):
		return http.StatusConflict
	case errors.Is(err, entity.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, entity.ErrMissingField) ||
		errors.Is(err, entity.ErrInvalidParameter) ||
		errors.Is(err, entity.ErrInvalidFormat) ||
		errors.Is(err, entity.ErrInvalidExtension) ||
		errors.Is(err, entity.ErrInvalidDocument) ||
		errors.Is(err, entity.ErrSignupFailed):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
