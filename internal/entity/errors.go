package entity

import "errors"

// Domain errors
var (
	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSignupFailed       = errors.New("signup failed")
	ErrUnauthenticated    = errors.New("not authenticated")

	// Chat history errors
	ErrChatNotFound = errors.New("chat not found")

	// Generation errors
	ErrEmptyCompletion = errors.New("completion service returned no text")
	ErrNoModel         = errors.New("no text generation model available")
	ErrNoDraft         = errors.New("no draft available")

	// Document errors
	ErrInvalidDocument  = errors.New("invalid document")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("invalid file extension")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ValidationError is a user-correctable input problem. Message is shown to
// the user as is.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError wraps ErrMissingField unless another sentinel is given.
func NewValidationError(message string, err ...error) *ValidationError {
	cause := ErrMissingField
	if len(err) > 0 && err[0] != nil {
		cause = err[0]
	}
	return &ValidationError{Message: message, Err: cause}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
