package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError carrying the same code, so that
// errors.Is matches freshly built errors against the shared sentinels.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrValidation    = NewDomainError("VALIDATION_FAILED", "Validation failed")
)

// ErrorCode returns the code of the first DomainError in err's chain, or ""
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
