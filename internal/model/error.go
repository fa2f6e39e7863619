package model

import "errors"

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrCodeStorageFailure  = "STORAGE_FAILURE"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error with a caller-facing message.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// Common domain errors
var (
	ErrValidation      = NewDomainError(ErrCodeValidation, "Dados do produto inválidos")
	ErrInvalidValue    = NewDomainError(ErrCodeValidation, "O campo valor deve ser numérico")
	ErrMissingValue    = NewDomainError(ErrCodeValidation, "O campo valor é obrigatório")
	ErrMissingCategory = NewDomainError(ErrCodeValidation, "O campo categoria é obrigatório")
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Produto não encontrado")
	ErrStorageFailure  = NewDomainError(ErrCodeStorageFailure, "storage failure")
	ErrInvalidJSON     = NewDomainError(ErrCodeInvalidJSON, "Corpo da requisição inválido")
)

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err means the product does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound)
}
