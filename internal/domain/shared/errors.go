package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code,
// so the sentinel errors below match wrapped values under errors.Is.
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

// Error codes used across the system
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeCapacityExceeded = "CAPACITY_EXCEEDED"
	CodeReferenceInUse   = "REFERENCE_IN_USE"
	CodeDeliveryFailed   = "DELIVERY_FAILED"
	CodeAlreadyExists    = "ALREADY_EXISTS"
	CodeInvalidState     = "INVALID_STATE"
)

// Common domain errors
var (
	ErrValidationFailed = NewDomainError(CodeValidationFailed, "Input validation failed")
	ErrNotFound         = NewDomainError(CodeNotFound, "Resource not found")
	ErrCapacityExceeded = NewDomainError(CodeCapacityExceeded, "Store capacity exceeded")
	ErrReferenceInUse   = NewDomainError(CodeReferenceInUse, "Resource is still referenced")
	ErrDeliveryFailed   = NewDomainError(CodeDeliveryFailed, "Order delivery failed")
	ErrAlreadyExists    = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidState     = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
)

// NewValidationError creates a validation error with a specific message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidationFailed, message)
}

// NewNotFoundError creates a not-found error with a specific message
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewDeliveryError creates a delivery error with a specific message
func NewDeliveryError(message string) *DomainError {
	return NewDomainError(CodeDeliveryFailed, message)
}
