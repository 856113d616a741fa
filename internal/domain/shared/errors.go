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

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrAlreadyProcessed    = NewDomainError("ALREADY_PROCESSED", "Movement has already been processed")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// TransientError wraps a storage or infrastructure failure that is worth
// retrying. The worker layer checks for it when deciding whether a task
// should be redelivered.
type TransientError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *TransientError) Error() string {
	return "transient failure in " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *TransientError) Unwrap() error {
	return e.Err
}

// NewTransientError marks err as retryable
func NewTransientError(op string, err error) *TransientError {
	return &TransientError{Op: op, Err: err}
}
