package errors

import "fmt"

// Error codes
const (
	CodePortalError = "PORTAL_ERROR"
	CodeValidation  = "VALIDATION_ERROR"
	CodeCredential  = "CREDENTIAL_ERROR"
	CodeStore       = "STORE_ERROR"
	CodeCache       = "CACHE_ERROR"
	CodeSession     = "SESSION_ERROR"
)

type PortalError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *PortalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PortalError) Unwrap() error {
	return e.Cause
}

func NewPortalError(message, code string, statusCode int, context map[string]any) *PortalError {
	return &PortalError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *PortalError) WithCause(cause error) *PortalError {
	e.Cause = cause
	return e
}

// ValidationError rejects one signup field. Recovered at the form level,
// never written to the store.
type ValidationError struct {
	*PortalError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		PortalError: &PortalError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// Credential failure reasons
const (
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonNotApproved        = "not_approved"
)

type CredentialError struct {
	*PortalError
	Reason string
}

func NewCredentialError(message, reason string) *CredentialError {
	return &CredentialError{
		PortalError: &PortalError{
			Message:    message,
			Code:       CodeCredential,
			StatusCode: 401,
			Context: map[string]any{
				"reason": reason,
			},
		},
		Reason: reason,
	}
}

// StoreError wraps a remote spreadsheet failure. Fatal to the interaction,
// no retry.
type StoreError struct {
	*PortalError
	Operation string
}

func NewStoreError(message, operation string, cause error) *StoreError {
	return &StoreError{
		PortalError: &PortalError{
			Message:    message,
			Code:       CodeStore,
			StatusCode: 502,
			Context: map[string]any{
				"operation": operation,
			},
			Cause: cause,
		},
		Operation: operation,
	}
}

type CacheError struct {
	*PortalError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		PortalError: &PortalError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type SessionError struct {
	*PortalError
	SessionID string
}

func NewSessionError(message, sessionID string, cause error) *SessionError {
	return &SessionError{
		PortalError: &PortalError{
			Message:    message,
			Code:       CodeSession,
			StatusCode: 500,
			Context: map[string]any{
				"session_id": sessionID,
			},
			Cause: cause,
		},
		SessionID: sessionID,
	}
}
