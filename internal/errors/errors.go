package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Validation errors (VALIDATE-001 to VALIDATE-099): locally detected bad
	// input; no request is issued for these.
	ErrCodeValidationFailed ErrorCode = "VALIDATE-001"
	ErrCodeMissingField     ErrorCode = "VALIDATE-002"

	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeUnauthenticated    ErrorCode = "AUTH-001"
	ErrCodeCredentialRejected ErrorCode = "AUTH-002"
	ErrCodeSessionInvalid     ErrorCode = "AUTH-003"

	// Network errors (NET-001 to NET-099): transport failures and 5xx
	// responses; retryable, no client state is mutated.
	ErrCodeRemoteFailure ErrorCode = "NET-001"
	ErrCodeRemoteTimeout ErrorCode = "NET-002"

	// Remote business-rule errors (API-001 to API-099): the platform rejected
	// a well-formed request for domain reasons (duplicate email, bad OTP, ...).
	ErrCodeBusinessRule ErrorCode = "API-001"

	// Session store errors (STORE-001 to STORE-099)
	ErrCodeStoreRead    ErrorCode = "STORE-001"
	ErrCodeStoreWrite   ErrorCode = "STORE-002"
	ErrCodeStoreCorrupt ErrorCode = "STORE-003"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid ErrorCode = "CONFIG-001"
	ErrCodeConfigRead    ErrorCode = "CONFIG-002"
)

// Kind groups error codes into the failure classes the rest of the client
// dispatches on (exit codes, redirects, retry hints).
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnauthenticated
	KindCredentialRejected
	KindRemoteFailure
	KindBusinessRule
	KindStore
	KindConfig
)

// FlexFitError represents an enhanced error with code, suggestions, and cause
type FlexFitError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *FlexFitError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FlexFitError) Unwrap() error {
	return e.Cause
}

// Kind returns the failure class for this error's code.
func (e *FlexFitError) Kind() Kind {
	switch {
	case strings.HasPrefix(string(e.Code), "VALIDATE-"):
		return KindValidation
	case e.Code == ErrCodeUnauthenticated:
		return KindUnauthenticated
	case e.Code == ErrCodeCredentialRejected, e.Code == ErrCodeSessionInvalid:
		return KindCredentialRejected
	case strings.HasPrefix(string(e.Code), "NET-"):
		return KindRemoteFailure
	case strings.HasPrefix(string(e.Code), "API-"):
		return KindBusinessRule
	case strings.HasPrefix(string(e.Code), "STORE-"):
		return KindStore
	case strings.HasPrefix(string(e.Code), "CONFIG-"):
		return KindConfig
	default:
		return KindUnknown
	}
}

// New creates a new FlexFitError
func New(code ErrorCode, message string) *FlexFitError {
	return &FlexFitError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new FlexFitError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *FlexFitError {
	return &FlexFitError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *FlexFitError) WithSuggestion(suggestion string) *FlexFitError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *FlexFitError) WithSuggestions(suggestions ...string) *FlexFitError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// KindOf classifies any error. Errors that are not FlexFitError (or do not
// wrap one) are KindUnknown.
func KindOf(err error) Kind {
	var fe *FlexFitError
	if errors.As(err, &fe) {
		return fe.Kind()
	}
	return KindUnknown
}

// IsValidation reports whether err is a locally detected validation failure.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsUnauthenticated reports whether err means no session was present.
func IsUnauthenticated(err error) bool {
	return KindOf(err) == KindUnauthenticated
}

// IsCredentialRejected reports whether the platform rejected the credential.
func IsCredentialRejected(err error) bool {
	return KindOf(err) == KindCredentialRejected
}

// IsRemoteFailure reports whether err is a retryable network/server failure.
func IsRemoteFailure(err error) bool {
	return KindOf(err) == KindRemoteFailure
}

// IsBusinessRule reports whether the platform rejected the request for
// domain reasons.
func IsBusinessRule(err error) bool {
	return KindOf(err) == KindBusinessRule
}

// Common error constructors for frequently used errors

// NewUnauthenticatedError signals an operation that requires a session found none.
func NewUnauthenticatedError() *FlexFitError {
	return New(ErrCodeUnauthenticated, "not logged in").
		WithSuggestion("Run 'flexfit auth login' to authenticate").
		WithSuggestion("Run 'flexfit auth signup' if you do not have an account yet")
}

// NewCredentialRejectedError signals the platform rejected the stored credential.
// The session store has already been cleared when this is returned.
func NewCredentialRejectedError() *FlexFitError {
	return New(ErrCodeCredentialRejected, "your session is no longer valid").
		WithSuggestion("Run 'flexfit auth login' to sign in again")
}

// NewLoginFailedError signals the platform rejected the login credentials.
func NewLoginFailedError(cause error) *FlexFitError {
	return Wrap(ErrCodeCredentialRejected, "login failed", cause).
		WithSuggestion("Check your email and password").
		WithSuggestion("Run 'flexfit auth forgot-password' if you cannot remember your password")
}

// NewRemoteFailureError signals a network or server failure unrelated to credentials.
func NewRemoteFailureError(operation string, cause error) *FlexFitError {
	return Wrap(ErrCodeRemoteFailure, fmt.Sprintf("%s failed", operation), cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Retry in a moment; the platform may be temporarily unavailable")
}

// NewBusinessRuleError surfaces a platform rejection verbatim.
func NewBusinessRuleError(message string) *FlexFitError {
	return New(ErrCodeBusinessRule, message)
}

// NewMissingFieldError creates a local validation error for a missing input field.
func NewMissingFieldError(field string) *FlexFitError {
	return New(ErrCodeMissingField, fmt.Sprintf("%s is required", field))
}

// NewStoreCorruptError reports an unreadable persisted session record.
// Callers treat this as "no session", never as a fatal condition.
func NewStoreCorruptError(cause error) *FlexFitError {
	return Wrap(ErrCodeStoreCorrupt, "stored session record is unreadable", cause).
		WithSuggestion("Run 'flexfit auth login' to create a fresh session")
}
