package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnauthenticated, "test error message")

	if err.Code != ErrCodeUnauthenticated {
		t.Errorf("expected code %s, got %s", ErrCodeUnauthenticated, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeStoreRead, "failed to read session", cause)

	if err.Code != ErrCodeStoreRead {
		t.Errorf("expected code %s, got %s", ErrCodeStoreRead, err.Code)
	}

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	// Test unwrapping
	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *FlexFitError
		wantCode string
		wantMsg  string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodeBusinessRule, "email already registered"),
			wantCode: "API-001",
			wantMsg:  "email already registered",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeRemoteFailure, "list plans failed", fmt.Errorf("connection refused")),
			wantCode: "NET-001",
			wantMsg:  "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()

			if !strings.Contains(errStr, tt.wantCode) {
				t.Errorf("error string should contain code %s, got: %s", tt.wantCode, errStr)
			}

			if !strings.Contains(errStr, tt.wantMsg) {
				t.Errorf("error string should contain message '%s', got: %s", tt.wantMsg, errStr)
			}
		})
	}
}

func TestWithSuggestion(t *testing.T) {
	err := New(ErrCodeMissingField, "email is required").
		WithSuggestion("Provide --email").
		WithSuggestion("Or run interactively without flags")

	if len(err.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(err.Suggestions))
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "Provide --email") {
		t.Errorf("error string should contain suggestion, got: %s", errStr)
	}
}

func TestKindClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"missing field is validation", NewMissingFieldError("email"), KindValidation},
		{"unauthenticated", NewUnauthenticatedError(), KindUnauthenticated},
		{"credential rejected", NewCredentialRejectedError(), KindCredentialRejected},
		{"login failed is credential rejected", NewLoginFailedError(fmt.Errorf("401")), KindCredentialRejected},
		{"remote failure", NewRemoteFailureError("fetch profile", fmt.Errorf("timeout")), KindRemoteFailure},
		{"business rule", NewBusinessRuleError("duplicate email"), KindBusinessRule},
		{"store corruption", NewStoreCorruptError(fmt.Errorf("bad json")), KindStore},
		{"plain error is unknown", fmt.Errorf("boom"), KindUnknown},
		{"nil-safe", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindClassificationThroughWrapping(t *testing.T) {
	// Kind must survive fmt.Errorf %w wrapping.
	inner := NewUnauthenticatedError()
	wrapped := fmt.Errorf("while listing plans: %w", inner)

	if !IsUnauthenticated(wrapped) {
		t.Errorf("IsUnauthenticated should see through %%w wrapping")
	}
	if IsCredentialRejected(wrapped) {
		t.Errorf("wrapped unauthenticated error misclassified as credential rejected")
	}
}

func TestKindHelpers(t *testing.T) {
	if !IsValidation(NewMissingFieldError("otp")) {
		t.Error("IsValidation failed")
	}
	if !IsRemoteFailure(NewRemoteFailureError("login", fmt.Errorf("eof"))) {
		t.Error("IsRemoteFailure failed")
	}
	if !IsBusinessRule(NewBusinessRuleError("plan in use")) {
		t.Error("IsBusinessRule failed")
	}
	if IsUnauthenticated(NewBusinessRuleError("plan in use")) {
		t.Error("business rule should not classify as unauthenticated")
	}
}
