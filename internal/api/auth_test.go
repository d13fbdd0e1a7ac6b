package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexfitapp/flexfit/internal/errors"
	"github.com/flexfitapp/flexfit/internal/session"
)

func loginResponse(isNew bool) map[string]any {
	return map[string]any{
		"status": "success",
		"data": map[string]any{
			"id":            "u-42",
			"first_name":    "Jo",
			"last_name":     "Nguyen",
			"full_name":     "Jo Nguyen",
			"email":         "jo@example.com",
			"role":          "admin",
			"referral_code": "REF123",
			"is_new":        isNew,
			"access_token":  "tok-access",
			"refresh_token": "tok-refresh",
			"expire_on":     "2026-12-01T10:00:00",
		},
	}
}

func TestLoginSavesSession(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Empty(t, r.Header.Get("Authorization"), "login must not carry a bearer token")

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jo@example.com", body["email"])

		json.NewEncoder(w).Encode(loginResponse(false))
	}))

	store := session.NewMemStore()
	client := New(server.URL, store, nil)

	s, err := client.Login(context.Background(), "jo@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "u-42", s.UserID)
	assert.Equal(t, session.RoleAdmin, s.Role)
	assert.True(t, s.Onboarded, "is_new=false means onboarding is already done")
	assert.Equal(t, session.Fingerprint(server.URL), s.APIFingerprint)

	saved, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "tok-access", saved.AccessToken)
	assert.False(t, saved.ExpiresAt.IsZero())
}

func TestLoginNewAccountIsNotOnboarded(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(loginResponse(true))
	}))

	store := session.NewMemStore()
	client := New(server.URL, store, nil)

	s, err := client.Login(context.Background(), "jo@example.com", "hunter2")
	require.NoError(t, err)
	assert.False(t, s.Onboarded)
}

func TestLoginRejectionLeavesStoreUntouched(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
	}))

	store := session.NewMemStore()
	client := New(server.URL, store, nil)

	_, err := client.Login(context.Background(), "jo@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.IsCredentialRejected(err))
	assert.Contains(t, err.Error(), "login failed")

	s, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Nil(t, s, "a failed login must not create a session")
}

func TestLoginValidatesLocally(t *testing.T) {
	requests := 0
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	client := New(server.URL, session.NewMemStore(), nil)

	_, err := client.Login(context.Background(), "", "hunter2")
	assert.True(t, errors.IsValidation(err))

	_, err = client.Login(context.Background(), "jo@example.com", "")
	assert.True(t, errors.IsValidation(err))

	assert.Zero(t, requests, "local validation failures must not reach the network")
}

func TestSignupRemembersPendingEmail(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/register", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))

	store := session.NewMemStore()
	client := New(server.URL, store, nil)

	err := client.Signup(context.Background(), SignupParams{
		FirstName: "Jo",
		LastName:  "Nguyen",
		Email:     "jo@example.com",
		Password:  "hunter2",
	})
	require.NoError(t, err)

	email, err := store.LoadPendingSignup()
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", email)
}

func TestVerifyOTPClearsPendingSignup(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/verify-otp", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))

	store := session.NewMemStore()
	require.NoError(t, store.SavePendingSignup("jo@example.com"))
	client := New(server.URL, store, nil)

	require.NoError(t, client.VerifyOTP(context.Background(), "jo@example.com", "123456"))

	email, err := store.LoadPendingSignup()
	require.NoError(t, err)
	assert.Empty(t, email)
}

func TestVerifyOTPSurfacesPlatformMessage(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "OTP has expired"})
	}))

	client := New(server.URL, session.NewMemStore(), nil)

	err := client.VerifyOTP(context.Background(), "jo@example.com", "000000")
	require.Error(t, err)
	assert.True(t, errors.IsBusinessRule(err))
	assert.Contains(t, err.Error(), "OTP has expired")
}

func TestLogoutIsLocalOnly(t *testing.T) {
	requests := 0
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	store := session.NewMemStore()
	require.NoError(t, store.Save(validSession(server.URL)))
	client := New(server.URL, store, nil)

	require.NoError(t, client.Logout())

	s, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Zero(t, requests, "logout must not issue a request")
}
