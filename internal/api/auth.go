package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/flexfitapp/flexfit/internal/errors"
	"github.com/flexfitapp/flexfit/internal/session"
)

// loginPayload is the login request body.
type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResult is the platform's login response data.
type loginResult struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ReferralCode string `json:"referral_code"`
	IsNew        bool   `json:"is_new"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpireOn     string `json:"expire_on"`
}

// Login exchanges credentials for a session and persists it. The session is
// written in a single atomic save; on any failure the store is untouched and
// the client remains in its previous state.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.NewMissingFieldError("email")
	}
	if password == "" {
		return nil, errors.NewMissingFieldError("password")
	}

	var result loginResult
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", loginPayload{Email: email, Password: password}, &result, false)
	if err != nil {
		if errors.IsBusinessRule(err) {
			return nil, errors.NewLoginFailedError(err)
		}
		return nil, err
	}

	role, ok := session.ParseRole(result.Role)
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionInvalid, "platform returned an unknown role: "+result.Role)
	}

	s := session.Session{
		Identity: session.Identity{
			UserID:       result.ID,
			Email:        result.Email,
			FirstName:    result.FirstName,
			LastName:     result.LastName,
			FullName:     result.FullName,
			ReferralCode: result.ReferralCode,
		},
		Role:           role,
		AccessToken:    result.AccessToken,
		RefreshToken:   result.RefreshToken,
		Onboarded:      !result.IsNew,
		IssuedAt:       time.Now().UTC(),
		ExpiresAt:      parseExpiry(result.ExpireOn),
		APIFingerprint: session.Fingerprint(c.baseURL),
	}
	if !s.Valid() {
		return nil, errors.New(errors.ErrCodeSessionInvalid, "platform login response is missing required fields")
	}

	if err := c.store.Save(s); err != nil {
		return nil, err
	}

	c.logger.Info("logged in", "email", s.Email, "role", string(s.Role))
	return &s, nil
}

// parseExpiry parses the platform's expiry timestamp. The value is
// informational, so an unparseable one is dropped rather than rejected.
func parseExpiry(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// signupPayload is the registration request body.
type signupPayload struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ReferralCode string `json:"referral_code,omitempty"`
}

// SignupParams are the inputs to account registration.
type SignupParams struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	ReferralCode string
}

// Signup registers a new account. On success the platform emails a one-time
// code; the email is remembered as a pending signup so the verify step can
// default to it. No session is created until verification completes and the
// user logs in.
func (c *Client) Signup(ctx context.Context, p SignupParams) error {
	p.Email = strings.TrimSpace(p.Email)
	switch {
	case p.FirstName == "":
		return errors.NewMissingFieldError("first name")
	case p.Email == "":
		return errors.NewMissingFieldError("email")
	case p.Password == "":
		return errors.NewMissingFieldError("password")
	}

	payload := signupPayload{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		Password:     p.Password,
		ReferralCode: p.ReferralCode,
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", payload, nil, false); err != nil {
		return err
	}

	if err := c.store.SavePendingSignup(p.Email); err != nil {
		c.logger.Warn("failed to remember pending signup", "error", err)
	}

	c.logger.Info("account registered", "email", p.Email)
	return nil
}

// otpPayload is the verification request body.
type otpPayload struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP confirms the one-time code sent after signup (or a password
// reset request) and clears the pending signup marker on success.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.NewMissingFieldError("email")
	}
	if code == "" {
		return errors.NewMissingFieldError("verification code")
	}

	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/verify-otp", otpPayload{Email: email, OTP: code}, nil, false); err != nil {
		return err
	}

	if err := c.store.ClearPendingSignup(); err != nil {
		c.logger.Warn("failed to clear pending signup", "error", err)
	}

	c.logger.Info("account verified", "email", email)
	return nil
}

// RequestPasswordReset asks the platform to email a reset code.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.NewMissingFieldError("email")
	}
	payload := struct {
		Email string `json:"email"`
	}{Email: email}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/reset-password", payload, nil, false)
}

// SetPassword completes a password reset with the emailed code.
func (c *Client) SetPassword(ctx context.Context, email, code, password string) error {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		return errors.NewMissingFieldError("email")
	case code == "":
		return errors.NewMissingFieldError("reset code")
	case password == "":
		return errors.NewMissingFieldError("password")
	}
	payload := struct {
		Email    string `json:"email"`
		OTP      string `json:"otp"`
		Password string `json:"password"`
	}{Email: email, OTP: code, Password: password}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/set-password", payload, nil, false)
}

// Logout discards the local session. It is purely local: the platform keeps
// no server-side session to revoke, so no request is issued.
func (c *Client) Logout() error {
	if err := c.store.Clear(); err != nil {
		return err
	}
	c.logger.Info("logged out")
	return nil
}
