// Package session holds the client's proof of authentication: the Session
// record written after a successful login and the Store that persists it.
//
// A Session is either wholly present (every required field populated) or
// absent. Anything in between — unreadable bytes, missing fields, a token
// minted by a different deployment — is treated as absent so that no caller
// ever observes a partial session.
package session

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

// Role determines which capability set the client exposes.
type Role string

const (
	// RoleMember is the standard member role.
	RoleMember Role = "member"
	// RoleAdmin is the privileged role with access to plan and user administration.
	RoleAdmin Role = "admin"
)

// ParseRole maps the platform's role wire values onto the client's role set.
// The platform has used both "admin" and "superuser" for privileged accounts.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin", "superuser":
		return RoleAdmin, true
	case "member", "user", "standard":
		return RoleMember, true
	default:
		return "", false
	}
}

// Identity carries the display-only user fields cached from the login response.
type Identity struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	FullName     string `json:"full_name"`
	ReferralCode string `json:"referral_code,omitempty"`
}

// Session is the client-held proof of authentication plus cached identity,
// role, and onboarding state.
type Session struct {
	Identity

	// Role is immutable for the lifetime of a session; a role change
	// requires a re-login.
	Role Role `json:"role"`

	// AccessToken is attached as a bearer credential to every
	// authenticated request.
	AccessToken string `json:"access_token"`

	// RefreshToken is stored but not used by the client; token validity is
	// discovered lazily from a rejected request.
	RefreshToken string `json:"refresh_token,omitempty"`

	// Onboarded reports whether first-time profile setup has completed.
	// The only mutation a live session undergoes is false -> true.
	Onboarded bool `json:"onboarded"`

	// IssuedAt is when this client created the session.
	IssuedAt time.Time `json:"issued_at"`

	// ExpiresAt is the platform-reported token expiry. Informational only.
	ExpiresAt time.Time `json:"expires_at,omitempty"`

	// APIFingerprint binds the session to the API base URL it was issued
	// against; a mismatch on load means the record is not valid here.
	APIFingerprint string `json:"api_fingerprint"`
}

// Valid reports whether every required field is populated.
// A session failing this check must never be saved or returned to callers.
func (s Session) Valid() bool {
	return s.UserID != "" &&
		s.Email != "" &&
		s.AccessToken != "" &&
		(s.Role == RoleMember || s.Role == RoleAdmin)
}

// DisplayName returns the best available human-readable name.
func (s Session) DisplayName() string {
	if s.FullName != "" {
		return s.FullName
	}
	if s.FirstName != "" {
		return strings.TrimSpace(s.FirstName + " " + s.LastName)
	}
	return s.Email
}

// IsAdmin reports whether the session carries the privileged role.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Fingerprint derives a short stable identifier for an API base URL.
// Sessions record it at login time so a token from one deployment is never
// presented to another.
func Fingerprint(baseURL string) string {
	sum := blake3.Sum256([]byte(strings.TrimRight(baseURL, "/")))
	return hex.EncodeToString(sum[:8])
}
