package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionValid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Session)
		want   bool
	}{
		{"complete session", func(s *Session) {}, true},
		{"missing user id", func(s *Session) { s.UserID = "" }, false},
		{"missing email", func(s *Session) { s.Email = "" }, false},
		{"missing token", func(s *Session) { s.AccessToken = "" }, false},
		{"missing role", func(s *Session) { s.Role = "" }, false},
		{"unknown role", func(s *Session) { s.Role = "wizard" }, false},
		{"member role", func(s *Session) { s.Role = RoleMember }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSession()
			tt.mutate(&s)
			assert.Equal(t, tt.want, s.Valid())
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"admin", RoleAdmin, true},
		{"superuser", RoleAdmin, true},
		{"ADMIN", RoleAdmin, true},
		{"member", RoleMember, true},
		{"user", RoleMember, true},
		{" standard ", RoleMember, true},
		{"", "", false},
		{"wizard", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRole(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayName(t *testing.T) {
	s := validSession()
	assert.Equal(t, "Jo Nguyen", s.DisplayName())

	s.FullName = ""
	assert.Equal(t, "Jo Nguyen", s.DisplayName())

	s.FirstName, s.LastName = "", ""
	assert.Equal(t, "jo@example.com", s.DisplayName())
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("http://127.0.0.1:7000")
	b := Fingerprint("http://127.0.0.1:7000/")
	c := Fingerprint("https://api.flexfit.example")

	assert.Equal(t, a, b, "trailing slash must not change the fingerprint")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}
