package api

import (
	"context"
	"net/http"

	"github.com/flexfitapp/flexfit/internal/errors"
)

// User is a platform account as the admin user listing reports it.
type User struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Active       bool   `json:"is_active"`
	MembershipID string `json:"membership_id,omitempty"`
	Membership   string `json:"membership_name,omitempty"`
}

// ListUsers returns all platform accounts.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/users", nil, &users, true); err != nil {
		return nil, err
	}
	return users, nil
}

// SetUserActive enables or disables an account.
func (c *Client) SetUserActive(ctx context.Context, id string, active bool) error {
	if id == "" {
		return errors.NewMissingFieldError("user id")
	}
	payload := struct {
		Active bool `json:"is_active"`
	}{Active: active}
	if err := c.do(ctx, http.MethodPut, "/api/v1/admin/users/"+id, payload, nil, true); err != nil {
		return err
	}
	c.logger.Info("user status changed", "id", id, "active", active)
	return nil
}

// SubscribeUser assigns a membership plan to an account.
func (c *Client) SubscribeUser(ctx context.Context, userID, planID string) error {
	if userID == "" {
		return errors.NewMissingFieldError("user id")
	}
	if planID == "" {
		return errors.NewMissingFieldError("plan id")
	}
	payload := struct {
		MembershipID string `json:"membership_id"`
	}{MembershipID: planID}
	if err := c.do(ctx, http.MethodPost, "/api/v1/admin/users/"+userID+"/subscribe", payload, nil, true); err != nil {
		return err
	}
	c.logger.Info("user subscribed", "user_id", userID, "plan_id", planID)
	return nil
}
