package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/flexfitapp/flexfit/internal/errors"
)

// Plan is a membership plan as the platform reports it.
type Plan struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	DurationMonths int      `json:"duration_months"`
	Benefits       []string `json:"benefits,omitempty"`
}

// PlanParams are the writable fields of a membership plan.
type PlanParams struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	DurationMonths int      `json:"duration_months"`
	Benefits       []string `json:"benefits,omitempty"`
}

func (p PlanParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.NewMissingFieldError("plan name")
	}
	if p.Price < 0 {
		return errors.New(errors.ErrCodeValidationFailed, "price must not be negative")
	}
	if p.DurationMonths <= 0 {
		return errors.New(errors.ErrCodeValidationFailed, "duration must be at least one month")
	}
	return nil
}

// ListPlans returns all membership plans.
func (c *Client) ListPlans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/memberships", nil, &plans, true); err != nil {
		return nil, err
	}
	return plans, nil
}

// CreatePlan creates a membership plan.
func (c *Client) CreatePlan(ctx context.Context, p PlanParams) (*Plan, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	var plan Plan
	if err := c.do(ctx, http.MethodPost, "/api/v1/admin/memberships", p, &plan, true); err != nil {
		return nil, err
	}
	c.logger.Info("plan created", "name", p.Name)
	return &plan, nil
}

// UpdatePlan replaces a plan's writable fields.
func (c *Client) UpdatePlan(ctx context.Context, id string, p PlanParams) (*Plan, error) {
	if id == "" {
		return nil, errors.NewMissingFieldError("plan id")
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	var plan Plan
	if err := c.do(ctx, http.MethodPut, "/api/v1/admin/memberships/"+id, p, &plan, true); err != nil {
		return nil, err
	}
	c.logger.Info("plan updated", "id", id)
	return &plan, nil
}

// DeletePlan removes a plan.
func (c *Client) DeletePlan(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewMissingFieldError("plan id")
	}
	if err := c.do(ctx, http.MethodDelete, "/api/v1/admin/memberships/"+id, nil, nil, true); err != nil {
		return err
	}
	c.logger.Info("plan deleted", "id", id)
	return nil
}
