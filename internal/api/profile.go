package api

import (
	"context"
	"net/http"

	"github.com/flexfitapp/flexfit/internal/errors"
)

// InjuryStatus records whether the member is carrying an injury a trainer
// should know about.
type InjuryStatus struct {
	HasInjury         bool   `json:"has_injury"`
	InjuryDescription string `json:"injury_description,omitempty"`
}

// WorkoutAvailability records when and how long the member can train.
type WorkoutAvailability struct {
	PreferredTime   string   `json:"preferred_time,omitempty"`
	AvailableDays   []string `json:"available_days,omitempty"`
	SessionDuration int      `json:"session_duration,omitempty"`
}

// Profile is the member's fitness profile. It is collected during
// onboarding and editable afterwards.
type Profile struct {
	Age                   int                 `json:"age,omitempty"`
	Gender                string              `json:"gender,omitempty"`
	Height                float64             `json:"height,omitempty"`
	Weight                float64             `json:"weight,omitempty"`
	TargetWeight          float64             `json:"target_weight,omitempty"`
	GymExperienceLevel    string              `json:"gym_experience_level,omitempty"`
	WorkoutFrequency      int                 `json:"workout_frequency,omitempty"`
	FitnessGoals          []string            `json:"fitness_goals,omitempty"`
	PreferredWorkoutTypes []string            `json:"preferred_workout_types,omitempty"`
	MedicalConditions     []string            `json:"medical_conditions,omitempty"`
	DietaryRestrictions   []string            `json:"dietary_restrictions,omitempty"`
	InjuryStatus          InjuryStatus        `json:"injury_status"`
	WorkoutAvailability   WorkoutAvailability `json:"workout_availability"`
	BenchPressMax         float64             `json:"bench_press_max,omitempty"`
	SquatMax              float64             `json:"squat_max,omitempty"`
	DeadliftMax           float64             `json:"deadlift_max,omitempty"`
}

// GetProfile fetches the current member's fitness profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/profile", nil, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile submits the member's fitness profile. The first successful
// submission completes onboarding: the stored session's Onboarded flag flips
// to true so the dashboard stops prompting.
func (c *Client) UpdateProfile(ctx context.Context, p Profile) error {
	if p.Age < 0 {
		return errors.New(errors.ErrCodeValidationFailed, "age must not be negative")
	}
	if err := c.do(ctx, http.MethodPut, "/api/v1/auth/profile", p, nil, true); err != nil {
		return err
	}

	s, err := c.store.Load()
	if err != nil {
		return err
	}
	if s != nil && !s.Onboarded {
		s.Onboarded = true
		if err := c.store.Save(*s); err != nil {
			return err
		}
		c.logger.Info("onboarding completed", "email", s.Email)
	}
	return nil
}
