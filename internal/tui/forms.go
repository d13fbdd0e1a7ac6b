// Package tui holds the interactive surfaces: huh forms for the auth and
// onboarding flows and the bubbletea dashboard.
package tui

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/flexfitapp/flexfit/internal/api"
)

// Credentials are the login form inputs.
type Credentials struct {
	Email    string
	Password string
}

// validateEmail rejects anything that does not parse as an address.
func validateEmail(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("not a valid email address")
	}
	return nil
}

// validateRequired rejects blank input.
func validateRequired(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// validatePassword enforces the platform's minimum length.
func validatePassword(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

// validateOptionalNumber accepts blank or a positive number.
func validateOptionalNumber(name string) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return fmt.Errorf("%s must be a non-negative number", name)
		}
		return nil
	}
}

// parseNumber returns 0 for blank input; callers validate first.
func parseNumber(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

// LoginForm collects login credentials.
func LoginForm() (Credentials, error) {
	var c Credentials

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Validate(validateEmail).
			Value(&c.Email),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(validateRequired("password")).
			Value(&c.Password),
	))

	if err := form.Run(); err != nil {
		return Credentials{}, fmt.Errorf("login prompt failed: %w", err)
	}
	c.Email = strings.TrimSpace(c.Email)
	return c, nil
}

// SignupForm collects registration details.
func SignupForm() (api.SignupParams, error) {
	var p api.SignupParams
	var confirm string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Validate(validateRequired("first name")).
				Value(&p.FirstName),
			huh.NewInput().
				Title("Last name").
				Value(&p.LastName),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Validate(validateEmail).
				Value(&p.Email),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(validatePassword).
				Value(&p.Password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if s != p.Password {
						return fmt.Errorf("passwords do not match")
					}
					return nil
				}).
				Value(&confirm),
			huh.NewInput().
				Title("Referral code (optional)").
				Value(&p.ReferralCode),
		),
	)

	if err := form.Run(); err != nil {
		return api.SignupParams{}, fmt.Errorf("signup prompt failed: %w", err)
	}
	p.Email = strings.TrimSpace(p.Email)
	return p, nil
}

// OTPForm collects the emailed one-time code. defaultEmail pre-fills the
// email field from the pending signup, when known.
func OTPForm(defaultEmail string) (email, code string, err error) {
	email = defaultEmail

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Validate(validateEmail).
			Value(&email),
		huh.NewInput().
			Title("Verification code").
			Placeholder("123456").
			Validate(validateRequired("verification code")).
			Value(&code),
	))

	if err := form.Run(); err != nil {
		return "", "", fmt.Errorf("verification prompt failed: %w", err)
	}
	return strings.TrimSpace(email), strings.TrimSpace(code), nil
}

// ResetRequestForm collects the email to send a password reset code to.
func ResetRequestForm() (string, error) {
	var email string

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Validate(validateEmail).
			Value(&email),
	))

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("reset prompt failed: %w", err)
	}
	return strings.TrimSpace(email), nil
}

// SetPasswordForm collects the reset code and new password.
func SetPasswordForm(defaultEmail string) (email, code, password string, err error) {
	email = defaultEmail

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Validate(validateEmail).
			Value(&email),
		huh.NewInput().
			Title("Reset code").
			Validate(validateRequired("reset code")).
			Value(&code),
		huh.NewInput().
			Title("New password").
			EchoMode(huh.EchoModePassword).
			Validate(validatePassword).
			Value(&password),
	))

	if err := form.Run(); err != nil {
		return "", "", "", fmt.Errorf("password prompt failed: %w", err)
	}
	return strings.TrimSpace(email), strings.TrimSpace(code), password, nil
}

// Confirm displays a yes/no confirmation prompt.
func Confirm(message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(message).
			Value(&confirmed),
	))

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return confirmed, nil
}

// ProfileForm collects the fitness profile during onboarding. current
// pre-fills the form when the member is editing an existing profile.
func ProfileForm(current api.Profile) (api.Profile, error) {
	p := current

	age := blankIfZero(p.Age)
	height := blankIfZeroF(p.Height)
	weight := blankIfZeroF(p.Weight)
	targetWeight := blankIfZeroF(p.TargetWeight)
	frequency := blankIfZero(p.WorkoutFrequency)
	hasInjury := p.InjuryStatus.HasInjury

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Age").
				Validate(validateOptionalNumber("age")).
				Value(&age),
			huh.NewSelect[string]().
				Title("Gender").
				Options(
					huh.NewOption("Male", "male"),
					huh.NewOption("Female", "female"),
					huh.NewOption("Other", "other"),
					huh.NewOption("Prefer not to say", ""),
				).
				Value(&p.Gender),
			huh.NewInput().
				Title("Height (cm)").
				Validate(validateOptionalNumber("height")).
				Value(&height),
			huh.NewInput().
				Title("Weight (kg)").
				Validate(validateOptionalNumber("weight")).
				Value(&weight),
			huh.NewInput().
				Title("Target weight (kg)").
				Validate(validateOptionalNumber("target weight")).
				Value(&targetWeight),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Gym experience").
				Options(
					huh.NewOption("Beginner", "beginner"),
					huh.NewOption("Intermediate", "intermediate"),
					huh.NewOption("Advanced", "advanced"),
				).
				Value(&p.GymExperienceLevel),
			huh.NewInput().
				Title("Workouts per week").
				Validate(validateOptionalNumber("workout frequency")).
				Value(&frequency),
			huh.NewMultiSelect[string]().
				Title("Fitness goals").
				Options(
					huh.NewOption("Lose weight", "weight_loss"),
					huh.NewOption("Build muscle", "muscle_gain"),
					huh.NewOption("Improve strength", "strength"),
					huh.NewOption("Improve endurance", "endurance"),
					huh.NewOption("General fitness", "general_fitness"),
				).
				Value(&p.FitnessGoals),
			huh.NewMultiSelect[string]().
				Title("Preferred workout types").
				Options(
					huh.NewOption("Weight training", "weights"),
					huh.NewOption("Cardio", "cardio"),
					huh.NewOption("CrossFit", "crossfit"),
					huh.NewOption("Yoga", "yoga"),
					huh.NewOption("Group classes", "classes"),
				).
				Value(&p.PreferredWorkoutTypes),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Do you have a current injury?").
				Value(&hasInjury),
			huh.NewInput().
				Title("Injury description (leave blank if none)").
				Value(&p.InjuryStatus.InjuryDescription),
		),
	)

	if err := form.Run(); err != nil {
		return api.Profile{}, fmt.Errorf("profile prompt failed: %w", err)
	}

	p.Age = int(parseNumber(age))
	p.Height = parseNumber(height)
	p.Weight = parseNumber(weight)
	p.TargetWeight = parseNumber(targetWeight)
	p.WorkoutFrequency = int(parseNumber(frequency))
	p.InjuryStatus.HasInjury = hasInjury
	if !hasInjury {
		p.InjuryStatus.InjuryDescription = ""
	}
	return p, nil
}

func blankIfZero(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func blankIfZeroF(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
