package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/flexfitapp/flexfit/internal/api"
	"github.com/flexfitapp/flexfit/internal/errors"
	"github.com/flexfitapp/flexfit/internal/guard"
	"github.com/flexfitapp/flexfit/internal/session"
	"github.com/flexfitapp/flexfit/internal/tui"
	"github.com/flexfitapp/flexfit/internal/ux"
)

// runGuarded evaluates the command's access requirement, handles redirects
// and the onboarding prompt, and only then calls fn with the loaded session.
//
// The decision handling mirrors the app's navigation rules: a missing
// session points at login, an insufficient role silently lands on the
// dashboard, and the first visit to the landing surface collects the
// fitness profile before anything else renders.
func runGuarded(ctx context.Context, req guard.Requirement, fn func(ctx context.Context, s *session.Session) error) error {
	decision, s, err := env.guard.Authorize(req)
	if err != nil {
		return err
	}

	switch decision {
	case guard.RedirectLogin:
		fmt.Fprintln(os.Stderr, ux.Notice("You need to sign in first.", env.noColor))
		return errors.NewUnauthenticatedError()

	case guard.RedirectHome:
		fmt.Fprintln(os.Stderr, ux.Notice("This area requires an administrator account. Try 'flexfit dashboard'.", env.noColor))
		return nil

	case guard.PromptOnboarding:
		if err := completeOnboarding(ctx); err != nil {
			return err
		}
		// Re-evaluate: the session's onboarding flag has changed.
		decision, s, err = env.guard.Authorize(req)
		if err != nil {
			return err
		}
		if decision != guard.Allow {
			return errors.New(errors.ErrCodeSessionInvalid, "session state changed during onboarding")
		}
	}

	return fn(ctx, s)
}

// completeOnboarding collects the fitness profile and submits it. A
// successful submission flips the session's onboarded flag.
func completeOnboarding(ctx context.Context) error {
	fmt.Fprintln(os.Stderr, ux.Notice("Welcome! Let's set up your fitness profile.", env.noColor))

	profile, err := tui.ProfileForm(api.Profile{})
	if err != nil {
		return err
	}
	if err := env.client.UpdateProfile(ctx, profile); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, ux.Success("Profile saved.", env.noColor))
	return nil
}
