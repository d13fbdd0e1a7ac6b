package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flexfitapp/flexfit/internal/api"
	"github.com/flexfitapp/flexfit/internal/guard"
	"github.com/flexfitapp/flexfit/internal/session"
	"github.com/flexfitapp/flexfit/internal/tui"
	"github.com/flexfitapp/flexfit/internal/ux"
)

var authenticatedReq = guard.Requirement{Level: guard.Authenticated}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your fitness profile",
	Long: `View and edit your fitness profile.

Subcommands:
  show    Display the profile
  update  Edit the profile interactively

Examples:
  flexfit profile show
  flexfit profile show --format json
  flexfit profile update`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// profileView wraps the API profile for the text formatter.
type profileView struct {
	api.Profile
}

func (v profileView) String() string {
	var b strings.Builder
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-22s %s\n", label+":", value)
		}
	}

	if v.Age > 0 {
		line("Age", fmt.Sprintf("%d", v.Age))
	}
	line("Gender", v.Gender)
	if v.Height > 0 {
		line("Height", fmt.Sprintf("%.1f cm", v.Height))
	}
	if v.Weight > 0 {
		line("Weight", fmt.Sprintf("%.1f kg", v.Weight))
	}
	if v.TargetWeight > 0 {
		line("Target weight", fmt.Sprintf("%.1f kg", v.TargetWeight))
	}
	line("Experience", v.GymExperienceLevel)
	if v.WorkoutFrequency > 0 {
		line("Workouts per week", fmt.Sprintf("%d", v.WorkoutFrequency))
	}
	line("Goals", strings.Join(v.FitnessGoals, ", "))
	line("Workout types", strings.Join(v.PreferredWorkoutTypes, ", "))
	line("Medical conditions", strings.Join(v.MedicalConditions, ", "))
	line("Dietary restrictions", strings.Join(v.DietaryRestrictions, ", "))
	if v.InjuryStatus.HasInjury {
		line("Injury", v.InjuryStatus.InjuryDescription)
	}
	if v.BenchPressMax > 0 {
		line("Bench press max", fmt.Sprintf("%.1f kg", v.BenchPressMax))
	}
	if v.SquatMax > 0 {
		line("Squat max", fmt.Sprintf("%.1f kg", v.SquatMax))
	}
	if v.DeadliftMax > 0 {
		line("Deadlift max", fmt.Sprintf("%.1f kg", v.DeadliftMax))
	}

	out := strings.TrimRight(b.String(), "\n")
	if out == "" {
		return "No profile on record yet. Run 'flexfit profile update' to create one."
	}
	return out
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display your fitness profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd.Context(), authenticatedReq, func(ctx context.Context, _ *session.Session) error {
			p, err := env.client.GetProfile(ctx)
			if err != nil {
				return err
			}

			f, err := env.formatter()
			if err != nil {
				return err
			}
			if env.format == "text" || env.format == "" {
				return f.Format(profileView{*p})
			}
			return f.Format(p)
		})
	},
}

// loadProfileOrEmpty fetches the current profile for pre-filling a form,
// degrading to an empty profile when the platform has none yet.
func loadProfileOrEmpty(cmd *cobra.Command) api.Profile {
	p, err := env.client.GetProfile(cmd.Context())
	if err != nil || p == nil {
		if err != nil {
			env.logger.Debug("no existing profile to pre-fill", "error", err)
		}
		return api.Profile{}
	}
	return *p
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Edit your fitness profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd.Context(), authenticatedReq, func(ctx context.Context, _ *session.Session) error {
			current := loadProfileOrEmpty(cmd)

			updated, err := tui.ProfileForm(current)
			if err != nil {
				return err
			}
			if err := env.client.UpdateProfile(ctx, updated); err != nil {
				return err
			}

			fmt.Println(ux.Success("Profile updated.", env.noColor))
			return nil
		})
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
