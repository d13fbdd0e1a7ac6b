package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/flexfitapp/flexfit/internal/api"
	"github.com/flexfitapp/flexfit/internal/guard"
	"github.com/flexfitapp/flexfit/internal/session"
	"github.com/flexfitapp/flexfit/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the member dashboard",
	Long: `Open the interactive member dashboard.

The dashboard is the landing surface after sign-in: it shows your identity
and the membership plan catalog. On your first visit it collects your
fitness profile before anything else renders.

Examples:
  flexfit dashboard`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := guard.Requirement{Level: guard.Authenticated, Landing: true}
		return runGuarded(cmd.Context(), req, func(ctx context.Context, s *session.Session) error {
			return tui.Run(s, func(fetchCtx context.Context) ([]api.Plan, error) {
				return env.client.ListPlans(fetchCtx)
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
