package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flexfitapp/flexfit/internal/api"
	"github.com/flexfitapp/flexfit/internal/session"
	"github.com/flexfitapp/flexfit/internal/ux"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage member accounts (admin)",
	Long: `Manage member accounts. Requires an administrator account.

Subcommands:
  list       List all accounts
  toggle     Enable or disable an account
  subscribe  Attach a membership plan to an account

Examples:
  flexfit users list
  flexfit users toggle USER_ID --disable
  flexfit users subscribe USER_ID --plan PLAN_ID`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// userList is the machine-readable shape of 'users list'.
type userList []api.User

func (l userList) table() ux.Table {
	t := ux.Table{Headers: []string{"ID", "NAME", "EMAIL", "ROLE", "ACTIVE", "PLAN"}}
	for _, u := range l {
		name := u.FullName
		if name == "" {
			name = u.FirstName + " " + u.LastName
		}
		t.Rows = append(t.Rows, []string{
			u.ID,
			name,
			u.Email,
			u.Role,
			ux.Bool(u.Active),
			u.Membership,
		})
	}
	return t
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List member accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd.Context(), adminReq, func(ctx context.Context, _ *session.Session) error {
			users, err := env.client.ListUsers(ctx)
			if err != nil {
				return err
			}

			f, err := env.formatter()
			if err != nil {
				return err
			}
			if env.format == "text" || env.format == "" {
				return f.Format(userList(users).table())
			}
			return f.Format(users)
		})
	},
}

var usersToggleCmd = &cobra.Command{
	Use:   "toggle USER_ID",
	Short: "Enable or disable an account",
	Long: `Enable or disable an account. Pass --disable to deactivate; the default
re-enables a disabled account.

Examples:
  flexfit users toggle USER_ID
  flexfit users toggle USER_ID --disable`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd.Context(), adminReq, func(ctx context.Context, _ *session.Session) error {
			disable, _ := cmd.Flags().GetBool("disable")

			if err := env.client.SetUserActive(ctx, args[0], !disable); err != nil {
				return err
			}

			verb := "enabled"
			if disable {
				verb = "disabled"
			}
			fmt.Println(ux.Success(fmt.Sprintf("Account %s %s.", args[0], verb), env.noColor))
			return nil
		})
	},
}

var usersSubscribeCmd = &cobra.Command{
	Use:   "subscribe USER_ID",
	Short: "Attach a membership plan to an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd.Context(), adminReq, func(ctx context.Context, _ *session.Session) error {
			planID, _ := cmd.Flags().GetString("plan")
			if planID == "" {
				return fmt.Errorf("--plan is required")
			}

			if err := env.client.SubscribeUser(ctx, args[0], planID); err != nil {
				return err
			}

			fmt.Println(ux.Success(fmt.Sprintf("Account %s subscribed to plan %s.", args[0], planID), env.noColor))
			return nil
		})
	},
}

func init() {
	usersToggleCmd.Flags().Bool("disable", false, "disable the account instead of enabling it")
	usersSubscribeCmd.Flags().String("plan", "", "plan id to attach")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersToggleCmd)
	usersCmd.AddCommand(usersSubscribeCmd)
	rootCmd.AddCommand(usersCmd)
}
