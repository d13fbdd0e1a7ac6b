package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flexfitapp/flexfit/internal/api"
	"github.com/flexfitapp/flexfit/internal/guard"
	"github.com/flexfitapp/flexfit/internal/session"
	"github.com/flexfitapp/flexfit/internal/tui"
	"github.com/flexfitapp/flexfit/internal/ux"
)

var adminReq = guard.Requirement{Level: guard.Admin}

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Manage membership plans (admin)",
	Long: `Manage the membership plan catalog. Requires an administrator account.

Subcommands:
  list    List all plans
  add     Create a plan
  edit    Update a plan
  delete  Delete a plan

Examples:
  flexfit plans list
  flexfit plans add --name Gold --price 49.90 --months 12 --benefit sauna
  flexfit plans delete PLAN_ID`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// planList is the machine-readable shape of 'plans list'.
type planList []api.Plan

func (l planList) table() ux.Table {
	t := ux.Table{Headers: []string{"ID", "NAME", "PRICE", "MONTHS", "BENEFITS"}}
	for _, p := range l {
		t.Rows = append(t.Rows, []string{
			p.ID,
			p.Name,
			ux.Money(p.Price),
			strconv.Itoa(p.DurationMonths),
			strings.Join(p.Benefits, ", "),
		})
	}
	return t
}

var plansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List membership plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd.Context(), adminReq, func(ctx context.Context, _ *session.Session) error {
			plans, err := env.client.ListPlans(ctx)
			if err != nil {
				return err
			}

			f, err := env.formatter()
			if err != nil {
				return err
			}
			if env.format == "text" || env.format == "" {
				return f.Format(planList(plans).table())
			}
			return f.Format(plans)
		})
	},
}

// planParamsFromFlags builds PlanParams from the shared add/edit flags.
func planParamsFromFlags(cmd *cobra.Command) api.PlanParams {
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	price, _ := cmd.Flags().GetFloat64("price")
	months, _ := cmd.Flags().GetInt("months")
	benefits, _ := cmd.Flags().GetStringArray("benefit")

	return api.PlanParams{
		Name:           name,
		Description:    description,
		Price:          price,
		DurationMonths: months,
		Benefits:       benefits,
	}
}

var plansAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a membership plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd.Context(), adminReq, func(ctx context.Context, _ *session.Session) error {
			plan, err := env.client.CreatePlan(ctx, planParamsFromFlags(cmd))
			if err != nil {
				return err
			}
			fmt.Println(ux.Success(fmt.Sprintf("Plan %q created (%s).", plan.Name, plan.ID), env.noColor))
			return nil
		})
	},
}

var plansEditCmd = &cobra.Command{
	Use:   "edit PLAN_ID",
	Short: "Update a membership plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd.Context(), adminReq, func(ctx context.Context, _ *session.Session) error {
			plan, err := env.client.UpdatePlan(ctx, args[0], planParamsFromFlags(cmd))
			if err != nil {
				return err
			}
			fmt.Println(ux.Success(fmt.Sprintf("Plan %q updated.", plan.Name), env.noColor))
			return nil
		})
	},
}

var plansDeleteCmd = &cobra.Command{
	Use:   "delete PLAN_ID",
	Short: "Delete a membership plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd.Context(), adminReq, func(ctx context.Context, _ *session.Session) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				confirmed, err := tui.Confirm(fmt.Sprintf("Delete plan %s?", args[0]), false)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			if err := env.client.DeletePlan(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(ux.Success("Plan deleted.", env.noColor))
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{plansAddCmd, plansEditCmd} {
		c.Flags().String("name", "", "plan name")
		c.Flags().String("description", "", "plan description")
		c.Flags().Float64("price", 0, "monthly price")
		c.Flags().Int("months", 1, "duration in months")
		c.Flags().StringArray("benefit", nil, "plan benefit (repeatable)")
	}
	plansDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	plansCmd.AddCommand(plansListCmd)
	plansCmd.AddCommand(plansAddCmd)
	plansCmd.AddCommand(plansEditCmd)
	plansCmd.AddCommand(plansDeleteCmd)
	rootCmd.AddCommand(plansCmd)
}
