package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/cli/formatter"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage release plans",
	}

	cmd.AddCommand(
		newPlanAddCmd(app),
		newPlanListCmd(app),
		newPlanUpdateCmd(app),
		newPlanRemoveCmd(app),
	)

	return cmd
}

func newPlanAddCmd(app *App) *cobra.Command {
	var name, owner string
	var start, end time.Time

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new release plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Plan{
				Name:      name,
				Owner:     owner,
				Status:    domain.PlanPlanned,
				StartDate: start,
				EndDate:   end,
			}
			if err := app.Plans.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Printf("Created plan %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().StringVar(&owner, "owner", "", "Plan owner")
	cmd.Flags().Var(newDateValue(&start), "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&end), "end", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List release plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.List(context.Background())
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Println("No plans found.")
				return nil
			}
			fmt.Println(formatter.FormatPlanList(plans))
			return nil
		},
	}
}

func newPlanUpdateCmd(app *App) *cobra.Command {
	var name, owner, status string
	var start, end time.Time

	cmd := &cobra.Command{
		Use:   "update <plan>",
		Short: "Update a plan's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.GetByID(ctx, planID)
			if err != nil {
				return err
			}

			if name != "" {
				p.Name = name
			}
			if owner != "" {
				p.Owner = owner
			}
			if status != "" {
				p.Status = domain.PlanStatus(status)
			}
			if cmd.Flags().Changed("start") {
				p.StartDate = start
			}
			if cmd.Flags().Changed("end") {
				p.EndDate = end
			}

			if err := app.Plans.Update(ctx, p); err != nil {
				return err
			}
			fmt.Printf("Updated plan %s\n", p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&owner, "owner", "", "New owner")
	cmd.Flags().StringVar(&status, "status", "", "New status (planned|in_progress|done|paused)")
	cmd.Flags().Var(newDateValue(&start), "start", "New start date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&end), "end", "New end date (YYYY-MM-DD)")

	return cmd
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <plan>",
		Short: "Delete a plan and everything it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Delete(ctx, planID); err != nil {
				return err
			}
			fmt.Printf("Removed plan %s (phases, history, and references included)\n", formatter.TruncID(planID))
			return nil
		},
	}
}
