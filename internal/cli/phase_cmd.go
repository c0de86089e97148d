package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/cli/formatter"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/spf13/cobra"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage a plan's phases",
	}

	cmd.AddCommand(
		newPhaseAddCmd(app),
		newPhaseListCmd(app),
		newPhaseMoveCmd(app, "move-up", "Move a phase up one row", app.movePhaseUp),
		newPhaseMoveCmd(app, "move-down", "Move a phase down one row", app.movePhaseDown),
		newPhaseDuplicateCmd(app),
		newPhaseRescheduleCmd(app),
		newPhaseRemoveCmd(app),
	)

	return cmd
}

func (app *App) movePhaseUp(ctx context.Context, phaseID string) error {
	return app.Phases.MoveUp(ctx, phaseID)
}

func (app *App) movePhaseDown(ctx context.Context, phaseID string) error {
	return app.Phases.MoveDown(ctx, phaseID)
}

func newPhaseAddCmd(app *App) *cobra.Command {
	var plan, name, color string
	var start, end time.Time

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a phase to a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}

			p := &domain.Phase{
				PlanID:    planID,
				Name:      name,
				Color:     color,
				StartDate: start,
				EndDate:   end,
			}
			if err := app.Phases.Create(ctx, p); err != nil {
				return err
			}

			fmt.Printf("Added phase %s at position %d\n", p.Name, p.Position)
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID or name")
	cmd.Flags().StringVar(&name, "name", "", "Phase name")
	cmd.Flags().StringVar(&color, "color", "#83a598", "Bar color (hex)")
	cmd.Flags().Var(newDateValue(&start), "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&end), "end", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newPhaseListCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a plan's phases in timeline order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			phases, err := app.Phases.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			if len(phases) == 0 {
				fmt.Println("No phases found.")
				return nil
			}
			fmt.Println(formatter.FormatPhaseList(phases))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID or name")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newPhaseMoveCmd(app *App, use, short string, move func(context.Context, string) error) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   use + " <phase>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			phaseID, err := resolvePhaseID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			return move(ctx, phaseID)
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID or name")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newPhaseDuplicateCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "duplicate <phase>",
		Short: "Copy a phase onto the next row (no history carried)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			phaseID, err := resolvePhaseID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			dup, err := app.Phases.Duplicate(ctx, phaseID)
			if err != nil {
				return err
			}
			fmt.Printf("Duplicated as %s at position %d\n", dup.Name, dup.Position)
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID or name")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newPhaseRescheduleCmd(app *App) *cobra.Command {
	var plan, typeName, owner string
	var start, end time.Time

	cmd := &cobra.Command{
		Use:   "reschedule <phase>",
		Short: "Move a phase's dates and record the change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			phaseID, err := resolvePhaseID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}

			rt, err := app.Reschedules.GetTypeByName(ctx, typeName)
			if err != nil {
				return fmt.Errorf("reschedule type %q: %w", typeName, err)
			}

			var ownerID *string
			if owner != "" {
				ownerID = &owner
			}

			record, err := app.Phases.Reschedule(ctx, phaseID, start, end, rt.ID, ownerID)
			if err != nil {
				return err
			}
			if record == nil {
				fmt.Println("Dates unchanged; nothing recorded.")
				return nil
			}
			fmt.Printf("Rescheduled %s → %s (was %s → %s)\n",
				record.NewStartDate.Format("2006-01-02"), record.NewEndDate.Format("2006-01-02"),
				record.OriginalStartDate.Format("2006-01-02"), record.OriginalEndDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID or name")
	cmd.Flags().Var(newDateValue(&start), "start", "New start date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&end), "end", "New end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&typeName, "type", "", "Reschedule type name")
	cmd.Flags().StringVar(&owner, "owner", "", "Acting owner id (optional)")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "remove <phase>",
		Short: "Delete a phase and its reschedule history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			phaseID, err := resolvePhaseID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			if err := app.Phases.Delete(ctx, phaseID); err != nil {
				return err
			}
			fmt.Printf("Removed phase %s\n", formatter.TruncID(phaseID))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID or name")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}
