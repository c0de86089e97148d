package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/cli/formatter"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/spf13/cobra"
)

func newRefCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ref",
		Short: "Attach notes, documents, and links to timeline cells",
	}

	cmd.AddCommand(
		newRefAddCmd(app),
		newRefListCmd(app),
		newRefRemoveCmd(app),
		newRefMilestoneCmd(app),
	)

	return cmd
}

func newRefAddCmd(app *App) *cobra.Command {
	var plan, phase, refType, url, title, description string
	var date time.Time
	var files []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a reference to a phase+date cell",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			phaseID, err := resolvePhaseID(ctx, app, planID, phase)
			if err != nil {
				return err
			}

			r := &domain.Reference{
				PlanID:      planID,
				PhaseID:     phaseID,
				Type:        domain.ReferenceType(refType),
				Date:        &date,
				URL:         url,
				Files:       files,
				Title:       title,
				Description: description,
			}
			if err := app.References.Create(ctx, r); err != nil {
				return err
			}
			fmt.Printf("Added %s reference %s\n", r.Type, formatter.TruncID(r.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID or name")
	cmd.Flags().StringVar(&phase, "phase", "", "Phase ID or name")
	cmd.Flags().StringVar(&refType, "type", "note", "Reference type (note|document|link)")
	cmd.Flags().Var(newDateValue(&date), "date", "Cell date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&url, "url", "", "URL (links, or documents hosted elsewhere)")
	cmd.Flags().StringSliceVar(&files, "file", nil, "Attached file name (repeatable)")
	cmd.Flags().StringVar(&title, "title", "", "Short title")
	cmd.Flags().StringVar(&description, "description", "", "Longer description")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("phase")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newRefListCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a plan's references",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			refs, err := app.References.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			if len(refs) == 0 {
				fmt.Println("No references found.")
				return nil
			}
			fmt.Println(formatter.FormatReferenceList(refs))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID or name")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newRefRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <ref-id>",
		Short: "Delete a reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.References.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed reference %s\n", formatter.TruncID(args[0]))
			return nil
		},
	}
}

func newRefMilestoneCmd(app *App) *cobra.Command {
	var plan, phase string
	var date time.Time

	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Toggle the milestone marker on a phase+date cell",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			phaseID, err := resolvePhaseID(ctx, app, planID, phase)
			if err != nil {
				return err
			}

			on, err := app.References.ToggleMilestone(ctx, planID, phaseID, date)
			if err != nil {
				return err
			}
			if on {
				fmt.Printf("Milestone set on %s\n", date.Format("2006-01-02"))
			} else {
				fmt.Printf("Milestone cleared from %s\n", date.Format("2006-01-02"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID or name")
	cmd.Flags().StringVar(&phase, "phase", "", "Phase ID or name")
	cmd.Flags().Var(newDateValue(&date), "date", "Cell date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("phase")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}
