package cli

import (
	"context"
	"fmt"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/cli/formatter"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/spf13/cobra"
)

func newRescheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reschedule",
		Short: "Reschedule history and type vocabulary",
	}

	cmd.AddCommand(
		newRescheduleHistoryCmd(app),
		newRescheduleTypesCmd(app),
	)

	return cmd
}

func newRescheduleHistoryCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "history <phase>",
		Short: "Show a phase's reschedule history, most recent first",
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
			records, err := app.Reschedules.ListByPhase(ctx, phaseID)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No reschedules recorded.")
				return nil
			}

			types, err := app.Reschedules.ListTypes(ctx)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(types))
			for _, t := range types {
				names[t.ID] = t.Name
			}

			fmt.Println(formatter.FormatRescheduleHistory(records, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID or name")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newRescheduleTypesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type",
		Short: "Manage the reschedule type vocabulary",
	}

	cmd.AddCommand(
		newTypeAddCmd(app),
		newTypeListCmd(app),
		newTypeRenameCmd(app),
		newTypeRemoveCmd(app),
	)

	return cmd
}

func newTypeAddCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a reschedule type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.RescheduleType{Name: args[0], Description: description}
			if err := app.Reschedules.CreateType(context.Background(), t); err != nil {
				return err
			}
			fmt.Printf("Added type %s\n", t.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "What this type covers")

	return cmd
}

func newTypeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reschedule types",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := app.Reschedules.ListTypes(context.Background())
			if err != nil {
				return err
			}
			if len(types) == 0 {
				fmt.Println("No types defined.")
				return nil
			}
			headers := []string{"ID", "NAME", "DESCRIPTION"}
			rows := make([][]string, 0, len(types))
			for _, t := range types {
				rows = append(rows, []string{formatter.TruncID(t.ID), formatter.Bold(t.Name), t.Description})
			}
			fmt.Println(formatter.RenderBox("Reschedule Types", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}

func newTypeRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <old-name> <new-name>",
		Short: "Rename a type (existing records keep their meaning)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := app.Reschedules.GetTypeByName(ctx, args[0])
			if err != nil {
				return fmt.Errorf("reschedule type %q: %w", args[0], err)
			}
			t.Name = args[1]
			if err := app.Reschedules.UpdateType(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Renamed type to %s\n", t.Name)
			return nil
		},
	}
	return cmd
}

func newTypeRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete an unused reschedule type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := app.Reschedules.GetTypeByName(ctx, args[0])
			if err != nil {
				return fmt.Errorf("reschedule type %q: %w", args[0], err)
			}
			if err := app.Reschedules.DeleteType(ctx, t.ID); err != nil {
				return err
			}
			fmt.Printf("Removed type %s\n", t.Name)
			return nil
		},
	}
}
