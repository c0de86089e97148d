package cli

import (
	"context"
	"fmt"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/cli/formatter"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/timeline"
	"github.com/spf13/cobra"
)

// planData is everything one timeline render needs, loaded in one pass.
type planData struct {
	Plan   *domain.Plan
	Phases []*domain.Phase
	Days   []*domain.CalendarDay
	Refs   []*domain.Reference
}

func loadPlanData(ctx context.Context, app *App, planInput, country string) (*planData, error) {
	planID, err := resolvePlanID(ctx, app, planInput)
	if err != nil {
		return nil, err
	}
	plan, err := app.Plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	phases, err := app.Phases.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	days, err := app.Calendars.DaysForCountry(ctx, countryOrDefault(app, country))
	if err != nil {
		return nil, err
	}
	refs, err := app.References.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	return &planData{Plan: plan, Phases: phases, Days: days, Refs: refs}, nil
}

// grid builds the layout from a fresh reference index.
func (d *planData) grid() timeline.Grid {
	return timeline.Layout(d.Plan, d.Phases, d.Days, timeline.NewIndex(d.Refs))
}

func newTimelineCmd(app *App) *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "timeline <plan>",
		Short: "Render a plan's timeline grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadPlanData(context.Background(), app, args[0], country)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatTimeline(data.Plan, data.grid()))
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Calendar country overlay (defaults to config)")

	return cmd
}
