package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans       service.PlanService
	Phases      service.PhaseService
	Reschedules service.RescheduleService
	Calendars   service.CalendarService
	References  service.ReferenceService

	// DefaultCountry selects the calendar overlaid on timelines when no
	// --country flag is given.
	DefaultCountry string

	// IsInteractive reports whether stdin is a terminal; the board view
	// refuses to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "relplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "relplan",
		Short: "Release plan timelines with reschedule tracking",
	}

	root.AddCommand(
		newPlanCmd(app),
		newPhaseCmd(app),
		newRescheduleCmd(app),
		newCalendarCmd(app),
		newRefCmd(app),
		newTimelineCmd(app),
		newBoardCmd(app),
	)

	return root
}

func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("plan ID is required")
	}

	plans, err := app.Plans.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range plans {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range plans {
		if strings.HasPrefix(p.ID, input) || strings.EqualFold(p.Name, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("plan not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("plan %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolvePhaseID accepts a full UUID, a UUID prefix, or a phase name
// scoped to a plan.
func resolvePhaseID(ctx context.Context, app *App, planID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("phase ID is required")
	}

	phases, err := app.Phases.ListByPlan(ctx, planID)
	if err != nil {
		return "", err
	}

	for _, p := range phases {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range phases {
		if strings.HasPrefix(p.ID, input) || strings.EqualFold(p.Name, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("phase not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("phase %q is ambiguous (%d matches)", input, len(matches))
	}
}
