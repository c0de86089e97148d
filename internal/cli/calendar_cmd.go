package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/cli/formatter"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Manage per-country holiday calendars",
	}

	cmd.AddCommand(
		newCalendarDaysCmd(app),
		newCalendarAddDayCmd(app),
		newCalendarRemoveDayCmd(app),
	)

	return cmd
}

func newCalendarDaysCmd(app *App) *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "days",
		Short: "List a country's holidays and special days",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := countryOrDefault(app, country)
			days, err := app.Calendars.DaysForCountry(context.Background(), c)
			if err != nil {
				return err
			}
			if len(days) == 0 {
				fmt.Printf("No calendar days for %s.\n", c)
				return nil
			}
			fmt.Println(formatter.FormatCalendarDays(c, days))
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Country code (defaults to config)")

	return cmd
}

func newCalendarAddDayCmd(app *App) *cobra.Command {
	var country, name, dayType string
	var date time.Time
	var recurring bool

	cmd := &cobra.Command{
		Use:   "add-day",
		Short: "Add a holiday or special day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := &domain.CalendarDay{
				Name:      name,
				Date:      date,
				Type:      domain.DayType(dayType),
				Recurring: recurring,
			}
			c := countryOrDefault(app, country)
			if err := app.Calendars.AddDay(context.Background(), c, day); err != nil {
				return err
			}
			fmt.Printf("Added %s (%s) to %s\n", day.Name, day.Type, c)
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Country code (defaults to config)")
	cmd.Flags().StringVar(&name, "name", "", "Day name")
	cmd.Flags().Var(newDateValue(&date), "date", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dayType, "type", "holiday", "Day type (holiday|special)")
	cmd.Flags().BoolVar(&recurring, "recurring", false, "Repeats every year")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newCalendarRemoveDayCmd(app *App) *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "remove-day <name>",
		Short: "Remove a calendar day by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c := countryOrDefault(app, country)
			days, err := app.Calendars.DaysForCountry(ctx, c)
			if err != nil {
				return err
			}
			for _, d := range days {
				if d.Name == args[0] {
					if err := app.Calendars.DeleteDay(ctx, d.ID); err != nil {
						return err
					}
					fmt.Printf("Removed %s from %s\n", d.Name, c)
					return nil
				}
			}
			return fmt.Errorf("calendar day not found: %q", args[0])
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Country code (defaults to config)")

	return cmd
}

func countryOrDefault(app *App, country string) string {
	if country != "" {
		return country
	}
	return app.DefaultCountry
}
