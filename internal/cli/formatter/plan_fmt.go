package formatter

import (
	"fmt"
	"strings"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
)

const dateLayout = "2006-01-02"

// FormatPlanList renders the plan overview table.
func FormatPlanList(plans []*domain.Plan) string {
	headers := []string{"ID", "NAME", "OWNER", "STATUS", "START", "END"}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		owner := p.Owner
		if owner == "" {
			owner = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			owner,
			StatusPill(p.Status),
			p.StartDate.Format(dateLayout),
			p.EndDate.Format(dateLayout),
		})
	}
	return RenderBox("Plans", RenderTable(headers, rows))
}

// FormatPhaseList renders a plan's phases in ordinal order.
func FormatPhaseList(phases []*domain.Phase) string {
	headers := []string{"#", "ID", "NAME", "START", "END", "DAYS"}
	rows := make([][]string, 0, len(phases))
	for _, p := range phases {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.Position),
			TruncID(p.ID),
			Bold(p.Name),
			p.StartDate.Format(dateLayout),
			p.EndDate.Format(dateLayout),
			fmt.Sprintf("%d", p.Range().Days()),
		})
	}
	return RenderBox("Phases", RenderTable(headers, rows))
}

// FormatRescheduleHistory renders a phase's history, most recent first.
// Type names are resolved through the provided id-to-name map; a missing
// entry falls back to the raw id.
func FormatRescheduleHistory(records []*domain.Reschedule, typeNames map[string]string) string {
	headers := []string{"WHEN", "FROM", "TO", "TYPE"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		typeName := typeNames[r.RescheduleTypeID]
		if typeName == "" {
			typeName = TruncID(r.RescheduleTypeID)
		}
		rows = append(rows, []string{
			r.RescheduledAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%s → %s", r.OriginalStartDate.Format(dateLayout), r.OriginalEndDate.Format(dateLayout)),
			fmt.Sprintf("%s → %s", r.NewStartDate.Format(dateLayout), r.NewEndDate.Format(dateLayout)),
			StylePurple.Render(typeName),
		})
	}
	return RenderBox("Reschedule History", RenderTable(headers, rows))
}

// FormatCalendarDays renders a country's holiday and special days.
func FormatCalendarDays(countryID string, days []*domain.CalendarDay) string {
	headers := []string{"DATE", "NAME", "TYPE", "RECURS"}
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		typeStr := StyleRed.Render("holiday")
		if d.Type == domain.DaySpecial {
			typeStr = StyleYellow.Render("special")
		}
		recurs := Dim("no")
		if d.Recurring {
			recurs = "yearly"
		}
		rows = append(rows, []string{
			d.Date.Format(dateLayout),
			Bold(d.Name),
			typeStr,
			recurs,
		})
	}
	return RenderBox(fmt.Sprintf("Calendar %s", strings.ToUpper(countryID)), RenderTable(headers, rows))
}

// FormatReferenceList renders a plan's references.
func FormatReferenceList(refs []*domain.Reference) string {
	headers := []string{"ID", "TYPE", "ANCHOR", "DETAIL"}
	rows := make([][]string, 0, len(refs))
	for _, r := range refs {
		anchor := Dim("--")
		if r.Date != nil {
			anchor = r.Date.Format(dateLayout)
		} else if r.CalendarDayID != nil {
			anchor = "day:" + TruncID(*r.CalendarDayID)
		}

		detail := r.Title
		switch {
		case r.Milestone:
			detail = StylePurple.Render("◆ milestone")
		case r.URL != "":
			detail = StyleBlue.Render(r.URL)
		case len(r.Files) > 0:
			detail = fmt.Sprintf("%d file(s)", len(r.Files))
		}

		rows = append(rows, []string{
			TruncID(r.ID),
			string(r.Type),
			anchor,
			detail,
		})
	}
	return RenderBox("References", RenderTable(headers, rows))
}
