package timeline

import (
	"sort"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
)

// Cell is one date column of one phase row.
type Cell struct {
	Date       time.Time
	InRange    bool   // the phase's bar covers this date
	Color      string // phase color, set only when InRange
	Holiday    bool
	SpecialDay bool
	DayName    string // calendar day name when Holiday or SpecialDay
	Milestone  bool
	Comments   int
	Files      int
	Links      int
	// HasMultipleItems switches the indicator layout from a row to a
	// stacked column. True iff the total annotation count exceeds one.
	HasMultipleItems bool
}

// Row is one phase with its cells in column order.
type Row struct {
	Phase *domain.Phase
	Cells []Cell
}

// Grid is the renderable timeline: rows ordered by phase ordinal, columns
// consecutive dates spanning the union of the plan window and every phase
// range.
type Grid struct {
	Start time.Time
	End   time.Time
	Dates []time.Time
	Rows  []Row
}

// Layout composes a plan's phases, calendar days, and reference index into
// a Grid. The column range is the union of the plan's own window with all
// phase ranges — a phase extending past the plan's end widens the grid,
// never gets clipped. With no phases the grid has zero rows and columns
// derived solely from the plan window.
func Layout(plan *domain.Plan, phases []*domain.Phase, days []*domain.CalendarDay, ix *Index) Grid {
	start, end := plan.StartDate, plan.EndDate
	for _, p := range phases {
		if p.StartDate.Before(start) {
			start = p.StartDate
		}
		if p.EndDate.After(end) {
			end = p.EndDate
		}
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	ordered := make([]*domain.Phase, len(phases))
	copy(ordered, phases)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	dayLookup := buildDayLookup(days)

	grid := Grid{Start: start, End: end, Dates: dates}
	for _, phase := range ordered {
		row := Row{Phase: phase, Cells: make([]Cell, 0, len(dates))}
		rng := phase.Range()
		for _, d := range dates {
			cell := Cell{Date: d}
			if rng.Contains(d) {
				cell.InRange = true
				cell.Color = phase.Color
			}
			if day := dayLookup.find(d); day != nil {
				cell.Holiday = day.Type == domain.DayHoliday
				cell.SpecialDay = day.Type == domain.DaySpecial
				cell.DayName = day.Name
			}
			refs := ix.CellFor(phase.ID, d)
			cell.Comments = len(refs.Comments)
			cell.Files = len(refs.Files)
			cell.Links = len(refs.Links)
			cell.HasMultipleItems = refs.HasMultipleItems()
			cell.Milestone = ix.IsMilestone(phase.ID, d)
			row.Cells = append(row.Cells, cell)
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

// dayLookup resolves calendar days by date, with recurring days matching
// on month and day regardless of year.
type dayLookup struct {
	exact     map[string]*domain.CalendarDay
	recurring map[string]*domain.CalendarDay // keyed "01-02" (month-day)
}

func buildDayLookup(days []*domain.CalendarDay) dayLookup {
	l := dayLookup{
		exact:     make(map[string]*domain.CalendarDay),
		recurring: make(map[string]*domain.CalendarDay),
	}
	for _, d := range days {
		if d.Recurring {
			l.recurring[d.Date.Format("01-02")] = d
		} else {
			l.exact[d.Date.Format("2006-01-02")] = d
		}
	}
	return l
}

func (l dayLookup) find(d time.Time) *domain.CalendarDay {
	if day, ok := l.exact[d.Format("2006-01-02")]; ok {
		return day
	}
	if day, ok := l.recurring[d.Format("01-02")]; ok {
		return day
	}
	return nil
}
