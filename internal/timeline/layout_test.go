package timeline

import (
	"testing"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan(start, end time.Time) *domain.Plan {
	return &domain.Plan{ID: "plan1", Name: "Release", StartDate: start, EndDate: end}
}

func testPhase(id string, pos int, start, end time.Time) *domain.Phase {
	return &domain.Phase{ID: id, PlanID: "plan1", Name: id, Color: "#fabd2f", Position: pos, StartDate: start, EndDate: end}
}

func TestLayout_EmptyPhaseList(t *testing.T) {
	plan := testPlan(date(2025, 1, 1), date(2025, 1, 5))
	grid := Layout(plan, nil, nil, NewIndex(nil))

	assert.Empty(t, grid.Rows)
	require.Len(t, grid.Dates, 5, "columns derive solely from the plan window")
	assert.Equal(t, date(2025, 1, 1), grid.Start)
	assert.Equal(t, date(2025, 1, 5), grid.End)
}

func TestLayout_ColumnRangeIsUnion(t *testing.T) {
	plan := testPlan(date(2025, 1, 10), date(2025, 1, 20))
	phases := []*domain.Phase{
		testPhase("early", 1, date(2025, 1, 5), date(2025, 1, 12)),
		testPhase("late", 2, date(2025, 1, 15), date(2025, 1, 25)),
	}
	grid := Layout(plan, phases, nil, NewIndex(nil))

	assert.Equal(t, date(2025, 1, 5), grid.Start, "earliest phase start widens the grid")
	assert.Equal(t, date(2025, 1, 25), grid.End, "latest phase end widens the grid; never clipped")
	assert.Len(t, grid.Dates, 21)
}

func TestLayout_RowsOrderedByPosition(t *testing.T) {
	plan := testPlan(date(2025, 1, 1), date(2025, 1, 10))
	phases := []*domain.Phase{
		testPhase("third", 3, date(2025, 1, 1), date(2025, 1, 2)),
		testPhase("first", 1, date(2025, 1, 1), date(2025, 1, 2)),
		testPhase("second", 2, date(2025, 1, 1), date(2025, 1, 2)),
	}
	grid := Layout(plan, phases, nil, NewIndex(nil))

	require.Len(t, grid.Rows, 3)
	assert.Equal(t, "first", grid.Rows[0].Phase.ID)
	assert.Equal(t, "second", grid.Rows[1].Phase.ID)
	assert.Equal(t, "third", grid.Rows[2].Phase.ID)
}

func TestLayout_CellRangeAndColor(t *testing.T) {
	plan := testPlan(date(2025, 1, 1), date(2025, 1, 5))
	phase := testPhase("dev", 1, date(2025, 1, 2), date(2025, 1, 4))
	grid := Layout(plan, []*domain.Phase{phase}, nil, NewIndex(nil))

	row := grid.Rows[0]
	require.Len(t, row.Cells, 5)

	assert.False(t, row.Cells[0].InRange)
	assert.True(t, row.Cells[1].InRange, "range start is inclusive")
	assert.True(t, row.Cells[3].InRange, "range end is inclusive")
	assert.False(t, row.Cells[4].InRange)
	assert.Equal(t, "#fabd2f", row.Cells[1].Color)
	assert.Empty(t, row.Cells[0].Color, "out-of-range cells carry no color")
}

func TestLayout_HolidayAndSpecialFlags(t *testing.T) {
	plan := testPlan(date(2025, 1, 1), date(2025, 1, 3))
	phase := testPhase("dev", 1, date(2025, 1, 1), date(2025, 1, 3))
	days := []*domain.CalendarDay{
		{ID: "d1", Name: "New Year", Date: date(2025, 1, 1), Type: domain.DayHoliday},
		{ID: "d2", Name: "Company Day", Date: date(2025, 1, 2), Type: domain.DaySpecial},
	}
	grid := Layout(plan, []*domain.Phase{phase}, days, NewIndex(nil))

	cells := grid.Rows[0].Cells
	assert.True(t, cells[0].Holiday)
	assert.Equal(t, "New Year", cells[0].DayName)
	assert.True(t, cells[1].SpecialDay)
	assert.False(t, cells[1].Holiday)
	assert.False(t, cells[2].Holiday)
	// Holidays annotate rendering only; the phase bar still covers them.
	assert.True(t, cells[0].InRange)
}

func TestLayout_RecurringDayMatchesAnyYear(t *testing.T) {
	plan := testPlan(date(2025, 12, 24), date(2025, 12, 26))
	phase := testPhase("freeze", 1, date(2025, 12, 24), date(2025, 12, 26))
	days := []*domain.CalendarDay{
		{ID: "d1", Name: "Christmas", Date: date(2020, 12, 25), Type: domain.DayHoliday, Recurring: true},
	}
	grid := Layout(plan, []*domain.Phase{phase}, days, NewIndex(nil))

	cells := grid.Rows[0].Cells
	assert.False(t, cells[0].Holiday)
	assert.True(t, cells[1].Holiday, "recurring day matches by month and day")
	assert.Equal(t, "Christmas", cells[1].DayName)
}

func TestLayout_ReferenceCountsAndMilestone(t *testing.T) {
	plan := testPlan(date(2025, 2, 1), date(2025, 2, 3))
	phase := testPhase("qa", 1, date(2025, 2, 1), date(2025, 2, 3))
	d := date(2025, 2, 2)
	refs := []*domain.Reference{
		{ID: "c1", PhaseID: "qa", Type: domain.ReferenceNote, Date: &d},
		{ID: "f1", PhaseID: "qa", Type: domain.ReferenceDocument, Files: []string{"spec.pdf"}, Date: &d},
		{ID: "l1", PhaseID: "qa", Type: domain.ReferenceLink, URL: "http://x", Date: &d},
		{ID: "m1", PhaseID: "qa", Type: domain.ReferenceNote, Date: &d, Milestone: true},
	}
	grid := Layout(plan, []*domain.Phase{phase}, nil, NewIndex(refs))

	cell := grid.Rows[0].Cells[1]
	assert.Equal(t, 1, cell.Comments)
	assert.Equal(t, 1, cell.Files)
	assert.Equal(t, 1, cell.Links)
	assert.True(t, cell.HasMultipleItems)
	assert.True(t, cell.Milestone)

	empty := grid.Rows[0].Cells[0]
	assert.Zero(t, empty.Comments+empty.Files+empty.Links)
	assert.False(t, empty.HasMultipleItems)
	assert.False(t, empty.Milestone)
}

func TestLayout_SingleAnnotationIsNotMultiple(t *testing.T) {
	plan := testPlan(date(2025, 2, 1), date(2025, 2, 1))
	phase := testPhase("qa", 1, date(2025, 2, 1), date(2025, 2, 1))
	d := date(2025, 2, 1)
	refs := []*domain.Reference{
		{ID: "c1", PhaseID: "qa", Type: domain.ReferenceNote, Date: &d},
	}
	grid := Layout(plan, []*domain.Phase{phase}, nil, NewIndex(refs))

	cell := grid.Rows[0].Cells[0]
	assert.Equal(t, 1, cell.Comments)
	assert.False(t, cell.HasMultipleItems, "exactly one item renders in a row")
}
