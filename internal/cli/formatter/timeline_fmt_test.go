package formatter

import (
	"testing"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/testutil"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/timeline"
	"github.com/stretchr/testify/assert"
)

func buildGrid(t *testing.T, refs []*domain.Reference, days []*domain.CalendarDay) (*domain.Plan, timeline.Grid) {
	t.Helper()
	plan := testutil.NewTestPlan("Launch",
		testutil.WithPlanWindow(testutil.Date(2025, 1, 1), testutil.Date(2025, 1, 10)))
	phase := testutil.NewTestPhase(plan.ID, "Build",
		testutil.WithPhaseRange(testutil.Date(2025, 1, 2), testutil.Date(2025, 1, 6)))
	for _, r := range refs {
		r.PlanID = plan.ID
		r.PhaseID = phase.ID
	}
	ix := timeline.NewIndex(refs)
	return plan, timeline.Layout(plan, []*domain.Phase{phase}, days, ix)
}

func TestFormatTimeline_ShowsPhaseAndHeaders(t *testing.T) {
	plan, grid := buildGrid(t, nil, nil)
	out := FormatTimeline(plan, grid)

	assert.Contains(t, out, "LAUNCH")
	assert.Contains(t, out, "Build")
	assert.Contains(t, out, "2025-01-01 → 2025-01-10")
	assert.Contains(t, out, "Jan")
}

func TestFormatTimeline_MilestoneMarker(t *testing.T) {
	ref := testutil.NewTestReference("", "", domain.ReferenceNote,
		testutil.WithRefDate(testutil.Date(2025, 1, 4)), testutil.WithMilestone())
	plan, grid := buildGrid(t, []*domain.Reference{ref}, nil)

	out := FormatTimeline(plan, grid)
	assert.Contains(t, out, "◆")
}

func TestFormatTimeline_StackedBadge(t *testing.T) {
	note := testutil.NewTestReference("", "", domain.ReferenceNote,
		testutil.WithRefDate(testutil.Date(2025, 1, 3)))
	link := testutil.NewTestReference("", "", domain.ReferenceLink,
		testutil.WithRefDate(testutil.Date(2025, 1, 3)), testutil.WithURL("https://example.com"))
	plan, grid := buildGrid(t, []*domain.Reference{note, link}, nil)

	out := FormatTimeline(plan, grid)
	assert.Contains(t, out, "≡2", "two annotations on one cell should render a stacked badge")
}

func TestFormatTimeline_SingleAnnotationGlyph(t *testing.T) {
	note := testutil.NewTestReference("", "", domain.ReferenceNote,
		testutil.WithRefDate(testutil.Date(2025, 1, 3)))
	plan, grid := buildGrid(t, []*domain.Reference{note}, nil)

	out := FormatTimeline(plan, grid)
	assert.Contains(t, out, "•")
	assert.NotContains(t, out, "≡")
}

func TestFormatTimeline_HolidayShading(t *testing.T) {
	day := testutil.NewTestCalendarDay("cal", "New Year", testutil.Date(2025, 1, 1), domain.DayHoliday)
	plan, grid := buildGrid(t, nil, []*domain.CalendarDay{day})

	out := FormatTimeline(plan, grid)
	assert.Contains(t, out, "░")
}

func TestRenderCell_Priorities(t *testing.T) {
	tests := []struct {
		name string
		cell timeline.Cell
		want string
	}{
		{"milestone beats bar", timeline.Cell{Milestone: true, InRange: true, Color: "#fb4934"}, "◆"},
		{"badge on bar", timeline.Cell{InRange: true, Comments: 1}, "•"},
		{"stacked count", timeline.Cell{InRange: true, Comments: 1, Links: 2, HasMultipleItems: true}, "≡3"},
		{"file glyph", timeline.Cell{Files: 1}, "▪"},
		{"link glyph", timeline.Cell{Links: 1}, "↗"},
		{"holiday shade", timeline.Cell{Holiday: true}, "░"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, renderCell(tt.cell), tt.want)
		})
	}
}
