package formatter

import (
	"fmt"
	"strings"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

// cellWidth is the rendered width of one date column.
const cellWidth = 2

// FormatTimeline renders the Gantt-style grid: a month header, a day-of-month
// header, and one bar row per phase. Cells stack in priority order:
// milestone marker, annotation badge, phase bar, holiday shading, blank.
func FormatTimeline(plan *domain.Plan, grid timeline.Grid) string {
	var b strings.Builder

	b.WriteString(Header(plan.Name))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s → %s", grid.Start.Format(dateLayout), grid.End.Format(dateLayout))))
	b.WriteString("\n\n")

	nameWidth := 0
	for _, row := range grid.Rows {
		if w := len(row.Phase.Name); w > nameWidth {
			nameWidth = w
		}
	}

	gutter := strings.Repeat(" ", nameWidth+2)
	b.WriteString(gutter + monthHeader(grid) + "\n")
	b.WriteString(gutter + dayHeader(grid) + "\n")

	for _, row := range grid.Rows {
		b.WriteString(StyleFg.Render(padRight(row.Phase.Name, nameWidth)) + "  ")
		for _, cell := range row.Cells {
			b.WriteString(renderCell(cell))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + legend())
	return b.String()
}

// FormatBoardGrid renders the same grid for the interactive board: a
// selection marker on the active row and no trailing legend (the board
// draws its own footer).
func FormatBoardGrid(grid timeline.Grid, selected int) string {
	var b strings.Builder

	nameWidth := 0
	for _, row := range grid.Rows {
		if w := len(row.Phase.Name); w > nameWidth {
			nameWidth = w
		}
	}

	gutter := strings.Repeat(" ", nameWidth+4)
	b.WriteString(gutter + monthHeader(grid) + "\n")
	b.WriteString(gutter + dayHeader(grid) + "\n")

	for i, row := range grid.Rows {
		name := padRight(row.Phase.Name, nameWidth)
		if i == selected {
			b.WriteString(StyleHeader.Render("▸ "+name) + "  ")
		} else {
			b.WriteString("  " + StyleFg.Render(name) + "  ")
		}
		for _, cell := range row.Cells {
			b.WriteString(renderCell(cell))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func monthHeader(grid timeline.Grid) string {
	var b strings.Builder
	written := ""
	for _, d := range grid.Dates {
		label := d.Format("Jan")
		if label != written {
			written = label
			b.WriteString(StyleHeader.Render(padRight(label, cellWidth)))
		} else {
			b.WriteString(strings.Repeat(" ", cellWidth))
		}
	}
	return b.String()
}

func dayHeader(grid timeline.Grid) string {
	var b strings.Builder
	for _, d := range grid.Dates {
		b.WriteString(Dim(padRight(fmt.Sprintf("%d", d.Day()), cellWidth)))
	}
	return b.String()
}

// renderCell picks one visual per cell. A milestone marker wins over
// everything; annotation badges sit on top of the bar; outside the bar,
// holidays and special days shade the column.
func renderCell(cell timeline.Cell) string {
	switch {
	case cell.Milestone:
		return StylePurple.Render(padRight("◆", cellWidth))
	case cell.InRange && total(cell) > 0:
		return PhaseBarStyle(cell.Color).Render(padRight(badge(cell), cellWidth))
	case cell.InRange:
		return PhaseBarStyle(cell.Color).Render(strings.Repeat(" ", cellWidth))
	case total(cell) > 0:
		return StyleFg.Render(padRight(badge(cell), cellWidth))
	case cell.Holiday:
		return StyleRed.Render(padRight("░", cellWidth))
	case cell.SpecialDay:
		return StyleYellow.Render(padRight("░", cellWidth))
	default:
		return strings.Repeat(" ", cellWidth)
	}
}

// badge compresses a cell's annotations into at most cellWidth characters.
// A single annotation shows its class glyph; several show a stacked-count
// badge instead of a row of glyphs.
func badge(cell timeline.Cell) string {
	if cell.HasMultipleItems {
		return fmt.Sprintf("≡%d", total(cell))
	}
	switch {
	case cell.Comments > 0:
		return "•"
	case cell.Files > 0:
		return "▪"
	case cell.Links > 0:
		return "↗"
	default:
		return ""
	}
}

func total(cell timeline.Cell) int {
	return cell.Comments + cell.Files + cell.Links
}

func legend() string {
	parts := []string{
		StylePurple.Render("◆") + Dim(" milestone"),
		StyleFg.Render("•") + Dim(" note"),
		StyleFg.Render("▪") + Dim(" file"),
		StyleFg.Render("↗") + Dim(" link"),
		StyleFg.Render("≡n") + Dim(" stacked"),
		StyleRed.Render("░") + Dim(" holiday"),
		StyleYellow.Render("░") + Dim(" special day"),
	}
	return Dim("legend: ") + strings.Join(parts, Dim("  "))
}

func padRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
