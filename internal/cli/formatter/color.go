package formatter

import (
	"fmt"
	"strings"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill returns a colored status label for a plan.
func StatusPill(status domain.PlanStatus) string {
	switch status {
	case domain.PlanInProgress:
		return StyleGreen.Render("● IN PROGRESS")
	case domain.PlanDone:
		return StyleBlue.Render("● DONE")
	case domain.PlanPaused:
		return StyleYellow.Render("● PAUSED")
	case domain.PlanPlanned:
		return StyleDim.Render("● PLANNED")
	default:
		return StyleDim.Render("● " + strings.ToUpper(string(status)))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// PhaseBarStyle returns a style filling cells with the phase's own color.
// Unknown or empty colors fall back to the palette blue.
func PhaseBarStyle(hex string) lipgloss.Style {
	if hex == "" {
		return lipgloss.NewStyle().Background(ColorBlue)
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex))
}
