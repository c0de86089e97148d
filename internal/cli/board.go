package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/cli/formatter"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/interaction"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/timeline"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// boardKeyMap declares the board's key bindings with their help text.
type boardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	Refresh  key.Binding
	Quit     key.Binding
	Left     key.Binding
	Right    key.Binding
	StartIn  key.Binding
	StartOut key.Binding
	EndIn    key.Binding
	EndOut   key.Binding
	Save     key.Binding
	Cancel   key.Binding
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "select phase")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Edit:     key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "shift")),
		Right:    key.NewBinding(key.WithKeys("right")),
		StartIn:  key.NewBinding(key.WithKeys(","), key.WithHelp(",/.", "start edge")),
		StartOut: key.NewBinding(key.WithKeys(".")),
		EndIn:    key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "end edge")),
		EndOut:   key.NewBinding(key.WithKeys("]")),
		Save:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func newBoardCmd(app *App) *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "board <plan>",
		Short: "Interactive timeline: move phases and record reschedules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("board requires an interactive terminal")
			}
			data, err := loadPlanData(context.Background(), app, args[0], country)
			if err != nil {
				return err
			}
			m := newBoardModel(app, data, country)
			p := tea.NewProgram(m, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Calendar country overlay (defaults to config)")

	return cmd
}

// applyResultMsg reports the outcome of an async apply. seq ties the
// response to the submit that started it; responses from dialogs the user
// already closed carry an older seq and are dropped.
type applyResultMsg struct {
	seq int
	err error
}

// boardModel is the interactive timeline. One edit is in flight at most:
// the editor's state machine gates every key, and the seq counter drops
// stale apply responses.
type boardModel struct {
	app     *App
	country string

	data     *planData
	selected int

	editor *interaction.Editor
	keys   boardKeyMap
	picker *huh.Form
	typeID string

	seq      int
	inFlight bool

	status   string
	quitting bool
}

func newBoardModel(app *App, data *planData, country string) *boardModel {
	return &boardModel{
		app:     app,
		country: country,
		data:    data,
		editor:  interaction.NewEditor(),
		keys:    defaultBoardKeyMap(),
	}
}

func (m *boardModel) Init() tea.Cmd {
	return nil
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case applyResultMsg:
		return m.handleApplyResult(msg)
	case tea.KeyMsg:
		if m.picker != nil {
			return m.updatePicker(msg)
		}
		return m.handleKey(msg)
	}
	if m.picker != nil {
		return m.updatePicker(msg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.editor.State() {
	case interaction.StateIdle:
		return m.handleIdleKey(msg)
	case interaction.StateEditing:
		return m.handleEditingKey(msg)
	case interaction.StateValidating:
		// In-flight guard: no edits, no resubmits until the apply resolves.
		return m, nil
	case interaction.StateRejected:
		switch {
		case key.Matches(msg, m.keys.Save), key.Matches(msg, m.keys.Cancel):
			_ = m.editor.Resume()
			m.status = "Back to editing; fix the range and resubmit."
		case key.Matches(msg, m.keys.Quit):
			_ = m.editor.Cancel()
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m *boardModel) handleIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.data.Phases)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Edit):
		if phase := m.selectedPhase(); phase != nil {
			_ = m.editor.Begin(phase)
			m.status = ""
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload()
	}
	return m, nil
}

func (m *boardModel) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		_ = m.editor.Shift(-1)
	case key.Matches(msg, m.keys.Right):
		_ = m.editor.Shift(1)
	case key.Matches(msg, m.keys.StartIn):
		_ = m.editor.AdjustStart(-1)
	case key.Matches(msg, m.keys.StartOut):
		_ = m.editor.AdjustStart(1)
	case key.Matches(msg, m.keys.EndIn):
		_ = m.editor.AdjustEnd(-1)
	case key.Matches(msg, m.keys.EndOut):
		_ = m.editor.AdjustEnd(1)
	case key.Matches(msg, m.keys.Cancel):
		_ = m.editor.Cancel()
		m.status = "Edit discarded."
	case key.Matches(msg, m.keys.Save):
		if !m.editor.Changed() {
			_ = m.editor.Cancel()
			m.status = "Dates unchanged; nothing to record."
			return m, nil
		}
		return m.openTypePicker()
	case key.Matches(msg, m.keys.Quit):
		_ = m.editor.Cancel()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// openTypePicker loads the reschedule vocabulary into a huh select. The
// edit stays in Editing until the picker completes; cancelling the picker
// keeps the working range.
func (m *boardModel) openTypePicker() (tea.Model, tea.Cmd) {
	types, err := m.app.Reschedules.ListTypes(context.Background())
	if err != nil {
		m.status = "Error: " + err.Error()
		return m, nil
	}
	if len(types) == 0 {
		m.status = "No reschedule types defined; add one with `relplan reschedule type add`."
		return m, nil
	}

	options := make([]huh.Option[string], 0, len(types))
	for _, t := range types {
		options = append(options, huh.NewOption(t.Name, t.ID))
	}

	m.typeID = ""
	m.picker = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Why is this phase moving?").
				Options(options...).
				Value(&m.typeID),
		),
	).WithTheme(relplanHuhTheme()).WithShowHelp(false)

	return m, m.picker.Init()
}

func (m *boardModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.picker = nil
		m.status = "Type selection cancelled; still editing."
		return m, nil
	}

	form, cmd := m.picker.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.picker = f
	}

	if m.picker.State == huh.StateCompleted {
		m.picker = nil
		return m.submit()
	}
	return m, cmd
}

func (m *boardModel) submit() (tea.Model, tea.Cmd) {
	cmd, err := m.editor.Submit(m.typeID, nil)
	if err != nil {
		m.status = "Error: " + err.Error()
		return m, nil
	}

	m.seq++
	m.inFlight = true
	m.status = "Saving..."

	seq := m.seq
	ports := interaction.Ports{Ranges: m.app.Phases, Reschedules: m.app.Phases}
	return m, func() tea.Msg {
		return applyResultMsg{seq: seq, err: interaction.Apply(context.Background(), ports, cmd)}
	}
}

func (m *boardModel) handleApplyResult(msg applyResultMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq || !m.inFlight {
		// Stale response for a dialog that is no longer open.
		return m, nil
	}
	m.inFlight = false
	_ = m.editor.Resolve(msg.err)

	if msg.err != nil {
		m.status = "Rejected: " + rejectionMessage(msg.err) + " (enter to edit again)"
		return m, nil
	}

	_ = m.editor.Cancel()
	m.status = "Saved."
	return m, m.reload()
}

func rejectionMessage(err error) string {
	var rangeErr *domain.InvalidRangeError
	var stale *domain.StalePhaseError
	switch {
	case errors.As(err, &rangeErr):
		return "end date cannot precede start date"
	case errors.As(err, &stale):
		return "phase was deleted while editing"
	default:
		return err.Error()
	}
}

// reload re-queries the plan synchronously and clamps the selection.
func (m *boardModel) reload() tea.Cmd {
	data, err := loadPlanData(context.Background(), m.app, m.data.Plan.ID, m.country)
	if err != nil {
		m.status = "Error: " + err.Error()
		return nil
	}
	m.data = data
	if m.selected >= len(data.Phases) {
		m.selected = len(data.Phases) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	return nil
}

func (m *boardModel) selectedPhase() *domain.Phase {
	if m.selected < 0 || m.selected >= len(m.data.Phases) {
		return nil
	}
	return m.data.Phases[m.selected]
}

// previewGrid renders the committed data, with the phase under edit shown
// at its working range instead.
func (m *boardModel) previewGrid() timeline.Grid {
	phases := m.data.Phases
	if m.editor.State() != interaction.StateIdle && m.editor.PhaseID() != "" {
		working := m.editor.Working()
		phases = make([]*domain.Phase, len(m.data.Phases))
		for i, p := range m.data.Phases {
			if p.ID == m.editor.PhaseID() {
				edited := *p
				edited.StartDate = working.Start
				edited.EndDate = working.End
				phases[i] = &edited
			} else {
				phases[i] = p
			}
		}
	}
	return timeline.Layout(m.data.Plan, phases, m.data.Days, timeline.NewIndex(m.data.Refs))
}

func (m *boardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.Header(m.data.Plan.Name) + "\n\n")

	if len(m.data.Phases) == 0 {
		b.WriteString(formatter.Dim("No phases yet. Add one with `relplan phase add`.") + "\n")
	} else {
		b.WriteString(formatter.FormatBoardGrid(m.previewGrid(), m.selected) + "\n")
	}

	if m.picker != nil {
		b.WriteString("\n" + m.picker.View())
	}

	b.WriteString("\n\n" + m.footer())
	return b.String()
}

func (m *boardModel) footer() string {
	if m.status != "" {
		line := m.status
		if m.editor.State() == interaction.StateRejected {
			line = formatter.StyleRed.Render(line)
		} else {
			line = formatter.Dim(line)
		}
		return line
	}
	var bindings []key.Binding
	switch m.editor.State() {
	case interaction.StateEditing:
		bindings = []key.Binding{m.keys.Left, m.keys.StartIn, m.keys.EndIn, m.keys.Save, m.keys.Cancel}
	default:
		bindings = []key.Binding{m.keys.Up, m.keys.Edit, m.keys.Refresh, m.keys.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return formatter.Dim(strings.Join(parts, "  "))
}
