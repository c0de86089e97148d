// Package interaction drives interactive phase edits: a small state machine
// whose transitions are pure functions, with network/storage side effects
// isolated behind ports invoked only at the validate/apply boundary.
package interaction

import (
	"fmt"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
)

// State is the editor's position in the phase-edit lifecycle.
type State int

const (
	StateIdle State = iota
	StateEditing
	StateValidating
	StateApplied
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StateApplied:
		return "applied"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Editor tracks one in-flight phase edit. The baseline is the committed
// range captured when editing began; it is what a reschedule record's
// "original" side reports, and what a compensating rollback restores.
type Editor struct {
	state    State
	phaseID  string
	baseline domain.DateRange
	start    time.Time
	end      time.Time
	color    string
	err      error
}

// NewEditor returns an idle editor.
func NewEditor() *Editor {
	return &Editor{state: StateIdle}
}

func (e *Editor) State() State { return e.state }

// PhaseID returns the phase under edit, empty when idle.
func (e *Editor) PhaseID() string { return e.phaseID }

// Baseline returns the committed range captured at edit start.
func (e *Editor) Baseline() domain.DateRange { return e.baseline }

// Working returns the current uncommitted range.
func (e *Editor) Working() domain.DateRange {
	return domain.DateRange{Start: e.start, End: e.end}
}

// Err returns the rejection cause while in StateRejected.
func (e *Editor) Err() error { return e.err }

// Changed reports whether the working range differs from the baseline.
func (e *Editor) Changed() bool {
	return !e.Working().Equal(e.baseline)
}

// Begin starts editing a phase, capturing its committed range as the
// baseline for potential reschedule logging.
func (e *Editor) Begin(phase *domain.Phase) error {
	if e.state != StateIdle {
		return fmt.Errorf("cannot begin edit from state %s", e.state)
	}
	e.state = StateEditing
	e.phaseID = phase.ID
	e.baseline = phase.Range()
	e.start = phase.StartDate
	e.end = phase.EndDate
	e.color = phase.Color
	e.err = nil
	return nil
}

// AdjustStart moves the working start by a number of days (drag of the
// bar's left edge). Inverted working values are allowed here; validation
// happens at submit.
func (e *Editor) AdjustStart(days int) error {
	if e.state != StateEditing {
		return fmt.Errorf("cannot adjust in state %s", e.state)
	}
	e.start = e.start.AddDate(0, 0, days)
	return nil
}

// AdjustEnd moves the working end by a number of days (drag of the bar's
// right edge).
func (e *Editor) AdjustEnd(days int) error {
	if e.state != StateEditing {
		return fmt.Errorf("cannot adjust in state %s", e.state)
	}
	e.end = e.end.AddDate(0, 0, days)
	return nil
}

// Shift moves the whole working range by a number of days.
func (e *Editor) Shift(days int) error {
	if e.state != StateEditing {
		return fmt.Errorf("cannot shift in state %s", e.state)
	}
	e.start = e.start.AddDate(0, 0, days)
	e.end = e.end.AddDate(0, 0, days)
	return nil
}

// SetRange replaces the working range wholesale (explicit form edit).
func (e *Editor) SetRange(start, end time.Time) error {
	if e.state != StateEditing {
		return fmt.Errorf("cannot set range in state %s", e.state)
	}
	e.start = start
	e.end = end
	return nil
}

// SubmitCommand carries everything the apply step needs. RescheduleTypeID
// may be empty when the range is unchanged.
type SubmitCommand struct {
	PhaseID          string
	Baseline         domain.DateRange
	NewRange         domain.DateRange
	RescheduleTypeID string
	OwnerID          *string
}

// Submit moves Editing → Validating and returns the command to apply.
func (e *Editor) Submit(rescheduleTypeID string, ownerID *string) (SubmitCommand, error) {
	if e.state != StateEditing {
		return SubmitCommand{}, fmt.Errorf("cannot submit from state %s", e.state)
	}
	e.state = StateValidating
	return SubmitCommand{
		PhaseID:          e.phaseID,
		Baseline:         e.baseline,
		NewRange:         e.Working(),
		RescheduleTypeID: rescheduleTypeID,
		OwnerID:          ownerID,
	}, nil
}

// Resolve feeds the apply outcome back in: nil moves Validating → Applied,
// an error moves Validating → Rejected with the cause retained. A rejected
// editor keeps its working values so the user can correct and resubmit.
func (e *Editor) Resolve(applyErr error) error {
	if e.state != StateValidating {
		return fmt.Errorf("cannot resolve from state %s", e.state)
	}
	if applyErr != nil {
		e.state = StateRejected
		e.err = applyErr
		return nil
	}
	e.state = StateApplied
	e.err = nil
	return nil
}

// Resume returns a rejected edit to Editing with its working values intact.
func (e *Editor) Resume() error {
	if e.state != StateRejected {
		return fmt.Errorf("cannot resume from state %s", e.state)
	}
	e.state = StateEditing
	e.err = nil
	return nil
}

// Cancel discards the edit and returns to Idle. Allowed from Editing,
// Rejected, and Applied; a validating edit must resolve first.
func (e *Editor) Cancel() error {
	switch e.state {
	case StateEditing, StateRejected, StateApplied:
		e.state = StateIdle
		e.phaseID = ""
		e.baseline = domain.DateRange{}
		e.err = nil
		return nil
	default:
		return fmt.Errorf("cannot cancel from state %s", e.state)
	}
}
