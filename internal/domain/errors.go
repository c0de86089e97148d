package domain

import (
	"fmt"
	"time"
)

// InvalidRangeError reports a phase date range whose end precedes its start.
// The range is rejected atomically: no state changes before validation passes.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: end %s is before start %s",
		e.End.Format("2006-01-02"), e.Start.Format("2006-01-02"))
}

// StalePhaseError reports that a phase vanished between a read and a
// dependent write (typically a reschedule racing a phase deletion).
// The caller must treat the whole operation as rolled back.
type StalePhaseError struct {
	PhaseID string
}

func (e *StalePhaseError) Error() string {
	return fmt.Sprintf("phase %s no longer exists", e.PhaseID)
}

// ValidationError reports malformed or missing required fields on input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports a uniqueness violation, e.g. a duplicate
// reschedule type name.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
