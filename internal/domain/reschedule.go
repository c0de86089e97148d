package domain

import "time"

// Reschedule is an immutable audit record of a phase's date range changing.
// Records are append-only: they are never updated, and are removed only as
// a cascade of deleting their phase.
type Reschedule struct {
	ID                string
	PhaseID           string
	RescheduledAt     time.Time
	OriginalStartDate time.Time
	OriginalEndDate   time.Time
	NewStartDate      time.Time
	NewEndDate        time.Time
	RescheduleTypeID  string
	OwnerID           *string
}

// OriginalRange returns the range the phase held before the change.
func (r *Reschedule) OriginalRange() DateRange {
	return DateRange{Start: r.OriginalStartDate, End: r.OriginalEndDate}
}

// NewRange returns the range the phase was moved to.
func (r *Reschedule) NewRange() DateRange {
	return DateRange{Start: r.NewStartDate, End: r.NewEndDate}
}

// RescheduleType is an entry in the closed vocabulary of reschedule reasons.
// Renaming a type never rewrites existing records; they store the id only.
type RescheduleType struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *RescheduleType) Validate() error {
	if t.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	return nil
}
