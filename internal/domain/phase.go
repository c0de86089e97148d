package domain

import "time"

// DateRange is an inclusive, date-only span. Both bounds are midnight UTC.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Equal reports whether two ranges cover the same dates.
func (r DateRange) Equal(other DateRange) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

// Valid reports whether Start <= End.
func (r DateRange) Valid() bool {
	return !r.End.Before(r.Start)
}

// Days returns the number of dates the range covers, inclusive of both ends.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Contains reports whether d falls within the range (inclusive).
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Phase is a named, colored, ordered date-range segment of a Plan.
// Position is the plan-scoped ordinal used for vertical ordering; no two
// phases of one plan share a position.
type Phase struct {
	ID        string
	PlanID    string
	Name      string
	Color     string
	IsDefault bool
	Position  int
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the phase's current committed date range.
func (p *Phase) Range() DateRange {
	return DateRange{Start: p.StartDate, End: p.EndDate}
}

// SetRange validates and applies a new date range, returning the prior
// range so the caller can hand both to the reschedule recorder.
// Validation happens before any mutation: on error the phase is unchanged.
func (p *Phase) SetRange(newStart, newEnd time.Time, now time.Time) (DateRange, error) {
	if newEnd.Before(newStart) {
		return DateRange{}, &InvalidRangeError{Start: newStart, End: newEnd}
	}
	prior := p.Range()
	p.StartDate = newStart
	p.EndDate = newEnd
	p.UpdatedAt = now
	return prior, nil
}

// Validate checks structural invariants on the phase.
func (p *Phase) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if p.PlanID == "" {
		return &ValidationError{Field: "planId", Reason: "is required"}
	}
	if p.EndDate.Before(p.StartDate) {
		return &InvalidRangeError{Start: p.StartDate, End: p.EndDate}
	}
	return nil
}
