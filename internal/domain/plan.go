package domain

import "time"

type Plan struct {
	ID        string
	Name      string
	Owner     string
	Status    PlanStatus
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks structural invariants on the plan itself.
// Phase ranges are allowed to extend past the plan window; extension is
// recorded as a reschedule by the caller, never truncated here.
func (p *Plan) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if !ValidPlanStatuses[string(p.Status)] {
		return &ValidationError{Field: "status", Reason: "must be one of planned, in_progress, done, paused"}
	}
	if p.EndDate.Before(p.StartDate) {
		return &InvalidRangeError{Start: p.StartDate, End: p.EndDate}
	}
	return nil
}

// DisplayID returns a short identifier for display, truncating the UUID.
func (p *Plan) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
