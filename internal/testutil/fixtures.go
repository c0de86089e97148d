package testutil

import (
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/google/uuid"
)

// Date is shorthand for a midnight-UTC calendar date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Plan options
type PlanOption func(*domain.Plan)

func WithPlanStatus(s domain.PlanStatus) PlanOption {
	return func(p *domain.Plan) {
		p.Status = s
	}
}

func WithPlanWindow(start, end time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithOwner(owner string) PlanOption {
	return func(p *domain.Plan) {
		p.Owner = owner
	}
}

func NewTestPlan(name string, opts ...PlanOption) *domain.Plan {
	now := time.Now().UTC()
	p := &domain.Plan{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.PlanPlanned,
		StartDate: Date(2025, 1, 1),
		EndDate:   Date(2025, 3, 31),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithPhaseRange(start, end time.Time) PhaseOption {
	return func(p *domain.Phase) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithPosition(pos int) PhaseOption {
	return func(p *domain.Phase) {
		p.Position = pos
	}
}

func WithColor(c string) PhaseOption {
	return func(p *domain.Phase) {
		p.Color = c
	}
}

func WithDefault() PhaseOption {
	return func(p *domain.Phase) {
		p.IsDefault = true
	}
}

func NewTestPhase(planID, name string, opts ...PhaseOption) *domain.Phase {
	now := time.Now().UTC()
	p := &domain.Phase{
		ID:        uuid.New().String(),
		PlanID:    planID,
		Name:      name,
		Color:     "#83a598",
		Position:  1,
		StartDate: Date(2025, 1, 1),
		EndDate:   Date(2025, 1, 10),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestRescheduleType(name string) *domain.RescheduleType {
	now := time.Now().UTC()
	return &domain.RescheduleType{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestReschedule(phaseID, typeID string, original, next domain.DateRange) *domain.Reschedule {
	return &domain.Reschedule{
		ID:                uuid.New().String(),
		PhaseID:           phaseID,
		RescheduledAt:     time.Now().UTC(),
		OriginalStartDate: original.Start,
		OriginalEndDate:   original.End,
		NewStartDate:      next.Start,
		NewEndDate:        next.End,
		RescheduleTypeID:  typeID,
	}
}

// Reference options
type ReferenceOption func(*domain.Reference)

func WithRefDate(d time.Time) ReferenceOption {
	return func(r *domain.Reference) {
		r.Date = &d
	}
}

func WithCalendarDayID(id string) ReferenceOption {
	return func(r *domain.Reference) {
		r.CalendarDayID = &id
	}
}

func WithURL(url string) ReferenceOption {
	return func(r *domain.Reference) {
		r.URL = url
	}
}

func WithFiles(files ...string) ReferenceOption {
	return func(r *domain.Reference) {
		r.Files = files
	}
}

func WithMilestone() ReferenceOption {
	return func(r *domain.Reference) {
		r.Milestone = true
	}
}

func NewTestReference(planID, phaseID string, typ domain.ReferenceType, opts ...ReferenceOption) *domain.Reference {
	now := time.Now().UTC()
	d := Date(2025, 2, 1)
	r := &domain.Reference{
		ID:        uuid.New().String(),
		PlanID:    planID,
		PhaseID:   phaseID,
		Type:      typ,
		Date:      &d,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewTestCalendar(countryID string) *domain.Calendar {
	now := time.Now().UTC()
	return &domain.Calendar{
		ID:        uuid.New().String(),
		CountryID: countryID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestCalendarDay(calendarID, name string, d time.Time, typ domain.DayType) *domain.CalendarDay {
	now := time.Now().UTC()
	return &domain.CalendarDay{
		ID:         uuid.New().String(),
		CalendarID: calendarID,
		Name:       name,
		Date:       d,
		Type:       typ,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
