package service

import (
	"context"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
)

type PlanService interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	// Delete removes the plan and everything it owns — phases, references,
	// and the phases' reschedule history — as one atomic unit.
	Delete(ctx context.Context, id string) error
}

type PhaseService interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Phase, error)
	Update(ctx context.Context, p *domain.Phase) error
	// Delete removes the phase and its reschedule history in one
	// transaction. Reschedule types are shared data and stay untouched.
	Delete(ctx context.Context, id string) error

	// SetPhaseRange validates and applies a new date range, returning the
	// range committed before the change. It writes no reschedule history.
	SetPhaseRange(ctx context.Context, phaseID string, start, end time.Time) (domain.DateRange, error)

	// Record appends a reschedule audit record for an already-applied
	// transition. Equal ranges are a no-op. Fails with StalePhaseError
	// when the phase no longer exists.
	Record(ctx context.Context, phaseID string, original, next domain.DateRange, rescheduleTypeID string, ownerID *string) error

	// Reschedule applies a range change and its audit record atomically:
	// both happen or neither does. Returns the created record, or nil when
	// the new range equals the current one (idempotent no-op).
	Reschedule(ctx context.Context, phaseID string, start, end time.Time, rescheduleTypeID string, ownerID *string) (*domain.Reschedule, error)

	// Ordinal operations renumber positions contiguously.
	MoveUp(ctx context.Context, phaseID string) error
	MoveDown(ctx context.Context, phaseID string) error
	Duplicate(ctx context.Context, phaseID string) (*domain.Phase, error)
}

type RescheduleService interface {
	ListByPhase(ctx context.Context, phaseID string) ([]*domain.Reschedule, error)
	CreateType(ctx context.Context, t *domain.RescheduleType) error
	GetType(ctx context.Context, id string) (*domain.RescheduleType, error)
	GetTypeByName(ctx context.Context, name string) (*domain.RescheduleType, error)
	ListTypes(ctx context.Context) ([]*domain.RescheduleType, error)
	UpdateType(ctx context.Context, t *domain.RescheduleType) error
	DeleteType(ctx context.Context, id string) error
}

type CalendarService interface {
	// EnsureCalendar returns the country's calendar, creating it when the
	// country has none yet. Every day mutation goes through this, so a
	// calendar always exists before a day is written.
	EnsureCalendar(ctx context.Context, countryID string) (*domain.Calendar, error)

	// DaysForCountry lists a country's days. A country without a calendar
	// yields an empty result, not an error.
	DaysForCountry(ctx context.Context, countryID string) ([]*domain.CalendarDay, error)

	AddDay(ctx context.Context, countryID string, day *domain.CalendarDay) error
	UpdateDay(ctx context.Context, day *domain.CalendarDay) error
	DeleteDay(ctx context.Context, dayID string) error

	// ReplaceDays swaps a calendar's full day list in one transaction.
	ReplaceDays(ctx context.Context, calendarID string, days []*domain.CalendarDay) error
}

type ReferenceService interface {
	Create(ctx context.Context, r *domain.Reference) error
	GetByID(ctx context.Context, id string) (*domain.Reference, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Reference, error)
	Update(ctx context.Context, r *domain.Reference) error
	Delete(ctx context.Context, id string) error

	// ToggleMilestone flips the milestone marker on a cell: creates a
	// milestone reference when none exists, removes it otherwise.
	ToggleMilestone(ctx context.Context, planID, phaseID string, date time.Time) (bool, error)
}
