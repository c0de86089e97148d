package repository

import (
	"context"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
)

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Delete(ctx context.Context, id string) error
}

type PhaseRepo interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Phase, error)
	MaxPosition(ctx context.Context, planID string) (int, error)
	Update(ctx context.Context, p *domain.Phase) error
	Delete(ctx context.Context, id string) error
}

type RescheduleRepo interface {
	// Create appends a record. Records are immutable: there is no Update.
	Create(ctx context.Context, r *domain.Reschedule) error
	GetByID(ctx context.Context, id string) (*domain.Reschedule, error)
	// ListByPhase returns records most recent first.
	ListByPhase(ctx context.Context, phaseID string) ([]*domain.Reschedule, error)
	CountByPhase(ctx context.Context, phaseID string) (int, error)
	DeleteByPhase(ctx context.Context, phaseID string) error
}

type RescheduleTypeRepo interface {
	Create(ctx context.Context, t *domain.RescheduleType) error
	GetByID(ctx context.Context, id string) (*domain.RescheduleType, error)
	GetByName(ctx context.Context, name string) (*domain.RescheduleType, error)
	List(ctx context.Context) ([]*domain.RescheduleType, error)
	Update(ctx context.Context, t *domain.RescheduleType) error
	Delete(ctx context.Context, id string) error
}

type ReferenceRepo interface {
	Create(ctx context.Context, r *domain.Reference) error
	GetByID(ctx context.Context, id string) (*domain.Reference, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Reference, error)
	ListByPhase(ctx context.Context, phaseID string) ([]*domain.Reference, error)
	Update(ctx context.Context, r *domain.Reference) error
	Delete(ctx context.Context, id string) error
}

type CalendarRepo interface {
	Create(ctx context.Context, c *domain.Calendar) error
	GetByID(ctx context.Context, id string) (*domain.Calendar, error)
	GetByCountry(ctx context.Context, countryID string) (*domain.Calendar, error)
	List(ctx context.Context) ([]*domain.Calendar, error)
	Delete(ctx context.Context, id string) error
}

type CalendarDayRepo interface {
	Create(ctx context.Context, d *domain.CalendarDay) error
	GetByID(ctx context.Context, id string) (*domain.CalendarDay, error)
	ListByCalendar(ctx context.Context, calendarID string) ([]*domain.CalendarDay, error)
	Update(ctx context.Context, d *domain.CalendarDay) error
	Delete(ctx context.Context, id string) error
	DeleteByCalendar(ctx context.Context, calendarID string) error
}
