package service

import (
	"context"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/db"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	plans    repository.PlanRepo
	phases   repository.PhaseRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPlanService(plans repository.PlanRepo, phases repository.PhaseRepo, uow db.UnitOfWork, observers ...UseCaseObserver) PlanService {
	return &planService{
		plans:    plans,
		phases:   phases,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Create(ctx context.Context, p *domain.Plan) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = domain.PlanPlanned
	}
	if err := p.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.plans.Create(ctx, p)
}

func (s *planService) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *planService) List(ctx context.Context) ([]*domain.Plan, error) {
	return s.plans.List(ctx)
}

func (s *planService) Update(ctx context.Context, p *domain.Plan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.plans.Update(ctx, p)
}

// Delete removes the plan, its phases, their reschedule history, and the
// plan's references as one transaction. The reschedule deletes are explicit
// rather than left to FK cascade so the invariant holds regardless of
// storage engine.
func (s *planService) Delete(ctx context.Context, id string) error {
	started := time.Now()
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)
		txReschedules := repository.NewSQLiteRescheduleRepo(tx)

		phases, err := txPhases.ListByPlan(ctx, id)
		if err != nil {
			return err
		}
		for _, phase := range phases {
			if err := txReschedules.DeleteByPhase(ctx, phase.ID); err != nil {
				return err
			}
			if err := txPhases.Delete(ctx, phase.ID); err != nil {
				return err
			}
		}
		// References cascade from the plan row itself.
		return txPlans.Delete(ctx, id)
	})
	observe(ctx, s.observer, "plan_delete", started, err, map[string]any{"plan_id": id})
	return err
}
