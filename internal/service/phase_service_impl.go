package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/db"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/repository"
	"github.com/google/uuid"
)

type phaseService struct {
	phases      repository.PhaseRepo
	reschedules repository.RescheduleRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewPhaseService(phases repository.PhaseRepo, reschedules repository.RescheduleRepo, uow db.UnitOfWork, observers ...UseCaseObserver) PhaseService {
	return &phaseService{
		phases:      phases,
		reschedules: reschedules,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Create appends the phase at the next free ordinal of its plan.
func (s *phaseService) Create(ctx context.Context, p *domain.Phase) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if err := p.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		max, err := txPhases.MaxPosition(ctx, p.PlanID)
		if err != nil {
			return err
		}
		p.Position = max + 1
		return txPhases.Create(ctx, p)
	})
}

func (s *phaseService) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	return s.phases.GetByID(ctx, id)
}

func (s *phaseService) ListByPlan(ctx context.Context, planID string) ([]*domain.Phase, error) {
	return s.phases.ListByPlan(ctx, planID)
}

func (s *phaseService) Update(ctx context.Context, p *domain.Phase) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.phases.Update(ctx, p)
}

// Delete removes the phase and its reschedule history in one transaction,
// then renumbers the plan's remaining phases so ordinals stay contiguous.
func (s *phaseService) Delete(ctx context.Context, id string) error {
	started := time.Now()
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		txReschedules := repository.NewSQLiteRescheduleRepo(tx)

		phase, err := txPhases.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := txReschedules.DeleteByPhase(ctx, id); err != nil {
			return err
		}
		if err := txPhases.Delete(ctx, id); err != nil {
			return err
		}
		return renumberPhases(ctx, txPhases, phase.PlanID)
	})
	observe(ctx, s.observer, "phase_delete", started, err, map[string]any{"phase_id": id})
	return err
}

// SetPhaseRange validates and applies a new range, returning the prior one.
// No reschedule history is written here; that is the caller's contract.
func (s *phaseService) SetPhaseRange(ctx context.Context, phaseID string, start, end time.Time) (domain.DateRange, error) {
	var prior domain.DateRange
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		phase, err := txPhases.GetByID(ctx, phaseID)
		if err != nil {
			return err
		}
		prior, err = phase.SetRange(start, end, time.Now().UTC())
		if err != nil {
			return err
		}
		return txPhases.Update(ctx, phase)
	})
	if err != nil {
		return domain.DateRange{}, err
	}
	return prior, nil
}

// Record appends an audit record for an already-applied transition.
// Equal ranges are the idempotent no-op; a vanished phase is stale.
func (s *phaseService) Record(ctx context.Context, phaseID string, original, next domain.DateRange, rescheduleTypeID string, ownerID *string) error {
	if original.Equal(next) {
		return nil
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		txReschedules := repository.NewSQLiteRescheduleRepo(tx)

		if _, err := txPhases.GetByID(ctx, phaseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &domain.StalePhaseError{PhaseID: phaseID}
			}
			return err
		}
		return txReschedules.Create(ctx, newRescheduleRecord(phaseID, original, next, rescheduleTypeID, ownerID))
	})
}

// Reschedule applies a range change and its audit record atomically.
// Returns nil without touching anything when the new range equals the
// current one.
func (s *phaseService) Reschedule(ctx context.Context, phaseID string, start, end time.Time, rescheduleTypeID string, ownerID *string) (*domain.Reschedule, error) {
	started := time.Now()
	var record *domain.Reschedule
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		txReschedules := repository.NewSQLiteRescheduleRepo(tx)

		phase, err := txPhases.GetByID(ctx, phaseID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &domain.StalePhaseError{PhaseID: phaseID}
			}
			return err
		}

		prior, err := phase.SetRange(start, end, time.Now().UTC())
		if err != nil {
			return err
		}
		if prior.Equal(phase.Range()) {
			// Same dates resubmitted: no update, no record.
			return nil
		}

		if err := txPhases.Update(ctx, phase); err != nil {
			return err
		}
		record = newRescheduleRecord(phaseID, prior, phase.Range(), rescheduleTypeID, ownerID)
		return txReschedules.Create(ctx, record)
	})
	observe(ctx, s.observer, "phase_reschedule", started, err, map[string]any{
		"phase_id": phaseID,
		"recorded": record != nil,
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *phaseService) MoveUp(ctx context.Context, phaseID string) error {
	return s.move(ctx, phaseID, -1)
}

func (s *phaseService) MoveDown(ctx context.Context, phaseID string) error {
	return s.move(ctx, phaseID, +1)
}

// move swaps the phase with its vertical neighbor and renumbers the plan's
// ordinals contiguously. Moving past either end is a no-op.
func (s *phaseService) move(ctx context.Context, phaseID string, dir int) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)

		phase, err := txPhases.GetByID(ctx, phaseID)
		if err != nil {
			return err
		}
		phases, err := txPhases.ListByPlan(ctx, phase.PlanID)
		if err != nil {
			return err
		}

		idx := -1
		for i, p := range phases {
			if p.ID == phaseID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("phase %s: %w", phaseID, repository.ErrNotFound)
		}
		target := idx + dir
		if target < 0 || target >= len(phases) {
			return nil
		}
		phases[idx], phases[target] = phases[target], phases[idx]

		return applyPositions(ctx, txPhases, phases)
	})
}

// Duplicate copies the phase (name, color, range) onto the next free
// ordinal of the same plan. The copy has no reschedule history.
func (s *phaseService) Duplicate(ctx context.Context, phaseID string) (*domain.Phase, error) {
	var copyPhase *domain.Phase
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)

		src, err := txPhases.GetByID(ctx, phaseID)
		if err != nil {
			return err
		}
		max, err := txPhases.MaxPosition(ctx, src.PlanID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		copyPhase = &domain.Phase{
			ID:        uuid.New().String(),
			PlanID:    src.PlanID,
			Name:      src.Name + " (copy)",
			Color:     src.Color,
			Position:  max + 1,
			StartDate: src.StartDate,
			EndDate:   src.EndDate,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return txPhases.Create(ctx, copyPhase)
	})
	if err != nil {
		return nil, err
	}
	return copyPhase, nil
}

func newRescheduleRecord(phaseID string, original, next domain.DateRange, typeID string, ownerID *string) *domain.Reschedule {
	return &domain.Reschedule{
		ID:                uuid.New().String(),
		PhaseID:           phaseID,
		RescheduledAt:     time.Now().UTC(),
		OriginalStartDate: original.Start,
		OriginalEndDate:   original.End,
		NewStartDate:      next.Start,
		NewEndDate:        next.End,
		RescheduleTypeID:  typeID,
		OwnerID:           ownerID,
	}
}

// renumberPhases reassigns ordinals 1..n in current list order.
func renumberPhases(ctx context.Context, phases *repository.SQLitePhaseRepo, planID string) error {
	list, err := phases.ListByPlan(ctx, planID)
	if err != nil {
		return err
	}
	return applyPositions(ctx, phases, list)
}

// applyPositions writes ordinals 1..n in slice order, touching only rows
// whose position actually changes.
func applyPositions(ctx context.Context, phases *repository.SQLitePhaseRepo, list []*domain.Phase) error {
	now := time.Now().UTC()
	for i, p := range list {
		want := i + 1
		if p.Position == want {
			continue
		}
		p.Position = want
		p.UpdatedAt = now
		if err := phases.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
