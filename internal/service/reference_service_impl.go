package service

import (
	"context"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/repository"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/timeline"
	"github.com/google/uuid"
)

type referenceService struct {
	references repository.ReferenceRepo
}

func NewReferenceService(references repository.ReferenceRepo) ReferenceService {
	return &referenceService{references: references}
}

func (s *referenceService) Create(ctx context.Context, r *domain.Reference) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if err := r.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.references.Create(ctx, r)
}

func (s *referenceService) GetByID(ctx context.Context, id string) (*domain.Reference, error) {
	return s.references.GetByID(ctx, id)
}

func (s *referenceService) ListByPlan(ctx context.Context, planID string) ([]*domain.Reference, error) {
	return s.references.ListByPlan(ctx, planID)
}

func (s *referenceService) Update(ctx context.Context, r *domain.Reference) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.UpdatedAt = time.Now().UTC()
	return s.references.Update(ctx, r)
}

func (s *referenceService) Delete(ctx context.Context, id string) error {
	return s.references.Delete(ctx, id)
}

// ToggleMilestone flips the milestone marker on a cell. Returns true when
// the cell now carries a milestone. Regular references on the cell are
// never touched.
func (s *referenceService) ToggleMilestone(ctx context.Context, planID, phaseID string, date time.Time) (bool, error) {
	refs, err := s.references.ListByPhase(ctx, phaseID)
	if err != nil {
		return false, err
	}
	for _, r := range refs {
		if r.Milestone && timeline.MatchesCell(r, phaseID, date) {
			if err := s.references.Delete(ctx, r.ID); err != nil {
				return false, err
			}
			return false, nil
		}
	}

	now := time.Now().UTC()
	d := date
	marker := &domain.Reference{
		ID:        uuid.New().String(),
		PlanID:    planID,
		PhaseID:   phaseID,
		Type:      domain.ReferenceNote,
		Date:      &d,
		Milestone: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.references.Create(ctx, marker); err != nil {
		return false, err
	}
	return true, nil
}
