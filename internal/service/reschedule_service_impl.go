package service

import (
	"context"
	"strings"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/repository"
	"github.com/google/uuid"
)

type rescheduleService struct {
	reschedules repository.RescheduleRepo
	types       repository.RescheduleTypeRepo
}

func NewRescheduleService(reschedules repository.RescheduleRepo, types repository.RescheduleTypeRepo) RescheduleService {
	return &rescheduleService{reschedules: reschedules, types: types}
}

func (s *rescheduleService) ListByPhase(ctx context.Context, phaseID string) ([]*domain.Reschedule, error) {
	return s.reschedules.ListByPhase(ctx, phaseID)
}

func (s *rescheduleService) CreateType(ctx context.Context, t *domain.RescheduleType) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if err := t.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.types.Create(ctx, t)
}

func (s *rescheduleService) GetType(ctx context.Context, id string) (*domain.RescheduleType, error) {
	return s.types.GetByID(ctx, id)
}

func (s *rescheduleService) GetTypeByName(ctx context.Context, name string) (*domain.RescheduleType, error) {
	return s.types.GetByName(ctx, name)
}

func (s *rescheduleService) ListTypes(ctx context.Context) ([]*domain.RescheduleType, error) {
	return s.types.List(ctx)
}

func (s *rescheduleService) UpdateType(ctx context.Context, t *domain.RescheduleType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.types.Update(ctx, t)
}

// DeleteType removes an unused type. A type still referenced by existing
// records is protected by the FK constraint; surface that as a conflict.
func (s *rescheduleService) DeleteType(ctx context.Context, id string) error {
	err := s.types.Delete(ctx, id)
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return &domain.ConflictError{Message: "reschedule type is referenced by existing records"}
	}
	return err
}
