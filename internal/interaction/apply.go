package interaction

import (
	"context"
	"fmt"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
)

// RangeSetter is the phase range model port. SetPhaseRange validates and
// applies a new range, returning the range that was committed before.
type RangeSetter interface {
	SetPhaseRange(ctx context.Context, phaseID string, start, end time.Time) (domain.DateRange, error)
}

// Recorder is the reschedule audit port.
type Recorder interface {
	Record(ctx context.Context, phaseID string, original, next domain.DateRange, rescheduleTypeID string, ownerID *string) error
}

// Ports bundles the side-effect dependencies of the apply step.
type Ports struct {
	Ranges      RangeSetter
	Reschedules Recorder
}

// Apply executes a submitted edit: set the range, then record the
// transition. Either both succeed or neither does — when recording fails
// the range change is rolled back with a compensating update so the model
// is never left changed without its audit entry.
//
// No record is written when the accepted range equals the prior range, or
// when no reschedule type was selected for an unchanged-by-policy edit.
func Apply(ctx context.Context, p Ports, cmd SubmitCommand) error {
	prior, err := p.Ranges.SetPhaseRange(ctx, cmd.PhaseID, cmd.NewRange.Start, cmd.NewRange.End)
	if err != nil {
		return err
	}

	if prior.Equal(cmd.NewRange) {
		// No-op change: idempotent, zero records.
		return nil
	}
	if cmd.RescheduleTypeID == "" {
		return nil
	}

	if err := p.Reschedules.Record(ctx, cmd.PhaseID, prior, cmd.NewRange, cmd.RescheduleTypeID, cmd.OwnerID); err != nil {
		if _, rbErr := p.Ranges.SetPhaseRange(ctx, cmd.PhaseID, prior.Start, prior.End); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	return nil
}
