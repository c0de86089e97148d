package repository

import (
	"context"
	"testing"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCascadeDelete_PlanToPhases verifies that deleting a plan cascades to its phases.
func TestCascadeDelete_PlanToPhases(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	planRepo := NewSQLitePlanRepo(db)
	phaseRepo := NewSQLitePhaseRepo(db)

	plan := testutil.NewTestPlan("Cascade Plan")
	require.NoError(t, planRepo.Create(ctx, plan))

	phase := testutil.NewTestPhase(plan.ID, "Build")
	require.NoError(t, phaseRepo.Create(ctx, phase))

	require.NoError(t, planRepo.Delete(ctx, plan.ID))

	_, err := phaseRepo.GetByID(ctx, phase.ID)
	assert.Error(t, err, "phase should be cascade-deleted when plan is deleted")
}

// TestCascadeDelete_PhaseToReschedules verifies phases -> phase_reschedules cascade.
func TestCascadeDelete_PhaseToReschedules(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	planRepo := NewSQLitePlanRepo(db)
	phaseRepo := NewSQLitePhaseRepo(db)
	typeRepo := NewSQLiteRescheduleTypeRepo(db)
	recRepo := NewSQLiteRescheduleRepo(db)

	plan := testutil.NewTestPlan("Cascade Plan 2")
	require.NoError(t, planRepo.Create(ctx, plan))

	phase := testutil.NewTestPhase(plan.ID, "Build")
	require.NoError(t, phaseRepo.Create(ctx, phase))

	typ := testutil.NewTestRescheduleType("scope change")
	require.NoError(t, typeRepo.Create(ctx, typ))

	rec := testutil.NewTestReschedule(phase.ID, typ.ID,
		domain.DateRange{Start: testutil.Date(2025, 1, 1), End: testutil.Date(2025, 1, 10)},
		domain.DateRange{Start: testutil.Date(2025, 1, 5), End: testutil.Date(2025, 1, 14)})
	require.NoError(t, recRepo.Create(ctx, rec))

	require.NoError(t, phaseRepo.Delete(ctx, phase.ID))

	n, err := recRepo.CountByPhase(ctx, phase.ID)
	require.NoError(t, err)
	assert.Zero(t, n, "reschedule records should be cascade-deleted with their phase")
}

// TestCascadeDelete_PhaseToReferences verifies phases -> plan_references cascade,
// and plan_references -> reference_files beneath it.
func TestCascadeDelete_PhaseToReferences(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	planRepo := NewSQLitePlanRepo(db)
	phaseRepo := NewSQLitePhaseRepo(db)
	refRepo := NewSQLiteReferenceRepo(db)

	plan := testutil.NewTestPlan("Cascade Plan 3")
	require.NoError(t, planRepo.Create(ctx, plan))

	phase := testutil.NewTestPhase(plan.ID, "Build")
	require.NoError(t, phaseRepo.Create(ctx, phase))

	ref := testutil.NewTestReference(plan.ID, phase.ID, domain.ReferenceDocument,
		testutil.WithFiles("notes.pdf", "minutes.txt"))
	require.NoError(t, refRepo.Create(ctx, ref))

	require.NoError(t, phaseRepo.Delete(ctx, phase.ID))

	_, err := refRepo.GetByID(ctx, ref.ID)
	assert.Error(t, err, "reference should be cascade-deleted when phase is deleted")
}

// TestCascadeDelete_CalendarToDays verifies calendars -> calendar_days cascade.
func TestCascadeDelete_CalendarToDays(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	calRepo := NewSQLiteCalendarRepo(db)
	dayRepo := NewSQLiteCalendarDayRepo(db)

	cal := testutil.NewTestCalendar("US")
	require.NoError(t, calRepo.Create(ctx, cal))

	day := testutil.NewTestCalendarDay(cal.ID, "New Year", testutil.Date(2025, 1, 1), domain.DayHoliday)
	require.NoError(t, dayRepo.Create(ctx, day))

	require.NoError(t, calRepo.Delete(ctx, cal.ID))

	days, err := dayRepo.ListByCalendar(ctx, cal.ID)
	require.NoError(t, err)
	assert.Empty(t, days, "days should be cascade-deleted with their calendar")
}

// TestDeleteRescheduleType_Referenced rejects deletion while records point at the type.
// The FK on phase_reschedules.reschedule_type_id has no ON DELETE clause, so
// history keeps its type rows alive.
func TestDeleteRescheduleType_Referenced(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	planRepo := NewSQLitePlanRepo(db)
	phaseRepo := NewSQLitePhaseRepo(db)
	typeRepo := NewSQLiteRescheduleTypeRepo(db)
	recRepo := NewSQLiteRescheduleRepo(db)

	plan := testutil.NewTestPlan("Plan")
	require.NoError(t, planRepo.Create(ctx, plan))

	phase := testutil.NewTestPhase(plan.ID, "Build")
	require.NoError(t, phaseRepo.Create(ctx, phase))

	typ := testutil.NewTestRescheduleType("dependency slip")
	require.NoError(t, typeRepo.Create(ctx, typ))

	rec := testutil.NewTestReschedule(phase.ID, typ.ID,
		domain.DateRange{Start: testutil.Date(2025, 1, 1), End: testutil.Date(2025, 1, 10)},
		domain.DateRange{Start: testutil.Date(2025, 1, 2), End: testutil.Date(2025, 1, 11)})
	require.NoError(t, recRepo.Create(ctx, rec))

	assert.Error(t, typeRepo.Delete(ctx, typ.ID), "type referenced by history must not be deletable")

	// Once the history is gone the type can go too.
	require.NoError(t, recRepo.DeleteByPhase(ctx, phase.ID))
	assert.NoError(t, typeRepo.Delete(ctx, typ.ID))
}
