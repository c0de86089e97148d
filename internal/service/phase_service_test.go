package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/db"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/repository"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (
	repository.PlanRepo,
	repository.PhaseRepo,
	repository.RescheduleRepo,
	repository.RescheduleTypeRepo,
	repository.ReferenceRepo,
	db.UnitOfWork,
) {
	database := testutil.NewTestDB(t)
	return repository.NewSQLitePlanRepo(database),
		repository.NewSQLitePhaseRepo(database),
		repository.NewSQLiteRescheduleRepo(database),
		repository.NewSQLiteRescheduleTypeRepo(database),
		repository.NewSQLiteReferenceRepo(database),
		testutil.NewTestUoW(database)
}

// seedPhase writes a plan, a reschedule type, and one phase covering
// Jan 10-20, returning the pieces most reschedule tests need.
func seedPhase(t *testing.T, plans repository.PlanRepo, phases repository.PhaseRepo, types repository.RescheduleTypeRepo) (*domain.Phase, *domain.RescheduleType) {
	t.Helper()
	ctx := context.Background()

	plan := testutil.NewTestPlan("Q1 Release")
	require.NoError(t, plans.Create(ctx, plan))

	rt := testutil.NewTestRescheduleType("scope change")
	require.NoError(t, types.Create(ctx, rt))

	phase := testutil.NewTestPhase(plan.ID, "Development",
		testutil.WithPhaseRange(testutil.Date(2025, 1, 10), testutil.Date(2025, 1, 20)))
	require.NoError(t, phases.Create(ctx, phase))
	return phase, rt
}

// TestReschedule_CreatesSingleRecord verifies that moving a phase's dates
// produces exactly one history record carrying the pre-change range as
// original and the post-change range as new.
func TestReschedule_CreatesSingleRecord(t *testing.T) {
	plans, phases, reschedules, types, _, uow := setupRepos(t)
	ctx := context.Background()

	phase, rt := seedPhase(t, plans, phases, types)
	svc := NewPhaseService(phases, reschedules, uow)

	record, err := svc.Reschedule(ctx, phase.ID, testutil.Date(2025, 1, 15), testutil.Date(2025, 1, 25), rt.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, testutil.Date(2025, 1, 10), record.OriginalStartDate)
	assert.Equal(t, testutil.Date(2025, 1, 20), record.OriginalEndDate)
	assert.Equal(t, testutil.Date(2025, 1, 15), record.NewStartDate)
	assert.Equal(t, testutil.Date(2025, 1, 25), record.NewEndDate)
	assert.Equal(t, rt.ID, record.RescheduleTypeID)

	count, err := reschedules.CountByPhase(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	updated, err := phases.GetByID(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(2025, 1, 15), updated.StartDate)
	assert.Equal(t, testutil.Date(2025, 1, 25), updated.EndDate)
}

// TestReschedule_SameRange_NoRecord verifies the idempotent no-op: saving
// a phase with its current dates writes nothing.
func TestReschedule_SameRange_NoRecord(t *testing.T) {
	plans, phases, reschedules, types, _, uow := setupRepos(t)
	ctx := context.Background()

	phase, rt := seedPhase(t, plans, phases, types)
	svc := NewPhaseService(phases, reschedules, uow)

	record, err := svc.Reschedule(ctx, phase.ID, phase.StartDate, phase.EndDate, rt.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, record, "unchanged range should not produce a record")

	count, err := reschedules.CountByPhase(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

// TestReschedule_InvalidRange_Rejected verifies that end-before-start is
// rejected without touching the phase or the history.
func TestReschedule_InvalidRange_Rejected(t *testing.T) {
	plans, phases, reschedules, types, _, uow := setupRepos(t)
	ctx := context.Background()

	phase, rt := seedPhase(t, plans, phases, types)
	svc := NewPhaseService(phases, reschedules, uow)

	_, err := svc.Reschedule(ctx, phase.ID, testutil.Date(2025, 1, 25), testutil.Date(2025, 1, 15), rt.ID, nil)
	var rangeErr *domain.InvalidRangeError
	require.ErrorAs(t, err, &rangeErr)

	unchanged, err := phases.GetByID(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(2025, 1, 10), unchanged.StartDate)
	assert.Equal(t, testutil.Date(2025, 1, 20), unchanged.EndDate)

	count, err := reschedules.CountByPhase(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestReschedule_MissingPhase_Stale(t *testing.T) {
	_, phases, reschedules, _, _, uow := setupRepos(t)
	svc := NewPhaseService(phases, reschedules, uow)

	_, err := svc.Reschedule(context.Background(), "gone", testutil.Date(2025, 1, 1), testutil.Date(2025, 1, 2), "type", nil)
	var stale *domain.StalePhaseError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, "gone", stale.PhaseID)
}

// TestReschedule_RecordFailure_RollsBackRangeChange injects a failure on
// the history insert and verifies the phase's range change rolls back with
// it: the update and the record land together or not at all.
func TestReschedule_RecordFailure_RollsBackRangeChange(t *testing.T) {
	database := testutil.NewTestDB(t)
	plans := repository.NewSQLitePlanRepo(database)
	phases := repository.NewSQLitePhaseRepo(database)
	reschedules := repository.NewSQLiteRescheduleRepo(database)
	types := repository.NewSQLiteRescheduleTypeRepo(database)
	ctx := context.Background()

	phase, rt := seedPhase(t, plans, phases, types)

	injected := errors.New("disk full")
	// Exec 1 is the phase update, exec 2 the record insert.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected}
	svc := NewPhaseService(phases, reschedules, uow)

	_, err := svc.Reschedule(ctx, phase.ID, testutil.Date(2025, 2, 1), testutil.Date(2025, 2, 10), rt.ID, nil)
	require.ErrorIs(t, err, injected)

	unchanged, err := phases.GetByID(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(2025, 1, 10), unchanged.StartDate, "rolled-back update should not be visible")

	count, err := reschedules.CountByPhase(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSetPhaseRange_ReturnsPriorRange(t *testing.T) {
	plans, phases, reschedules, types, _, uow := setupRepos(t)
	ctx := context.Background()

	phase, _ := seedPhase(t, plans, phases, types)
	svc := NewPhaseService(phases, reschedules, uow)

	prior, err := svc.SetPhaseRange(ctx, phase.ID, testutil.Date(2025, 1, 12), testutil.Date(2025, 1, 22))
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(2025, 1, 10), prior.Start)
	assert.Equal(t, testutil.Date(2025, 1, 20), prior.End)

	// SetPhaseRange alone writes no history.
	count, err := reschedules.CountByPhase(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRecord_EqualRanges_NoOp(t *testing.T) {
	plans, phases, reschedules, types, _, uow := setupRepos(t)
	ctx := context.Background()

	phase, rt := seedPhase(t, plans, phases, types)
	svc := NewPhaseService(phases, reschedules, uow)

	r := domain.DateRange{Start: testutil.Date(2025, 1, 10), End: testutil.Date(2025, 1, 20)}
	require.NoError(t, svc.Record(ctx, phase.ID, r, r, rt.ID, nil))

	count, err := reschedules.CountByPhase(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRecord_MissingPhase_Stale(t *testing.T) {
	_, phases, reschedules, _, _, uow := setupRepos(t)
	svc := NewPhaseService(phases, reschedules, uow)

	err := svc.Record(context.Background(), "gone",
		domain.DateRange{Start: testutil.Date(2025, 1, 1), End: testutil.Date(2025, 1, 5)},
		domain.DateRange{Start: testutil.Date(2025, 1, 2), End: testutil.Date(2025, 1, 6)},
		"type", nil)
	var stale *domain.StalePhaseError
	require.ErrorAs(t, err, &stale)
}

// TestReschedule_HistoryAccumulates verifies records append across repeated
// moves and list newest-first.
func TestReschedule_HistoryAccumulates(t *testing.T) {
	plans, phases, reschedules, types, _, uow := setupRepos(t)
	ctx := context.Background()

	phase, rt := seedPhase(t, plans, phases, types)
	svc := NewPhaseService(phases, reschedules, uow)

	_, err := svc.Reschedule(ctx, phase.ID, testutil.Date(2025, 1, 12), testutil.Date(2025, 1, 22), rt.ID, nil)
	require.NoError(t, err)
	second, err := svc.Reschedule(ctx, phase.ID, testutil.Date(2025, 1, 14), testutil.Date(2025, 1, 24), rt.ID, nil)
	require.NoError(t, err)

	history, err := reschedules.ListByPhase(ctx, phase.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID, "history should list most recent first")
	// Chain is contiguous: each record's original is the previous new.
	assert.True(t, history[0].OriginalRange().Equal(history[1].NewRange()))
}

func TestPhaseCreate_AssignsNextPosition(t *testing.T) {
	plans, phases, reschedules, _, _, uow := setupRepos(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Q2 Release")
	require.NoError(t, plans.Create(ctx, plan))

	svc := NewPhaseService(phases, reschedules, uow)

	first := testutil.NewTestPhase(plan.ID, "Design")
	second := testutil.NewTestPhase(plan.ID, "Build")
	first.ID, second.ID = "", ""
	require.NoError(t, svc.Create(ctx, first))
	require.NoError(t, svc.Create(ctx, second))

	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 2, second.Position)
}

func TestPhaseMove_SwapsNeighborsAndRenumbers(t *testing.T) {
	plans, phases, reschedules, _, _, uow := setupRepos(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Q2 Release")
	require.NoError(t, plans.Create(ctx, plan))

	a := testutil.NewTestPhase(plan.ID, "A", testutil.WithPosition(1))
	b := testutil.NewTestPhase(plan.ID, "B", testutil.WithPosition(2))
	c := testutil.NewTestPhase(plan.ID, "C", testutil.WithPosition(3))
	for _, p := range []*domain.Phase{a, b, c} {
		require.NoError(t, phases.Create(ctx, p))
	}

	svc := NewPhaseService(phases, reschedules, uow)
	require.NoError(t, svc.MoveDown(ctx, a.ID))

	list, err := phases.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"B", "A", "C"}, []string{list[0].Name, list[1].Name, list[2].Name})
	assert.Equal(t, []int{1, 2, 3}, []int{list[0].Position, list[1].Position, list[2].Position})

	// Moving past the top edge is a no-op.
	require.NoError(t, svc.MoveUp(ctx, b.ID))
	list, err = phases.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", list[0].Name)
}

func TestPhaseDuplicate_CopiesRangeNotHistory(t *testing.T) {
	plans, phases, reschedules, types, _, uow := setupRepos(t)
	ctx := context.Background()

	phase, rt := seedPhase(t, plans, phases, types)
	svc := NewPhaseService(phases, reschedules, uow)

	_, err := svc.Reschedule(ctx, phase.ID, testutil.Date(2025, 1, 12), testutil.Date(2025, 1, 22), rt.ID, nil)
	require.NoError(t, err)

	dup, err := svc.Duplicate(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, "Development (copy)", dup.Name)
	assert.Equal(t, phase.Color, dup.Color)
	assert.Equal(t, testutil.Date(2025, 1, 12), dup.StartDate)
	assert.Equal(t, 2, dup.Position)

	count, err := reschedules.CountByPhase(ctx, dup.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "copy must start with empty history")
}

// TestPhaseDelete_CascadesHistoryKeepsTypes verifies deleting a phase
// removes its records, leaves the shared type vocabulary intact, and
// renumbers the remaining phases contiguously.
func TestPhaseDelete_CascadesHistoryKeepsTypes(t *testing.T) {
	plans, phases, reschedules, types, _, uow := setupRepos(t)
	ctx := context.Background()

	phase, rt := seedPhase(t, plans, phases, types)
	plan, err := plans.GetByID(ctx, phase.PlanID)
	require.NoError(t, err)

	other := testutil.NewTestPhase(plan.ID, "Testing", testutil.WithPosition(2))
	require.NoError(t, phases.Create(ctx, other))

	svc := NewPhaseService(phases, reschedules, uow)
	_, err = svc.Reschedule(ctx, phase.ID, testutil.Date(2025, 1, 12), testutil.Date(2025, 1, 22), rt.ID, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, phase.ID))

	_, err = phases.GetByID(ctx, phase.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	count, err := reschedules.CountByPhase(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = types.GetByID(ctx, rt.ID)
	assert.NoError(t, err, "types outlive the records that used them")

	remaining, err := phases.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, 1, remaining[0].Position, "survivor should be renumbered to 1")
}
