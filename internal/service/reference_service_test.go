package service

import (
	"context"
	"testing"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/testutil"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceCreate_ValidationMatrix(t *testing.T) {
	plans, phases, _, types, references, _ := setupRepos(t)
	ctx := context.Background()

	phase, _ := seedPhase(t, plans, phases, types)
	svc := NewReferenceService(references)

	tests := []struct {
		name    string
		ref     *domain.Reference
		wantErr bool
	}{
		{
			name: "plain note",
			ref:  testutil.NewTestReference(phase.PlanID, phase.ID, domain.ReferenceNote),
		},
		{
			name:    "note with url rejected",
			ref:     testutil.NewTestReference(phase.PlanID, phase.ID, domain.ReferenceNote, testutil.WithURL("https://example.com")),
			wantErr: true,
		},
		{
			name: "document with files",
			ref:  testutil.NewTestReference(phase.PlanID, phase.ID, domain.ReferenceDocument, testutil.WithFiles("rollout.pdf")),
		},
		{
			name:    "document with neither files nor url rejected",
			ref:     testutil.NewTestReference(phase.PlanID, phase.ID, domain.ReferenceDocument),
			wantErr: true,
		},
		{
			name:    "link without url rejected",
			ref:     testutil.NewTestReference(phase.PlanID, phase.ID, domain.ReferenceLink),
			wantErr: true,
		},
		{
			name: "link with url",
			ref:  testutil.NewTestReference(phase.PlanID, phase.ID, domain.ReferenceLink, testutil.WithURL("https://wiki.internal/launch")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(ctx, tt.ref)
			if tt.wantErr {
				var vErr *domain.ValidationError
				require.ErrorAs(t, err, &vErr)
				return
			}
			require.NoError(t, err)
			got, err := svc.GetByID(ctx, tt.ref.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.ref.Type, got.Type)
		})
	}
}

func TestReferenceUpdate_PersistsFiles(t *testing.T) {
	plans, phases, _, types, references, _ := setupRepos(t)
	ctx := context.Background()

	phase, _ := seedPhase(t, plans, phases, types)
	svc := NewReferenceService(references)

	ref := testutil.NewTestReference(phase.PlanID, phase.ID, domain.ReferenceDocument, testutil.WithFiles("v1.pdf"))
	require.NoError(t, svc.Create(ctx, ref))

	ref.Files = []string{"v2.pdf", "appendix.pdf"}
	require.NoError(t, svc.Update(ctx, ref))

	got, err := svc.GetByID(ctx, ref.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"v2.pdf", "appendix.pdf"}, got.Files)
}

// TestToggleMilestone_OnOff verifies the toggle creates a marker on a bare
// cell and removes it on the second call.
func TestToggleMilestone_OnOff(t *testing.T) {
	plans, phases, _, types, references, _ := setupRepos(t)
	ctx := context.Background()

	phase, _ := seedPhase(t, plans, phases, types)
	svc := NewReferenceService(references)
	day := testutil.Date(2025, 1, 15)

	on, err := svc.ToggleMilestone(ctx, phase.PlanID, phase.ID, day)
	require.NoError(t, err)
	assert.True(t, on)

	refs, err := references.ListByPhase(ctx, phase.ID)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.True(t, refs[0].Milestone)

	off, err := svc.ToggleMilestone(ctx, phase.PlanID, phase.ID, day)
	require.NoError(t, err)
	assert.False(t, off)

	refs, err = references.ListByPhase(ctx, phase.ID)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

// TestToggleMilestone_LeavesRegularReferences verifies toggling a marker
// never disturbs the cell's ordinary references, and that the marker does
// not inflate the cell's badge counts.
func TestToggleMilestone_LeavesRegularReferences(t *testing.T) {
	plans, phases, _, types, references, _ := setupRepos(t)
	ctx := context.Background()

	phase, _ := seedPhase(t, plans, phases, types)
	svc := NewReferenceService(references)
	day := testutil.Date(2025, 1, 15)

	note := testutil.NewTestReference(phase.PlanID, phase.ID, domain.ReferenceNote, testutil.WithRefDate(day))
	require.NoError(t, svc.Create(ctx, note))

	on, err := svc.ToggleMilestone(ctx, phase.PlanID, phase.ID, day)
	require.NoError(t, err)
	assert.True(t, on)

	refs, err := references.ListByPhase(ctx, phase.ID)
	require.NoError(t, err)
	ix := timeline.NewIndex(refs)
	cell := ix.CellFor(phase.ID, day)
	assert.Len(t, cell.Comments, 1, "marker must not count as a comment")
	assert.False(t, cell.HasMultipleItems())
	assert.True(t, ix.IsMilestone(phase.ID, day))

	_, err = svc.ToggleMilestone(ctx, phase.PlanID, phase.ID, day)
	require.NoError(t, err)

	refs, err = references.ListByPhase(ctx, phase.ID)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, note.ID, refs[0].ID)
}
