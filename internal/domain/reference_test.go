package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anchored(r Reference) Reference {
	if r.Date == nil && r.CalendarDayID == nil {
		d := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		r.Date = &d
	}
	if r.PhaseID == "" {
		r.PhaseID = "p1"
	}
	return r
}

func TestReferenceValidate(t *testing.T) {
	cases := []struct {
		name    string
		ref     Reference
		wantErr string
	}{
		{name: "note", ref: anchored(Reference{Type: ReferenceNote, Title: "check with QA"})},
		{name: "note with files", ref: anchored(Reference{Type: ReferenceNote, Files: []string{"a.pdf"}}), wantErr: "files"},
		{name: "note with url", ref: anchored(Reference{Type: ReferenceNote, URL: "http://x"}), wantErr: "url"},
		{name: "document with files", ref: anchored(Reference{Type: ReferenceDocument, Files: []string{"a.pdf"}})},
		{name: "document with url only", ref: anchored(Reference{Type: ReferenceDocument, URL: "http://x"})},
		{name: "document empty", ref: anchored(Reference{Type: ReferenceDocument}), wantErr: "files"},
		{name: "link", ref: anchored(Reference{Type: ReferenceLink, URL: "http://x"})},
		{name: "link without url", ref: anchored(Reference{Type: ReferenceLink}), wantErr: "url"},
		{name: "unknown type", ref: anchored(Reference{Type: "sticker"}), wantErr: "type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.ref.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestReferenceValidate_RequiresAnchor(t *testing.T) {
	r := Reference{PhaseID: "p1", Type: ReferenceNote}
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anchor")
}

func TestReferenceValidate_RequiresPhase(t *testing.T) {
	d := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	r := Reference{Type: ReferenceNote, Date: &d}
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phaseId")
}
