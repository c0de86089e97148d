package timeline

import (
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
)

// Class is the rendering bucket a reference falls into for a cell.
type Class int

const (
	ClassNone Class = iota
	ClassComment
	ClassFile
	ClassLink
)

// Classify places a reference into exactly one bucket:
//   - comments: type note with no url
//   - files:    type document with a non-empty file list
//   - links:    type link, or type document with a non-empty url
//
// A document carrying both a url and files classifies as a link; the url
// check runs first. Combinations outside the rules return ClassNone.
func Classify(r *domain.Reference) Class {
	switch r.Type {
	case domain.ReferenceNote:
		if r.URL == "" {
			return ClassComment
		}
		return ClassNone
	case domain.ReferenceDocument:
		if r.URL != "" {
			return ClassLink
		}
		if len(r.Files) > 0 {
			return ClassFile
		}
		return ClassNone
	case domain.ReferenceLink:
		return ClassLink
	default:
		return ClassNone
	}
}

// CellRefs groups one cell's references by classification.
type CellRefs struct {
	Comments []*domain.Reference
	Files    []*domain.Reference
	Links    []*domain.Reference
}

// Total is the annotation count across all three buckets.
func (c CellRefs) Total() int {
	return len(c.Comments) + len(c.Files) + len(c.Links)
}

// HasMultipleItems reports whether the cell renders its indicators as a
// stacked column instead of a row. The threshold is strictly more than one.
func (c CellRefs) HasMultipleItems() bool {
	return c.Total() > 1
}

// MatchesCell reports whether a reference belongs to the (phaseID, date)
// cell. A reference anchored to a calendar day matches any date query for
// its phase. This is looser than exact-date matching; the behavior is
// kept as observed in production data.
func MatchesCell(r *domain.Reference, phaseID string, date time.Time) bool {
	if r.PhaseID != phaseID {
		return false
	}
	if r.CalendarDayID != nil {
		return true
	}
	return r.Date != nil && sameDate(*r.Date, date)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

type cellKey struct {
	phaseID string
	date    string
}

// Index is a read-side projection of a plan's references, memoizing per-cell
// lookups. It is a snapshot: when the underlying reference collection
// changes, build a new Index.
type Index struct {
	refs  []*domain.Reference
	cells map[cellKey]CellRefs
}

// NewIndex builds an Index over the given references.
func NewIndex(refs []*domain.Reference) *Index {
	return &Index{
		refs:  refs,
		cells: make(map[cellKey]CellRefs),
	}
}

// CellFor returns the classified references for a cell. Results are
// memoized by (phaseID, date).
func (ix *Index) CellFor(phaseID string, date time.Time) CellRefs {
	key := cellKey{phaseID: phaseID, date: date.Format("2006-01-02")}
	if cached, ok := ix.cells[key]; ok {
		return cached
	}

	var cell CellRefs
	for _, r := range ix.refs {
		if r.Milestone {
			// Milestone markers render separately from count badges.
			continue
		}
		if !MatchesCell(r, phaseID, date) {
			continue
		}
		switch Classify(r) {
		case ClassComment:
			cell.Comments = append(cell.Comments, r)
		case ClassFile:
			cell.Files = append(cell.Files, r)
		case ClassLink:
			cell.Links = append(cell.Links, r)
		}
	}

	ix.cells[key] = cell
	return cell
}

// IsMilestone reports whether a milestone-flagged reference exists for the
// cell. Milestones and regular references may coexist on the same cell.
func (ix *Index) IsMilestone(phaseID string, date time.Time) bool {
	for _, r := range ix.refs {
		if r.Milestone && MatchesCell(r, phaseID, date) {
			return true
		}
	}
	return false
}
