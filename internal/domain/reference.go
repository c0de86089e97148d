package domain

import "time"

// Reference is a user-attached annotation bound to a phase+date cell:
// a note, a document with attached files, or a link. A reference flagged
// as a milestone renders as a marker instead of a count badge.
//
// The cell anchor is either an explicit Date or a CalendarDayID; a
// calendar-day-anchored reference matches any date query for its phase
// (observed behavior, kept deliberately).
type Reference struct {
	ID            string
	PlanID        string
	PhaseID       string
	Type          ReferenceType
	Date          *time.Time
	CalendarDayID *string
	URL           string
	Files         []string
	Title         string
	Description   string
	Milestone     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate rejects combinations the classification rules cannot place:
// a note carrying files or a URL, a link without a URL, a document with
// neither files nor a URL.
func (r *Reference) Validate() error {
	if r.PhaseID == "" {
		return &ValidationError{Field: "phaseId", Reason: "is required"}
	}
	if r.Date == nil && r.CalendarDayID == nil {
		return &ValidationError{Field: "date", Reason: "a date or calendar day anchor is required"}
	}
	switch r.Type {
	case ReferenceNote:
		if len(r.Files) > 0 {
			return &ValidationError{Field: "files", Reason: "a note cannot carry file attachments"}
		}
		if r.URL != "" {
			return &ValidationError{Field: "url", Reason: "a note cannot carry a url"}
		}
	case ReferenceDocument:
		if len(r.Files) == 0 && r.URL == "" {
			return &ValidationError{Field: "files", Reason: "a document needs files or a url"}
		}
	case ReferenceLink:
		if r.URL == "" {
			return &ValidationError{Field: "url", Reason: "a link requires a url"}
		}
	default:
		return &ValidationError{Field: "type", Reason: "must be one of note, document, link"}
	}
	return nil
}
