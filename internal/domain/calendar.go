package domain

import "time"

// Calendar groups holiday and special-day entries for one country.
// A calendar is lazily created the first time a day is added for its
// country; absence of a calendar is a valid state, not an error.
type Calendar struct {
	ID        string
	CountryID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CalendarDay is a single holiday or special day on a calendar.
// Days annotate timeline rendering only; they never block scheduling.
type CalendarDay struct {
	ID          string
	CalendarID  string
	Name        string
	Date        time.Time
	Type        DayType
	Recurring   bool
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (d *CalendarDay) Validate() error {
	if d.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if !ValidDayTypes[string(d.Type)] {
		return &ValidationError{Field: "type", Reason: "must be holiday or special"}
	}
	return nil
}
