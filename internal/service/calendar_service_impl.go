package service

import (
	"context"
	"errors"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/db"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/repository"
	"github.com/google/uuid"
)

type calendarService struct {
	calendars repository.CalendarRepo
	days      repository.CalendarDayRepo
	uow       db.UnitOfWork
}

func NewCalendarService(calendars repository.CalendarRepo, days repository.CalendarDayRepo, uow db.UnitOfWork) CalendarService {
	return &calendarService{calendars: calendars, days: days, uow: uow}
}

// EnsureCalendar returns the country's calendar, creating it on first use.
// Centralizing the lazy create keeps the invariant that a calendar exists
// before any day row is written.
func (s *calendarService) EnsureCalendar(ctx context.Context, countryID string) (*domain.Calendar, error) {
	if countryID == "" {
		return nil, &domain.ValidationError{Field: "countryId", Reason: "is required"}
	}
	cal, err := s.calendars.GetByCountry(ctx, countryID)
	if err == nil {
		return cal, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	cal = &domain.Calendar{
		ID:        uuid.New().String(),
		CountryID: countryID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.calendars.Create(ctx, cal); err != nil {
		return nil, err
	}
	return cal, nil
}

// DaysForCountry returns the country's days, or an empty list when the
// country has no calendar yet. No calendar is created by a read.
func (s *calendarService) DaysForCountry(ctx context.Context, countryID string) ([]*domain.CalendarDay, error) {
	cal, err := s.calendars.GetByCountry(ctx, countryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s.days.ListByCalendar(ctx, cal.ID)
}

func (s *calendarService) AddDay(ctx context.Context, countryID string, day *domain.CalendarDay) error {
	if err := day.Validate(); err != nil {
		return err
	}
	cal, err := s.EnsureCalendar(ctx, countryID)
	if err != nil {
		return err
	}
	if day.ID == "" {
		day.ID = uuid.New().String()
	}
	day.CalendarID = cal.ID
	now := time.Now().UTC()
	day.CreatedAt = now
	day.UpdatedAt = now
	return s.days.Create(ctx, day)
}

func (s *calendarService) UpdateDay(ctx context.Context, day *domain.CalendarDay) error {
	if err := day.Validate(); err != nil {
		return err
	}
	day.UpdatedAt = time.Now().UTC()
	return s.days.Update(ctx, day)
}

func (s *calendarService) DeleteDay(ctx context.Context, dayID string) error {
	return s.days.Delete(ctx, dayID)
}

// ReplaceDays swaps a calendar's full day list atomically: the whole PUT
// lands or none of it does.
func (s *calendarService) ReplaceDays(ctx context.Context, calendarID string, days []*domain.CalendarDay) error {
	for _, d := range days {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCalendars := repository.NewSQLiteCalendarRepo(tx)
		txDays := repository.NewSQLiteCalendarDayRepo(tx)

		if _, err := txCalendars.GetByID(ctx, calendarID); err != nil {
			return err
		}
		if err := txDays.DeleteByCalendar(ctx, calendarID); err != nil {
			return err
		}
		now := time.Now().UTC()
		for _, d := range days {
			if d.ID == "" {
				d.ID = uuid.New().String()
			}
			d.CalendarID = calendarID
			d.CreatedAt = now
			d.UpdatedAt = now
			if err := txDays.Create(ctx, d); err != nil {
				return err
			}
		}
		return nil
	})
}
