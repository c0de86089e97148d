package service

import (
	"context"
	"testing"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/repository"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCalendarService(t *testing.T) (CalendarService, repository.CalendarRepo, repository.CalendarDayRepo) {
	database := testutil.NewTestDB(t)
	calendars := repository.NewSQLiteCalendarRepo(database)
	days := repository.NewSQLiteCalendarDayRepo(database)
	return NewCalendarService(calendars, days, testutil.NewTestUoW(database)), calendars, days
}

// TestDaysForCountry_NoCalendar_EmptyNotError verifies that querying a
// country that never had days yields an empty result, and that the read
// does not create a calendar as a side effect.
func TestDaysForCountry_NoCalendar_EmptyNotError(t *testing.T) {
	svc, calendars, _ := setupCalendarService(t)
	ctx := context.Background()

	days, err := svc.DaysForCountry(ctx, "JP")
	require.NoError(t, err)
	assert.Empty(t, days)

	_, err = calendars.GetByCountry(ctx, "JP")
	assert.ErrorIs(t, err, repository.ErrNotFound, "a read must not create a calendar")
}

// TestAddDay_FirstWrite_CreatesCalendar verifies the lazy create: the first
// day added for a country materializes its calendar.
func TestAddDay_FirstWrite_CreatesCalendar(t *testing.T) {
	svc, calendars, _ := setupCalendarService(t)
	ctx := context.Background()

	day := &domain.CalendarDay{Name: "Constitution Day", Date: testutil.Date(2025, 5, 3), Type: domain.DayHoliday}
	require.NoError(t, svc.AddDay(ctx, "JP", day))

	cal, err := calendars.GetByCountry(ctx, "JP")
	require.NoError(t, err)
	assert.Equal(t, cal.ID, day.CalendarID)

	days, err := svc.DaysForCountry(ctx, "JP")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "Constitution Day", days[0].Name)
}

func TestEnsureCalendar_Idempotent(t *testing.T) {
	svc, _, _ := setupCalendarService(t)
	ctx := context.Background()

	first, err := svc.EnsureCalendar(ctx, "DE")
	require.NoError(t, err)
	second, err := svc.EnsureCalendar(ctx, "DE")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = svc.EnsureCalendar(ctx, "")
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestReplaceDays_SwapsFullList(t *testing.T) {
	svc, calendars, _ := setupCalendarService(t)
	ctx := context.Background()

	cal, err := svc.EnsureCalendar(ctx, "US")
	require.NoError(t, err)

	old := &domain.CalendarDay{Name: "Old Entry", Date: testutil.Date(2025, 1, 1), Type: domain.DayHoliday}
	require.NoError(t, svc.AddDay(ctx, "US", old))

	replacement := []*domain.CalendarDay{
		{Name: "Independence Day", Date: testutil.Date(2025, 7, 4), Type: domain.DayHoliday, Recurring: true},
		{Name: "Release Freeze", Date: testutil.Date(2025, 12, 15), Type: domain.DaySpecial},
	}
	require.NoError(t, svc.ReplaceDays(ctx, cal.ID, replacement))

	days, err := svc.DaysForCountry(ctx, "US")
	require.NoError(t, err)
	require.Len(t, days, 2)
	names := []string{days[0].Name, days[1].Name}
	assert.Contains(t, names, "Independence Day")
	assert.NotContains(t, names, "Old Entry")

	require.NoError(t, calendars.Create(ctx, testutil.NewTestCalendar("FR")))
	err = svc.ReplaceDays(ctx, "missing-calendar", replacement)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddDay_RejectsInvalidType(t *testing.T) {
	svc, _, _ := setupCalendarService(t)

	day := &domain.CalendarDay{Name: "Bad", Date: testutil.Date(2025, 1, 1), Type: domain.DayType("weekend")}
	var vErr *domain.ValidationError
	require.ErrorAs(t, svc.AddDay(context.Background(), "US", day), &vErr)
	assert.Equal(t, "type", vErr.Field)
}
