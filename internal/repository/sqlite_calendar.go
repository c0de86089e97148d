package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/db"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
)

// SQLiteCalendarRepo implements CalendarRepo using a SQLite database.
type SQLiteCalendarRepo struct {
	db db.DBTX
}

// NewSQLiteCalendarRepo creates a new SQLiteCalendarRepo.
func NewSQLiteCalendarRepo(db db.DBTX) *SQLiteCalendarRepo {
	return &SQLiteCalendarRepo{db: db}
}

func (r *SQLiteCalendarRepo) Create(ctx context.Context, c *domain.Calendar) error {
	query := `INSERT INTO calendars (id, country_id, created_at, updated_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.CountryID,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting calendar: %w", err)
	}
	return nil
}

func (r *SQLiteCalendarRepo) GetByID(ctx context.Context, id string) (*domain.Calendar, error) {
	query := `SELECT id, country_id, created_at, updated_at FROM calendars WHERE id = ?`
	return scanCalendar(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteCalendarRepo) GetByCountry(ctx context.Context, countryID string) (*domain.Calendar, error) {
	query := `SELECT id, country_id, created_at, updated_at FROM calendars WHERE country_id = ?`
	return scanCalendar(r.db.QueryRowContext(ctx, query, countryID))
}

func (r *SQLiteCalendarRepo) List(ctx context.Context) ([]*domain.Calendar, error) {
	query := `SELECT id, country_id, created_at, updated_at FROM calendars ORDER BY country_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing calendars: %w", err)
	}
	defer rows.Close()

	var cals []*domain.Calendar
	for rows.Next() {
		var c domain.Calendar
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&c.ID, &c.CountryID, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning calendar row: %w", err)
		}
		if err := populateCalendarTimes(&c, createdAtStr, updatedAtStr); err != nil {
			return nil, err
		}
		cals = append(cals, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calendars: %w", err)
	}
	return cals, nil
}

func (r *SQLiteCalendarRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM calendars WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting calendar: %w", err)
	}
	return nil
}

func scanCalendar(row *sql.Row) (*domain.Calendar, error) {
	var c domain.Calendar
	var createdAtStr, updatedAtStr string

	err := row.Scan(&c.ID, &c.CountryID, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("calendar: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning calendar: %w", err)
	}
	if err := populateCalendarTimes(&c, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &c, nil
}

func populateCalendarTimes(c *domain.Calendar, createdAtStr, updatedAtStr string) error {
	var parseErr error
	c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return fmt.Errorf("parsing created_at: %w", parseErr)
	}
	c.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return nil
}

// calendarDayColumns is the canonical SELECT column list for calendar_days.
const calendarDayColumns = `id, calendar_id, name, date, type, recurring, description, created_at, updated_at`

// SQLiteCalendarDayRepo implements CalendarDayRepo using a SQLite database.
type SQLiteCalendarDayRepo struct {
	db db.DBTX
}

// NewSQLiteCalendarDayRepo creates a new SQLiteCalendarDayRepo.
func NewSQLiteCalendarDayRepo(db db.DBTX) *SQLiteCalendarDayRepo {
	return &SQLiteCalendarDayRepo{db: db}
}

func (r *SQLiteCalendarDayRepo) Create(ctx context.Context, d *domain.CalendarDay) error {
	query := `INSERT INTO calendar_days (id, calendar_id, name, date, type, recurring, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.CalendarID,
		d.Name,
		d.Date.Format(dateLayout),
		string(d.Type),
		boolToInt(d.Recurring),
		d.Description,
		d.CreatedAt.Format(time.RFC3339),
		d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting calendar day: %w", err)
	}
	return nil
}

func (r *SQLiteCalendarDayRepo) GetByID(ctx context.Context, id string) (*domain.CalendarDay, error) {
	query := `SELECT ` + calendarDayColumns + ` FROM calendar_days WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var d domain.CalendarDay
	var typeStr, dateStr, createdAtStr, updatedAtStr string
	var recurringInt int
	err := row.Scan(&d.ID, &d.CalendarID, &d.Name, &dateStr, &typeStr, &recurringInt,
		&d.Description, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("calendar day: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning calendar day: %w", err)
	}
	return populateCalendarDay(&d, typeStr, dateStr, createdAtStr, updatedAtStr, recurringInt)
}

func (r *SQLiteCalendarDayRepo) ListByCalendar(ctx context.Context, calendarID string) ([]*domain.CalendarDay, error) {
	query := `SELECT ` + calendarDayColumns + ` FROM calendar_days WHERE calendar_id = ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, calendarID)
	if err != nil {
		return nil, fmt.Errorf("listing calendar days: %w", err)
	}
	defer rows.Close()

	var days []*domain.CalendarDay
	for rows.Next() {
		var d domain.CalendarDay
		var typeStr, dateStr, createdAtStr, updatedAtStr string
		var recurringInt int
		if err := rows.Scan(&d.ID, &d.CalendarID, &d.Name, &dateStr, &typeStr, &recurringInt,
			&d.Description, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning calendar day row: %w", err)
		}
		day, err := populateCalendarDay(&d, typeStr, dateStr, createdAtStr, updatedAtStr, recurringInt)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calendar days: %w", err)
	}
	return days, nil
}

func (r *SQLiteCalendarDayRepo) Update(ctx context.Context, d *domain.CalendarDay) error {
	query := `UPDATE calendar_days SET name = ?, date = ?, type = ?, recurring = ?, description = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		d.Name,
		d.Date.Format(dateLayout),
		string(d.Type),
		boolToInt(d.Recurring),
		d.Description,
		d.UpdatedAt.Format(time.RFC3339),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating calendar day: %w", err)
	}
	return nil
}

func (r *SQLiteCalendarDayRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM calendar_days WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting calendar day: %w", err)
	}
	return nil
}

func (r *SQLiteCalendarDayRepo) DeleteByCalendar(ctx context.Context, calendarID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM calendar_days WHERE calendar_id = ?`, calendarID)
	if err != nil {
		return fmt.Errorf("deleting calendar days: %w", err)
	}
	return nil
}

func populateCalendarDay(d *domain.CalendarDay, typeStr, dateStr, createdAtStr, updatedAtStr string, recurringInt int) (*domain.CalendarDay, error) {
	d.Type = domain.DayType(typeStr)
	d.Recurring = intToBool(recurringInt)

	var parseErr error
	d.Date, parseErr = time.Parse(dateLayout, dateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing date: %w", parseErr)
	}
	d.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	d.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return d, nil
}
