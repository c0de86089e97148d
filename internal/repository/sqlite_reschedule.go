package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/db"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
)

// rescheduleColumns is the canonical SELECT column list for phase_reschedules.
const rescheduleColumns = `id, phase_id, rescheduled_at, original_start_date,
		original_end_date, new_start_date, new_end_date, reschedule_type_id, owner_id`

// SQLiteRescheduleRepo implements RescheduleRepo using a SQLite database.
// The table is append-only; this repo deliberately has no Update method.
type SQLiteRescheduleRepo struct {
	db db.DBTX
}

// NewSQLiteRescheduleRepo creates a new SQLiteRescheduleRepo.
func NewSQLiteRescheduleRepo(db db.DBTX) *SQLiteRescheduleRepo {
	return &SQLiteRescheduleRepo{db: db}
}

func (r *SQLiteRescheduleRepo) Create(ctx context.Context, rec *domain.Reschedule) error {
	query := `INSERT INTO phase_reschedules (id, phase_id, rescheduled_at, original_start_date,
		original_end_date, new_start_date, new_end_date, reschedule_type_id, owner_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.PhaseID,
		rec.RescheduledAt.Format(time.RFC3339),
		rec.OriginalStartDate.Format(dateLayout),
		rec.OriginalEndDate.Format(dateLayout),
		rec.NewStartDate.Format(dateLayout),
		rec.NewEndDate.Format(dateLayout),
		rec.RescheduleTypeID,
		nullableStr(rec.OwnerID),
	)
	if err != nil {
		return fmt.Errorf("inserting reschedule: %w", err)
	}
	return nil
}

func (r *SQLiteRescheduleRepo) GetByID(ctx context.Context, id string) (*domain.Reschedule, error) {
	query := `SELECT ` + rescheduleColumns + ` FROM phase_reschedules WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanReschedule(row)
}

// ListByPhase returns records most recent first, id descending as tiebreak
// so ordering is stable when two records share a timestamp.
func (r *SQLiteRescheduleRepo) ListByPhase(ctx context.Context, phaseID string) ([]*domain.Reschedule, error) {
	query := `SELECT ` + rescheduleColumns + ` FROM phase_reschedules
		WHERE phase_id = ? ORDER BY rescheduled_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, phaseID)
	if err != nil {
		return nil, fmt.Errorf("listing reschedules by phase: %w", err)
	}
	defer rows.Close()

	var records []*domain.Reschedule
	for rows.Next() {
		rec, err := scanRescheduleFromRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reschedules: %w", err)
	}
	return records, nil
}

func (r *SQLiteRescheduleRepo) CountByPhase(ctx context.Context, phaseID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM phase_reschedules WHERE phase_id = ?`, phaseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting reschedules: %w", err)
	}
	return count, nil
}

func (r *SQLiteRescheduleRepo) DeleteByPhase(ctx context.Context, phaseID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM phase_reschedules WHERE phase_id = ?`, phaseID)
	if err != nil {
		return fmt.Errorf("deleting reschedules for phase: %w", err)
	}
	return nil
}

func scanReschedule(row *sql.Row) (*domain.Reschedule, error) {
	var rec domain.Reschedule
	var atStr, origStartStr, origEndStr, newStartStr, newEndStr string
	var ownerID sql.NullString

	err := row.Scan(&rec.ID, &rec.PhaseID, &atStr, &origStartStr, &origEndStr,
		&newStartStr, &newEndStr, &rec.RescheduleTypeID, &ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("reschedule: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning reschedule: %w", err)
	}
	return populateReschedule(&rec, atStr, origStartStr, origEndStr, newStartStr, newEndStr, ownerID)
}

func scanRescheduleFromRows(rows *sql.Rows) (*domain.Reschedule, error) {
	var rec domain.Reschedule
	var atStr, origStartStr, origEndStr, newStartStr, newEndStr string
	var ownerID sql.NullString

	err := rows.Scan(&rec.ID, &rec.PhaseID, &atStr, &origStartStr, &origEndStr,
		&newStartStr, &newEndStr, &rec.RescheduleTypeID, &ownerID)
	if err != nil {
		return nil, fmt.Errorf("scanning reschedule row: %w", err)
	}
	return populateReschedule(&rec, atStr, origStartStr, origEndStr, newStartStr, newEndStr, ownerID)
}

func populateReschedule(rec *domain.Reschedule, atStr, origStartStr, origEndStr, newStartStr, newEndStr string, ownerID sql.NullString) (*domain.Reschedule, error) {
	var parseErr error
	rec.RescheduledAt, parseErr = time.Parse(time.RFC3339, atStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing rescheduled_at: %w", parseErr)
	}
	rec.OriginalStartDate, parseErr = time.Parse(dateLayout, origStartStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing original_start_date: %w", parseErr)
	}
	rec.OriginalEndDate, parseErr = time.Parse(dateLayout, origEndStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing original_end_date: %w", parseErr)
	}
	rec.NewStartDate, parseErr = time.Parse(dateLayout, newStartStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing new_start_date: %w", parseErr)
	}
	rec.NewEndDate, parseErr = time.Parse(dateLayout, newEndStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing new_end_date: %w", parseErr)
	}
	if ownerID.Valid {
		rec.OwnerID = &ownerID.String
	}
	return rec, nil
}
