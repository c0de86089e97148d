package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/db"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
)

// referenceColumns is the canonical SELECT column list for plan_references.
const referenceColumns = `id, plan_id, phase_id, type, date, calendar_day_id,
		url, title, description, milestone, created_at, updated_at`

// SQLiteReferenceRepo implements ReferenceRepo using a SQLite database.
// File attachments live in the reference_files side table and are loaded
// alongside every reference read.
type SQLiteReferenceRepo struct {
	db db.DBTX
}

// NewSQLiteReferenceRepo creates a new SQLiteReferenceRepo.
func NewSQLiteReferenceRepo(db db.DBTX) *SQLiteReferenceRepo {
	return &SQLiteReferenceRepo{db: db}
}

func (r *SQLiteReferenceRepo) Create(ctx context.Context, ref *domain.Reference) error {
	query := `INSERT INTO plan_references (id, plan_id, phase_id, type, date, calendar_day_id,
		url, title, description, milestone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ref.ID,
		ref.PlanID,
		ref.PhaseID,
		string(ref.Type),
		nullableTimeToString(ref.Date, dateLayout),
		nullableStr(ref.CalendarDayID),
		ref.URL,
		ref.Title,
		ref.Description,
		boolToInt(ref.Milestone),
		ref.CreatedAt.Format(time.RFC3339),
		ref.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting reference: %w", err)
	}
	return r.replaceFiles(ctx, ref.ID, ref.Files)
}

func (r *SQLiteReferenceRepo) GetByID(ctx context.Context, id string) (*domain.Reference, error) {
	query := `SELECT ` + referenceColumns + ` FROM plan_references WHERE id = ?`
	ref, err := scanReference(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadFiles(ctx, ref); err != nil {
		return nil, err
	}
	return ref, nil
}

func (r *SQLiteReferenceRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Reference, error) {
	query := `SELECT ` + referenceColumns + ` FROM plan_references WHERE plan_id = ? ORDER BY created_at`
	return r.list(ctx, query, planID)
}

func (r *SQLiteReferenceRepo) ListByPhase(ctx context.Context, phaseID string) ([]*domain.Reference, error) {
	query := `SELECT ` + referenceColumns + ` FROM plan_references WHERE phase_id = ? ORDER BY created_at`
	return r.list(ctx, query, phaseID)
}

func (r *SQLiteReferenceRepo) Update(ctx context.Context, ref *domain.Reference) error {
	query := `UPDATE plan_references SET plan_id = ?, phase_id = ?, type = ?, date = ?,
		calendar_day_id = ?, url = ?, title = ?, description = ?, milestone = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		ref.PlanID,
		ref.PhaseID,
		string(ref.Type),
		nullableTimeToString(ref.Date, dateLayout),
		nullableStr(ref.CalendarDayID),
		ref.URL,
		ref.Title,
		ref.Description,
		boolToInt(ref.Milestone),
		ref.UpdatedAt.Format(time.RFC3339),
		ref.ID,
	)
	if err != nil {
		return fmt.Errorf("updating reference: %w", err)
	}
	return r.replaceFiles(ctx, ref.ID, ref.Files)
}

func (r *SQLiteReferenceRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM plan_references WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting reference: %w", err)
	}
	return nil
}

func (r *SQLiteReferenceRepo) list(ctx context.Context, query string, arg any) ([]*domain.Reference, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}
	defer rows.Close()

	var refs []*domain.Reference
	for rows.Next() {
		ref, err := scanReferenceFromRows(rows)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating references: %w", err)
	}
	for _, ref := range refs {
		if err := r.loadFiles(ctx, ref); err != nil {
			return nil, err
		}
	}
	return refs, nil
}

// replaceFiles rewrites the attachment list for a reference: delete then
// reinsert in order, so file positions stay dense.
func (r *SQLiteReferenceRepo) replaceFiles(ctx context.Context, refID string, files []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reference_files WHERE reference_id = ?`, refID); err != nil {
		return fmt.Errorf("clearing reference files: %w", err)
	}
	for i, f := range files {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO reference_files (reference_id, position, filename) VALUES (?, ?, ?)`,
			refID, i, f); err != nil {
			return fmt.Errorf("inserting reference file: %w", err)
		}
	}
	return nil
}

func (r *SQLiteReferenceRepo) loadFiles(ctx context.Context, ref *domain.Reference) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT filename FROM reference_files WHERE reference_id = ? ORDER BY position`, ref.ID)
	if err != nil {
		return fmt.Errorf("loading reference files: %w", err)
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return fmt.Errorf("scanning reference file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating reference files: %w", err)
	}
	ref.Files = files
	return nil
}

func scanReference(row *sql.Row) (*domain.Reference, error) {
	var ref domain.Reference
	var typeStr, createdAtStr, updatedAtStr string
	var dateStr, calDayID sql.NullString
	var milestoneInt int

	err := row.Scan(&ref.ID, &ref.PlanID, &ref.PhaseID, &typeStr, &dateStr, &calDayID,
		&ref.URL, &ref.Title, &ref.Description, &milestoneInt, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("reference: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning reference: %w", err)
	}
	return populateReference(&ref, typeStr, createdAtStr, updatedAtStr, dateStr, calDayID, milestoneInt)
}

func scanReferenceFromRows(rows *sql.Rows) (*domain.Reference, error) {
	var ref domain.Reference
	var typeStr, createdAtStr, updatedAtStr string
	var dateStr, calDayID sql.NullString
	var milestoneInt int

	err := rows.Scan(&ref.ID, &ref.PlanID, &ref.PhaseID, &typeStr, &dateStr, &calDayID,
		&ref.URL, &ref.Title, &ref.Description, &milestoneInt, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning reference row: %w", err)
	}
	return populateReference(&ref, typeStr, createdAtStr, updatedAtStr, dateStr, calDayID, milestoneInt)
}

func populateReference(ref *domain.Reference, typeStr, createdAtStr, updatedAtStr string, dateStr, calDayID sql.NullString, milestoneInt int) (*domain.Reference, error) {
	ref.Type = domain.ReferenceType(typeStr)
	ref.Milestone = intToBool(milestoneInt)
	ref.Date = parseNullableTime(dateStr, dateLayout)
	if calDayID.Valid {
		ref.CalendarDayID = &calDayID.String
	}

	var parseErr error
	ref.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	ref.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return ref, nil
}
