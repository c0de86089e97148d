package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/db"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
)

const rescheduleTypeColumns = `id, name, description, created_at, updated_at`

// SQLiteRescheduleTypeRepo implements RescheduleTypeRepo using a SQLite database.
type SQLiteRescheduleTypeRepo struct {
	db db.DBTX
}

// NewSQLiteRescheduleTypeRepo creates a new SQLiteRescheduleTypeRepo.
func NewSQLiteRescheduleTypeRepo(db db.DBTX) *SQLiteRescheduleTypeRepo {
	return &SQLiteRescheduleTypeRepo{db: db}
}

func (r *SQLiteRescheduleTypeRepo) Create(ctx context.Context, t *domain.RescheduleType) error {
	query := `INSERT INTO reschedule_types (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Description,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return &domain.ConflictError{Message: fmt.Sprintf("reschedule type %q already exists", t.Name)}
		}
		return fmt.Errorf("inserting reschedule type: %w", err)
	}
	return nil
}

func (r *SQLiteRescheduleTypeRepo) GetByID(ctx context.Context, id string) (*domain.RescheduleType, error) {
	query := `SELECT ` + rescheduleTypeColumns + ` FROM reschedule_types WHERE id = ?`
	return scanRescheduleType(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRescheduleTypeRepo) GetByName(ctx context.Context, name string) (*domain.RescheduleType, error) {
	query := `SELECT ` + rescheduleTypeColumns + ` FROM reschedule_types WHERE name = ? COLLATE NOCASE`
	return scanRescheduleType(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteRescheduleTypeRepo) List(ctx context.Context) ([]*domain.RescheduleType, error) {
	query := `SELECT ` + rescheduleTypeColumns + ` FROM reschedule_types ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing reschedule types: %w", err)
	}
	defer rows.Close()

	var types []*domain.RescheduleType
	for rows.Next() {
		var t domain.RescheduleType
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning reschedule type row: %w", err)
		}
		if err := populateRescheduleType(&t, createdAtStr, updatedAtStr); err != nil {
			return nil, err
		}
		types = append(types, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reschedule types: %w", err)
	}
	return types, nil
}

// Update changes the lookup label only; existing reschedule records keep
// pointing at the id and are never rewritten.
func (r *SQLiteRescheduleTypeRepo) Update(ctx context.Context, t *domain.RescheduleType) error {
	query := `UPDATE reschedule_types SET name = ?, description = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Description,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return &domain.ConflictError{Message: fmt.Sprintf("reschedule type %q already exists", t.Name)}
		}
		return fmt.Errorf("updating reschedule type: %w", err)
	}
	return nil
}

func (r *SQLiteRescheduleTypeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reschedule_types WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting reschedule type: %w", err)
	}
	return nil
}

func scanRescheduleType(row *sql.Row) (*domain.RescheduleType, error) {
	var t domain.RescheduleType
	var createdAtStr, updatedAtStr string

	err := row.Scan(&t.ID, &t.Name, &t.Description, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("reschedule type: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning reschedule type: %w", err)
	}
	if err := populateRescheduleType(&t, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &t, nil
}

func populateRescheduleType(t *domain.RescheduleType, createdAtStr, updatedAtStr string) error {
	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return nil
}
