package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/db"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
)

// phaseColumns is the canonical SELECT column list for phases.
const phaseColumns = `id, plan_id, name, color, is_default, position,
		start_date, end_date, created_at, updated_at`

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

// NewSQLitePhaseRepo creates a new SQLitePhaseRepo.
func NewSQLitePhaseRepo(db db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: db}
}

func (r *SQLitePhaseRepo) Create(ctx context.Context, p *domain.Phase) error {
	query := `INSERT INTO phases (id, plan_id, name, color, is_default, position,
		start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.PlanID,
		p.Name,
		p.Color,
		boolToInt(p.IsDefault),
		p.Position,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanPhase(row)
}

func (r *SQLitePhaseRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE plan_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing phases by plan: %w", err)
	}
	defer rows.Close()
	return scanPhases(rows)
}

// MaxPosition returns the highest ordinal in use for a plan, or 0 when the
// plan has no phases.
func (r *SQLitePhaseRepo) MaxPosition(ctx context.Context, planID string) (int, error) {
	var max int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) FROM phases WHERE plan_id = ?`, planID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("computing max phase position: %w", err)
	}
	return max, nil
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, p *domain.Phase) error {
	query := `UPDATE phases SET plan_id = ?, name = ?, color = ?, is_default = ?,
		position = ?, start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.PlanID,
		p.Name,
		p.Color,
		boolToInt(p.IsDefault),
		p.Position,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM phases WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return nil
}

func scanPhase(row *sql.Row) (*domain.Phase, error) {
	var p domain.Phase
	var startDateStr, endDateStr, createdAtStr, updatedAtStr string
	var isDefaultInt int

	err := row.Scan(&p.ID, &p.PlanID, &p.Name, &p.Color, &isDefaultInt, &p.Position,
		&startDateStr, &endDateStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("phase: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning phase: %w", err)
	}
	p.IsDefault = intToBool(isDefaultInt)
	return populatePhase(&p, startDateStr, endDateStr, createdAtStr, updatedAtStr)
}

func scanPhases(rows *sql.Rows) ([]*domain.Phase, error) {
	var phases []*domain.Phase
	for rows.Next() {
		var p domain.Phase
		var startDateStr, endDateStr, createdAtStr, updatedAtStr string
		var isDefaultInt int

		err := rows.Scan(&p.ID, &p.PlanID, &p.Name, &p.Color, &isDefaultInt, &p.Position,
			&startDateStr, &endDateStr, &createdAtStr, &updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning phase row: %w", err)
		}
		p.IsDefault = intToBool(isDefaultInt)
		phase, err := populatePhase(&p, startDateStr, endDateStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		phases = append(phases, phase)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

func populatePhase(p *domain.Phase, startDateStr, endDateStr, createdAtStr, updatedAtStr string) (*domain.Phase, error) {
	var parseErr error
	p.StartDate, parseErr = time.Parse(dateLayout, startDateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	p.EndDate, parseErr = time.Parse(dateLayout, endDateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing end_date: %w", parseErr)
	}
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return p, nil
}
