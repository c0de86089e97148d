package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/db"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/domain"
)

// planColumns is the canonical SELECT column list for plans.
const planColumns = `id, name, owner, status, start_date, end_date, created_at, updated_at`

// SQLitePlanRepo implements PlanRepo using a SQLite database.
// It accepts a db.DBTX so the same implementation serves both standalone
// and transaction-scoped access.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(db db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: db}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	query := `INSERT INTO plans (id, name, owner, status, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Owner,
		string(p.Status),
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanPlan(row)
}

func (r *SQLitePlanRepo) List(ctx context.Context) ([]*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		p, err := scanPlanFromRows(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.Plan) error {
	query := `UPDATE plans SET name = ?, owner = ?, status = ?, start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Owner,
		string(p.Status),
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM plans WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return nil
}

// scanPlan scans a single plan row from a *sql.Row.
func scanPlan(row *sql.Row) (*domain.Plan, error) {
	var p domain.Plan
	var statusStr, startDateStr, endDateStr, createdAtStr, updatedAtStr string

	err := row.Scan(&p.ID, &p.Name, &p.Owner, &statusStr, &startDateStr, &endDateStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	return populatePlan(&p, statusStr, startDateStr, endDateStr, createdAtStr, updatedAtStr)
}

func scanPlanFromRows(rows *sql.Rows) (*domain.Plan, error) {
	var p domain.Plan
	var statusStr, startDateStr, endDateStr, createdAtStr, updatedAtStr string

	err := rows.Scan(&p.ID, &p.Name, &p.Owner, &statusStr, &startDateStr, &endDateStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning plan row: %w", err)
	}
	return populatePlan(&p, statusStr, startDateStr, endDateStr, createdAtStr, updatedAtStr)
}

func populatePlan(p *domain.Plan, statusStr, startDateStr, endDateStr, createdAtStr, updatedAtStr string) (*domain.Plan, error) {
	p.Status = domain.PlanStatus(statusStr)

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
