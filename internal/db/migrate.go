package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'planned'
		           CHECK(status IN ('planned','in_progress','done','paused')),
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id         TEXT PRIMARY KEY,
		plan_id    TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		color      TEXT NOT NULL DEFAULT '#83a598',
		is_default INTEGER NOT NULL DEFAULT 0,
		position   INTEGER NOT NULL DEFAULT 0,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phases_plan ON phases(plan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_phases_position ON phases(plan_id, position)`,

	`CREATE TABLE IF NOT EXISTS reschedule_types (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_reschedule_types_name ON reschedule_types(name)`,

	`CREATE TABLE IF NOT EXISTS phase_reschedules (
		id                  TEXT PRIMARY KEY,
		phase_id            TEXT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
		rescheduled_at      TEXT NOT NULL,
		original_start_date TEXT NOT NULL,
		original_end_date   TEXT NOT NULL,
		new_start_date      TEXT NOT NULL,
		new_end_date        TEXT NOT NULL,
		reschedule_type_id  TEXT NOT NULL REFERENCES reschedule_types(id),
		owner_id            TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phase_reschedules_phase ON phase_reschedules(phase_id)`,
	`CREATE INDEX IF NOT EXISTS idx_phase_reschedules_at ON phase_reschedules(rescheduled_at)`,

	`CREATE TABLE IF NOT EXISTS plan_references (
		id              TEXT PRIMARY KEY,
		plan_id         TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		phase_id        TEXT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
		type            TEXT NOT NULL
		                CHECK(type IN ('note','document','link')),
		date            TEXT,
		calendar_day_id TEXT,
		url             TEXT NOT NULL DEFAULT '',
		title           TEXT NOT NULL DEFAULT '',
		description     TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_references_plan ON plan_references(plan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_references_cell ON plan_references(phase_id, date)`,

	`CREATE TABLE IF NOT EXISTS reference_files (
		reference_id TEXT NOT NULL REFERENCES plan_references(id) ON DELETE CASCADE,
		position     INTEGER NOT NULL,
		filename     TEXT NOT NULL,
		PRIMARY KEY (reference_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS calendars (
		id         TEXT PRIMARY KEY,
		country_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_calendars_country ON calendars(country_id)`,

	`CREATE TABLE IF NOT EXISTS calendar_days (
		id          TEXT PRIMARY KEY,
		calendar_id TEXT NOT NULL REFERENCES calendars(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		date        TEXT NOT NULL,
		type        TEXT NOT NULL DEFAULT 'holiday'
		            CHECK(type IN ('holiday','special')),
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_calendar_days_calendar ON calendar_days(calendar_id)`,
	`CREATE INDEX IF NOT EXISTS idx_calendar_days_date ON calendar_days(date)`,

	// Add owner to plans
	`ALTER TABLE plans ADD COLUMN owner TEXT NOT NULL DEFAULT ''`,

	// Add milestone flag to references
	`ALTER TABLE plan_references ADD COLUMN milestone INTEGER NOT NULL DEFAULT 0`,

	// Add recurring flag to calendar days
	`ALTER TABLE calendar_days ADD COLUMN recurring INTEGER NOT NULL DEFAULT 0`,
}
