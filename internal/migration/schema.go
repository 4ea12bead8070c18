package migration

import (
	"context"
	"database/sql"
	"fmt"
)

// statements create the run-history tables. Each is idempotent.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS pmtest_runs (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		base_url VARCHAR(255) NOT NULL,
		driver VARCHAR(32) NOT NULL,
		total INT NOT NULL,
		passed INT NOT NULL,
		failed INT NOT NULL,
		success_rate DOUBLE NOT NULL,
		duration_seconds DOUBLE NOT NULL,
		report_path VARCHAR(512) NOT NULL DEFAULT '',
		created_at DATETIME(6) NOT NULL,
		INDEX idx_pmtest_runs_created_at (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS pmtest_cases (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		run_id VARCHAR(36) NOT NULL,
		position INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		outcome VARCHAR(8) NOT NULL,
		started_at DATETIME(6) NOT NULL,
		ended_at DATETIME(6) NULL,
		duration_seconds DOUBLE NULL,
		CONSTRAINT fk_pmtest_cases_run FOREIGN KEY (run_id) REFERENCES pmtest_runs (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS pmtest_steps (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		case_id BIGINT NOT NULL,
		position INT NOT NULL,
		description TEXT NOT NULL,
		artifact_path VARCHAR(512) NOT NULL DEFAULT '',
		outcome VARCHAR(8) NOT NULL,
		recorded_at DATETIME(6) NOT NULL,
		CONSTRAINT fk_pmtest_steps_case FOREIGN KEY (case_id) REFERENCES pmtest_cases (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// SchemaMigrator creates the history tables in an open database
type SchemaMigrator struct {
	db *sql.DB
}

// NewSchemaMigrator creates a new SchemaMigrator
func NewSchemaMigrator(db *sql.DB) *SchemaMigrator {
	return &SchemaMigrator{db: db}
}

var _ Migrator = (*SchemaMigrator)(nil)

// Run applies every statement in order
func (m *SchemaMigrator) Run(ctx context.Context) error {
	for i, stmt := range statements {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}

// Steps returns how many statements Run applies
func (m *SchemaMigrator) Steps() int {
	return len(statements)
}
