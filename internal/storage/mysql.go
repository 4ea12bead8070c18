package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pmtest/internal/domain"
)

// MySQLHistory archives runs into the tables created by `pmtest migrate`.
type MySQLHistory struct {
	db *sql.DB
}

// NewMySQLHistory wraps an open history database.
func NewMySQLHistory(db *sql.DB) *MySQLHistory {
	return &MySQLHistory{db: db}
}

var _ History = (*MySQLHistory)(nil)

const (
	insertRun = `INSERT INTO pmtest_runs
		(id, base_url, driver, total, passed, failed, success_rate, duration_seconds, report_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	insertCase = `INSERT INTO pmtest_cases
		(run_id, position, name, outcome, started_at, ended_at, duration_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	insertStep = `INSERT INTO pmtest_steps
		(case_id, position, description, artifact_path, outcome, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	selectRecent = `SELECT id, base_url, driver, total, passed, failed, success_rate, duration_seconds, report_path, created_at
		FROM pmtest_runs ORDER BY created_at DESC LIMIT ?`
)

// Archive stores a run with all its cases and steps in one transaction.
func (h *MySQLHistory) Archive(ctx context.Context, results *domain.RunResults) error {
	created, err := time.Parse(time.RFC3339, results.Meta.Timestamp)
	if err != nil {
		return fmt.Errorf("parse run timestamp: %w", err)
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	m := results.Meta
	_, err = tx.ExecContext(ctx, insertRun,
		m.RunID, m.BaseURL, m.Driver, m.Total, m.Passed, m.Failed, m.SuccessRate, m.DurationSeconds, m.ReportPath, created)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", m.RunID, err)
	}

	for i, c := range results.Cases {
		res, err := tx.ExecContext(ctx, insertCase,
			m.RunID, i, c.Name, string(c.Outcome), c.StartedAt, c.EndedAt, c.DurationSeconds)
		if err != nil {
			return fmt.Errorf("insert case %q: %w", c.Name, err)
		}
		caseID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("case id for %q: %w", c.Name, err)
		}
		for j, s := range c.Steps {
			_, err := tx.ExecContext(ctx, insertStep,
				caseID, j, s.Description, s.ArtifactPath, string(s.Outcome), s.Timestamp)
			if err != nil {
				return fmt.Errorf("insert step %d of %q: %w", j, c.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive: %w", err)
	}
	return nil
}

// Recent returns up to limit archived runs, newest first.
func (h *MySQLHistory) Recent(ctx context.Context, limit int) ([]domain.RunMeta, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := h.db.QueryContext(ctx, selectRecent, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunMeta
	for rows.Next() {
		var m domain.RunMeta
		var created time.Time
		err := rows.Scan(&m.RunID, &m.BaseURL, &m.Driver, &m.Total, &m.Passed, &m.Failed,
			&m.SuccessRate, &m.DurationSeconds, &m.ReportPath, &created)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		m.Timestamp = created.Format(time.RFC3339)
		runs = append(runs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return runs, nil
}
