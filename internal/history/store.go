// Package history persists back-test run summaries to an embedded SQLite
// database so threshold and model changes can be compared across runs.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/couchcryptid/flood-signal-etl/internal/evaluate"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	ran_at              TIMESTAMP NOT NULL,
	input_path          TEXT NOT NULL,
	rows                INTEGER NOT NULL,
	smape_a             REAL NOT NULL,
	smape_b             REAL NOT NULL,
	smape_ensemble      REAL NOT NULL,
	rmse_a              REAL NOT NULL,
	rmse_b              REAL NOT NULL,
	rmse_ensemble       REAL NOT NULL,
	mae_a               REAL NOT NULL,
	mae_b               REAL NOT NULL,
	mae_ensemble        REAL NOT NULL,
	chose_a             INTEGER NOT NULL,
	chose_b             INTEGER NOT NULL,
	under_preds_avoided INTEGER NOT NULL
);`

// Run is one persisted back-test summary.
type Run struct {
	ID        int64
	RanAt     time.Time
	InputPath string
	Summary   evaluate.Summary
}

// Store wraps the SQLite run-history database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at path and applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	// busy_timeout keeps concurrent dev use from hitting "database is locked".
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts one back-test summary.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			ran_at, input_path, rows,
			smape_a, smape_b, smape_ensemble,
			rmse_a, rmse_b, rmse_ensemble,
			mae_a, mae_b, mae_ensemble,
			chose_a, chose_b, under_preds_avoided
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RanAt, run.InputPath, run.Summary.Rows,
		run.Summary.ModelA.SMAPE, run.Summary.ModelB.SMAPE, run.Summary.Ensemble.SMAPE,
		run.Summary.ModelA.RMSE, run.Summary.ModelB.RMSE, run.Summary.Ensemble.RMSE,
		run.Summary.ModelA.MAE, run.Summary.ModelB.MAE, run.Summary.Ensemble.MAE,
		run.Summary.ChoseA, run.Summary.ChoseB, run.Summary.UnderPredictionsAvoided,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ran_at, input_path, rows,
			smape_a, smape_b, smape_ensemble,
			rmse_a, rmse_b, rmse_ensemble,
			mae_a, mae_b, mae_ensemble,
			chose_a, chose_b, under_preds_avoided
		FROM runs ORDER BY ran_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.ID, &r.RanAt, &r.InputPath, &r.Summary.Rows,
			&r.Summary.ModelA.SMAPE, &r.Summary.ModelB.SMAPE, &r.Summary.Ensemble.SMAPE,
			&r.Summary.ModelA.RMSE, &r.Summary.ModelB.RMSE, &r.Summary.Ensemble.RMSE,
			&r.Summary.ModelA.MAE, &r.Summary.ModelB.MAE, &r.Summary.Ensemble.MAE,
			&r.Summary.ChoseA, &r.Summary.ChoseB, &r.Summary.UnderPredictionsAvoided,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
