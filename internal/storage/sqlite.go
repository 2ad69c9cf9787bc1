//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}

// DefaultStoreKind is sqlite when the backend is compiled in.
func DefaultStoreKind() string {
	return "sqlite"
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run RunRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, problem, seed, population_size, generations, best_fitness, best_genotype)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			problem = excluded.problem,
			seed = excluded.seed,
			population_size = excluded.population_size,
			generations = excluded.generations,
			best_fitness = excluded.best_fitness,
			best_genotype = excluded.best_genotype
	`,
		run.ID,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.Problem,
		run.Seed,
		run.PopulationSize,
		run.Generations,
		run.BestFitness,
		run.BestGenotype,
	)
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (RunRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return RunRecord{}, false, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT id, created_at, problem, seed, population_size, generations, best_fitness, best_genotype
		FROM runs WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, false, nil
		}
		return RunRecord{}, false, err
	}
	return run, true, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, created_at, problem, seed, population_size, generations, best_fitness, best_genotype
		FROM runs ORDER BY created_at DESC
	`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) SaveFitnessHistory(ctx context.Context, runID string, history []float64) error {
	return s.savePayload(ctx, "fitness_history", runID, history)
}

func (s *SQLiteStore) GetFitnessHistory(ctx context.Context, runID string) ([]float64, bool, error) {
	var history []float64
	ok, err := s.getPayload(ctx, "fitness_history", runID, &history)
	return history, ok, err
}

func (s *SQLiteStore) SaveDiagnostics(ctx context.Context, runID string, diagnostics []GenerationDiagnostics) error {
	return s.savePayload(ctx, "diagnostics", runID, diagnostics)
}

func (s *SQLiteStore) GetDiagnostics(ctx context.Context, runID string) ([]GenerationDiagnostics, bool, error) {
	var diagnostics []GenerationDiagnostics
	ok, err := s.getPayload(ctx, "diagnostics", runID, &diagnostics)
	return diagnostics, ok, err
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func (s *SQLiteStore) savePayload(ctx context.Context, table, runID string, v any) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (run_id, payload)
		VALUES (?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			payload = excluded.payload
	`, table), runID, payload)
	return err
}

func (s *SQLiteStore) getPayload(ctx context.Context, table, runID string, out any) (bool, error) {
	db, err := s.getDB()
	if err != nil {
		return false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT payload FROM %s WHERE run_id = ?`, table), runID,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return false, fmt.Errorf("decode %s %s: %w", table, runID, err)
	}
	return true, nil
}

func scanRun(row interface{ Scan(...any) error }) (RunRecord, error) {
	var (
		run       RunRecord
		createdAt string
	)
	err := row.Scan(
		&run.ID,
		&createdAt,
		&run.Problem,
		&run.Seed,
		&run.PopulationSize,
		&run.Generations,
		&run.BestFitness,
		&run.BestGenotype,
	)
	if err != nil {
		return RunRecord{}, err
	}
	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return RunRecord{}, fmt.Errorf("parse created_at: %w", err)
	}
	return run, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			problem TEXT NOT NULL,
			seed INTEGER NOT NULL,
			population_size INTEGER NOT NULL,
			generations INTEGER NOT NULL,
			best_fitness REAL NOT NULL,
			best_genotype TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS fitness_history (
			run_id TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS diagnostics (
			run_id TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		);
	`)
	return err
}
