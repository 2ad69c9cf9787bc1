// Package storage persists evolution runs: the run record itself, the
// per-generation best-fitness history, and per-generation diagnostics.
package storage

import (
	"context"
	"time"

	"panmixia/internal/stats"
)

// RunRecord summarizes one finished evolution run.
type RunRecord struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Problem        string    `json:"problem"`
	Seed           int64     `json:"seed"`
	PopulationSize int       `json:"population_size"`
	Generations    int       `json:"generations"`
	BestFitness    float64   `json:"best_fitness"`

	// BestGenotype is the JSON encoding of the run's best genotype,
	// produced by the problem's codec.
	BestGenotype string `json:"best_genotype,omitempty"`
}

// GenerationDiagnostics captures the observable counts and fitness shape
// of one generation.
type GenerationDiagnostics struct {
	Generation     int           `json:"generation"`
	BestFitness    float64       `json:"best_fitness"`
	Fitness        stats.Summary `json:"fitness"`
	InvalidCount   int           `json:"invalid_count"`
	AlterCount     int           `json:"alter_count"`
	KillCount      int           `json:"kill_count"`
	DurationMillis int64         `json:"duration_millis"`
}

// Store defines the persistence operations for run archives.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, bool, error)
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	SaveFitnessHistory(ctx context.Context, runID string, history []float64) error
	GetFitnessHistory(ctx context.Context, runID string) ([]float64, bool, error)
	SaveDiagnostics(ctx context.Context, runID string, diagnostics []GenerationDiagnostics) error
	GetDiagnostics(ctx context.Context, runID string) ([]GenerationDiagnostics, bool, error)
}
