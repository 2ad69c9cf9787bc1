// Package panmixia is the public face of the evolution engine: it wires
// problems, selectors and alterers into an engine, runs the stream, and
// archives the results.
package panmixia

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"panmixia/internal/evo"
	"panmixia/internal/model"
	"panmixia/internal/seq"
	"panmixia/internal/stats"
	"panmixia/internal/storage"
)

const defaultDBPath = "panmixia.db"

type Options struct {
	StoreKind string
	DBPath    string
	Logger    *slog.Logger
}

type Client struct {
	store  storage.Store
	logger *slog.Logger
}

type RunRequest struct {
	Problem           string
	Bits              int
	Dimension         int
	Population        int
	Generations       int
	Seed              int64
	Workers           int
	Selection         string
	OffspringFraction float64
	MutationRate      float64
	CrossoverRate     float64
	MaxPhenotypeAge   int
}

type RunSummary struct {
	RunID            string
	Problem          string
	Generations      int
	BestFitness      float64
	BestGenotype     string
	BestByGeneration []float64
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID        string
	CreatedAtUTC string
	Problem      string
	Seed         int64
	Population   int
	Generations  int
	BestFitness  float64
}

type FitnessHistoryRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

type DiagnosticsRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{store: store, logger: logger}, nil
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Problem == "" {
		req.Problem = "ones"
	}
	if req.Bits <= 0 {
		req.Bits = 16
	}
	if req.Dimension <= 0 {
		req.Dimension = 8
	}
	if req.Population <= 0 {
		req.Population = 50
	}
	if req.Generations <= 0 {
		req.Generations = 100
	}
	if req.Workers <= 0 {
		req.Workers = 4
	}
	if req.Selection == "" {
		req.Selection = "tournament"
	}
	if req.MutationRate == 0 {
		req.MutationRate = 0.03
	}
	if req.CrossoverRate == 0 {
		req.CrossoverRate = 0.3
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}
	if req.MutationRate < 0 || req.MutationRate > 1 {
		return RunSummary{}, fmt.Errorf("mutation rate %v outside [0, 1]", req.MutationRate)
	}
	if req.CrossoverRate < 0 || req.CrossoverRate > 1 {
		return RunSummary{}, fmt.Errorf("crossover rate %v outside [0, 1]", req.CrossoverRate)
	}

	runID := uuid.NewString()
	now := time.Now().UTC()
	c.logger.Info("starting evolution run",
		"run_id", runID,
		"problem", req.Problem,
		"population", req.Population,
		"generations", req.Generations,
		"seed", req.Seed,
	)

	var (
		outcome runOutcome
		err     error
	)
	switch req.Problem {
	case "ones":
		outcome, err = runOnes(ctx, req)
	case "sphere":
		outcome, err = runSphere(ctx, req)
	default:
		return RunSummary{}, fmt.Errorf("unsupported problem: %s", req.Problem)
	}
	if err != nil {
		return RunSummary{}, err
	}

	record := storage.RunRecord{
		ID:             runID,
		CreatedAt:      now,
		Problem:        req.Problem,
		Seed:           req.Seed,
		PopulationSize: req.Population,
		Generations:    req.Generations,
		BestFitness:    outcome.bestFitness,
		BestGenotype:   outcome.bestGenotype,
	}
	if err := c.store.SaveRun(ctx, record); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveFitnessHistory(ctx, runID, outcome.history); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveDiagnostics(ctx, runID, outcome.diagnostics); err != nil {
		return RunSummary{}, err
	}

	c.logger.Info("evolution run finished",
		"run_id", runID,
		"best_fitness", outcome.bestFitness,
	)
	return RunSummary{
		RunID:            runID,
		Problem:          req.Problem,
		Generations:      req.Generations,
		BestFitness:      outcome.bestFitness,
		BestGenotype:     outcome.bestGenotype,
		BestByGeneration: outcome.history,
	}, nil
}

func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	records, err := c.store.ListRuns(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	out := make([]RunItem, 0, len(records))
	for _, r := range records {
		out = append(out, RunItem{
			RunID:        r.ID,
			CreatedAtUTC: r.CreatedAt.UTC().Format(time.RFC3339),
			Problem:      r.Problem,
			Seed:         r.Seed,
			Population:   r.PopulationSize,
			Generations:  r.Generations,
			BestFitness:  r.BestFitness,
		})
	}
	return out, nil
}

func (c *Client) FitnessHistory(ctx context.Context, req FitnessHistoryRequest) ([]float64, error) {
	runID, err := c.resolveRunID(ctx, req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}

	history, ok, err := c.store.GetFitnessHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("fitness history not found for run id: %s", runID)
	}
	if req.Limit > 0 && len(history) > req.Limit {
		history = history[:req.Limit]
	}
	return history, nil
}

func (c *Client) Diagnostics(ctx context.Context, req DiagnosticsRequest) ([]storage.GenerationDiagnostics, error) {
	runID, err := c.resolveRunID(ctx, req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}

	diagnostics, ok, err := c.store.GetDiagnostics(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("diagnostics not found for run id: %s", runID)
	}
	if req.Limit > 0 && len(diagnostics) > req.Limit {
		diagnostics = diagnostics[:req.Limit]
	}
	return diagnostics, nil
}

func (c *Client) resolveRunID(ctx context.Context, runID string, latest bool) (string, error) {
	if runID != "" && latest {
		return "", errors.New("use either run id or latest")
	}
	if runID != "" {
		return runID, nil
	}
	if !latest {
		return "", errors.New("run id or latest is required")
	}

	records, err := c.store.ListRuns(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", errors.New("no runs available")
	}
	return records[0].ID, nil
}

type runOutcome struct {
	bestFitness  float64
	bestGenotype string
	history      []float64
	diagnostics  []storage.GenerationDiagnostics
}

func runOnes(ctx context.Context, req RunRequest) (runOutcome, error) {
	rng := rand.New(rand.NewSource(req.Seed))
	bits := req.Bits

	mutator, err := evo.NewMutator(req.MutationRate, func(_ *rand.Rand, g bool) bool {
		return !g
	})
	if err != nil {
		return runOutcome{}, err
	}
	crossover, err := evo.NewSinglePointCrossover[bool](req.CrossoverRate)
	if err != nil {
		return runOutcome{}, err
	}
	offspringSelector, err := selectorFromName[bool](req.Selection)
	if err != nil {
		return runOutcome{}, err
	}

	cfg := evo.Config[bool]{
		Fitness: func(g model.Genotype[bool]) float64 {
			ones := 0
			for b := range g.Chromosome(0).Genes().Values() {
				if b {
					ones++
				}
			}
			return float64(ones)
		},
		Factory: func(rng *rand.Rand) model.Genotype[bool] {
			genes := seq.Generate(bits, func(int) bool {
				return rng.Intn(2) == 1
			})
			return model.NewGenotype(model.NewChromosome(genes))
		},
		PopulationSize:    req.Population,
		OffspringFraction: req.OffspringFraction,
		OffspringSelector: offspringSelector,
		Alterers:          []evo.Alterer[bool]{crossover, mutator},
		MaxPhenotypeAge:   req.MaxPhenotypeAge,
		Workers:           req.Workers,
		Rand:              rng,
	}
	return runEvolution(ctx, cfg, req.Generations)
}

const sphereBound = 5.12

func runSphere(ctx context.Context, req RunRequest) (runOutcome, error) {
	rng := rand.New(rand.NewSource(req.Seed))
	dim := req.Dimension

	mutator, err := evo.NewMutator(req.MutationRate, func(rng *rand.Rand, g float64) float64 {
		g += rng.NormFloat64() * 0.1
		if g > sphereBound {
			g = sphereBound
		}
		if g < -sphereBound {
			g = -sphereBound
		}
		return g
	})
	if err != nil {
		return runOutcome{}, err
	}
	crossover, err := evo.NewSinglePointCrossover[float64](req.CrossoverRate)
	if err != nil {
		return runOutcome{}, err
	}
	offspringSelector, err := selectorFromName[float64](req.Selection)
	if err != nil {
		return runOutcome{}, err
	}

	cfg := evo.Config[float64]{
		Fitness: func(g model.Genotype[float64]) float64 {
			sum := 0.0
			for x := range g.Chromosome(0).Genes().Values() {
				sum += x * x
			}
			return sum
		},
		Validity: func(g model.Genotype[float64]) bool {
			for x := range g.Chromosome(0).Genes().Values() {
				if x > sphereBound || x < -sphereBound {
					return false
				}
			}
			return true
		},
		Factory: func(rng *rand.Rand) model.Genotype[float64] {
			genes := seq.Generate(dim, func(int) float64 {
				return (rng.Float64()*2 - 1) * sphereBound
			})
			return model.NewGenotype(model.NewChromosome(genes))
		},
		PopulationSize:    req.Population,
		OffspringFraction: req.OffspringFraction,
		OffspringSelector: offspringSelector,
		Alterers:          []evo.Alterer[float64]{crossover, mutator},
		MaxPhenotypeAge:   req.MaxPhenotypeAge,
		Minimize:          true,
		Workers:           req.Workers,
		Rand:              rng,
	}
	return runEvolution(ctx, cfg, req.Generations)
}

// runEvolution drives the stream for the requested number of generations
// and folds each emitted result into the run archive shape.
func runEvolution[G any](ctx context.Context, cfg evo.Config[G], generations int) (runOutcome, error) {
	engine, err := evo.New(cfg)
	if err != nil {
		return runOutcome{}, err
	}

	results, err := engine.Stream().Run(ctx, evo.ByGeneration[G](generations))
	if err != nil {
		return runOutcome{}, err
	}
	if len(results) == 0 {
		return runOutcome{}, errors.New("evolution emitted no generations")
	}

	observed := stats.MinMaxOf[float64]()
	outcome := runOutcome{
		history:     make([]float64, 0, len(results)),
		diagnostics: make([]storage.GenerationDiagnostics, 0, len(results)),
	}
	for _, result := range results {
		best, ok := result.BestFitness()
		if !ok {
			return runOutcome{}, fmt.Errorf("generation %d produced no best phenotype", result.Generation)
		}
		observed.Observe(best)
		outcome.history = append(outcome.history, best)
		outcome.diagnostics = append(outcome.diagnostics, storage.GenerationDiagnostics{
			Generation:     result.Generation,
			BestFitness:    best,
			Fitness:        stats.Summarize(populationFitness(result.Population)),
			InvalidCount:   result.InvalidCount,
			AlterCount:     result.AlterCount,
			KillCount:      result.KillCount,
			DurationMillis: result.Duration.Milliseconds(),
		})
	}

	final := results[len(results)-1]
	best, _ := final.BestFitness()
	outcome.bestFitness = best
	outcome.bestGenotype, err = encodeBest(final.Best)
	if err != nil {
		return runOutcome{}, err
	}

	// The stream's running best must cover every observed generation best.
	if cfg.Minimize {
		if m, ok := observed.Min(); ok && best > m {
			return runOutcome{}, fmt.Errorf("final best %v worse than observed %v", best, m)
		}
	} else if m, ok := observed.Max(); ok && best < m {
		return runOutcome{}, fmt.Errorf("final best %v worse than observed %v", best, m)
	}
	return outcome, nil
}

func populationFitness[G any](pop model.Population[G]) []float64 {
	values := make([]float64, 0, pop.Len())
	for p := range pop.Values() {
		if f, ok := p.Fitness(); ok {
			values = append(values, f)
		}
	}
	return values
}

func encodeBest[G any](best *model.Phenotype[G]) (string, error) {
	if best == nil {
		return "", errors.New("run produced no best phenotype")
	}
	return storage.EncodeGenotype(best.Genotype().Chromosome(0).Genes().Slice())
}

func selectorFromName[G any](name string) (evo.Selector[G], error) {
	switch name {
	case "tournament":
		return evo.TournamentSelector[G]{}, nil
	case "sus":
		return evo.StochasticUniversalSelector[G]{}, nil
	case "truncation":
		return evo.TruncationSelector[G]{}, nil
	case "gated":
		// Mostly fitness-proportional with an occasional tournament draw to
		// keep selection pressure up on flat fitness landscapes.
		gates, err := evo.NewDispatch(evo.Gate[G]{
			Threshold: 0.7,
			Selector:  evo.StochasticUniversalSelector[G]{},
		})
		if err != nil {
			return nil, err
		}
		return evo.GatedSelector[G]{Gates: gates, Fallback: evo.TournamentSelector[G]{}}, nil
	default:
		return nil, fmt.Errorf("unsupported selection strategy: %s", name)
	}
}
