package trainer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"evosim/internal/config"
	"evosim/internal/eval"
	"evosim/internal/ga"
	"evosim/internal/logging"
	"evosim/internal/nn"
	"evosim/internal/rng"
	"evosim/internal/sim"
	"evosim/internal/storage"
)

// ErrRunMismatch is returned when resuming a run whose stored settings differ
// from the current config.
var ErrRunMismatch = errors.New("stored run does not match config")

// NewAlgorithm builds the genetic algorithm described by cfg.
func NewAlgorithm(cfg config.GAConfig) (*ga.GeneticAlgorithm[*sim.Agent], error) {
	var selection ga.SelectionMethod
	switch cfg.Selection {
	case "roulette":
		selection = ga.NewRouletteWheelSelection()
	case "tournament":
		selection = ga.NewTournamentSelection(cfg.TournamentK)
	default:
		return nil, fmt.Errorf("unknown selection method %q", cfg.Selection)
	}

	var crossover ga.CrossoverMethod
	switch cfg.Crossover {
	case "uniform":
		crossover = ga.NewUniformCrossover()
	case "single_point":
		crossover = ga.NewSinglePointCrossover()
	default:
		return nil, fmt.Errorf("unknown crossover method %q", cfg.Crossover)
	}

	mutation, err := ga.NewUniformMutation(cfg.MutationChance, cfg.MutationCoeff)
	if err != nil {
		return nil, err
	}
	return ga.New[*sim.Agent](selection, crossover, mutation), nil
}

// Champion is the best agent seen so far in a run.
type Champion struct {
	Generation int
	Fitness    float64
	Chromosome ga.Chromosome
}

// Trainer runs the evaluate/record/evolve loop for one run.
type Trainer struct {
	cfg       *config.Config
	log       *zap.Logger
	runID     string
	topology  []nn.LayerTopology
	evaluator *eval.Evaluator
	builder   *sim.Builder
	alg       *ga.GeneticAlgorithm[*sim.Agent]
	store     storage.Store
	metrics   *logging.MetricsWriter
	src       *rng.Rand

	pop      *sim.Population
	champion *Champion
}

// Options carries the collaborators a Trainer does not own.
type Options struct {
	RunID   string
	Store   storage.Store
	Metrics *logging.MetricsWriter // optional
	Logger  *zap.Logger
}

// New prepares generation zero, or restores the latest checkpoint of
// opts.RunID when the store has one.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Trainer, error) {
	task, err := eval.LookupTask(cfg.Eval.Task)
	if err != nil {
		return nil, err
	}
	alg, err := NewAlgorithm(cfg.GA)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	runID := opts.RunID
	if runID == "" {
		runID = storage.NewRunID()
	}

	evaluator := eval.NewEvaluator(task, cfg.Eval.Workers)
	t := &Trainer{
		cfg:       cfg,
		log:       log.With(zap.String("run", runID)),
		runID:     runID,
		topology:  evaluator.Topology(cfg.NN.Hidden),
		evaluator: evaluator,
		alg:       alg,
		store:     opts.Store,
		metrics:   opts.Metrics,
		src:       rng.New(cfg.Seed),
	}
	t.builder = sim.NewBuilder(t.topology)

	if err := t.restoreOrCreate(ctx, task.Name); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Trainer) restoreOrCreate(ctx context.Context, task string) error {
	if t.store != nil {
		latest, ok, err := t.store.LatestGeneration(ctx, t.runID)
		if err != nil {
			return fmt.Errorf("load checkpoint: %w", err)
		}
		if ok {
			if err := t.checkRun(ctx, task); err != nil {
				return err
			}
			// The original stream position is not stored, so a resumed run
			// continues on a stream derived from the seed and generation.
			t.src = rng.New(t.cfg.Seed + int64(latest.Generation))
			pop, err := sim.FromChromosomes(t.builder, latest.Generation, latest.Chromosomes(), t.src)
			if err != nil {
				return fmt.Errorf("restore generation %d: %w", latest.Generation, err)
			}
			t.pop = pop
			t.champion = championOf(latest)
			t.log.Info("resumed from checkpoint", zap.Int("generation", latest.Generation))
			return nil
		}
		run := storage.NewRunRecord(t.runID, task, t.cfg.Seed, t.topology)
		if err := t.store.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
	}

	pop, err := sim.NewPopulation(t.builder, t.cfg.GA.Population, t.src.Fork())
	if err != nil {
		return err
	}
	t.pop = pop
	return nil
}

// checkRun compares the stored run record, if any, with the current config.
func (t *Trainer) checkRun(ctx context.Context, task string) error {
	run, ok, err := t.store.GetRun(ctx, t.runID)
	if err != nil {
		return fmt.Errorf("load run: %w", err)
	}
	if !ok {
		return nil
	}
	if run.Task != task {
		return fmt.Errorf("%w: task %q, config has %q", ErrRunMismatch, run.Task, task)
	}
	if !slices.Equal(run.Topology, t.topology) {
		return fmt.Errorf("%w: topology %v, config has %v", ErrRunMismatch, run.Topology, t.topology)
	}
	return nil
}

// championOf picks the fittest genome of a checkpoint.
func championOf(rec storage.GenerationRecord) *Champion {
	var c *Champion
	for _, g := range rec.Genomes {
		if c == nil || g.Fitness > c.Fitness {
			c = &Champion{Generation: rec.Generation, Fitness: g.Fitness, Chromosome: g.Chromosome}
		}
	}
	return c
}

func (t *Trainer) RunID() string                { return t.runID }
func (t *Trainer) Population() *sim.Population  { return t.pop }
func (t *Trainer) Topology() []nn.LayerTopology { return t.topology }
func (t *Trainer) Evaluator() *eval.Evaluator   { return t.evaluator }
func (t *Trainer) Champion() *Champion          { return t.champion }

// Step evaluates the current generation, records it and breeds the next.
func (t *Trainer) Step(ctx context.Context) (ga.Statistics, error) {
	gen := t.pop.Generation

	// 1. Evaluate
	if err := t.evaluator.EvaluatePopulation(ctx, t.pop); err != nil {
		return ga.Statistics{}, fmt.Errorf("generation %d: evaluate: %w", gen, err)
	}

	// 2. Track champion
	top := t.pop.TopK(max(1, t.cfg.Logging.TopNDebug))
	for i, a := range top {
		t.log.Debug("top agent", zap.Int("gen", gen), zap.Int("rank", i+1), zap.Float64("fitness", a.Score))
	}
	best := top[0]
	if t.champion == nil || best.Score > t.champion.Fitness {
		t.champion = &Champion{Generation: gen, Fitness: best.Score, Chromosome: best.Chromosome()}
	}

	// 3. Checkpoint
	if t.store != nil && t.cfg.Storage.CheckpointEvery > 0 && gen%t.cfg.Storage.CheckpointEvery == 0 {
		rec := storage.NewGenerationRecord(t.runID, gen, t.pop.Agents)
		if err := t.store.SaveGeneration(ctx, rec); err != nil {
			return ga.Statistics{}, fmt.Errorf("generation %d: checkpoint: %w", gen, err)
		}
	}

	// 4. Save champion
	if every := t.cfg.Logging.SaveChampionEvery; every > 0 && gen > 0 && gen%every == 0 {
		path := filepath.Join(t.cfg.Logging.ArtifactsDir, fmt.Sprintf("champion_gen%d.json", gen))
		if err := t.SaveChampion(path); err != nil {
			t.log.Warn("failed to save champion", zap.String("path", path), zap.Error(err))
		}
	}

	// 5. Breed the next generation
	stats, err := t.pop.Evolve(t.alg, t.builder, t.src)
	if err != nil {
		return stats, fmt.Errorf("generation %d: evolve: %w", gen, err)
	}

	if t.metrics != nil {
		if err := t.metrics.LogGeneration(logging.NewSummary(t.runID, gen, stats)); err != nil {
			t.log.Warn("failed to write metrics", zap.Error(err))
		}
	} else {
		t.log.Info("generation", zap.Int("gen", gen), zap.Stringer("stats", stats))
	}
	return stats, nil
}

// Run performs generations steps, stopping early if ctx is cancelled.
func (t *Trainer) Run(ctx context.Context, generations int) error {
	for i := 0; i < generations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := t.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// SaveChampion writes the best agent seen so far.
func (t *Trainer) SaveChampion(path string) error {
	if t.champion == nil {
		return fmt.Errorf("no champion yet")
	}
	return logging.SaveChampion(path, logging.Champion{
		RunID:      t.runID,
		Generation: t.champion.Generation,
		Fitness:    t.champion.Fitness,
		Task:       t.evaluator.Task().Name,
		Topology:   t.topology,
		Chromosome: t.champion.Chromosome,
	})
}
