package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"evosim/internal/config"
	"evosim/internal/logging"
	"evosim/internal/storage"
	"evosim/internal/trainer"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "configs/xor.yaml", "path to config file")
	generations := flag.Int("generations", 500, "number of generations to run")
	storeKind := flag.String("store", "", "checkpoint backend: memory|sqlite (overrides config)")
	dbPath := flag.String("db", "", "sqlite database path (overrides config)")
	resume := flag.String("resume", "", "run id to resume from its latest checkpoint")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *storeKind != "" {
		cfg.Storage.Kind = *storeKind
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}

	log, err := logging.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, *generations, *resume, log); err != nil {
		log.Error("training failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, generations int, runID string, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Storage.Kind == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0755); err != nil {
			return err
		}
	}
	store, err := storage.NewStore(cfg.Storage.Kind, cfg.Storage.Path)
	if err != nil {
		return err
	}
	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer storage.CloseIfSupported(store)

	var metrics *logging.MetricsWriter
	if cfg.Logging.EveryGenSummary {
		metrics, err = logging.NewMetricsWriter(cfg.Logging.CSVPath, cfg.Logging.JSONPath, log)
		if err != nil {
			return fmt.Errorf("open metrics: %w", err)
		}
		defer metrics.Close()
	}

	t, err := trainer.New(ctx, cfg, trainer.Options{
		RunID:   runID,
		Store:   store,
		Metrics: metrics,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	log.Info("starting training",
		zap.String("run", t.RunID()),
		zap.String("task", cfg.Eval.Task),
		zap.Any("topology", t.Topology()),
		zap.Int("population", cfg.GA.Population),
		zap.String("selection", cfg.GA.Selection),
		zap.String("crossover", cfg.GA.Crossover),
		zap.Int64("seed", cfg.Seed),
	)

	startTime := time.Now()
	runErr := t.Run(ctx, generations)

	if c := t.Champion(); c != nil {
		log.Info("training finished",
			zap.Duration("elapsed", time.Since(startTime)),
			zap.Int("champion_generation", c.Generation),
			zap.Float64("champion_fitness", c.Fitness),
			zap.Float64("max_fitness", t.Evaluator().Task().MaxScore()),
		)
		path := filepath.Join(cfg.Logging.ArtifactsDir, "champion_final.json")
		if err := t.SaveChampion(path); err != nil {
			log.Warn("failed to save final champion", zap.Error(err))
		}
	}
	return runErr
}
