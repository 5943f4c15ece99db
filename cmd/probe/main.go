package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"evosim/internal/eval"
	"evosim/internal/logging"
	"evosim/internal/nn"
)

func main() {
	championPath := flag.String("champion", "artifacts/champion_final.json", "path to champion JSON")
	tracePath := flag.String("trace", "", "optional path to write the per-case trace as JSON")
	flag.Parse()

	champion, err := logging.LoadChampion(*championPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading champion: %v\n", err)
		os.Exit(1)
	}

	task, err := eval.LookupTask(champion.Task)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	brain, err := nn.FromWeights(champion.Topology, champion.Chromosome.Genes())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rebuilding network: %v\n", err)
		os.Exit(1)
	}

	trace, err := eval.NewEvaluator(task, 1).Trace(brain)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating champion: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Champion from run %s, gen %d (fitness=%.4f)\n", champion.RunID, champion.Generation, champion.Fitness)
	fmt.Printf("Task: %s, topology: %v\n", task.Name, champion.Topology)
	fmt.Println("---")
	for _, c := range trace.Cases {
		fmt.Printf("  in=%v want=%v got=%v err=%.4f\n", c.In, c.Want, c.Got, c.Error)
	}
	fmt.Println("---")
	fmt.Printf("Score: %.4f / %.0f (error mean=%.4f std=%.4f)\n",
		trace.Score, trace.MaxScore, trace.ErrorMean, trace.ErrorStd)

	if *tracePath != "" {
		if err := trace.Save(filepath.Clean(*tracePath)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save trace: %v\n", err)
		}
	}
}
