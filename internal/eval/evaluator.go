package eval

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"evosim/internal/nn"
	"evosim/internal/sim"
)

// Evaluator scores agents against a task
type Evaluator struct {
	task    Task
	workers int
}

// NewEvaluator creates a new evaluator. workers <= 0 uses one worker per CPU.
func NewEvaluator(task Task, workers int) *Evaluator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Evaluator{task: task, workers: workers}
}

func (e *Evaluator) Task() Task {
	return e.task
}

// Topology returns the task's input layer, the hidden layers and the
// task's output layer.
func (e *Evaluator) Topology(hidden []int) []nn.LayerTopology {
	top := []nn.LayerTopology{{Neurons: e.task.Inputs}}
	for _, h := range hidden {
		top = append(top, nn.LayerTopology{Neurons: h})
	}
	return append(top, nn.LayerTopology{Neurons: e.task.Outputs})
}

// Trace runs every case through the brain and records the outputs.
func (e *Evaluator) Trace(brain *nn.Network) (*Trace, error) {
	t := &Trace{
		Task:     e.task.Name,
		MaxScore: e.task.MaxScore(),
		Cases:    make([]CaseResult, 0, len(e.task.Cases)),
	}

	var total float64
	for i, c := range e.task.Cases {
		got, err := brain.Propagate(c.In)
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", i, err)
		}
		var sq float64
		for j, want := range c.Want {
			d := float64(got[j] - want)
			sq += d * d
		}
		total += sq
		t.Cases = append(t.Cases, CaseResult{Case: c, Got: got, Error: sq})
	}

	// Fitness must stay non-negative for roulette selection.
	t.Score = math.Max(0, t.MaxScore-total)
	t.Aggregate()
	return t, nil
}

// Score returns the agent's fitness on the task.
func (e *Evaluator) Score(a *sim.Agent) (float64, error) {
	t, err := e.Trace(a.Brain)
	if err != nil {
		return 0, err
	}
	return t.Score, nil
}

// EvaluatePopulation scores every agent concurrently and stores the result
// on the agent. Each goroutine writes only its own agent.
func (e *Evaluator) EvaluatePopulation(ctx context.Context, pop *sim.Population) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, agent := range pop.Agents {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			score, err := e.Score(agent)
			if err != nil {
				return fmt.Errorf("agent %d: %w", i, err)
			}
			agent.Score = score
			return nil
		})
	}
	return g.Wait()
}
