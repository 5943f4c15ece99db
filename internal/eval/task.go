package eval

import (
	"fmt"
	"sort"
)

// Case is one input vector and the output the network should produce.
type Case struct {
	In   []float32 `json:"in"`
	Want []float32 `json:"want"`
}

// Task is a fixed truth table a network is scored against.
type Task struct {
	Name    string
	Inputs  int
	Outputs int
	Cases   []Case
}

// MaxScore is the score of a network that reproduces every case exactly.
func (t Task) MaxScore() float64 {
	return float64(len(t.Cases) * t.Outputs)
}

var tasks = map[string]Task{
	"xor": {
		Name: "xor", Inputs: 2, Outputs: 1,
		Cases: []Case{
			{In: []float32{0, 0}, Want: []float32{0}},
			{In: []float32{0, 1}, Want: []float32{1}},
			{In: []float32{1, 0}, Want: []float32{1}},
			{In: []float32{1, 1}, Want: []float32{0}},
		},
	},
	"and": {
		Name: "and", Inputs: 2, Outputs: 1,
		Cases: []Case{
			{In: []float32{0, 0}, Want: []float32{0}},
			{In: []float32{0, 1}, Want: []float32{0}},
			{In: []float32{1, 0}, Want: []float32{0}},
			{In: []float32{1, 1}, Want: []float32{1}},
		},
	},
	"identity": {
		Name: "identity", Inputs: 2, Outputs: 2,
		Cases: []Case{
			{In: []float32{0, 0}, Want: []float32{0, 0}},
			{In: []float32{0, 1}, Want: []float32{0, 1}},
			{In: []float32{1, 0}, Want: []float32{1, 0}},
			{In: []float32{1, 1}, Want: []float32{1, 1}},
		},
	},
}

// LookupTask returns a built-in task by name.
func LookupTask(name string) (Task, error) {
	t, ok := tasks[name]
	if !ok {
		return Task{}, fmt.Errorf("unknown task %q (known: %v)", name, TaskNames())
	}
	return t, nil
}

func TaskNames() []string {
	names := make([]string, 0, len(tasks))
	for name := range tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
