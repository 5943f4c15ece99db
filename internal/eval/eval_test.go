package eval

import (
	"context"
	"path/filepath"
	"testing"

	"evosim/internal/nn"
	"evosim/internal/rng"
	"evosim/internal/sim"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xorEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	task, err := LookupTask("xor")
	require.NoError(t, err)
	return NewEvaluator(task, 2)
}

// perfectXOR computes relu(x+y) - 2*relu(x+y-1) with one hidden layer.
func perfectXOR(t *testing.T) *nn.Network {
	t.Helper()
	top := []nn.LayerTopology{{Neurons: 2}, {Neurons: 2}, {Neurons: 1}}
	n, err := nn.FromWeights(top, []float32{
		0, 1, 1, // h0 = relu(x+y)
		-1, 1, 1, // h1 = relu(x+y-1)
		0, 1, -2, // out = relu(h0 - 2*h1)
	})
	require.NoError(t, err)
	return n
}

func TestLookupTask(t *testing.T) {
	_, err := LookupTask("nope")
	assert.Error(t, err)
	assert.Equal(t, []string{"and", "identity", "xor"}, TaskNames())
}

func TestTopology(t *testing.T) {
	e := xorEvaluator(t)
	assert.Equal(t, []nn.LayerTopology{{Neurons: 2}, {Neurons: 4}, {Neurons: 1}}, e.Topology([]int{4}))
	assert.Equal(t, []nn.LayerTopology{{Neurons: 2}, {Neurons: 1}}, e.Topology(nil))
}

func TestTracePerfectNetwork(t *testing.T) {
	e := xorEvaluator(t)
	tr, err := e.Trace(perfectXOR(t))
	require.NoError(t, err)

	assert.Equal(t, 4.0, tr.Score)
	assert.Equal(t, tr.MaxScore, tr.Score)
	assert.Zero(t, tr.ErrorMean)
	require.Len(t, tr.Cases, 4)
	assert.Equal(t, []float32{1}, tr.Cases[1].Got)
}

func TestTraceScoreIsNonNegative(t *testing.T) {
	top := []nn.LayerTopology{{Neurons: 2}, {Neurons: 1}}
	n, err := nn.FromWeights(top, []float32{10, 0, 0})
	require.NoError(t, err)

	tr, err := xorEvaluator(t).Trace(n)
	require.NoError(t, err)
	assert.Zero(t, tr.Score)
	assert.InDelta(t, (81.0+100+81+100)/4, tr.ErrorMean, 1e-9)
}

func TestTraceInputMismatch(t *testing.T) {
	top := []nn.LayerTopology{{Neurons: 3}, {Neurons: 1}}
	n, err := nn.Random(rng.New(0), top)
	require.NoError(t, err)

	_, err = xorEvaluator(t).Trace(n)
	assert.ErrorIs(t, err, nn.ErrInputSizeMismatch)
}

func TestEvaluatePopulation(t *testing.T) {
	e := xorEvaluator(t)
	b := sim.NewBuilder(e.Topology([]int{3}))
	pop, err := sim.NewPopulation(b, 16, rng.New(1))
	require.NoError(t, err)

	require.NoError(t, e.EvaluatePopulation(context.Background(), pop))
	for _, a := range pop.Agents {
		want, err := e.Score(a)
		require.NoError(t, err)
		assert.Equal(t, want, a.Score)
		assert.GreaterOrEqual(t, a.Score, 0.0)
	}
}

func TestEvaluatePopulationCancelled(t *testing.T) {
	e := xorEvaluator(t)
	pop, err := sim.NewPopulation(sim.NewBuilder(e.Topology(nil)), 4, rng.New(1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, e.EvaluatePopulation(ctx, pop), context.Canceled)
}

func TestTraceSaveLoad(t *testing.T) {
	tr, err := xorEvaluator(t).Trace(perfectXOR(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "traces", "xor.json")
	require.NoError(t, tr.Save(path))

	loaded, err := LoadTrace(path)
	require.NoError(t, err)
	assert.Equal(t, tr, loaded)
}
