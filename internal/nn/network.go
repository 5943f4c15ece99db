package nn

import (
	"errors"
	"fmt"

	"evosim/internal/rng"
)

var (
	ErrInvalidTopology     = errors.New("nn: topology needs at least two layers of one or more neurons")
	ErrInputSizeMismatch   = errors.New("nn: input size mismatch")
	ErrWeightCountMismatch = errors.New("nn: not enough weights for topology")
)

// LayerTopology describes the size of one layer. The first entry is the
// input size; each following entry adds a layer of neurons.
type LayerTopology struct {
	Neurons int `yaml:"neurons" json:"neurons"`
}

// Network is a feed-forward network of fully connected ReLU layers. It is
// never modified after construction.
type Network struct {
	inputs int
	layers []layer
}

type layer struct {
	neurons []neuron
}

type neuron struct {
	bias    float32
	weights []float32
}

func validate(topology []LayerTopology) error {
	if len(topology) < 2 {
		return fmt.Errorf("%w: got %d entries", ErrInvalidTopology, len(topology))
	}
	for i, t := range topology {
		if t.Neurons < 1 {
			return fmt.Errorf("%w: entry %d has %d neurons", ErrInvalidTopology, i, t.Neurons)
		}
	}
	return nil
}

// WeightCount returns how many genes a network with this topology encodes:
// one bias plus one weight per input, for every neuron.
func WeightCount(topology []LayerTopology) (int, error) {
	if err := validate(topology); err != nil {
		return 0, err
	}
	size := 0
	for i := 1; i < len(topology); i++ {
		size += (topology[i-1].Neurons + 1) * topology[i].Neurons
	}
	return size, nil
}

// Random builds a network whose biases and weights are drawn uniformly
// from [-1, 1].
func Random(src rng.Source, topology []LayerTopology) (*Network, error) {
	return build(topology, func() float32 {
		return src.Float32In(-1, 1)
	})
}

// FromWeights builds a network from a flat gene sequence. Genes are consumed
// layer by layer and neuron by neuron, bias first and then each weight.
// Trailing genes beyond WeightCount(topology) are ignored.
func FromWeights(topology []LayerTopology, weights []float32) (*Network, error) {
	need, err := WeightCount(topology)
	if err != nil {
		return nil, err
	}
	if len(weights) < need {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrWeightCountMismatch, need, len(weights))
	}

	offset := 0
	return build(topology, func() float32 {
		w := weights[offset]
		offset++
		return w
	})
}

func build(topology []LayerTopology, next func() float32) (*Network, error) {
	if err := validate(topology); err != nil {
		return nil, err
	}

	n := &Network{
		inputs: topology[0].Neurons,
		layers: make([]layer, 0, len(topology)-1),
	}
	for i := 1; i < len(topology); i++ {
		n.layers = append(n.layers, newLayer(topology[i-1].Neurons, topology[i].Neurons, next))
	}
	return n, nil
}

func newLayer(inputs, outputs int, next func() float32) layer {
	l := layer{neurons: make([]neuron, outputs)}
	for j := range l.neurons {
		nr := neuron{bias: next(), weights: make([]float32, inputs)}
		for i := range nr.weights {
			nr.weights[i] = next()
		}
		l.neurons[j] = nr
	}
	return l
}

// Propagate runs inputs through every layer and returns the last layer's
// activations.
func (n *Network) Propagate(inputs []float32) ([]float32, error) {
	if len(inputs) != n.inputs {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInputSizeMismatch, n.inputs, len(inputs))
	}
	out := inputs
	for _, l := range n.layers {
		out = l.propagate(out)
	}
	return out, nil
}

func (l layer) propagate(inputs []float32) []float32 {
	out := make([]float32, len(l.neurons))
	for j, nr := range l.neurons {
		out[j] = nr.propagate(inputs)
	}
	return out
}

func (nr neuron) propagate(inputs []float32) float32 {
	sum := nr.bias
	for i, x := range inputs {
		sum += nr.weights[i] * x
	}
	return relu(sum)
}

func relu(x float32) float32 {
	if x > 0 {
		return x
	}
	return 0
}

// Weights flattens the network in the order FromWeights consumes.
func (n *Network) Weights() []float32 {
	var out []float32
	for _, l := range n.layers {
		for _, nr := range l.neurons {
			out = append(out, nr.bias)
			out = append(out, nr.weights...)
		}
	}
	return out
}

// Topology reports the layer sizes, input layer first.
func (n *Network) Topology() []LayerTopology {
	out := make([]LayerTopology, 0, len(n.layers)+1)
	out = append(out, LayerTopology{Neurons: n.inputs})
	for _, l := range n.layers {
		out = append(out, LayerTopology{Neurons: len(l.neurons)})
	}
	return out
}

func (n *Network) InputSize() int {
	return n.inputs
}

func (n *Network) OutputSize() int {
	return len(n.layers[len(n.layers)-1].neurons)
}
