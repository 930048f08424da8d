package nn

import (
	"math/rand"
	"strings"

	"github.com/tektwister/ai_engineering/scalargrad/autograd"
)

// Layer represents a layer of neurons sharing the same inputs.
type Layer struct {
	neurons []*Neuron
	nin     int
}

// NewLayer creates a new Layer with nin inputs and nout neurons of the
// given activation.
func NewLayer(g *autograd.Graph, rng *rand.Rand, nin, nout int, act Activation) *Layer {
	neurons := make([]*Neuron, nout)
	for i := range neurons {
		neurons[i] = NewNeuron(g, rng, nin, act)
	}
	return &Layer{neurons: neurons, nin: nin}
}

// Call computes the output of every neuron for input x.
func (l *Layer) Call(x []autograd.Value) []autograd.Value {
	outs := make([]autograd.Value, len(l.neurons))
	for i, n := range l.neurons {
		outs[i] = n.Call(x)
	}
	return outs
}

// In returns the number of inputs.
func (l *Layer) In() int {
	return l.nin
}

// Out returns the number of neurons.
func (l *Layer) Out() int {
	return len(l.neurons)
}

// Neurons returns the neurons of the layer.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

// Parameters returns the parameters of all neurons in the layer.
func (l *Layer) Parameters() []autograd.Value {
	var params []autograd.Value
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// ZeroGrad resets gradients of all parameters in the layer.
func (l *Layer) ZeroGrad() {
	zeroGrad(l)
}

func (l *Layer) String() string {
	names := make([]string, len(l.neurons))
	for i, n := range l.neurons {
		names[i] = n.String()
	}
	return "Layer of [" + strings.Join(names, ", ") + "]"
}
