package nn

import (
	"fmt"
	"math/rand"

	"github.com/tektwister/ai_engineering/scalargrad/autograd"
)

// Neuron represents a single neuron with weights, a bias and an activation.
type Neuron struct {
	w   []autograd.Value
	b   autograd.Value
	act Activation
}

// NewNeuron creates a new Neuron with nin inputs on graph g.
// Weights are drawn uniformly from [-1, 1) using rng; the bias starts at 0.
func NewNeuron(g *autograd.Graph, rng *rand.Rand, nin int, act Activation) *Neuron {
	w := make([]autograd.Value, nin)
	for i := range w {
		w[i] = g.Leaf(rng.Float64()*2 - 1)
	}
	return &Neuron{w: w, b: g.Leaf(0), act: act}
}

// Call computes act(w·x + b).
func (n *Neuron) Call(x []autograd.Value) autograd.Value {
	if len(x) != len(n.w) {
		panic(fmt.Sprintf("nn: neuron expects %d inputs, got %d", len(n.w), len(x)))
	}

	out := n.b
	for i, wi := range n.w {
		out = out.Add(wi.Mul(x[i]))
	}
	return n.act.Apply(out)
}

// Activation returns the neuron's activation.
func (n *Neuron) Activation() Activation {
	return n.act
}

// Weights returns the weight values.
func (n *Neuron) Weights() []autograd.Value {
	return n.w
}

// Bias returns the bias value.
func (n *Neuron) Bias() autograd.Value {
	return n.b
}

// Parameters returns the parameters (weights + bias) of the neuron.
func (n *Neuron) Parameters() []autograd.Value {
	params := make([]autograd.Value, len(n.w)+1)
	copy(params, n.w)
	params[len(n.w)] = n.b
	return params
}

// ZeroGrad resets gradients of all parameters in the neuron.
func (n *Neuron) ZeroGrad() {
	zeroGrad(n)
}

func (n *Neuron) String() string {
	return fmt.Sprintf("%s(%d)", n.act.label(), len(n.w))
}
