package nn

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/tektwister/ai_engineering/scalargrad/autograd"
)

// ErrNoLayers is returned when an MLP is built without layers.
var ErrNoLayers = errors.New("nn: mlp needs at least one layer")

// MLP represents a Multi-Layer Perceptron.
type MLP struct {
	layers []*Layer
}

// NewMLP chains the given layers. Each layer's input width must match the
// previous layer's output width.
func NewMLP(layers ...*Layer) (*MLP, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}
	for i := 1; i < len(layers); i++ {
		if layers[i].In() != layers[i-1].Out() {
			return nil, fmt.Errorf("nn: layer %d expects %d inputs, layer %d produces %d",
				i, layers[i].In(), i-1, layers[i-1].Out())
		}
	}
	return &MLP{layers: layers}, nil
}

// NewPerceptron builds an MLP with nin inputs and one layer per entry of
// nouts. Hidden layers use the given activation, the output layer is linear.
func NewPerceptron(g *autograd.Graph, rng *rand.Rand, nin int, nouts []int, hidden Activation) (*MLP, error) {
	if nin <= 0 {
		return nil, fmt.Errorf("nn: input width must be positive, got %d", nin)
	}
	layers := make([]*Layer, len(nouts))
	sz := append([]int{nin}, nouts...)
	for i := range nouts {
		if nouts[i] <= 0 {
			return nil, fmt.Errorf("nn: layer %d width must be positive, got %d", i, nouts[i])
		}
		act := hidden
		if i == len(nouts)-1 {
			act = Linear
		}
		layers[i] = NewLayer(g, rng, sz[i], sz[i+1], act)
	}
	return NewMLP(layers...)
}

// Call computes the output of the MLP for input x.
func (m *MLP) Call(x []autograd.Value) []autograd.Value {
	for _, l := range m.layers {
		x = l.Call(x)
	}
	return x
}

// In returns the number of inputs.
func (m *MLP) In() int {
	return m.layers[0].In()
}

// Out returns the number of outputs.
func (m *MLP) Out() int {
	return m.layers[len(m.layers)-1].Out()
}

// Layers returns the layers of the MLP.
func (m *MLP) Layers() []*Layer {
	return m.layers
}

// Parameters returns the parameters of all layers in the MLP.
func (m *MLP) Parameters() []autograd.Value {
	var params []autograd.Value
	for _, l := range m.layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

// ZeroGrad resets gradients of all parameters in the MLP.
func (m *MLP) ZeroGrad() {
	zeroGrad(m)
}

func (m *MLP) String() string {
	names := make([]string, len(m.layers))
	for i, l := range m.layers {
		names[i] = l.String()
	}
	return "MLP of [" + strings.Join(names, ", ") + "]"
}
