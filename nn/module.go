// Package nn composes autograd values into neurons, layers and multi-layer
// perceptrons.
package nn

import "github.com/tektwister/ai_engineering/scalargrad/autograd"

// Module is the interface for all neural network modules.
type Module interface {
	Parameters() []autograd.Value
	ZeroGrad()
}

// zeroGrad resets gradients of all parameters of m.
func zeroGrad(m Module) {
	for _, p := range m.Parameters() {
		p.ZeroGrad()
	}
}
