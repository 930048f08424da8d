package optim

import "github.com/tektwister/ai_engineering/scalargrad/autograd"

// SGD implements Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * grad
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + grad
//	param = param - lr * velocity
type SGD struct {
	params     []autograd.Value
	lr         float64
	momentum   float64
	velocities []float64
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate
	Momentum float64 // Momentum factor in [0, 1); 0 disables momentum
}

// NewSGD creates a new SGD optimizer over params. Every parameter must be
// a leaf value.
func NewSGD(params []autograd.Value, config SGDConfig) *SGD {
	s := &SGD{
		params:   params,
		lr:       config.LR,
		momentum: config.Momentum,
	}
	if config.Momentum != 0 {
		s.velocities = make([]float64, len(params))
	}
	return s
}

// Step updates every parameter in place.
func (s *SGD) Step() {
	for i, p := range s.params {
		update := p.Grad()
		if s.velocities != nil {
			s.velocities[i] = s.momentum*s.velocities[i] + update
			update = s.velocities[i]
		}
		p.SetData(p.Data() - s.lr*update)
	}
}

// ZeroGrad clears all parameter gradients.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.params)
}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// SetLR sets the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// Momentum returns the momentum factor.
func (s *SGD) Momentum() float64 {
	return s.momentum
}
