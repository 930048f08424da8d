// Package optim implements optimizers that update autograd parameters from
// their accumulated gradients.
//
// Example usage:
//
//	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
//	for step := range steps {
//	    mark := g.Mark()
//	    loss := computeLoss(model)
//	    opt.ZeroGrad()
//	    loss.Backward()
//	    opt.Step()
//	    g.Rewind(mark)
//	}
package optim

import "github.com/tektwister/ai_engineering/scalargrad/autograd"

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update to every parameter using its current gradient.
	Step()

	// ZeroGrad clears all parameter gradients. Call it before each backward
	// pass to prevent accumulation across steps.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float64

	// SetLR changes the learning rate, e.g. from a schedule.
	SetLR(lr float64)
}

// Schedule maps a step index to a learning rate.
type Schedule func(step int) float64

// Constant returns a schedule that always yields lr.
func Constant(lr float64) Schedule {
	return func(int) float64 { return lr }
}

// LinearDecay interpolates from start at step 0 to end at step steps-1 and
// stays at end afterwards.
func LinearDecay(start, end float64, steps int) Schedule {
	return func(step int) float64 {
		if steps <= 1 || step >= steps-1 {
			return end
		}
		if step <= 0 {
			return start
		}
		frac := float64(step) / float64(steps-1)
		return start + (end-start)*frac
	}
}

func zeroGrad(params []autograd.Value) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
