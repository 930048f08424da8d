// Package domain contains the port interfaces used by the trainer.
package domain

import "github.com/tektwister/ai_engineering/scalargrad/autograd"

// Model is a trainable composition of autograd values.
type Model interface {
	// Call builds the forward graph for x and returns one value per output.
	Call(x []autograd.Value) []autograd.Value

	// Parameters returns every trainable leaf.
	Parameters() []autograd.Value

	// ZeroGrad resets the gradient of every parameter.
	ZeroGrad()

	// In returns the number of inputs.
	In() int

	// Out returns the number of outputs.
	Out() int
}

// Optimizer updates parameters from their gradients.
type Optimizer interface {
	Step()
	ZeroGrad()
	LR() float64
	SetLR(lr float64)
}

// LossFunc reduces predictions and targets to a scalar loss.
type LossFunc func(preds, targets []autograd.Value) autograd.Value

// Logger defines the logging interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
