// Package domain contains the core training models.
package domain

import (
	"fmt"
	"time"
)

// Sample is one training example.
type Sample struct {
	Inputs  []float64 `json:"inputs"`
	Targets []float64 `json:"targets"`
}

// Dataset is an ordered collection of samples. It is evaluated
// sequentially, one graph per step.
type Dataset []Sample

// Validate checks that every sample has nin inputs and nout targets.
func (d Dataset) Validate(nin, nout int) error {
	if len(d) == 0 {
		return NewValidationError("dataset is empty")
	}
	for i, s := range d {
		if len(s.Inputs) != nin {
			return NewValidationError(fmt.Sprintf("sample %d has %d inputs, model expects %d", i, len(s.Inputs), nin))
		}
		if len(s.Targets) != nout {
			return NewValidationError(fmt.Sprintf("sample %d has %d targets, model produces %d", i, len(s.Targets), nout))
		}
	}
	return nil
}

// OptimizerMethod names an optimization algorithm.
type OptimizerMethod string

const (
	OptimizerSGD      OptimizerMethod = "sgd"
	OptimizerMomentum OptimizerMethod = "momentum"
)

// LossKind names a loss function.
type LossKind string

const (
	LossSumSquared  LossKind = "sse"
	LossMeanSquared LossKind = "mse"
	LossHinge       LossKind = "hinge"
)

// TrainingConfig holds training configuration.
type TrainingConfig struct {
	Steps             int             `json:"steps"`
	LearningRate      float64         `json:"learning_rate"`
	FinalLearningRate float64         `json:"final_learning_rate,omitempty"` // Linear decay target; 0 keeps the rate constant
	Momentum          float64         `json:"momentum,omitempty"`
	Optimizer         OptimizerMethod `json:"optimizer"`
	Loss              LossKind        `json:"loss"`
	L2                float64         `json:"l2,omitempty"`            // Weight of the L2 penalty over all parameters
	EvalInterval      int             `json:"eval_interval,omitempty"` // Log every N steps
}

// NewTrainingConfig creates a default training configuration.
func NewTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Steps:        20,
		LearningRate: 0.05,
		Optimizer:    OptimizerSGD,
		Loss:         LossSumSquared,
		EvalInterval: 1,
	}
}

// Validate checks if the training configuration is valid.
func (c TrainingConfig) Validate() error {
	if c.Steps <= 0 {
		return NewValidationError("steps must be positive")
	}
	if c.LearningRate <= 0 {
		return NewValidationError("learning_rate must be positive")
	}
	if c.FinalLearningRate < 0 {
		return NewValidationError("final_learning_rate must be non-negative")
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return NewValidationError("momentum must be in [0, 1)")
	}
	if c.L2 < 0 {
		return NewValidationError("l2 must be non-negative")
	}
	if c.EvalInterval < 0 {
		return NewValidationError("eval_interval must be non-negative")
	}
	return nil
}

// StepResult records the outcome of one optimization step.
type StepResult struct {
	Step         int           `json:"step"`
	Loss         float64       `json:"loss"`
	Accuracy     float64       `json:"accuracy"`
	LearningRate float64       `json:"learning_rate"`
	Nodes        int           `json:"nodes"` // Graph size at the end of the forward pass
	Duration     time.Duration `json:"duration"`
}

// NewValidationError creates a validation error.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// ValidationError represents a configuration or dataset validation error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
