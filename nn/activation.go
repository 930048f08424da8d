package nn

import (
	"fmt"
	"strings"

	"github.com/tektwister/ai_engineering/scalargrad/autograd"
)

// Activation selects the non-linearity applied by a neuron.
type Activation int

const (
	Linear Activation = iota
	ReLU
	Tanh
	Sigmoid
)

// String returns the activation name.
func (a Activation) String() string {
	switch a {
	case Linear:
		return "linear"
	case ReLU:
		return "relu"
	case Tanh:
		return "tanh"
	case Sigmoid:
		return "sigmoid"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// ParseActivation maps a case-insensitive name to an Activation.
func ParseActivation(s string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "":
		return Linear, nil
	case "relu":
		return ReLU, nil
	case "tanh":
		return Tanh, nil
	case "sigmoid":
		return Sigmoid, nil
	default:
		return Linear, fmt.Errorf("unsupported activation: %s", s)
	}
}

// Apply applies the activation to v.
func (a Activation) Apply(v autograd.Value) autograd.Value {
	switch a {
	case ReLU:
		return v.ReLU()
	case Tanh:
		return v.Tanh()
	case Sigmoid:
		return v.Sigmoid()
	default:
		return v
	}
}

// label is the neuron name used in String.
func (a Activation) label() string {
	switch a {
	case ReLU:
		return "ReLU"
	case Tanh:
		return "Tanh"
	case Sigmoid:
		return "Sigmoid"
	default:
		return "LinearNeuron"
	}
}
