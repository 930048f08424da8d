package core

import (
	"fmt"

	"github.com/tektwister/ai_engineering/scalargrad/autograd"
	"github.com/tektwister/ai_engineering/scalargrad/internal/domain"
	"github.com/tektwister/ai_engineering/scalargrad/nn"
	"github.com/tektwister/ai_engineering/scalargrad/optim"
)

// defaultMomentum is used by the momentum optimizer when none is configured.
const defaultMomentum = 0.9

// NewOptimizer creates an optimizer for the given method over params.
func NewOptimizer(method domain.OptimizerMethod, params []autograd.Value, cfg domain.TrainingConfig) (domain.Optimizer, error) {
	switch method {
	case domain.OptimizerSGD, "":
		return optim.NewSGD(params, optim.SGDConfig{LR: cfg.LearningRate}), nil
	case domain.OptimizerMomentum:
		momentum := cfg.Momentum
		if momentum == 0 {
			momentum = defaultMomentum
		}
		return optim.NewSGD(params, optim.SGDConfig{LR: cfg.LearningRate, Momentum: momentum}), nil
	default:
		return nil, fmt.Errorf("unsupported optimizer: %s", method)
	}
}

// GetAvailableOptimizers returns the list of available optimizers.
func GetAvailableOptimizers() []domain.OptimizerMethod {
	return []domain.OptimizerMethod{
		domain.OptimizerSGD,
		domain.OptimizerMomentum,
	}
}

// NewLoss returns the loss function for kind.
func NewLoss(kind domain.LossKind) (domain.LossFunc, error) {
	switch kind {
	case domain.LossSumSquared, "":
		return nn.SumSquaredError, nil
	case domain.LossMeanSquared:
		return nn.MeanSquaredError, nil
	case domain.LossHinge:
		return nn.Hinge, nil
	default:
		return nil, fmt.Errorf("unsupported loss: %s", kind)
	}
}

// GetAvailableLosses returns the list of available loss functions.
func GetAvailableLosses() []domain.LossKind {
	return []domain.LossKind{
		domain.LossSumSquared,
		domain.LossMeanSquared,
		domain.LossHinge,
	}
}

// NewSchedule returns a linear decay when a final learning rate is set and a
// constant rate otherwise.
func NewSchedule(cfg domain.TrainingConfig) optim.Schedule {
	if cfg.FinalLearningRate > 0 {
		return optim.LinearDecay(cfg.LearningRate, cfg.FinalLearningRate, cfg.Steps)
	}
	return optim.Constant(cfg.LearningRate)
}
