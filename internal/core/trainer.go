// Package core implements the training loop on top of the autograd engine.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/tektwister/ai_engineering/scalargrad/autograd"
	"github.com/tektwister/ai_engineering/scalargrad/internal/domain"
	"github.com/tektwister/ai_engineering/scalargrad/nn"
	"github.com/tektwister/ai_engineering/scalargrad/optim"
)

// ErrDiverged is returned when the loss stops being finite.
var ErrDiverged = errors.New("loss diverged")

// Trainer handles training of a model whose parameters live in graph.
type Trainer struct {
	graph    *autograd.Graph
	model    domain.Model
	opt      domain.Optimizer
	loss     domain.LossFunc
	schedule optim.Schedule
	config   domain.TrainingConfig
	logger   domain.Logger
}

// NewTrainer creates a new trainer. The model's parameters must have been
// created on graph. A nil logger discards all output.
func NewTrainer(graph *autograd.Graph, model domain.Model, config domain.TrainingConfig, logger domain.Logger) (*Trainer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid training config: %w", err)
	}
	opt, err := NewOptimizer(config.Optimizer, model.Parameters(), config)
	if err != nil {
		return nil, err
	}
	loss, err := NewLoss(config.Loss)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Trainer{
		graph:    graph,
		model:    model,
		opt:      opt,
		loss:     loss,
		schedule: NewSchedule(config),
		config:   config,
		logger:   logger,
	}, nil
}

// Optimizer returns the optimizer driving the parameter updates.
func (t *Trainer) Optimizer() domain.Optimizer {
	return t.opt
}

// Train runs config.Steps optimization steps over the whole dataset and
// returns one result per completed step.
func (t *Trainer) Train(ctx context.Context, data domain.Dataset) ([]domain.StepResult, error) {
	if err := data.Validate(t.model.In(), t.model.Out()); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	t.logger.Info("starting training",
		"samples", len(data),
		"parameters", len(t.model.Parameters()),
		"steps", t.config.Steps,
		"loss", t.config.Loss,
		"optimizer", t.config.Optimizer,
	)

	results := make([]domain.StepResult, 0, t.config.Steps)
	for step := 0; step < t.config.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("training stopped at step %d: %w", step, err)
		}

		res := t.step(step, data)
		results = append(results, res)

		if math.IsNaN(res.Loss) || math.IsInf(res.Loss, 0) {
			t.logger.Error("loss is not finite", "step", step, "loss", res.Loss)
			return results, fmt.Errorf("step %d: %w", step, ErrDiverged)
		}

		if t.shouldLog(step) {
			t.logger.Info("step",
				"step", step,
				"loss", res.Loss,
				"accuracy", res.Accuracy,
				"lr", res.LearningRate,
				"nodes", res.Nodes,
			)
		}
	}

	t.logger.Info("training completed", "final_loss", results[len(results)-1].Loss)
	return results, nil
}

func (t *Trainer) shouldLog(step int) bool {
	if t.config.EvalInterval <= 0 {
		return false
	}
	return step%t.config.EvalInterval == 0 || step == t.config.Steps-1
}

// step performs forward, zero-grad, backward and update for one step, then
// releases the step's graph.
func (t *Trainer) step(step int, data domain.Dataset) domain.StepResult {
	start := time.Now()
	lr := t.schedule(step)
	t.opt.SetLR(lr)

	mark := t.graph.Mark()
	defer t.graph.Rewind(mark)

	loss, predData, targetData := t.forward(data)
	nodes := t.graph.Len()

	t.opt.ZeroGrad()
	loss.Backward()
	t.opt.Step()

	t.logger.Debug("step done", "step", step, "nodes", nodes)

	return domain.StepResult{
		Step:         step,
		Loss:         loss.Data(),
		Accuracy:     nn.SignAccuracy(predData, targetData),
		LearningRate: lr,
		Nodes:        nodes,
		Duration:     time.Since(start),
	}
}

// forward builds the loss graph for the whole dataset.
func (t *Trainer) forward(data domain.Dataset) (autograd.Value, []float64, []float64) {
	var preds, targets []autograd.Value
	for _, s := range data {
		preds = append(preds, t.model.Call(t.graph.Leaves(s.Inputs))...)
		targets = append(targets, t.graph.Leaves(s.Targets)...)
	}

	loss := t.loss(preds, targets)
	if t.config.L2 > 0 {
		loss = loss.Add(nn.L2Penalty(t.model.Parameters(), t.config.L2))
	}

	predData := make([]float64, len(preds))
	targetData := make([]float64, len(targets))
	for i := range preds {
		predData[i] = preds[i].Data()
		targetData[i] = targets[i].Data()
	}
	return loss, predData, targetData
}

// Evaluate returns the loss and sign accuracy over data without updating
// parameters.
func (t *Trainer) Evaluate(data domain.Dataset) (float64, float64, error) {
	if err := data.Validate(t.model.In(), t.model.Out()); err != nil {
		return 0, 0, fmt.Errorf("invalid dataset: %w", err)
	}
	mark := t.graph.Mark()
	defer t.graph.Rewind(mark)

	loss, predData, targetData := t.forward(data)
	return loss.Data(), nn.SignAccuracy(predData, targetData), nil
}

// Predict evaluates the model on a single input.
func (t *Trainer) Predict(inputs []float64) ([]float64, error) {
	if len(inputs) != t.model.In() {
		return nil, domain.NewValidationError(fmt.Sprintf("got %d inputs, model expects %d", len(inputs), t.model.In()))
	}
	mark := t.graph.Mark()
	defer t.graph.Rewind(mark)

	outs := t.model.Call(t.graph.Leaves(inputs))
	res := make([]float64, len(outs))
	for i, o := range outs {
		res[i] = o.Data()
	}
	return res, nil
}
