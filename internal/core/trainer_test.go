package core

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tektwister/ai_engineering/scalargrad/autograd"
	"github.com/tektwister/ai_engineering/scalargrad/internal/domain"
	"github.com/tektwister/ai_engineering/scalargrad/nn"
	"github.com/tektwister/ai_engineering/scalargrad/optim"
)

func tinyDataset() domain.Dataset {
	return domain.Dataset{
		{Inputs: []float64{2.0, 3.0, -1.0}, Targets: []float64{1.0}},
		{Inputs: []float64{3.0, -1.0, 0.5}, Targets: []float64{-1.0}},
		{Inputs: []float64{0.5, 1.0, 1.0}, Targets: []float64{-1.0}},
		{Inputs: []float64{1.0, 1.0, -1.0}, Targets: []float64{1.0}},
	}
}

func newModel(t *testing.T) (*autograd.Graph, *nn.MLP) {
	t.Helper()
	g := autograd.NewGraph()
	m, err := nn.NewPerceptron(g, rand.New(rand.NewSource(42)), 3, []int{4, 4, 1}, nn.Tanh)
	require.NoError(t, err)
	return g, m
}

func TestTrainReducesLoss(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.TrainingConfig
	}{
		{"SGD", domain.TrainingConfig{Steps: 60, LearningRate: 0.05, Optimizer: domain.OptimizerSGD, Loss: domain.LossSumSquared}},
		{"Momentum", domain.TrainingConfig{Steps: 60, LearningRate: 0.01, Optimizer: domain.OptimizerMomentum, Loss: domain.LossMeanSquared}},
		{"HingeDecay", domain.TrainingConfig{Steps: 60, LearningRate: 0.1, FinalLearningRate: 0.01, Loss: domain.LossHinge, L2: 1e-4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, m := newModel(t)
			params := len(m.Parameters())

			trainer, err := NewTrainer(g, m, tt.cfg, nil)
			require.NoError(t, err)

			results, err := trainer.Train(context.Background(), tinyDataset())
			require.NoError(t, err)
			require.Len(t, results, tt.cfg.Steps)

			first, last := results[0], results[len(results)-1]
			assert.Less(t, last.Loss, first.Loss)
			for i, r := range results {
				assert.Equal(t, i, r.Step)
				assert.Equal(t, first.Nodes, r.Nodes, "every step rebuilds the same graph")
			}
			assert.Equal(t, params, g.Len(), "step graphs are released")
		})
	}
}

func TestTrainLearningRateSchedule(t *testing.T) {
	g, m := newModel(t)
	cfg := domain.TrainingConfig{Steps: 5, LearningRate: 1.0, FinalLearningRate: 0.2}
	trainer, err := NewTrainer(g, m, cfg, nil)
	require.NoError(t, err)

	results, err := trainer.Train(context.Background(), tinyDataset())
	require.NoError(t, err)
	assert.Equal(t, 1.0, results[0].LearningRate)
	assert.InDelta(t, 0.6, results[2].LearningRate, 1e-12)
	assert.Equal(t, 0.2, results[4].LearningRate)
	assert.Equal(t, 0.2, trainer.Optimizer().LR())
}

func TestTrainMatchesManualLoop(t *testing.T) {
	cfg := domain.TrainingConfig{Steps: 3, LearningRate: 0.05}
	data := tinyDataset()

	g1, m1 := newModel(t)
	trainer, err := NewTrainer(g1, m1, cfg, nil)
	require.NoError(t, err)
	_, err = trainer.Train(context.Background(), data)
	require.NoError(t, err)

	g2, m2 := newModel(t)
	opt := optim.NewSGD(m2.Parameters(), optim.SGDConfig{LR: cfg.LearningRate})
	for k := 0; k < cfg.Steps; k++ {
		mark := g2.Mark()
		loss := g2.Leaf(0)
		for _, s := range data {
			pred := m2.Call(g2.Leaves(s.Inputs))[0]
			loss = loss.Add(pred.Sub(g2.Leaf(s.Targets[0])).Pow(2))
		}
		opt.ZeroGrad()
		loss.Backward()
		opt.Step()
		g2.Rewind(mark)
	}

	p1, p2 := m1.Parameters(), m2.Parameters()
	require.Len(t, p2, len(p1))
	for i := range p1 {
		assert.InDelta(t, p2[i].Data(), p1[i].Data(), 1e-12)
	}
}

func TestTrainHonorsContext(t *testing.T) {
	g, m := newModel(t)
	trainer, err := NewTrainer(g, m, domain.NewTrainingConfig(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := trainer.Train(ctx, tinyDataset())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestTrainDiverged(t *testing.T) {
	g, m := newModel(t)
	trainer, err := NewTrainer(g, m, domain.NewTrainingConfig(), nil)
	require.NoError(t, err)

	data := domain.Dataset{{Inputs: []float64{1, 2, 3}, Targets: []float64{math.Inf(1)}}}
	results, err := trainer.Train(context.Background(), data)
	assert.ErrorIs(t, err, ErrDiverged)
	assert.Len(t, results, 1)
}

func TestTrainLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	g, m := newModel(t)
	cfg := domain.NewTrainingConfig()
	cfg.Steps = 4
	cfg.EvalInterval = 2
	trainer, err := NewTrainer(g, m, cfg, logger)
	require.NoError(t, err)

	_, err = trainer.Train(context.Background(), tinyDataset())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "starting training")
	assert.Contains(t, out, "step=0")
	assert.Contains(t, out, "step=2")
	assert.Contains(t, out, "step=3")
	assert.NotContains(t, out, "step=1 ")
	assert.Contains(t, out, "training completed")
}

func TestTrainerValidation(t *testing.T) {
	g, m := newModel(t)

	_, err := NewTrainer(g, m, domain.TrainingConfig{}, nil)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	cfg := domain.NewTrainingConfig()
	cfg.Optimizer = "adagrad"
	_, err = NewTrainer(g, m, cfg, nil)
	assert.ErrorContains(t, err, "unsupported optimizer")

	cfg = domain.NewTrainingConfig()
	cfg.Loss = "xent"
	_, err = NewTrainer(g, m, cfg, nil)
	assert.ErrorContains(t, err, "unsupported loss")

	trainer, err := NewTrainer(g, m, domain.NewTrainingConfig(), nil)
	require.NoError(t, err)

	_, err = trainer.Train(context.Background(), domain.Dataset{{Inputs: []float64{1}, Targets: []float64{1}}})
	assert.ErrorAs(t, err, &verr)

	_, err = trainer.Predict([]float64{1, 2})
	assert.ErrorAs(t, err, &verr)

	_, _, err = trainer.Evaluate(nil)
	assert.ErrorAs(t, err, &verr)
}

func TestPredictAndEvaluate(t *testing.T) {
	g, m := newModel(t)
	trainer, err := NewTrainer(g, m, domain.NewTrainingConfig(), nil)
	require.NoError(t, err)
	before := g.Len()

	out, err := trainer.Predict([]float64{2, 3, -1})
	require.NoError(t, err)
	require.Len(t, out, 1)

	again, err := trainer.Predict([]float64{2, 3, -1})
	require.NoError(t, err)
	assert.Equal(t, out, again)

	loss, acc, err := trainer.Evaluate(tinyDataset())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, loss, 0.0)
	assert.GreaterOrEqual(t, acc, 0.0)
	assert.LessOrEqual(t, acc, 1.0)
	assert.Equal(t, before, g.Len())
}

func TestFactories(t *testing.T) {
	assert.Len(t, GetAvailableOptimizers(), 2)
	assert.Len(t, GetAvailableLosses(), 3)

	for _, kind := range GetAvailableLosses() {
		fn, err := NewLoss(kind)
		require.NoError(t, err)
		assert.NotNil(t, fn)
	}

	g := autograd.NewGraph()
	w := g.Leaf(1)
	cfg := domain.NewTrainingConfig()
	opt, err := NewOptimizer(domain.OptimizerMomentum, []autograd.Value{w}, cfg)
	require.NoError(t, err)
	sgd, ok := opt.(*optim.SGD)
	require.True(t, ok)
	assert.Equal(t, defaultMomentum, sgd.Momentum())

	assert.Equal(t, 0.05, NewSchedule(cfg)(10))
}
