package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"

	"github.com/tektwister/ai_engineering/scalargrad/autograd"
	"github.com/tektwister/ai_engineering/scalargrad/internal/core"
	"github.com/tektwister/ai_engineering/scalargrad/internal/domain"
	"github.com/tektwister/ai_engineering/scalargrad/nn"
	"github.com/tektwister/ai_engineering/scalargrad/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	hidden, err := nn.ParseActivation(cfg.Activation)
	if err != nil {
		log.Fatalf("Invalid activation: %v", err)
	}

	// 1. Create a tiny dataset
	data := domain.Dataset{
		{Inputs: []float64{2.0, 3.0, -1.0}, Targets: []float64{1.0}},
		{Inputs: []float64{3.0, -1.0, 0.5}, Targets: []float64{-1.0}},
		{Inputs: []float64{0.5, 1.0, 1.0}, Targets: []float64{-1.0}},
		{Inputs: []float64{1.0, 1.0, -1.0}, Targets: []float64{1.0}},
	}

	// 2. Initialize the model
	// MLP with 3 inputs, the configured hidden layers and 1 linear output
	g := autograd.NewGraph()
	rng := rand.New(rand.NewSource(cfg.Seed))
	model, err := nn.NewPerceptron(g, rng, 3, append(append([]int{}, cfg.Hidden...), 1), hidden)
	if err != nil {
		log.Fatalf("Failed to build model: %v", err)
	}
	fmt.Println(model)

	trainer, err := core.NewTrainer(g, model, domain.TrainingConfig{
		Steps:             cfg.Steps,
		LearningRate:      cfg.LearningRate,
		FinalLearningRate: cfg.FinalLearningRate,
		Momentum:          cfg.Momentum,
		Optimizer:         domain.OptimizerMethod(cfg.Optimizer),
		Loss:              domain.LossKind(cfg.Loss),
		L2:                cfg.L2,
		EvalInterval:      cfg.EvalInterval,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create trainer: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// 3. Training loop
	results, err := trainer.Train(ctx, data)
	if err != nil {
		log.Printf("Training stopped: %v", err)
	}
	if len(results) > 0 {
		last := results[len(results)-1]
		fmt.Printf("Final loss %f after %d steps\n", last.Loss, last.Step+1)
	}

	// Check final predictions
	fmt.Println("\nFinal predictions:")
	for i, s := range data {
		pred, err := trainer.Predict(s.Inputs)
		if err != nil {
			log.Printf("Prediction failed: %v", err)
			return
		}
		fmt.Printf("Input: %v, Target: %f, Prediction: %f\n", i, s.Targets[0], pred[0])
	}
}
