package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvSeed              = "SCALARGRAD_SEED"
	EnvSteps             = "SCALARGRAD_STEPS"
	EnvLearningRate      = "SCALARGRAD_LEARNING_RATE"
	EnvFinalLearningRate = "SCALARGRAD_FINAL_LEARNING_RATE"
	EnvMomentum          = "SCALARGRAD_MOMENTUM"
	EnvOptimizer         = "SCALARGRAD_OPTIMIZER"
	EnvLoss              = "SCALARGRAD_LOSS"
	EnvL2                = "SCALARGRAD_L2"
	EnvHidden            = "SCALARGRAD_HIDDEN"
	EnvActivation        = "SCALARGRAD_ACTIVATION"
	EnvEvalInterval      = "SCALARGRAD_EVAL_INTERVAL"
	EnvLogLevel          = "SCALARGRAD_LOG_LEVEL"
)

// Config holds the configuration of a training run.
type Config struct {
	Seed              int64
	Steps             int
	LearningRate      float64
	FinalLearningRate float64
	Momentum          float64
	Optimizer         string
	Loss              string
	L2                float64
	Hidden            []int
	Activation        string
	EvalInterval      int
	LogLevel          slog.Level
}

// Default returns the configuration used when no variable is set.
func Default() *Config {
	return &Config{
		Seed:         1,
		Steps:        20,
		LearningRate: 0.05,
		Optimizer:    "sgd",
		Loss:         "sse",
		Hidden:       []int{4, 4},
		Activation:   "relu",
		EvalInterval: 1,
		LogLevel:     slog.LevelInfo,
	}
}

// Load loads the training configuration from environment variables.
// It attempts to find a .env file in the current or parent directories.
// Variables already set in the environment take precedence over the file.
func Load() (*Config, error) {
	// Try to load .env from current or parent directories
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()
	p := parser{}
	p.int64Var(EnvSeed, &cfg.Seed)
	p.intVar(EnvSteps, &cfg.Steps)
	p.floatVar(EnvLearningRate, &cfg.LearningRate)
	p.floatVar(EnvFinalLearningRate, &cfg.FinalLearningRate)
	p.floatVar(EnvMomentum, &cfg.Momentum)
	p.stringVar(EnvOptimizer, &cfg.Optimizer)
	p.stringVar(EnvLoss, &cfg.Loss)
	p.floatVar(EnvL2, &cfg.L2)
	p.intsVar(EnvHidden, &cfg.Hidden)
	p.stringVar(EnvActivation, &cfg.Activation)
	p.intVar(EnvEvalInterval, &cfg.EvalInterval)
	p.levelVar(EnvLogLevel, &cfg.LogLevel)
	if p.err != nil {
		return nil, p.err
	}
	return cfg, nil
}

// loadEnvFile attempts to look up until it finds a .env file
func loadEnvFile() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	// Look up to 5 levels
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return godotenv.Load(envPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil
}

// parser reads typed variables and keeps the first error.
type parser struct {
	err error
}

func (p *parser) lookup(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (p *parser) fail(key, value string, err error) {
	p.err = fmt.Errorf("%s=%q: %w", key, value, err)
}

func (p *parser) stringVar(key string, dst *string) {
	if v, ok := p.lookup(key); ok {
		*dst = v
	}
}

func (p *parser) intVar(key string, dst *int) {
	if v, ok := p.lookup(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) int64Var(key string, dst *int64) {
	if v, ok := p.lookup(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) floatVar(key string, dst *float64) {
	if v, ok := p.lookup(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = f
	}
}

// intsVar parses a comma separated list such as "16,16".
func (p *parser) intsVar(key string, dst *[]int) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	parts := strings.Split(v, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			p.fail(key, v, err)
			return
		}
		if n <= 0 {
			p.fail(key, v, fmt.Errorf("layer width must be positive"))
			return
		}
		out = append(out, n)
	}
	*dst = out
}

func (p *parser) levelVar(key string, dst *slog.Level) {
	if v, ok := p.lookup(key); ok {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = lvl
	}
}
