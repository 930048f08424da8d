package nn

import (
	"fmt"

	"github.com/tektwister/ai_engineering/scalargrad/autograd"
)

func checkPairs(name string, preds, targets []autograd.Value) {
	if len(preds) != len(targets) {
		panic(fmt.Sprintf("nn: %s: %d predictions, %d targets", name, len(preds), len(targets)))
	}
}

// SumSquaredError returns sum((p - t)^2).
func SumSquaredError(preds, targets []autograd.Value) autograd.Value {
	checkPairs("sum squared error", preds, targets)
	terms := make([]autograd.Value, len(preds))
	for i, p := range preds {
		terms[i] = p.Sub(targets[i]).Square()
	}
	return autograd.Sum(terms...)
}

// MeanSquaredError returns mean((p - t)^2).
func MeanSquaredError(preds, targets []autograd.Value) autograd.Value {
	return SumSquaredError(preds, targets).DivScalar(float64(len(preds)))
}

// Hinge returns the mean of max(0, 1 - t*p) for labels t in {-1, +1}.
func Hinge(preds, targets []autograd.Value) autograd.Value {
	checkPairs("hinge", preds, targets)
	terms := make([]autograd.Value, len(preds))
	for i, p := range preds {
		terms[i] = p.Mul(targets[i]).Neg().AddScalar(1).ReLU()
	}
	return autograd.Mean(terms...)
}

// L2Penalty returns alpha * sum(p^2) over params.
func L2Penalty(params []autograd.Value, alpha float64) autograd.Value {
	terms := make([]autograd.Value, len(params))
	for i, p := range params {
		terms[i] = p.Mul(p)
	}
	return autograd.Sum(terms...).MulScalar(alpha)
}

// SignAccuracy returns the fraction of predictions whose sign matches the
// target's sign.
func SignAccuracy(preds, targets []float64) float64 {
	if len(preds) == 0 || len(preds) != len(targets) {
		return 0
	}
	correct := 0
	for i, p := range preds {
		if (p > 0) == (targets[i] > 0) {
			correct++
		}
	}
	return float64(correct) / float64(len(preds))
}
