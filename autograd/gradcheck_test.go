package autograd

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
)

// gradCheckTol is the agreement required between backprop and central
// differences.
const gradCheckTol = 1e-4

type scalarFunc func(g *Graph, x []Value) Value

// numericGradient estimates df/dx with central differences, rebuilding the
// graph for every evaluation.
func numericGradient(f scalarFunc, x []float64) []float64 {
	eval := func(x []float64) float64 {
		g := NewGraph()
		return f(g, g.Leaves(x)).Data()
	}
	return fd.Gradient(nil, eval, x, &fd.Settings{Formula: fd.Central, Step: 1e-6})
}

func analyticGradient(f scalarFunc, x []float64) []float64 {
	g := NewGraph()
	leaves := g.Leaves(x)
	f(g, leaves).Backward()

	grads := make([]float64, len(leaves))
	for i, l := range leaves {
		grads[i] = l.Grad()
	}
	return grads
}

func TestGradientMatchesFiniteDifferences(t *testing.T) {
	funcs := []struct {
		name string
		f    scalarFunc
	}{
		{
			name: "Mixed",
			f: func(g *Graph, x []Value) Value {
				left := x[0].Mul(x[1]).Add(x[2]).Tanh().Mul(x[2].Sigmoid())
				gate := x[0].AddScalar(2).ReLU()
				ratio := x[1].Square().Div(x[2].Square().AddScalar(1))
				return left.Add(gate).Sub(ratio)
			},
		},
		{
			name: "Diamond",
			f: func(g *Graph, x []Value) Value {
				h := x[0].Mul(x[1])
				return h.Mul(h).Add(h.Tanh()).Add(h.Mul(x[0]).Sigmoid()).Add(x[2].Mul(h))
			},
		},
		{
			name: "Powers",
			f: func(g *Graph, x []Value) Value {
				norm := x[0].Square().Add(x[2].Square()).AddScalar(1).Pow(0.5)
				return norm.Mul(x[1]).Add(x[1].Pow(3)).Add(Mean(x...))
			},
		},
		{
			name: "DeepChain",
			f: func(g *Graph, x []Value) Value {
				out := Dot(x, x)
				for i := 0; i < 10; i++ {
					out = out.MulScalar(0.5).Tanh().Add(x[i%len(x)])
				}
				return out
			},
		},
	}

	points := [][]float64{
		{-1.5, 0, 0.7},
		{0.25, -2, 0},
		{1, 3, -0.5},
		{0, 0.4, -1.2},
	}

	for _, fn := range funcs {
		for i, x := range points {
			t.Run(fmt.Sprintf("%s/%d", fn.name, i), func(t *testing.T) {
				analytic := analyticGradient(fn.f, x)
				numeric := numericGradient(fn.f, x)
				require.Len(t, analytic, len(numeric))
				for j := range analytic {
					assert.InDelta(t, numeric[j], analytic[j], gradCheckTol, "d/dx%d at %v", j, x)
				}
				assert.True(t, floats.EqualApprox(analytic, numeric, gradCheckTol))
			})
		}
	}
}
