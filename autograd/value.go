package autograd

import (
	"fmt"
	"math"
)

// Value is a handle to a scalar node in a Graph. Values are cheap to copy.
// The zero Value is not usable.
type Value struct {
	g   *Graph
	id  int
	gen uint64
}

// Graph returns the arena that owns v.
func (v Value) Graph() *Graph {
	return v.g
}

func (v Value) node(op string) *node {
	id := v.unary(op)
	return &v.g.nodes[id]
}

// Data returns the forward value.
func (v Value) Data() float64 {
	return v.node("data").data
}

// SetData overwrites the value of a leaf. Optimizers use it to update
// parameters between forward passes.
func (v Value) SetData(x float64) {
	n := v.node("set data")
	if n.op != OpLeaf {
		panic(&ConstructionError{Op: "set data", Err: ErrNotLeaf})
	}
	n.data = x
}

// Grad returns the accumulated gradient.
func (v Value) Grad() float64 {
	id := v.unary("grad")
	return v.g.grads[id]
}

// ZeroGrad resets the gradient of v only.
func (v Value) ZeroGrad() {
	id := v.unary("zero grad")
	v.g.grads[id] = 0
}

// Op returns the operation that produced v.
func (v Value) Op() Op {
	return v.node("op").op
}

// IsLeaf reports whether v has no parents.
func (v Value) IsLeaf() bool {
	return v.Op() == OpLeaf
}

// Parents returns the operands v was computed from, in operand order.
// The same Value appears twice for an operation like a.Mul(a).
func (v Value) Parents() []Value {
	n := v.node("parents")
	out := make([]Value, 0, 2)
	for _, p := range n.parents[:n.op.arity()] {
		out = append(out, Value{g: v.g, id: p, gen: v.g.nodes[p].gen})
	}
	return out
}

// Add returns v + other.
func (v Value) Add(other Value) Value {
	a, b := v.binary("add", other)
	return v.g.push(node{
		op:      OpAdd,
		data:    v.g.nodes[a].data + v.g.nodes[b].data,
		parents: [2]int{a, b},
	})
}

// Mul returns v * other.
func (v Value) Mul(other Value) Value {
	a, b := v.binary("mul", other)
	return v.g.push(node{
		op:      OpMul,
		data:    v.g.nodes[a].data * v.g.nodes[b].data,
		parents: [2]int{a, b},
	})
}

// ReLU returns max(0, v). The derivative at exactly zero is taken as 0.
func (v Value) ReLU() Value {
	a := v.unary("relu")
	x := v.g.nodes[a].data
	out := 0.0
	if x > 0 {
		out = x
	}
	return v.g.push(node{op: OpReLU, data: out, parents: [2]int{a, noParent}})
}

// Tanh returns the hyperbolic tangent of v.
func (v Value) Tanh() Value {
	a := v.unary("tanh")
	return v.g.push(node{
		op:      OpTanh,
		data:    math.Tanh(v.g.nodes[a].data),
		parents: [2]int{a, noParent},
	})
}

// Sigmoid returns 1 / (1 + exp(-v)).
func (v Value) Sigmoid() Value {
	a := v.unary("sigmoid")
	return v.g.push(node{
		op:      OpSigmoid,
		data:    1 / (1 + math.Exp(-v.g.nodes[a].data)),
		parents: [2]int{a, noParent},
	})
}

// Pow returns v raised to the constant exponent k.
func (v Value) Pow(k float64) Value {
	a := v.unary("pow")
	return v.g.push(node{
		op:       OpPow,
		data:     math.Pow(v.g.nodes[a].data, k),
		parents:  [2]int{a, noParent},
		exponent: k,
	})
}

func (v Value) unary(op string) int {
	if v.g == nil {
		panic(&ConstructionError{Op: op, Err: ErrInvalidValue})
	}
	return v.g.resolve(op, v)
}

func (v Value) binary(op string, other Value) (int, int) {
	a := v.unary(op)
	return a, v.g.resolve(op, other)
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if v.g == nil {
		return "Value(<nil>)"
	}
	n := v.node("string")
	label := n.op.String()
	if n.op == OpPow {
		label = fmt.Sprintf("**%g", n.exponent)
	}
	return fmt.Sprintf("Value(data=%f, grad=%f, op=%s)", n.data, v.g.grads[v.id], label)
}
