// Package autograd implements a scalar reverse-mode automatic differentiation
// engine.
//
// Values live in a Graph arena. Every operation appends a node that records
// its forward result, the operation kind and the indices of its parents.
// Gradients are kept in a separate slice keyed by node index, so a backward
// pass never allocates closures.
//
//	g := autograd.NewGraph()
//	a := g.Leaf(2)
//	b := g.Leaf(-3)
//	f := a.Mul(b).Add(g.Leaf(10)).ReLU()
//	f.Backward()
//	fmt.Println(a.Grad(), b.Grad()) // -3 2
//
// A Graph is not safe for concurrent use. Independent graphs may be used from
// different goroutines.
package autograd

// Op identifies the operation that produced a node.
type Op uint8

const (
	OpLeaf Op = iota
	OpAdd
	OpMul
	OpReLU
	OpTanh
	OpSigmoid
	OpPow
)

// String returns the short label used in Value.String.
func (o Op) String() string {
	switch o {
	case OpLeaf:
		return ""
	case OpAdd:
		return "+"
	case OpMul:
		return "*"
	case OpReLU:
		return "relu"
	case OpTanh:
		return "tanh"
	case OpSigmoid:
		return "sigmoid"
	case OpPow:
		return "**"
	default:
		return "?"
	}
}

// arity returns the number of parents an op consumes.
func (o Op) arity() int {
	switch o {
	case OpAdd, OpMul:
		return 2
	case OpReLU, OpTanh, OpSigmoid, OpPow:
		return 1
	default:
		return 0
	}
}

const noParent = -1

type node struct {
	op       Op
	data     float64
	parents  [2]int
	exponent float64 // OpPow only
	gen      uint64
}

// Graph is an arena owning every node created through it.
type Graph struct {
	nodes []node
	grads []float64
	gen   uint64
}

// Mark is a position in a Graph arena returned by Graph.Mark.
type Mark struct {
	size int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make([]node, 0, 64),
		grads: make([]float64, 0, 64),
	}
}

// Len returns the number of live nodes in the arena.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Leaf wraps a raw number as a parentless node. Any float is accepted,
// including NaN and the infinities.
func (g *Graph) Leaf(x float64) Value {
	return g.push(node{op: OpLeaf, data: x, parents: [2]int{noParent, noParent}})
}

// Leaves wraps every element of xs as a leaf.
func (g *Graph) Leaves(xs []float64) []Value {
	out := make([]Value, len(xs))
	for i, x := range xs {
		out[i] = g.Leaf(x)
	}
	return out
}

// Mark records the current arena size. Nodes created afterwards can be
// released with Rewind.
func (g *Graph) Mark() Mark {
	return Mark{size: len(g.nodes)}
}

// Rewind drops every node created after m. Handles to dropped nodes become
// stale and panic with ErrStaleValue when used. Nodes created before m,
// typically model parameters, keep their data and gradients.
func (g *Graph) Rewind(m Mark) {
	if m.size > len(g.nodes) {
		panic(&ConstructionError{Op: "rewind", Err: ErrStaleValue})
	}
	g.nodes = g.nodes[:m.size]
	g.grads = g.grads[:m.size]
	g.gen++
}

// ZeroGrad resets the gradient of every node in the arena.
func (g *Graph) ZeroGrad() {
	clear(g.grads)
}

func (g *Graph) push(n node) Value {
	n.gen = g.gen
	g.nodes = append(g.nodes, n)
	g.grads = append(g.grads, 0)
	return Value{g: g, id: len(g.nodes) - 1, gen: n.gen}
}

// resolve validates v as an operand of op on g and returns its node index.
func (g *Graph) resolve(op string, v Value) int {
	if v.g == nil {
		panic(&ConstructionError{Op: op, Err: ErrInvalidValue})
	}
	if v.g != g {
		panic(&ConstructionError{Op: op, Err: ErrForeignGraph})
	}
	if v.id >= len(g.nodes) || g.nodes[v.id].gen != v.gen {
		panic(&ConstructionError{Op: op, Err: ErrStaleValue})
	}
	return v.id
}
