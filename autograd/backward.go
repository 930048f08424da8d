package autograd

import "math"

// Backward propagates gradients from v to every node that contributed to it.
//
// Gradients accumulate, so reachable nodes should be zeroed first unless
// accumulation across several passes is intended. Calling Backward on a leaf
// does nothing.
func (v Value) Backward() {
	g := v.g
	root := v.unary("backward")
	if g.nodes[root].op == OpLeaf {
		return
	}

	topo := g.topoSort(root)
	g.grads[root] = 1
	for i := len(topo) - 1; i >= 0; i-- {
		g.propagate(topo[i])
	}
}

// topoSort returns the nodes reachable from root in depth-first post-order:
// every node appears after all of its parents.
func (g *Graph) topoSort(root int) []int {
	type frame struct {
		id   int
		next int
	}
	visited := make([]bool, root+1)
	topo := make([]int, 0, root+1)
	stack := []frame{{id: root}}
	visited[root] = true

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		n := &g.nodes[top.id]
		if top.next < n.op.arity() {
			p := n.parents[top.next]
			top.next++
			if !visited[p] {
				visited[p] = true
				stack = append(stack, frame{id: p})
			}
			continue
		}
		topo = append(topo, top.id)
		stack = stack[:len(stack)-1]
	}
	return topo
}

// propagate applies the chain rule for a single node, adding its
// contribution to each parent's gradient.
func (g *Graph) propagate(id int) {
	n := &g.nodes[id]
	grad := g.grads[id]
	a, b := n.parents[0], n.parents[1]

	switch n.op {
	case OpLeaf:
	case OpAdd:
		g.grads[a] += grad
		g.grads[b] += grad
	case OpMul:
		g.grads[a] += g.nodes[b].data * grad
		g.grads[b] += g.nodes[a].data * grad
	case OpReLU:
		if g.nodes[a].data > 0 {
			g.grads[a] += grad
		}
	case OpTanh:
		g.grads[a] += (1 - n.data*n.data) * grad
	case OpSigmoid:
		g.grads[a] += n.data * (1 - n.data) * grad
	case OpPow:
		g.grads[a] += n.exponent * math.Pow(g.nodes[a].data, n.exponent-1) * grad
	default:
		panic("autograd: unknown op " + n.op.String())
	}
}
