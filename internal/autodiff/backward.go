package autodiff

import "fmt"

// Visitation states for the traversal.
const (
	white = iota // Not reached yet
	gray         // On the DFS stack
	black        // All operands finished, appended to the order
)

// frame is one entry of the explicit DFS stack.
type frame struct {
	node *Value
	next int // Index of the next operand to explore
}

// Backward computes d(v)/d(node) for v and every node reachable from it.
//
// Algorithm:
//  1. Build a post-order of the graph with an iterative DFS, so every node
//     comes after all of its operands
//  2. Seed v's gradient with 1
//  3. Walk the order in reverse, running each node's local rule once
//
// Step 3 guarantees every consumer of a node has already pushed its share
// of the gradient before that node distributes it further, which is what
// makes shared subexpressions (diamonds) come out right.
//
// Gradients are accumulated, never reset. Leaves reused across several
// graphs collect the sum of all Backward calls until ZeroGrad is applied.
// Calling Backward twice on the same graph also compounds the gradients of
// interior nodes; zero every node in Topo first if that is not wanted.
//
// Returns an error wrapping ErrGraphCycle, without touching any gradient,
// if the graph is not acyclic.
func (v *Value) Backward() error {
	order, err := v.Topo()
	if err != nil {
		return err
	}

	v.grad = 1.0
	for i := len(order) - 1; i >= 0; i-- {
		order[i].backward()
	}
	return nil
}

// Topo returns every node reachable from v in post-order: each node appears
// after all of its operands, and v itself is last.
//
// Nodes are deduplicated by identity, never by value. The traversal uses
// an explicit stack, so long chains do not grow the goroutine stack.
func (v *Value) Topo() ([]*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil root", ErrInvalidOperand)
	}

	state := map[*Value]uint8{v: gray}
	order := make([]*Value, 0, 64)
	stack := []frame{{node: v}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next < len(top.node.operands) {
			child := top.node.operands[top.next]
			top.next++

			switch state[child] {
			case white:
				state[child] = gray
				stack = append(stack, frame{node: child})
			case gray:
				// Back-edge: child is still waiting on its own operands.
				return nil, fmt.Errorf("%w: %s reached from %s", ErrGraphCycle, child, top.node)
			}
			continue
		}

		state[top.node] = black
		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}

	return order, nil
}

// ZeroGrad resets the gradient of every given value to 0.
//
// Call it on the parameters (or on the whole Topo of a graph) before a new
// Backward when accumulated gradients from earlier steps must not leak in.
func ZeroGrad(vs ...*Value) {
	for _, v := range vs {
		if v != nil {
			v.grad = 0
		}
	}
}
