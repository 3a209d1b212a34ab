// Package autodiff implements scalar reverse-mode automatic differentiation.
//
// Every number taking part in a computation is a *Value. Each operator
// returns a new Value that remembers its operands and a local backward
// rule, so the expression graph is built eagerly as the computation runs.
// Calling Backward on the final Value walks that graph and accumulates
// d(root)/d(node) into every reachable node.
//
// Architecture:
//   - Value: immutable forward data, mutable gradient, operand references
//   - Operand: anything that can stand on either side of an operator
//     (*Value or Const)
//   - Backward: iterative post-order DFS, then local rules in reverse order
//
// Usage:
//
//	x := autodiff.New(2.0)
//	y := x.Mul(x)          // y = x²
//	z := y.Add(y)          // z = 2x²
//	if err := z.Backward(); err != nil {
//		return err
//	}
//	fmt.Println(x.Grad())  // dz/dx = 4x = 8.0
//
// Gradients accumulate. Reset parameters with ZeroGrad between steps.
package autodiff

import (
	"fmt"
	"reflect"
)

// Operation tags recorded on the nodes that produce them.
const (
	OpLeaf    = ""
	OpAdd     = "+"
	OpMul     = "*"
	OpPow     = "pow"
	OpReLU    = "relu"
	OpTanh    = "tanh"
	OpExp     = "exp"
	OpSigmoid = "sigmoid"
	OpLog     = "log"
)

// Value is a node in the computation graph holding a single scalar.
//
// The forward data is fixed at construction. Only the gradient changes,
// and only through Backward and ZeroGrad.
type Value struct {
	data     float64  // Forward result
	grad     float64  // Accumulated d(root)/d(this)
	operands []*Value // Nodes this one was computed from (shared, never owned)
	op       string   // Operation tag, for introspection only
	backward func()   // Pushes grad into operands; no-op for leaves
}

// Operand is anything accepted on either side of a binary operator.
//
// *Value is used as is; Const is promoted to a fresh leaf.
type Operand interface {
	value() (*Value, error)
}

// Const is a raw number used as an operand. It becomes a leaf when an
// operator consumes it.
type Const float64

func (c Const) value() (*Value, error) {
	return New(float64(c)), nil
}

func (v *Value) value() (*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil *Value", ErrInvalidOperand)
	}
	return v, nil
}

// New creates a leaf Value with zero gradient and no operands.
func New(data float64) *Value {
	return &Value{
		data:     data,
		backward: noop,
	}
}

// FromAny creates a leaf from any Go integer or floating-point value.
//
// Anything else, including an existing *Value, fails with ErrInvalidOperand:
// a leaf always wraps a raw number.
func FromAny(x any) (*Value, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: nil", ErrInvalidOperand)
	}
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return New(rv.Float()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return New(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return New(float64(rv.Uint())), nil
	default:
		return nil, fmt.Errorf("%w: cannot make a leaf from %T", ErrInvalidOperand, x)
	}
}

// Lift returns the node behind o, promoting a Const to a new leaf.
func Lift(o Operand) (*Value, error) {
	if o == nil {
		return nil, fmt.Errorf("%w: nil operand", ErrInvalidOperand)
	}
	return o.value()
}

// mustLift is Lift for operators that cannot return an error.
// A nil operand is a programming error.
func mustLift(o Operand) *Value {
	v, err := Lift(o)
	if err != nil {
		panic(err)
	}
	return v
}

// mustBeNode panics when an operator is called on a nil *Value.
func (v *Value) mustBeNode() {
	if v == nil {
		panic(fmt.Errorf("%w: nil receiver", ErrInvalidOperand))
	}
}

// newResult builds a non-leaf node. The caller binds backward afterwards,
// since the rule usually closes over the result itself.
func newResult(data float64, op string, operands ...*Value) *Value {
	return &Value{
		data:     data,
		operands: operands,
		op:       op,
		backward: noop,
	}
}

func noop() {}

// Data returns the forward value.
func (v *Value) Data() float64 {
	return v.data
}

// Grad returns the accumulated gradient.
func (v *Value) Grad() float64 {
	return v.grad
}

// Op returns the tag of the operation that produced v ("" for leaves).
func (v *Value) Op() string {
	return v.op
}

// Operands returns a copy of the nodes v was computed from.
func (v *Value) Operands() []*Value {
	if len(v.operands) == 0 {
		return nil
	}
	out := make([]*Value, len(v.operands))
	copy(out, v.operands)
	return out
}

// IsLeaf reports whether v has no operands.
func (v *Value) IsLeaf() bool {
	return len(v.operands) == 0
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	return fmt.Sprintf("Value(data=%g, grad=%g, op=%q)", v.data, v.grad, v.op)
}
