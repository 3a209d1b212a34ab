package autodiff_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// TestNew_Leaf tests that a new leaf has no history.
func TestNew_Leaf(t *testing.T) {
	v := autodiff.New(3.5)

	assert.Equal(t, 3.5, v.Data())
	assert.Equal(t, 0.0, v.Grad())
	assert.Equal(t, autodiff.OpLeaf, v.Op())
	assert.Empty(t, v.Operands())
	assert.True(t, v.IsLeaf())
}

// TestFromAny tests promotion of Go numeric kinds and rejection of the rest.
func TestFromAny(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"int", 3, 3},
		{"int8", int8(-4), -4},
		{"int64", int64(1 << 40), float64(1 << 40)},
		{"uint16", uint16(7), 7},
		{"float32", float32(0.5), 0.5},
		{"float64", -2.25, -2.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := autodiff.FromAny(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Data())
			assert.True(t, v.IsLeaf())
		})
	}

	invalid := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"string", "1.0"},
		{"bool", true},
		{"value", autodiff.New(1)},
		{"slice", []float64{1}},
	}
	for _, tt := range invalid {
		t.Run("invalid/"+tt.name, func(t *testing.T) {
			_, err := autodiff.FromAny(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, autodiff.ErrInvalidOperand))
		})
	}
}

// TestLift tests that Const becomes a fresh leaf and a *Value is kept as is.
func TestLift(t *testing.T) {
	x := autodiff.New(2)
	got, err := autodiff.Lift(x)
	require.NoError(t, err)
	assert.Same(t, x, got)

	c1, err := autodiff.Lift(autodiff.Const(4))
	require.NoError(t, err)
	c2, err := autodiff.Lift(autodiff.Const(4))
	require.NoError(t, err)
	assert.Equal(t, 4.0, c1.Data())
	assert.NotSame(t, c1, c2)
	assert.True(t, c1.IsLeaf())

	var nilValue *autodiff.Value
	_, err = autodiff.Lift(nilValue)
	assert.True(t, errors.Is(err, autodiff.ErrInvalidOperand))

	_, err = autodiff.Lift(nil)
	assert.True(t, errors.Is(err, autodiff.ErrInvalidOperand))
}

// TestNilOperandPanics tests that binary operators refuse a nil node.
func TestNilOperandPanics(t *testing.T) {
	var nilValue *autodiff.Value
	x := autodiff.New(1)

	assert.Panics(t, func() { x.Add(nilValue) })
	assert.Panics(t, func() { x.Mul(nilValue) })
	assert.Panics(t, func() { x.Less(nilValue) })
}

// TestNilReceiver tests that operators called on a nil node report
// ErrInvalidOperand rather than a bare nil dereference.
func TestNilReceiver(t *testing.T) {
	var nilValue *autodiff.Value
	x := autodiff.New(1)

	panicsWithInvalidOperand := func(name string, f func()) {
		t.Helper()
		defer func() {
			r := recover()
			require.NotNil(t, r, name)
			err, ok := r.(error)
			require.True(t, ok, "%s: panic value %v is not an error", name, r)
			assert.True(t, errors.Is(err, autodiff.ErrInvalidOperand), name)
		}()
		f()
	}

	panicsWithInvalidOperand("Add", func() { nilValue.Add(x) })
	panicsWithInvalidOperand("Mul", func() { nilValue.Mul(x) })
	panicsWithInvalidOperand("Sub", func() { nilValue.Sub(x) })
	panicsWithInvalidOperand("RSub", func() { nilValue.RSub(x) })
	panicsWithInvalidOperand("Neg", func() { nilValue.Neg() })
	panicsWithInvalidOperand("ReLU", func() { nilValue.ReLU() })
	panicsWithInvalidOperand("Tanh", func() { nilValue.Tanh() })
	panicsWithInvalidOperand("Sigmoid", func() { nilValue.Sigmoid() })
	panicsWithInvalidOperand("Exp", func() { nilValue.Exp() })
	panicsWithInvalidOperand("Equal", func() { nilValue.Equal(x) })
	panicsWithInvalidOperand("GreaterEqual", func() { nilValue.GreaterEqual(x) })

	_, err := nilValue.Pow(2)
	assert.True(t, errors.Is(err, autodiff.ErrInvalidOperand))
	_, err = nilValue.Div(x)
	assert.True(t, errors.Is(err, autodiff.ErrInvalidOperand))
	_, err = nilValue.RDiv(x)
	assert.True(t, errors.Is(err, autodiff.ErrInvalidOperand))
	_, err = nilValue.Log()
	assert.True(t, errors.Is(err, autodiff.ErrInvalidOperand))
	_, err = nilValue.ExpChecked()
	assert.True(t, errors.Is(err, autodiff.ErrInvalidOperand))
}

// TestAdd tests value and gradients of a + b.
func TestAdd(t *testing.T) {
	a := autodiff.New(2)
	b := autodiff.New(-7)
	c := a.Add(b)

	assert.Equal(t, -5.0, c.Data())
	assert.Equal(t, autodiff.OpAdd, c.Op())
	assert.Equal(t, []*autodiff.Value{a, b}, c.Operands())

	require.NoError(t, c.Backward())
	assert.Equal(t, 1.0, c.Grad())
	assert.Equal(t, 1.0, a.Grad())
	assert.Equal(t, 1.0, b.Grad())
}

// TestMul tests value and gradients of a * b.
func TestMul(t *testing.T) {
	a := autodiff.New(3)
	b := autodiff.New(-4)
	c := a.Mul(b)

	assert.Equal(t, -12.0, c.Data())
	assert.Equal(t, autodiff.OpMul, c.Op())

	require.NoError(t, c.Backward())
	assert.Equal(t, b.Data(), a.Grad())
	assert.Equal(t, a.Data(), b.Grad())
}

// TestConstOperand tests that raw numbers are promoted on either side.
func TestConstOperand(t *testing.T) {
	x := autodiff.New(5)
	y := x.Mul(autodiff.Const(3)).Add(autodiff.Const(1))

	assert.Equal(t, 16.0, y.Data())
	require.NoError(t, y.Backward())
	assert.Equal(t, 3.0, x.Grad())

	ops := y.Operands()
	require.Len(t, ops, 2)
	assert.True(t, ops[1].IsLeaf())
	assert.Equal(t, 1.0, ops[1].Data())
}

// TestChainRule tests c = (a*b) + a.
func TestChainRule(t *testing.T) {
	a := autodiff.New(2)
	b := autodiff.New(4)
	c := a.Mul(b).Add(a)

	require.NoError(t, c.Backward())
	assert.Equal(t, b.Data()+1.0, a.Grad())
	assert.Equal(t, a.Data(), b.Grad())
}

// TestDiamond tests y = x*x, z = y + y, where x is reached over two paths.
func TestDiamond(t *testing.T) {
	for _, xv := range []float64{-3, 0.5, 1.7, 10} {
		x := autodiff.New(xv)
		y := x.Mul(x)
		z := y.Add(y)

		require.NoError(t, z.Backward())
		assert.InDelta(t, 2.0, y.Grad(), 1e-12)
		assert.InDelta(t, 4*xv, x.Grad(), 1e-12)
	}
}

// TestDiamond_Deep tests a node whose consumers sit at different depths.
func TestDiamond_Deep(t *testing.T) {
	// f = x*(x+1) + x → df/dx = 2x + 2
	x := autodiff.New(3)
	f := x.Mul(x.Add(autodiff.Const(1))).Add(x)

	require.NoError(t, f.Backward())
	assert.InDelta(t, 8.0, x.Grad(), 1e-12)
}

// TestDistinctNodesWithEqualData tests identity-based deduplication.
func TestDistinctNodesWithEqualData(t *testing.T) {
	a := autodiff.New(2)
	b := autodiff.New(2)
	c := a.Mul(b)

	order, err := c.Topo()
	require.NoError(t, err)
	assert.Len(t, order, 3)

	require.NoError(t, c.Backward())
	assert.Equal(t, 2.0, a.Grad())
	assert.Equal(t, 2.0, b.Grad())
}

// TestPow tests value, gradient and the zero exponent.
func TestPow(t *testing.T) {
	x := autodiff.New(3)
	y, err := x.Pow(2)
	require.NoError(t, err)
	assert.Equal(t, 9.0, y.Data())
	assert.Equal(t, autodiff.OpPow, y.Op())
	assert.Len(t, y.Operands(), 1)

	require.NoError(t, y.Backward())
	assert.Equal(t, 6.0, x.Grad())

	z := autodiff.New(0)
	one, err := z.Pow(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, one.Data())
	require.NoError(t, one.Backward())
	assert.Equal(t, 0.0, z.Grad())

	n := autodiff.New(-2)
	cube, err := n.Pow(3)
	require.NoError(t, err)
	assert.Equal(t, -8.0, cube.Data())
	require.NoError(t, cube.Backward())
	assert.Equal(t, 12.0, n.Grad())
}

// TestPow_DomainErrors tests inputs that have no real result.
func TestPow_DomainErrors(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		exponent float64
	}{
		{"negative base fractional exponent", -4, 0.5},
		{"zero base fractional exponent", 0, 0.5},
		{"zero base negative exponent", 0, -1},
		{"nan exponent", 2, math.NaN()},
		{"inf exponent", 2, math.Inf(1)},
		{"overflow", 1e200, 2},
		{"derivative overflow", 1e-160, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := autodiff.New(tt.base).Pow(tt.exponent)
			require.Error(t, err)
			assert.True(t, errors.Is(err, autodiff.ErrNumericDomain))
		})
	}

	// 1/1e-160 is finite, its slope -1/1e-320 is not.
	b := autodiff.New(1e-160)
	_, err := autodiff.New(1).Div(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, autodiff.ErrNumericDomain))
	assert.Equal(t, 0.0, b.Grad())
}

// TestReLU tests both sides of zero.
func TestReLU(t *testing.T) {
	x := autodiff.New(2)
	y := x.ReLU()
	assert.Equal(t, 2.0, y.Data())
	require.NoError(t, y.Backward())
	assert.Equal(t, 1.0, y.Grad())
	assert.Equal(t, 1.0, x.Grad())

	n := autodiff.New(-2)
	m := n.ReLU()
	assert.Equal(t, 0.0, m.Data())
	require.NoError(t, m.Backward())
	assert.Equal(t, 0.0, n.Grad())

	z := autodiff.New(0)
	r := z.ReLU()
	require.NoError(t, r.Backward())
	assert.Equal(t, 0.0, z.Grad())
}

// TestTanh tests value and derivative.
func TestTanh(t *testing.T) {
	x := autodiff.New(0.5)
	y := x.Tanh()
	want := math.Tanh(0.5)
	assert.InDelta(t, want, y.Data(), 1e-15)

	require.NoError(t, y.Backward())
	assert.InDelta(t, 1-want*want, x.Grad(), 1e-15)
}

// TestSigmoid tests σ(0) and its local gradient.
func TestSigmoid(t *testing.T) {
	x := autodiff.New(0)
	y := x.Sigmoid()
	assert.Equal(t, 0.5, y.Data())

	require.NoError(t, y.Backward())
	assert.Equal(t, 0.25, x.Grad())
}

// TestSigmoid_Extremes tests that large inputs neither overflow nor produce NaN.
func TestSigmoid_Extremes(t *testing.T) {
	hi := autodiff.New(800).Sigmoid()
	lo := autodiff.New(-800).Sigmoid()

	assert.Equal(t, 1.0, hi.Data())
	assert.Equal(t, 0.0, lo.Data())
	assert.False(t, math.IsNaN(hi.Data()))
	assert.False(t, math.IsNaN(lo.Data()))
}

// TestSigmoid_Accumulates tests a sigmoid whose operand has another consumer.
func TestSigmoid_Accumulates(t *testing.T) {
	// f = σ(x) + 3x → df/dx = σ'(x) + 3
	x := autodiff.New(0)
	f := x.Sigmoid().Add(x.Mul(autodiff.Const(3)))

	require.NoError(t, f.Backward())
	assert.InDelta(t, 3.25, x.Grad(), 1e-12)

	// Two sigmoids of the same node.
	y := autodiff.New(0)
	g := y.Sigmoid().Add(y.Sigmoid())
	require.NoError(t, g.Backward())
	assert.InDelta(t, 0.5, y.Grad(), 1e-12)
}

// TestExp tests value and derivative.
func TestExp(t *testing.T) {
	x := autodiff.New(1.5)
	y := x.Exp()
	assert.InDelta(t, math.Exp(1.5), y.Data(), 1e-12)

	require.NoError(t, y.Backward())
	assert.InDelta(t, math.Exp(1.5), x.Grad(), 1e-12)
}

// TestExp_Overflow tests that Exp saturates to +Inf while ExpChecked
// refuses the same input.
func TestExp_Overflow(t *testing.T) {
	x := autodiff.New(800)
	assert.True(t, math.IsInf(x.Exp().Data(), 1))

	_, err := x.ExpChecked()
	require.Error(t, err)
	assert.True(t, errors.Is(err, autodiff.ErrNumericDomain))

	y, err := autodiff.New(2).ExpChecked()
	require.NoError(t, err)
	assert.Equal(t, autodiff.OpExp, y.Op())
	require.NoError(t, y.Backward())
	assert.InDelta(t, math.Exp(2), y.Data(), 1e-12)
}

// TestLog tests value, derivative and the epsilon offset.
func TestLog(t *testing.T) {
	for _, xv := range []float64{0.1, 1, math.E, 42} {
		x := autodiff.New(xv)
		y, err := x.Log()
		require.NoError(t, err)
		assert.InDelta(t, math.Log(xv), y.Data(), 1e-12)
		assert.Equal(t, autodiff.OpLog, y.Op())

		require.NoError(t, y.Backward())
		assert.InDelta(t, 1/xv, x.Grad(), 1e-12)
	}

	z := autodiff.New(0)
	y, err := z.Log(autodiff.WithEpsilon(1e-15))
	require.NoError(t, err)
	assert.InDelta(t, math.Log(1e-15), y.Data(), 1e-9)
	require.NoError(t, y.Backward())
	assert.InDelta(t, 1e15, z.Grad(), 1)
}

// TestLog_DomainErrors tests non-positive inputs and invalid epsilons.
func TestLog_DomainErrors(t *testing.T) {
	_, err := autodiff.New(0).Log()
	assert.True(t, errors.Is(err, autodiff.ErrNumericDomain))

	_, err = autodiff.New(-1).Log()
	assert.True(t, errors.Is(err, autodiff.ErrNumericDomain))

	_, err = autodiff.New(-1).Log(autodiff.WithEpsilon(0.5))
	assert.True(t, errors.Is(err, autodiff.ErrNumericDomain))

	_, err = autodiff.New(1).Log(autodiff.WithEpsilon(-1e-9))
	assert.True(t, errors.Is(err, autodiff.ErrNumericDomain))

	_, err = autodiff.New(math.NaN()).Log()
	assert.True(t, errors.Is(err, autodiff.ErrNumericDomain))
}

// TestDerivedOps tests Neg, Sub, RSub, Div and RDiv.
func TestDerivedOps(t *testing.T) {
	a := autodiff.New(6)
	b := autodiff.New(2)

	neg := a.Neg()
	assert.Equal(t, -6.0, neg.Data())

	sub := a.Sub(b)
	assert.Equal(t, 4.0, sub.Data())
	require.NoError(t, sub.Backward())
	assert.Equal(t, 1.0, a.Grad())
	assert.Equal(t, -1.0, b.Grad())

	autodiff.ZeroGrad(a, b)
	rsub := b.RSub(autodiff.Const(10))
	assert.Equal(t, 8.0, rsub.Data())
	require.NoError(t, rsub.Backward())
	assert.Equal(t, -1.0, b.Grad())

	autodiff.ZeroGrad(a, b)
	div, err := a.Div(b)
	require.NoError(t, err)
	assert.Equal(t, 3.0, div.Data())
	require.NoError(t, div.Backward())
	assert.InDelta(t, 0.5, a.Grad(), 1e-12)
	assert.InDelta(t, -1.5, b.Grad(), 1e-12)

	autodiff.ZeroGrad(a, b)
	rdiv, err := b.RDiv(autodiff.Const(1))
	require.NoError(t, err)
	assert.Equal(t, 0.5, rdiv.Data())
	require.NoError(t, rdiv.Backward())
	assert.InDelta(t, -0.25, b.Grad(), 1e-12)

	_, err = a.Div(autodiff.Const(0))
	assert.True(t, errors.Is(err, autodiff.ErrNumericDomain))
	_, err = autodiff.New(0).RDiv(a)
	assert.True(t, errors.Is(err, autodiff.ErrNumericDomain))
}

// TestSum tests folding and the empty case.
func TestSum(t *testing.T) {
	empty := autodiff.Sum()
	assert.Equal(t, 0.0, empty.Data())
	assert.True(t, empty.IsLeaf())

	a := autodiff.New(1)
	assert.Same(t, a, autodiff.Sum(a))

	b, c := autodiff.New(2), autodiff.New(3)
	s := autodiff.Sum(a, b, c, a)
	assert.Equal(t, 7.0, s.Data())
	require.NoError(t, s.Backward())
	assert.Equal(t, 2.0, a.Grad())
	assert.Equal(t, 1.0, b.Grad())
	assert.Equal(t, 1.0, c.Grad())
}

// TestComparisons tests that only data is compared.
func TestComparisons(t *testing.T) {
	a := autodiff.New(2)
	b := autodiff.New(2)
	c := autodiff.New(5)

	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(autodiff.Const(2)))
	assert.True(t, a.Less(c))
	assert.True(t, a.LessEqual(b))
	assert.True(t, c.Greater(autodiff.Const(4.9)))
	assert.True(t, c.GreaterEqual(c))
	assert.False(t, c.Less(a))

	// Gradients do not take part.
	require.NoError(t, a.Mul(c).Backward())
	assert.True(t, a.Equal(b))
}

// TestValueIsImmutable tests that Backward only changes gradients.
func TestValueIsImmutable(t *testing.T) {
	x := autodiff.New(1.5)
	y := x.Tanh()
	z := y.Mul(x)

	before := []float64{x.Data(), y.Data(), z.Data()}
	require.NoError(t, z.Backward())
	require.NoError(t, z.Backward())
	assert.Equal(t, before, []float64{x.Data(), y.Data(), z.Data()})
}

// TestZeroGrad_ReproducesFirstRun tests that a reset step matches a fresh one.
func TestZeroGrad_ReproducesFirstRun(t *testing.T) {
	w := autodiff.New(0.7)
	b := autodiff.New(-0.2)

	step := func(x float64) {
		out := w.Mul(autodiff.Const(x)).Add(b).Tanh()
		require.NoError(t, out.Backward())
	}

	step(1.3)
	first := []float64{w.Grad(), b.Grad()}

	// Without a reset the second forward pass accumulates.
	step(1.3)
	assert.InDelta(t, 2*first[0], w.Grad(), 1e-12)
	assert.InDelta(t, 2*first[1], b.Grad(), 1e-12)

	autodiff.ZeroGrad(w, b, nil)
	assert.Equal(t, 0.0, w.Grad())
	step(1.3)
	assert.Equal(t, first, []float64{w.Grad(), b.Grad()})
}

// TestTopo_PostOrder tests that every node follows its operands.
func TestTopo_PostOrder(t *testing.T) {
	a := autodiff.New(1)
	b := autodiff.New(2)
	c := a.Mul(b)
	d := c.Add(a).Exp()

	order, err := d.Topo()
	require.NoError(t, err)

	pos := make(map[*autodiff.Value]int, len(order))
	for i, v := range order {
		_, dup := pos[v]
		require.False(t, dup, "node listed twice")
		pos[v] = i
	}
	for _, v := range order {
		for _, op := range v.Operands() {
			assert.Less(t, pos[op], pos[v])
		}
	}
	assert.Same(t, d, order[len(order)-1])
	assert.Len(t, order, 5)
}

// TestBackward_LongChain tests that deep graphs do not exhaust the stack.
func TestBackward_LongChain(t *testing.T) {
	const n = 100_000
	x := autodiff.New(1)
	out := x
	for i := 0; i < n; i++ {
		out = out.Add(autodiff.Const(0.5))
	}

	require.NoError(t, out.Backward())
	assert.Equal(t, 1.0, x.Grad())
	assert.InDelta(t, 1+0.5*n, out.Data(), 1e-6)
}

// TestBackward_NilRoot tests the nil receiver.
func TestBackward_NilRoot(t *testing.T) {
	var v *autodiff.Value
	err := v.Backward()
	require.Error(t, err)
	assert.True(t, errors.Is(err, autodiff.ErrInvalidOperand))
}

// TestString tests the debug representation.
func TestString(t *testing.T) {
	v := autodiff.New(2).Add(autodiff.Const(1))
	assert.Equal(t, `Value(data=3, grad=0, op="+")`, v.String())
}
