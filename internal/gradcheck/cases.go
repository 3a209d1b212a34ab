package gradcheck

import "github.com/born-ml/scalargrad/internal/autodiff"

// Case is a named expression and the point to check it at.
type Case struct {
	Name string
	F    Func
	At   []float64
}

// StandardCases covers every engine operator, alone and composed.
// Evaluation points keep ReLU away from its kink and Log/Pow inside
// their domains.
func StandardCases() []Case {
	return []Case{
		{
			Name: "a+b",
			At:   []float64{1.5, -2.0},
			F: func(in []*autodiff.Value) (*autodiff.Value, error) {
				return in[0].Add(in[1]), nil
			},
		},
		{
			Name: "a*b",
			At:   []float64{3.0, -0.5},
			F: func(in []*autodiff.Value) (*autodiff.Value, error) {
				return in[0].Mul(in[1]), nil
			},
		},
		{
			Name: "(a*b)+a",
			At:   []float64{2.0, 4.0},
			F: func(in []*autodiff.Value) (*autodiff.Value, error) {
				return in[0].Mul(in[1]).Add(in[0]), nil
			},
		},
		{
			Name: "x^3",
			At:   []float64{1.3},
			F: func(in []*autodiff.Value) (*autodiff.Value, error) {
				return in[0].Pow(3)
			},
		},
		{
			Name: "x^0.5",
			At:   []float64{2.25},
			F: func(in []*autodiff.Value) (*autodiff.Value, error) {
				return in[0].Pow(0.5)
			},
		},
		{
			Name: "a/b",
			At:   []float64{1.0, 4.0},
			F: func(in []*autodiff.Value) (*autodiff.Value, error) {
				return in[0].Div(in[1])
			},
		},
		{
			Name: "relu(a-b)",
			At:   []float64{3.0, 1.0},
			F: func(in []*autodiff.Value) (*autodiff.Value, error) {
				return in[0].Sub(in[1]).ReLU(), nil
			},
		},
		{
			Name: "tanh(x)",
			At:   []float64{0.7},
			F: func(in []*autodiff.Value) (*autodiff.Value, error) {
				return in[0].Tanh(), nil
			},
		},
		{
			Name: "sigmoid(x)*sigmoid(x)",
			At:   []float64{0.3},
			F: func(in []*autodiff.Value) (*autodiff.Value, error) {
				s := in[0].Sigmoid()
				return s.Mul(s), nil
			},
		},
		{
			Name: "sigmoid(x)+sigmoid(x*2)",
			At:   []float64{-0.4},
			F: func(in []*autodiff.Value) (*autodiff.Value, error) {
				return in[0].Sigmoid().Add(in[0].Mul(autodiff.Const(2)).Sigmoid()), nil
			},
		},
		{
			Name: "exp(x)",
			At:   []float64{1.1},
			F: func(in []*autodiff.Value) (*autodiff.Value, error) {
				return in[0].Exp(), nil
			},
		},
		{
			Name: "log(x)",
			At:   []float64{2.5},
			F: func(in []*autodiff.Value) (*autodiff.Value, error) {
				return in[0].Log()
			},
		},
		{
			Name: "y=x*x; y+y",
			At:   []float64{1.7},
			F: func(in []*autodiff.Value) (*autodiff.Value, error) {
				y := in[0].Mul(in[0])
				return y.Add(y), nil
			},
		},
		{
			Name: "log(exp(a)+exp(b))",
			At:   []float64{0.2, -1.3},
			F: func(in []*autodiff.Value) (*autodiff.Value, error) {
				return in[0].Exp().Add(in[1].Exp()).Log()
			},
		},
	}
}
