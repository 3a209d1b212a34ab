package autodiff

// Comparisons look at forward data only. Gradients and graph identity
// play no part, so two distinct nodes with equal data are Equal.

// Equal reports whether v and o hold the same data.
func (v *Value) Equal(o Operand) bool {
	v.mustBeNode()
	return v.data == mustLift(o).data
}

// Less reports whether v < o.
func (v *Value) Less(o Operand) bool {
	v.mustBeNode()
	return v.data < mustLift(o).data
}

// LessEqual reports whether v <= o.
func (v *Value) LessEqual(o Operand) bool {
	v.mustBeNode()
	return v.data <= mustLift(o).data
}

// Greater reports whether v > o.
func (v *Value) Greater(o Operand) bool {
	v.mustBeNode()
	return v.data > mustLift(o).data
}

// GreaterEqual reports whether v >= o.
func (v *Value) GreaterEqual(o Operand) bool {
	v.mustBeNode()
	return v.data >= mustLift(o).data
}
