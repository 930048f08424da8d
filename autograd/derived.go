package autograd

// Operations in this file are compositions of the primitives. They add no
// backward rules of their own.

// Neg returns -v.
func (v Value) Neg() Value {
	return v.MulScalar(-1)
}

// Sub returns v - other.
func (v Value) Sub(other Value) Value {
	return v.Add(other.Neg())
}

// Div returns v / other. Division by zero yields an infinity or NaN.
func (v Value) Div(other Value) Value {
	return v.Mul(other.Pow(-1))
}

// Square returns v * v.
func (v Value) Square() Value {
	return v.Pow(2)
}

// AddScalar returns v + x, wrapping x as a new leaf.
func (v Value) AddScalar(x float64) Value {
	return v.Add(v.constant("add", x))
}

// SubScalar returns v - x.
func (v Value) SubScalar(x float64) Value {
	return v.AddScalar(-x)
}

// MulScalar returns v * x, wrapping x as a new leaf.
func (v Value) MulScalar(x float64) Value {
	return v.Mul(v.constant("mul", x))
}

// DivScalar returns v / x.
func (v Value) DivScalar(x float64) Value {
	return v.MulScalar(1 / x)
}

func (v Value) constant(op string, x float64) Value {
	v.unary(op)
	return v.g.Leaf(x)
}

// Sum adds vs left to right. It panics if vs is empty.
func Sum(vs ...Value) Value {
	if len(vs) == 0 {
		panic(&ConstructionError{Op: "sum", Err: ErrNoOperands})
	}
	out := vs[0]
	for _, v := range vs[1:] {
		out = out.Add(v)
	}
	return out
}

// Mean returns the arithmetic mean of vs. It panics if vs is empty.
func Mean(vs ...Value) Value {
	return Sum(vs...).DivScalar(float64(len(vs)))
}

// Dot returns sum(a[i] * b[i]).
func Dot(a, b []Value) Value {
	if len(a) != len(b) {
		panic(&ConstructionError{Op: "dot", Err: ErrLength})
	}
	if len(a) == 0 {
		panic(&ConstructionError{Op: "dot", Err: ErrNoOperands})
	}
	out := a[0].Mul(b[0])
	for i := 1; i < len(a); i++ {
		out = out.Add(a[i].Mul(b[i]))
	}
	return out
}
