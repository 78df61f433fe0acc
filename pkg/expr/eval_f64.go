package expr

import "math"

// finite wraps a float64 result, rejecting NaN and ±Inf.
func finite(r float64) (float64, bool) {
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, false
	}
	return r, true
}

// EvalF64 for VarNode returns x.
func (v *VarNode) EvalF64(x float64) (float64, bool) {
	return x, true
}

// EvalF64 for ConstNode returns the constant value.
func (c *ConstNode) EvalF64(x float64) (float64, bool) {
	return finite(c.Val)
}

// EvalF64 for UnaryNode dispatches on op.
func (u *UnaryNode) EvalF64(x float64) (float64, bool) {
	child, ok := u.Child.EvalF64(x)
	if !ok {
		return 0, false
	}

	switch u.Op {
	case OpNeg:
		return -child, true
	default:
		return 0, false
	}
}

// EvalF64 for BinaryNode dispatches on op.
func (b *BinaryNode) EvalF64(x float64) (float64, bool) {
	left, ok := b.Left.EvalF64(x)
	if !ok {
		return 0, false
	}
	right, ok := b.Right.EvalF64(x)
	if !ok {
		return 0, false
	}

	switch b.Op {
	case OpAdd:
		return finite(left + right)
	case OpSub:
		return finite(left - right)
	case OpMul:
		return finite(left * right)
	case OpDiv:
		if right == 0 {
			return 0, false
		}
		return finite(left / right)
	default:
		return 0, false
	}
}

// EvalF64 for CallNode applies the host math library. Unknown names and
// wrong argument counts do not evaluate.
func (c *CallNode) EvalF64(x float64) (float64, bool) {
	f, ok := LookupFunc(c.Func)
	if !ok {
		return 0, false
	}
	lo, hi := f.Arity()
	if len(c.Args) < lo || len(c.Args) > hi {
		return 0, false
	}

	args := make([]float64, len(c.Args))
	for i, a := range c.Args {
		v, ok := a.EvalF64(x)
		if !ok {
			return 0, false
		}
		args[i] = v
	}
	u := args[0]

	switch f {
	case FuncSin:
		return finite(math.Sin(u))
	case FuncCos:
		return finite(math.Cos(u))
	case FuncTan:
		return finite(math.Tan(u))
	case FuncExp:
		return finite(math.Exp(u))
	case FuncLog:
		if len(args) == 2 {
			return finite(math.Log(u) / math.Log(args[1]))
		}
		return finite(math.Log(u))
	case FuncPow:
		return finite(math.Pow(u, args[1]))
	case FuncAsin:
		return finite(math.Asin(u))
	case FuncAcos:
		return finite(math.Acos(u))
	case FuncAtan:
		return finite(math.Atan(u))
	default:
		return 0, false
	}
}
