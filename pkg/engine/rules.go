package engine

import (
	"github.com/wildfunctions/symdiff/pkg/expr"
)

// Kind rules. Input subtrees are reused in the output without copying.

func diffConst(n expr.ExprNode, d Diff) (expr.ExprNode, error) {
	return expr.Const(0), nil
}

func diffVar(n expr.ExprNode, d Diff) (expr.ExprNode, error) {
	return expr.Const(1), nil
}

func binary(n expr.ExprNode) (*expr.BinaryNode, error) {
	b, ok := n.(*expr.BinaryNode)
	if !ok {
		return nil, fail(n, ErrUnsupportedKind, "%T is not a binary operation", n)
	}
	return b, nil
}

// diffBoth differentiates both operands, left first.
func diffBoth(b *expr.BinaryNode, d Diff) (dl, dr expr.ExprNode, err error) {
	if dl, err = d(b.Left); err != nil {
		return nil, nil, err
	}
	if dr, err = d(b.Right); err != nil {
		return nil, nil, err
	}
	return dl, dr, nil
}

// (u + v)' = u' + v'
func diffAdd(n expr.ExprNode, d Diff) (expr.ExprNode, error) {
	b, err := binary(n)
	if err != nil {
		return nil, err
	}
	dl, dr, err := diffBoth(b, d)
	if err != nil {
		return nil, err
	}
	return expr.Add(dl, dr), nil
}

// (u * v)' = u * v' + v * u'
func diffMul(n expr.ExprNode, d Diff) (expr.ExprNode, error) {
	b, err := binary(n)
	if err != nil {
		return nil, err
	}
	dl, dr, err := diffBoth(b, d)
	if err != nil {
		return nil, err
	}
	return expr.Add(expr.Mul(b.Left, dr), expr.Mul(b.Right, dl)), nil
}

// (u / v)' = (v * u' + (u * -1) * v') / (v * v)
func diffDiv(n expr.ExprNode, d Diff) (expr.ExprNode, error) {
	b, err := binary(n)
	if err != nil {
		return nil, err
	}
	du, dv, err := diffBoth(b, d)
	if err != nil {
		return nil, err
	}
	u, v := b.Left, b.Right
	return expr.Div(
		expr.Add(
			expr.Mul(v, du),
			expr.Mul(expr.Mul(u, expr.Const(-1)), dv),
		),
		expr.Mul(v, v),
	), nil
}

// Elementary function rules. Each applies the chain rule to its first
// argument.

func diffSin(c *expr.CallNode, d Diff) (expr.ExprNode, error) {
	u := c.Args[0]
	du, err := d(u)
	if err != nil {
		return nil, err
	}
	return expr.Mul(expr.Cos(u), du), nil
}

func diffCos(c *expr.CallNode, d Diff) (expr.ExprNode, error) {
	u := c.Args[0]
	du, err := d(u)
	if err != nil {
		return nil, err
	}
	return expr.Mul(expr.Mul(expr.Sin(u), expr.Const(-1)), du), nil
}

func diffExp(c *expr.CallNode, d Diff) (expr.ExprNode, error) {
	u := c.Args[0]
	du, err := d(u)
	if err != nil {
		return nil, err
	}
	return expr.Mul(expr.Exp(u), du), nil
}

// diffLog handles Log(u) and Log(u, b). The base b is treated as a
// constant and never differentiated, even when it contains the variable.
func diffLog(c *expr.CallNode, d Diff) (expr.ExprNode, error) {
	u := c.Args[0]
	du, err := d(u)
	if err != nil {
		return nil, err
	}
	if len(c.Args) == 2 {
		return expr.Div(du, expr.Mul(u, expr.Log(c.Args[1]))), nil
	}
	return expr.Div(du, u), nil
}

func diffTan(c *expr.CallNode, d Diff) (expr.ExprNode, error) {
	u := c.Args[0]
	du, err := d(u)
	if err != nil {
		return nil, err
	}
	cos := expr.Cos(u)
	return expr.Div(du, expr.Mul(cos, cos)), nil
}

// oneMinusSquareRsqrt builds (1 + (-1 * u) * u) ^ -0.5.
func oneMinusSquareRsqrt(u expr.ExprNode) expr.ExprNode {
	return expr.Pow(
		expr.Add(expr.Const(1), expr.Mul(expr.Mul(expr.Const(-1), u), u)),
		expr.Const(-0.5),
	)
}

func diffAsin(c *expr.CallNode, d Diff) (expr.ExprNode, error) {
	u := c.Args[0]
	du, err := d(u)
	if err != nil {
		return nil, err
	}
	return expr.Mul(oneMinusSquareRsqrt(u), du), nil
}

func diffAcos(c *expr.CallNode, d Diff) (expr.ExprNode, error) {
	u := c.Args[0]
	du, err := d(u)
	if err != nil {
		return nil, err
	}
	return expr.Mul(oneMinusSquareRsqrt(u), expr.Mul(du, expr.Const(-1))), nil
}

func diffAtan(c *expr.CallNode, d Diff) (expr.ExprNode, error) {
	u := c.Args[0]
	du, err := d(u)
	if err != nil {
		return nil, err
	}
	return expr.Mul(
		expr.Div(expr.Const(1), expr.Add(expr.Const(1), expr.Mul(u, u))),
		du,
	), nil
}

// diffPow picks a rule from the syntactic shape of base and exponent:
//
//	x ^ k      -> k * x^(k + -1) * x'
//	c ^ v      -> v' * (c^v * ln c)      (v not a literal)
//	otherwise  -> (exp(b * ln a))'
//
// The last case rewrites and differentiates the rewritten tree, so its
// output has an exp/log shape rather than a Pow shape. The rewrite wraps
// the original operands without a new Pow node, so it cannot loop.
func diffPow(c *expr.CallNode, d Diff) (expr.ExprNode, error) {
	a, b := c.Args[0], c.Args[1]
	_, baseVar := a.(*expr.VarNode)
	_, baseConst := a.(*expr.ConstNode)
	_, expConst := b.(*expr.ConstNode)

	switch {
	case baseVar && expConst:
		da, err := d(a)
		if err != nil {
			return nil, err
		}
		return expr.Mul(
			expr.Mul(b, expr.Pow(a, expr.Add(b, expr.Const(-1)))),
			da,
		), nil

	case baseConst && !expConst:
		db, err := d(b)
		if err != nil {
			return nil, err
		}
		return expr.Mul(db, expr.Mul(c, expr.Log(a))), nil

	default:
		return d(expr.Exp(expr.Mul(b, expr.Log(a))))
	}
}
