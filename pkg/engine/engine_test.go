package engine

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

func def(body expr.ExprNode) expr.FuncDef { return expr.NewFuncDef("x", body) }

func x() expr.ExprNode { return expr.Var() }

// derivAt differentiates body and evaluates the result at x.
func derivAt(t *testing.T, body expr.ExprNode, at float64) float64 {
	t.Helper()
	df, err := Differentiate(def(body))
	require.NoError(t, err)
	got, ok := df.EvalF64(at)
	require.True(t, ok, "derivative %s did not evaluate at %v", df, at)
	return got
}

func centralDiff(t *testing.T, body expr.ExprNode, at float64) float64 {
	t.Helper()
	const h = 1e-6
	hi, ok := body.EvalF64(at + h)
	require.True(t, ok)
	lo, ok := body.EvalF64(at - h)
	require.True(t, ok)
	return (hi - lo) / (2 * h)
}

func TestDifferentiate_Constant(t *testing.T) {
	for _, v := range []float64{5, -3, 0} {
		df, err := Differentiate(def(expr.Const(v)))
		require.NoError(t, err)
		assert.Equal(t, expr.Const(0), df.Body, "d/dx %v", v)
	}
}

func TestDifferentiate_Variable(t *testing.T) {
	df, err := Differentiate(def(x()))
	require.NoError(t, err)
	assert.Equal(t, expr.Const(1), df.Body)
}

func TestDifferentiate_KeepsParam(t *testing.T) {
	df, err := Differentiate(expr.NewFuncDef("t", expr.Sin(expr.Var())))
	require.NoError(t, err)
	assert.Equal(t, "t", df.Param)
	assert.Equal(t, "t => (Cos(t) * 1)", df.String())
}

func TestDifferentiate_Linearity(t *testing.T) {
	got := derivAt(t, expr.Add(expr.Sin(x()), x()), 0)
	assert.InDelta(t, 2.0, got, 1e-9)
}

func TestDifferentiate_ProductRule(t *testing.T) {
	got := derivAt(t, expr.Mul(x(), x()), 3)
	assert.InDelta(t, 6.0, got, 1e-9)
}

func TestDifferentiate_QuotientRule(t *testing.T) {
	body := expr.Div(x(), expr.Const(2))
	for _, at := range []float64{-4, 0, 1, 17} {
		assert.InDelta(t, 0.5, derivAt(t, body, at), 1e-9, "x=%v", at)
	}
}

func TestDifferentiate_ChainRule(t *testing.T) {
	got := derivAt(t, expr.Sin(expr.Mul(expr.Const(2), x())), 0)
	assert.InDelta(t, 2.0, got, 1e-9)
}

func TestDifferentiate_PowerRule(t *testing.T) {
	got := derivAt(t, expr.Pow(x(), expr.Const(3)), 2)
	assert.InDelta(t, 12.0, got, 1e-9)
}

func TestDifferentiate_ExponentialRule(t *testing.T) {
	got := derivAt(t, expr.Pow(expr.Const(2), x()), 0)
	assert.InDelta(t, math.Ln2, got, 1e-9)
}

func TestDifferentiate_GeneralPower(t *testing.T) {
	body := expr.Pow(x(), x())
	got := derivAt(t, body, 2)
	assert.InDelta(t, centralDiff(t, body, 2), got, 1e-4)
	assert.InDelta(t, 4*(1+math.Ln2), got, 1e-9)
}

// TestDifferentiate_ElementaryFunctions checks every elementary function
// applied to x against a central difference.
func TestDifferentiate_ElementaryFunctions(t *testing.T) {
	cases := []struct {
		name   string
		body   expr.ExprNode
		points []float64
	}{
		{"Sin", expr.Sin(x()), []float64{-2, 0, 1, 3}},
		{"Cos", expr.Cos(x()), []float64{-2, 0, 1, 3}},
		{"Tan", expr.Tan(x()), []float64{-1, 0, 0.5, 1.2}},
		{"Exp", expr.Exp(x()), []float64{-2, 0, 1, 2}},
		{"Log", expr.Log(x()), []float64{0.5, 1, 2, 10}},
		{"LogBase", expr.LogBase(x(), expr.Const(10)), []float64{0.5, 1, 2, 10}},
		{"Pow", expr.Pow(x(), expr.Const(2.5)), []float64{0.5, 1, 2, 4}},
		{"Asin", expr.Asin(x()), []float64{-0.9, -0.3, 0, 0.7}},
		{"Acos", expr.Acos(x()), []float64{-0.9, -0.3, 0, 0.7}},
		{"Atan", expr.Atan(x()), []float64{-3, 0, 0.5, 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, at := range tc.points {
				want := centralDiff(t, tc.body, at)
				assert.InDelta(t, want, derivAt(t, tc.body, at), 1e-4, "x=%v", at)
			}
		})
	}
}

func TestDifferentiate_UnsupportedFunction(t *testing.T) {
	df, err := Differentiate(def(expr.Add(x(), expr.Call("Sqrt", x()))))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFunction)
	assert.Nil(t, df.Body, "no partial result")

	var de *Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Sqrt(x)", de.Node.String())
}

func TestDifferentiate_UnsupportedKind(t *testing.T) {
	cases := []struct {
		name string
		body expr.ExprNode
	}{
		{"subtract", expr.Sub(x(), expr.Const(1))},
		{"negate", expr.Neg(x())},
		{"nested", expr.Sin(expr.Mul(expr.Const(2), expr.Neg(x())))},
		{"nil body", nil},
		{"nil child", expr.Add(x(), nil)},
		{"bad binary op", &expr.BinaryNode{Op: expr.BinaryOp(99), Left: x(), Right: x()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Differentiate(def(tc.body))
			assert.ErrorIs(t, err, ErrUnsupportedKind)
		})
	}
}

func TestDifferentiate_MalformedCall(t *testing.T) {
	cases := []struct {
		name string
		body expr.ExprNode
	}{
		{"pow one arg", expr.Call("Pow", x())},
		{"pow three args", expr.Call("Pow", x(), x(), x())},
		{"log no args", expr.Call("Log")},
		{"log three args", expr.Call("Log", x(), x(), x())},
		{"sin two args", expr.Call("Sin", x(), x())},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Differentiate(def(tc.body))
			assert.ErrorIs(t, err, ErrMalformedCall)
		})
	}
}

func TestDifferentiate_TooDeep(t *testing.T) {
	var body expr.ExprNode = x()
	for i := 0; i < 50; i++ {
		body = expr.Sin(body)
	}

	e, err := New(Config{MaxDepth: 20}, NewRegistry())
	require.NoError(t, err)
	_, err = e.Differentiate(def(body))
	assert.ErrorIs(t, err, ErrTooDeep)

	e, err = New(Config{MaxDepth: 100}, NewRegistry())
	require.NoError(t, err)
	_, err = e.Differentiate(def(body))
	assert.NoError(t, err)
}

func TestDifferentiate_DoesNotMutateInput(t *testing.T) {
	left := expr.Sin(x())
	right := expr.Pow(x(), expr.Const(2))
	body := expr.Mul(left, right)
	before := body.String()

	df, err := Differentiate(def(body))
	require.NoError(t, err)
	assert.Equal(t, before, body.String())

	// The product rule splices the original operands into the output.
	sum := df.Body.(*expr.BinaryNode)
	assert.Same(t, left, sum.Left.(*expr.BinaryNode).Left)
	assert.Same(t, right, sum.Right.(*expr.BinaryNode).Left)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(DefaultConfig(), nil)
	assert.Error(t, err)

	_, err = New(Config{MaxDepth: 0}, NewRegistry())
	assert.Error(t, err)

	e, err := New(DefaultConfig(), NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), e.Config())
	assert.NotNil(t, e.Registry())
}

func TestDifferentiate_Concurrent(t *testing.T) {
	body := expr.Div(expr.Pow(x(), x()), expr.Add(expr.Const(1), expr.Atan(x())))
	want, err := Differentiate(def(body))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			df, err := Differentiate(def(body))
			if err == nil {
				results[i] = df.String()
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want.String(), r)
	}
}

func TestError_Message(t *testing.T) {
	_, err := Differentiate(def(expr.Call("Sqrt", x())))
	require.Error(t, err)
	assert.Equal(t, `unsupported function: "Sqrt" at Sqrt(x)`, err.Error())

	_, err = Differentiate(def(expr.Call("Pow", x())))
	require.Error(t, err)
	assert.Equal(t, "malformed call: Pow takes 2 arguments, got 1 at Pow(x)", err.Error())
}

func TestError_TruncatesOnRuneBoundary(t *testing.T) {
	// Odd offset so that byte maxNodeText falls inside a two-byte rune.
	name := "a" + strings.Repeat("é", 100)
	err := &Error{Node: expr.Call(name, x()), Err: ErrUnsupportedFunction}

	msg := err.Error()
	assert.True(t, utf8.ValidString(msg), msg)
	assert.True(t, strings.HasSuffix(msg, "..."), msg)
	assert.Less(t, len(msg), len(name))
}
