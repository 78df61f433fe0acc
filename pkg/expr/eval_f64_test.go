package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertEvalF64(t *testing.T, node ExprNode, x float64, expected float64, tol float64) {
	t.Helper()
	got, ok := node.EvalF64(x)
	require.True(t, ok, "EvalF64 returned ok=false for x=%v", x)
	assert.InDelta(t, expected, got, tol, "EvalF64(x=%v)", x)
}

// TestEvalF64_MatchesMath checks every node shape against the math package.
func TestEvalF64_MatchesMath(t *testing.T) {
	trees := []struct {
		name string
		node ExprNode
		want func(x float64) float64
	}{
		{"var", Var(), func(x float64) float64 { return x }},
		{"const7", Const(7), func(float64) float64 { return 7 }},
		{"neg(x)", Neg(Var()), func(x float64) float64 { return -x }},
		{"x+2", Add(Var(), Const(2)), func(x float64) float64 { return x + 2 }},
		{"x-2", Sub(Var(), Const(2)), func(x float64) float64 { return x - 2 }},
		{"x*3", Mul(Var(), Const(3)), func(x float64) float64 { return x * 3 }},
		{"x/4", Div(Var(), Const(4)), func(x float64) float64 { return x / 4 }},
		{"sin", Sin(Var()), math.Sin},
		{"cos", Cos(Var()), math.Cos},
		{"tan", Tan(Var()), math.Tan},
		{"exp", Exp(Var()), math.Exp},
		{"log", Log(Var()), math.Log},
		{"log2", LogBase(Var(), Const(2)), math.Log2},
		{"pow", Pow(Var(), Const(2.5)), func(x float64) float64 { return math.Pow(x, 2.5) }},
		{"asin", Asin(Div(Var(), Const(20))), func(x float64) float64 { return math.Asin(x / 20) }},
		{"acos", Acos(Div(Var(), Const(20))), func(x float64) float64 { return math.Acos(x / 20) }},
		{"atan", Atan(Var()), math.Atan},
	}

	testXs := []float64{0.5, 1, 2, 3, 7, 10}

	for _, tc := range trees {
		t.Run(tc.name, func(t *testing.T) {
			for _, x := range testXs {
				assertEvalF64(t, tc.node, x, tc.want(x), 1e-12)
			}
		})
	}
}

func TestEvalF64_DivisionByZero(t *testing.T) {
	node := Div(Const(1), Const(0))
	_, ok := node.EvalF64(0)
	assert.False(t, ok, "division by zero should return ok=false")
}

func TestEvalF64_LogDomain(t *testing.T) {
	_, ok := Log(Var()).EvalF64(-1)
	assert.False(t, ok, "log of a negative number should return ok=false")

	_, ok = Log(Var()).EvalF64(0)
	assert.False(t, ok, "log(0) should return ok=false")
}

func TestEvalF64_UnknownOrMalformedCall(t *testing.T) {
	_, ok := Call("Sqrt", Var()).EvalF64(4)
	assert.False(t, ok, "unknown function should not evaluate")

	_, ok = Call("Pow", Var()).EvalF64(2)
	assert.False(t, ok, "Pow with one argument should not evaluate")

	_, ok = Call("Sin").EvalF64(2)
	assert.False(t, ok, "Sin with no arguments should not evaluate")
}

func TestEvalF64_PowVariableBoth(t *testing.T) {
	// 2^2 = 4, 3^3 = 27
	node := Pow(Var(), Var())
	assertEvalF64(t, node, 2, 4, 0)
	assertEvalF64(t, node, 3, 27, 1e-12)
}

func TestFuncDef_EvalF64(t *testing.T) {
	f := NewFuncDef("t", Mul(Var(), Var()))
	got, ok := f.EvalF64(3)
	require.True(t, ok)
	assert.Equal(t, 9.0, got)

	_, ok = FuncDef{Param: "x"}.EvalF64(1)
	assert.False(t, ok, "empty body should not evaluate")
}
