package engine

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/symdiff/pkg/expr"
	"github.com/wildfunctions/symdiff/pkg/verify"
)

func sampleReport(t *testing.T, body expr.ExprNode) Report {
	t.Helper()
	f := def(body)
	df, err := Differentiate(f)
	require.NoError(t, err)
	r := NewReport("sample", f, df)
	res := verify.Check(f, df, []float64{-1, 0.5}, verify.DefaultOptions())
	r.Verification = &res
	return r
}

func TestNewReport(t *testing.T) {
	r := sampleReport(t, expr.Mul(expr.Var(), expr.Var()))
	assert.Equal(t, "x", r.Param)
	assert.Equal(t, "x => (x * x)", r.Input)
	assert.Equal(t, "x => ((x * 1) + (x * 1))", r.Derivative)
	assert.Equal(t, 3, r.InputNodes)
	assert.Equal(t, 7, r.DerivativeNodes)
	assert.Empty(t, r.Warnings)
	assert.True(t, r.Verification.OK)
}

func TestNewReport_VariableLogBase(t *testing.T) {
	r := sampleReport(t, expr.LogBase(expr.Const(3), expr.Var()))
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "logarithm base")
}

func TestWriteText(t *testing.T) {
	r := sampleReport(t, expr.Sin(expr.Var()))
	var buf bytes.Buffer
	WriteText(&buf, r)

	out := buf.String()
	assert.Contains(t, out, "Name:       sample")
	assert.Contains(t, out, "Derivative: x => (Cos(x) * 1)")
	assert.Contains(t, out, "Check:      ok (2/2 points")
}

func TestWriteJSON(t *testing.T) {
	r := sampleReport(t, expr.Exp(expr.Var()))
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, r))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "x => (Exp(x) * 1)", decoded["derivative"])
	assert.Contains(t, decoded, "verification")
}

func TestWriteLaTeX(t *testing.T) {
	r := sampleReport(t, expr.Div(expr.Var(), expr.Const(2)))
	r.Name = "half_x"
	var buf bytes.Buffer
	WriteLaTeX(&buf, r)

	out := buf.String()
	assert.Contains(t, out, `\begin{document}`)
	assert.Contains(t, out, `\texttt{half\_x}`)
	assert.Contains(t, out, "f'(x) = ")
	assert.Contains(t, out, `\end{document}`)
}
