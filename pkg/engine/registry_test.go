package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

func TestRegistry_Kinds(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []expr.Kind{
		expr.KindConst, expr.KindVar, expr.KindAdd, expr.KindMul, expr.KindDiv, expr.KindCall,
	}, r.Kinds())

	for _, k := range []expr.Kind{expr.KindSub, expr.KindNeg, expr.Kind(42)} {
		rule, err := r.KindRule(k)
		assert.Nil(t, rule)
		assert.ErrorIs(t, err, ErrUnsupportedKind, k.String())
	}
}

func TestRegistry_Funcs(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, expr.Funcs(), r.Funcs())

	for _, f := range expr.Funcs() {
		got, rule, err := r.CallRule(f.String())
		require.NoError(t, err, f.String())
		assert.Equal(t, f, got)
		assert.NotNil(t, rule)
	}

	for _, name := range []string{"Sqrt", "sin", ""} {
		_, rule, err := r.CallRule(name)
		assert.Nil(t, rule)
		assert.ErrorIs(t, err, ErrUnsupportedFunction, name)
	}
}

func TestRegistry_Isolated(t *testing.T) {
	// Separate registries are independent values.
	a, b := NewRegistry(), NewRegistry()
	assert.NotSame(t, a, b)

	ea, err := New(DefaultConfig(), a)
	require.NoError(t, err)
	eb, err := New(DefaultConfig(), b)
	require.NoError(t, err)

	body := expr.Tan(expr.Mul(expr.Const(3), expr.Var()))
	da, err := ea.DifferentiateNode(body)
	require.NoError(t, err)
	db, err := eb.DifferentiateNode(body)
	require.NoError(t, err)
	assert.Equal(t, da.String(), db.String())
}
