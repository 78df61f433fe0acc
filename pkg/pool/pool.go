package pool

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

// Pool provides random building blocks for constructing expression trees.
// Trees from a pool use only shapes the engine can differentiate, and keep
// function arguments inside their real domains for positive x.
type Pool interface {
	Name() string
	RandomLeaf(rng *rand.Rand) expr.ExprNode
	RandomFunc(rng *rand.Rand) expr.Func
	RandomBinary(rng *rand.Rand) expr.BinaryOp
	RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode
}

var registry = map[string]func() Pool{}

// Register adds a pool constructor to the registry.
func Register(name string, constructor func() Pool) {
	registry[name] = constructor
}

// Get returns a pool by name.
func Get(name string) (Pool, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown pool: %s", name)
	}
	return ctor(), nil
}

// Names returns all registered pool names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// randomTree is a shared helper for building random trees.
func randomTree(p Pool, rng *rand.Rand, maxDepth int) expr.ExprNode {
	if maxDepth <= 1 {
		return p.RandomLeaf(rng)
	}
	// Bias toward leaves at shallow depths to keep trees small
	r := rng.Float64()
	switch {
	case r < 0.3:
		return p.RandomLeaf(rng)
	case r < 0.65:
		return randomCall(p, rng, p.RandomFunc(rng), maxDepth-1)
	default:
		op := p.RandomBinary(rng)
		left := randomTree(p, rng, maxDepth-1)
		right := randomTree(p, rng, maxDepth-1)
		if op == expr.OpDiv {
			right = positive(right)
		}
		return &expr.BinaryNode{Op: op, Left: left, Right: right}
	}
}

// randomCall applies f to a random subtree, wrapping the argument so it
// stays inside f's domain.
func randomCall(p Pool, rng *rand.Rand, f expr.Func, maxDepth int) expr.ExprNode {
	u := randomTree(p, rng, maxDepth)
	switch f {
	case expr.FuncLog:
		if rng.Intn(2) == 0 {
			return expr.LogBase(positive(u), expr.Const(pick(rng, logBases)))
		}
		return expr.Log(positive(u))
	case expr.FuncTan, expr.FuncAsin, expr.FuncAcos:
		return &expr.CallNode{Func: f.String(), Args: []expr.ExprNode{halfSin(u)}}
	case expr.FuncPow:
		return randomPow(rng, u)
	default:
		return &expr.CallNode{Func: f.String(), Args: []expr.ExprNode{u}}
	}
}

var (
	logBases  = []float64{2, 10}
	exponents = []float64{2, 3, 0.5, -1}
	powBases  = []float64{2, 3, 0.5}
)

// randomPow covers every shape the power rule distinguishes.
func randomPow(rng *rand.Rand, u expr.ExprNode) expr.ExprNode {
	switch rng.Intn(4) {
	case 0:
		return expr.Pow(expr.Var(), expr.Const(pick(rng, exponents)))
	case 1:
		return expr.Pow(expr.Const(pick(rng, powBases)), u)
	case 2:
		return expr.Pow(expr.Var(), expr.Var())
	default:
		return expr.Pow(expr.Add(expr.Const(2), expr.Sin(u)), u)
	}
}

// positive maps u to 2 + sin(u), which lies in [1, 3].
func positive(u expr.ExprNode) expr.ExprNode {
	return expr.Add(expr.Const(2), expr.Sin(u))
}

// halfSin maps u to 0.5 * sin(u), which lies in [-0.5, 0.5].
func halfSin(u expr.ExprNode) expr.ExprNode {
	return expr.Mul(expr.Const(0.5), expr.Sin(u))
}

// pick returns a random element of xs.
func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.Intn(len(xs))]
}
