package pool

import (
	"math/rand"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

func init() {
	Register("conservative", func() Pool { return &ConservativePool{} })
}

// ConservativePool provides basic building blocks: x, constants 1-5,
// sin, cos, exp, addition and multiplication.
type ConservativePool struct{}

func (p *ConservativePool) Name() string { return "conservative" }

func (p *ConservativePool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	if rng.Float64() < 0.5 {
		return &expr.VarNode{}
	}
	return &expr.ConstNode{Val: float64(rng.Intn(5) + 1)}
}

var conservativeFuncs = []expr.Func{
	expr.FuncSin,
	expr.FuncCos,
	expr.FuncExp,
}

func (p *ConservativePool) RandomFunc(rng *rand.Rand) expr.Func {
	return pick(rng, conservativeFuncs)
}

var conservativeBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpMul,
}

func (p *ConservativePool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return pick(rng, conservativeBinary)
}

func (p *ConservativePool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
