package pool

import (
	"math/rand"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

func init() {
	Register("moderate", func() Pool { return &ModeratePool{} })
}

// ModeratePool extends conservative with fractional constants, division,
// atan, log and powers.
type ModeratePool struct{}

func (p *ModeratePool) Name() string { return "moderate" }

func (p *ModeratePool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	r := rng.Float64()
	switch {
	case r < 0.45:
		return &expr.VarNode{}
	case r < 0.85:
		return &expr.ConstNode{Val: float64(rng.Intn(5) + 1)}
	default:
		return &expr.ConstNode{Val: pick(rng, []float64{0.5, 0.25, 1.5})}
	}
}

var moderateFuncs = []expr.Func{
	expr.FuncSin,
	expr.FuncCos,
	expr.FuncExp,
	expr.FuncAtan,
	expr.FuncLog,
	expr.FuncPow,
}

func (p *ModeratePool) RandomFunc(rng *rand.Rand) expr.Func {
	return pick(rng, moderateFuncs)
}

var moderateBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpMul,
	expr.OpDiv,
}

func (p *ModeratePool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return pick(rng, moderateBinary)
}

func (p *ModeratePool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
