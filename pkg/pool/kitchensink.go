package pool

import (
	"math/rand"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

func init() {
	Register("kitchensink", func() Pool { return &KitchenSinkPool{} })
}

// KitchenSinkPool uses every elementary function the engine knows.
type KitchenSinkPool struct{}

func (p *KitchenSinkPool) Name() string { return "kitchensink" }

func (p *KitchenSinkPool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
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

func (p *KitchenSinkPool) RandomFunc(rng *rand.Rand) expr.Func {
	return pick(rng, expr.Funcs())
}

var kitchenSinkBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpMul,
	expr.OpDiv,
}

func (p *KitchenSinkPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return pick(rng, kitchenSinkBinary)
}

func (p *KitchenSinkPool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
