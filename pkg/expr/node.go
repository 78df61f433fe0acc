package expr

// ExprNode is the interface for all expression tree nodes.
//
// Nodes are immutable once built. Consumers read them and build new nodes,
// so subtrees may be shared freely between trees.
type ExprNode interface {
	Kind() Kind
	EvalF64(x float64) (float64, bool)
	String() string
	LaTeX() string
	NodeCount() int
	Depth() int
}

// Kind tags the syntactic shape of a node.
type Kind int

const (
	KindConst Kind = iota
	KindVar
	KindAdd
	KindSub
	KindMul
	KindDiv
	KindNeg
	KindCall
)

var kindNames = map[Kind]string{
	KindConst: "Constant",
	KindVar:   "Variable",
	KindAdd:   "Add",
	KindSub:   "Subtract",
	KindMul:   "Multiply",
	KindDiv:   "Divide",
	KindNeg:   "Negate",
	KindCall:  "Call",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}

// UnaryOp identifies a unary operation.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
)

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
)

// VarNode represents the single free variable.
type VarNode struct{}

// ConstNode represents a literal.
type ConstNode struct {
	Val float64
}

// UnaryNode applies a unary operation to a child expression.
type UnaryNode struct {
	Op    UnaryOp
	Child ExprNode
}

// BinaryNode applies a binary operation to two child expressions.
type BinaryNode struct {
	Op          BinaryOp
	Left, Right ExprNode
}

// CallNode applies a named elementary function to its arguments.
// Func holds the function's canonical name, see LookupFunc.
type CallNode struct {
	Func string
	Args []ExprNode
}

func (v *VarNode) Kind() Kind   { return KindVar }
func (c *ConstNode) Kind() Kind { return KindConst }
func (c *CallNode) Kind() Kind  { return KindCall }

func (u *UnaryNode) Kind() Kind {
	switch u.Op {
	case OpNeg:
		return KindNeg
	default:
		return Kind(-1)
	}
}

func (b *BinaryNode) Kind() Kind {
	switch b.Op {
	case OpAdd:
		return KindAdd
	case OpSub:
		return KindSub
	case OpMul:
		return KindMul
	case OpDiv:
		return KindDiv
	default:
		return Kind(-1)
	}
}

// FuncDef is a one-parameter function definition: Param => Body.
type FuncDef struct {
	Param string
	Body  ExprNode
}

// DefaultParam is the parameter name used when none is given.
const DefaultParam = "x"

// NewFuncDef returns a definition of body over param. An empty param
// falls back to DefaultParam.
func NewFuncDef(param string, body ExprNode) FuncDef {
	if param == "" {
		param = DefaultParam
	}
	return FuncDef{Param: param, Body: body}
}

func (f FuncDef) String() string {
	return f.Param + " => " + render(f.Body, f.Param)
}

func (f FuncDef) LaTeX() string {
	return "f(" + f.Param + ") = " + renderLaTeX(f.Body, f.Param)
}

// EvalF64 evaluates the body with the parameter bound to x.
func (f FuncDef) EvalF64(x float64) (float64, bool) {
	if f.Body == nil {
		return 0, false
	}
	return f.Body.EvalF64(x)
}
