package expr

// Func identifies one of the recognized elementary functions.
type Func int

const (
	FuncSin Func = iota
	FuncCos
	FuncPow
	FuncExp
	FuncLog
	FuncTan
	FuncAsin
	FuncAcos
	FuncAtan

	numFuncs
)

var funcNames = [numFuncs]string{
	FuncSin:  "Sin",
	FuncCos:  "Cos",
	FuncPow:  "Pow",
	FuncExp:  "Exp",
	FuncLog:  "Log",
	FuncTan:  "Tan",
	FuncAsin: "Asin",
	FuncAcos: "Acos",
	FuncAtan: "Atan",
}

var funcsByName = func() map[string]Func {
	m := make(map[string]Func, numFuncs)
	for f, name := range funcNames {
		m[name] = Func(f)
	}
	return m
}()

func (f Func) String() string {
	if f >= 0 && f < numFuncs {
		return funcNames[f]
	}
	return "Func(?)"
}

// LookupFunc maps a canonical function name to its Func.
func LookupFunc(name string) (Func, bool) {
	f, ok := funcsByName[name]
	return f, ok
}

// Funcs returns every recognized function in declaration order.
func Funcs() []Func {
	fs := make([]Func, numFuncs)
	for i := range fs {
		fs[i] = Func(i)
	}
	return fs
}

// Arity reports the minimum and maximum argument count for f.
func (f Func) Arity() (min, max int) {
	switch f {
	case FuncPow:
		return 2, 2
	case FuncLog:
		return 1, 2
	default:
		return 1, 1
	}
}

// Constructors. They allocate fresh nodes and never copy their arguments.

func Const(v float64) *ConstNode { return &ConstNode{Val: v} }

func Var() *VarNode { return &VarNode{} }

func Add(l, r ExprNode) *BinaryNode { return &BinaryNode{Op: OpAdd, Left: l, Right: r} }
func Sub(l, r ExprNode) *BinaryNode { return &BinaryNode{Op: OpSub, Left: l, Right: r} }
func Mul(l, r ExprNode) *BinaryNode { return &BinaryNode{Op: OpMul, Left: l, Right: r} }
func Div(l, r ExprNode) *BinaryNode { return &BinaryNode{Op: OpDiv, Left: l, Right: r} }

func Neg(x ExprNode) *UnaryNode { return &UnaryNode{Op: OpNeg, Child: x} }

// Call builds a call node by function name. The name is not validated.
func Call(name string, args ...ExprNode) *CallNode {
	return &CallNode{Func: name, Args: args}
}

func call(f Func, args ...ExprNode) *CallNode { return Call(f.String(), args...) }

func Sin(u ExprNode) *CallNode        { return call(FuncSin, u) }
func Cos(u ExprNode) *CallNode        { return call(FuncCos, u) }
func Tan(u ExprNode) *CallNode        { return call(FuncTan, u) }
func Exp(u ExprNode) *CallNode        { return call(FuncExp, u) }
func Log(u ExprNode) *CallNode        { return call(FuncLog, u) }
func LogBase(u, b ExprNode) *CallNode { return call(FuncLog, u, b) }
func Pow(a, b ExprNode) *CallNode     { return call(FuncPow, a, b) }
func Asin(u ExprNode) *CallNode       { return call(FuncAsin, u) }
func Acos(u ExprNode) *CallNode       { return call(FuncAcos, u) }
func Atan(u ExprNode) *CallNode       { return call(FuncAtan, u) }
