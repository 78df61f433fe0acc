package expr

import (
	"fmt"
	"strconv"
	"strings"
)

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
}

var funcLaTeX = map[Func]string{
	FuncSin:  "\\sin",
	FuncCos:  "\\cos",
	FuncTan:  "\\tan",
	FuncExp:  "\\exp",
	FuncLog:  "\\ln",
	FuncAsin: "\\arcsin",
	FuncAcos: "\\arccos",
	FuncAtan: "\\arctan",
}

func formatConst(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if v < 0 {
		return "(" + s + ")"
	}
	return s
}

// String methods

func (v *VarNode) String() string    { return render(v, DefaultParam) }
func (c *ConstNode) String() string  { return render(c, DefaultParam) }
func (u *UnaryNode) String() string  { return render(u, DefaultParam) }
func (b *BinaryNode) String() string { return render(b, DefaultParam) }
func (c *CallNode) String() string   { return render(c, DefaultParam) }

// render prints node in fully parenthesized infix form, naming the
// variable param.
func render(node ExprNode, param string) string {
	switch n := node.(type) {
	case nil:
		return "<nil>"
	case *VarNode:
		return param
	case *ConstNode:
		return formatConst(n.Val)
	case *UnaryNode:
		child := render(n.Child, param)
		switch n.Op {
		case OpNeg:
			return fmt.Sprintf("(-%s)", child)
		default:
			return child
		}
	case *BinaryNode:
		return fmt.Sprintf("(%s %s %s)", render(n.Left, param), binaryOpSymbols[n.Op], render(n.Right, param))
	case *CallNode:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = render(a, param)
		}
		return n.Func + "(" + strings.Join(args, ", ") + ")"
	default:
		return node.String()
	}
}

// LaTeX methods

func (v *VarNode) LaTeX() string    { return renderLaTeX(v, DefaultParam) }
func (c *ConstNode) LaTeX() string  { return renderLaTeX(c, DefaultParam) }
func (u *UnaryNode) LaTeX() string  { return renderLaTeX(u, DefaultParam) }
func (b *BinaryNode) LaTeX() string { return renderLaTeX(b, DefaultParam) }
func (c *CallNode) LaTeX() string   { return renderLaTeX(c, DefaultParam) }

func renderLaTeX(node ExprNode, param string) string {
	switch n := node.(type) {
	case nil:
		return ""
	case *VarNode:
		return param
	case *ConstNode:
		return formatConst(n.Val)
	case *UnaryNode:
		child := renderLaTeX(n.Child, param)
		switch n.Op {
		case OpNeg:
			return fmt.Sprintf("-{%s}", child)
		default:
			return child
		}
	case *BinaryNode:
		left := renderLaTeX(n.Left, param)
		right := renderLaTeX(n.Right, param)
		switch n.Op {
		case OpAdd:
			return fmt.Sprintf("{%s} + {%s}", left, right)
		case OpSub:
			return fmt.Sprintf("{%s} - {%s}", left, right)
		case OpMul:
			return fmt.Sprintf("{%s} \\cdot {%s}", left, right)
		case OpDiv:
			return fmt.Sprintf("\\frac{%s}{%s}", left, right)
		default:
			return ""
		}
	case *CallNode:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = renderLaTeX(a, param)
		}
		f, ok := LookupFunc(n.Func)
		switch {
		case ok && f == FuncPow && len(args) == 2:
			return fmt.Sprintf("\\left(%s\\right)^{%s}", args[0], args[1])
		case ok && f == FuncLog && len(args) == 2:
			return fmt.Sprintf("\\log_{%s}{\\left(%s\\right)}", args[1], args[0])
		case ok && len(args) == 1:
			return fmt.Sprintf("%s{\\left(%s\\right)}", funcLaTeX[f], args[0])
		default:
			return fmt.Sprintf("\\operatorname{%s}\\left(%s\\right)", n.Func, strings.Join(args, ", "))
		}
	default:
		return node.LaTeX()
	}
}
