package expr

func (v *VarNode) NodeCount() int   { return 1 }
func (c *ConstNode) NodeCount() int { return 1 }
func (u *UnaryNode) NodeCount() int { return 1 + u.Child.NodeCount() }
func (b *BinaryNode) NodeCount() int {
	return 1 + b.Left.NodeCount() + b.Right.NodeCount()
}
func (c *CallNode) NodeCount() int {
	n := 1
	for _, a := range c.Args {
		n += a.NodeCount()
	}
	return n
}

func (v *VarNode) Depth() int   { return 1 }
func (c *ConstNode) Depth() int { return 1 }
func (u *UnaryNode) Depth() int { return 1 + u.Child.Depth() }
func (b *BinaryNode) Depth() int {
	ld := b.Left.Depth()
	rd := b.Right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}
func (c *CallNode) Depth() int {
	d := 0
	for _, a := range c.Args {
		if ad := a.Depth(); ad > d {
			d = ad
		}
	}
	return 1 + d
}

// ContainsVar reports whether the expression tree contains the variable.
func ContainsVar(node ExprNode) bool {
	switch n := node.(type) {
	case *VarNode:
		return true
	case *ConstNode:
		return false
	case *UnaryNode:
		return ContainsVar(n.Child)
	case *BinaryNode:
		return ContainsVar(n.Left) || ContainsVar(n.Right)
	case *CallNode:
		for _, a := range n.Args {
			if ContainsVar(a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// VariableLogBase reports whether the tree contains a two-argument Log
// whose base depends on the variable.
func VariableLogBase(node ExprNode) bool {
	switch n := node.(type) {
	case *UnaryNode:
		return VariableLogBase(n.Child)
	case *BinaryNode:
		return VariableLogBase(n.Left) || VariableLogBase(n.Right)
	case *CallNode:
		if f, ok := LookupFunc(n.Func); ok && f == FuncLog && len(n.Args) == 2 && ContainsVar(n.Args[1]) {
			return true
		}
		for _, a := range n.Args {
			if VariableLogBase(a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
