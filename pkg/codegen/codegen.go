// Package codegen lowers function definitions to LLVM IR.
//
// Each definition becomes a function of one double returning double.
// Elementary functions are called through libm declarations.
package codegen

import (
	"errors"
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

var (
	// ErrUnsupported is returned for nodes that have no lowering.
	ErrUnsupported = errors.New("codegen: unsupported expression")
	// ErrNameTaken is returned when a function name is already a global in
	// the module or is reserved for a libm declaration.
	ErrNameTaken = errors.New("codegen: name already in use")
)

var libmNames = map[expr.Func]string{
	expr.FuncSin:  "sin",
	expr.FuncCos:  "cos",
	expr.FuncTan:  "tan",
	expr.FuncExp:  "exp",
	expr.FuncLog:  "log",
	expr.FuncPow:  "pow",
	expr.FuncAsin: "asin",
	expr.FuncAcos: "acos",
	expr.FuncAtan: "atan",
}

// Compiler accumulates functions into one LLVM module. libm declarations
// are shared between the functions.
type Compiler struct {
	mod   *ir.Module
	decls map[expr.Func]*ir.Func
}

func NewCompiler() *Compiler {
	return &Compiler{
		mod:   ir.NewModule(),
		decls: make(map[expr.Func]*ir.Func),
	}
}

// Module returns the module built so far.
func (c *Compiler) Module() *ir.Module { return c.mod }

// Compile lowers f into a fresh module as a function called name.
func Compile(f expr.FuncDef, name string) (*ir.Module, error) {
	c := NewCompiler()
	if _, err := c.AddFunc(f, name); err != nil {
		return nil, err
	}
	return c.mod, nil
}

// AddFunc lowers f as "double @name(double %param)".
func (c *Compiler) AddFunc(f expr.FuncDef, name string) (*ir.Func, error) {
	if err := c.checkName(name); err != nil {
		return nil, err
	}

	param := ir.NewParam(f.Param, types.Double)
	fn := c.mod.NewFunc(name, types.Double, param)
	b := &builder{c: c, block: fn.NewBlock("entry"), param: param}

	v, err := b.lower(f.Body)
	if err != nil {
		c.drop(fn)
		for _, lf := range b.declared {
			c.drop(c.decls[lf])
			delete(c.decls, lf)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	b.block.NewRet(v)
	return fn, nil
}

// checkName rejects names that would give the module two globals with the
// same identifier.
func (c *Compiler) checkName(name string) error {
	for _, reserved := range libmNames {
		if name == reserved {
			return fmt.Errorf("%w: %q is a libm function", ErrNameTaken, name)
		}
	}
	for _, g := range c.mod.Funcs {
		if g.Name() == name {
			return fmt.Errorf("%w: %q", ErrNameTaken, name)
		}
	}
	return nil
}

// drop removes fn from the module.
func (c *Compiler) drop(fn *ir.Func) {
	for i, f := range c.mod.Funcs {
		if f == fn {
			c.mod.Funcs = append(c.mod.Funcs[:i], c.mod.Funcs[i+1:]...)
			return
		}
	}
}

// declare returns the libm declaration for f, adding it on first use.
// Declarations added for a function that fails to lower are removed again.
func (b *builder) declare(f expr.Func) *ir.Func {
	c := b.c
	if d, ok := c.decls[f]; ok {
		return d
	}
	params := []*ir.Param{ir.NewParam("x", types.Double)}
	if f == expr.FuncPow {
		params = append(params, ir.NewParam("y", types.Double))
	}
	d := c.mod.NewFunc(libmNames[f], types.Double, params...)
	c.decls[f] = d
	b.declared = append(b.declared, f)
	return d
}

type builder struct {
	c        *Compiler
	block    *ir.Block
	param    *ir.Param
	declared []expr.Func
}

func (b *builder) lower(node expr.ExprNode) (value.Value, error) {
	switch n := node.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil node", ErrUnsupported)
	case *expr.ConstNode:
		return constant.NewFloat(types.Double, n.Val), nil
	case *expr.VarNode:
		return b.param, nil
	case *expr.UnaryNode:
		return b.unary(n)
	case *expr.BinaryNode:
		return b.binary(n)
	case *expr.CallNode:
		return b.call(n)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, node)
	}
}

func (b *builder) unary(n *expr.UnaryNode) (value.Value, error) {
	v, err := b.lower(n.Child)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case expr.OpNeg:
		return b.block.NewFNeg(v), nil
	default:
		return nil, fmt.Errorf("%w: unary op %d", ErrUnsupported, n.Op)
	}
}

func (b *builder) binary(n *expr.BinaryNode) (value.Value, error) {
	x, err := b.lower(n.Left)
	if err != nil {
		return nil, err
	}
	y, err := b.lower(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case expr.OpAdd:
		return b.block.NewFAdd(x, y), nil
	case expr.OpSub:
		return b.block.NewFSub(x, y), nil
	case expr.OpMul:
		return b.block.NewFMul(x, y), nil
	case expr.OpDiv:
		return b.block.NewFDiv(x, y), nil
	default:
		return nil, fmt.Errorf("%w: binary op %d", ErrUnsupported, n.Op)
	}
}

func (b *builder) call(n *expr.CallNode) (value.Value, error) {
	f, ok := expr.LookupFunc(n.Func)
	if !ok {
		return nil, fmt.Errorf("%w: function %q", ErrUnsupported, n.Func)
	}
	lo, hi := f.Arity()
	if len(n.Args) < lo || len(n.Args) > hi {
		return nil, fmt.Errorf("%w: %s with %d arguments", ErrUnsupported, f, len(n.Args))
	}

	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := b.lower(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	// log_b(u) = log(u) / log(b)
	if f == expr.FuncLog && len(args) == 2 {
		log := b.declare(expr.FuncLog)
		num := b.block.NewCall(log, args[0])
		den := b.block.NewCall(log, args[1])
		return b.block.NewFDiv(num, den), nil
	}
	return b.block.NewCall(b.declare(f), args...), nil
}
