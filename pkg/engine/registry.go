package engine

import (
	"fmt"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

// Diff differentiates a subexpression as part of the current call.
type Diff func(expr.ExprNode) (expr.ExprNode, error)

// KindRule differentiates a node of one kind.
type KindRule func(n expr.ExprNode, d Diff) (expr.ExprNode, error)

// CallRule differentiates a call to one elementary function. The call's
// argument count has already been checked against the function's arity.
type CallRule func(c *expr.CallNode, d Diff) (expr.ExprNode, error)

// Registry maps node kinds and function names to rules.
// It is never modified after NewRegistry returns.
type Registry struct {
	kinds map[expr.Kind]KindRule
	calls map[expr.Func]CallRule
}

// NewRegistry builds the rule tables.
func NewRegistry() *Registry {
	r := &Registry{}
	r.kinds = map[expr.Kind]KindRule{
		expr.KindConst: diffConst,
		expr.KindVar:   diffVar,
		expr.KindAdd:   diffAdd,
		expr.KindMul:   diffMul,
		expr.KindDiv:   diffDiv,
		expr.KindCall:  r.diffCall,
	}
	r.calls = map[expr.Func]CallRule{
		expr.FuncSin:  diffSin,
		expr.FuncCos:  diffCos,
		expr.FuncPow:  diffPow,
		expr.FuncExp:  diffExp,
		expr.FuncLog:  diffLog,
		expr.FuncTan:  diffTan,
		expr.FuncAsin: diffAsin,
		expr.FuncAcos: diffAcos,
		expr.FuncAtan: diffAtan,
	}
	for _, f := range expr.Funcs() {
		if _, ok := r.calls[f]; !ok {
			panic("engine: no rule for function " + f.String())
		}
	}
	return r
}

// KindRule returns the rule for kind k.
func (r *Registry) KindRule(k expr.Kind) (KindRule, error) {
	rule, ok := r.kinds[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, k)
	}
	return rule, nil
}

// CallRule returns the function and rule registered under name.
func (r *Registry) CallRule(name string) (expr.Func, CallRule, error) {
	f, ok := expr.LookupFunc(name)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q", ErrUnsupportedFunction, name)
	}
	rule, ok := r.calls[f]
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q", ErrUnsupportedFunction, name)
	}
	return f, rule, nil
}

// Kinds returns the registered node kinds in declaration order.
func (r *Registry) Kinds() []expr.Kind {
	var kinds []expr.Kind
	for k := expr.KindConst; k <= expr.KindCall; k++ {
		if _, ok := r.kinds[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Funcs returns the registered functions in declaration order.
func (r *Registry) Funcs() []expr.Func {
	var fs []expr.Func
	for _, f := range expr.Funcs() {
		if _, ok := r.calls[f]; ok {
			fs = append(fs, f)
		}
	}
	return fs
}

func (r *Registry) diffCall(n expr.ExprNode, d Diff) (expr.ExprNode, error) {
	c, ok := n.(*expr.CallNode)
	if !ok {
		return nil, fail(n, ErrUnsupportedKind, "%T is not a call", n)
	}
	f, rule, err := r.CallRule(c.Func)
	if err != nil {
		return nil, &Error{Node: n, Err: err}
	}
	lo, hi := f.Arity()
	if len(c.Args) < lo || len(c.Args) > hi {
		return nil, fail(n, ErrMalformedCall, "%s takes %s, got %d", f, arityText(lo, hi), len(c.Args))
	}
	return rule(c, d)
}

func arityText(lo, hi int) string {
	switch {
	case lo == hi && lo == 1:
		return "1 argument"
	case lo == hi:
		return fmt.Sprintf("%d arguments", lo)
	default:
		return fmt.Sprintf("%d or %d arguments", lo, hi)
	}
}
