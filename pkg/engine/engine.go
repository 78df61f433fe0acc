package engine

import (
	"fmt"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

// Engine differentiates expression trees using a Registry.
// An Engine holds no per-call state and may be shared between goroutines.
type Engine struct {
	cfg Config
	reg *Registry
}

// New creates a new engine from the given config and registry.
func New(cfg Config, reg *Registry) (*Engine, error) {
	if reg == nil {
		return nil, fmt.Errorf("engine: nil registry")
	}
	if cfg.MaxDepth <= 0 {
		return nil, fmt.Errorf("engine: max depth must be positive, got %d", cfg.MaxDepth)
	}
	return &Engine{cfg: cfg, reg: reg}, nil
}

var defaultEngine = func() *Engine {
	e, err := New(DefaultConfig(), NewRegistry())
	if err != nil {
		panic(err)
	}
	return e
}()

// Differentiate differentiates f with the default engine.
func Differentiate(f expr.FuncDef) (expr.FuncDef, error) {
	return defaultEngine.Differentiate(f)
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Registry returns the engine's rule registry.
func (e *Engine) Registry() *Registry { return e.reg }

// Differentiate returns the derivative of f with respect to its parameter.
// The result keeps f's parameter and shares untouched subtrees with f.Body.
func (e *Engine) Differentiate(f expr.FuncDef) (expr.FuncDef, error) {
	body, err := e.DifferentiateNode(f.Body)
	if err != nil {
		return expr.FuncDef{}, err
	}
	return expr.FuncDef{Param: f.Param, Body: body}, nil
}

// DifferentiateNode returns the derivative of n. The first unsupported
// node aborts the whole call.
func (e *Engine) DifferentiateNode(n expr.ExprNode) (expr.ExprNode, error) {
	w := &walker{reg: e.reg, maxDepth: e.cfg.MaxDepth}
	return w.diff(n)
}

// walker carries the recursion depth of a single call.
type walker struct {
	reg      *Registry
	maxDepth int
	depth    int
}

func (w *walker) diff(n expr.ExprNode) (expr.ExprNode, error) {
	if n == nil {
		return nil, &Error{Err: ErrUnsupportedKind, Detail: "nil node"}
	}
	w.depth++
	defer func() { w.depth-- }()
	if w.depth > w.maxDepth {
		return nil, fail(n, ErrTooDeep, "more than %d levels", w.maxDepth)
	}

	rule, err := w.reg.KindRule(n.Kind())
	if err != nil {
		return nil, &Error{Node: n, Err: err}
	}
	return rule(n, w.diff)
}
