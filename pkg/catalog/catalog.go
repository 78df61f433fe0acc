// Package catalog holds named sample functions for the CLI and tests.
package catalog

import (
	"fmt"
	"sort"

	e "github.com/wildfunctions/symdiff/pkg/expr"
)

// Entry is a named function definition with sample points inside its
// domain.
type Entry struct {
	Name        string
	Description string
	Def         e.FuncDef
	Points      []float64
}

var (
	positives = []float64{0.5, 1, 2, 3}
	reals     = []float64{-2, -0.5, 0, 1, 2.5}
	unit      = []float64{-0.9, -0.5, 0, 0.3, 0.8}
)

func x() e.ExprNode { return e.Var() }

var entries = map[string]Entry{}

func add(name, desc string, body e.ExprNode, points []float64) {
	if _, dup := entries[name]; dup {
		panic("catalog: duplicate entry " + name)
	}
	entries[name] = Entry{Name: name, Description: desc, Def: e.NewFuncDef("x", body), Points: points}
}

func init() {
	add("const", "5", e.Const(5), reals)
	add("identity", "x", x(), reals)
	add("linear", "sin(x) + x", e.Add(e.Sin(x()), x()), reals)
	add("square", "x * x", e.Mul(x(), x()), reals)
	add("half", "x / 2", e.Div(x(), e.Const(2)), reals)
	add("reciprocal", "1 / x", e.Div(e.Const(1), x()), positives)
	add("chain", "sin(2x)", e.Sin(e.Mul(e.Const(2), x())), reals)
	add("sin", "sin(x)", e.Sin(x()), reals)
	add("cos", "cos(x)", e.Cos(x()), reals)
	add("tan", "tan(x)", e.Tan(x()), unit)
	add("exp", "exp(x)", e.Exp(x()), reals)
	add("log", "ln(x)", e.Log(x()), positives)
	add("log2", "log base 2 of x", e.LogBase(x(), e.Const(2)), positives)
	add("asin", "arcsin(x)", e.Asin(x()), unit)
	add("acos", "arccos(x)", e.Acos(x()), unit)
	add("atan", "arctan(x)", e.Atan(x()), reals)
	add("cube", "x^3", e.Pow(x(), e.Const(3)), reals)
	add("exp2", "2^x", e.Pow(e.Const(2), x()), reals)
	add("exp2chain", "2^(x*x)", e.Pow(e.Const(2), e.Mul(x(), x())), reals)
	add("xpowx", "x^x", e.Pow(x(), x()), positives)
	add("constpow", "2^3", e.Pow(e.Const(2), e.Const(3)), reals)
	add("gauss", "exp(-x*x / 2)",
		e.Exp(e.Div(e.Mul(e.Mul(x(), x()), e.Const(-1)), e.Const(2))), reals)
	add("logistic", "1 / (1 + exp(-x))",
		e.Div(e.Const(1), e.Add(e.Const(1), e.Exp(e.Mul(e.Const(-1), x())))), reals)
	add("sinpow", "sin(x)^2 + cos(x)^2",
		e.Add(e.Pow(e.Sin(x()), e.Const(2)), e.Pow(e.Cos(x()), e.Const(2))), positives)
	add("mixed", "atan(x) * ln(x*x + 1) / (2 + cos(x))",
		e.Div(
			e.Mul(e.Atan(x()), e.Log(e.Add(e.Mul(x(), x()), e.Const(1)))),
			e.Add(e.Const(2), e.Cos(x())),
		), reals)
}

// Get returns an entry by name.
func Get(name string) (Entry, error) {
	en, ok := entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("unknown function: %s", name)
	}
	return en, nil
}

// Names returns all entry names, sorted.
func Names() []string {
	names := make([]string, 0, len(entries))
	for k := range entries {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// All returns every entry, sorted by name.
func All() []Entry {
	names := Names()
	all := make([]Entry, len(names))
	for i, n := range names {
		all[i] = entries[n]
	}
	return all
}
