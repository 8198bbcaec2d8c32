// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deq

import (
	"math"

	"github.com/dpedroso/pareal/errs"
)

// Context carries, for one evaluation of an equation system, every
// tensor-kernel input an Expr leaf may read: the numeric providers the
// design notes call for (y-slice accessors, stencil results, anti-Laplacian
// results), each a flattened array over every mesh point. N is the number
// of mesh points (1 for an ODE / x_dimension == 0 system).
type Context struct {
	T     float64
	N     int
	Y     [][]float64     // Y[i][point]
	GradY [][][]float64   // GradY[i][axis][point]
	HessY [][][][]float64 // HessY[i][a1][a2][point]
	DivY  []float64       // DivY[point]
	CurlY [][]float64     // CurlY[ind][point]
	LapY  [][]float64     // LapY[i][point]
}

// Expr is a node of the symbolic RHS expression tree (§9 design notes):
// a tagged-enum AST over {+,-,*,/,pow,neg} and leaves {y[i], ∂y/∂xj[i],
// ∂²y/∂xj∂xk[i], (∇·y), (∇×y)i, Δyi, t, constant}. Arena storage (plain
// Go values, no self-referential pointers) breaks any cyclic reference
// between symbols and expressions.
type Expr interface {
	// Eval lowers the expression to a tensor kernel: one value per mesh point.
	Eval(ctx *Context) []float64
}

func broadcast(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// ---- leaves ----------------------------------------------------------

type constLeaf struct{ v float64 }

func Const(v float64) Expr { return constLeaf{v} }

func (c constLeaf) Eval(ctx *Context) []float64 { return broadcast(ctx.N, c.v) }

type tLeaf struct{}

// T is the leaf referencing the current time.
var T Expr = tLeaf{}

func (tLeaf) Eval(ctx *Context) []float64 { return broadcast(ctx.N, ctx.T) }

// Y references component i of the solution.
func Y(i int) Expr { return yLeaf{i} }

type yLeaf struct{ i int }

func (y yLeaf) Eval(ctx *Context) []float64 { return ctx.Y[y.i] }

// GradY references (∇y)_axis of component i.
func GradY(i, axis int) Expr { return gradLeaf{i, axis} }

type gradLeaf struct{ i, axis int }

func (g gradLeaf) Eval(ctx *Context) []float64 { return ctx.GradY[g.i][g.axis] }

// HessY references ∂²y_i/∂x_a1∂x_a2.
func HessY(i, a1, a2 int) Expr { return hessLeaf{i, a1, a2} }

type hessLeaf struct{ i, a1, a2 int }

func (h hessLeaf) Eval(ctx *Context) []float64 { return ctx.HessY[h.i][h.a1][h.a2] }

// DivY references ∇·y (y's last axis must equal x_dimension).
var DivY Expr = divLeaf{}

type divLeaf struct{}

func (divLeaf) Eval(ctx *Context) []float64 { return ctx.DivY }

// CurlY references component ind of ∇×y.
func CurlY(ind int) Expr { return curlLeaf{ind} }

type curlLeaf struct{ ind int }

func (c curlLeaf) Eval(ctx *Context) []float64 { return ctx.CurlY[c.ind] }

// LapY references Δy_i.
func LapY(i int) Expr { return lapLeaf{i} }

type lapLeaf struct{ i int }

func (l lapLeaf) Eval(ctx *Context) []float64 { return ctx.LapY[l.i] }

// ---- operators ---------------------------------------------------------

type binOp struct {
	a, b Expr
	op   func(x, y float64) float64
}

func (n binOp) Eval(ctx *Context) []float64 {
	av, bv := n.a.Eval(ctx), n.b.Eval(ctx)
	out := make([]float64, len(av))
	for i := range out {
		out[i] = n.op(av[i], bv[i])
	}
	return out
}

// Add builds a+b.
func Add(a, b Expr) Expr { return binOp{a, b, func(x, y float64) float64 { return x + y }} }

// Sub builds a-b.
func Sub(a, b Expr) Expr { return binOp{a, b, func(x, y float64) float64 { return x - y }} }

// Mul builds a*b.
func Mul(a, b Expr) Expr { return binOp{a, b, func(x, y float64) float64 { return x * y }} }

// Div builds a/b.
func Div(a, b Expr) Expr { return binOp{a, b, func(x, y float64) float64 { return x / y }} }

// Pow builds a^p for a constant exponent p.
func Pow(a Expr, p float64) Expr {
	return unaryOp{a, func(x float64) float64 { return pow(x, p) }}
}

// Neg builds -a.
func Neg(a Expr) Expr { return unaryOp{a, func(x float64) float64 { return -x }} }

// Scale builds k*a for a constant k.
func Scale(k float64, a Expr) Expr { return unaryOp{a, func(x float64) float64 { return k * x }} }

type unaryOp struct {
	a  Expr
	op func(x float64) float64
}

func (n unaryOp) Eval(ctx *Context) []float64 {
	av := n.a.Eval(ctx)
	out := make([]float64, len(av))
	for i := range out {
		out[i] = n.op(av[i])
	}
	return out
}

func pow(x, p float64) float64 {
	if p == 2 {
		return x * x
	}
	if p == 3 {
		return x * x * x
	}
	return math.Pow(x, p)
}

// Fn1 applies an arbitrary elementwise function to a, e.g. math.Sqrt or
// math.Sin, for equation families whose RHS is not built purely from
// +,-,*,/,pow (n-body's 1/r^3 term, Cahn-Hilliard's cubic double well).
func Fn1(a Expr, f func(float64) float64) Expr { return unaryOp{a, f} }

// Fn2 applies an arbitrary elementwise binary function to (a, b).
func Fn2(a, b Expr, f func(x, y float64) float64) Expr { return binOp{a, b, f} }

// Sum adds any number of expressions; used by equations with more than
// two additive terms (e.g. Navier-Stokes vorticity transport).
func Sum(terms ...Expr) Expr {
	if len(terms) == 0 {
		return Const(0)
	}
	out := terms[0]
	for _, t := range terms[1:] {
		out = Add(out, t)
	}
	return out
}

// Equation pairs one component's symbolic RHS with its LHS kind.
type Equation struct {
	Rhs Expr
	Lhs LhsKind
}

// System is the ordered list of equations, one per y-component, that a
// DifferentialEquation carries (§3 SymbolicEquationSystem).
type System []Equation

// ValidateScope checks the LHS/x-dimension invariants shared by every
// equation family (§3): x_dimension=0 requires every LHS to be ∂y/∂t, and
// x_dimension>0 requires at least one ∂y/∂t equation. No per-leaf
// symbol-scope check is made, here or in the family constructors in
// variants.go: an expression may contain a leaf whose symbol its Symbols
// bundle does not declare, and SymbolOutOfScope is not raised.
func ValidateScope(xDim int, eqs System) error {
	if xDim == 0 {
		for i, e := range eqs {
			if e.Lhs != LhsDyDt {
				return errs.New(errs.LhsCombination, "equation %d: x_dimension=0 requires LHS=dy/dt", i)
			}
		}
		return nil
	}
	hasDyDt := false
	for _, e := range eqs {
		if e.Lhs == LhsDyDt {
			hasDyDt = true
		}
	}
	if !hasDyDt {
		return errs.New(errs.LhsCombination, "x_dimension>0 requires at least one equation with LHS=dy/dt")
	}
	return nil
}
