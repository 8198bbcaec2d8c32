// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package operator

import (
	"math"

	"github.com/dpedroso/pareal/constraint"
	"github.com/dpedroso/pareal/cprob"
	"github.com/dpedroso/pareal/deq"
	"github.com/dpedroso/pareal/errs"
	"github.com/dpedroso/pareal/integrator"
	"github.com/dpedroso/pareal/ivp"
	"github.com/dpedroso/pareal/mesh"
	"github.com/dpedroso/pareal/numdiff"
	"github.com/dpedroso/pareal/solution"
)

// FDM couples the NumericalDifferentiator to a symbolic RHS: for each
// equation it substitutes stencil results for ∇y, Hessian(y), Δy, ∇·y,
// ∇×y and delegates time-stepping to an Integrator (§4.3). Equations with
// LHS=y are reduced to algebraic substitutions every step; LHS=Δy
// equations are solved via the anti-Laplacian; LHS=∂y/∂t equations are
// stepped.
type FDM struct {
	Dt              float64
	Integrator      *integrator.Integrator
	VertOriented    bool
	JacobiTol       float64
	JacobiMaxIt     int
}

// NewFDM validates and builds an FDM operator.
func NewFDM(dt float64, it *integrator.Integrator, vertexOriented bool, jacobiTol float64, jacobiMaxIt int) (*FDM, error) {
	if dt <= 0 {
		return nil, errs.New(errs.InvalidParameter, "dt must be > 0; got %g", dt)
	}
	if jacobiMaxIt <= 0 {
		return nil, errs.New(errs.InvalidParameter, "jacobiMaxIt must be > 0 (no default; see §9 open question)")
	}
	return &FDM{Dt: dt, Integrator: it, VertOriented: vertexOriented, JacobiTol: jacobiTol, JacobiMaxIt: jacobiMaxIt}, nil
}

func (o *FDM) DT() float64 { return o.Dt }
func (o *FDM) VertexOriented() *bool {
	v := o.VertOriented
	return &v
}

// evalState holds everything buildContext and resolveAlgebraic need.
type evalState struct {
	p      *cprob.ConstrainedProblem
	diff   *numdiff.Differentiator
	yDim   int
	xDim   int
	total  int
	dyBCs  map[int][][2]*constraint.Constraint // axis -> per-component pair

	jacobiTol   float64 // anti-Laplacian tolerance, from FDM.JacobiTol
	jacobiMaxIt int     // anti-Laplacian iteration cap, from FDM.JacobiMaxIt
}

func newEvalState(p *cprob.ConstrainedProblem) *evalState {
	diff := numdiff.New(p.Mesh)
	dyBCs := make(map[int][][2]*constraint.Constraint, p.Mesh.Rank())
	for a := 0; a < p.Mesh.Rank(); a++ {
		dyBCs[a] = p.DYBoundaryVertexConstraints[a]
	}
	return &evalState{
		p:     p,
		diff:  diff,
		yDim:  p.Eq.YDimension,
		xDim:  p.Eq.XDimension,
		total: mesh.Size(p.Mesh.VertexShape()),
		dyBCs: dyBCs,
	}
}

// buildContext computes every numeric provider the equation system's
// Symbols bundle declares present, from the current y tensor.
func (es *evalState) buildContext(t float64, y []float64) (*deq.Context, error) {
	ctx := &deq.Context{T: t, N: es.total}
	sym := es.p.Eq.Symbols

	ctx.Y = make([][]float64, es.yDim)
	for c := 0; c < es.yDim; c++ {
		ctx.Y[c] = extractComponent(y, es.total, es.yDim, c)
	}

	if sym.HasGradY || sym.HasHessY {
		ctx.GradY = make([][][]float64, es.yDim)
		for c := range ctx.GradY {
			ctx.GradY[c] = make([][]float64, es.xDim)
		}
		for axis := 0; axis < es.xDim; axis++ {
			d1, err := es.diff.Derivative(y, es.yDim, axis, es.p.YVertexConstraints, es.dyBCs[axis])
			if err != nil {
				return nil, err
			}
			for c := 0; c < es.yDim; c++ {
				ctx.GradY[c][axis] = extractComponent(d1, es.total, es.yDim, c)
			}
		}
	}

	if sym.HasHessY {
		ctx.HessY = make([][][][]float64, es.yDim)
		for c := range ctx.HessY {
			ctx.HessY[c] = make([][][]float64, es.xDim)
			for a1 := range ctx.HessY[c] {
				ctx.HessY[c][a1] = make([][]float64, es.xDim)
			}
		}
		for a1 := 0; a1 < es.xDim; a1++ {
			for a2 := a1; a2 < es.xDim; a2++ {
				d2, err := es.diff.SecondDerivative(y, es.yDim, a1, a2, es.p.YVertexConstraints, es.dyBCs)
				if err != nil {
					return nil, err
				}
				for c := 0; c < es.yDim; c++ {
					comp := extractComponent(d2, es.total, es.yDim, c)
					ctx.HessY[c][a1][a2] = comp
					ctx.HessY[c][a2][a1] = comp
				}
			}
		}
	}

	if sym.HasDivY {
		div, err := es.diff.Divergence(y, es.p.YVertexConstraints, es.dyBCs)
		if err != nil {
			return nil, err
		}
		ctx.DivY = div
	}

	if sym.HasCurlY {
		n := 1
		if es.xDim == 3 {
			n = 3
		}
		ctx.CurlY = make([][]float64, n)
		for ind := 0; ind < n; ind++ {
			c, err := es.diff.Curl(y, ind, es.p.YVertexConstraints, es.dyBCs)
			if err != nil {
				return nil, err
			}
			ctx.CurlY[ind] = c
		}
	}

	if sym.HasLapY {
		lap, err := es.diff.Laplacian(y, es.yDim, es.p.YVertexConstraints, es.dyBCs)
		if err != nil {
			return nil, err
		}
		ctx.LapY = make([][]float64, es.yDim)
		for c := 0; c < es.yDim; c++ {
			ctx.LapY[c] = extractComponent(lap, es.total, es.yDim, c)
		}
	}

	return ctx, nil
}

func extractComponent(y []float64, total, yDim, comp int) []float64 {
	out := make([]float64, total)
	for i := 0; i < total; i++ {
		out[i] = y[i*yDim+comp]
	}
	return out
}

func writeComponent(y []float64, yDim, comp int, vals []float64) {
	for i, v := range vals {
		y[i*yDim+comp] = v
	}
}

// resolveAlgebraic resolves every LHS=y and LHS=Δy equation in order,
// mutating y in place, given the current time t.
func (es *evalState) resolveAlgebraic(t float64, y []float64) error {
	for c, e := range es.p.Eq.Equations {
		switch e.Lhs {
		case deq.LhsY:
			ctx, err := es.buildContext(t, y)
			if err != nil {
				return err
			}
			writeComponent(y, es.yDim, c, e.Rhs.Eval(ctx))
		case deq.LhsLap:
			ctx, err := es.buildContext(t, y)
			if err != nil {
				return err
			}
			target := e.Rhs.Eval(ctx)
			solved, err := es.diff.AntiLaplacian(target, 1, []*constraint.Constraint{es.p.YVertexConstraints[c]}, numdiff.AntiLaplacianOptions{
				Tol: es.jacobiTol, MaxIterations: es.jacobiMaxIt,
			})
			if err != nil {
				return err
			}
			writeComponent(y, es.yDim, c, solved)
		}
	}
	return nil
}

// rhs builds the dy/dt closure handed to the Integrator: LHS=∂y/∂t
// components get their symbolic derivative; all others return 0 so a
// single-step integrator leaves their (already algebraically resolved)
// value untouched until the next call to resolveAlgebraic.
func (es *evalState) rhs() integrator.RHS {
	return func(t float64, y []float64) ([]float64, error) {
		work := make([]float64, len(y))
		copy(work, y)
		if err := es.resolveAlgebraic(t, work); err != nil {
			return nil, err
		}
		ctx, err := es.buildContext(t, work)
		if err != nil {
			return nil, err
		}
		dy := make([]float64, len(y))
		for c, e := range es.p.Eq.Equations {
			if e.Lhs != deq.LhsDyDt {
				continue
			}
			v := e.Rhs.Eval(ctx)
			for i, vv := range v {
				if math.IsNaN(vv) || math.IsInf(vv, 0) {
					return nil, errs.New(errs.Divergence, "non-finite derivative for y-component %d at t=%g", c, t)
				}
				dy[i*es.yDim+c] = vv
			}
		}
		return dy, nil
	}
}

func (es *evalState) applyConstraints(y []float64) {
	for c, cst := range es.p.YVertexConstraints {
		if cst == nil {
			continue
		}
		comp := extractComponent(y, es.total, es.yDim, c)
		cst.Apply(comp)
		writeComponent(y, es.yDim, c, comp)
	}
}

// Solve advances the IVP's FDM system over (t0, t1).
func (o *FDM) Solve(problem *ivp.InitialValueProblem, parallelEnabled bool) (*solution.Solution, error) {
	p := problem.Problem
	es := newEvalState(p)
	es.jacobiTol, es.jacobiMaxIt = o.JacobiTol, o.JacobiMaxIt

	y0, err := problem.IC.DiscreteY0(p, o.VertOriented)
	if err != nil {
		return nil, err
	}
	if !o.VertOriented {
		return nil, errs.New(errs.InvalidParameter, "FDM operator currently requires vertex-oriented solves")
	}
	es.applyConstraints(y0)
	if err := es.resolveAlgebraic(problem.T0, y0); err != nil {
		return nil, err
	}

	f := es.rhs()
	applyC := es.applyConstraints

	ts := TimeGrid(problem.T0, problem.T1, o.Dt)
	y := y0
	ys := make([][]float64, len(ts))
	t := problem.T0
	for k, tk := range ts {
		var stepErr error
		y, stepErr = o.Integrator.Step(y, t, tk-t, f, applyC)
		if stepErr != nil {
			return nil, stepErr
		}
		if err := es.resolveAlgebraic(tk, y); err != nil {
			return nil, err
		}
		row := make([]float64, len(y))
		copy(row, y)
		ys[k] = row
		t = tk
	}
	return solution.New(p, ts, ys, o.VertOriented, o.Dt)
}
