// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package operator

import (
	"math"

	"github.com/dpedroso/pareal/deq"
	"github.com/dpedroso/pareal/errs"
	"github.com/dpedroso/pareal/integrator"
	"github.com/dpedroso/pareal/ivp"
	"github.com/dpedroso/pareal/solution"
)

// ODE integrates y'(t) = f(t, y) for a system with x_dimension = 0 using a
// user-chosen single-step Integrator.
type ODE struct {
	Dt         float64
	Integrator *integrator.Integrator
}

// NewODE validates and builds an ODE operator.
func NewODE(dt float64, it *integrator.Integrator) (*ODE, error) {
	if dt <= 0 {
		return nil, errs.New(errs.InvalidParameter, "dt must be > 0; got %g", dt)
	}
	return &ODE{Dt: dt, Integrator: it}, nil
}

func (o *ODE) DT() float64            { return o.Dt }
func (o *ODE) VertexOriented() *bool  { return nil }

// Solve advances the IVP's ODE over (t0, t1), asserting x_dimension = 0.
func (o *ODE) Solve(problem *ivp.InitialValueProblem, parallelEnabled bool) (*solution.Solution, error) {
	p := problem.Problem
	eq := p.Eq
	if eq.XDimension != 0 {
		return nil, errs.New(errs.InvalidParameter, "ODE operator requires x_dimension=0; got %d", eq.XDimension)
	}

	y0, err := problem.IC.DiscreteY0(p, true)
	if err != nil {
		return nil, err
	}

	f := func(t float64, y []float64) ([]float64, error) {
		ctx := &deq.Context{T: t, N: 1}
		ctx.Y = make([][]float64, eq.YDimension)
		for i, v := range y {
			ctx.Y[i] = []float64{v}
		}
		dy := make([]float64, eq.YDimension)
		for c, e := range eq.Equations {
			v := e.Rhs.Eval(ctx)
			dy[c] = v[0]
			if math.IsNaN(dy[c]) || math.IsInf(dy[c], 0) {
				return nil, errs.New(errs.Divergence, "non-finite derivative for y-component %d at t=%g", c, t)
			}
		}
		return dy, nil
	}

	ts := TimeGrid(problem.T0, problem.T1, o.Dt)
	y := y0
	ys := make([][]float64, len(ts))
	t := problem.T0
	for k, tk := range ts {
		var stepErr error
		y, stepErr = o.Integrator.Step(y, t, tk-t, f, nil)
		if stepErr != nil {
			return nil, stepErr
		}
		row := make([]float64, len(y))
		copy(row, y)
		ys[k] = row
		t = tk
	}
	return solution.New(p, ts, ys, true, o.Dt)
}
