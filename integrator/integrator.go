// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package integrator implements the single-step ODE integrators that
// operate on flat arrays of y: Forward Euler, Explicit Midpoint, RK4 and
// Crank-Nicolson (§4.2).
package integrator

import (
	"github.com/dpedroso/pareal/errs"
)

// RHS evaluates dy/dt at (t, y); the caller (an Operator) builds this by
// substituting numerical-differentiator results into a symbolic system.
type RHS func(t float64, y []float64) ([]float64, error)

// ApplyConstraints enforces Dirichlet boundaries on y in place; every
// integrator calls this on its output (and, for RK4, on every
// intermediate stage state) before returning, per §4.2.
type ApplyConstraints func(y []float64)

// Method names a concrete integrator variant.
type Method int

const (
	ForwardEuler Method = iota
	ExplicitMidpoint
	RK4
	CrankNicolson
)

// Order returns the integrator's classical order of accuracy (§8 invariant 4).
func (m Method) Order() int {
	switch m {
	case ForwardEuler:
		return 1
	case ExplicitMidpoint:
		return 2
	case RK4:
		return 4
	case CrankNicolson:
		return 2
	}
	return 0
}

// Integrator advances y by one step of size dt at time t.
type Integrator struct {
	Method Method
	Tol    float64 // Crank-Nicolson fixed-point convergence tolerance
	MaxIt  int     // Crank-Nicolson fixed-point iteration cap
}

// New builds an Integrator. tol/maxIt are only consulted for CrankNicolson.
func New(method Method, tol float64, maxIt int) (*Integrator, error) {
	if method == CrankNicolson {
		if tol < 0 {
			return nil, errs.New(errs.InvalidParameter, "tol must be >= 0; got %g", tol)
		}
		if maxIt <= 0 {
			return nil, errs.New(errs.InvalidParameter, "maxIt must be > 0 for Crank-Nicolson; got %d", maxIt)
		}
	}
	return &Integrator{Method: method, Tol: tol, MaxIt: maxIt}, nil
}

// Step advances y from t to t+dt.
func (o *Integrator) Step(y []float64, t, dt float64, f RHS, applyC ApplyConstraints) ([]float64, error) {
	switch o.Method {
	case ForwardEuler:
		return o.stepForwardEuler(y, t, dt, f, applyC)
	case ExplicitMidpoint:
		return o.stepMidpoint(y, t, dt, f, applyC)
	case RK4:
		return o.stepRK4(y, t, dt, f, applyC)
	case CrankNicolson:
		return o.stepCrankNicolson(y, t, dt, f, applyC)
	}
	return nil, errs.New(errs.InvalidParameter, "unknown integrator method %d", o.Method)
}

func addScaled(a []float64, alpha float64, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + alpha*b[i]
	}
	return out
}

func (o *Integrator) stepForwardEuler(y []float64, t, dt float64, f RHS, applyC ApplyConstraints) ([]float64, error) {
	k1, err := f(t, y)
	if err != nil {
		return nil, err
	}
	yNext := addScaled(y, dt, k1)
	if applyC != nil {
		applyC(yNext)
	}
	return yNext, nil
}

func (o *Integrator) stepMidpoint(y []float64, t, dt float64, f RHS, applyC ApplyConstraints) ([]float64, error) {
	k1, err := f(t, y)
	if err != nil {
		return nil, err
	}
	yMid := addScaled(y, dt/2, k1)
	if applyC != nil {
		applyC(yMid)
	}
	k2, err := f(t+dt/2, yMid)
	if err != nil {
		return nil, err
	}
	yNext := addScaled(y, dt, k2)
	if applyC != nil {
		applyC(yNext)
	}
	return yNext, nil
}

func (o *Integrator) stepRK4(y []float64, t, dt float64, f RHS, applyC ApplyConstraints) ([]float64, error) {
	k1, err := f(t, y)
	if err != nil {
		return nil, err
	}
	y2 := addScaled(y, dt/2, k1)
	if applyC != nil {
		applyC(y2)
	}
	k2, err := f(t+dt/2, y2)
	if err != nil {
		return nil, err
	}
	y3 := addScaled(y, dt/2, k2)
	if applyC != nil {
		applyC(y3)
	}
	k3, err := f(t+dt/2, y3)
	if err != nil {
		return nil, err
	}
	y4 := addScaled(y, dt, k3)
	if applyC != nil {
		applyC(y4)
	}
	k4, err := f(t+dt, y4)
	if err != nil {
		return nil, err
	}
	yNext := make([]float64, len(y))
	for i := range y {
		yNext[i] = y[i] + dt/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	if applyC != nil {
		applyC(yNext)
	}
	return yNext, nil
}

// stepCrankNicolson solves the implicit trapezoidal update
//
//	y_next = y + dt/2*(f(t,y) + f(t+dt, y_next))
//
// by fixed-point iteration, starting from a Forward Euler predictor,
// until successive iterates differ by less than Tol (same threshold as
// the anti-Laplacian) or MaxIt is reached.
func (o *Integrator) stepCrankNicolson(y []float64, t, dt float64, f RHS, applyC ApplyConstraints) ([]float64, error) {
	k1, err := f(t, y)
	if err != nil {
		return nil, err
	}
	yNext := addScaled(y, dt, k1)
	if applyC != nil {
		applyC(yNext)
	}
	for it := 0; it < o.MaxIt; it++ {
		k2, err := f(t+dt, yNext)
		if err != nil {
			return nil, err
		}
		yCand := make([]float64, len(y))
		for i := range y {
			yCand[i] = y[i] + dt/2*(k1[i]+k2[i])
		}
		if applyC != nil {
			applyC(yCand)
		}
		diff := 0.0
		for i := range yCand {
			d := yCand[i] - yNext[i]
			if d < 0 {
				d = -d
			}
			if d > diff {
				diff = d
			}
		}
		yNext = yCand
		if diff < o.Tol {
			return yNext, nil
		}
	}
	return nil, errs.New(errs.DidNotConverge, "crank-nicolson fixed point did not converge within %d iterations", o.MaxIt)
}
