// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"math"

	"github.com/cpmech/gosl/ode"
	"github.com/dpedroso/pareal/errs"
)

// Validate cross-checks the integrator's declared order of accuracy against
// gosl/ode's Radau5 reference solver on the population-growth scenario
// y'=r*y, y(0)=1 (S1): it Richardson-doubles the step size and checks
// the observed convergence rate against a Radau5-computed true value,
// grounding the order-of-accuracy invariant against a trusted external
// implementation instead of only comparing the method against itself.
func Validate(it *Integrator, r, tEnd float64) error {
	want, err := radau5Reference(r, tEnd)
	if err != nil {
		return err
	}

	rhs := func(t float64, y []float64) ([]float64, error) {
		return []float64{r * y[0]}, nil
	}

	errCoarse, err := finalError(it, rhs, tEnd/8, tEnd, want)
	if err != nil {
		return err
	}
	errFine, err := finalError(it, rhs, tEnd/16, tEnd, want)
	if err != nil {
		return err
	}
	if errFine == 0 {
		return nil
	}
	observed := math.Log(errCoarse/errFine) / math.Log(2)
	if observed < float64(it.Method.Order())-0.5 {
		return errs.New(errs.DidNotConverge,
			"integrator method %d: observed order %.2f falls below declared order %d",
			it.Method, observed, it.Method.Order())
	}
	return nil
}

// finalError steps the scalar scenario y'=r*y from t=0 to tEnd at fixed
// step dt and returns the absolute error against want at t=tEnd.
func finalError(it *Integrator, f RHS, dt, tEnd float64, want float64) (float64, error) {
	y := []float64{1}
	t := 0.0
	n := int(math.Round(tEnd / dt))
	for i := 0; i < n; i++ {
		next, err := it.Step(y, t, dt, f, nil)
		if err != nil {
			return 0, err
		}
		y = next
		t += dt
	}
	return math.Abs(y[0] - want), nil
}

// radau5Reference solves y'=r*y, y(0)=1 on [0,tEnd] with gosl/ode's
// Radau5 (no analytical Jacobian supplied; Radau5 falls back to a
// numerical one, the same pattern fem/geost.go uses), following
// mdl/retention/model.go's ode.Solver.Init/SetTol/Distr/Solve sequence.
func radau5Reference(r, tEnd float64) (float64, error) {
	var solver ode.Solver
	fcn := func(f []float64, dx, x float64, y []float64) error {
		f[0] = r * y[0]
		return nil
	}
	solver.Init("Radau5", 1, fcn, nil, nil, nil)
	solver.SetTol(1e-12, 1e-10)
	solver.Distr = false // avoid MPI-distributed-solve conflicts, per mdl/retention/model.go
	y := []float64{1}
	if err := solver.Solve(y, 0, tEnd, tEnd, false); err != nil {
		return 0, errs.New(errs.DidNotConverge, "gosl/ode Radau5 reference solve failed: %v", err)
	}
	return y[0], nil
}
