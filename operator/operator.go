// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package operator implements the Operator contract (§4.3, §6): advance
// an InitialValueProblem over its time interval and return a Solution.
// The ODE and FDM variants are the core implementations; surrogate
// operators (stateless/stateful regression, PINN, DeepONet) are external
// collaborators that only need to satisfy the Operator interface.
package operator

import (
	"github.com/dpedroso/pareal/ivp"
	"github.com/dpedroso/pareal/solution"
)

// Operator satisfies §6's collaborator contract: a strictly positive time
// step, an optional vertex/cell orientation (nil for a pure ODE operator),
// and Solve.
type Operator interface {
	DT() float64
	VertexOriented() *bool
	Solve(problem *ivp.InitialValueProblem, parallelEnabled bool) (*solution.Solution, error)
}

// TrainFunc is the training hook of a surrogate operator; its arguments
// are opaque to the core.
type TrainFunc func(args ...interface{}) error

// TimeGrid computes the N = round((t1-t0)/dt) step time-point array
// t0 + k*dt for k=1..N (§4.3). When dt does not evenly divide t1-t0, the
// effective end time is snapped to t0+N*dt.
func TimeGrid(t0, t1, dt float64) []float64 {
	n := roundDiv(t1-t0, dt)
	ts := make([]float64, n)
	for k := 1; k <= n; k++ {
		ts[k-1] = t0 + float64(k)*dt
	}
	return ts
}

func roundDiv(num, den float64) int {
	q := num / den
	f := int(q)
	if q-float64(f) >= 0.5 {
		f++
	}
	return f
}
