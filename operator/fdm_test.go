// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package operator

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/dpedroso/pareal/bc"
	"github.com/dpedroso/pareal/cprob"
	"github.com/dpedroso/pareal/deq"
	"github.com/dpedroso/pareal/integrator"
	"github.com/dpedroso/pareal/ivp"
	"github.com/dpedroso/pareal/mesh"
)

func Test_fdm01_diffusion_flattens_towards_dirichlet(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fdm01_diffusion_flattens_towards_dirichlet")

	m, err := mesh.NewMesh([]mesh.AxisSpec{{A: 0, B: 1, Dx: 0.25}}, mesh.Cartesian)
	if err != nil {
		tst.Fatalf("NewMesh failed: %v", err)
	}
	eq, err := deq.NewDiffusion(1, 0.1, nil)
	if err != nil {
		tst.Fatalf("NewDiffusion failed: %v", err)
	}
	zero := bc.New(bc.Dirichlet, bc.Constant(0), true)
	p, err := cprob.New(m, eq, [][2]*bc.BoundaryCondition{{zero, zero}})
	if err != nil {
		tst.Fatalf("cprob.New failed: %v", err)
	}

	ic := ivp.Continuous{Fcn: func(x []float64) []float64 {
		return []float64{math.Sin(math.Pi * x[0])}
	}}
	problem, err := ivp.New(p, 0, 0.05, ic)
	if err != nil {
		tst.Fatalf("ivp.New failed: %v", err)
	}

	it, err := integrator.New(integrator.ForwardEuler, 0, 0)
	if err != nil {
		tst.Fatalf("integrator.New failed: %v", err)
	}
	op, err := NewFDM(0.001, it, true, 1e-8, 500)
	if err != nil {
		tst.Fatalf("NewFDM failed: %v", err)
	}

	sol, err := op.Solve(problem, false)
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}

	y0 := sol.Y[0]
	yEnd := sol.Y[len(sol.Y)-1]
	var peak0, peakEnd float64
	for i := range y0 {
		if y0[i] > peak0 {
			peak0 = y0[i]
		}
		if yEnd[i] > peakEnd {
			peakEnd = yEnd[i]
		}
	}
	if peakEnd >= peak0 {
		tst.Fatalf("expected diffusion to damp the peak: peak0=%g peakEnd=%g", peak0, peakEnd)
	}
}

func Test_fdm02_rejects_cell_oriented(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fdm02_rejects_cell_oriented")

	m, _ := mesh.NewMesh([]mesh.AxisSpec{{A: 0, B: 1, Dx: 0.5}}, mesh.Cartesian)
	eq, _ := deq.NewDiffusion(1, 0.1, nil)
	zero := bc.New(bc.Dirichlet, bc.Constant(0), true)
	p, _ := cprob.New(m, eq, [][2]*bc.BoundaryCondition{{zero, zero}})
	ic := ivp.Continuous{Fcn: func(x []float64) []float64 { return []float64{0} }}
	problem, _ := ivp.New(p, 0, 0.1, ic)
	it, _ := integrator.New(integrator.ForwardEuler, 0, 0)
	op, err := NewFDM(0.01, it, false, 1e-8, 500)
	if err != nil {
		tst.Fatalf("NewFDM failed: %v", err)
	}
	_, err = op.Solve(problem, false)
	if err == nil {
		tst.Fatalf("expected error for cell-oriented FDM solve")
	}
}

func Test_fdm03_new_validates_jacobi_maxit(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fdm03_new_validates_jacobi_maxit")

	it, _ := integrator.New(integrator.ForwardEuler, 0, 0)
	_, err := NewFDM(0.01, it, true, 1e-8, 0)
	if err == nil {
		tst.Fatalf("expected error for jacobiMaxIt<=0")
	}
}
