// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/dpedroso/pareal/bc"
	"github.com/dpedroso/pareal/cprob"
	"github.com/dpedroso/pareal/deq"
	"github.com/dpedroso/pareal/integrator"
	"github.com/dpedroso/pareal/ivp"
	"github.com/dpedroso/pareal/mesh"
	"github.com/dpedroso/pareal/operator"
	"github.com/dpedroso/pareal/parareal"
)

func main() {

	verbose := true

	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	if mpi.Rank() == 0 {
		io.PfWhite("\npareal -- time-parallel finite-difference IVP solver\n\n")
	}

	diffConst := flag.Float64("d", 0.1, "diffusion coefficient")
	dxFlag := flag.Float64("dx", 0.05, "mesh step size over [0,1]")
	dtFine := flag.Float64("dtf", 0.0005, "fine operator time step")
	dtCoarse := flag.Float64("dtc", 0.01, "coarse operator time step")
	tEnd := flag.Float64("tend", 0.2, "final time")
	tol := flag.Float64("tol", 1e-6, "parareal convergence tolerance")
	maxIt := flag.Int("maxit", 20, "parareal max iterations")
	flag.Parse()

	m, err := mesh.NewMesh([]mesh.AxisSpec{{A: 0, B: 1, Dx: *dxFlag}}, mesh.Cartesian)
	if err != nil {
		chk.Panic("%v", err)
	}
	eq, err := deq.NewDiffusion(1, *diffConst, nil)
	if err != nil {
		chk.Panic("%v", err)
	}
	zero := bc.New(bc.Dirichlet, bc.Constant(0), true)
	problem, err := cprob.New(m, eq, [][2]*bc.BoundaryCondition{{zero, zero}})
	if err != nil {
		chk.Panic("%v", err)
	}

	ic := ivp.Continuous{Fcn: func(x []float64) []float64 {
		return []float64{x[0] * (1 - x[0])}
	}}
	prob, err := ivp.New(problem, 0, *tEnd, ic)
	if err != nil {
		chk.Panic("%v", err)
	}

	fineIt, err := integrator.New(integrator.RK4, 0, 0)
	if err != nil {
		chk.Panic("%v", err)
	}
	fine, err := operator.NewFDM(*dtFine, fineIt, true, 1e-10, 2000)
	if err != nil {
		chk.Panic("%v", err)
	}
	coarseIt, err := integrator.New(integrator.ForwardEuler, 0, 0)
	if err != nil {
		chk.Panic("%v", err)
	}
	coarse, err := operator.NewFDM(*dtCoarse, coarseIt, true, 1e-10, 2000)
	if err != nil {
		chk.Panic("%v", err)
	}

	var comm parareal.Comm = parareal.Serial{}
	if mpi.IsOn() && mpi.Size() > 1 {
		comm = parareal.MPIComm{}
	}
	pr, err := parareal.New(fine, coarse, *tol, *maxIt, comm)
	if err != nil {
		chk.Panic("%v", err)
	}

	sol, err := pr.Solve(prob, mpi.IsOn())
	if err != nil {
		chk.Panic("%v", err)
	}

	if mpi.Rank() == 0 && verbose {
		last := sol.Y[len(sol.Y)-1]
		io.Pf("solved %d time points, final max|y| = %g\n", len(sol.T), maxAbs(last))
	}
}

func maxAbs(y []float64) float64 {
	m := 0.0
	for _, v := range y {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}
