// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parareal

import (
	"math"
	"sync"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/dpedroso/pareal/bc"
	"github.com/dpedroso/pareal/cprob"
	"github.com/dpedroso/pareal/deq"
	"github.com/dpedroso/pareal/integrator"
	"github.com/dpedroso/pareal/ivp"
	"github.com/dpedroso/pareal/mesh"
	"github.com/dpedroso/pareal/operator"
)

func buildPopulation(tst *testing.T, r float64) (*cprob.ConstrainedProblem, *ivp.InitialValueProblem) {
	m, err := mesh.NewMesh([]mesh.AxisSpec{{A: 0, B: 1, Dx: 1}}, mesh.Cartesian)
	if err != nil {
		tst.Fatalf("NewMesh failed: %v", err)
	}
	eq, err := deq.NewPopulation(r)
	if err != nil {
		tst.Fatalf("NewPopulation failed: %v", err)
	}
	p, err := cprob.New(m, eq, [][2]*bc.BoundaryCondition{{nil, nil}})
	if err != nil {
		tst.Fatalf("cprob.New failed: %v", err)
	}
	problem, err := ivp.New(p, 0, 1, ivp.Discrete{Y: []float64{1}})
	if err != nil {
		tst.Fatalf("ivp.New failed: %v", err)
	}
	return p, problem
}

func Test_parareal01_serial_matches_exponential(tst *testing.T) {

	//verbose()
	chk.PrintTitle("parareal01_serial_matches_exponential")

	_, problem := buildPopulation(tst, 0.5)

	fineIt, _ := integrator.New(integrator.RK4, 0, 0)
	fine, _ := operator.NewODE(0.01, fineIt)
	coarseIt, _ := integrator.New(integrator.ForwardEuler, 0, 0)
	coarse, _ := operator.NewODE(0.05, coarseIt)

	pr, err := New(fine, coarse, 1e-10, 20, Serial{})
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	sol, err := pr.Solve(problem, true)
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}

	want := math.Exp(0.5)
	got := sol.Y[len(sol.Y)-1][0]
	chk.Float64(tst, "y(1) serial parareal", 1e-3, got, want)
}

func Test_parareal02_multi_rank_converges(tst *testing.T) {

	//verbose()
	chk.PrintTitle("parareal02_multi_rank_converges")

	r := 0.5
	const W = 4
	fineIt, _ := integrator.New(integrator.RK4, 0, 0)
	coarseIt, _ := integrator.New(integrator.ForwardEuler, 0, 0)

	comms := NewLocalGroup(W)
	results := make([]float64, W)
	errs := make([]error, W)
	var wg sync.WaitGroup
	for rank := 0; rank < W; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			_, problem := buildPopulation(tst, r)
			fine, _ := operator.NewODE(0.01, fineIt)
			coarse, _ := operator.NewODE(0.1, coarseIt)
			pr, err := New(fine, coarse, 1e-9, 30, comms[rank])
			if err != nil {
				errs[rank] = err
				return
			}
			sol, err := pr.Solve(problem, true)
			if err != nil {
				errs[rank] = err
				return
			}
			results[rank] = sol.Y[len(sol.Y)-1][0]
		}(rank)
	}
	wg.Wait()

	for rank, err := range errs {
		if err != nil {
			tst.Fatalf("rank %d failed: %v", rank, err)
		}
	}
	want := math.Exp(r * 1)
	for rank, got := range results {
		chk.Float64(tst, "y(1) rank result", 1e-3, got, want)
		_ = rank
	}
}

func Test_parareal03_rejects_non_positive_maxiterations(tst *testing.T) {

	//verbose()
	chk.PrintTitle("parareal03_rejects_non_positive_maxiterations")

	fineIt, _ := integrator.New(integrator.RK4, 0, 0)
	fine, _ := operator.NewODE(0.01, fineIt)
	_, err := New(fine, fine, 1e-6, 0, Serial{})
	if err == nil {
		tst.Fatalf("expected error for maxIterations<=0")
	}
}
