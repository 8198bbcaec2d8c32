// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parareal

import (
	"github.com/dpedroso/pareal/cprob"
	"github.com/dpedroso/pareal/errs"
	"github.com/dpedroso/pareal/ivp"
	"github.com/dpedroso/pareal/operator"
	"github.com/dpedroso/pareal/solution"
)

// Parareal composes a fine (accurate, expensive) and a coarse (cheap)
// Operator into the predictor-corrector iteration of §4.4: each worker
// owns one sub-interval, integrates the fine operator locally, and every
// worker redundantly repeats the serial coarse sweep over the corrected
// boundary states so all ranks observe identical results without an
// extra broadcast.
type Parareal struct {
	Fine, Coarse  operator.Operator
	Tol           float64
	MaxIterations int
	Comm          Comm // used when Solve is called with parallelEnabled=true
}

// New validates and builds a Parareal coordinator.
func New(fine, coarse operator.Operator, tol float64, maxIt int, comm Comm) (*Parareal, error) {
	if tol < 0 {
		return nil, errs.New(errs.InvalidParameter, "tol must be >= 0; got %g", tol)
	}
	if maxIt <= 0 {
		return nil, errs.New(errs.InvalidParameter, "maxIterations must be > 0; got %d", maxIt)
	}
	if comm == nil {
		comm = Serial{}
	}
	return &Parareal{Fine: fine, Coarse: coarse, Tol: tol, MaxIterations: maxIt, Comm: comm}, nil
}

func (pr *Parareal) DT() float64 { return pr.Fine.DT() }
func (pr *Parareal) VertexOriented() *bool { return pr.Fine.VertexOriented() }

// Solve satisfies operator.Operator. When parallelEnabled is false (the
// case when this Parareal is itself the coarse operator nested inside an
// outer Parareal — §4.4's nested-Parareal requirement), the collective
// context collapses to Serial{} instead of pr.Comm, so an inner run never
// shares ranks with the outer collective.
func (pr *Parareal) Solve(problem *ivp.InitialValueProblem, parallelEnabled bool) (*solution.Solution, error) {
	comm := Comm(Serial{})
	if parallelEnabled {
		comm = pr.Comm
	}
	return pr.solveWith(problem, comm)
}

func (pr *Parareal) solveWith(problem *ivp.InitialValueProblem, comm Comm) (*solution.Solution, error) {
	w := comm.Size()
	rank := comm.Rank()
	p := problem.Problem

	vertexOriented := true
	if vp := pr.Fine.VertexOriented(); vp != nil {
		vertexOriented = *vp
	}
	y0, err := problem.IC.DiscreteY0(p, vertexOriented)
	if err != nil {
		return nil, err
	}

	bounds := make([]float64, w+1)
	span := (problem.T1 - problem.T0) / float64(w)
	for i := range bounds {
		bounds[i] = problem.T0 + float64(i)*span
	}

	// n=0: purely serial coarse sweep, computed redundantly and
	// deterministically by every rank.
	Y, G, err := pr.coarseSweep(p, bounds, y0, nil, nil)
	if err != nil {
		return nil, err
	}

	for n := 1; n <= pr.MaxIterations; n++ {
		var start []float64
		if rank == 0 {
			start = y0
		} else {
			start = Y[rank-1]
		}

		localF, localErr := pr.fineEndState(p, bounds[rank], bounds[rank+1], start)
		localFail := 0
		if localErr != nil {
			localFail = 1
			localF = make([]float64, len(y0))
		}
		if comm.AllReduceMaxInt(localFail) > 0 {
			return nil, errs.New(errs.Divergence, "parareal iteration %d: a worker's fine solve diverged", n)
		}

		gathered := comm.AllGather(localF)

		Yold := Y
		Y, G, err = pr.coarseSweep(p, bounds, y0, gathered, G)
		if err != nil {
			return nil, err
		}

		maxDiff := 0.0
		for k := range Y {
			d := solution.MaxAbsDiff(Y[k], Yold[k])
			if d > maxDiff {
				maxDiff = d
			}
		}
		if maxDiff < pr.Tol {
			// tie-break (§4.4): tolerance wins even when n==MaxIterations.
			break
		}
	}

	return pr.stitch(problem, comm, bounds, y0, Y, vertexOriented)
}

// coarseSweep performs the serial, data-dependent coarse pass over every
// sub-interval: Y[k] = G_k + F[k] - Gprev[k] (or Y[k] = G_k when fine
// is nil, i.e. the n=0 seeding sweep).
func (pr *Parareal) coarseSweep(p *cprob.ConstrainedProblem, bounds []float64, y0 []float64, fine [][]float64, gprev [][]float64) ([][]float64, [][]float64, error) {
	w := len(bounds) - 1
	Y := make([][]float64, w)
	G := make([][]float64, w)
	prev := y0
	for k := 0; k < w; k++ {
		sub, err := ivp.New(p, bounds[k], bounds[k+1], discreteIC(prev))
		if err != nil {
			return nil, nil, err
		}
		sol, err := pr.Coarse.Solve(sub, false)
		if err != nil {
			return nil, nil, err
		}
		Gk := sol.Y[len(sol.Y)-1]
		G[k] = Gk

		var Yk []float64
		if fine == nil {
			Yk = Gk
		} else {
			Yk = make([]float64, len(Gk))
			for i := range Yk {
				Yk[i] = Gk[i] + fine[k][i] - gprev[k][i]
			}
		}
		Y[k] = Yk
		prev = Yk
	}
	return Y, G, nil
}

func (pr *Parareal) fineEndState(p *cprob.ConstrainedProblem, ta, tb float64, start []float64) ([]float64, error) {
	sub, err := ivp.New(p, ta, tb, discreteIC(start))
	if err != nil {
		return nil, err
	}
	sol, err := pr.Fine.Solve(sub, true)
	if err != nil {
		return nil, err
	}
	return sol.Y[len(sol.Y)-1], nil
}

// stitch re-integrates the fine operator one final time from the
// converged boundary states (the per-iteration F_k above used the
// previous iterate's boundary, not the converged one) and concatenates
// every rank's trajectory into the output Solution's time-ordered union.
// Every sub-interval has the same length and the same fine Δt, so every
// rank's trajectory has the same step count; this lets AllGather treat
// the per-rank time and y arrays as equal-width rows.
func (pr *Parareal) stitch(problem *ivp.InitialValueProblem, comm Comm, bounds []float64, y0 []float64, Y [][]float64, vertexOriented bool) (*solution.Solution, error) {
	w := comm.Size()
	rank := comm.Rank()
	p := problem.Problem

	var start []float64
	if rank == 0 {
		start = y0
	} else {
		start = Y[rank-1]
	}
	sub, err := ivp.New(p, bounds[rank], bounds[rank+1], discreteIC(start))
	if err != nil {
		return nil, err
	}
	finalSol, solveErr := pr.Fine.Solve(sub, true)

	localFail := 0
	steps := 0
	if solveErr != nil {
		localFail = 1
	} else {
		steps = len(finalSol.T)
	}
	if comm.AllReduceMaxInt(localFail) > 0 {
		return nil, errs.New(errs.Divergence, "parareal final stitch: a worker's fine solve diverged")
	}

	yDim := p.Eq.YDimension
	flatY := make([]float64, steps*yDim)
	localT := make([]float64, steps)
	if solveErr == nil {
		copy(localT, finalSol.T)
		for i, row := range finalSol.Y {
			copy(flatY[i*yDim:(i+1)*yDim], row)
		}
	}

	tGathered := comm.AllGather(localT)
	yGathered := comm.AllGather(flatY)

	var allT []float64
	var allY [][]float64
	for r := 0; r < w; r++ {
		allT = append(allT, tGathered[r]...)
		m := len(tGathered[r])
		for i := 0; i < m; i++ {
			row := make([]float64, yDim)
			copy(row, yGathered[r][i*yDim:(i+1)*yDim])
			allY = append(allY, row)
		}
	}

	return solution.New(p, allT, allY, vertexOriented, pr.Fine.DT())
}

// discreteIC is a tiny alias so sub-interval construction reads cleanly.
func discreteIC(y []float64) ivp.InitialCondition { return ivp.Discrete{Y: y} }
