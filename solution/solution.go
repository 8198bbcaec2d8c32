// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solution implements the immutable Solution bundle every
// Operator returns: time coordinates, discrete y, and the pointwise
// difference/interpolation operations used to compare solutions (§3).
package solution

import (
	"math"

	"github.com/cpmech/gosl/utl"
	"github.com/dpedroso/pareal/cprob"
	"github.com/dpedroso/pareal/errs"
	"github.com/dpedroso/pareal/mesh"
	"gonum.org/v1/gonum/floats"
)

// Solution is an immutable result: a reference to the ConstrainedProblem
// that produced it, strictly increasing time coordinates, the discrete y
// tensor of shape (N,) ⊕ y_shape, the vertex/cell orientation flag, and
// the Δt that produced it.
type Solution struct {
	Problem        *cprob.ConstrainedProblem
	T              []float64   // strictly increasing, length N
	Y              [][]float64 // Y[k] is the flattened y_shape tensor at T[k]
	VertexOriented bool
	Dt             float64
}

// New validates and builds a Solution (§8 invariant 1).
func New(p *cprob.ConstrainedProblem, t []float64, y [][]float64, vertexOriented bool, dt float64) (*Solution, error) {
	if len(t) != len(y) {
		return nil, errs.New(errs.ShapeMismatch, "t_coordinates length (%d) must equal discrete_y length (%d)", len(t), len(y))
	}
	for i := 1; i < len(t); i++ {
		if t[i] <= t[i-1] {
			return nil, errs.New(errs.InvalidParameter, "t_coordinates must be strictly increasing; t[%d]=%g <= t[%d]=%g", i, t[i], i-1, t[i-1])
		}
	}
	return &Solution{Problem: p, T: t, Y: y, VertexOriented: vertexOriented, Dt: dt}, nil
}

// shape returns the y_shape (vertex or cell shape ⊕ y_dimension) this
// Solution is oriented to.
func (s *Solution) shape() []int {
	if s.VertexOriented {
		return s.Problem.YVerticesShape()
	}
	return s.Problem.YCellsShape()
}

// DiscreteY returns y in the requested orientation, interpolating between
// vertex- and cell-layout when it differs from the Solution's native one
// (simple averaging interpolation along every spatial axis).
func (s *Solution) DiscreteY(vertexOriented bool) [][]float64 {
	if vertexOriented == s.VertexOriented {
		return s.Y
	}
	out := make([][]float64, len(s.Y))
	for k, y := range s.Y {
		out[k] = interpolateOrientation(y, s.Problem, s.VertexOriented, vertexOriented)
	}
	return out
}

// interpolateOrientation converts one time slice between vertex and cell
// layouts using 2^rank-point averaging (linear interpolation on a
// rectangular mesh): every cell value is the mean of its 2^rank corner
// vertices, and every interior vertex value is the mean of its up-to-2^rank
// adjacent cells.
func interpolateOrientation(y []float64, p *cprob.ConstrainedProblem, fromVertex, toVertex bool) []float64 {
	yDim := p.Eq.YDimension
	if fromVertex && !toVertex {
		vShape := p.Mesh.VertexShape()
		cShape := p.Mesh.CellShape()
		vStrides := mesh.Strides(append(append([]int{}, vShape...), yDim))
		cTotal := mesh.Size(cShape)
		out := make([]float64, cTotal*yDim)
		idx := make([]int, len(cShape))
		for flat := 0; flat < cTotal; flat++ {
			corners := corners(len(cShape))
			for k := 0; k < yDim; k++ {
				sum := 0.0
				for _, corner := range corners {
					vFlat := 0
					for a, c := range corner {
						vFlat += (idx[a] + c) * vStrides[a]
					}
					sum += y[vFlat+k]
				}
				out[flat*yDim+k] = sum / float64(len(corners))
			}
			odometer(idx, cShape)
		}
		return out
	}
	// cell -> vertex: average adjacent cells, clamping at the mesh boundary
	vShape := p.Mesh.VertexShape()
	cShape := p.Mesh.CellShape()
	cStrides := mesh.Strides(append(append([]int{}, cShape...), yDim))
	vTotal := mesh.Size(vShape)
	out := make([]float64, vTotal*yDim)
	idx := make([]int, len(vShape))
	for flat := 0; flat < vTotal; flat++ {
		var cellIdxs [][]int
		for _, corner := range corners(len(vShape)) {
			cell := make([]int, len(vShape))
			ok := true
			for a := range idx {
				cell[a] = idx[a] - (1 - corner[a])
				if cell[a] < 0 || cell[a] >= cShape[a] {
					ok = false
					break
				}
			}
			if ok {
				cellIdxs = append(cellIdxs, cell)
			}
		}
		for k := 0; k < yDim; k++ {
			sum := 0.0
			for _, cell := range cellIdxs {
				cFlat := 0
				for a, c := range cell {
					cFlat += c * cStrides[a]
				}
				sum += y[cFlat+k]
			}
			if len(cellIdxs) > 0 {
				out[flat*yDim+k] = sum / float64(len(cellIdxs))
			}
		}
		odometer(idx, vShape)
	}
	return out
}

// corners enumerates the 2^rank {0,1} offset combinations.
func corners(rank int) [][]int {
	n := 1 << uint(rank)
	out := make([][]int, n)
	for c := 0; c < n; c++ {
		combo := make([]int, rank)
		for a := 0; a < rank; a++ {
			combo[a] = (c >> uint(a)) & 1
		}
		out[c] = combo
	}
	return out
}

func odometer(idx, shape []int) {
	for a := len(idx) - 1; a >= 0; a-- {
		idx[a]++
		if idx[a] < shape[a] {
			return
		}
		idx[a] = 0
	}
}

// Diff returns the time-aligned pointwise difference s - other at every
// time coordinate shared between the two (matched by equal T value).
func (s *Solution) Diff(other *Solution) ([][]float64, error) {
	otherByT := map[float64][]float64{}
	oy := other.DiscreteY(s.VertexOriented)
	for k, t := range other.T {
		otherByT[t] = oy[k]
	}
	out := make([][]float64, 0, len(s.T))
	for k, t := range s.T {
		oYk, ok := otherByT[t]
		if !ok {
			continue
		}
		d := make([]float64, len(s.Y[k]))
		for i := range d {
			d[i] = s.Y[k][i] - oYk[i]
		}
		out = append(out, d)
	}
	return out, nil
}

// MaxAbsDiff returns the maximum absolute pointwise difference between a
// and b; used by Parareal's convergence test on its end states.
// Reduces via gosl/utl.Max, the same pairwise-max helper gofem's own
// fem/output.go uses for its bounding-box span.
func MaxAbsDiff(a, b []float64) float64 {
	maxD := 0.0
	for i := range a {
		maxD = utl.Max(maxD, math.Abs(a[i]-b[i]))
	}
	return maxD
}

// Norm2 returns the Euclidean norm of v (gonum's numerically stable sum
// of squares).
func Norm2(v []float64) float64 { return floats.Norm(v, 2) }

// Sum returns the sum of v via gonum's floats.Sum, a helper for checking
// a conserved quantity such as the diffusion/Neumann invariant (§8
// invariant 3).
func Sum(v []float64) float64 { return floats.Sum(v) }
