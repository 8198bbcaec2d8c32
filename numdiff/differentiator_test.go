// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numdiff

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/dpedroso/pareal/constraint"
	"github.com/dpedroso/pareal/errs"
	"github.com/dpedroso/pareal/mesh"
	"gonum.org/v1/gonum/diff/fd"
)

func Test_numdiff01_derivative_quadratic(tst *testing.T) {

	//verbose()
	chk.PrintTitle("numdiff01_derivative_quadratic")

	m, _ := mesh.NewMesh([]mesh.AxisSpec{{A: 0, B: 1, Dx: 0.25}}, mesh.Cartesian)
	d := New(m)
	// y = x^2 at vertices 0,0.25,0.5,0.75,1 -> 0, 0.0625, 0.25, 0.5625, 1
	y := []float64{0, 0.0625, 0.25, 0.5625, 1}
	dy, err := d.Derivative(y, 1, 0, nil, nil)
	if err != nil {
		tst.Fatalf("Derivative failed: %v", err)
	}
	// interior points: dy/dx = 2x exactly for a quadratic with central differences
	chk.Float64(tst, "dy/dx at 0.25", 1e-12, dy[1], 0.5)
	chk.Float64(tst, "dy/dx at 0.5", 1e-12, dy[2], 1.0)
	chk.Float64(tst, "dy/dx at 0.75", 1e-12, dy[3], 1.5)
}

func Test_numdiff02_insufficient_width(tst *testing.T) {

	//verbose()
	chk.PrintTitle("numdiff02_insufficient_width")

	m, _ := mesh.NewMesh([]mesh.AxisSpec{{A: 0, B: 1, Dx: 1}}, mesh.Cartesian) // only 2 vertices
	d := New(m)
	_, err := d.Derivative([]float64{0, 1}, 1, 0, nil, nil)
	if err == nil || !errs.As(err, errs.InsufficientStencilWidth) {
		tst.Fatalf("expected InsufficientStencilWidth, got %v", err)
	}
}

func Test_numdiff03_laplacian_quadratic(tst *testing.T) {

	//verbose()
	chk.PrintTitle("numdiff03_laplacian_quadratic")

	m, _ := mesh.NewMesh([]mesh.AxisSpec{{A: 0, B: 1, Dx: 0.25}}, mesh.Cartesian)
	d := New(m)
	y := []float64{0, 0.0625, 0.25, 0.5625, 1} // y=x^2, Δy should be ~2 everywhere interior
	lap, err := d.Laplacian(y, 1, nil, nil)
	if err != nil {
		tst.Fatalf("Laplacian failed: %v", err)
	}
	chk.Float64(tst, "laplacian at 0.5", 1e-10, lap[2], 2.0)
}

func Test_numdiff04_anti_laplacian_requires_max_iterations(tst *testing.T) {

	//verbose()
	chk.PrintTitle("numdiff04_anti_laplacian_requires_max_iterations")

	m, _ := mesh.NewMesh([]mesh.AxisSpec{{A: 0, B: 1, Dx: 0.25}}, mesh.Cartesian)
	d := New(m)
	rhs := make([]float64, 5)
	_, err := d.AntiLaplacian(rhs, 1, nil, AntiLaplacianOptions{Tol: 1e-6, MaxIterations: 0})
	if err == nil || !errs.As(err, errs.InvalidParameter) {
		tst.Fatalf("expected InvalidParameter for MaxIterations=0, got %v", err)
	}
}

func Test_numdiff05_anti_laplacian_converges(tst *testing.T) {

	//verbose()
	chk.PrintTitle("numdiff05_anti_laplacian_converges")

	m, _ := mesh.NewMesh([]mesh.AxisSpec{{A: 0, B: 1, Dx: 0.25}}, mesh.Cartesian)
	d := New(m)
	rhs := []float64{0, 0, 0, 0, 0} // Laplace's equation: Δy=0 with Dirichlet 0..1 -> linear ramp
	mask := []bool{true, false, false, false, true}
	values := []float64{0, 0, 0, 0, 1}
	yc := []*constraint.Constraint{constraint.New(mask, values)}
	y, err := d.AntiLaplacian(rhs, 1, yc, AntiLaplacianOptions{Tol: 1e-9, MaxIterations: 10000})
	if err != nil {
		tst.Fatalf("AntiLaplacian failed: %v", err)
	}
	chk.Array(tst, "linear ramp", 1e-6, y, []float64{0, 0.25, 0.5, 0.75, 1})
}

// Test_numdiff06_derivative_matches_gonum_fd cross-checks the hand-rolled
// central-difference stencil against gonum's independent implementation
// (same step, same central formula) on a non-polynomial sample function,
// so the stencil isn't only validated against itself.
func Test_numdiff06_derivative_matches_gonum_fd(tst *testing.T) {

	//verbose()
	chk.PrintTitle("numdiff06_derivative_matches_gonum_fd")

	dx := 0.01
	m, _ := mesh.NewMesh([]mesh.AxisSpec{{A: 0, B: 2 * math.Pi, Dx: dx}}, mesh.Cartesian)
	d := New(m)
	grid := m.VertexCoordinateGrids()[0]
	y := make([]float64, len(grid))
	for i, x := range grid {
		y[i] = math.Sin(x)
	}
	dy, err := d.Derivative(y, 1, 0, nil, nil)
	if err != nil {
		tst.Fatalf("Derivative failed: %v", err)
	}

	mid := len(grid) / 2
	want := fd.Derivative(math.Sin, grid[mid], &fd.Settings{Formula: fd.Central, Step: dx})
	chk.Float64(tst, "centered derivative vs gonum/diff/fd", 1e-6, dy[mid], want)
}
