// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cprob

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/dpedroso/pareal/bc"
	"github.com/dpedroso/pareal/deq"
	"github.com/dpedroso/pareal/errs"
	"github.com/dpedroso/pareal/mesh"
)

func build1DDiffusion(tst *testing.T) *ConstrainedProblem {
	m, err := mesh.NewMesh([]mesh.AxisSpec{{A: 0, B: 1, Dx: 0.25}}, mesh.Cartesian)
	if err != nil {
		tst.Fatalf("NewMesh failed: %v", err)
	}
	eq, err := deq.NewDiffusion(1, 0.1, nil)
	if err != nil {
		tst.Fatalf("NewDiffusion failed: %v", err)
	}
	left := bc.New(bc.Dirichlet, bc.Constant(0), true)
	right := bc.New(bc.Dirichlet, bc.Constant(1), true)
	bcs := [][2]*bc.BoundaryCondition{{left, right}}
	p, err := New(m, eq, bcs)
	if err != nil {
		tst.Fatalf("New(ConstrainedProblem) failed: %v", err)
	}
	return p
}

func Test_cprob01_shapes(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cprob01_shapes")

	p := build1DDiffusion(tst)
	chk.Ints(tst, "y_vertices_shape", p.YVerticesShape(), []int{5, 1})
	chk.Ints(tst, "y_cells_shape", p.YCellsShape(), []int{4, 1})
}

func Test_cprob02_dirichlet_constraints(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cprob02_dirichlet_constraints")

	p := build1DDiffusion(tst)
	y := make([]float64, 5)
	p.YVertexConstraints[0].Apply(y)
	chk.Array(tst, "y boundary", 1e-15, y, []float64{0, 0, 0, 0, 1})
}

func Test_cprob04_whole_y_constraint(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cprob04_whole_y_constraint")

	m, _ := mesh.NewMesh([]mesh.AxisSpec{{A: 0, B: 1, Dx: 0.25}}, mesh.Cartesian)
	eq, _ := deq.NewDiffusion(1, 0.1, nil)
	left := bc.New(bc.Dirichlet, bc.Constant(0), true)
	right := bc.New(bc.Dirichlet, bc.Constant(1), true)
	bcs := [][2]*bc.BoundaryCondition{{left, right}}
	p, err := NewYConstraintWhole(m, eq, bcs)
	if err != nil {
		tst.Fatalf("NewYConstraintWhole failed: %v", err)
	}
	if p.YVertexConstraints != nil {
		tst.Fatalf("expected YVertexConstraints nil in whole-y mode")
	}
	y := make([]float64, 5)
	p.YVertexConstraintWhole.Apply(y)
	chk.Array(tst, "y boundary", 1e-15, y, []float64{0, 0, 0, 0, 1})
}

func Test_cprob03_missing_bc(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cprob03_missing_bc")

	m, _ := mesh.NewMesh([]mesh.AxisSpec{{A: 0, B: 1, Dx: 0.25}}, mesh.Cartesian)
	eq, _ := deq.NewDiffusion(1, 0.1, nil)
	_, err := New(m, eq, [][2]*bc.BoundaryCondition{{nil, nil}})
	if err == nil || !errs.As(err, errs.BoundarySpecMissing) {
		tst.Fatalf("expected BoundarySpecMissing, got %v", err)
	}
}
