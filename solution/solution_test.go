// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solution

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/dpedroso/pareal/bc"
	"github.com/dpedroso/pareal/cprob"
	"github.com/dpedroso/pareal/deq"
	"github.com/dpedroso/pareal/mesh"
)

func build(tst *testing.T) *cprob.ConstrainedProblem {
	m, _ := mesh.NewMesh([]mesh.AxisSpec{{A: 0, B: 1, Dx: 0.5}}, mesh.Cartesian)
	eq, _ := deq.NewDiffusion(1, 0.1, nil)
	zero := bc.New(bc.Dirichlet, bc.Constant(0), true)
	p, err := cprob.New(m, eq, [][2]*bc.BoundaryCondition{{zero, zero}})
	if err != nil {
		tst.Fatalf("cprob.New failed: %v", err)
	}
	return p
}

func Test_solution01_strictly_increasing(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solution01_strictly_increasing")

	p := build(tst)
	_, err := New(p, []float64{0, 1, 0.5}, [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}, true, 0.5)
	if err == nil {
		tst.Fatalf("expected error for non-increasing time coordinates")
	}
}

func Test_solution02_maxabsdiff(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solution02_maxabsdiff")

	d := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 0, 10})
	chk.Float64(tst, "max abs diff", 1e-15, d, 7)
}

func Test_solution03_sum(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solution03_sum")

	chk.Float64(tst, "sum", 1e-15, Sum([]float64{1, 2, 3, 4}), 10)
}
