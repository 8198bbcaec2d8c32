// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_mesh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh01")

	m, err := NewMesh([]AxisSpec{{A: 0, B: 1, Dx: 0.25}, {A: 0, B: 2, Dx: 0.5}}, Cartesian)
	if err != nil {
		tst.Fatalf("NewMesh failed: %v", err)
	}
	chk.IntAssert(m.Rank(), 2)
	chk.Ints(tst, "vertex shape", m.VertexShape(), []int{5, 5})
	chk.Ints(tst, "cell shape", m.CellShape(), []int{4, 4})
}

func Test_mesh02_invalid(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh02_invalid")

	if _, err := NewMesh([]AxisSpec{{A: 0, B: 1, Dx: -0.1}}, Cartesian); err == nil {
		tst.Fatalf("expected error for negative step size")
	}
	if _, err := NewMesh(nil, Cartesian); err == nil {
		tst.Fatalf("expected error for rank 0")
	}
	if _, err := NewMesh(make([]AxisSpec, 4), Cartesian); err == nil {
		tst.Fatalf("expected error for rank 4")
	}
}

func Test_mesh03_grids(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh03_grids")

	m, err := NewMesh([]AxisSpec{{A: 0, B: 1, Dx: 0.5}, {A: 0, B: 1, Dx: 0.5}}, Cartesian)
	if err != nil {
		tst.Fatalf("NewMesh failed: %v", err)
	}
	grids := m.VertexCoordinateGrids()
	chk.IntAssert(len(grids), 2)
	chk.IntAssert(len(grids[0]), 9)
	chk.Array(tst, "x-grid", 1e-15, grids[0], []float64{0, 0, 0, 0.5, 0.5, 0.5, 1, 1, 1})
	chk.Array(tst, "y-grid", 1e-15, grids[1], []float64{0, 0.5, 1, 0, 0.5, 1, 0, 0.5, 1})
}

func Test_mesh04_axis_points(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh04_axis_points")

	m, err := NewMesh([]AxisSpec{{A: 0, B: 1, Dx: 0.25}}, Cartesian)
	if err != nil {
		tst.Fatalf("NewMesh failed: %v", err)
	}
	chk.Array(tst, "axis points", 1e-15, m.Axes[0].Points(), []float64{0, 0.25, 0.5, 0.75, 1})
}
