// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh implements the rectangular, coordinate-system-aware
// discretization of a 1-3 D spatial domain that every other component
// of the solver is indexed against.
package mesh

import (
	"math"

	"github.com/cpmech/gosl/utl"
	"github.com/dpedroso/pareal/errs"
)

// CoordSystem tags the curvilinear interpretation of the mesh axes.
type CoordSystem int

// supported coordinate systems; axis semantics are fixed per system (§3)
const (
	Cartesian CoordSystem = iota
	Polar                 // axis 0 = r, axis 1 = θ
	Cylindrical           // axis 0 = r, axis 1 = θ, axis 2 = z
	Spherical             // axis 0 = r, axis 1 = θ, axis 2 = φ
)

// AxisSpec describes one spatial axis before discretization.
type AxisSpec struct {
	A, B float64 // interval [A, B]; the first vertex lies at A and the last at B
	Dx   float64 // step size
}

// Axis is a discretized spatial axis.
type Axis struct {
	A, B float64
	Dx   float64
	N    int // number of vertices
}

// NCells returns the number of cells along this axis.
func (a Axis) NCells() int { return a.N - 1 }

// Points returns the axis's discretized vertex coordinates, via gosl/utl's
// linspace helper (the same one gofem's ana/ reference solutions use to
// build their sampling grids).
func (a Axis) Points() []float64 { return utl.LinSpace(a.A, a.B, a.N) }

// Mesh is an ordered tuple of discretized axes plus a coordinate system tag.
type Mesh struct {
	Axes   []Axis
	Coord  CoordSystem
	vGrids [][]float64 // memoized vertex coordinate grids, one per axis, flattened row-major
	cGrids [][]float64 // memoized cell-center coordinate grids
}

// NewMesh validates and builds a Mesh from axis specs (§3 invariants).
func NewMesh(specs []AxisSpec, coord CoordSystem) (*Mesh, error) {
	if len(specs) < 1 || len(specs) > 3 {
		return nil, errs.New(errs.InvalidParameter, "mesh rank must be in [1,3]; got %d", len(specs))
	}
	axes := make([]Axis, len(specs))
	for i, s := range specs {
		if s.Dx <= 0 {
			return nil, errs.New(errs.InvalidParameter, "axis %d: step size must be > 0; got %g", i, s.Dx)
		}
		if s.B <= s.A {
			return nil, errs.New(errs.InvalidParameter, "axis %d: must have b > a; got a=%g b=%g", i, s.A, s.B)
		}
		n := int(math.Round((s.B-s.A)/s.Dx)) + 1
		axes[i] = Axis{A: s.A, B: s.B, Dx: s.Dx, N: n}
	}
	m := &Mesh{Axes: axes, Coord: coord}
	return m, nil
}

// Rank returns the number of spatial axes (1-3).
func (m *Mesh) Rank() int { return len(m.Axes) }

// VertexShape returns the per-axis vertex counts.
func (m *Mesh) VertexShape() []int {
	shape := make([]int, len(m.Axes))
	for i, a := range m.Axes {
		shape[i] = a.N
	}
	return shape
}

// CellShape returns the per-axis cell counts.
func (m *Mesh) CellShape() []int {
	shape := make([]int, len(m.Axes))
	for i, a := range m.Axes {
		shape[i] = a.NCells()
	}
	return shape
}

// Coordinate returns the physical coordinate of vertex index idx (one per axis).
func (m *Mesh) Coordinate(idx []int) []float64 {
	x := make([]float64, len(m.Axes))
	for i, a := range m.Axes {
		x[i] = a.A + float64(idx[i])*a.Dx
	}
	return x
}

// CellCenter returns the physical coordinate of cell index idx (one per axis).
func (m *Mesh) CellCenter(idx []int) []float64 {
	x := make([]float64, len(m.Axes))
	for i, a := range m.Axes {
		x[i] = a.A + (float64(idx[i])+0.5)*a.Dx
	}
	return x
}

// VertexCoordinateGrids returns, per axis, the flattened (row-major over
// the vertex shape) physical coordinate of that axis broadcast across the
// whole mesh. Memoized: the mesh is immutable once constructed.
func (m *Mesh) VertexCoordinateGrids() [][]float64 {
	if m.vGrids != nil {
		return m.vGrids
	}
	m.vGrids = m.buildGrids(m.VertexShape(), m.Coordinate)
	return m.vGrids
}

// CellCenterGrids is the cell-oriented analogue of VertexCoordinateGrids.
func (m *Mesh) CellCenterGrids() [][]float64 {
	if m.cGrids != nil {
		return m.cGrids
	}
	m.cGrids = m.buildGrids(m.CellShape(), m.CellCenter)
	return m.cGrids
}

func (m *Mesh) buildGrids(shape []int, at func([]int) []float64) [][]float64 {
	total := 1
	for _, n := range shape {
		total *= n
	}
	grids := make([][]float64, len(m.Axes))
	for a := range grids {
		grids[a] = make([]float64, total)
	}
	idx := make([]int, len(shape))
	for flat := 0; flat < total; flat++ {
		x := at(idx)
		for a := range grids {
			grids[a][flat] = x[a]
		}
		// odometer increment, row-major with the last axis fastest
		for a := len(idx) - 1; a >= 0; a-- {
			idx[a]++
			if idx[a] < shape[a] {
				break
			}
			idx[a] = 0
		}
	}
	return grids
}

// Strides returns row-major strides for the given shape, last axis fastest.
func Strides(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

// Size returns the product of shape.
func Size(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}
