// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cprob composes a Mesh, boundary conditions and a
// DifferentialEquation into a ConstrainedProblem: it derives the vertex
// solution constraints and the boundary-derivative constraints every
// Operator needs, and owns them exclusively (§4.5). No cell-oriented
// solution constraints are derived.
package cprob

import (
	"github.com/dpedroso/pareal/bc"
	"github.com/dpedroso/pareal/constraint"
	"github.com/dpedroso/pareal/deq"
	"github.com/dpedroso/pareal/errs"
	"github.com/dpedroso/pareal/mesh"
)

// Face names one axis end.
type Face int

const (
	Lower Face = iota
	Upper
)

// ConstrainedProblem binds a DifferentialEquation to a Mesh and boundary
// conditions, deriving the read-only constraints every solve needs.
type ConstrainedProblem struct {
	Mesh *mesh.Mesh
	Eq   *deq.DifferentialEquation

	// BCs[axis][face] is nil when that axis face has no boundary condition.
	BCs [][2]*bc.BoundaryCondition

	// YVertexConstraints[c] enforces Dirichlet values for y-component c
	// over the full flattened vertex array (§4.5 step 3). Populated only
	// when the problem was built with NewYConstraintPerComponent.
	YVertexConstraints []*constraint.Constraint

	// YVertexConstraintWhole enforces Dirichlet values over the single
	// interleaved (vertex, y-component) flat array instead of one
	// Constraint per component. Populated only when the problem was
	// built with NewYConstraintWhole.
	YVertexConstraintWhole *constraint.Constraint

	// DYBoundaryVertexConstraints[axis][c] holds the (lower, upper) pair
	// of face-sized Constraints carrying Neumann/Cauchy derivative data
	// for y-component c on that axis's two faces.
	DYBoundaryVertexConstraints [][][2]*constraint.Constraint
}

// yConstraintShape selects which of the two constraint-shape variants
// from §9's open question New derives.
type yConstraintShape int

const (
	perComponent yConstraintShape = iota
	whole
)

// YVerticesShape returns mesh.VertexShape() ⊕ (y_dimension).
func (p *ConstrainedProblem) YVerticesShape() []int {
	return append(append([]int{}, p.Mesh.VertexShape()...), p.Eq.YDimension)
}

// YCellsShape returns mesh.CellShape() ⊕ (y_dimension).
func (p *ConstrainedProblem) YCellsShape() []int {
	return append(append([]int{}, p.Mesh.CellShape()...), p.Eq.YDimension)
}

// faceShape returns the vertex shape with the given axis removed.
func faceShape(vertexShape []int, axis int) []int {
	out := make([]int, 0, len(vertexShape)-1)
	for i, n := range vertexShape {
		if i != axis {
			out = append(out, n)
		}
	}
	return out
}

// unflatten decodes a row-major flat index against shape, last axis fastest.
func unflatten(flat int, strides, shape []int) []int {
	idx := make([]int, len(shape))
	rem := flat
	for i, s := range strides {
		idx[i] = rem / s
		rem %= s
	}
	return idx
}

// New builds a ConstrainedProblem using the per-component y-constraint
// shape; it is an alias for NewYConstraintPerComponent kept for existing
// callers that don't care which of §9's two variants they get.
func New(m *mesh.Mesh, eq *deq.DifferentialEquation, bcs [][2]*bc.BoundaryCondition) (*ConstrainedProblem, error) {
	return newConstrainedProblem(m, eq, bcs, perComponent)
}

// NewYConstraintPerComponent builds a ConstrainedProblem whose derived
// y-vertex Dirichlet constraint is one *constraint.Constraint per
// y-component (§9's per-component variant): YVertexConstraints holds
// yDim entries, each sized to the scalar vertex array.
func NewYConstraintPerComponent(m *mesh.Mesh, eq *deq.DifferentialEquation, bcs [][2]*bc.BoundaryCondition) (*ConstrainedProblem, error) {
	return newConstrainedProblem(m, eq, bcs, perComponent)
}

// NewYConstraintWhole builds a ConstrainedProblem whose derived y-vertex
// Dirichlet constraint is a single *constraint.Constraint over the
// interleaved (vertex, y-component) flat array (§9's whole-y variant)
// instead of one Constraint per component: YVertexConstraintWhole holds
// the combined mask/values pair and YVertexConstraints is left nil.
func NewYConstraintWhole(m *mesh.Mesh, eq *deq.DifferentialEquation, bcs [][2]*bc.BoundaryCondition) (*ConstrainedProblem, error) {
	return newConstrainedProblem(m, eq, bcs, whole)
}

func newConstrainedProblem(m *mesh.Mesh, eq *deq.DifferentialEquation, bcs [][2]*bc.BoundaryCondition, shape yConstraintShape) (*ConstrainedProblem, error) {
	if eq.XDimension == 0 {
		// an ODE system has no spatial extent: the given mesh and boundary
		// conditions are not used, and a rank-0 mesh makes y a single point
		m, bcs = &mesh.Mesh{}, nil
	}
	if eq.XDimension != m.Rank() {
		return nil, errs.New(errs.ShapeMismatch, "equation x_dimension (%d) must equal mesh rank (%d)", eq.XDimension, m.Rank())
	}
	if len(bcs) != m.Rank() {
		return nil, errs.New(errs.InvalidParameter, "boundary conditions must have one entry per axis (%d); got %d", m.Rank(), len(bcs))
	}
	if eq.XDimension > 0 {
		for a, pair := range bcs {
			if pair[0] == nil && pair[1] == nil {
				return nil, errs.New(errs.BoundarySpecMissing, "axis %d: PDE declared but no boundary condition given", a)
			}
		}
	}

	p := &ConstrainedProblem{Mesh: m, Eq: eq, BCs: bcs}
	switch shape {
	case whole:
		p.deriveYVertexConstraintWhole()
	default:
		p.deriveYVertexConstraints()
	}
	p.deriveDYBoundaryVertexConstraints()
	return p, nil
}

// deriveYVertexConstraintWhole builds the single interleaved Constraint
// variant by deriving the per-component constraints and merging them
// into one mask/values pair over the flattened (vertex, y-component)
// array, rather than keeping them separate.
func (p *ConstrainedProblem) deriveYVertexConstraintWhole() {
	p.deriveYVertexConstraints()
	vShape := p.Mesh.VertexShape()
	total := mesh.Size(vShape)
	yDim := p.Eq.YDimension
	whole := constraint.NoOp(total * yDim)
	for c, comp := range p.YVertexConstraints {
		for i, on := range comp.Mask {
			if on {
				whole.Mask[i*yDim+c] = true
				whole.Values[i*yDim+c] = comp.Values[i]
			}
		}
	}
	p.YVertexConstraintWhole = whole
	p.YVertexConstraints = nil
}

func (p *ConstrainedProblem) deriveYVertexConstraints() {
	vShape := p.Mesh.VertexShape()
	total := mesh.Size(vShape)
	strides := mesh.Strides(vShape)

	p.YVertexConstraints = make([]*constraint.Constraint, p.Eq.YDimension)
	for c := range p.YVertexConstraints {
		p.YVertexConstraints[c] = constraint.NoOp(total)
	}

	for axis, pair := range p.BCs {
		for _, face := range []Face{Lower, Upper} {
			cond := pair[face]
			if cond == nil || cond.Kind != bc.Dirichlet {
				continue
			}
			fIdx := 0
			if face == Upper {
				fIdx = vShape[axis] - 1
			}
			fShape := faceShape(vShape, axis)
			fTotal := mesh.Size(fShape)
			fStrides := mesh.Strides(fShape)
			for flat := 0; flat < fTotal; flat++ {
				faceIdx := unflatten(flat, fStrides, fShape)
				full := make([]int, len(vShape))
				j := 0
				for i := range vShape {
					if i == axis {
						full[i] = fIdx
						continue
					}
					full[i] = faceIdx[j]
					j++
				}
				x := p.Mesh.Coordinate(full)
				values := cond.Value(x, 0)
				fullFlat := 0
				for i, idx := range full {
					fullFlat += idx * strides[i]
				}
				for c, v := range values {
					if bc.IsUnconstrained(v) {
						continue
					}
					p.YVertexConstraints[c].Mask[fullFlat] = true
					p.YVertexConstraints[c].Values[fullFlat] = v
				}
			}
		}
	}
}

func (p *ConstrainedProblem) deriveDYBoundaryVertexConstraints() {
	vShape := p.Mesh.VertexShape()
	p.DYBoundaryVertexConstraints = make([][][2]*constraint.Constraint, p.Mesh.Rank())

	for axis, pair := range p.BCs {
		fShape := faceShape(vShape, axis)
		fTotal := mesh.Size(fShape)
		fStrides := mesh.Strides(fShape)

		p.DYBoundaryVertexConstraints[axis] = make([][2]*constraint.Constraint, p.Eq.YDimension)
		for c := range p.DYBoundaryVertexConstraints[axis] {
			p.DYBoundaryVertexConstraints[axis][c] = [2]*constraint.Constraint{
				constraint.NoOp(fTotal), constraint.NoOp(fTotal),
			}
		}

		for _, face := range []Face{Lower, Upper} {
			cond := pair[face]
			if cond == nil || !cond.HasDYCondition() {
				continue
			}
			fIdx := 0
			if face == Upper {
				fIdx = vShape[axis] - 1
			}
			for flat := 0; flat < fTotal; flat++ {
				faceIdx := unflatten(flat, fStrides, fShape)
				full := make([]int, len(vShape))
				j := 0
				for i := range vShape {
					if i == axis {
						full[i] = fIdx
						continue
					}
					full[i] = faceIdx[j]
					j++
				}
				x := p.Mesh.Coordinate(full)
				values := cond.Value(x, 0)
				for c, v := range values {
					if bc.IsUnconstrained(v) {
						continue
					}
					p.DYBoundaryVertexConstraints[axis][c][face].Mask[flat] = true
					p.DYBoundaryVertexConstraints[axis][c][face].Values[flat] = v
				}
			}
		}
	}
}
