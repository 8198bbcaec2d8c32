// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package numdiff implements the stencil-based spatial operators
// (gradient, Hessian, divergence, curl, Laplacian) and the Jacobi
// anti-Laplacian that couple a DifferentialEquation's symbolic RHS to a
// Mesh. Every operation is a pure function over dense tensors whose last
// axis is the y-component; none mutate the input y (§4.1).
package numdiff

import (
	"math"

	"github.com/dpedroso/pareal/constraint"
	"github.com/dpedroso/pareal/errs"
	"github.com/dpedroso/pareal/mesh"
)

// Differentiator is a pure, stateless operator bound to one Mesh.
type Differentiator struct {
	Mesh *mesh.Mesh
}

// New binds a Differentiator to a Mesh.
func New(m *mesh.Mesh) *Differentiator { return &Differentiator{Mesh: m} }

func (d *Differentiator) vShape(yDim int) []int {
	return append(append([]int{}, d.Mesh.VertexShape()...), yDim)
}

// checkAxisWidth enforces the three-point stencil edge policy (§4.1).
func (d *Differentiator) checkAxisWidth(axis int) error {
	if d.Mesh.Axes[axis].N < 3 {
		return errs.New(errs.InsufficientStencilWidth, "axis %d has only %d vertices; need >= 3", axis, d.Mesh.Axes[axis].N)
	}
	return nil
}

// prepared is a working copy of y with Dirichlet constraints re-applied
// (the constraint contract re-snapshot described in §4.1) and its halo
// layer synthesized once, reused between the lower-boundary pass and the
// interior/upper passes (edge policy: halos computed once per call).
type prepared struct {
	y       []float64 // working copy, shape vShape(yDim) flattened
	shape   []int
	strides []int
	yDim    int
	axis    int
	loHalo  []float64 // one value per (other-axes, yComponent) combination
	hiHalo  []float64
}

func (d *Differentiator) prepare(y []float64, yDim, axis int, yConstraints []*constraint.Constraint, dyBCs [][2]*constraint.Constraint) (*prepared, error) {
	if err := d.checkAxisWidth(axis); err != nil {
		return nil, err
	}
	shape := d.vShape(yDim)
	total := mesh.Size(shape)
	if len(y) != total {
		return nil, errs.New(errs.ShapeMismatch, "y has %d entries; mesh expects %d", len(y), total)
	}
	strides := mesh.Strides(shape)

	work := make([]float64, total)
	copy(work, y)
	for c, cst := range yConstraints {
		if cst == nil {
			continue
		}
		compSlice := extractComponent(work, shape, strides, c)
		cst.Apply(compSlice)
		injectComponent(work, shape, strides, c, compSlice)
	}

	faceShape := make([]int, 0, len(shape)-1)
	for i, n := range shape {
		if i != axis {
			faceShape = append(faceShape, n)
		}
	}
	faceTotal := mesh.Size(faceShape)

	loHalo := make([]float64, faceTotal)
	hiHalo := make([]float64, faceTotal)
	n := d.Mesh.Axes[axis].N
	dx := d.Mesh.Axes[axis].Dx

	loNeighbor := sliceAtAxisIndex(work, shape, strides, axis, 1)
	hiNeighbor := sliceAtAxisIndex(work, shape, strides, axis, n-2)
	copy(loHalo, loNeighbor)
	copy(hiHalo, hiNeighbor)

	if dyBCs != nil {
		for c := range yConstraints {
			if c >= len(dyBCs) {
				break
			}
			pair := dyBCs[c]
			loFace := extractComponentFromFaceArray(loHalo, faceShape[:len(faceShape)-1], yDim, c)
			pair[0].MultiplyAndAdd(-2*dx, loFace)
			injectComponentIntoFaceArray(loHalo, faceShape, yDim, c, loFace)

			hiFace := extractComponentFromFaceArray(hiHalo, faceShape[:len(faceShape)-1], yDim, c)
			pair[1].MultiplyAndAdd(2*dx, hiFace)
			injectComponentIntoFaceArray(hiHalo, faceShape, yDim, c, hiFace)
		}
	}

	return &prepared{y: work, shape: shape, strides: strides, yDim: yDim, axis: axis, loHalo: loHalo, hiHalo: hiHalo}, nil
}

// Derivative computes ∂y/∂x_axis with shape equal to y's (§4.1).
func (d *Differentiator) Derivative(y []float64, yDim, axis int, yConstraints []*constraint.Constraint, dyBCs [][2]*constraint.Constraint) ([]float64, error) {
	p, err := d.prepare(y, yDim, axis, yConstraints, dyBCs)
	if err != nil {
		return nil, err
	}
	dx := d.Mesh.Axes[axis].Dx
	n := d.Mesh.Axes[axis].N
	out := make([]float64, len(p.y))
	d.forEachAlongAxis(p, func(below, above []float64, belowIsHalo, aboveIsHalo bool, i, faceFlat int) {
		for k := 0; k < p.yDim; k++ {
			out[p.axisFlat(i, faceFlat)*p.yDim+k] = (above[faceFlat*p.yDim+k] - below[faceFlat*p.yDim+k]) / (2 * dx)
		}
	})
	_ = n
	return out, nil
}

// SecondDerivative computes ∂²y/∂x_a1∂x_a2. When a1 == a2 this is the
// standard three-point second derivative along that axis; mixed partials
// are computed as a nested first derivative (first along a2, then a1).
func (d *Differentiator) SecondDerivative(y []float64, yDim, a1, a2 int, yConstraints []*constraint.Constraint, dyBCs map[int][][2]*constraint.Constraint) ([]float64, error) {
	if a1 == a2 {
		return d.pureSecondDerivative(y, yDim, a1, yConstraints, dyBCs[a1])
	}
	first, err := d.Derivative(y, yDim, a2, yConstraints, dyBCs[a2])
	if err != nil {
		return nil, err
	}
	return d.Derivative(first, yDim, a1, nil, dyBCs[a1])
}

func (d *Differentiator) pureSecondDerivative(y []float64, yDim, axis int, yConstraints []*constraint.Constraint, dyBCs [][2]*constraint.Constraint) ([]float64, error) {
	p, err := d.prepare(y, yDim, axis, yConstraints, dyBCs)
	if err != nil {
		return nil, err
	}
	dx2 := d.Mesh.Axes[axis].Dx * d.Mesh.Axes[axis].Dx
	out := make([]float64, len(p.y))
	d.forEachAlongAxisCenter(p, func(below, center, above []float64, i, faceFlat int) {
		for k := 0; k < p.yDim; k++ {
			out[p.axisFlat(i, faceFlat)*p.yDim+k] = (above[faceFlat*p.yDim+k] - 2*center[faceFlat*p.yDim+k] + below[faceFlat*p.yDim+k]) / dx2
		}
	})
	return out, nil
}

// axisFlat reconstructs the full flat index (pre-yDim) from an axis index
// i and a flat index into the face (all-other-axes) shape.
func (p *prepared) axisFlat(i, faceFlat int) int {
	faceShape := make([]int, 0, len(p.shape)-1)
	for a, n := range p.shape[:len(p.shape)-1] {
		if a != p.axis {
			faceShape = append(faceShape, n)
		}
	}
	faceStrides := mesh.Strides(faceShape)
	faceIdx := make([]int, len(faceShape))
	rem := faceFlat
	for a, s := range faceStrides {
		faceIdx[a] = rem / s
		rem %= s
	}
	full := make([]int, len(p.shape)-1)
	j := 0
	for a := range full {
		if a == p.axis {
			full[a] = i
			continue
		}
		full[a] = faceIdx[j]
		j++
	}
	flat := 0
	for a, idx := range full {
		flat += idx * p.strides[a]
	}
	return flat / p.yDim
}

// forEachAlongAxis drives a first-derivative style stencil: for each axis
// index i (0..n-1), it supplies the "below" and "above" neighbor planes
// (using the precomputed halo at the physical boundaries).
func (d *Differentiator) forEachAlongAxis(p *prepared, fn func(below, above []float64, belowHalo, aboveHalo bool, i, faceFlat int)) {
	n := d.Mesh.Axes[p.axis].N
	faceShape := make([]int, 0, len(p.shape)-1)
	for a, nn := range p.shape[:len(p.shape)-1] {
		if a != p.axis {
			faceShape = append(faceShape, nn)
		}
	}
	faceTotal := mesh.Size(faceShape)
	for i := 0; i < n; i++ {
		var below, above []float64
		belowHalo, aboveHalo := false, false
		if i == 0 {
			below, belowHalo = p.loHalo, true
		} else {
			below = sliceAtAxisIndex(p.y, p.shape, p.strides, p.axis, i-1)
		}
		if i == n-1 {
			above, aboveHalo = p.hiHalo, true
		} else {
			above = sliceAtAxisIndex(p.y, p.shape, p.strides, p.axis, i+1)
		}
		for faceFlat := 0; faceFlat < faceTotal; faceFlat++ {
			fn(below, above, belowHalo, aboveHalo, i, faceFlat)
		}
	}
}

func (d *Differentiator) forEachAlongAxisCenter(p *prepared, fn func(below, center, above []float64, i, faceFlat int)) {
	n := d.Mesh.Axes[p.axis].N
	faceShape := make([]int, 0, len(p.shape)-1)
	for a, nn := range p.shape[:len(p.shape)-1] {
		if a != p.axis {
			faceShape = append(faceShape, nn)
		}
	}
	faceTotal := mesh.Size(faceShape)
	for i := 0; i < n; i++ {
		var below, above []float64
		if i == 0 {
			below = p.loHalo
		} else {
			below = sliceAtAxisIndex(p.y, p.shape, p.strides, p.axis, i-1)
		}
		if i == n-1 {
			above = p.hiHalo
		} else {
			above = sliceAtAxisIndex(p.y, p.shape, p.strides, p.axis, i+1)
		}
		center := sliceAtAxisIndex(p.y, p.shape, p.strides, p.axis, i)
		for faceFlat := 0; faceFlat < faceTotal; faceFlat++ {
			fn(below, center, above, i, faceFlat)
		}
	}
}

// Gradient returns ∂y/∂x_axis with a curvilinear correction applied
// (§4.1 curvilinear corrections): polar/cylindrical divide the θ-axis
// (axis 1) derivative by r; spherical additionally divides the φ-axis by r*sinθ.
func (d *Differentiator) Gradient(y []float64, yDim, axis int, yConstraints []*constraint.Constraint, dyBCs [][2]*constraint.Constraint) ([]float64, error) {
	dv, err := d.Derivative(y, yDim, axis, yConstraints, dyBCs)
	if err != nil {
		return nil, err
	}
	d.applyCurvilinearGradCorrection(dv, yDim, axis)
	return dv, nil
}

func (d *Differentiator) applyCurvilinearGradCorrection(dv []float64, yDim, axis int) {
	if d.Mesh.Coord == mesh.Cartesian || axis == 0 {
		return
	}
	if axis == 2 && d.Mesh.Coord != mesh.Spherical {
		return
	}
	grids := d.Mesh.VertexCoordinateGrids()
	rGrid := grids[0]
	for pt := range rGrid {
		scale := rGrid[pt]
		if axis == 2 {
			scale *= math.Sin(grids[1][pt])
		}
		if scale == 0 {
			continue
		}
		for k := 0; k < yDim; k++ {
			dv[pt*yDim+k] /= scale
		}
	}
}

// Hessian returns the Hessian entry ∂²y/∂x_a1∂x_a2 as computed by
// SecondDerivative. No curvilinear correction is applied: on polar,
// cylindrical and spherical meshes this is the plain second derivative
// with respect to the mesh coordinates.
func (d *Differentiator) Hessian(y []float64, yDim, a1, a2 int, yConstraints []*constraint.Constraint, dyBCs map[int][][2]*constraint.Constraint) ([]float64, error) {
	return d.SecondDerivative(y, yDim, a1, a2, yConstraints, dyBCs)
}

// Divergence computes ∇·y for a vector field whose last axis equals the mesh rank.
func (d *Differentiator) Divergence(y []float64, yConstraints []*constraint.Constraint, dyBCs map[int][][2]*constraint.Constraint) ([]float64, error) {
	xDim := d.Mesh.Rank()
	var sum []float64
	for axis := 0; axis < xDim; axis++ {
		dv, err := d.Derivative(y, xDim, axis, yConstraints, dyBCs[axis])
		if err != nil {
			return nil, err
		}
		total := mesh.Size(d.Mesh.VertexShape())
		if sum == nil {
			sum = make([]float64, total)
		}
		for pt := 0; pt < total; pt++ {
			sum[pt] += dv[pt*xDim+axis]
		}
	}
	return sum, nil
}

// Curl computes component curlInd of ∇×y for x_dim in {2,3}.
// In 2-D, y=(u,v) and curlInd is ignored; the scalar curl ∂v/∂x-∂u/∂y is returned.
func (d *Differentiator) Curl(y []float64, curlInd int, yConstraints []*constraint.Constraint, dyBCs map[int][][2]*constraint.Constraint) ([]float64, error) {
	xDim := d.Mesh.Rank()
	if xDim != 2 && xDim != 3 {
		return nil, errs.New(errs.InvalidParameter, "curl requires x_dimension in {2,3}; got %d", xDim)
	}
	total := mesh.Size(d.Mesh.VertexShape())
	if xDim == 2 {
		dvdx, err := d.Derivative(y, xDim, 0, yConstraints, dyBCs[0])
		if err != nil {
			return nil, err
		}
		dudy, err := d.Derivative(y, xDim, 1, yConstraints, dyBCs[1])
		if err != nil {
			return nil, err
		}
		out := make([]float64, total)
		for pt := 0; pt < total; pt++ {
			out[pt] = dvdx[pt*xDim+1] - dudy[pt*xDim+0]
		}
		return out, nil
	}
	// 3-D: (curl y)_i = eps_ijk d(y_k)/d(x_j)
	i, j, k := curlInd, (curlInd+1)%3, (curlInd+2)%3
	dYk, err := d.Derivative(y, xDim, j, yConstraints, dyBCs[j])
	if err != nil {
		return nil, err
	}
	dYj, err := d.Derivative(y, xDim, k, yConstraints, dyBCs[k])
	if err != nil {
		return nil, err
	}
	out := make([]float64, total)
	for pt := 0; pt < total; pt++ {
		out[pt] = dYk[pt*xDim+k] - dYj[pt*xDim+j]
	}
	_ = i
	return out, nil
}

// Laplacian computes Δy with the curvilinear correction of §4.1:
// Cartesian: sum of pure second derivatives.
// Polar/Cylindrical: ∂²/∂r² + (1/r)∂/∂r + (1/r²)∂²/∂θ² (+ ∂²/∂z² cylindrical).
// Spherical (axis 1 = θ taken as the polar angle, axis 2 = φ) adds the
// standard sinθ factors: 2/r ∂/∂r, cosθ/(r² sinθ) ∂/∂θ and 1/(r² sin²θ) ∂²/∂φ².
func (d *Differentiator) Laplacian(y []float64, yDim int, yConstraints []*constraint.Constraint, dyBCs map[int][][2]*constraint.Constraint) ([]float64, error) {
	xDim := d.Mesh.Rank()
	total := mesh.Size(d.Mesh.VertexShape())
	out := make([]float64, total*yDim)

	switch d.Mesh.Coord {
	case mesh.Cartesian:
		for axis := 0; axis < xDim; axis++ {
			d2, err := d.pureSecondDerivative(y, yDim, axis, yConstraints, dyBCs[axis])
			if err != nil {
				return nil, err
			}
			for i := range out {
				out[i] += d2[i]
			}
		}
		return out, nil

	case mesh.Polar, mesh.Cylindrical:
		d2r, err := d.pureSecondDerivative(y, yDim, 0, yConstraints, dyBCs[0])
		if err != nil {
			return nil, err
		}
		dr, err := d.Derivative(y, yDim, 0, yConstraints, dyBCs[0])
		if err != nil {
			return nil, err
		}
		d2theta, err := d.pureSecondDerivative(y, yDim, 1, yConstraints, dyBCs[1])
		if err != nil {
			return nil, err
		}
		rGrid := d.Mesh.VertexCoordinateGrids()[0]
		for pt := 0; pt < total; pt++ {
			r := rGrid[pt]
			for k := 0; k < yDim; k++ {
				idx := pt*yDim + k
				val := d2r[idx]
				if r != 0 {
					val += dr[idx]/r + d2theta[idx]/(r*r)
				}
				out[idx] = val
			}
		}
		if d.Mesh.Coord == mesh.Cylindrical && xDim == 3 {
			d2z, err := d.pureSecondDerivative(y, yDim, 2, yConstraints, dyBCs[2])
			if err != nil {
				return nil, err
			}
			for i := range out {
				out[i] += d2z[i]
			}
		}
		return out, nil

	case mesh.Spherical:
		d2r, err := d.pureSecondDerivative(y, yDim, 0, yConstraints, dyBCs[0])
		if err != nil {
			return nil, err
		}
		dr, err := d.Derivative(y, yDim, 0, yConstraints, dyBCs[0])
		if err != nil {
			return nil, err
		}
		d2theta, err := d.pureSecondDerivative(y, yDim, 1, yConstraints, dyBCs[1])
		if err != nil {
			return nil, err
		}
		dtheta, err := d.Derivative(y, yDim, 1, yConstraints, dyBCs[1])
		if err != nil {
			return nil, err
		}
		var d2phi []float64
		if xDim == 3 {
			d2phi, err = d.pureSecondDerivative(y, yDim, 2, yConstraints, dyBCs[2])
			if err != nil {
				return nil, err
			}
		}
		rGrid := d.Mesh.VertexCoordinateGrids()[0]
		thetaGrid := d.Mesh.VertexCoordinateGrids()[1]
		for pt := 0; pt < total; pt++ {
			r := rGrid[pt]
			theta := thetaGrid[pt]
			s := math.Sin(theta)
			for k := 0; k < yDim; k++ {
				idx := pt*yDim + k
				val := d2r[idx]
				if r != 0 {
					val += 2*dr[idx]/r + d2theta[idx]/(r*r)
					if s != 0 {
						val += math.Cos(theta) / (r * r * s) * dtheta[idx]
						if xDim == 3 {
							val += d2phi[idx] / (r * r * s * s)
						}
					}
				}
				out[idx] = val
			}
		}
		return out, nil
	}
	return nil, errs.New(errs.InvalidParameter, "unsupported coordinate system")
}

func sliceAtAxisIndex(y []float64, shape, strides []int, axis, i int) []float64 {
	faceShape := make([]int, 0, len(shape)-1)
	for a, n := range shape[:len(shape)-1] {
		if a != axis {
			faceShape = append(faceShape, n)
		}
	}
	yDim := shape[len(shape)-1]
	faceTotal := mesh.Size(faceShape)
	out := make([]float64, faceTotal*yDim)
	faceStrides := mesh.Strides(faceShape)
	for flat := 0; flat < faceTotal; flat++ {
		faceIdx := make([]int, len(faceShape))
		rem := flat
		for a, s := range faceStrides {
			faceIdx[a] = rem / s
			rem %= s
		}
		full := make([]int, len(shape)-1)
		j := 0
		for a := range full {
			if a == axis {
				full[a] = i
				continue
			}
			full[a] = faceIdx[j]
			j++
		}
		base := 0
		for a, idx := range full {
			base += idx * strides[a]
		}
		copy(out[flat*yDim:(flat+1)*yDim], y[base:base+yDim])
	}
	return out
}

func extractComponent(y []float64, shape, strides []int, comp int) []float64 {
	total := mesh.Size(shape[:len(shape)-1])
	yDim := shape[len(shape)-1]
	out := make([]float64, total)
	for i := 0; i < total; i++ {
		out[i] = y[i*yDim+comp]
	}
	return out
}

func injectComponent(y []float64, shape, strides []int, comp int, compSlice []float64) {
	yDim := shape[len(shape)-1]
	for i, v := range compSlice {
		y[i*yDim+comp] = v
	}
}

func extractComponentFromFaceArray(face []float64, faceShape []int, yDim, comp int) []float64 {
	total := mesh.Size(faceShape)
	out := make([]float64, total)
	for i := 0; i < total; i++ {
		out[i] = face[i*yDim+comp]
	}
	return out
}

func injectComponentIntoFaceArray(face []float64, faceShape []int, yDim, comp int, compSlice []float64) {
	for i, v := range compSlice {
		face[i*yDim+comp] = v
	}
}
