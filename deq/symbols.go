// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deq

// Symbol names the scope of identifiers an equation's RHS may reference.
// Only the symbols declared present in a DifferentialEquation's Symbols
// bundle have their numeric providers computed by the FDM operator; this
// is not checked against the leaves of the expression trees when an
// equation is built (see ValidateScope).
type Symbol int

const (
	SymT     Symbol = iota // t
	SymY                   // y
	SymGradY               // ∇y (only for x_dimension > 0)
	SymHessY               // Hessian(y) (only for x_dimension > 0)
	SymDivY                // ∇·y (only when last-dim(y) == x_dimension)
	SymCurlY               // ∇×y (only for x_dimension in {2,3})
	SymLapY                // Δy (only for x_dimension > 0)
)

// Symbols declares which identifiers are in scope for a DifferentialEquation.
// t and y are always present; the spatial-derivative symbols are only
// meaningful (and only ever set) when x_dimension > 0.
type Symbols struct {
	HasGradY bool
	HasHessY bool
	HasDivY  bool
	HasCurlY bool
	HasLapY  bool
}

// InScope reports whether sym may legally appear as a leaf for this bundle.
func (s Symbols) InScope(sym Symbol) bool {
	switch sym {
	case SymT, SymY:
		return true
	case SymGradY:
		return s.HasGradY
	case SymHessY:
		return s.HasHessY
	case SymDivY:
		return s.HasDivY
	case SymCurlY:
		return s.HasCurlY
	case SymLapY:
		return s.HasLapY
	}
	return false
}

// LhsKind tags which quantity an equation's RHS is assigned to.
type LhsKind int

const (
	LhsDyDt LhsKind = iota // ∂y/∂t = RHS  (stepped by an Integrator)
	LhsY                   // y = RHS      (algebraic substitution each step)
	LhsLap                 // Δy = RHS     (solved via the anti-Laplacian)
)
