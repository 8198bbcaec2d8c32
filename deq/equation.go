// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package deq implements the symbolic differential-equation model: a
// system of PDEs/ODEs over named symbols (t, y, ∇y, Hessian(y), ∇·y,
// ∇×y, Δy), modeled as a sum type over concrete equation families rather
// than as dynamic inheritance (§9 design notes).
package deq

import "github.com/dpedroso/pareal/errs"

// Family tags which concrete equation variant a DifferentialEquation holds.
type Family int

const (
	Population Family = iota
	LotkaVolterra
	Lorenz
	NBody
	Diffusion
	ConvectionDiffusion
	Wave
	CahnHilliard
	Burgers
	ShallowWater
	NavierStokesSFV
	Custom // escape hatch for caller-supplied Symbols+System, validated the same way
)

// DifferentialEquation carries the symbolic RHS for a system of PDEs/ODEs.
type DifferentialEquation struct {
	Family     Family
	XDimension int
	YDimension int
	Symbols    Symbols
	Equations  System
}

// New validates and builds a DifferentialEquation from an already-built
// symbol bundle and equation system; concrete families in variants.go call
// this after constructing their own Equations.
func New(family Family, xDim, yDim int, symbols Symbols, eqs System) (*DifferentialEquation, error) {
	if yDim < 1 {
		return nil, errs.New(errs.InvalidParameter, "y_dimension must be >= 1; got %d", yDim)
	}
	if xDim < 0 {
		return nil, errs.New(errs.InvalidParameter, "x_dimension must be >= 0; got %d", xDim)
	}
	if len(eqs) != yDim {
		return nil, errs.New(errs.InvalidParameter, "equation system length (%d) must equal y_dimension (%d)", len(eqs), yDim)
	}
	if err := ValidateScope(xDim, eqs); err != nil {
		return nil, err
	}
	return &DifferentialEquation{Family: family, XDimension: xDim, YDimension: yDim, Symbols: symbols, Equations: eqs}, nil
}
