// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bc implements Dirichlet, Neumann and Cauchy boundary condition
// predicates: one gosl/fun.Func per y-component, evaluated at a physical
// point and time, where a component function of nil means "unconstrained
// at this face".
package bc

import (
	"math"

	"github.com/cpmech/gosl/fun"
)

// Kind tags the variant of a boundary condition.
type Kind int

const (
	Dirichlet Kind = iota
	Neumann
	Cauchy
)

// Unconstrained is the sentinel marking a component with no condition at a face.
var Unconstrained = math.NaN()

// IsUnconstrained reports whether v is the sentinel.
func IsUnconstrained(v float64) bool { return math.IsNaN(v) }

// ClosureFunc adapts a plain Go closure to gosl/fun.Func, for boundary
// values that don't fit the Cte/Add/Mul algebra (e.g. depending on more
// than one of x's components). Mirrors gofem's Gfcn/Fcn fun.Func fields,
// which are evaluated the same way throughout fem (Fcn.F(t, x)).
type ClosureFunc func(t float64, x []float64) float64

func (f ClosureFunc) F(t float64, x []float64) float64 { return f(t, x) }

// Constant builds one fun.Cte per value, the common case for every
// Dirichlet zero/unit boundary.
func Constant(values ...float64) []fun.Func {
	fcns := make([]fun.Func, len(values))
	for i, v := range values {
		fcns[i] = &fun.Cte{C: v}
	}
	return fcns
}

// BoundaryCondition is a polymorphic value over {Dirichlet, Neumann, Cauchy}.
type BoundaryCondition struct {
	Kind     Kind
	Fcns     []fun.Func // one per y-component; nil entry means unconstrained
	IsStatic bool       // time-independence; permits caching the t=0 evaluation

	cacheAxis map[[3]float64][]float64 // keyed by x for static caching per point
}

// New builds a boundary condition. isStatic asserts fcns is independent of
// t; the core caches fcns[i].F(0, x) the first time each point is
// evaluated when set.
func New(kind Kind, fcns []fun.Func, isStatic bool) *BoundaryCondition {
	return &BoundaryCondition{Kind: kind, Fcns: fcns, IsStatic: isStatic, cacheAxis: map[[3]float64][]float64{}}
}

// Value evaluates the boundary condition at (x, t), using the static cache
// when IsStatic is set (the function result is guaranteed independent of t).
func (b *BoundaryCondition) Value(x []float64, t float64) []float64 {
	if !b.IsStatic {
		return b.eval(x, t)
	}
	var key [3]float64
	copy(key[:], x)
	if v, ok := b.cacheAxis[key]; ok {
		return v
	}
	v := b.eval(x, 0)
	b.cacheAxis[key] = v
	return v
}

func (b *BoundaryCondition) eval(x []float64, t float64) []float64 {
	v := make([]float64, len(b.Fcns))
	for i, f := range b.Fcns {
		if f == nil {
			v[i] = Unconstrained
			continue
		}
		v[i] = f.F(t, x)
	}
	return v
}

// HasYCondition reports whether this is a Dirichlet (y-value) condition.
func (b *BoundaryCondition) HasYCondition() bool { return b.Kind == Dirichlet }

// HasDYCondition reports whether this carries a derivative (Neumann/Cauchy) condition.
func (b *BoundaryCondition) HasDYCondition() bool { return b.Kind == Neumann || b.Kind == Cauchy }
