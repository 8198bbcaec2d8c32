// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ivp implements the initial condition and initial-value-problem
// types: the discrete y0 producer and the time interval bound to a
// ConstrainedProblem.
package ivp

import (
	"math"

	"github.com/dpedroso/pareal/cprob"
	"github.com/dpedroso/pareal/errs"
	"github.com/dpedroso/pareal/mesh"
)

// InitialCondition produces the discrete y0 tensor, vertex- or
// cell-oriented, for a ConstrainedProblem.
type InitialCondition interface {
	DiscreteY0(p *cprob.ConstrainedProblem, vertexOriented bool) ([]float64, error)
}

// Continuous composes a function over mesh coordinates.
type Continuous struct {
	Fcn func(x []float64) []float64 // returns y_dimension values
}

func (c Continuous) DiscreteY0(p *cprob.ConstrainedProblem, vertexOriented bool) ([]float64, error) {
	shape, at := shapeAndCoord(p, vertexOriented)
	yDim := p.Eq.YDimension
	total := mesh.Size(shape)
	out := make([]float64, total*yDim)
	idx := make([]int, len(shape))
	for flat := 0; flat < total; flat++ {
		x := at(idx)
		v := c.Fcn(x)
		if len(v) != yDim {
			return nil, errs.New(errs.ShapeMismatch, "continuous IC returned %d values; want %d", len(v), yDim)
		}
		for comp := 0; comp < yDim; comp++ {
			out[flat*yDim+comp] = v[comp]
		}
		odometer(idx, shape)
	}
	return out, nil
}

// Gaussian sums Gaussian bumps per y-component:
//
//	y_c(x) = sum_k amplitude_k * exp(-||x-center_k||^2 / (2*sigma_k^2))
type Gaussian struct {
	Components []GaussianComponent // one list of bumps per y-component, length y_dimension
}

// GaussianComponent is one y-component's list of Gaussian bumps.
type GaussianComponent struct {
	Bumps []Bump
}

// Bump is a single Gaussian term.
type Bump struct {
	Amplitude float64
	Center    []float64
	Sigma     float64
}

func (g Gaussian) DiscreteY0(p *cprob.ConstrainedProblem, vertexOriented bool) ([]float64, error) {
	shape, at := shapeAndCoord(p, vertexOriented)
	yDim := p.Eq.YDimension
	if len(g.Components) != yDim {
		return nil, errs.New(errs.ShapeMismatch, "gaussian IC has %d components; want %d", len(g.Components), yDim)
	}
	total := mesh.Size(shape)
	out := make([]float64, total*yDim)
	idx := make([]int, len(shape))
	for flat := 0; flat < total; flat++ {
		x := at(idx)
		for comp, gc := range g.Components {
			var sum float64
			for _, b := range gc.Bumps {
				d2 := 0.0
				for i, xi := range x {
					dx := xi - b.Center[i]
					d2 += dx * dx
				}
				sum += b.Amplitude * math.Exp(-d2/(2*b.Sigma*b.Sigma))
			}
			out[flat*yDim+comp] = sum
		}
		odometer(idx, shape)
	}
	return out, nil
}

// Discrete is a literal, already-evaluated array.
type Discrete struct {
	Y []float64
}

func (d Discrete) DiscreteY0(p *cprob.ConstrainedProblem, vertexOriented bool) ([]float64, error) {
	shape, _ := shapeAndCoord(p, vertexOriented)
	want := mesh.Size(shape) * p.Eq.YDimension
	if len(d.Y) != want {
		return nil, errs.New(errs.ShapeMismatch, "discrete IC has %d values; want %d", len(d.Y), want)
	}
	return d.Y, nil
}

func shapeAndCoord(p *cprob.ConstrainedProblem, vertexOriented bool) ([]int, func([]int) []float64) {
	if vertexOriented {
		return p.Mesh.VertexShape(), p.Mesh.Coordinate
	}
	return p.Mesh.CellShape(), p.Mesh.CellCenter
}

func odometer(idx, shape []int) {
	for a := len(idx) - 1; a >= 0; a-- {
		idx[a]++
		if idx[a] < shape[a] {
			return
		}
		idx[a] = 0
	}
}

// InitialValueProblem binds a ConstrainedProblem, a time interval and an
// initial condition; optionally carries an exact-solution function for
// analytical benchmarks (§3, §8 invariant 4).
type InitialValueProblem struct {
	Problem *cprob.ConstrainedProblem
	T0, T1  float64
	IC      InitialCondition
	Exact   func(t float64) []float64 // optional analytical benchmark
}

// New validates and builds an InitialValueProblem.
func New(p *cprob.ConstrainedProblem, t0, t1 float64, ic InitialCondition) (*InitialValueProblem, error) {
	if t1 <= t0 {
		return nil, errs.New(errs.InvalidParameter, "t1 (%g) must be > t0 (%g)", t1, t0)
	}
	return &InitialValueProblem{Problem: p, T0: t0, T1: t1, IC: ic}, nil
}
