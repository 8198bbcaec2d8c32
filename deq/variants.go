// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deq

import "math"

// NewPopulation builds y' = r*y (x_dimension=0, y_dimension=1).
func NewPopulation(r float64) (*DifferentialEquation, error) {
	eqs := System{{Rhs: Scale(r, Y(0)), Lhs: LhsDyDt}}
	return New(Population, 0, 1, Symbols{}, eqs)
}

// NewLotkaVolterra builds the predator-prey system (x_dimension=0, y_dimension=2):
//
//	y0' = alpha*y0 - beta*y0*y1
//	y1' = delta*y0*y1 - gamma*y1
func NewLotkaVolterra(alpha, beta, gamma, delta float64) (*DifferentialEquation, error) {
	prey := Sub(Scale(alpha, Y(0)), Scale(beta, Mul(Y(0), Y(1))))
	pred := Sub(Scale(delta, Mul(Y(0), Y(1))), Scale(gamma, Y(1)))
	eqs := System{{Rhs: prey, Lhs: LhsDyDt}, {Rhs: pred, Lhs: LhsDyDt}}
	return New(LotkaVolterra, 0, 2, Symbols{}, eqs)
}

// NewLorenz builds the canonical Lorenz system (x_dimension=0, y_dimension=3):
//
//	c' = sigma*(h-c)
//	h' = c*(rho-v) - h
//	v' = c*h - beta*v
//
// This is the canonical form named in §9: one buggy source file in the
// original overwrites d_y_arr[1] twice, dropping the h' equation; that
// bug is not reproduced here.
func NewLorenz(sigma, rho, beta float64) (*DifferentialEquation, error) {
	c, h, v := Y(0), Y(1), Y(2)
	dc := Scale(sigma, Sub(h, c))
	dh := Sub(Mul(c, Sub(Const(rho), v)), h)
	dv := Sub(Mul(c, h), Scale(beta, v))
	eqs := System{{Rhs: dc, Lhs: LhsDyDt}, {Rhs: dh, Lhs: LhsDyDt}, {Rhs: dv, Lhs: LhsDyDt}}
	return New(Lorenz, 0, 3, Symbols{}, eqs)
}

// NewNBody builds a 2-D n-body gravitational system (x_dimension=0).
// y is laid out as 4 components per body: [x, y, vx, vy] concatenated;
// y_dimension = 4*len(masses).
func NewNBody(g float64, masses []float64) (*DifferentialEquation, error) {
	n := len(masses)
	eqs := make(System, 4*n)
	idx := func(body, field int) int { return 4*body + field } // field: 0=x,1=y,2=vx,3=vy
	for i := 0; i < n; i++ {
		eqs[idx(i, 0)] = Equation{Rhs: Y(idx(i, 2)), Lhs: LhsDyDt} // dx/dt = vx
		eqs[idx(i, 1)] = Equation{Rhs: Y(idx(i, 3)), Lhs: LhsDyDt} // dy/dt = vy
		var ax, ay Expr = Const(0), Const(0)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			dx := Sub(Y(idx(j, 0)), Y(idx(i, 0)))
			dy := Sub(Y(idx(j, 1)), Y(idx(i, 1)))
			r2 := Add(Mul(dx, dx), Mul(dy, dy))
			invR3 := Fn1(r2, func(v float64) float64 { return 1 / (v * math.Sqrt(v)) })
			coef := g * masses[j]
			ax = Add(ax, Scale(coef, Mul(dx, invR3)))
			ay = Add(ay, Scale(coef, Mul(dy, invR3)))
		}
		eqs[idx(i, 2)] = Equation{Rhs: ax, Lhs: LhsDyDt}
		eqs[idx(i, 3)] = Equation{Rhs: ay, Lhs: LhsDyDt}
	}
	return New(NBody, 0, 4*n, Symbols{}, eqs)
}

// NewDiffusion builds ∂y/∂t = D*Δy (x_dimension = xDim, y_dimension=1).
// kappaField, when non-nil, is a per-mesh-point conductivity array
// (precomputed against the mesh by the caller) replacing the constant D;
// this is the supplemented spatially-varying-conductivity variant noted
// in SPEC_FULL.md, recovered from the original distillation.
func NewDiffusion(xDim int, d float64, kappaField []float64) (*DifferentialEquation, error) {
	lap := LapY(0)
	var rhs Expr
	if kappaField != nil {
		rhs = Mul(Field(kappaField), lap)
	} else {
		rhs = Scale(d, lap)
	}
	eqs := System{{Rhs: rhs, Lhs: LhsDyDt}}
	return New(Diffusion, xDim, 1, Symbols{HasLapY: true}, eqs)
}

// Field wraps a precomputed per-mesh-point array as a leaf (a numeric
// provider, not a symbolic identifier — used for spatially-varying
// coefficients that are not part of the Symbols bundle).
func Field(v []float64) Expr { return arrayLeaf{v} }

type arrayLeaf struct{ v []float64 }

func (a arrayLeaf) Eval(ctx *Context) []float64 { return a.v }

// NewConvectionDiffusion builds ∂y/∂t = D*Δy - v·∇y (x_dimension = len(v)).
func NewConvectionDiffusion(d float64, v []float64) (*DifferentialEquation, error) {
	xDim := len(v)
	var advect Expr = Const(0)
	for axis, vi := range v {
		advect = Add(advect, Scale(vi, GradY(0, axis)))
	}
	rhs := Sub(Scale(d, LapY(0)), advect)
	eqs := System{{Rhs: rhs, Lhs: LhsDyDt}}
	return New(ConvectionDiffusion, xDim, 1, Symbols{HasLapY: true, HasGradY: true}, eqs)
}

// NewWave builds the wave equation split into first-order form
// (x_dimension = xDim, y_dimension=2): y0 = u, y1 = u_t.
//
//	y0' = y1
//	y1' = c^2 * Δy0
func NewWave(xDim int, c float64) (*DifferentialEquation, error) {
	eqs := System{
		{Rhs: Y(1), Lhs: LhsDyDt},
		{Rhs: Scale(c*c, LapY(0)), Lhs: LhsDyDt},
	}
	return New(Wave, xDim, 2, Symbols{HasLapY: true}, eqs)
}

// NewCahnHilliard builds the Cahn-Hilliard system (y0=c concentration,
// y1=mu chemical potential), x_dimension = xDim:
//
//	y0' = M * Δy1
//	y1  = y0^3 - y0 - kappa*Δy0     (algebraic substitution each step)
func NewCahnHilliard(xDim int, mobility, kappa float64) (*DifferentialEquation, error) {
	doubleWell := Sub(Pow(Y(0), 3), Y(0))
	mu := Sub(doubleWell, Scale(kappa, LapY(0)))
	eqs := System{
		{Rhs: Scale(mobility, LapY(1)), Lhs: LhsDyDt},
		{Rhs: mu, Lhs: LhsY},
	}
	return New(CahnHilliard, xDim, 2, Symbols{HasLapY: true}, eqs)
}

// NewBurgers builds 1-D viscous Burgers' equation (x_dimension=1, y_dimension=1):
//
//	∂u/∂t = -u*∂u/∂x + (1/Re)*∂²u/∂x²
func NewBurgers(re float64) (*DifferentialEquation, error) {
	advect := Mul(Y(0), GradY(0, 0))
	diffuse := Scale(1/re, HessY(0, 0, 0))
	eqs := System{{Rhs: Sub(diffuse, advect), Lhs: LhsDyDt}}
	return New(Burgers, 1, 1, Symbols{HasGradY: true, HasHessY: true}, eqs)
}

// NewShallowWater builds the linearized 2-D shallow-water system
// (y0=h height, y1=u, y2=v velocities), x_dimension=2:
//
//	h' = -H0*(∂u/∂x + ∂v/∂y)
//	u' = -g*∂h/∂x
//	v' = -g*∂h/∂y
func NewShallowWater(h0, g float64) (*DifferentialEquation, error) {
	divUV := Add(GradY(1, 0), GradY(2, 1))
	eqs := System{
		{Rhs: Scale(-h0, divUV), Lhs: LhsDyDt},
		{Rhs: Neg(Scale(g, GradY(0, 0))), Lhs: LhsDyDt},
		{Rhs: Neg(Scale(g, GradY(0, 1))), Lhs: LhsDyDt},
	}
	return New(ShallowWater, 2, 3, Symbols{HasGradY: true}, eqs)
}

// NewNavierStokesSFV builds the 2-D stream-function/vorticity formulation
// (y0=psi stream function, y1=omega vorticity), x_dimension=2:
//
//	Δy0 = -y1                                           (solved via anti-Laplacian)
//	y1' = -(∂y0/∂y1axis*∂y1/∂x - ∂y0/∂x*∂y1/∂y) + (1/Re)*Δy1
func NewNavierStokesSFV(re float64) (*DifferentialEquation, error) {
	jacobian := Sub(Mul(GradY(0, 1), GradY(1, 0)), Mul(GradY(0, 0), GradY(1, 1)))
	transport := Sub(Scale(1/re, LapY(1)), jacobian)
	eqs := System{
		{Rhs: Neg(Y(1)), Lhs: LhsLap},
		{Rhs: transport, Lhs: LhsDyDt},
	}
	return New(NavierStokesSFV, 2, 2, Symbols{HasGradY: true, HasLapY: true}, eqs)
}
