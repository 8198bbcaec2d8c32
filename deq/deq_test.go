// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deq

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/dpedroso/pareal/errs"
)

func Test_deq01_population(tst *testing.T) {

	//verbose()
	chk.PrintTitle("deq01_population")

	eq, err := NewPopulation(0.02)
	if err != nil {
		tst.Fatalf("NewPopulation failed: %v", err)
	}
	ctx := &Context{T: 0, N: 1, Y: [][]float64{{100}}}
	dy := eq.Equations[0].Rhs.Eval(ctx)
	chk.Array(tst, "dy/dt", 1e-15, dy, []float64{2})
}

func Test_deq02_lorenz_canonical(tst *testing.T) {

	//verbose()
	chk.PrintTitle("deq02_lorenz_canonical")

	eq, err := NewLorenz(10, 28, 8.0/3.0)
	if err != nil {
		tst.Fatalf("NewLorenz failed: %v", err)
	}
	ctx := &Context{T: 0, N: 1, Y: [][]float64{{1}, {1}, {1}}}
	dc := eq.Equations[0].Rhs.Eval(ctx)[0]
	dh := eq.Equations[1].Rhs.Eval(ctx)[0]
	dv := eq.Equations[2].Rhs.Eval(ctx)[0]
	chk.Float64(tst, "dc/dt", 1e-15, dc, 0)           // sigma*(h-c) = 10*(1-1)
	chk.Float64(tst, "dh/dt", 1e-15, dh, 26)          // c*(rho-v) - h = 1*(28-1) - 1
	chk.Float64(tst, "dv/dt", 1e-15, dv, 1-8.0/3.0)   // c*h - beta*v = 1 - 8/3
}

func Test_deq03_xdim_zero_requires_dydt(tst *testing.T) {

	//verbose()
	chk.PrintTitle("deq03_xdim_zero_requires_dydt")

	eqs := System{{Rhs: Y(0), Lhs: LhsY}}
	_, err := New(Custom, 0, 1, Symbols{}, eqs)
	if err == nil || !errs.As(err, errs.LhsCombination) {
		tst.Fatalf("expected LhsCombination error, got %v", err)
	}
}

func Test_deq04_pde_requires_dydt_equation(tst *testing.T) {

	//verbose()
	chk.PrintTitle("deq04_pde_requires_dydt_equation")

	eqs := System{{Rhs: LapY(0), Lhs: LhsLap}}
	_, err := New(Custom, 1, 1, Symbols{HasLapY: true}, eqs)
	if err == nil || !errs.As(err, errs.LhsCombination) {
		tst.Fatalf("expected LhsCombination error, got %v", err)
	}
}

func Test_deq05_burgers_shape(tst *testing.T) {

	//verbose()
	chk.PrintTitle("deq05_burgers_shape")

	eq, err := NewBurgers(1000)
	if err != nil {
		tst.Fatalf("NewBurgers failed: %v", err)
	}
	chk.IntAssert(eq.XDimension, 1)
	chk.IntAssert(eq.YDimension, 1)
	chk.IntAssert(len(eq.Equations), 1)
}
