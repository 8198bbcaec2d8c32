// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ivp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/dpedroso/pareal/bc"
	"github.com/dpedroso/pareal/cprob"
	"github.com/dpedroso/pareal/deq"
	"github.com/dpedroso/pareal/mesh"
)

func build1DProblem(tst *testing.T) *cprob.ConstrainedProblem {
	m, err := mesh.NewMesh([]mesh.AxisSpec{{A: 0, B: 1, Dx: 0.25}}, mesh.Cartesian)
	if err != nil {
		tst.Fatalf("NewMesh failed: %v", err)
	}
	eq, err := deq.NewDiffusion(1, 0.1, nil)
	if err != nil {
		tst.Fatalf("NewDiffusion failed: %v", err)
	}
	zero := bc.New(bc.Dirichlet, bc.Constant(0), true)
	p, err := cprob.New(m, eq, [][2]*bc.BoundaryCondition{{zero, zero}})
	if err != nil {
		tst.Fatalf("cprob.New failed: %v", err)
	}
	return p
}

func Test_ivp01_continuous(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ivp01_continuous")

	p := build1DProblem(tst)
	ic := Continuous{Fcn: func(x []float64) []float64 { return []float64{x[0] * x[0]} }}
	y0, err := ic.DiscreteY0(p, true)
	if err != nil {
		tst.Fatalf("DiscreteY0 failed: %v", err)
	}
	chk.Array(tst, "y0", 1e-15, y0, []float64{0, 0.0625, 0.25, 0.5625, 1})
}

func Test_ivp02_gaussian(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ivp02_gaussian")

	p := build1DProblem(tst)
	ic := Gaussian{Components: []GaussianComponent{{Bumps: []Bump{{Amplitude: 1, Center: []float64{0.5}, Sigma: 1}}}}}
	y0, err := ic.DiscreteY0(p, true)
	if err != nil {
		tst.Fatalf("DiscreteY0 failed: %v", err)
	}
	chk.IntAssert(len(y0), 5)
	if y0[2] <= y0[0] {
		tst.Fatalf("expected peak at center, got %v", y0)
	}
}

func Test_ivp03_interval_validation(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ivp03_interval_validation")

	p := build1DProblem(tst)
	ic := Discrete{Y: make([]float64, 5)}
	if _, err := New(p, 1, 0, ic); err == nil {
		tst.Fatalf("expected error for t1 <= t0")
	}
}
