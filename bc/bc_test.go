// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bc

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

func Test_bc01_static_cache(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bc01_static_cache")

	calls := 0
	b := New(Dirichlet, []fun.Func{ClosureFunc(func(t float64, x []float64) float64 {
		calls++
		return x[0] * 2
	})}, true)

	v1 := b.Value([]float64{1, 0}, 5)
	v2 := b.Value([]float64{1, 0}, 99)
	chk.Array(tst, "cached value", 1e-15, v1, v2)
	chk.IntAssert(calls, 1)
}

func Test_bc02_dynamic(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bc02_dynamic")

	b := New(Neumann, []fun.Func{ClosureFunc(func(t float64, x []float64) float64 {
		return t
	})}, false)
	v1 := b.Value([]float64{0}, 1)
	v2 := b.Value([]float64{0}, 2)
	if v1[0] == v2[0] {
		tst.Fatalf("dynamic boundary condition must not be cached")
	}
	if !b.HasDYCondition() || b.HasYCondition() {
		tst.Fatalf("neumann condition predicates wrong")
	}
}

func Test_bc03_unconstrained(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bc03_unconstrained")

	if !IsUnconstrained(Unconstrained) {
		tst.Fatalf("sentinel must report unconstrained")
	}
}
