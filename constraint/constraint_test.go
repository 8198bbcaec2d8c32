// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_constraint01_apply(tst *testing.T) {

	//verbose()
	chk.PrintTitle("constraint01_apply")

	c := New([]bool{true, false, true}, []float64{1, 2, 3})
	y := []float64{0, 0, 0}
	c.Apply(y)
	chk.Array(tst, "y", 1e-15, y, []float64{1, 0, 3})
}

func Test_constraint02_multiply_and_add(tst *testing.T) {

	//verbose()
	chk.PrintTitle("constraint02_multiply_and_add")

	c := New([]bool{true, false}, []float64{2, 5})
	out := []float64{10, 10}
	c.MultiplyAndAdd(3, out)
	chk.Array(tst, "out", 1e-15, out, []float64{16, 10})
}

func Test_constraint03_noop(tst *testing.T) {

	//verbose()
	chk.PrintTitle("constraint03_noop")

	c := NoOp(4)
	y := []float64{1, 2, 3, 4}
	c.Apply(y)
	chk.Array(tst, "y unchanged", 1e-15, y, []float64{1, 2, 3, 4})
}

func Test_constraint04_merge(tst *testing.T) {

	//verbose()
	chk.PrintTitle("constraint04_merge")

	a := New([]bool{true, false}, []float64{1, 0})
	b := New([]bool{false, true}, []float64{0, 9})
	m := Merge(a, b)
	y := []float64{0, 0}
	m.Apply(y)
	chk.Array(tst, "merged", 1e-15, y, []float64{1, 9})
}
