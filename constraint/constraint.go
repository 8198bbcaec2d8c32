// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constraint implements the mask-plus-values object that forces
// selected entries of a flat y array, the primitive every Dirichlet and
// Neumann boundary face reduces to.
package constraint

// Constraint is a pair (mask, values) of equal shape over a flattened array.
type Constraint struct {
	Mask   []bool
	Values []float64
}

// New builds a Constraint; mask and values must have the same length.
func New(mask []bool, values []float64) *Constraint {
	return &Constraint{Mask: mask, Values: values}
}

// NoOp returns a Constraint of the given size with every entry unmasked,
// so callers never need to nil-check a Constraint when a face has no
// boundary condition attached to it.
func NoOp(n int) *Constraint {
	return &Constraint{Mask: make([]bool, n), Values: make([]float64, n)}
}

// Apply sets y[i] = Values[i] wherever Mask[i] is set.
func (c *Constraint) Apply(y []float64) {
	for i, on := range c.Mask {
		if on {
			y[i] = c.Values[i]
		}
	}
}

// MultiplyAndAdd computes out[i] += alpha*Values[i] wherever Mask[i] is
// set; used to synthesize halo ghost values from Neumann derivative data.
func (c *Constraint) MultiplyAndAdd(alpha float64, out []float64) {
	for i, on := range c.Mask {
		if on {
			out[i] += alpha * c.Values[i]
		}
	}
}

// Merge combines c with other, with other's masked entries taking priority.
func Merge(c, other *Constraint) *Constraint {
	mask := make([]bool, len(c.Mask))
	values := make([]float64, len(c.Values))
	copy(mask, c.Mask)
	copy(values, c.Values)
	for i, on := range other.Mask {
		if on {
			mask[i] = true
			values[i] = other.Values[i]
		}
	}
	return &Constraint{Mask: mask, Values: values}
}
