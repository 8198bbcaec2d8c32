// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solution

import (
	"github.com/cpmech/gosl/plt"
)

// Plot renders y-component comp, averaged over all mesh points, against
// time to path, using gosl/plt.
// This is the plotting escape hatch §1 scopes out of the core: no
// Operator or Parareal path calls it, and no test exercises it.
func (s *Solution) Plot(path string, comp int) error {
	yDim := s.Problem.Eq.YDimension
	y := make([]float64, len(s.T))
	for k, row := range s.Y {
		sum := 0.0
		n := 0
		for i := comp; i < len(row); i += yDim {
			sum += row[i]
			n++
		}
		if n > 0 {
			y[k] = sum / float64(n)
		}
	}
	plt.Plot(s.T, y, nil)
	plt.Gll("t", "y", nil)
	return plt.Save(path)
}
