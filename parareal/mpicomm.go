// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parareal

import "github.com/cpmech/gosl/mpi"

// MPIComm wraps gosl/mpi the way gofem's fem.Domain and main.go do
// (mpi.Rank, mpi.Size, mpi.AllReduceSum, mpi.IntAllReduceMax): one
// instance per MPI process, started by the cmd/pareal driver's
// mpi.Start/mpi.Stop pair. gosl/mpi has no dedicated gather or broadcast
// primitive, so AllGather and Broadcast reuse the same zero-padding trick
// fem/errorhandler.go already applies to IntAllReduceMax: every rank
// writes only its own segment and leaves the rest zero, and the
// elementwise reduction reconstructs the full exchange.
type MPIComm struct{}

func (MPIComm) Rank() int { return mpi.Rank() }
func (MPIComm) Size() int { return mpi.Size() }

func (MPIComm) AllGather(local []float64) [][]float64 {
	n := mpi.Size()
	width := len(local)
	orig := make([]float64, n*width)
	copy(orig[mpi.Rank()*width:(mpi.Rank()+1)*width], local)
	dest := make([]float64, n*width)
	mpi.AllReduceSum(dest, orig)
	out := make([][]float64, n)
	for r := 0; r < n; r++ {
		out[r] = dest[r*width : (r+1)*width]
	}
	return out
}

// Broadcast requires every rank to call it with a data slice of the
// broadcast length (non-root ranks pass a zero-valued placeholder).
func (MPIComm) Broadcast(root int, data []float64) []float64 {
	orig := make([]float64, len(data))
	if mpi.Rank() == root {
		copy(orig, data)
	}
	dest := make([]float64, len(data))
	mpi.AllReduceSum(dest, orig)
	return dest
}

func (MPIComm) AllReduceMaxInt(v int) int {
	n := mpi.Size()
	orig := make([]int, n)
	orig[mpi.Rank()] = v
	dest := make([]int, n)
	mpi.IntAllReduceMax(dest, orig)
	max := dest[0]
	for _, x := range dest[1:] {
		if x > max {
			max = x
		}
	}
	return max
}
