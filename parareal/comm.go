// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parareal implements the time-parallel predictor-corrector
// algorithm (§6): a coarse Operator sweeps the whole interval serially, a
// fine Operator refines every sub-interval concurrently, and the two are
// combined and iterated until successive corrections agree within a
// tolerance. Comm abstracts the collective rank/all-gather/broadcast
// semantics gofem's main.go drives through gosl/mpi, so the algorithm
// runs unchanged under a real MPI job or an in-process goroutine group.
package parareal

// Comm is the collective-communication contract Parareal needs: world
// size, the caller's own rank, an all-gather of one vector per rank, a
// broadcast from a given root rank, and an int max-reduction. It mirrors the handful of gosl/mpi entry
// points gofem's main.go and fem/solver.go call (Rank, Size,
// AllReduceSum) without requiring a real MPI runtime in-process.
type Comm interface {
	Rank() int
	Size() int

	// AllGather exchanges one float64 slice per rank and returns all of
	// them, indexed by rank, to every caller.
	AllGather(local []float64) [][]float64

	// Broadcast distributes root's data (only meaningful when Rank()==root)
	// to every rank's return value.
	Broadcast(root int, data []float64) []float64

	// AllReduceMaxInt reduces one int per rank to the maximum, visible to
	// every rank (used to propagate a worker's Divergence failure so every
	// rank aborts together instead of hanging on the next collective).
	AllReduceMaxInt(v int) int
}

// Serial is the trivial single-rank Comm: every collective is a no-op
// identity. Used when parallelEnabled is false or world size is 1.
type Serial struct{}

func (Serial) Rank() int { return 0 }
func (Serial) Size() int { return 1 }
func (Serial) AllGather(local []float64) [][]float64 {
	return [][]float64{local}
}
func (Serial) Broadcast(root int, data []float64) []float64 { return data }
func (Serial) AllReduceMaxInt(v int) int                     { return v }
