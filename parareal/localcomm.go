// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parareal

import "sync"

// group is the shared rendezvous state behind one NewLocalGroup call: a
// generation-gated barrier where the last arriver publishes a fresh,
// immutable snapshot that every rank then reads, so no rank can start
// overwriting next round's contribution before every rank has consumed
// the one just published.
type group struct {
	mu   sync.Mutex
	cond *sync.Cond
	size int

	arrived int
	gen     int

	gatherBuf       [][]float64
	gatherPublished [][]float64
	gatherGen       int

	bcastBuf       []float64
	bcastPublished []float64
	bcastGen       int

	reduceBuf       []int
	reducePublished int
	reduceGen       int
}

// LocalComm is an in-process, goroutine-based Comm: one instance per
// simulated rank, all sharing a *group. Used to exercise Parareal's
// collective structure without a real MPI job (gosl/mpi requires an
// actual mpirun-launched process group).
type LocalComm struct {
	g    *group
	rank int
}

// NewLocalGroup builds n LocalComm handles, one per simulated rank,
// sharing one rendezvous group.
func NewLocalGroup(n int) []*LocalComm {
	g := &group{size: n}
	g.cond = sync.NewCond(&g.mu)
	g.gatherBuf = make([][]float64, n)
	g.bcastBuf = make([]float64, 0)
	g.reduceBuf = make([]int, n)
	out := make([]*LocalComm, n)
	for i := range out {
		out[i] = &LocalComm{g: g, rank: i}
	}
	return out
}

func (c *LocalComm) Rank() int { return c.rank }
func (c *LocalComm) Size() int { return c.g.size }

// AllGather publishes local at this rank's slot and returns the full,
// rank-ordered snapshot once every rank has contributed.
func (c *LocalComm) AllGather(local []float64) [][]float64 {
	g := c.g
	g.mu.Lock()
	g.gatherBuf[c.rank] = local
	g.arrived++
	target := g.gatherGen + 1
	if g.arrived == g.size {
		published := make([][]float64, g.size)
		copy(published, g.gatherBuf)
		g.gatherPublished = published
		g.gatherGen = target
		g.arrived = 0
		g.cond.Broadcast()
	} else {
		for g.gatherGen != target {
			g.cond.Wait()
		}
	}
	out := g.gatherPublished
	g.mu.Unlock()
	return out
}

// Broadcast publishes root's data to every rank; non-root callers' data
// argument is ignored.
func (c *LocalComm) Broadcast(root int, data []float64) []float64 {
	g := c.g
	g.mu.Lock()
	if c.rank == root {
		g.bcastBuf = data
	}
	g.arrived++
	target := g.bcastGen + 1
	if g.arrived == g.size {
		published := make([]float64, len(g.bcastBuf))
		copy(published, g.bcastBuf)
		g.bcastPublished = published
		g.bcastGen = target
		g.arrived = 0
		g.cond.Broadcast()
	} else {
		for g.bcastGen != target {
			g.cond.Wait()
		}
	}
	out := g.bcastPublished
	g.mu.Unlock()
	return out
}

// AllReduceMaxInt reduces one int per rank to the maximum, visible to all.
func (c *LocalComm) AllReduceMaxInt(v int) int {
	g := c.g
	g.mu.Lock()
	g.reduceBuf[c.rank] = v
	g.arrived++
	target := g.reduceGen + 1
	if g.arrived == g.size {
		max := g.reduceBuf[0]
		for _, x := range g.reduceBuf[1:] {
			if x > max {
				max = x
			}
		}
		g.reducePublished = max
		g.reduceGen = target
		g.arrived = 0
		g.cond.Broadcast()
	} else {
		for g.reduceGen != target {
			g.cond.Wait()
		}
	}
	out := g.reducePublished
	g.mu.Unlock()
	return out
}
