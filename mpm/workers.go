// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// pool runs loops over particles or nodes using contiguous chunks, one per goroutine
type pool struct {
	nw   int          // number of workers
	ws   []*Workspace // [nw] workspaces
	errs []error      // [nw] first error of each worker
	ierr []int        // [nw] index corresponding to errs
}

// newPool returns a new pool. nworkers <= 0 means the number of CPUs
func newPool(nworkers int, geo string, ndim int) (o *pool) {
	if nworkers <= 0 {
		nworkers = runtime.NumCPU()
	}
	o = &pool{nw: nworkers}
	o.ws = make([]*Workspace, nworkers)
	for w := 0; w < nworkers; w++ {
		o.ws[w] = NewWorkspace(w, geo, ndim)
	}
	o.errs = make([]error, nworkers)
	o.ierr = make([]int, nworkers)
	return
}

// chunk returns the range [lo, hi) of worker w for n items
func (o *pool) chunk(w, n int) (lo, hi int) {
	size := n / o.nw
	rest := n % o.nw
	lo = w*size + min(w, rest)
	hi = lo + size
	if w < rest {
		hi++
	}
	return
}

// run calls fcn(ws, i) for all i in [0, n). Each worker stops at its first error.
//  Output:
//   idx -- lowest index with error; -1 if err == nil
//   err -- error corresponding to idx
func (o *pool) run(n int, fcn func(ws *Workspace, i int) error) (idx int, err error) {
	if o.nw == 1 || n < 2*o.nw {
		for i := 0; i < n; i++ {
			if err = fcn(o.ws[0], i); err != nil {
				return i, err
			}
		}
		return -1, nil
	}
	var g errgroup.Group
	for w := 0; w < o.nw; w++ {
		w := w
		o.errs[w] = nil
		g.Go(func() error {
			lo, hi := o.chunk(w, n)
			for i := lo; i < hi; i++ {
				if e := fcn(o.ws[w], i); e != nil {
					o.errs[w], o.ierr[w] = e, i
					return e
				}
			}
			return nil
		})
	}
	if g.Wait() == nil {
		return -1, nil
	}
	for w := 0; w < o.nw; w++ { // chunks are sorted; thus the first worker with error has the lowest index
		if o.errs[w] != nil {
			return o.ierr[w], o.errs[w]
		}
	}
	return -1, nil
}

// runChunks calls fcn(w, lo, hi) for each worker's chunk of n items
func (o *pool) runChunks(n int, fcn func(w, lo, hi int)) {
	if o.nw == 1 {
		fcn(0, 0, n)
		return
	}
	var g errgroup.Group
	for w := 0; w < o.nw; w++ {
		w := w
		g.Go(func() error {
			lo, hi := o.chunk(w, n)
			fcn(w, lo, hi)
			return nil
		})
	}
	g.Wait()
}

// accumulators holds partial nodal sums of one worker
type accumulators struct {
	mass []float64
	mom  []float64
	fint []float64
	fext []float64
}

func newAccumulators(nnodes, ndim int) *accumulators {
	return &accumulators{
		mass: make([]float64, nnodes),
		mom:  make([]float64, nnodes*ndim),
		fint: make([]float64, nnodes*ndim),
		fext: make([]float64, nnodes*ndim),
	}
}

func (o *accumulators) reset() {
	for _, v := range [][]float64{o.mass, o.mom, o.fint, o.fext} {
		for k := range v {
			v[k] = 0
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
