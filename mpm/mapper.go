// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"fmt"

	"github.com/cpmech/gosl/utl"
)

// Weights holds shape functions and gradients at a particle
type Weights struct {
	Cid   int         // cell where S and G were computed
	Nodes []int       // [nverts] node ids
	S     []float64   // [nverts] shape functions
	G     [][]float64 // [nverts][ndim] gradients dS/dx
}

// Mapper computes and caches the shape functions of all particles
type Mapper struct {
	grid  *Grid
	cache []*Weights // [nparticles]
}

// NewMapper returns a new mapper for np particles
func NewMapper(grid *Grid, np int) (o *Mapper) {
	o = &Mapper{grid: grid, cache: make([]*Weights, np)}
	nverts := grid.Cells[0].Shp.Nverts
	for i := 0; i < np; i++ {
		o.cache[i] = &Weights{
			Cid: -1,
			S:   make([]float64, nverts),
			G:   utl.Alloc(nverts, grid.Ndim),
		}
	}
	return
}

// Compute computes the weights and gradients of particle p using the workspace's shape
func (o *Mapper) Compute(pid int, p *Particle, ws *Workspace) error {
	w := o.cache[pid]
	cell := o.grid.Cells[p.Cid]
	err := ws.Shp.CalcAtR(cell.X, p.R, true)
	if err != nil {
		return fmt.Errorf("%w: cannot compute shape functions of particle %d in cell %d: %v", ErrNumericalInstability, pid, p.Cid, err)
	}
	w.Cid = p.Cid
	w.Nodes = cell.Verts
	copy(w.S, ws.Shp.S)
	for m := range w.G {
		copy(w.G[m], ws.Shp.G[m])
	}
	return nil
}

// Get returns the cached weights of particle pid
func (o *Mapper) Get(pid int) *Weights {
	return o.cache[pid]
}

// Weights returns the nodes and shape functions of particle pid
func (o *Mapper) Weights(pid int) (nodes []int, S []float64) {
	w := o.cache[pid]
	return w.Nodes, w.S
}

// Gradients returns the nodes and shape function gradients of particle pid
func (o *Mapper) Gradients(pid int) (nodes []int, G [][]float64) {
	w := o.cache[pid]
	return w.Nodes, w.G
}
