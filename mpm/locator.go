// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"math"

	"github.com/cpmech/gompm/shp"
)

// constants
const (
	LOCTOL = 1e-10 // relative tolerance for point location
)

// locator finds the cell containing a point
//  structured grids: index arithmetic on a lattice of congruent boxes
//  otherwise: uniform bins of cell bounding boxes followed by inverse mapping
type locator struct {
	g   *Grid
	tol float64 // absolute tolerance

	// lattice
	structured bool
	x0         []float64 // lattice origin
	h          []float64 // cell size
	n          []int     // number of cells along each direction
	slot       []int     // lattice index => cell id; -1 if empty

	// bins
	bmin  []float64 // lower corner of bins
	bsize []float64 // size of bins
	nb    []int     // number of bins along each direction
	bins  [][]int   // bin index => cell ids in ascending order
}

// newLocator allocates a locator for grid g
func newLocator(g *Grid) (o *locator) {
	o = &locator{g: g}
	var size float64
	for i := 0; i < g.Ndim; i++ {
		size = math.Max(size, g.Xmax[i]-g.Xmin[i])
	}
	o.tol = LOCTOL * math.Max(size, 1)
	o.structured = o.initLattice()
	if !o.structured {
		o.initBins()
	}
	return
}

// find returns the cell containing x (lowest id on ties) and its natural coordinates r; or -1
func (o *locator) find(r, x []float64, s *shp.Shape) int {
	if o.structured {
		return o.findLattice(r, x)
	}
	return o.findBins(r, x, s)
}

// lattice /////////////////////////////////////////////////////////////////////////////////////////

// initLattice checks whether all cells are congruent axis-aligned boxes on a lattice
func (o *locator) initLattice() bool {
	g := o.g
	if g.Geo != "lin2" && g.Geo != "qua4" && g.Geo != "hex8" {
		return false
	}
	nd := g.Ndim
	c0 := g.Cells[0]
	o.x0 = append([]float64{}, g.Xmin...)
	o.h = make([]float64, nd)
	o.n = make([]int, nd)
	for i := 0; i < nd; i++ {
		o.h[i] = c0.Xmax[i] - c0.Xmin[i]
		o.n[i] = int(math.Round((g.Xmax[i] - g.Xmin[i]) / o.h[i]))
	}
	nslots := 1
	for i := 0; i < nd; i++ {
		nslots *= o.n[i]
	}
	if nslots > 8*len(g.Cells)+8 {
		return false // too sparse
	}
	o.slot = make([]int, nslots)
	for k := range o.slot {
		o.slot[k] = -1
	}
	for _, c := range g.Cells {
		k := 0
		for i := nd - 1; i >= 0; i-- {

			// congruent
			if math.Abs(c.Xmax[i]-c.Xmin[i]-o.h[i]) > o.tol {
				return false
			}

			// on lattice
			f := (c.Xmin[i] - o.x0[i]) / o.h[i]
			idx := int(math.Round(f))
			if math.Abs(f-float64(idx))*o.h[i] > o.tol || idx < 0 || idx >= o.n[i] {
				return false
			}
			k = k*o.n[i] + idx
		}

		// axis-aligned box with natural coordinates following the real ones
		for m := 0; m < c.Shp.Nverts; m++ {
			for i := 0; i < nd; i++ {
				corner := c.Xmin[i]
				if c.Shp.NatCoords[i][m] > 0 {
					corner = c.Xmax[i]
				}
				if math.Abs(c.X[i][m]-corner) > o.tol {
					return false
				}
			}
		}
		if o.slot[k] >= 0 {
			return false // overlapping cells
		}
		o.slot[k] = c.Id
	}
	return true
}

// findLattice finds the cell using index arithmetic
func (o *locator) findLattice(r, x []float64) (cid int) {
	nd := o.g.Ndim
	var lo, hi [3]int
	for i := 0; i < nd; i++ {
		f := (x[i] - o.x0[i]) / o.h[i]
		t := o.tol / o.h[i]
		if f < -t || f > float64(o.n[i])+t {
			return -1
		}
		k := int(math.Round(f))
		if math.Abs(f-float64(k)) <= t {
			lo[i], hi[i] = k-1, k // on a grid line: both sides are candidates
		} else {
			lo[i] = int(math.Floor(f))
			hi[i] = lo[i]
		}
		if lo[i] < 0 {
			lo[i] = 0
		}
		if hi[i] > o.n[i]-1 {
			hi[i] = o.n[i] - 1
		}
	}
	cid = -1
	var idx [3]int
	var loop func(d int)
	loop = func(d int) {
		if d < 0 {
			k := 0
			for i := nd - 1; i >= 0; i-- {
				k = k*o.n[i] + idx[i]
			}
			if c := o.slot[k]; c >= 0 && (cid < 0 || c < cid) {
				cid = c
			}
			return
		}
		for idx[d] = lo[d]; idx[d] <= hi[d]; idx[d]++ {
			loop(d - 1)
		}
	}
	loop(nd - 1)
	if cid < 0 {
		return
	}

	// natural coordinates
	c := o.g.Cells[cid]
	for i := 0; i < nd; i++ {
		r[i] = 2.0*(x[i]-c.Xmin[i])/o.h[i] - 1.0
		r[i] = math.Max(-1, math.Min(1, r[i]))
	}
	return
}

// bins ////////////////////////////////////////////////////////////////////////////////////////////

// initBins distributes cells into bins
func (o *locator) initBins() {
	g := o.g
	nd := g.Ndim
	ncells := len(g.Cells)

	// bin size == average size of cells' bounding boxes
	o.bmin = make([]float64, nd)
	o.bsize = make([]float64, nd)
	o.nb = make([]int, nd)
	nbins := 1
	for i := 0; i < nd; i++ {
		for _, c := range g.Cells {
			o.bsize[i] += c.Xmax[i] - c.Xmin[i]
		}
		o.bsize[i] /= float64(ncells)
		o.bmin[i] = g.Xmin[i] - o.tol
		o.nb[i] = int(math.Ceil((g.Xmax[i] + o.tol - o.bmin[i]) / o.bsize[i]))
		if o.nb[i] < 1 {
			o.nb[i] = 1
		}
		nbins *= o.nb[i]
	}

	// cells are added in ascending order of ids; thus each bin is sorted
	o.bins = make([][]int, nbins)
	var lo, hi, idx [3]int
	for _, c := range g.Cells {
		for i := 0; i < nd; i++ {
			lo[i] = o.binIndex(c.Xmin[i]-o.tol, i)
			hi[i] = o.binIndex(c.Xmax[i]+o.tol, i)
		}
		var loop func(d int)
		loop = func(d int) {
			if d < 0 {
				k := o.binKey(idx)
				o.bins[k] = append(o.bins[k], c.Id)
				return
			}
			for idx[d] = lo[d]; idx[d] <= hi[d]; idx[d]++ {
				loop(d - 1)
			}
		}
		loop(nd - 1)
	}
}

// findBins finds the cell using bins and inverse mapping
func (o *locator) findBins(r, x []float64, s *shp.Shape) int {
	g := o.g
	nd := g.Ndim
	var idx [3]int
	for i := 0; i < nd; i++ {
		if x[i] < g.Xmin[i]-o.tol || x[i] > g.Xmax[i]+o.tol {
			return -1
		}
		idx[i] = o.binIndex(x[i], i)
	}
	for _, cid := range o.bins[o.binKey(idx)] {
		c := g.Cells[cid]
		inbox := true
		for i := 0; i < nd; i++ {
			if x[i] < c.Xmin[i]-o.tol || x[i] > c.Xmax[i]+o.tol {
				inbox = false
				break
			}
		}
		if !inbox {
			continue
		}
		if s.InvMap(r, x, c.X) != nil {
			continue
		}
		if s.IsInside(r, LOCTOL*1e2) {
			return cid
		}
	}
	return -1
}

// binIndex returns the bin index of coordinate x along direction i
func (o *locator) binIndex(x float64, i int) int {
	k := int(math.Floor((x - o.bmin[i]) / o.bsize[i]))
	if k < 0 {
		return 0
	}
	if k >= o.nb[i] {
		return o.nb[i] - 1
	}
	return k
}

// binKey returns the flat index of a bin
func (o *locator) binKey(idx [3]int) (k int) {
	for i := o.g.Ndim - 1; i >= 0; i-- {
		k = k*o.nb[i] + idx[i]
	}
	return
}
