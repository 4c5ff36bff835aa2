// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"fmt"
	"math"

	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gompm/shp"
	"github.com/cpmech/gosl/utl"
)

// Node holds the immutable data of a grid node
type Node struct {
	Id int       // id == index in Grid.Nodes
	X  []float64 // coordinates [ndim]
}

// Cell holds a cell of the background grid
type Cell struct {
	Id    int         // id == index in Grid.Cells
	Verts []int       // node ids; the order fixes the local numbering of the shape functions
	Shp   *shp.Shape  // shape structure (not to be used concurrently)
	X     [][]float64 // [ndim][nverts] coordinates matrix
	Xmin  []float64   // [ndim] lower bounds
	Xmax  []float64   // [ndim] upper bounds
	Vol   float64     // volume (area in 2D; length in 1D)
	Pids  []int       // particles inside this cell; rebuilt every step
}

// Grid holds the background grid and the nodal accumulators
//  Note: vector accumulators are stored in flat arrays with index n*ndim+i
type Grid struct {

	// topology
	Ndim  int       // space dimension
	Geo   string    // shape type of all cells
	Nodes []*Node   // all nodes
	Cells []*Cell   // all cells
	Xmin  []float64 // [ndim] lower bounds of grid
	Xmax  []float64 // [ndim] upper bounds of grid
	Hmin  float64   // smallest cell size

	// accumulators
	Mass []float64 // [nnodes] nodal mass
	Mom  []float64 // [nnodes*ndim] momentum
	Fint []float64 // [nnodes*ndim] internal forces
	Fext []float64 // [nnodes*ndim] external forces
	Ftot []float64 // [nnodes*ndim] total forces
	Vel  []float64 // [nnodes*ndim] velocity
	Acc  []float64 // [nnodes*ndim] acceleration

	// derived
	loc  *locator            // cell locator
	cons []*constraint       // constraints sorted by nid*ndim+dim
	cidx map[int]*constraint // maps nid*ndim+dim to constraint
}

// NewGrid allocates and validates a new grid
//  Input:
//   ndim   -- space dimension
//   geo    -- shape type of all cells; e.g. "qua4"
//   coords -- [nnodes][ndim] coordinates
//   conn   -- [ncells][nverts] connectivity
func NewGrid(ndim int, geo string, coords [][]float64, conn [][]int) (o *Grid, err error) {

	// check
	master := shp.Get(geo, 0)
	if master == nil {
		return nil, fmt.Errorf("%w: shape %q is not available", ErrMalformedMesh, geo)
	}
	if master.Gndim != ndim {
		return nil, fmt.Errorf("%w: shape %q cannot be used with ndim=%d", ErrMalformedMesh, geo, ndim)
	}
	if len(coords) == 0 || len(conn) == 0 {
		return nil, fmt.Errorf("%w: grid must have at least one node and one cell", ErrMalformedMesh)
	}

	// nodes
	o = &Grid{Ndim: ndim, Geo: geo}
	o.Nodes = make([]*Node, len(coords))
	o.Xmin = make([]float64, ndim)
	o.Xmax = make([]float64, ndim)
	for i := 0; i < ndim; i++ {
		o.Xmin[i], o.Xmax[i] = math.Inf(+1), math.Inf(-1)
	}
	for n, x := range coords {
		if len(x) != ndim {
			return nil, fmt.Errorf("%w: node %d has %d coordinates; %d expected", ErrMalformedMesh, n, len(x), ndim)
		}
		o.Nodes[n] = &Node{Id: n, X: append([]float64{}, x...)}
		for i := 0; i < ndim; i++ {
			o.Xmin[i] = utl.Min(o.Xmin[i], x[i])
			o.Xmax[i] = utl.Max(o.Xmax[i], x[i])
		}
	}

	// cells
	o.Hmin = math.Inf(+1)
	o.Cells = make([]*Cell, len(conn))
	for c, verts := range conn {
		if len(verts) != master.Nverts {
			return nil, fmt.Errorf("%w: cell %d has %d vertices; %d expected", ErrMalformedMesh, c, len(verts), master.Nverts)
		}
		cell := &Cell{Id: c, Verts: append([]int{}, verts...), Shp: master}
		cell.X = utl.Alloc(ndim, master.Nverts)
		cell.Xmin = make([]float64, ndim)
		cell.Xmax = make([]float64, ndim)
		used := make(map[int]bool)
		for m, n := range verts {
			if n < 0 || n >= len(o.Nodes) {
				return nil, fmt.Errorf("%w: cell %d refers to node %d which does not exist", ErrMalformedMesh, c, n)
			}
			if used[n] {
				return nil, fmt.Errorf("%w: cell %d has repeated node %d", ErrMalformedMesh, c, n)
			}
			used[n] = true
			for i := 0; i < ndim; i++ {
				cell.X[i][m] = o.Nodes[n].X[i]
				if m == 0 || cell.X[i][m] < cell.Xmin[i] {
					cell.Xmin[i] = cell.X[i][m]
				}
				if m == 0 || cell.X[i][m] > cell.Xmax[i] {
					cell.Xmax[i] = cell.X[i][m]
				}
			}
		}

		// jacobian must be positive at all integration points
		for _, ip := range master.GetIps() {
			err = master.CalcAtR(cell.X, ip, true)
			if err != nil || master.J <= 0 {
				return nil, fmt.Errorf("%w: cell %d is degenerate or inverted (J=%g)", ErrMalformedMesh, c, master.J)
			}
			cell.Vol += master.J * ip[3]
		}
		for i := 0; i < ndim; i++ {
			o.Hmin = utl.Min(o.Hmin, cell.Xmax[i]-cell.Xmin[i])
		}
		o.Cells[c] = cell
	}

	// accumulators
	nn := len(o.Nodes)
	o.Mass = make([]float64, nn)
	o.Mom = make([]float64, nn*ndim)
	o.Fint = make([]float64, nn*ndim)
	o.Fext = make([]float64, nn*ndim)
	o.Ftot = make([]float64, nn*ndim)
	o.Vel = make([]float64, nn*ndim)
	o.Acc = make([]float64, nn*ndim)

	// locator
	o.loc = newLocator(o)
	o.cidx = make(map[int]*constraint)
	return o, nil
}

// NewGridFromMesh allocates a grid using data read from an ASCII mesh file
func NewGridFromMesh(msh *inp.Mesh) (*Grid, error) {
	return NewGrid(msh.Ndim, msh.Geo, msh.Coords, msh.Conn)
}

// ResetAccumulators zeroes all nodal accumulators
func (o *Grid) ResetAccumulators() {
	for n := range o.Mass {
		o.Mass[n] = 0
	}
	for _, v := range [][]float64{o.Mom, o.Fint, o.Fext, o.Ftot, o.Vel, o.Acc} {
		for k := range v {
			v[k] = 0
		}
	}
}

// ClearMembership clears the lists of particles inside cells
func (o *Grid) ClearMembership() {
	for _, c := range o.Cells {
		c.Pids = c.Pids[:0]
	}
}

// Structured tells whether the grid is a lattice of congruent axis-aligned boxes
func (o *Grid) Structured() bool {
	return o.loc.structured
}

// LocateCell finds the cell containing point x and computes its natural coordinates r
//  Input:
//   x -- point coordinates [ndim]
//   s -- shape structure for the inverse mapping (a copy per goroutine)
//  Output:
//   r   -- natural coordinates [ndim]
//   cid -- id of cell containing x; the lowest id if x is on a shared boundary; -1 if not found
func (o *Grid) LocateCell(r, x []float64, s *shp.Shape) (cid int) {
	return o.loc.find(r, x, s)
}

// NodesInBox returns the ids of nodes inside box
func (o *Grid) NodesInBox(box *inp.Box) (nids []int) {
	for _, n := range o.Nodes {
		if box.Contains(n.X) {
			nids = append(nids, n.Id)
		}
	}
	return
}

// NodalVelocity returns the velocity of node nid
func (o *Grid) NodalVelocity(nid int) []float64 {
	return o.Vel[nid*o.Ndim : (nid+1)*o.Ndim]
}
