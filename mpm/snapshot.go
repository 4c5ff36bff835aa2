// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

// SnapshotWriter receives copies of the solution at output steps
type SnapshotWriter interface {
	WriteSnapshot(s *Snapshot) error
}

// Snapshot holds a copy of the solution at the end of a step
//  Note: tensors are stored row-major in flat arrays of size ndim*ndim
type Snapshot struct {

	// identification
	RunId string  // unique id of run
	Step  int     // step number; 0 is the initial state
	Time  float64 // time

	// geometry
	Ndim  int         // space dimension
	Geo   string      // shape type of cells
	NodeX [][]float64 // [nnodes][ndim] node coordinates
	Conn  [][]int     // [ncells][nverts] connectivity
	Vtk   int         // VTK code of cells

	// particles
	Mid []int       // [np] material ids
	Cid []int       // [np] cell ids
	X   [][]float64 // [np][ndim] positions
	V   [][]float64 // [np][ndim] velocities
	M   []float64   // [np] masses
	Vol []float64   // [np] volumes
	Sig [][]float64 // [np][ndim*ndim] stresses
	Eps [][]float64 // [np][ndim*ndim] strains

	// nodes
	Mass []float64 // [nnodes] nodal masses
	Vel  []float64 // [nnodes*ndim] nodal velocities
	Acc  []float64 // [nnodes*ndim] nodal accelerations
}

// Np returns the number of particles
func (o *Snapshot) Np() int { return len(o.X) }

// Snapshot returns a copy of the current solution
func (o *Domain) Snapshot(runId string, step int, t float64) (s *Snapshot) {
	g := o.Grid
	nd := o.Ndim
	np := len(o.Parts.P)
	s = &Snapshot{RunId: runId, Step: step, Time: t, Ndim: nd, Geo: g.Geo, Vtk: g.Cells[0].Shp.VtkCode}
	s.NodeX = make([][]float64, len(g.Nodes))
	for n, node := range g.Nodes {
		s.NodeX[n] = append([]float64{}, node.X...)
	}
	s.Conn = make([][]int, len(g.Cells))
	for c, cell := range g.Cells {
		s.Conn[c] = append([]int{}, cell.Verts...)
	}
	s.Mid = make([]int, np)
	s.Cid = make([]int, np)
	s.X = make([][]float64, np)
	s.V = make([][]float64, np)
	s.M = make([]float64, np)
	s.Vol = make([]float64, np)
	s.Sig = make([][]float64, np)
	s.Eps = make([][]float64, np)
	for i, p := range o.Parts.P {
		s.Mid[i], s.Cid[i] = p.Mid, p.Cid
		s.X[i] = append([]float64{}, p.X...)
		s.V[i] = append([]float64{}, p.V...)
		s.M[i], s.Vol[i] = p.M, p.Vol
		s.Sig[i] = make([]float64, 0, nd*nd)
		s.Eps[i] = make([]float64, 0, nd*nd)
		for j := 0; j < nd; j++ {
			s.Sig[i] = append(s.Sig[i], p.State.Sig[j]...)
			s.Eps[i] = append(s.Eps[i], p.State.Eps[j]...)
		}
	}
	s.Mass = append([]float64{}, g.Mass...)
	s.Vel = append([]float64{}, g.Vel...)
	s.Acc = append([]float64{}, g.Acc...)
	return
}
