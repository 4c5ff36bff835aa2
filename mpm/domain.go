// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gosl/chk"
)

// Domain holds the grid, the particles and the data needed by solvers
type Domain struct {

	// entities
	Ndim  int        // space dimension
	Grid  *Grid      // background grid
	Parts *Particles // material points
	Map   *Mapper    // shape functions cache
	Loads *Loads     // gravity and point loads

	// control
	Dt        float64 // time step size
	Nsteps    int     // number of steps
	Alpha     float64 // FLIP fraction
	StressUpd string  // "usl", "usf" or "musl"
	Mzero     float64 // nodes with mass <= Mzero are ignored

	// auxiliary
	Log  *inp.Logger     // logger
	pool *pool           // workers
	acc  []*accumulators // [nworkers] partial nodal sums
}

// NewDomain returns a new domain
//  Input:
//   grid     -- background grid with constraints already set
//   parts    -- particles
//   loads    -- loads; may be nil
//   dat      -- solver data already post-processed
//   ctrl     -- time control
//   log      -- logger; may be nil
func NewDomain(grid *Grid, parts *Particles, loads *Loads, dat *inp.SolverData, ctrl *inp.TimeControl, log *inp.Logger) (o *Domain, err error) {
	if len(parts.P) == 0 {
		return nil, chk.Err("domain must have at least one particle")
	}
	if parts.Ndim != grid.Ndim {
		return nil, chk.Err("space dimension of particles (%d) and grid (%d) must be equal", parts.Ndim, grid.Ndim)
	}
	if ctrl.Dt <= 0 {
		return nil, chk.Err("time step size must be positive. dt = %g is invalid", ctrl.Dt)
	}
	if loads == nil {
		loads = NewLoads(grid.Ndim)
	}
	o = &Domain{
		Ndim:      grid.Ndim,
		Grid:      grid,
		Parts:     parts,
		Map:       NewMapper(grid, len(parts.P)),
		Loads:     loads,
		Dt:        ctrl.Dt,
		Nsteps:    ctrl.Nsteps,
		Alpha:     dat.Alpha,
		StressUpd: dat.StressUpd,
		Mzero:     dat.Mtol * parts.MaxMass(),
		Log:       log,
	}
	o.pool = newPool(dat.Nworkers, grid.Geo, grid.Ndim)
	o.acc = make([]*accumulators, o.pool.nw)
	for w := range o.acc {
		o.acc[w] = newAccumulators(len(grid.Nodes), grid.Ndim)
	}
	return
}

// Nworkers returns the number of goroutines
func (o *Domain) Nworkers() int { return o.pool.nw }

// CriticalDt returns cfl⋅hmin/cmax where cmax is the largest wave speed of materials in use
func (o *Domain) CriticalDt(cfl float64) (dtcrit, cmax float64) {
	used := make(map[int]bool)
	for _, p := range o.Parts.P {
		used[p.Mid] = true
	}
	for mid := range used {
		if c := o.Parts.Models[mid].WaveSpeed(); c > cmax {
			cmax = c
		}
	}
	if cmax <= 0 {
		return 0, 0
	}
	return cfl * o.Grid.Hmin / cmax, cmax
}
