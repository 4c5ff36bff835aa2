// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mpm implements the explicit material point method
package mpm

import (
	"context"
	"fmt"
	"time"

	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Main holds all data for a simulation using the material point method
type Main struct {
	Sim    *inp.Simulation  // simulation data
	RunId  string           // unique id of run
	Log    *inp.Logger      // logger
	Dom    *Domain          // grid and particles
	Solver Solver           // time stepping solver
	Hooks  []SnapshotWriter // receive snapshots at output steps
}

// NewMain allocates grid, particles, conditions and solver
//  Input:
//   sim   -- simulation data (see inp.ReadSim)
//   runId -- unique id of run
//   log   -- logger; may be nil
//   hooks -- snapshot writers
func NewMain(sim *inp.Simulation, runId string, log *inp.Logger, hooks ...SnapshotWriter) (o *Main, err error) {

	// new main object
	o = &Main{Sim: sim, RunId: runId, Log: log.Sub("MPM"), Hooks: hooks}
	if sim.Mesh == nil || sim.MatParams == nil {
		return nil, chk.Err("simulation data must have mesh and materials")
	}

	// grid
	grid, err := NewGridFromMesh(sim.Mesh)
	if err != nil {
		return nil, err
	}
	nd := grid.Ndim
	o.Log.Infof("grid: %d nodes, %d %s cells, structured=%v\n", len(grid.Nodes), len(grid.Cells), grid.Geo, grid.Structured())

	// particles
	parts := NewParticles(nd, sim.MatParams.Models())
	err = o.addParticles(grid, parts)
	if err != nil {
		return nil, err
	}
	o.Log.Infof("particles: %d\n", len(parts.P))

	// constraints
	for _, bc := range sim.NodeBcs {
		box, err := sim.Boxes.Get(bc.Box)
		if err != nil {
			return nil, err
		}
		nids := grid.NodesInBox(box)
		if len(nids) == 0 {
			o.Log.Warnf("box %q used by node boundary conditions does not contain any node\n", bc.Box)
		}
		for j, key := range bc.Keys {
			fcn, err := sim.Functions.Get(bc.Funcs[j])
			if err != nil {
				return nil, err
			}
			dims := []int{inp.KeyToDim(key, nd)}
			if key == "fix" {
				dims = dims[:0]
				for dim := 0; dim < nd; dim++ {
					dims = append(dims, dim)
				}
				fcn = nil
			} else if dims[0] < 0 || key[0] != 'v' {
				return nil, chk.Err("node boundary condition key %q is invalid", key)
			}
			for _, nid := range nids {
				for _, dim := range dims {
					if err = grid.SetConstraint(nid, dim, fcn); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	// loads
	loads := NewLoads(nd)
	copy(loads.Gravity, sim.Gravity)
	loads.GravFcn = sim.GravFunc
	for _, pl := range sim.PtLoads {
		box, err := sim.Boxes.Get(pl.Box)
		if err != nil {
			return nil, err
		}
		var pids []int
		for _, p := range parts.P {
			if box.Contains(p.X) {
				pids = append(pids, p.Id)
			}
		}
		if len(pids) == 0 {
			o.Log.Warnf("box %q used by point loads does not contain any particle\n", pl.Box)
		}
		for j, key := range pl.Keys {
			dim := inp.KeyToDim(key, nd)
			if dim < 0 || key[0] != 'f' {
				return nil, chk.Err("point load key %q is invalid", key)
			}
			fcn, err := sim.Functions.Get(pl.Funcs[j])
			if err != nil {
				return nil, err
			}
			for _, pid := range pids {
				if err = loads.AddPointLoad(pid, dim, fcn); err != nil {
					return nil, err
				}
			}
		}
	}

	// domain
	o.Dom, err = NewDomain(grid, parts, loads, &sim.Solver, &sim.Control, o.Log.Sub("MPMExplicit"))
	if err != nil {
		return nil, err
	}
	o.Log.Infof("workers: %d; constraints: %d; point loads: %d\n", o.Dom.Nworkers(), grid.Nconstraints(), loads.NpointLoads())

	// critical time step
	if sim.Solver.DtCheck {
		dtcrit, cmax := o.Dom.CriticalDt(sim.Solver.Cfl)
		o.Log.Infof("critical time step: dtcrit = %g (cmax = %g, hmin = %g)\n", dtcrit, cmax, grid.Hmin)
		if dtcrit > 0 && sim.Control.Dt > dtcrit {
			o.Log.Warnf("dt = %g is greater than the critical time step %g\n", sim.Control.Dt, dtcrit)
		}
	}

	// solver
	o.Solver, err = NewSolver(sim.Solver.Type, o.Dom)
	if err != nil {
		return nil, err
	}
	return
}

// Run runs all steps. The context is checked between steps
func (o *Main) Run(ctx context.Context) (err error) {

	// benchmarking
	cputime := time.Now()
	nsteps := o.Sim.Control.Nsteps
	nout := o.Sim.Control.Nout
	step := 0
	defer func() {
		if err != nil {
			o.Log.Errorf("run failed after %d steps (cpu time = %v):\n%v\n", step, time.Since(cputime), err)
			return
		}
		o.Log.Infof("run finished successfully: %d steps, final time = %g, cpu time = %v\n", step, o.Solver.Time(), time.Since(cputime))
	}()

	// initial state
	err = o.output(0)
	if err != nil {
		return
	}

	// time loop
	for step < nsteps {
		if err = ctx.Err(); err != nil {
			return fmt.Errorf("run cancelled before step %d: %w", step+1, err)
		}
		err = o.Solver.Step()
		if err != nil {
			return
		}
		step++
		if (nout > 0 && step%nout == 0) || step == nsteps {
			err = o.output(step)
			if err != nil {
				return
			}
		}
	}
	return
}

// output calls all hooks with a snapshot of the current solution
func (o *Main) output(step int) (err error) {
	if len(o.Hooks) == 0 {
		return
	}
	s := o.Dom.Snapshot(o.RunId, step, o.Solver.Time())
	o.Log.Infof("output @ step %d: t = %g\n", step, s.Time)
	for _, h := range o.Hooks {
		err = h.WriteSnapshot(s)
		if err != nil {
			return chk.Err("snapshot writer failed @ step %d:\n%v", step, err)
		}
	}
	return
}

// addParticles adds all particle sets. Particles without given volume get the volume of their
// cell divided by the number of particles in that cell
func (o *Main) addParticles(grid *Grid, parts *Particles) (err error) {

	// locate all particles
	nd := grid.Ndim
	ws := NewWorkspace(0, grid.Geo, nd)
	r := make([]float64, nd)
	cids := make([][]int, len(o.Sim.Particles))
	count := make([]int, len(grid.Cells))
	for i, ps := range o.Sim.Particles {
		cids[i] = make([]int, len(ps.Xp))
		for j, x := range ps.Xp {
			if len(x) != nd {
				return chk.Err("particle %d of set %d must have %d coordinates", j, i, nd)
			}
			cid := grid.LocateCell(r, x, ws.Shp)
			if cid < 0 {
				return fmt.Errorf("%w: particle %d of set %d @ x=%v", ErrOutOfDomain, j, i, x)
			}
			cids[i][j] = cid
			count[cid]++
		}
	}

	// add particles
	σ := utl.Alloc(nd, nd)
	for i, ps := range o.Sim.Particles {
		for k := 0; k < nd; k++ {
			σ[k][k] = ps.S0
		}
		for j, x := range ps.Xp {
			vol := ps.Vol
			if vol == 0 {
				cid := cids[i][j]
				vol = grid.Cells[cid].Vol / float64(count[cid])
			}
			if _, err = parts.Add(x, ps.V0, ps.Mid, vol, σ); err != nil {
				return
			}
		}
	}
	return
}
