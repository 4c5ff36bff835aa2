// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
)

// Explicit implements the explicit MPM time stepping
//  Each step: LocateParticles → MapToGrid → ComputeNodalForces → IntegrateMomentum →
//             ApplyBoundaryConditions → MapToParticles → UpdateParticleState
type Explicit struct {
	d     *Domain
	step  int        // number of completed steps
	t     float64    // current time
	phase Phase      // current phase
	g     [3]float64 // gravity at current step
}

// set factory of solvers
func init() {
	solverallocators["exp"] = func(d *Domain) Solver {
		return &Explicit{d: d}
	}
}

// Phase returns the current phase
func (o *Explicit) Phase() Phase { return o.phase }

// Time returns the current time
func (o *Explicit) Time() float64 { return o.t }

// Nsteps returns the number of completed steps
func (o *Explicit) Nsteps() int { return o.step }

// Step advances one time step
func (o *Explicit) Step() (err error) {

	// check
	if o.phase == Terminal {
		return chk.Err("solver is in Terminal phase after %d steps", o.step)
	}

	// auxiliary
	d := o.d
	g := d.Grid
	np := len(d.Parts.P)
	nn := len(g.Nodes)
	Δt := d.Dt
	tnew := o.t + Δt
	fail := func(pid, nid int, cause error) error {
		e := &StepError{Step: o.step + 1, Time: tnew, Phase: o.phase, Pid: pid, Nid: nid, Err: cause}
		o.phase = Terminal
		return e
	}

	// locate particles and compute shape functions
	o.phase = LocateParticles
	g.ResetAccumulators()
	if pid, err := d.pool.run(np, func(ws *Workspace, i int) error {
		return d.Parts.Locate(i, g, ws)
	}); err != nil {
		return fail(pid, -1, err)
	}
	g.ClearMembership()
	for _, p := range d.Parts.P {
		c := g.Cells[p.Cid]
		c.Pids = append(c.Pids, p.Id)
	}
	if pid, err := d.pool.run(np, func(ws *Workspace, i int) error {
		return d.Map.Compute(i, d.Parts.P[i], ws)
	}); err != nil {
		return fail(pid, -1, err)
	}

	// map mass, momentum and forces to grid
	o.phase = MapToGrid
	d.Loads.GravityAt(o.g[:d.Ndim], o.t)
	d.Loads.Apply(d.Parts, o.t)
	usf := d.StressUpd == "usf"
	o.scatter(true, !usf)
	if usf {
		o.nodalVelocities()
		g.ApplyBoundaryConditions(o.t)
		o.phase = UpdateParticleState
		if pid, err := o.updateState(true); err != nil {
			return fail(pid, -1, err)
		}
		o.phase = MapToGrid
		o.scatter(false, true)
	}

	// total forces
	o.phase = ComputeNodalForces
	for k := range g.Ftot {
		g.Ftot[k] = g.Fint[k] + g.Fext[k]
	}

	// momentum balance
	o.phase = IntegrateMomentum
	if nid, err := d.pool.run(nn, o.integrate); err != nil {
		return fail(-1, nid, err)
	}

	// prescribed velocities
	o.phase = ApplyBoundaryConditions
	g.ApplyBoundaryConditions(tnew)

	// update particle velocity and position
	o.phase = MapToParticles
	if pid, err := d.pool.run(np, func(ws *Workspace, i int) error {
		return d.Parts.UpdatePositionVelocity(i, Δt, d.Alpha, d.Map.Get(i), g.Vel, g.Acc, g.Mass, d.Mzero)
	}); err != nil {
		return fail(pid, -1, err)
	}
	if d.StressUpd == "musl" {
		o.remap(tnew)
	}

	// update volume, strains and stresses
	if !usf {
		o.phase = UpdateParticleState
		if pid, err := o.updateState(false); err != nil {
			return fail(pid, -1, err)
		}
	}

	// next
	o.step++
	o.t = tnew
	o.phase = Idle
	if d.Nsteps > 0 && o.step >= d.Nsteps {
		o.phase = Terminal
	}
	return
}

// scatter maps particle data to the grid using per-worker partial sums reduced in worker order
//  Input:
//   massmom -- scatter mass, momentum and external forces
//   fint    -- scatter internal forces
func (o *Explicit) scatter(massmom, fint bool) {
	d := o.d
	g := d.Grid
	nd := d.Ndim
	d.pool.runChunks(len(d.Parts.P), func(w, lo, hi int) {
		a := d.acc[w]
		a.reset()
		for pid := lo; pid < hi; pid++ {
			p := d.Parts.P[pid]
			wt := d.Map.Get(pid)
			for m, n := range wt.Nodes {
				S := wt.S[m]
				if massmom {
					a.mass[n] += p.M * S
					for i := 0; i < nd; i++ {
						a.mom[n*nd+i] += p.M * p.V[i] * S
						a.fext[n*nd+i] += (p.M*o.g[i] + p.Fext[i]) * S
					}
				}
				if fint {
					σ := p.State.Sig
					for i := 0; i < nd; i++ {
						for j := 0; j < nd; j++ {
							a.fint[n*nd+i] -= σ[i][j] * wt.G[m][j] * p.Vol
						}
					}
				}
			}
		}
	})
	d.pool.runChunks(len(g.Nodes), func(w, lo, hi int) {
		for n := lo; n < hi; n++ {
			for _, a := range d.acc {
				if massmom {
					g.Mass[n] += a.mass[n]
				}
				for i := 0; i < nd; i++ {
					k := n*nd + i
					if massmom {
						g.Mom[k] += a.mom[k]
						g.Fext[k] += a.fext[k]
					}
					if fint {
						g.Fint[k] += a.fint[k]
					}
				}
			}
		}
	})
}

// integrate solves the momentum balance at node n
func (o *Explicit) integrate(ws *Workspace, n int) error {
	d := o.d
	g := d.Grid
	nd := d.Ndim
	m := g.Mass[n]
	for i := 0; i < nd; i++ {
		k := n*nd + i
		if m <= d.Mzero {
			g.Vel[k], g.Acc[k] = 0, 0
			continue
		}
		g.Acc[k] = g.Ftot[k] / m
		g.Mom[k] += g.Ftot[k] * d.Dt
		g.Vel[k] = g.Mom[k] / m
		if math.IsNaN(g.Vel[k]) || math.IsInf(g.Vel[k], 0) {
			return fmt.Errorf("%w: velocity of node %d is not finite", ErrNumericalInstability, n)
		}
	}
	return nil
}

// nodalVelocities computes nodal velocities from mass and momentum
func (o *Explicit) nodalVelocities() {
	d := o.d
	g := d.Grid
	nd := d.Ndim
	for n, m := range g.Mass {
		for i := 0; i < nd; i++ {
			k := n*nd + i
			if m <= d.Mzero {
				g.Vel[k] = 0
				continue
			}
			g.Vel[k] = g.Mom[k] / m
		}
	}
}

// remap maps the updated particle momenta back to the grid and recomputes the nodal velocities
// and the velocity gradients of particles
func (o *Explicit) remap(t float64) {
	d := o.d
	g := d.Grid
	nd := d.Ndim
	d.pool.runChunks(len(d.Parts.P), func(w, lo, hi int) {
		a := d.acc[w]
		a.reset()
		for pid := lo; pid < hi; pid++ {
			p := d.Parts.P[pid]
			wt := d.Map.Get(pid)
			for m, n := range wt.Nodes {
				for i := 0; i < nd; i++ {
					a.mom[n*nd+i] += p.M * p.V[i] * wt.S[m]
				}
			}
		}
	})
	for k := range g.Mom {
		g.Mom[k] = 0
		for _, a := range d.acc {
			g.Mom[k] += a.mom[k]
		}
	}
	o.nodalVelocities()
	g.ApplyBoundaryConditions(t)
	d.pool.runChunks(len(d.Parts.P), func(w, lo, hi int) {
		for pid := lo; pid < hi; pid++ {
			d.Parts.VelocityGradient(pid, d.Map.Get(pid), g.Vel, g.Mass, d.Mzero)
		}
	})
}

// updateState updates volume, strains and stresses of all particles
//  Input:
//   withL -- compute the velocity gradient from the current nodal velocities first
func (o *Explicit) updateState(withL bool) (pid int, err error) {
	d := o.d
	return d.pool.run(len(d.Parts.P), func(ws *Workspace, i int) error {
		if withL {
			d.Parts.VelocityGradient(i, d.Map.Get(i), d.Grid.Vel, d.Grid.Mass, d.Mzero)
		}
		if err := d.Parts.ComputeVolumeStrain(i, d.Dt, ws); err != nil {
			return err
		}
		return d.Parts.UpdateStress(i, d.Dt)
	})
}
